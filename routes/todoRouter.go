package routes

import (
	controller "github.com/ishanbagra18/artfolio-server/controllers"
)

func TodoRoutes(g Groups, tc *controller.TodoController) {
	todos := g.Admin.Group("/todos")
	todos.GET("", tc.ListTodos())
	todos.POST("", tc.CreateTodo())
	todos.PUT("/:id", tc.UpdateTodo())
	todos.PATCH("/:id/toggle", tc.ToggleTodo())
	todos.DELETE("/:id", tc.DeleteTodo())
}
