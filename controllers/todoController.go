package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ishanbagra18/artfolio-server/models"
	"go.uber.org/zap"
)

type TodoController struct {
	todos TodoStore
	log   *zap.Logger
	now   func() time.Time
}

func NewTodoController(todos TodoStore, log *zap.Logger) *TodoController {
	return &TodoController{todos: todos, log: log, now: time.Now}
}

func (tc *TodoController) ListTodos() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		todos, err := tc.todos.List(ctx)
		if err != nil {
			storeFailure(c, tc.log, "[ListTodos]", err, "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(todos), "todos": todos})
	}
}

func (tc *TodoController) CreateTodo() gin.HandlerFunc {
	return func(c *gin.Context) {
		var todo models.AdminTodo
		if !bindJSON(c, &todo) {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()

		now := tc.now()
		todo.CreatedAt = now
		todo.UpdatedAt = now
		if err := tc.todos.Insert(ctx, &todo); err != nil {
			storeFailure(c, tc.log, "[CreateTodo]", err, "")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"msg": "todo created", "todo": todo})
	}
}

func (tc *TodoController) UpdateTodo() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}
		var todo models.AdminTodo
		if !bindJSON(c, &todo) {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()

		stored, err := tc.todos.FindByID(ctx, id)
		if err != nil {
			storeFailure(c, tc.log, "[UpdateTodo]", err, "Todo not found")
			return
		}
		todo.ID = id
		todo.CreatedAt = stored.CreatedAt
		todo.UpdatedAt = tc.now()
		if err := tc.todos.Replace(ctx, &todo); err != nil {
			storeFailure(c, tc.log, "[UpdateTodo]", err, "Todo not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "todo updated", "todo": todo})
	}
}

// ToggleTodo flips the completed flag.
func (tc *TodoController) ToggleTodo() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()

		todo, err := tc.todos.FindByID(ctx, id)
		if err != nil {
			storeFailure(c, tc.log, "[ToggleTodo]", err, "Todo not found")
			return
		}
		todo.Completed = !todo.Completed
		todo.UpdatedAt = tc.now()
		if err := tc.todos.Replace(ctx, todo); err != nil {
			storeFailure(c, tc.log, "[ToggleTodo]", err, "Todo not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "todo updated", "todo": todo})
	}
}

func (tc *TodoController) DeleteTodo() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()

		if err := tc.todos.Delete(ctx, id); err != nil {
			storeFailure(c, tc.log, "[DeleteTodo]", err, "Todo not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "todo deleted"})
	}
}
