package routes

import (
	controller "github.com/ishanbagra18/artfolio-server/controllers"
)

func ServiceRoutes(g Groups, sc *controller.ServiceController) {
	g.Public.GET("/services", sc.PublicServices())

	services := g.Admin.Group("/services")
	services.GET("", sc.ListServices())
	services.POST("", sc.CreateService())
	services.PUT("/:id", sc.UpdateService())
	services.DELETE("/:id", sc.DeleteService())
}
