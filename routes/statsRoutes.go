package routes

import (
	controller "github.com/ishanbagra18/artfolio-server/controllers"
)

func StatsRoutes(g Groups, sc *controller.StatsController) {
	g.Public.POST("/visitors", sc.RecordVisit())

	g.Admin.GET("/visitors", sc.VisitorReport())
	g.Admin.GET("/dashboard", sc.Dashboard())
}
