package routes

import (
	controller "github.com/ishanbagra18/artfolio-server/controllers"
)

func NotificationRoutes(g Groups, nc *controller.NotificationController) {
	g.Artist.GET("/notifications", nc.MyNotifications())
	g.Artist.PUT("/notifications/:id/read", nc.MarkRead())

	g.Admin.GET("/notifications", nc.ListNotifications())
	g.Admin.POST("/notifications", nc.CreateNotification())
	g.Admin.DELETE("/notifications/:id", nc.DeleteNotification())
}
