package routes

import (
	controller "github.com/ishanbagra18/artfolio-server/controllers"
)

func SettingsRoutes(g Groups, sc *controller.SettingsController) {
	g.Public.GET("/settings/public", sc.PublicSettings())

	g.Admin.GET("/settings", sc.GetSettings())
	g.Admin.PUT("/settings", sc.UpdateSettings())
	g.Admin.POST("/broadcast", sc.Broadcast())
}
