package routes

import (
	controller "github.com/ishanbagra18/artfolio-server/controllers"
)

func LoginLogRoutes(g Groups, lc *controller.LoginLogController) {
	g.Admin.GET("/login-logs", lc.GetLoginLogs())
	g.Admin.DELETE("/login-logs", lc.ClearLoginLogs())
}
