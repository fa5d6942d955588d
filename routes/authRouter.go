package routes

import (
	controller "github.com/ishanbagra18/artfolio-server/controllers"
	"github.com/ishanbagra18/artfolio-server/middleware"
	"github.com/ishanbagra18/artfolio-server/models"
)

func AuthRoutes(g Groups, ac *controller.AuthController) {
	auth := g.Public.Group("/auth")
	auth.POST("/login", ac.ArtistLogin())
	auth.POST("/admin/login", ac.AdminLogin())
	auth.POST("/logout", ac.Logout())

	g.Authed.GET("/auth/me", ac.Me())
	g.Authed.PUT("/auth/password", middleware.RequireRole(models.RoleArtist), g.ActiveArtist, ac.ChangePassword())
}
