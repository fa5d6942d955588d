package routes

import (
	controller "github.com/ishanbagra18/artfolio-server/controllers"
)

func ArtistRoutes(g Groups, ac *controller.ArtistController) {
	// Public
	g.Public.GET("/artists", ac.PublicArtists())
	g.Public.GET("/artists/:artistid", ac.PublicArtist())

	// Artist self
	g.Artist.GET("/profile", ac.MyProfile())
	g.Artist.PUT("/profile", ac.UpdateMyProfile())

	// Admin
	artists := g.Admin.Group("/artists")
	artists.POST("", ac.RegisterArtist())
	artists.GET("", ac.ListArtists())
	artists.GET("/:artistid", ac.GetArtist())
	artists.PUT("/:artistid", ac.UpdateArtist())
	artists.PUT("/:artistid/password", ac.ResetPassword())
	artists.DELETE("/:artistid", ac.DeleteArtist())
}
