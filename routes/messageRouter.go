package routes

import (
	controller "github.com/ishanbagra18/artfolio-server/controllers"
)

func MessageRoutes(g Groups, mc *controller.MessageController) {
	// Artist side of the thread
	g.Artist.POST("/messages", mc.SendToAdmin())
	g.Artist.GET("/messages", mc.MyMessages())
	g.Artist.DELETE("/messages/:message_id", mc.DeleteMessage())

	// Admin inbox
	g.Admin.GET("/messages", mc.Conversations())
	g.Admin.GET("/messages/:artistid", mc.ArtistThread())
	g.Admin.POST("/messages/:artistid", mc.ReplyToArtist())
	g.Admin.DELETE("/messages/:artistid/:message_id", mc.DeleteMessage())
}
