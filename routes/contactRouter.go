package routes

import (
	controller "github.com/ishanbagra18/artfolio-server/controllers"
)

func ContactRoutes(g Groups, cc *controller.ContactController) {
	g.Public.POST("/contact", cc.SubmitContact())

	contacts := g.Admin.Group("/contacts")
	contacts.GET("", cc.ListContacts())
	contacts.PUT("/:id/read", cc.MarkRead())
	contacts.POST("/:id/reply", cc.Reply())
	contacts.DELETE("/:id", cc.DeleteContact())
}
