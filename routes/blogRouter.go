package routes

import (
	controller "github.com/ishanbagra18/artfolio-server/controllers"
)

func BlogRoutes(g Groups, bc *controller.BlogController) {
	blog := g.Public.Group("/blog")
	blog.GET("/posts", bc.ListPublishedPosts())
	blog.GET("/posts/:slug", bc.GetPublishedPost())
	blog.GET("/posts/:slug/comments", bc.ListApprovedComments())
	blog.POST("/posts/:slug/comments", bc.AddComment())
	blog.POST("/subscribe", bc.Subscribe())
	blog.GET("/unsubscribe", bc.Unsubscribe())
	blog.POST("/unsubscribe", bc.Unsubscribe())

	admin := g.Admin.Group("/blog")
	admin.GET("", bc.ListAllPosts())
	admin.POST("", bc.CreatePost())
	admin.GET("/:id", bc.GetPost())
	admin.PUT("/:id", bc.UpdatePost())
	admin.DELETE("/:id", bc.DeletePost())
	admin.POST("/:id/publish", bc.PublishPost())
	admin.POST("/:id/unpublish", bc.UnpublishPost())
	admin.GET("/:id/comments", bc.ListComments())

	g.Admin.PUT("/comments/:commentId/approve", bc.ApproveComment())
	g.Admin.DELETE("/comments/:commentId", bc.DeleteComment())
	g.Admin.GET("/subscribers", bc.ListSubscribers())
}
