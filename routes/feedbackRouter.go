package routes

import (
	controller "github.com/ishanbagra18/artfolio-server/controllers"
)

func FeedbackRoutes(g Groups, fc *controller.FeedbackController) {
	g.Public.POST("/feedback", fc.SubmitFeedback())
	g.Artist.GET("/feedback", fc.MyFeedback())

	g.Admin.GET("/feedback", fc.ListFeedback())
	g.Admin.DELETE("/feedback/:id", fc.DeleteFeedback())
	g.Admin.DELETE("/portfolios/:artistid/reviews/:index", fc.DeleteReview())
}
