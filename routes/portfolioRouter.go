package routes

import (
	controller "github.com/ishanbagra18/artfolio-server/controllers"
)

func PortfolioRoutes(g Groups, pc *controller.PortfolioController) {
	g.Public.GET("/portfolios", pc.ListPortfolios())
	g.Public.GET("/portfolios/:artistid", pc.GetPublicPortfolio())

	p := g.Artist.Group("/portfolio")
	p.GET("", pc.GetMyPortfolio())
	p.PUT("/basic-details", pc.UpdateBasicDetails())
	p.PUT("/specialization", pc.UpdateSpecialization())

	p.POST("/experience", pc.AddExperience())
	p.PUT("/experience/:itemId", pc.UpdateExperience())
	p.DELETE("/experience/:itemId", pc.DeleteExperience())

	p.POST("/awards", pc.AddAward())
	p.PUT("/awards/:itemId", pc.UpdateAward())
	p.DELETE("/awards/:itemId", pc.DeleteAward())

	p.POST("/projects", pc.AddProject())
	p.PUT("/projects/:itemId", pc.UpdateProject())
	p.DELETE("/projects/:itemId", pc.DeleteProject())

	p.POST("/artworks", pc.AddArtwork())
	p.PUT("/artworks/:itemId", pc.UpdateArtwork())
	p.DELETE("/artworks/:itemId", pc.DeleteArtwork())
}
