package routes

import (
	controller "github.com/ishanbagra18/artfolio-server/controllers"
)

func UploadRoutes(g Groups, mc *controller.MediaController) {
	g.Authed.POST("/uploads", mc.Upload())

	g.Admin.GET("/uploads", mc.ListUploads())
	g.Admin.GET("/uploads/usage", mc.Usage())
	g.Admin.DELETE("/uploads/*publicId", mc.DeleteUpload())
}
