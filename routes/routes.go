package routes

import (
	"github.com/gin-gonic/gin"
	controller "github.com/ishanbagra18/artfolio-server/controllers"
	"github.com/ishanbagra18/artfolio-server/middleware"
	"github.com/ishanbagra18/artfolio-server/models"
	"go.uber.org/zap"
)

// Handlers bundles every controller the router mounts.
type Handlers struct {
	Auth          *controller.AuthController
	Artists       *controller.ArtistController
	Portfolios    *controller.PortfolioController
	Feedback      *controller.FeedbackController
	Blog          *controller.BlogController
	Contact       *controller.ContactController
	Notifications *controller.NotificationController
	Messages      *controller.MessageController
	Services      *controller.ServiceController
	Settings      *controller.SettingsController
	Stats         *controller.StatsController
	Todos         *controller.TodoController
	LoginLogs     *controller.LoginLogController
	Media         *controller.MediaController
}

// Groups are the route groups resources attach to.
type Groups struct {
	Public *gin.RouterGroup // /api, no auth
	Authed *gin.RouterGroup // /api, any signed-in user
	Artist *gin.RouterGroup // /api/artist, artist role
	Admin  *gin.RouterGroup // /api/admin, admin role

	// ActiveArtist rejects artist tokens whose account is gone or suspended.
	ActiveArtist gin.HandlerFunc
}

func NewGroups(router *gin.Engine, tokens middleware.TokenValidator, artists middleware.ArtistLookup, log *zap.Logger) Groups {
	api := router.Group("/api")
	active := middleware.ActiveArtist(artists, log)
	return Groups{
		Public:       api,
		Authed:       api.Group("", middleware.Authentication(tokens)),
		Artist:       api.Group("/artist", middleware.Authentication(tokens), middleware.RequireRole(models.RoleArtist), active),
		Admin:        api.Group("/admin", middleware.Authentication(tokens), middleware.RequireRole(models.RoleAdmin)),
		ActiveArtist: active,
	}
}

// Setup mounts every resource.
func Setup(router *gin.Engine, h Handlers, tokens middleware.TokenValidator, artists middleware.ArtistLookup, log *zap.Logger) {
	g := NewGroups(router, tokens, artists, log)

	AuthRoutes(g, h.Auth)
	ArtistRoutes(g, h.Artists)
	PortfolioRoutes(g, h.Portfolios)
	FeedbackRoutes(g, h.Feedback)
	BlogRoutes(g, h.Blog)
	ContactRoutes(g, h.Contact)
	NotificationRoutes(g, h.Notifications)
	MessageRoutes(g, h.Messages)
	ServiceRoutes(g, h.Services)
	SettingsRoutes(g, h.Settings)
	StatsRoutes(g, h.Stats)
	TodoRoutes(g, h.Todos)
	LoginLogRoutes(g, h.LoginLogs)
	UploadRoutes(g, h.Media)
}
