package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ishanbagra18/artfolio-server/config"
	"github.com/ishanbagra18/artfolio-server/controllers"
	"github.com/ishanbagra18/artfolio-server/database"
	"github.com/ishanbagra18/artfolio-server/helpers"
	"github.com/ishanbagra18/artfolio-server/middleware"
	"github.com/ishanbagra18/artfolio-server/models"
	"github.com/ishanbagra18/artfolio-server/routes"
	"github.com/ishanbagra18/artfolio-server/services"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// defaultSettings seeds the settings document until an admin saves one.
func defaultSettings(cfg *config.Config) models.Settings {
	return models.Settings{
		SiteName:           "Artfolio",
		ContactEmail:       cfg.Admin.Email,
		MaxArtists:         cfg.MaxArtists,
		AllowRegistrations: true,
	}
}

// newRouter wires stores, services and controllers onto a gin engine.
func newRouter(cfg *config.Config, db *mongo.Database, log *zap.Logger) (*gin.Engine, error) {
	media, err := services.NewMediaStorage(cfg.Cloudinary.URL, cfg.Cloudinary.Folder)
	if err != nil {
		return nil, err
	}
	if !media.Enabled() {
		log.Warn("[main] CLOUDINARY_URL not set, uploads are disabled")
	}

	tokens := helpers.NewTokenManager(cfg.SecretKey, cfg.TokenTTL)
	notifier := services.NewNotifier(cfg, log)

	artists := database.NewArtistStore(db)
	portfolios := database.NewPortfolioStore(db)
	feedback := database.NewFeedbackStore(db)
	blog := database.NewBlogStore(db)
	contacts := database.NewContactStore(db)
	settings := database.NewSettingsStore(db, defaultSettings(cfg))
	visitors := database.NewVisitorStore(db)

	mediaCtl := controllers.NewMediaController(media, database.NewMediaStore(db), log)
	h := routes.Handlers{
		Auth:          controllers.NewAuthController(artists, database.NewLoginLogStore(db), tokens, cfg.Admin, log),
		Artists:       controllers.NewArtistController(artists, portfolios, feedback, settings, notifier, log),
		Portfolios:    controllers.NewPortfolioController(portfolios, artists, mediaCtl, log),
		Feedback:      controllers.NewFeedbackController(artists, portfolios, feedback, notifier, log),
		Blog:          controllers.NewBlogController(blog, blog, blog, notifier, cfg.SiteURL, log),
		Contact:       controllers.NewContactController(contacts, notifier, log),
		Notifications: controllers.NewNotificationController(database.NewNotificationStore(db), artists, notifier, log),
		Messages:      controllers.NewMessageController(database.NewMessageStore(db), artists, mediaCtl, log),
		Services:      controllers.NewServiceController(database.NewServiceStore(db), log),
		Settings:      controllers.NewSettingsController(settings, artists, notifier, log),
		Stats:         controllers.NewStatsController(visitors, artists, feedback, blog, blog, contacts, log),
		Todos:         controllers.NewTodoController(database.NewTodoStore(db), log),
		LoginLogs:     controllers.NewLoginLogController(database.NewLoginLogStore(db), log),
		Media:         mediaCtl,
	}

	router := gin.New()
	router.MaxMultipartMemory = 16 << 20
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.Maintenance(settings, tokens, log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	routes.Setup(router, h, tokens, artists, log)
	return router, nil
}
