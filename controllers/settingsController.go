package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ishanbagra18/artfolio-server/models"
	"github.com/ishanbagra18/artfolio-server/services"
	"go.uber.org/zap"
)

type SettingsController struct {
	settings SettingsStore
	artists  ArtistStore
	notifier *services.Notifier
	log      *zap.Logger
}

func NewSettingsController(settings SettingsStore, artists ArtistStore, notifier *services.Notifier, log *zap.Logger) *SettingsController {
	return &SettingsController{settings: settings, artists: artists, notifier: notifier, log: log}
}

func (sc *SettingsController) PublicSettings() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		s, err := sc.settings.Get(ctx)
		if err != nil {
			storeFailure(c, sc.log, "[PublicSettings]", err, "")
			return
		}
		c.JSON(http.StatusOK, s.Public())
	}
}

func (sc *SettingsController) GetSettings() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		s, err := sc.settings.Get(ctx)
		if err != nil {
			storeFailure(c, sc.log, "[GetSettings]", err, "")
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

// UpdateSettings applies a partial update. Switching maintenance mode on
// sends a single Bcc email to every artist; the store returns the previous
// state from the same atomic write, so two concurrent toggles cannot both
// see the transition.
func (sc *SettingsController) UpdateSettings() gin.HandlerFunc {
	return func(c *gin.Context) {
		var upd models.SettingsUpdate
		if !bindJSON(c, &upd) {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()

		prev, next, err := sc.settings.Update(ctx, upd)
		if err != nil {
			storeFailure(c, sc.log, "[UpdateSettings]", err, "")
			return
		}

		broadcast := false
		if !prev.MaintenanceMode && next.MaintenanceMode {
			sc.log.Info("[UpdateSettings] maintenance mode enabled")
			html, err := services.RenderEmail("maintenance", map[string]string{
				"Site":    next.SiteName,
				"Message": next.MaintenanceMessage,
			})
			if err != nil {
				sc.log.Error("[UpdateSettings] maintenance email render failed", zap.Error(err))
			} else {
				broadcast = sc.broadcast(c, next.SiteName+" is under maintenance", html)
			}
		}

		c.JSON(http.StatusOK, gin.H{"msg": "settings updated", "settings": next, "broadcast": broadcast})
	}
}

// Broadcast emails an arbitrary message to every artist.
func (sc *SettingsController) Broadcast() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BroadcastRequest
		if !bindJSON(c, &req) {
			return
		}
		html, err := services.RenderEmail("broadcast", req)
		if err != nil {
			sc.log.Error("[Broadcast] render failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not render email"})
			return
		}
		if !sc.broadcast(c, req.Subject, html) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "broadcast email was not sent"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "broadcast sent"})
	}
}

func (sc *SettingsController) broadcast(c *gin.Context, subject, html string) bool {
	emails, err := sc.artists.Emails(c.Request.Context())
	if err != nil {
		sc.log.Error("[Broadcast] artist emails lookup failed", zap.Error(err))
		return false
	}
	return sc.notifier.Broadcast(c.Request.Context(), emails, subject, html)
}
