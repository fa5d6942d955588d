package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ishanbagra18/artfolio-server/models"
	"go.uber.org/zap"
)

type SettingsReader interface {
	Get(ctx context.Context) (*models.Settings, error)
}

// Paths that stay reachable while the site is in maintenance mode.
var maintenanceExempt = []string{
	"/api/admin",
	"/api/auth",
	"/api/settings/public",
	"/health",
}

// Maintenance answers 503 on public routes while maintenance mode is on.
// Admin sessions pass through so the admin can turn it off again.
func Maintenance(settings SettingsReader, tokens TokenValidator, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range maintenanceExempt {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		s, err := settings.Get(ctx)
		if err != nil {
			log.Warn("[Maintenance] settings lookup failed", zap.Error(err))
			c.Next()
			return
		}
		if !s.MaintenanceMode {
			c.Next()
			return
		}

		if token, ok := bearerToken(c); ok {
			if claims, err := tokens.ValidateToken(token); err == nil && claims.Role == models.RoleAdmin {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
			"error":       "site is under maintenance",
			"maintenance": true,
			"message":     s.MaintenanceMessage,
		})
	}
}
