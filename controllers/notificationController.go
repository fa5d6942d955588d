package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ishanbagra18/artfolio-server/models"
	"github.com/ishanbagra18/artfolio-server/services"
	"go.uber.org/zap"
)

type NotificationController struct {
	notifications NotificationStore
	artists       ArtistStore
	notifier      *services.Notifier
	log           *zap.Logger
	now           func() time.Time
}

func NewNotificationController(notifications NotificationStore, artists ArtistStore, notifier *services.Notifier, log *zap.Logger) *NotificationController {
	return &NotificationController{notifications: notifications, artists: artists, notifier: notifier, log: log, now: time.Now}
}

// CreateNotification addresses one artist, or every artist when artistId is
// "all". With sendEmail the same text goes out by email.
func (nc *NotificationController) CreateNotification() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.NotificationRequest
		if !bindJSON(c, &req) {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()

		var recipient *models.Artist
		if req.ArtistID != models.BroadcastTarget {
			artist, err := nc.artists.FindByArtistID(ctx, req.ArtistID)
			if err != nil {
				storeFailure(c, nc.log, "[CreateNotification]", err, "Artist not found")
				return
			}
			recipient = artist
		}

		n := &models.Notification{
			ArtistID:  req.ArtistID,
			Title:     req.Title,
			Message:   req.Message,
			Type:      req.Type,
			ReadBy:    []string{},
			CreatedAt: nc.now(),
		}
		if n.Type == "" {
			n.Type = "info"
		}
		if err := nc.notifications.Insert(ctx, n); err != nil {
			storeFailure(c, nc.log, "[CreateNotification]", err, "")
			return
		}

		emailed := false
		if req.SendEmail {
			emailed = nc.email(c, n, recipient)
		}
		c.JSON(http.StatusCreated, gin.H{"msg": "notification created", "notification": n, "emailed": emailed})
	}
}

func (nc *NotificationController) email(c *gin.Context, n *models.Notification, recipient *models.Artist) bool {
	html, err := services.RenderEmail("notification", n)
	if err != nil {
		nc.log.Error("[CreateNotification] email render failed", zap.Error(err))
		return false
	}
	if recipient != nil {
		return nc.notifier.Email(c.Request.Context(), services.Email{
			To:      []string{recipient.Email},
			Subject: n.Title,
			HTML:    html,
		})
	}

	emails, err := nc.artists.Emails(c.Request.Context())
	if err != nil {
		nc.log.Error("[CreateNotification] artist emails lookup failed", zap.Error(err))
		return false
	}
	return nc.notifier.Broadcast(c.Request.Context(), emails, n.Title, html)
}

func (nc *NotificationController) MyNotifications() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		items, err := nc.notifications.ListForArtist(ctx, currentArtistID(c))
		if err != nil {
			storeFailure(c, nc.log, "[MyNotifications]", err, "")
			return
		}
		unread := 0
		for _, n := range items {
			if !n.Read {
				unread++
			}
		}
		c.JSON(http.StatusOK, gin.H{"count": len(items), "unread": unread, "notifications": items})
	}
}

func (nc *NotificationController) MarkRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()

		if err := nc.notifications.MarkRead(ctx, id, currentArtistID(c)); err != nil {
			storeFailure(c, nc.log, "[MarkNotificationRead]", err, "Notification not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "notification marked as read"})
	}
}

func (nc *NotificationController) ListNotifications() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		items, err := nc.notifications.List(ctx)
		if err != nil {
			storeFailure(c, nc.log, "[ListNotifications]", err, "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(items), "notifications": items})
	}
}

func (nc *NotificationController) DeleteNotification() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()

		if err := nc.notifications.Delete(ctx, id); err != nil {
			storeFailure(c, nc.log, "[DeleteNotification]", err, "Notification not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "notification deleted"})
	}
}
