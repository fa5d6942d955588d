package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ishanbagra18/artfolio-server/helpers"
	"github.com/ishanbagra18/artfolio-server/models"
	"github.com/ishanbagra18/artfolio-server/services"
	"go.uber.org/zap"
)

type ContactController struct {
	contacts ContactStore
	notifier *services.Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewContactController(contacts ContactStore, notifier *services.Notifier, log *zap.Logger) *ContactController {
	return &ContactController{contacts: contacts, notifier: notifier, log: log, now: time.Now}
}

func (cc *ContactController) SubmitContact() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ContactRequest
		if !bindJSON(c, &req) {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()

		msg := &models.ContactMessage{
			Name:      req.Name,
			Email:     req.Email,
			Phone:     req.Phone,
			Subject:   req.Subject,
			Message:   req.Message,
			Status:    models.ContactStatusNew,
			CreatedAt: cc.now(),
		}
		if err := cc.contacts.Insert(ctx, msg); err != nil {
			storeFailure(c, cc.log, "[SubmitContact]", err, "")
			return
		}

		html, err := services.RenderEmail("contact-admin", msg)
		if err != nil {
			cc.log.Error("[SubmitContact] email render failed", zap.Error(err))
		} else {
			subject := "New contact message"
			if msg.Subject != "" {
				subject += ": " + msg.Subject
			}
			cc.notifier.Admin(c.Request.Context(), services.Email{
				ReplyTo: msg.Email,
				Subject: subject,
				HTML:    html,
			}, "New contact message from "+msg.Name+" ("+msg.Email+")")
		}

		c.JSON(http.StatusCreated, gin.H{"msg": "message received"})
	}
}

func (cc *ContactController) ListContacts() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, perPage := helpers.Pagination(c)
		ctx, cancel := requestContext(c)
		defer cancel()

		items, total, err := cc.contacts.List(ctx, int64((page-1)*perPage), int64(perPage))
		if err != nil {
			storeFailure(c, cc.log, "[ListContacts]", err, "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"total": total, "page": page, "recordPerPage": perPage, "messages": items})
	}
}

func (cc *ContactController) MarkRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()

		if err := cc.contacts.SetStatus(ctx, id, models.ContactStatusRead); err != nil {
			storeFailure(c, cc.log, "[MarkContactRead]", err, "Message not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "marked as read"})
	}
}

// Reply emails the sender and records the reply. The reply is stored even
// when the email could not be sent; emailed reports which happened.
func (cc *ContactController) Reply() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}
		var req models.ContactReplyRequest
		if !bindJSON(c, &req) {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()

		msg, err := cc.contacts.FindByID(ctx, id)
		if err != nil {
			storeFailure(c, cc.log, "[ReplyContact]", err, "Message not found")
			return
		}

		emailed := false
		html, err := services.RenderEmail("contact-reply", map[string]string{
			"Name":     msg.Name,
			"Reply":    req.Reply,
			"Original": msg.Message,
		})
		if err != nil {
			cc.log.Error("[ReplyContact] email render failed", zap.Error(err))
		} else {
			subject := "Re: your message"
			if msg.Subject != "" {
				subject = "Re: " + msg.Subject
			}
			emailed = cc.notifier.Email(c.Request.Context(), services.Email{
				To:      []string{msg.Email},
				Subject: subject,
				HTML:    html,
			})
		}

		if err := cc.contacts.SaveReply(ctx, id, req.Reply, cc.now()); err != nil {
			storeFailure(c, cc.log, "[ReplyContact]", err, "Message not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "reply saved", "emailed": emailed})
	}
}

func (cc *ContactController) DeleteContact() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()

		if err := cc.contacts.Delete(ctx, id); err != nil {
			storeFailure(c, cc.log, "[DeleteContact]", err, "Message not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "message deleted"})
	}
}
