package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ishanbagra18/artfolio-server/models"
	"go.uber.org/zap"
)

// MessageController runs the one conversation each artist has with the
// admin. The thread is keyed by artist id.
type MessageController struct {
	messages MessageStore
	artists  ArtistStore
	media    *MediaController
	log      *zap.Logger
	now      func() time.Time
}

func NewMessageController(messages MessageStore, artists ArtistStore, media *MediaController, log *zap.Logger) *MessageController {
	return &MessageController{messages: messages, artists: artists, media: media, log: log, now: time.Now}
}

// send reads message_text, photo_url or a "photo" file from the form.
func (mc *MessageController) send(c *gin.Context, artistID, senderRole string) {
	messageText := strings.TrimSpace(c.PostForm("message_text"))
	photoURL := strings.TrimSpace(c.PostForm("photo_url"))

	ctx, cancel := requestContext(c)
	defer cancel()

	if photoURL == "" {
		if header, err := c.FormFile("photo"); err == nil {
			file, err := header.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "could not read photo"})
				return
			}
			defer file.Close()

			asset, _, err := mc.media.store(ctx, file, header, "chat_images", artistID)
			if err != nil {
				mc.media.uploadFailure(c, "[SendMessage]", err)
				return
			}
			photoURL = asset.URL
		}
	}

	if messageText == "" && photoURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Either message_text, photo_url, or photo file is required"})
		return
	}

	msg := &models.Message{
		ArtistID:    artistID,
		SenderRole:  senderRole,
		MessageText: messageText,
		PhotoURL:    photoURL,
		Timestamp:   mc.now(),
	}
	if err := mc.messages.Insert(ctx, msg); err != nil {
		storeFailure(c, mc.log, "[SendMessage]", err, "")
		return
	}

	mc.log.Debug("[SendMessage] message stored", zap.String("artistid", artistID), zap.String("from", senderRole))
	c.JSON(http.StatusCreated, gin.H{"message": "Message sent successfully", "data": msg})
}

// thread returns the conversation and marks the other side's messages read.
func (mc *MessageController) thread(c *gin.Context, artistID, readerRole string) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if _, err := mc.messages.MarkRead(ctx, artistID, readerRole); err != nil {
		mc.log.Warn("[GetMessages] mark read failed", zap.String("artistid", artistID), zap.Error(err))
	}
	messages, err := mc.messages.Conversation(ctx, artistID)
	if err != nil {
		storeFailure(c, mc.log, "[GetMessages]", err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"artistId": artistID, "count": len(messages), "messages": messages})
}

func (mc *MessageController) SendToAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		mc.send(c, currentArtistID(c), models.RoleArtist)
	}
}

func (mc *MessageController) MyMessages() gin.HandlerFunc {
	return func(c *gin.Context) {
		mc.thread(c, currentArtistID(c), models.RoleArtist)
	}
}

// ReplyToArtist lets the admin write into an artist's thread.
func (mc *MessageController) ReplyToArtist() gin.HandlerFunc {
	return func(c *gin.Context) {
		artistID := c.Param("artistid")
		ctx, cancel := requestContext(c)
		defer cancel()

		if _, err := mc.artists.FindByArtistID(ctx, artistID); err != nil {
			storeFailure(c, mc.log, "[ReplyToArtist]", err, "Artist not found")
			return
		}
		mc.send(c, artistID, models.RoleAdmin)
	}
}

func (mc *MessageController) ArtistThread() gin.HandlerFunc {
	return func(c *gin.Context) {
		mc.thread(c, c.Param("artistid"), models.RoleAdmin)
	}
}

func (mc *MessageController) Conversations() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		convs, err := mc.messages.Conversations(ctx)
		if err != nil {
			storeFailure(c, mc.log, "[Conversations]", err, "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(convs), "conversations": convs})
	}
}

// DeleteMessage lets an artist delete their own messages and the admin
// delete any message. On the admin route the message must belong to the
// :artistid thread.
func (mc *MessageController) DeleteMessage() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "message_id")
		if !ok {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()

		msg, err := mc.messages.FindByID(ctx, id)
		if err != nil {
			storeFailure(c, mc.log, "[DeleteMessage]", err, "Message not found")
			return
		}
		if thread := c.Param("artistid"); thread != "" && msg.ArtistID != thread {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		if currentRole(c) != models.RoleAdmin &&
			(msg.ArtistID != currentArtistID(c) || msg.SenderRole != models.RoleArtist) {
			c.JSON(http.StatusForbidden, gin.H{"error": "you can only delete your own messages"})
			return
		}

		if err := mc.messages.Delete(ctx, id); err != nil {
			storeFailure(c, mc.log, "[DeleteMessage]", err, "Message not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
	}
}
