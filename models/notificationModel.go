package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BroadcastTarget addresses a notification to every artist.
const BroadcastTarget = "all"

type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ArtistID  string             `bson:"artistId" json:"artistId"`
	Title     string             `bson:"title" json:"title"`
	Message   string             `bson:"message" json:"message"`
	Type      string             `bson:"type,omitempty" json:"type,omitempty"`
	ReadBy    []string           `bson:"readBy" json:"-"`
	Read      bool               `bson:"-" json:"read"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type NotificationRequest struct {
	ArtistID  string `json:"artistId" validate:"required"`
	Title     string `json:"title" validate:"required,max=200"`
	Message   string `json:"message" validate:"required,max=5000"`
	Type      string `json:"type" validate:"omitempty,oneof=info warning success"`
	SendEmail bool   `json:"sendEmail"`
}

type BroadcastRequest struct {
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=10000"`
}
