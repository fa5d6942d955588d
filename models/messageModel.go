package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message belongs to the conversation between one artist and the admin.
// SenderRole tells which side wrote it.
type Message struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ArtistID    string             `bson:"artistId" json:"artistId"`
	SenderRole  string             `bson:"senderRole" json:"senderRole"`
	MessageText string             `bson:"messageText,omitempty" json:"messageText,omitempty"`
	PhotoURL    string             `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	Read        bool               `bson:"read" json:"read"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
}

// ConversationSummary is one row of the admin inbox.
type ConversationSummary struct {
	ArtistID    string    `bson:"_id" json:"artistId"`
	LastMessage string    `bson:"lastMessage" json:"lastMessage"`
	LastAt      time.Time `bson:"lastAt" json:"lastAt"`
	Unread      int       `bson:"unread" json:"unread"`
	Total       int       `bson:"total" json:"total"`
}
