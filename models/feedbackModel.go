package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback is the standalone record of a client review. The same review is
// embedded in the artist's portfolio under ReviewID.
type Feedback struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReviewID    string             `bson:"reviewId" json:"reviewId"`
	ArtistID    string             `bson:"artistId" json:"artistId"`
	ClientName  string             `bson:"clientName" json:"clientName"`
	ClientEmail string             `bson:"clientEmail" json:"clientEmail"`
	Rating      int                `bson:"rating" json:"rating"`
	Comment     string             `bson:"comment" json:"comment"`
	ProjectType string             `bson:"projectType,omitempty" json:"projectType,omitempty"`
	IPAddress   string             `bson:"ipAddress,omitempty" json:"-"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

type FeedbackRequest struct {
	ArtistID    string `json:"artistId" validate:"required"`
	ClientName  string `json:"clientName" validate:"required,min=2,max=100"`
	ClientEmail string `json:"clientEmail" validate:"required,email"`
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
	Comment     string `json:"comment" validate:"required,min=3,max=2000"`
	ProjectType string `json:"projectType" validate:"omitempty,max=100"`
}
