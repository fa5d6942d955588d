package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LoginLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ArtistID  string             `bson:"artistid" json:"artistid"`
	Role      string             `bson:"role" json:"role"`
	Success   bool               `bson:"success" json:"success"`
	Reason    string             `bson:"reason,omitempty" json:"reason,omitempty"`
	IPAddress string             `bson:"ipAddress,omitempty" json:"ipAddress,omitempty"`
	UserAgent string             `bson:"userAgent,omitempty" json:"userAgent,omitempty"`
	At        time.Time          `bson:"at" json:"at"`
}
