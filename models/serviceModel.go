package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Service struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title" validate:"required,max=150"`
	Description string             `bson:"description" json:"description" validate:"omitempty,max=5000"`
	Icon        string             `bson:"icon,omitempty" json:"icon,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty" validate:"omitempty,url"`
	Price       string             `bson:"price,omitempty" json:"price,omitempty" validate:"omitempty,max=50"`
	Order       int                `bson:"order" json:"order"`
	Active      bool               `bson:"active" json:"active"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
