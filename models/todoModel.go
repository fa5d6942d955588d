package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AdminTodo struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Text      string             `bson:"text" json:"text" validate:"required,max=500"`
	Completed bool               `bson:"completed" json:"completed"`
	Priority  string             `bson:"priority,omitempty" json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	DueDate   *time.Time         `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
