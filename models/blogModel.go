package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"

	CommentStatusPending  = "pending"
	CommentStatusApproved = "approved"
)

type BlogPost struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Slug          string             `bson:"slug" json:"slug"`
	Excerpt       string             `bson:"excerpt,omitempty" json:"excerpt,omitempty"`
	Content       string             `bson:"content" json:"content"`
	CoverImage    string             `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	Author        string             `bson:"author,omitempty" json:"author,omitempty"`
	Tags          []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Status        string             `bson:"status" json:"status"`
	Views         int64              `bson:"views" json:"views"`
	PublishedAt   *time.Time         `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`
	SubscribersAt *time.Time         `bson:"subscribersNotifiedAt,omitempty" json:"subscribersNotifiedAt,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type BlogPostRequest struct {
	Title      string   `json:"title" validate:"required,min=3,max=200"`
	Excerpt    string   `json:"excerpt" validate:"omitempty,max=500"`
	Content    string   `json:"content" validate:"required"`
	CoverImage string   `json:"coverImage" validate:"omitempty,url"`
	Author     string   `json:"author" validate:"omitempty,max=100"`
	Tags       []string `json:"tags" validate:"max=20,dive,max=40"`
}

type BlogComment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID    primitive.ObjectID `bson:"postId" json:"postId"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"-"`
	Content   string             `bson:"content" json:"content"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type BlogCommentRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Content string `json:"content" validate:"required,min=2,max=2000"`
}

type BlogSubscriber struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	SubscribedAt time.Time          `bson:"subscribedAt" json:"subscribedAt"`
}

type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r *SubscribeRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
}
