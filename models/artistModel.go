package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleArtist = "artist"
	RoleAdmin  = "admin"

	ArtistStatusActive    = "active"
	ArtistStatusSuspended = "suspended"
)

// Artist is a registered account with a portfolio. Password holds a bcrypt
// hash and is never serialised to JSON.
type Artist struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ArtistID  string             `bson:"artistid" json:"artistid"`
	Username  string             `bson:"username" json:"username"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Role      string             `bson:"role" json:"role"`
	Status    string             `bson:"status,omitempty" json:"status,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
	LastLogin *time.Time         `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
}

// IsSuspended treats a missing status as active.
func (a *Artist) IsSuspended() bool {
	return a.Status == ArtistStatusSuspended
}

type RegisterArtistRequest struct {
	ArtistID string `json:"artistid" validate:"required,min=3,max=50,alphanum"`
	Username string `json:"username" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	Image    string `json:"image" validate:"omitempty,url"`
	Role     string `json:"role" validate:"omitempty,oneof=artist"`
}

func (r *RegisterArtistRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
}

// NormalizeEmail is the form every address is stored and compared in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ArtistUpdate carries only the fields a caller wants changed.
type ArtistUpdate struct {
	Username *string `json:"username" validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone" validate:"omitempty,max=20"`
	Image    *string `json:"image" validate:"omitempty,url"`
	Role     *string `json:"role" validate:"omitempty,oneof=artist"`
	Status   *string `json:"status" validate:"omitempty,oneof=active suspended"`
}

func (u *ArtistUpdate) Normalize() {
	if u.Email != nil {
		email := NormalizeEmail(*u.Email)
		u.Email = &email
	}
}

func (u ArtistUpdate) Empty() bool {
	return u.Username == nil && u.Email == nil && u.Phone == nil &&
		u.Image == nil && u.Role == nil && u.Status == nil
}
