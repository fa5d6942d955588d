package models

import "time"

type LoginRequest struct {
	ArtistID string `json:"artistid" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=72"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginResponse is returned by both login endpoints.
type LoginResponse struct {
	Msg       string    `json:"msg"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Role      string    `json:"role"`
	Artist    *Artist   `json:"artist,omitempty"`
}
