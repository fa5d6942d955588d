package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ishanbagra18/artfolio-server/database"
	"github.com/ishanbagra18/artfolio-server/helpers"
	"github.com/ishanbagra18/artfolio-server/models"
	"go.uber.org/zap"
)

// Context keys set by Authentication.
const (
	CtxArtistID = "artistid"
	CtxRole     = "role"
	CtxUsername = "username"
)

// TokenCookie is the cookie the site front end stores the session token in.
const TokenCookie = "token"

type TokenValidator interface {
	ValidateToken(signed string) (*helpers.SignedDetails, error)
}

type ArtistLookup interface {
	FindByArtistID(ctx context.Context, artistID string) (*models.Artist, error)
}

func bearerToken(c *gin.Context) (string, bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}

func setClaims(c *gin.Context, claims *helpers.SignedDetails) {
	c.Set(CtxArtistID, claims.ArtistID)
	c.Set(CtxRole, claims.Role)
	c.Set(CtxUsername, claims.Username)
}

// Authentication rejects requests without a valid session token.
func Authentication(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			return
		}

		claims, err := tokens.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// RequireRole must run after Authentication.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxRole) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}

// ActiveArtist must run after Authentication. A token outlives the account
// it was issued for, so the artist is looked up on every request: deleted
// artists get 401 and suspended ones 403.
func ActiveArtist(artists ArtistLookup, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		artistID := c.GetString(CtxArtistID)
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		artist, err := artists.FindByArtistID(ctx, artistID)
		switch {
		case errors.Is(err, database.ErrNotFound):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account no longer exists"})
			return
		case err != nil:
			log.Error("[ActiveArtist] artist lookup failed", zap.String("artistid", artistID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		case artist.IsSuspended():
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account is suspended"})
			return
		}
		c.Next()
	}
}
