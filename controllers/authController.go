package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ishanbagra18/artfolio-server/config"
	"github.com/ishanbagra18/artfolio-server/database"
	"github.com/ishanbagra18/artfolio-server/helpers"
	"github.com/ishanbagra18/artfolio-server/middleware"
	"github.com/ishanbagra18/artfolio-server/models"
	"go.uber.org/zap"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	GenerateToken(artistID, username, role string) (string, time.Time, error)
}

type AuthController struct {
	artists ArtistStore
	logins  LoginLogStore
	tokens  TokenIssuer
	admin   config.AdminConfig
	log     *zap.Logger
	now     func() time.Time
}

func NewAuthController(artists ArtistStore, logins LoginLogStore, tokens TokenIssuer, admin config.AdminConfig, log *zap.Logger) *AuthController {
	return &AuthController{artists: artists, logins: logins, tokens: tokens, admin: admin, log: log, now: time.Now}
}

const badCredentials = "artist id or password is incorrect"

// recordLogin writes a login_logs entry. A failed write only logs.
func (ac *AuthController) recordLogin(c *gin.Context, artistID, role string, success bool, reason string) {
	entry := &models.LoginLog{
		ArtistID:  artistID,
		Role:      role,
		Success:   success,
		Reason:    reason,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		At:        ac.now(),
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	if err := ac.logins.Insert(ctx, entry); err != nil {
		ac.log.Warn("[Login] could not record login attempt", zap.String("artistid", artistID), zap.Error(err))
	}
}

func (ac *AuthController) issue(c *gin.Context, artistID, username, role string) (string, time.Time, bool) {
	token, expires, err := ac.tokens.GenerateToken(artistID, username, role)
	if err != nil {
		ac.log.Error("[Login] token generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return "", time.Time{}, false
	}
	maxAge := int(time.Until(expires).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, token, maxAge, "/", "", c.Request.TLS != nil, true)
	return token, expires, true
}

func (ac *AuthController) ArtistLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if !bindJSON(c, &req) {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		artist, err := ac.artists.FindByArtistID(ctx, req.ArtistID)
		if errors.Is(err, database.ErrNotFound) {
			ac.recordLogin(c, req.ArtistID, models.RoleArtist, false, "unknown artist")
			c.JSON(http.StatusUnauthorized, gin.H{"error": badCredentials})
			return
		}
		if err != nil {
			storeFailure(c, ac.log, "[Login]", err, badCredentials)
			return
		}

		if !helpers.VerifyPassword(artist.Password, req.Password) {
			ac.recordLogin(c, artist.ArtistID, artist.Role, false, "wrong password")
			c.JSON(http.StatusUnauthorized, gin.H{"error": badCredentials})
			return
		}
		if artist.IsSuspended() {
			ac.recordLogin(c, artist.ArtistID, artist.Role, false, "suspended")
			c.JSON(http.StatusForbidden, gin.H{"error": "account suspended"})
			return
		}

		token, expires, ok := ac.issue(c, artist.ArtistID, artist.Username, models.RoleArtist)
		if !ok {
			return
		}

		now := ac.now()
		if err := ac.artists.TouchLogin(ctx, artist.ArtistID, now); err != nil {
			ac.log.Warn("[Login] lastLogin update failed", zap.String("artistid", artist.ArtistID), zap.Error(err))
		}
		artist.LastLogin = &now
		ac.recordLogin(c, artist.ArtistID, models.RoleArtist, true, "")

		ac.log.Info("[Login] artist signed in", zap.String("artistid", artist.ArtistID))
		c.JSON(http.StatusOK, models.LoginResponse{
			Msg:       "login successful",
			Token:     token,
			ExpiresAt: expires,
			Role:      models.RoleArtist,
			Artist:    artist,
		})
	}
}

func (ac *AuthController) AdminLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AdminLoginRequest
		if !bindJSON(c, &req) {
			return
		}

		if ac.admin.Username == "" || ac.admin.Password == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "admin login is not configured"})
			return
		}
		userOK := helpers.SecureCompare(req.Username, ac.admin.Username)
		passOK := helpers.SecureCompare(req.Password, ac.admin.Password)
		if !userOK || !passOK {
			ac.recordLogin(c, req.Username, models.RoleAdmin, false, "wrong credentials")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "username or password is incorrect"})
			return
		}

		token, expires, ok := ac.issue(c, ac.admin.Username, ac.admin.Username, models.RoleAdmin)
		if !ok {
			return
		}
		ac.recordLogin(c, ac.admin.Username, models.RoleAdmin, true, "")

		ac.log.Info("[AdminLogin] admin signed in")
		c.JSON(http.StatusOK, models.LoginResponse{
			Msg:       "login successful",
			Token:     token,
			ExpiresAt: expires,
			Role:      models.RoleAdmin,
		})
	}
}

func (ac *AuthController) Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie(middleware.TokenCookie, "", -1, "/", "", c.Request.TLS != nil, true)
		c.JSON(http.StatusOK, gin.H{"msg": "logged out"})
	}
}

func (ac *AuthController) Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := gin.H{
			"artistid": currentArtistID(c),
			"username": c.GetString(middleware.CtxUsername),
			"role":     currentRole(c),
		}
		if currentRole(c) != models.RoleArtist {
			c.JSON(http.StatusOK, resp)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()
		artist, err := ac.artists.FindByArtistID(ctx, currentArtistID(c))
		if err != nil {
			storeFailure(c, ac.log, "[Me]", err, "Artist not found")
			return
		}
		resp["artist"] = artist
		c.JSON(http.StatusOK, resp)
	}
}

func (ac *AuthController) ChangePassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ChangePasswordRequest
		if !bindJSON(c, &req) {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		artist, err := ac.artists.FindByArtistID(ctx, currentArtistID(c))
		if err != nil {
			storeFailure(c, ac.log, "[ChangePassword]", err, "Artist not found")
			return
		}
		if !helpers.VerifyPassword(artist.Password, req.CurrentPassword) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "current password is incorrect"})
			return
		}

		hash, err := helpers.HashPassword(req.NewPassword)
		if err != nil {
			ac.log.Error("[ChangePassword] hashing failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "password hashing failed"})
			return
		}
		if err := ac.artists.SetPassword(ctx, artist.ArtistID, hash); err != nil {
			storeFailure(c, ac.log, "[ChangePassword]", err, "Artist not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"msg": "password updated"})
	}
}
