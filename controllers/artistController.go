package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ishanbagra18/artfolio-server/database"
	"github.com/ishanbagra18/artfolio-server/helpers"
	"github.com/ishanbagra18/artfolio-server/models"
	"github.com/ishanbagra18/artfolio-server/services"
	"go.uber.org/zap"
)

type ArtistController struct {
	artists    ArtistStore
	portfolios PortfolioStore
	feedback   FeedbackStore
	settings   SettingsStore
	notifier   *services.Notifier
	log        *zap.Logger
	now        func() time.Time
}

func NewArtistController(artists ArtistStore, portfolios PortfolioStore, feedback FeedbackStore, settings SettingsStore, notifier *services.Notifier, log *zap.Logger) *ArtistController {
	return &ArtistController{
		artists:    artists,
		portfolios: portfolios,
		feedback:   feedback,
		settings:   settings,
		notifier:   notifier,
		log:        log,
		now:        time.Now,
	}
}

// RegisterArtist creates an artist account. Duplicate email or artistid is a
// 400 whether caught by the pre-check or by the unique index.
func (ac *ArtistController) RegisterArtist() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RegisterArtistRequest
		if !bindJSON(c, &req) {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		emailTaken, idTaken, err := ac.artists.Taken(ctx, req.Email, req.ArtistID)
		if err != nil {
			storeFailure(c, ac.log, "[Register]", err, "")
			return
		}
		if emailTaken || idTaken {
			ac.log.Info("[Register] duplicate artist", zap.Bool("email", emailTaken), zap.Bool("artistid", idTaken))
			c.JSON(http.StatusBadRequest, gin.H{"error": "email or artistid already exists"})
			return
		}

		settings, err := ac.settings.Get(ctx)
		if err != nil {
			storeFailure(c, ac.log, "[Register]", err, "")
			return
		}
		if !settings.AllowRegistrations {
			c.JSON(http.StatusForbidden, gin.H{"error": "artist registration is closed"})
			return
		}
		if settings.MaxArtists > 0 {
			count, err := ac.artists.Count(ctx)
			if err != nil {
				storeFailure(c, ac.log, "[Register]", err, "")
				return
			}
			if count >= int64(settings.MaxArtists) {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("maximum number of artists (%d) reached", settings.MaxArtists)})
				return
			}
		}

		hash, err := helpers.HashPassword(req.Password)
		if err != nil {
			ac.log.Error("[Register] hashing failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "password hashing failed"})
			return
		}

		now := ac.now()
		artist := &models.Artist{
			ArtistID:  req.ArtistID,
			Username:  req.Username,
			Email:     req.Email,
			Password:  hash,
			Role:      models.RoleArtist,
			Status:    models.ArtistStatusActive,
			Phone:     req.Phone,
			Image:     req.Image,
			CreatedAt: now,
		}
		if err := ac.artists.Insert(ctx, artist); err != nil {
			if errors.Is(err, database.ErrDuplicate) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "email or artistid already exists"})
				return
			}
			storeFailure(c, ac.log, "[Register]", err, "")
			return
		}

		portfolio := models.NewPortfolio(artist.ArtistID, now)
		portfolio.BasicDetails.FullName = artist.Username
		portfolio.BasicDetails.Email = artist.Email
		portfolio.BasicDetails.Phone = artist.Phone
		portfolio.BasicDetails.ProfileImage = artist.Image
		if err := ac.portfolios.Save(ctx, portfolio); err != nil {
			ac.log.Warn("[Register] empty portfolio not created", zap.String("artistid", artist.ArtistID), zap.Error(err))
		}

		ac.log.Info("[Register] artist created", zap.String("artistid", artist.ArtistID))
		c.JSON(http.StatusCreated, gin.H{"msg": "artist created successfully", "artist": artist})
	}
}

func (ac *ArtistController) ListArtists() gin.HandlerFunc {
	return ac.list(false)
}

// PublicArtists lists active artists only.
func (ac *ArtistController) PublicArtists() gin.HandlerFunc {
	return ac.list(true)
}

func (ac *ArtistController) list(activeOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		artists, err := ac.artists.List(ctx, activeOnly)
		if err != nil {
			storeFailure(c, ac.log, "[ListArtists]", err, "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(artists), "artists": artists})
	}
}

func (ac *ArtistController) GetArtist() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		artist, err := ac.artists.FindByArtistID(ctx, c.Param("artistid"))
		if err != nil {
			storeFailure(c, ac.log, "[GetArtist]", err, "Artist not found")
			return
		}
		c.JSON(http.StatusOK, artist)
	}
}

// PublicArtist hides suspended accounts.
func (ac *ArtistController) PublicArtist() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		artist, err := ac.artists.FindByArtistID(ctx, c.Param("artistid"))
		if err == nil && artist.IsSuspended() {
			err = database.ErrNotFound
		}
		if err != nil {
			storeFailure(c, ac.log, "[PublicArtist]", err, "Artist not found")
			return
		}
		c.JSON(http.StatusOK, artist)
	}
}

func (ac *ArtistController) UpdateArtist() gin.HandlerFunc {
	return func(c *gin.Context) {
		var upd models.ArtistUpdate
		if !bindJSON(c, &upd) {
			return
		}
		ac.applyUpdate(c, c.Param("artistid"), upd)
	}
}

func (ac *ArtistController) MyProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		artist, err := ac.artists.FindByArtistID(ctx, currentArtistID(c))
		if err != nil {
			storeFailure(c, ac.log, "[MyProfile]", err, "Artist not found")
			return
		}
		c.JSON(http.StatusOK, artist)
	}
}

// UpdateMyProfile lets an artist edit contact fields but not role or status.
func (ac *ArtistController) UpdateMyProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		var upd models.ArtistUpdate
		if !bindJSON(c, &upd) {
			return
		}
		upd.Role = nil
		upd.Status = nil
		ac.applyUpdate(c, currentArtistID(c), upd)
	}
}

func (ac *ArtistController) applyUpdate(c *gin.Context, artistID string, upd models.ArtistUpdate) {
	if upd.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	before, err := ac.artists.FindByArtistID(ctx, artistID)
	if err != nil {
		storeFailure(c, ac.log, "[UpdateArtist]", err, "Artist not found")
		return
	}

	artist, err := ac.artists.Update(ctx, artistID, upd)
	if errors.Is(err, database.ErrDuplicate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email already exists"})
		return
	}
	if err != nil {
		storeFailure(c, ac.log, "[UpdateArtist]", err, "Artist not found")
		return
	}

	if upd.Status != nil && *upd.Status != before.Status {
		ac.notifyStatus(c, artist)
	}

	c.JSON(http.StatusOK, gin.H{"msg": "artist updated", "artist": artist})
}

func (ac *ArtistController) notifyStatus(c *gin.Context, artist *models.Artist) {
	html, err := services.RenderEmail("status", map[string]string{"Name": artist.Username, "Status": artist.Status})
	if err != nil {
		ac.log.Error("[UpdateArtist] status email render failed", zap.Error(err))
		return
	}
	ac.notifier.Email(c.Request.Context(), services.Email{
		To:      []string{artist.Email},
		Subject: "Your account status changed",
		HTML:    html,
	})
}

func (ac *ArtistController) ResetPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ResetPasswordRequest
		if !bindJSON(c, &req) {
			return
		}

		hash, err := helpers.HashPassword(req.Password)
		if err != nil {
			ac.log.Error("[ResetPassword] hashing failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "password hashing failed"})
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()
		if err := ac.artists.SetPassword(ctx, c.Param("artistid"), hash); err != nil {
			storeFailure(c, ac.log, "[ResetPassword]", err, "Artist not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "password reset"})
	}
}

// DeleteArtist removes the account with its portfolio and feedback.
func (ac *ArtistController) DeleteArtist() gin.HandlerFunc {
	return func(c *gin.Context) {
		artistID := c.Param("artistid")

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := ac.artists.Delete(ctx, artistID); err != nil {
			storeFailure(c, ac.log, "[DeleteArtist]", err, "Artist not found")
			return
		}

		if err := ac.portfolios.Delete(ctx, artistID); err != nil && !errors.Is(err, database.ErrNotFound) {
			ac.log.Warn("[DeleteArtist] portfolio delete failed", zap.String("artistid", artistID), zap.Error(err))
		}
		removed, err := ac.feedback.DeleteByArtist(ctx, artistID)
		if err != nil {
			ac.log.Warn("[DeleteArtist] feedback delete failed", zap.String("artistid", artistID), zap.Error(err))
		}

		ac.log.Info("[DeleteArtist] artist deleted", zap.String("artistid", artistID), zap.Int64("feedback", removed))
		c.JSON(http.StatusOK, gin.H{"msg": "artist deleted", "deletedFeedback": removed})
	}
}
