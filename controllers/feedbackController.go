package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ishanbagra18/artfolio-server/database"
	"github.com/ishanbagra18/artfolio-server/helpers"
	"github.com/ishanbagra18/artfolio-server/models"
	"github.com/ishanbagra18/artfolio-server/services"
	"go.uber.org/zap"
)

type FeedbackController struct {
	artists    ArtistStore
	portfolios PortfolioStore
	feedback   FeedbackStore
	notifier   *services.Notifier
	log        *zap.Logger
	now        func() time.Time
}

func NewFeedbackController(artists ArtistStore, portfolios PortfolioStore, feedback FeedbackStore, notifier *services.Notifier, log *zap.Logger) *FeedbackController {
	return &FeedbackController{
		artists:    artists,
		portfolios: portfolios,
		feedback:   feedback,
		notifier:   notifier,
		log:        log,
		now:        time.Now,
	}
}

// SubmitFeedback stores a client review twice: as a feedbacks document and
// embedded in the artist's portfolio. When the portfolio write fails the
// feedbacks document is removed again.
func (fc *FeedbackController) SubmitFeedback() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.FeedbackRequest
		if !bindJSON(c, &req) {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		artist, err := fc.artists.FindByArtistID(ctx, req.ArtistID)
		if err == nil && artist.IsSuspended() {
			err = database.ErrNotFound
		}
		if err != nil {
			storeFailure(c, fc.log, "[SubmitFeedback]", err, "Artist not found")
			return
		}

		now := fc.now()
		fb := &models.Feedback{
			ReviewID:    uuid.NewString(),
			ArtistID:    artist.ArtistID,
			ClientName:  req.ClientName,
			ClientEmail: req.ClientEmail,
			Rating:      req.Rating,
			Comment:     req.Comment,
			ProjectType: req.ProjectType,
			IPAddress:   c.ClientIP(),
			CreatedAt:   now,
		}
		if err := fc.feedback.Insert(ctx, fb); err != nil {
			storeFailure(c, fc.log, "[SubmitFeedback]", err, "")
			return
		}

		review := models.Review{
			ID:          fb.ReviewID,
			ClientName:  fb.ClientName,
			ClientEmail: fb.ClientEmail,
			Rating:      fb.Rating,
			Comment:     fb.Comment,
			ProjectType: fb.ProjectType,
			CreatedAt:   now,
		}
		p, err := mutatePortfolio(ctx, fc.portfolios, artist.ArtistID, now, true, func(p *models.Portfolio) error {
			p.Ratings = helpers.AddReview(p.Ratings, review)
			return nil
		})
		if err != nil {
			fc.log.Error("[SubmitFeedback] portfolio update failed, removing feedback",
				zap.String("artistid", artist.ArtistID), zap.Error(err))
			if derr := fc.feedback.DeleteByID(context.WithoutCancel(ctx), fb.ID); derr != nil {
				fc.log.Error("[SubmitFeedback] compensating delete failed",
					zap.String("feedback", fb.ID.Hex()), zap.Error(derr))
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "feedback could not be saved"})
			return
		}

		fc.notifyArtist(c, artist, fb, p.Ratings)

		c.JSON(http.StatusCreated, gin.H{
			"msg":      "feedback submitted",
			"feedback": fb,
			"ratings": gin.H{
				"currentRating":   p.Ratings.CurrentRating,
				"totalReviews":    p.Ratings.TotalReviews,
				"ratingBreakdown": p.Ratings.RatingBreakdown,
			},
		})
	}
}

func (fc *FeedbackController) notifyArtist(c *gin.Context, artist *models.Artist, fb *models.Feedback, ratings models.Ratings) {
	html, err := services.RenderEmail("feedback", map[string]interface{}{
		"Artist":  artist.Username,
		"Client":  fb.ClientName,
		"Rating":  fb.Rating,
		"Comment": fb.Comment,
		"Average": ratings.CurrentRating,
		"Total":   ratings.TotalReviews,
	})
	if err != nil {
		fc.log.Error("[SubmitFeedback] email render failed", zap.Error(err))
	} else {
		fc.notifier.Email(c.Request.Context(), services.Email{
			To:      []string{artist.Email},
			ReplyTo: fb.ClientEmail,
			Subject: fmt.Sprintf("New %d-star review from %s", fb.Rating, fb.ClientName),
			HTML:    html,
		})
	}
	fc.notifier.Phone(c.Request.Context(), artist.Phone,
		fmt.Sprintf("New %d-star review from %s on your portfolio.", fb.Rating, fb.ClientName))
}

func (fc *FeedbackController) MyFeedback() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		items, err := fc.feedback.ListByArtist(ctx, currentArtistID(c))
		if err != nil {
			storeFailure(c, fc.log, "[MyFeedback]", err, "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(items), "feedback": items})
	}
}

func (fc *FeedbackController) ListFeedback() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, perPage := helpers.Pagination(c)

		ctx, cancel := requestContext(c)
		defer cancel()

		items, total, err := fc.feedback.List(ctx, int64((page-1)*perPage), int64(perPage))
		if err != nil {
			storeFailure(c, fc.log, "[ListFeedback]", err, "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"total": total, "page": page, "recordPerPage": perPage, "feedback": items})
	}
}

// DeleteFeedback removes a feedback document and its portfolio review.
func (fc *FeedbackController) DeleteFeedback() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		fb, err := fc.feedback.FindByID(ctx, id)
		if err != nil {
			storeFailure(c, fc.log, "[DeleteFeedback]", err, "Feedback not found")
			return
		}

		_, err = mutatePortfolio(ctx, fc.portfolios, fb.ArtistID, fc.now(), false, func(p *models.Portfolio) error {
			ratings, found := helpers.RemoveReviewByID(p.Ratings, fb.ReviewID)
			if !found {
				return errNoChange
			}
			p.Ratings = ratings
			return nil
		})
		if err != nil && !errors.Is(err, database.ErrNotFound) {
			storeFailure(c, fc.log, "[DeleteFeedback]", err, "")
			return
		}

		if err := fc.feedback.DeleteByID(ctx, id); err != nil {
			storeFailure(c, fc.log, "[DeleteFeedback]", err, "Feedback not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "feedback deleted"})
	}
}

// DeleteReview removes the review at a position in the portfolio and the
// feedbacks document linked to it.
func (fc *FeedbackController) DeleteReview() gin.HandlerFunc {
	return func(c *gin.Context) {
		artistID := c.Param("artistid")
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "review index must be a number"})
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		var removed models.Review
		p, err := mutatePortfolio(ctx, fc.portfolios, artistID, fc.now(), false, func(p *models.Portfolio) error {
			ratings, review, err := helpers.RemoveReviewAt(p.Ratings, index)
			if err != nil {
				return fmt.Errorf("%w: %v", errItemNotFound, err)
			}
			p.Ratings = ratings
			removed = review
			return nil
		})
		if errors.Is(err, errItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		if err != nil {
			storeFailure(c, fc.log, "[DeleteReview]", err, "Portfolio not found")
			return
		}

		if removed.ID != "" {
			if err := fc.feedback.DeleteByReviewID(ctx, removed.ID); err != nil && !errors.Is(err, database.ErrNotFound) {
				fc.log.Warn("[DeleteReview] linked feedback delete failed", zap.String("reviewId", removed.ID), zap.Error(err))
			}
		}

		c.JSON(http.StatusOK, gin.H{"msg": "review deleted", "ratings": p.Ratings})
	}
}
