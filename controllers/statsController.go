package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ishanbagra18/artfolio-server/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const maxReportDays = 365

type StatsController struct {
	visitors    VisitorStore
	artists     ArtistStore
	feedback    FeedbackStore
	posts       PostStore
	subscribers SubscriberStore
	contacts    ContactStore
	log         *zap.Logger
	now         func() time.Time
}

func NewStatsController(visitors VisitorStore, artists ArtistStore, feedback FeedbackStore, posts PostStore, subscribers SubscriberStore, contacts ContactStore, log *zap.Logger) *StatsController {
	return &StatsController{
		visitors:    visitors,
		artists:     artists,
		feedback:    feedback,
		posts:       posts,
		subscribers: subscribers,
		contacts:    contacts,
		log:         log,
		now:         time.Now,
	}
}

// RecordVisit counts one page view for today.
func (sc *StatsController) RecordVisit() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.VisitRequest
		if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()

		if err := sc.visitors.Record(ctx, sc.now(), req.Page); err != nil {
			storeFailure(c, sc.log, "[RecordVisit]", err, "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "visit recorded"})
	}
}

// reportDays reads ?days=N, falling back to ?range=weekly|monthly.
func reportDays(c *gin.Context) int {
	if n, err := strconv.Atoi(c.Query("days")); err == nil && n > 0 {
		if n > maxReportDays {
			return maxReportDays
		}
		return n
	}
	if c.DefaultQuery("range", "weekly") == "monthly" {
		return 30
	}
	return 7
}

func (sc *StatsController) VisitorReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		days := reportDays(c)
		from := sc.now().UTC().AddDate(0, 0, -(days - 1))

		ctx, cancel := requestContext(c)
		defer cancel()

		report, err := sc.visitors.Report(ctx, from)
		if err != nil {
			storeFailure(c, sc.log, "[VisitorReport]", err, "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"days": days, "report": report})
	}
}

// Dashboard gathers the admin overview counters concurrently.
func (sc *StatsController) Dashboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		var counts models.DashboardCounts
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			counts.Artists, err = sc.artists.Count(gctx)
			return err
		})
		g.Go(func() (err error) {
			counts.Feedback, err = sc.feedback.Count(gctx)
			return err
		})
		g.Go(func() (err error) {
			counts.BlogPosts, err = sc.posts.CountPosts(gctx)
			return err
		})
		g.Go(func() (err error) {
			counts.Subscribers, err = sc.subscribers.CountSubscribers(gctx)
			return err
		})
		g.Go(func() (err error) {
			counts.UnreadContacts, err = sc.contacts.CountUnread(gctx)
			return err
		})
		g.Go(func() (err error) {
			counts.VisitorsToday, err = sc.visitors.CountDay(gctx, sc.now())
			return err
		})
		if err := g.Wait(); err != nil {
			storeFailure(c, sc.log, "[Dashboard]", err, "")
			return
		}
		c.JSON(http.StatusOK, counts)
	}
}
