package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"github.com/ishanbagra18/artfolio-server/database"
	"github.com/ishanbagra18/artfolio-server/models"
	"github.com/ishanbagra18/artfolio-server/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// subscriberSendLimit caps concurrent subscriber emails per publish.
const subscriberSendLimit = 5

type BlogController struct {
	posts       PostStore
	comments    CommentStore
	subscribers SubscriberStore
	notifier    *services.Notifier
	siteURL     string
	log         *zap.Logger
	now         func() time.Time
}

func NewBlogController(posts PostStore, comments CommentStore, subscribers SubscriberStore, notifier *services.Notifier, siteURL string, log *zap.Logger) *BlogController {
	return &BlogController{
		posts:       posts,
		comments:    comments,
		subscribers: subscribers,
		notifier:    notifier,
		siteURL:     strings.TrimRight(siteURL, "/"),
		log:         log,
		now:         time.Now,
	}
}

// uniqueSlug derives a slug from title, suffixing -2, -3, ... until no other
// post uses it.
func (bc *BlogController) uniqueSlug(ctx context.Context, title string, exclude primitive.ObjectID) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "post"
	}
	candidate := base
	for n := 2; n < 100; n++ {
		taken, err := bc.posts.SlugTaken(ctx, candidate, exclude)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
	return "", database.ErrDuplicate
}

func (bc *BlogController) postFailure(c *gin.Context, tag string, err error) {
	if errors.Is(err, database.ErrDuplicate) {
		c.JSON(http.StatusConflict, gin.H{"error": "a post with this slug already exists"})
		return
	}
	storeFailure(c, bc.log, tag, err, "Post not found")
}

func (bc *BlogController) CreatePost() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BlogPostRequest
		if !bindJSON(c, &req) {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		s, err := bc.uniqueSlug(ctx, req.Title, primitive.NilObjectID)
		if err != nil {
			bc.postFailure(c, "[CreatePost]", err)
			return
		}

		now := bc.now()
		post := &models.BlogPost{
			Title:      req.Title,
			Slug:       s,
			Excerpt:    req.Excerpt,
			Content:    req.Content,
			CoverImage: req.CoverImage,
			Author:     req.Author,
			Tags:       req.Tags,
			Status:     models.PostStatusDraft,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := bc.posts.InsertPost(ctx, post); err != nil {
			bc.postFailure(c, "[CreatePost]", err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"msg": "post created", "post": post})
	}
}

func (bc *BlogController) UpdatePost() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}
		var req models.BlogPostRequest
		if !bindJSON(c, &req) {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		s, err := bc.uniqueSlug(ctx, req.Title, id)
		if err != nil {
			bc.postFailure(c, "[UpdatePost]", err)
			return
		}
		post, err := bc.posts.UpdatePost(ctx, id, req, s, bc.now())
		if err != nil {
			bc.postFailure(c, "[UpdatePost]", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "post updated", "post": post})
	}
}

func (bc *BlogController) DeletePost() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()

		if err := bc.posts.DeletePost(ctx, id); err != nil {
			bc.postFailure(c, "[DeletePost]", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "post deleted"})
	}
}

func (bc *BlogController) ListAllPosts() gin.HandlerFunc {
	return bc.listPosts(false)
}

func (bc *BlogController) ListPublishedPosts() gin.HandlerFunc {
	return bc.listPosts(true)
}

func (bc *BlogController) listPosts(publishedOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		posts, err := bc.posts.ListPosts(ctx, publishedOnly)
		if err != nil {
			bc.postFailure(c, "[ListPosts]", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(posts), "posts": posts})
	}
}

func (bc *BlogController) GetPost() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()

		post, err := bc.posts.FindPost(ctx, id)
		if err != nil {
			bc.postFailure(c, "[GetPost]", err)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

// GetPublishedPost serves a post by slug and counts the view.
func (bc *BlogController) GetPublishedPost() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		post, err := bc.posts.ViewPublished(ctx, c.Param("slug"))
		if err != nil {
			bc.postFailure(c, "[GetPublishedPost]", err)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

// PublishPost publishes a post. Only the first publish of a post emails the
// subscribers; republishing after an unpublish does not.
func (bc *BlogController) PublishPost() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()

		post, first, err := bc.posts.Publish(ctx, id, bc.now())
		if err != nil {
			bc.postFailure(c, "[PublishPost]", err)
			return
		}

		var notified, failed int64
		if first {
			notified, failed = bc.notifySubscribers(c.Request.Context(), post)
			if err := bc.posts.MarkSubscribersNotified(ctx, id, bc.now()); err != nil {
				bc.log.Warn("[PublishPost] could not mark subscribers notified", zap.Error(err))
			}
		}

		bc.log.Info("[PublishPost] published", zap.String("slug", post.Slug),
			zap.Bool("first", first), zap.Int64("notified", notified), zap.Int64("failed", failed))
		c.JSON(http.StatusOK, gin.H{
			"msg":          "post published",
			"post":         post,
			"firstPublish": first,
			"notified":     notified,
			"failed":       failed,
		})
	}
}

func (bc *BlogController) notifySubscribers(ctx context.Context, post *models.BlogPost) (notified, failed int64) {
	subs, err := bc.subscribers.ListSubscribers(ctx)
	if err != nil {
		bc.log.Error("[PublishPost] subscriber list failed", zap.Error(err))
		return 0, 0
	}

	var sent, lost atomic.Int64
	var g errgroup.Group
	g.SetLimit(subscriberSendLimit)
	for _, sub := range subs {
		sub := sub
		g.Go(func() error {
			html, err := services.RenderEmail("blogpost", map[string]string{
				"Title":       post.Title,
				"Excerpt":     post.Excerpt,
				"URL":         bc.siteURL + "/blog/" + post.Slug,
				"Unsubscribe": bc.siteURL + "/api/blog/unsubscribe?email=" + url.QueryEscape(sub.Email),
			})
			if err == nil && bc.notifier.Email(ctx, services.Email{
				To:      []string{sub.Email},
				Subject: "New post: " + post.Title,
				HTML:    html,
			}) {
				sent.Add(1)
				return nil
			}
			lost.Add(1)
			return nil
		})
	}
	_ = g.Wait()
	return sent.Load(), lost.Load()
}

func (bc *BlogController) UnpublishPost() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()

		post, err := bc.posts.Unpublish(ctx, id, bc.now())
		if err != nil {
			bc.postFailure(c, "[UnpublishPost]", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "post unpublished", "post": post})
	}
}

func (bc *BlogController) ListApprovedComments() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		post, err := bc.posts.FindBySlug(ctx, c.Param("slug"))
		if err != nil {
			bc.postFailure(c, "[ListComments]", err)
			return
		}
		comments, err := bc.comments.ListComments(ctx, post.ID, true)
		if err != nil {
			storeFailure(c, bc.log, "[ListComments]", err, "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(comments), "comments": comments})
	}
}

// AddComment stores a visitor comment as pending moderation.
func (bc *BlogController) AddComment() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BlogCommentRequest
		if !bindJSON(c, &req) {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()

		post, err := bc.posts.FindBySlug(ctx, c.Param("slug"))
		if err != nil {
			bc.postFailure(c, "[AddComment]", err)
			return
		}

		comment := &models.BlogComment{
			PostID:    post.ID,
			Name:      req.Name,
			Email:     req.Email,
			Content:   req.Content,
			Status:    models.CommentStatusPending,
			CreatedAt: bc.now(),
		}
		if err := bc.comments.InsertComment(ctx, comment); err != nil {
			storeFailure(c, bc.log, "[AddComment]", err, "")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"msg": "comment submitted for review", "comment": comment})
	}
}

func (bc *BlogController) ListComments() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "id")
		if !ok {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()

		comments, err := bc.comments.ListComments(ctx, id, false)
		if err != nil {
			storeFailure(c, bc.log, "[ListComments]", err, "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(comments), "comments": comments})
	}
}

func (bc *BlogController) ApproveComment() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "commentId")
		if !ok {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()

		if err := bc.comments.ApproveComment(ctx, id); err != nil {
			storeFailure(c, bc.log, "[ApproveComment]", err, "Comment not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "comment approved"})
	}
}

func (bc *BlogController) DeleteComment() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c, "commentId")
		if !ok {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()

		if err := bc.comments.DeleteComment(ctx, id); err != nil {
			storeFailure(c, bc.log, "[DeleteComment]", err, "Comment not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "comment deleted"})
	}
}

func (bc *BlogController) Subscribe() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SubscribeRequest
		if !bindJSON(c, &req) {
			return
		}
		ctx, cancel := requestContext(c)
		defer cancel()

		created, err := bc.subscribers.Subscribe(ctx, req.Email, bc.now())
		if err != nil {
			storeFailure(c, bc.log, "[Subscribe]", err, "")
			return
		}
		if !created {
			c.JSON(http.StatusOK, gin.H{"msg": "already subscribed"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"msg": "subscribed"})
	}
}

// Unsubscribe takes the address from ?email= (the link in every post email)
// or from a JSON body.
func (bc *BlogController) Unsubscribe() gin.HandlerFunc {
	return func(c *gin.Context) {
		req := models.SubscribeRequest{Email: c.Query("email")}
		if req.Email == "" {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
				return
			}
		}
		req.Normalize()
		if err := validate.Struct(req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := bc.subscribers.Unsubscribe(ctx, req.Email); err != nil {
			storeFailure(c, bc.log, "[Unsubscribe]", err, "Subscriber not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "unsubscribed"})
	}
}

func (bc *BlogController) ListSubscribers() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		subs, err := bc.subscribers.ListSubscribers(ctx)
		if err != nil {
			storeFailure(c, bc.log, "[ListSubscribers]", err, "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(subs), "subscribers": subs})
	}
}
