package controllers

import (
	"context"
	"io"
	"time"

	"github.com/ishanbagra18/artfolio-server/models"
	"github.com/ishanbagra18/artfolio-server/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The interfaces below are satisfied by the Mongo stores in package
// database; handlers only see the methods they call.

type ArtistStore interface {
	Insert(ctx context.Context, artist *models.Artist) error
	Count(ctx context.Context) (int64, error)
	Taken(ctx context.Context, email, artistID string) (emailTaken, idTaken bool, err error)
	FindByArtistID(ctx context.Context, artistID string) (*models.Artist, error)
	List(ctx context.Context, activeOnly bool) ([]models.Artist, error)
	Update(ctx context.Context, artistID string, upd models.ArtistUpdate) (*models.Artist, error)
	SetPassword(ctx context.Context, artistID, hash string) error
	TouchLogin(ctx context.Context, artistID string, at time.Time) error
	Delete(ctx context.Context, artistID string) error
	Emails(ctx context.Context) ([]string, error)
}

type PortfolioStore interface {
	Get(ctx context.Context, artistID string) (*models.Portfolio, error)
	Save(ctx context.Context, p *models.Portfolio) error
	Delete(ctx context.Context, artistID string) error
	List(ctx context.Context) ([]models.Portfolio, error)
}

type FeedbackStore interface {
	Insert(ctx context.Context, f *models.Feedback) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Feedback, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	DeleteByReviewID(ctx context.Context, reviewID string) error
	DeleteByArtist(ctx context.Context, artistID string) (int64, error)
	ListByArtist(ctx context.Context, artistID string) ([]models.Feedback, error)
	List(ctx context.Context, skip, limit int64) ([]models.Feedback, int64, error)
	Count(ctx context.Context) (int64, error)
}

type PostStore interface {
	InsertPost(ctx context.Context, post *models.BlogPost) error
	UpdatePost(ctx context.Context, id primitive.ObjectID, req models.BlogPostRequest, slug string, at time.Time) (*models.BlogPost, error)
	DeletePost(ctx context.Context, id primitive.ObjectID) error
	FindPost(ctx context.Context, id primitive.ObjectID) (*models.BlogPost, error)
	FindBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	SlugTaken(ctx context.Context, slug string, exclude primitive.ObjectID) (bool, error)
	ListPosts(ctx context.Context, publishedOnly bool) ([]models.BlogPost, error)
	Publish(ctx context.Context, id primitive.ObjectID, at time.Time) (*models.BlogPost, bool, error)
	Unpublish(ctx context.Context, id primitive.ObjectID, at time.Time) (*models.BlogPost, error)
	MarkSubscribersNotified(ctx context.Context, id primitive.ObjectID, at time.Time) error
	ViewPublished(ctx context.Context, slug string) (*models.BlogPost, error)
	CountPosts(ctx context.Context) (int64, error)
}

type CommentStore interface {
	InsertComment(ctx context.Context, comment *models.BlogComment) error
	ListComments(ctx context.Context, postID primitive.ObjectID, approvedOnly bool) ([]models.BlogComment, error)
	ApproveComment(ctx context.Context, id primitive.ObjectID) error
	DeleteComment(ctx context.Context, id primitive.ObjectID) error
}

type SubscriberStore interface {
	Subscribe(ctx context.Context, email string, at time.Time) (bool, error)
	Unsubscribe(ctx context.Context, email string) error
	ListSubscribers(ctx context.Context) ([]models.BlogSubscriber, error)
	CountSubscribers(ctx context.Context) (int64, error)
}

type ContactStore interface {
	Insert(ctx context.Context, msg *models.ContactMessage) error
	List(ctx context.Context, skip, limit int64) ([]models.ContactMessage, int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.ContactMessage, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) error
	SaveReply(ctx context.Context, id primitive.ObjectID, reply string, at time.Time) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountUnread(ctx context.Context) (int64, error)
}

type NotificationStore interface {
	Insert(ctx context.Context, n *models.Notification) error
	ListForArtist(ctx context.Context, artistID string) ([]models.Notification, error)
	List(ctx context.Context) ([]models.Notification, error)
	MarkRead(ctx context.Context, id primitive.ObjectID, artistID string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type MessageStore interface {
	Insert(ctx context.Context, msg *models.Message) error
	Conversation(ctx context.Context, artistID string) ([]models.Message, error)
	MarkRead(ctx context.Context, artistID, readerRole string) (int64, error)
	Conversations(ctx context.Context) ([]models.ConversationSummary, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Message, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ServiceStore interface {
	Insert(ctx context.Context, svc *models.Service) error
	Update(ctx context.Context, id primitive.ObjectID, svc models.Service) (*models.Service, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, activeOnly bool) ([]models.Service, error)
}

type SettingsStore interface {
	Get(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, upd models.SettingsUpdate) (prev, next *models.Settings, err error)
}

type VisitorStore interface {
	Record(ctx context.Context, at time.Time, page string) error
	Report(ctx context.Context, from time.Time) (*models.VisitorReport, error)
	CountDay(ctx context.Context, at time.Time) (int64, error)
}

type TodoStore interface {
	Insert(ctx context.Context, todo *models.AdminTodo) error
	List(ctx context.Context) ([]models.AdminTodo, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminTodo, error)
	Replace(ctx context.Context, todo *models.AdminTodo) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type LoginLogStore interface {
	Insert(ctx context.Context, entry *models.LoginLog) error
	List(ctx context.Context, artistID string, limit int64) ([]models.LoginLog, error)
	Clear(ctx context.Context) (int64, error)
}

type MediaStore interface {
	Acquire(ctx context.Context, hash string) (*models.MediaAsset, error)
	Insert(ctx context.Context, asset *models.MediaAsset) error
	Release(ctx context.Context, publicID string) (bool, error)
	DeleteByPublicID(ctx context.Context, publicID string) error
	List(ctx context.Context) ([]models.MediaAsset, error)
}

type MediaUploader interface {
	Upload(ctx context.Context, r io.Reader, folder, publicID string) (*services.UploadedAsset, error)
	Destroy(ctx context.Context, publicID string) error
	Usage(ctx context.Context) (interface{}, error)
}
