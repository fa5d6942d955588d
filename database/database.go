package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var (
	ErrNotFound        = errors.New("document not found")
	ErrDuplicate       = errors.New("duplicate key")
	ErrVersionConflict = errors.New("document was modified concurrently")
)

// Collection names.
const (
	ArtistsCollection       = "artists"
	PortfoliosCollection    = "portfolios"
	FeedbacksCollection     = "feedbacks"
	BlogPostsCollection     = "blogPosts"
	BlogCommentsCollection  = "blogComments"
	SubscribersCollection   = "blogSubscribers"
	ContactCollection       = "contactus"
	NotificationsCollection = "notifications"
	MessagesCollection      = "messages"
	ServicesCollection      = "services"
	SettingsCollection      = "settings"
	VisitorStatsCollection  = "visitor_stats"
	AdminTodosCollection    = "admin_todos"
	LoginLogsCollection     = "login_logs"
	MediaCollection         = "media_assets"
)

// Connect dials MongoDB and pings it before returning.
func Connect(ctx context.Context, uri string, log *zap.Logger) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(30 * time.Second).
		SetConnectTimeout(30 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	log.Debug("[Connect] connection established")

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	log.Info("[Connect] mongodb connected")
	return client, nil
}

// translate maps driver errors onto the package sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}
