package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type indexSpec struct {
	collection string
	keys       bson.D
	unique     bool
}

var indexSpecs = []indexSpec{
	{ArtistsCollection, bson.D{{Key: "artistid", Value: 1}}, true},
	{ArtistsCollection, bson.D{{Key: "email", Value: 1}}, true},
	{PortfoliosCollection, bson.D{{Key: "artistId", Value: 1}}, true},
	{FeedbacksCollection, bson.D{{Key: "artistId", Value: 1}, {Key: "createdAt", Value: -1}}, false},
	{FeedbacksCollection, bson.D{{Key: "reviewId", Value: 1}}, false},
	{BlogPostsCollection, bson.D{{Key: "slug", Value: 1}}, true},
	{BlogCommentsCollection, bson.D{{Key: "postId", Value: 1}, {Key: "createdAt", Value: 1}}, false},
	{SubscribersCollection, bson.D{{Key: "email", Value: 1}}, true},
	{NotificationsCollection, bson.D{{Key: "artistId", Value: 1}, {Key: "createdAt", Value: -1}}, false},
	{MessagesCollection, bson.D{{Key: "artistId", Value: 1}, {Key: "timestamp", Value: 1}}, false},
	{VisitorStatsCollection, bson.D{{Key: "date", Value: 1}}, true},
	{LoginLogsCollection, bson.D{{Key: "at", Value: -1}}, false},
	{MediaCollection, bson.D{{Key: "hash", Value: 1}}, true},
	{MediaCollection, bson.D{{Key: "publicId", Value: 1}}, false},
}

// EnsureIndexes creates every index the application relies on. Unique
// indexes fail while duplicates exist; run the cleanup first in that case.
// A failing index does not stop the rest; all failures are returned joined.
func EnsureIndexes(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	return ensureIndexes(ctx, func(ctx context.Context, collection string, model mongo.IndexModel) (string, error) {
		return db.Collection(collection).Indexes().CreateOne(ctx, model)
	}, log)
}

type createIndexFunc func(ctx context.Context, collection string, model mongo.IndexModel) (string, error)

func ensureIndexes(ctx context.Context, create createIndexFunc, log *zap.Logger) error {
	var errs []error
	for _, spec := range indexSpecs {
		model := mongo.IndexModel{Keys: spec.keys}
		if spec.unique {
			model.Options = options.Index().SetUnique(true)
		}
		name, err := create(ctx, spec.collection, model)
		if err != nil {
			log.Warn("[EnsureIndexes] index failed", zap.String("collection", spec.collection), zap.Error(err))
			errs = append(errs, fmt.Errorf("create index on %s: %w", spec.collection, err))
			continue
		}
		log.Info("[EnsureIndexes] index ready",
			zap.String("collection", spec.collection),
			zap.String("name", name),
			zap.Bool("unique", spec.unique))
	}
	return errors.Join(errs...)
}
