package database

import (
	"context"

	"github.com/ishanbagra18/artfolio-server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FeedbackStore struct {
	coll *mongo.Collection
}

func NewFeedbackStore(db *mongo.Database) *FeedbackStore {
	return &FeedbackStore{coll: db.Collection(FeedbacksCollection)}
}

func (s *FeedbackStore) Insert(ctx context.Context, f *models.Feedback) error {
	if f.ID.IsZero() {
		f.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, f)
	return translate(err)
}

func (s *FeedbackStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Feedback, error) {
	var f models.Feedback
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&f); err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

func (s *FeedbackStore) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *FeedbackStore) DeleteByReviewID(ctx context.Context, reviewID string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"reviewId": reviewID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *FeedbackStore) DeleteByArtist(ctx context.Context, artistID string) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"artistId": artistID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *FeedbackStore) ListByArtist(ctx context.Context, artistID string) ([]models.Feedback, error) {
	return s.find(ctx, bson.M{"artistId": artistID}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

// List returns one page of all feedback, newest first, with the total count.
func (s *FeedbackStore) List(ctx context.Context, skip, limit int64) ([]models.Feedback, int64, error) {
	total, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	items, err := s.find(ctx, bson.M{}, opts)
	return items, total, err
}

func (s *FeedbackStore) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}

func (s *FeedbackStore) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Feedback, error) {
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []models.Feedback{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
