package database

import (
	"context"

	"github.com/ishanbagra18/artfolio-server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LoginLogStore struct {
	coll *mongo.Collection
}

func NewLoginLogStore(db *mongo.Database) *LoginLogStore {
	return &LoginLogStore{coll: db.Collection(LoginLogsCollection)}
}

func (s *LoginLogStore) Insert(ctx context.Context, entry *models.LoginLog) error {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, entry)
	return translate(err)
}

// List returns the newest entries, optionally for one artist.
func (s *LoginLogStore) List(ctx context.Context, artistID string, limit int64) ([]models.LoginLog, error) {
	filter := bson.M{}
	if artistID != "" {
		filter["artistid"] = artistID
	}
	opts := options.Find().SetSort(bson.D{{Key: "at", Value: -1}}).SetLimit(limit)
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	logs := []models.LoginLog{}
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *LoginLogStore) Clear(ctx context.Context) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
