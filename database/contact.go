package database

import (
	"context"
	"time"

	"github.com/ishanbagra18/artfolio-server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ContactStore struct {
	coll *mongo.Collection
}

func NewContactStore(db *mongo.Database) *ContactStore {
	return &ContactStore{coll: db.Collection(ContactCollection)}
}

func (s *ContactStore) Insert(ctx context.Context, msg *models.ContactMessage) error {
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, msg)
	return translate(err)
}

func (s *ContactStore) List(ctx context.Context, skip, limit int64) ([]models.ContactMessage, int64, error) {
	total, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetSkip(skip).SetLimit(limit)
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	items := []models.ContactMessage{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *ContactStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ContactMessage, error) {
	var msg models.ContactMessage
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&msg); err != nil {
		return nil, translate(err)
	}
	return &msg, nil
}

func (s *ContactStore) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	return s.set(ctx, id, bson.M{"status": status})
}

func (s *ContactStore) SaveReply(ctx context.Context, id primitive.ObjectID, reply string, at time.Time) error {
	return s.set(ctx, id, bson.M{"status": models.ContactStatusReplied, "reply": reply, "repliedAt": at})
}

func (s *ContactStore) set(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ContactStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ContactStore) CountUnread(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{"status": models.ContactStatusNew})
}
