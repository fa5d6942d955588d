package database

import (
	"context"

	"github.com/ishanbagra18/artfolio-server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationStore struct {
	coll *mongo.Collection
}

func NewNotificationStore(db *mongo.Database) *NotificationStore {
	return &NotificationStore{coll: db.Collection(NotificationsCollection)}
}

func (s *NotificationStore) Insert(ctx context.Context, n *models.Notification) error {
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	if n.ReadBy == nil {
		n.ReadBy = []string{}
	}
	_, err := s.coll.InsertOne(ctx, n)
	return translate(err)
}

// ListForArtist returns notifications addressed to the artist or to
// everyone, with Read filled in for that artist.
func (s *NotificationStore) ListForArtist(ctx context.Context, artistID string) ([]models.Notification, error) {
	filter := bson.M{"artistId": bson.M{"$in": bson.A{artistID, models.BroadcastTarget}}}
	items, err := s.find(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range items {
		for _, reader := range items[i].ReadBy {
			if reader == artistID {
				items[i].Read = true
				break
			}
		}
	}
	return items, nil
}

func (s *NotificationStore) List(ctx context.Context) ([]models.Notification, error) {
	return s.find(ctx, bson.M{})
}

func (s *NotificationStore) MarkRead(ctx context.Context, id primitive.ObjectID, artistID string) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id, "artistId": bson.M{"$in": bson.A{artistID, models.BroadcastTarget}}},
		bson.M{"$addToSet": bson.M{"readBy": artistID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *NotificationStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *NotificationStore) find(ctx context.Context, filter bson.M) ([]models.Notification, error) {
	cursor, err := s.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []models.Notification{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
