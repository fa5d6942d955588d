package database

import (
	"context"

	"github.com/ishanbagra18/artfolio-server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MessageStore struct {
	coll *mongo.Collection
}

func NewMessageStore(db *mongo.Database) *MessageStore {
	return &MessageStore{coll: db.Collection(MessagesCollection)}
}

func (s *MessageStore) Insert(ctx context.Context, msg *models.Message) error {
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, msg)
	return translate(err)
}

// Conversation returns the artist's thread oldest first.
func (s *MessageStore) Conversation(ctx context.Context, artistID string) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.M{"artistId": artistID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	messages := []models.Message{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkRead marks everything in the thread written by the other side as read.
func (s *MessageStore) MarkRead(ctx context.Context, artistID, readerRole string) (int64, error) {
	res, err := s.coll.UpdateMany(ctx,
		bson.M{"artistId": artistID, "senderRole": bson.M{"$ne": readerRole}, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// Conversations summarises every thread for the admin inbox.
func (s *MessageStore) Conversations(ctx context.Context) ([]models.ConversationSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "timestamp", Value: 1}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$artistId"},
			{Key: "lastMessage", Value: bson.D{{Key: "$last", Value: "$messageText"}}},
			{Key: "lastAt", Value: bson.D{{Key: "$last", Value: "$timestamp"}}},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "unread", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$and", Value: bson.A{
					bson.D{{Key: "$eq", Value: bson.A{"$senderRole", models.RoleArtist}}},
					bson.D{{Key: "$eq", Value: bson.A{"$read", false}}},
				}}},
				1, 0,
			}}}}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "lastAt", Value: -1}}}},
	}

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []models.ConversationSummary{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MessageStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Message, error) {
	var msg models.Message
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&msg); err != nil {
		return nil, translate(err)
	}
	return &msg, nil
}

func (s *MessageStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
