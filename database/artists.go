package database

import (
	"context"
	"fmt"
	"time"

	"github.com/ishanbagra18/artfolio-server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ArtistStore struct {
	coll *mongo.Collection
}

func NewArtistStore(db *mongo.Database) *ArtistStore {
	return &ArtistStore{coll: db.Collection(ArtistsCollection)}
}

func (s *ArtistStore) Insert(ctx context.Context, artist *models.Artist) error {
	_, err := s.coll.InsertOne(ctx, artist)
	return translate(err)
}

func (s *ArtistStore) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}

// Taken reports whether the email or the artist id is already registered.
func (s *ArtistStore) Taken(ctx context.Context, email, artistID string) (emailTaken, idTaken bool, err error) {
	n, err := s.coll.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, false, fmt.Errorf("count email: %w", err)
	}
	m, err := s.coll.CountDocuments(ctx, bson.M{"artistid": artistID})
	if err != nil {
		return false, false, fmt.Errorf("count artistid: %w", err)
	}
	return n > 0, m > 0, nil
}

func (s *ArtistStore) FindByArtistID(ctx context.Context, artistID string) (*models.Artist, error) {
	var artist models.Artist
	if err := s.coll.FindOne(ctx, bson.M{"artistid": artistID}).Decode(&artist); err != nil {
		return nil, translate(err)
	}
	return &artist, nil
}

func (s *ArtistStore) List(ctx context.Context, activeOnly bool) ([]models.Artist, error) {
	filter := bson.M{}
	if activeOnly {
		filter["status"] = bson.M{"$ne": models.ArtistStatusSuspended}
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	artists := []models.Artist{}
	if err := cursor.All(ctx, &artists); err != nil {
		return nil, err
	}
	return artists, nil
}

// Update applies the non-nil fields and returns the updated document.
func (s *ArtistStore) Update(ctx context.Context, artistID string, upd models.ArtistUpdate) (*models.Artist, error) {
	set := bson.M{"updatedAt": time.Now()}
	if upd.Username != nil {
		set["username"] = *upd.Username
	}
	if upd.Email != nil {
		set["email"] = *upd.Email
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	if upd.Image != nil {
		set["image"] = *upd.Image
	}
	if upd.Role != nil {
		set["role"] = *upd.Role
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var artist models.Artist
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"artistid": artistID}, bson.M{"$set": set}, opts).Decode(&artist)
	if err != nil {
		return nil, translate(err)
	}
	return &artist, nil
}

func (s *ArtistStore) SetPassword(ctx context.Context, artistID, hash string) error {
	return s.updateOne(ctx, artistID, bson.M{"password": hash, "updatedAt": time.Now()})
}

func (s *ArtistStore) TouchLogin(ctx context.Context, artistID string, at time.Time) error {
	return s.updateOne(ctx, artistID, bson.M{"lastLogin": at})
}

func (s *ArtistStore) updateOne(ctx context.Context, artistID string, set bson.M) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"artistid": artistID}, bson.M{"$set": set})
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ArtistStore) Delete(ctx context.Context, artistID string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"artistid": artistID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Emails returns the address of every artist that has one.
func (s *ArtistStore) Emails(ctx context.Context) ([]string, error) {
	values, err := s.coll.Distinct(ctx, "email", bson.M{"email": bson.M{"$nin": bson.A{"", nil}}})
	if err != nil {
		return nil, err
	}
	emails := make([]string, 0, len(values))
	for _, v := range values {
		if e, ok := v.(string); ok {
			emails = append(emails, e)
		}
	}
	return emails, nil
}
