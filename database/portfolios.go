package database

import (
	"context"
	"errors"

	"github.com/ishanbagra18/artfolio-server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PortfolioStore persists whole portfolio documents guarded by a version
// counter. Callers read, modify and Save; a concurrent writer makes Save
// return ErrVersionConflict.
type PortfolioStore struct {
	coll *mongo.Collection
}

func NewPortfolioStore(db *mongo.Database) *PortfolioStore {
	return &PortfolioStore{coll: db.Collection(PortfoliosCollection)}
}

func (s *PortfolioStore) Get(ctx context.Context, artistID string) (*models.Portfolio, error) {
	var p models.Portfolio
	if err := s.coll.FindOne(ctx, bson.M{"artistId": artistID}).Decode(&p); err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// Save inserts a new portfolio (Version 0, no ID) or replaces the stored one
// when its version still matches. Documents written before versioning have
// no version field; they are claimed by _id and start at version 1. On
// success p.Version is advanced.
func (s *PortfolioStore) Save(ctx context.Context, p *models.Portfolio) error {
	if p.Version == 0 && !p.ID.IsZero() {
		p.Version = 1
		filter := bson.M{"_id": p.ID, "$or": bson.A{
			bson.M{"version": bson.M{"$exists": false}},
			bson.M{"version": 0},
		}}
		res, err := s.coll.ReplaceOne(ctx, filter, p)
		if err != nil {
			p.Version = 0
			return translate(err)
		}
		if res.MatchedCount == 0 {
			p.Version = 0
			return ErrVersionConflict
		}
		return nil
	}

	if p.Version == 0 {
		p.ID = primitive.NewObjectID()
		p.Version = 1
		if _, err := s.coll.InsertOne(ctx, p); err != nil {
			p.ID = primitive.NilObjectID
			p.Version = 0
			if err := translate(err); errors.Is(err, ErrDuplicate) {
				return ErrVersionConflict
			}
			return err
		}
		return nil
	}

	expected := p.Version
	p.Version++
	res, err := s.coll.ReplaceOne(ctx, bson.M{"artistId": p.ArtistID, "version": expected}, p)
	if err != nil {
		p.Version = expected
		return translate(err)
	}
	if res.MatchedCount == 0 {
		p.Version = expected
		return ErrVersionConflict
	}
	return nil
}

func (s *PortfolioStore) Delete(ctx context.Context, artistID string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"artistId": artistID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns every portfolio without the embedded review bodies.
func (s *PortfolioStore) List(ctx context.Context) ([]models.Portfolio, error) {
	opts := options.Find().
		SetProjection(bson.M{"ratings.reviews": 0}).
		SetSort(bson.D{{Key: "ratings.currentRating", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	portfolios := []models.Portfolio{}
	if err := cursor.All(ctx, &portfolios); err != nil {
		return nil, err
	}
	return portfolios, nil
}
