package database

import (
	"context"

	"github.com/ishanbagra18/artfolio-server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MediaStore struct {
	coll *mongo.Collection
}

func NewMediaStore(db *mongo.Database) *MediaStore {
	return &MediaStore{coll: db.Collection(MediaCollection)}
}

// refsPlus adds delta to the reference count. Records written before the
// count existed hold one reference.
func refsPlus(delta int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.M{"refs": bson.M{"$add": bson.A{bson.M{"$ifNull": bson.A{"$refs", 1}}, delta}}}}},
	}
}

// Acquire takes a reference on the asset stored under hash.
func (s *MediaStore) Acquire(ctx context.Context, hash string) (*models.MediaAsset, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	filter := bson.M{"hash": hash, "refs": bson.M{"$not": bson.M{"$lte": 0}}}
	var asset models.MediaAsset
	if err := s.coll.FindOneAndUpdate(ctx, filter, refsPlus(1), opts).Decode(&asset); err != nil {
		return nil, translate(err)
	}
	return &asset, nil
}

// Release drops one reference. last is true when that was the final one and
// the record is gone, so the caller should destroy the file.
func (s *MediaStore) Release(ctx context.Context, publicID string) (last bool, err error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var asset models.MediaAsset
	if err := s.coll.FindOneAndUpdate(ctx, bson.M{"publicId": publicID}, refsPlus(-1), opts).Decode(&asset); err != nil {
		return false, translate(err)
	}
	if asset.Refs > 0 {
		return false, nil
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"publicId": publicID, "refs": bson.M{"$lte": 0}})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// Insert fails with ErrDuplicate when another upload of the same content won
// the race.
func (s *MediaStore) Insert(ctx context.Context, asset *models.MediaAsset) error {
	if asset.ID.IsZero() {
		asset.ID = primitive.NewObjectID()
	}
	if asset.Refs == 0 {
		asset.Refs = 1
	}
	_, err := s.coll.InsertOne(ctx, asset)
	return translate(err)
}

// DeleteByPublicID forgets the record whatever its reference count.
func (s *MediaStore) DeleteByPublicID(ctx context.Context, publicID string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"publicId": publicID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MediaStore) List(ctx context.Context) ([]models.MediaAsset, error) {
	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	assets := []models.MediaAsset{}
	if err := cursor.All(ctx, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}
