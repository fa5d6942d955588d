package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// DuplicateGroup is a set of artist documents sharing one field value. Keep
// is the oldest document; Remove lists the others.
type DuplicateGroup struct {
	Field  string               `json:"field"`
	Value  string               `json:"value"`
	Keep   primitive.ObjectID   `json:"keep"`
	Remove []primitive.ObjectID `json:"remove"`
}

// FindDuplicateArtists groups artists by email and by artistid and reports
// every value held by more than one document.
func (s *ArtistStore) FindDuplicateArtists(ctx context.Context) ([]DuplicateGroup, error) {
	var groups []DuplicateGroup
	for _, field := range []string{"email", "artistid"} {
		pipeline := mongo.Pipeline{
			{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}}},
			{{Key: "$group", Value: bson.D{
				{Key: "_id", Value: "$" + field},
				{Key: "ids", Value: bson.D{{Key: "$push", Value: "$_id"}}},
				{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			}}},
			{{Key: "$match", Value: bson.D{{Key: "count", Value: bson.D{{Key: "$gt", Value: 1}}}}}},
		}
		cursor, err := s.coll.Aggregate(ctx, pipeline)
		if err != nil {
			return nil, fmt.Errorf("aggregate duplicates by %s: %w", field, err)
		}

		var rows []struct {
			Value interface{}          `bson:"_id"`
			IDs   []primitive.ObjectID `bson:"ids"`
		}
		err = cursor.All(ctx, &rows)
		cursor.Close(ctx)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			groups = append(groups, DuplicateGroup{
				Field:  field,
				Value:  fmt.Sprint(row.Value),
				Keep:   row.IDs[0],
				Remove: row.IDs[1:],
			})
		}
	}
	return groups, nil
}

// RemoveByObjectIDs deletes the given artist documents.
func (s *ArtistStore) RemoveByObjectIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := s.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
