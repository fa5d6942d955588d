package database

import (
	"context"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/ishanbagra18/artfolio-server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DayLayout is the key format of visitor_stats documents.
const DayLayout = "2006-01-02"

type VisitorStore struct {
	coll *mongo.Collection
}

func NewVisitorStore(db *mongo.Database) *VisitorStore {
	return &VisitorStore{coll: db.Collection(VisitorStatsCollection)}
}

const maxPageKeyRunes = 100

// PageKey turns a request path into a field name Mongo accepts: no dots,
// dollars, slashes or control characters, at most 100 runes, never empty.
func PageKey(page string) string {
	page = strings.Trim(strings.TrimSpace(page), "/")
	var b strings.Builder
	n := 0
	for _, r := range page {
		if n == maxPageKeyRunes {
			break
		}
		switch {
		case r == '.' || r == '$' || r == '/':
			r = '_'
		case unicode.IsControl(r) || r == utf8.RuneError:
			continue
		}
		b.WriteRune(r)
		n++
	}
	if b.Len() == 0 {
		return "home"
	}
	return b.String()
}

func (s *VisitorStore) Record(ctx context.Context, at time.Time, page string) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"date": at.UTC().Format(DayLayout)},
		bson.M{"$inc": bson.M{"total": 1, "pages." + PageKey(page): 1}},
		options.Update().SetUpsert(true),
	)
	return translate(err)
}

// Report aggregates the days on or after from.
func (s *VisitorStore) Report(ctx context.Context, from time.Time) (*models.VisitorReport, error) {
	fromKey := from.UTC().Format(DayLayout)

	cursor, err := s.coll.Find(ctx,
		bson.M{"date": bson.M{"$gte": fromKey}},
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	report := &models.VisitorReport{Days: []models.VisitorDay{}, TopPages: []models.PageCount{}}
	if err := cursor.All(ctx, &report.Days); err != nil {
		return nil, err
	}
	for _, d := range report.Days {
		report.Total += d.Total
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "date", Value: bson.D{{Key: "$gte", Value: fromKey}}}}}},
		{{Key: "$project", Value: bson.D{{Key: "pages", Value: bson.D{{Key: "$objectToArray", Value: "$pages"}}}}}},
		{{Key: "$unwind", Value: "$pages"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$pages.k"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: "$pages.v"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		{{Key: "$limit", Value: 10}},
	}
	agg, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer agg.Close(ctx)
	if err := agg.All(ctx, &report.TopPages); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *VisitorStore) CountDay(ctx context.Context, at time.Time) (int64, error) {
	var day models.VisitorDay
	err := s.coll.FindOne(ctx, bson.M{"date": at.UTC().Format(DayLayout)}).Decode(&day)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return day.Total, nil
}
