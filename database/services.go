package database

import (
	"context"

	"github.com/ishanbagra18/artfolio-server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ServiceStore struct {
	coll *mongo.Collection
}

func NewServiceStore(db *mongo.Database) *ServiceStore {
	return &ServiceStore{coll: db.Collection(ServicesCollection)}
}

func (s *ServiceStore) Insert(ctx context.Context, svc *models.Service) error {
	if svc.ID.IsZero() {
		svc.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, svc)
	return translate(err)
}

func (s *ServiceStore) Update(ctx context.Context, id primitive.ObjectID, svc models.Service) (*models.Service, error) {
	set := bson.M{
		"title":       svc.Title,
		"description": svc.Description,
		"icon":        svc.Icon,
		"image":       svc.Image,
		"price":       svc.Price,
		"order":       svc.Order,
		"active":      svc.Active,
		"updatedAt":   svc.UpdatedAt,
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out models.Service
	if err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&out); err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func (s *ServiceStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ServiceStore) List(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "createdAt", Value: 1}})
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []models.Service{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
