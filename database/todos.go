package database

import (
	"context"

	"github.com/ishanbagra18/artfolio-server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TodoStore struct {
	coll *mongo.Collection
}

func NewTodoStore(db *mongo.Database) *TodoStore {
	return &TodoStore{coll: db.Collection(AdminTodosCollection)}
}

func (s *TodoStore) Insert(ctx context.Context, todo *models.AdminTodo) error {
	if todo.ID.IsZero() {
		todo.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, todo)
	return translate(err)
}

func (s *TodoStore) List(ctx context.Context) ([]models.AdminTodo, error) {
	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	todos := []models.AdminTodo{}
	if err := cursor.All(ctx, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// Replace overwrites the editable fields of a todo.
func (s *TodoStore) Replace(ctx context.Context, todo *models.AdminTodo) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": todo.ID}, bson.M{"$set": bson.M{
		"text":      todo.Text,
		"completed": todo.Completed,
		"priority":  todo.Priority,
		"dueDate":   todo.DueDate,
		"updatedAt": todo.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *TodoStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminTodo, error) {
	var todo models.AdminTodo
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&todo); err != nil {
		return nil, translate(err)
	}
	return &todo, nil
}

func (s *TodoStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
