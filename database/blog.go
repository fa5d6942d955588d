package database

import (
	"context"
	"errors"
	"time"

	"github.com/ishanbagra18/artfolio-server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BlogStore struct {
	posts       *mongo.Collection
	comments    *mongo.Collection
	subscribers *mongo.Collection
}

func NewBlogStore(db *mongo.Database) *BlogStore {
	return &BlogStore{
		posts:       db.Collection(BlogPostsCollection),
		comments:    db.Collection(BlogCommentsCollection),
		subscribers: db.Collection(SubscribersCollection),
	}
}

// ---- posts

func (s *BlogStore) InsertPost(ctx context.Context, post *models.BlogPost) error {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	_, err := s.posts.InsertOne(ctx, post)
	return translate(err)
}

func (s *BlogStore) UpdatePost(ctx context.Context, id primitive.ObjectID, req models.BlogPostRequest, slug string, at time.Time) (*models.BlogPost, error) {
	set := bson.M{
		"title":      req.Title,
		"slug":       slug,
		"excerpt":    req.Excerpt,
		"content":    req.Content,
		"coverImage": req.CoverImage,
		"author":     req.Author,
		"tags":       req.Tags,
		"updatedAt":  at,
	}
	return s.findAndUpdatePost(ctx, bson.M{"_id": id}, bson.M{"$set": set})
}

func (s *BlogStore) DeletePost(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.posts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	_, err = s.comments.DeleteMany(ctx, bson.M{"postId": id})
	return err
}

func (s *BlogStore) FindPost(ctx context.Context, id primitive.ObjectID) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := s.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// FindBySlug returns a published post without counting a view.
func (s *BlogStore) FindBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := s.posts.FindOne(ctx, bson.M{"slug": slug, "status": models.PostStatusPublished}).Decode(&post)
	if err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// SlugTaken reports whether another post already uses slug.
func (s *BlogStore) SlugTaken(ctx context.Context, slug string, exclude primitive.ObjectID) (bool, error) {
	filter := bson.M{"slug": slug}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	n, err := s.posts.CountDocuments(ctx, filter)
	return n > 0, err
}

func (s *BlogStore) ListPosts(ctx context.Context, publishedOnly bool) ([]models.BlogPost, error) {
	filter := bson.M{}
	sortKey := "createdAt"
	if publishedOnly {
		filter["status"] = models.PostStatusPublished
		sortKey = "publishedAt"
	}
	cursor, err := s.posts.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: sortKey, Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.BlogPost{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Publish marks the post published. first is true only for the call that
// sets publishedAt for the first time, so exactly one caller notifies
// subscribers.
func (s *BlogStore) Publish(ctx context.Context, id primitive.ObjectID, at time.Time) (*models.BlogPost, bool, error) {
	post, err := s.findAndUpdatePost(ctx,
		bson.M{"_id": id, "publishedAt": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"status": models.PostStatusPublished, "publishedAt": at, "updatedAt": at}},
	)
	if err == nil {
		return post, true, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	post, err = s.findAndUpdatePost(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": models.PostStatusPublished, "updatedAt": at}},
	)
	return post, false, err
}

func (s *BlogStore) Unpublish(ctx context.Context, id primitive.ObjectID, at time.Time) (*models.BlogPost, error) {
	return s.findAndUpdatePost(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": models.PostStatusDraft, "updatedAt": at}})
}

func (s *BlogStore) MarkSubscribersNotified(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := s.posts.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"subscribersNotifiedAt": at}})
	return err
}

// ViewPublished returns a published post by slug and counts the view.
func (s *BlogStore) ViewPublished(ctx context.Context, slug string) (*models.BlogPost, error) {
	return s.findAndUpdatePost(ctx,
		bson.M{"slug": slug, "status": models.PostStatusPublished},
		bson.M{"$inc": bson.M{"views": 1}})
}

func (s *BlogStore) CountPosts(ctx context.Context) (int64, error) {
	return s.posts.CountDocuments(ctx, bson.M{})
}

func (s *BlogStore) findAndUpdatePost(ctx context.Context, filter, update bson.M) (*models.BlogPost, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post models.BlogPost
	if err := s.posts.FindOneAndUpdate(ctx, filter, update, opts).Decode(&post); err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// ---- comments

func (s *BlogStore) InsertComment(ctx context.Context, comment *models.BlogComment) error {
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	_, err := s.comments.InsertOne(ctx, comment)
	return translate(err)
}

// ListComments returns comments oldest first. A zero postID lists all posts.
func (s *BlogStore) ListComments(ctx context.Context, postID primitive.ObjectID, approvedOnly bool) ([]models.BlogComment, error) {
	filter := bson.M{}
	if !postID.IsZero() {
		filter["postId"] = postID
	}
	if approvedOnly {
		filter["status"] = models.CommentStatusApproved
	}
	cursor, err := s.comments.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := []models.BlogComment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *BlogStore) ApproveComment(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.comments.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": models.CommentStatusApproved}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *BlogStore) DeleteComment(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.comments.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ---- subscribers

// Subscribe adds the address if it is new. created is false for a repeat.
func (s *BlogStore) Subscribe(ctx context.Context, email string, at time.Time) (bool, error) {
	res, err := s.subscribers.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$setOnInsert": bson.M{"email": email, "subscribedAt": at}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, translate(err)
	}
	return res.UpsertedCount > 0, nil
}

func (s *BlogStore) Unsubscribe(ctx context.Context, email string) error {
	res, err := s.subscribers.DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *BlogStore) ListSubscribers(ctx context.Context) ([]models.BlogSubscriber, error) {
	cursor, err := s.subscribers.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "subscribedAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	subs := []models.BlogSubscriber{}
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *BlogStore) CountSubscribers(ctx context.Context) (int64, error) {
	return s.subscribers.CountDocuments(ctx, bson.M{})
}
