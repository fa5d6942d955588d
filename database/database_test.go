package database

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(mongo.ErrNoDocuments), ErrNotFound)

	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key"}}}
	assert.ErrorIs(t, translate(dup), ErrDuplicate)

	other := errors.New("boom")
	assert.Equal(t, other, translate(other))
}

func TestPageKey(t *testing.T) {
	assert.Equal(t, "home", PageKey(""))
	assert.Equal(t, "home", PageKey("/"))
	assert.Equal(t, "blog_my-post", PageKey("/blog/my-post/"))
	assert.Equal(t, "file_png", PageKey("file.png"))
	assert.Equal(t, "_price", PageKey("$price"))
	assert.Equal(t, "home", PageKey("//"))
	assert.Equal(t, "home", PageKey(" /\x00/ "))
	assert.Equal(t, strings.Repeat("a", 100), PageKey("/"+strings.Repeat("a", 300)))

	long := PageKey(strings.Repeat("é", 150))
	assert.True(t, utf8.ValidString(long))
	assert.Equal(t, 100, utf8.RuneCountInString(long))
}

func TestEnsureIndexes_ContinuesPastFailures(t *testing.T) {
	var attempted []string
	create := func(_ context.Context, collection string, model mongo.IndexModel) (string, error) {
		keys := model.Keys.(bson.D)
		name := collection + "." + keys[0].Key
		attempted = append(attempted, name)
		if name == "artists.email" || name == "blogPosts.slug" {
			return "", errors.New("E11000 duplicate key")
		}
		return name, nil
	}

	err := ensureIndexes(context.Background(), create, zap.NewNop())
	require.Error(t, err)
	assert.Len(t, attempted, len(indexSpecs))
	assert.Contains(t, attempted, "portfolios.artistId")
	assert.Contains(t, attempted, "media_assets.hash")
	assert.Contains(t, err.Error(), "create index on artists")
	assert.Contains(t, err.Error(), "create index on blogPosts")

	assert.NoError(t, ensureIndexes(context.Background(), func(context.Context, string, mongo.IndexModel) (string, error) {
		return "ok", nil
	}, zap.NewNop()))
}
