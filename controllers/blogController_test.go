package controllers

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/ishanbagra18/artfolio-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type blogFixture struct {
	posts  *fakePosts
	subs   *fakeSubscribers
	mailer *recordingMailer
	ctl    *BlogController
}

func newBlogFixture(subscribers int) *blogFixture {
	f := &blogFixture{posts: newFakePosts(), subs: &fakeSubscribers{}, mailer: &recordingMailer{}}
	for i := 0; i < subscribers; i++ {
		_, _ = f.subs.Subscribe(context.Background(), fmt.Sprintf("reader%d@example.com", i), fixedNow)
	}
	f.ctl = NewBlogController(f.posts, nil, f.subs, newNotifier(f.mailer), "https://artfolio.example/", zap.NewNop())
	f.ctl.now = clock
	return f
}

func (f *blogFixture) router() http.Handler {
	r := newEngine()
	r.GET("/api/blog/posts/:slug", f.ctl.GetPublishedPost())
	r.POST("/api/blog/subscribe", f.ctl.Subscribe())
	r.GET("/api/blog/unsubscribe", f.ctl.Unsubscribe())
	admin := r.Group("/api/admin", as("admin", models.RoleAdmin))
	admin.POST("/blog", f.ctl.CreatePost())
	admin.PUT("/blog/:id", f.ctl.UpdatePost())
	admin.POST("/blog/:id/publish", f.ctl.PublishPost())
	admin.POST("/blog/:id/unpublish", f.ctl.UnpublishPost())
	return r
}

func (f *blogFixture) create(t *testing.T, title string) models.BlogPost {
	t.Helper()
	w := doJSON(t, f.router(), http.MethodPost, "/api/admin/blog", map[string]string{"title": title, "content": "Body text"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var body struct {
		Post models.BlogPost `json:"post"`
	}
	decode(t, w, &body)
	return body.Post
}

type publishBody struct {
	FirstPublish bool  `json:"firstPublish"`
	Notified     int64 `json:"notified"`
	Failed       int64 `json:"failed"`
}

func (f *blogFixture) publish(t *testing.T, id string) publishBody {
	t.Helper()
	w := doJSON(t, f.router(), http.MethodPost, "/api/admin/blog/"+id+"/publish", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body publishBody
	decode(t, w, &body)
	return body
}

func TestCreatePost_SlugsAreUnique(t *testing.T) {
	f := newBlogFixture(0)

	first := f.create(t, "Hello, World!")
	second := f.create(t, "Hello World")
	third := f.create(t, "hello world")
	symbols := f.create(t, "!!! ???")

	assert.Equal(t, "hello-world", first.Slug)
	assert.Equal(t, "hello-world-2", second.Slug)
	assert.Equal(t, "hello-world-3", third.Slug)
	assert.Equal(t, models.PostStatusDraft, first.Status)
	assert.Equal(t, "post", symbols.Slug)
}

func TestUpdatePost_KeepsOwnSlug(t *testing.T) {
	f := newBlogFixture(0)
	post := f.create(t, "Spring Show")

	w := doJSON(t, f.router(), http.MethodPut, "/api/admin/blog/"+post.ID.Hex(), map[string]string{"title": "Spring Show", "content": "Edited"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slug":"spring-show"`)
}

func TestPublishPost_NotifiesSubscribersOnce(t *testing.T) {
	f := newBlogFixture(7)
	post := f.create(t, "New Series")

	got := f.publish(t, post.ID.Hex())
	assert.True(t, got.FirstPublish)
	assert.Equal(t, int64(7), got.Notified)
	assert.Zero(t, got.Failed)

	sent := f.mailer.emails()
	require.Len(t, sent, 7)
	for _, e := range sent {
		require.Len(t, e.To, 1)
		assert.Contains(t, e.HTML, "https://artfolio.example/blog/new-series")
		assert.Contains(t, e.HTML, "unsubscribe")
	}

	w := doJSON(t, f.router(), http.MethodPost, "/api/admin/blog/"+post.ID.Hex()+"/unpublish", nil)
	require.Equal(t, http.StatusOK, w.Code)

	again := f.publish(t, post.ID.Hex())
	assert.False(t, again.FirstPublish)
	assert.Zero(t, again.Notified)
	assert.Len(t, f.mailer.emails(), 7)
}

func TestPublishPost_CountsFailedDeliveries(t *testing.T) {
	f := newBlogFixture(3)
	f.mailer.fail = map[string]bool{"reader1@example.com": true}
	post := f.create(t, "Studio Notes")

	got := f.publish(t, post.ID.Hex())
	assert.Equal(t, int64(2), got.Notified)
	assert.Equal(t, int64(1), got.Failed)
}

func TestPublishPost_UnknownPost(t *testing.T) {
	f := newBlogFixture(0)
	w := doJSON(t, f.router(), http.MethodPost, "/api/admin/blog/65f0c0ffee0000000000beef/publish", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPublishedPost_DraftsAreHidden(t *testing.T) {
	f := newBlogFixture(0)
	post := f.create(t, "Behind the Scenes")

	w := doJSON(t, f.router(), http.MethodGet, "/api/blog/posts/behind-the-scenes", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	f.publish(t, post.ID.Hex())
	w = doJSON(t, f.router(), http.MethodGet, "/api/blog/posts/behind-the-scenes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"views":1`)
}

func TestSubscribe(t *testing.T) {
	f := newBlogFixture(0)

	w := doJSON(t, f.router(), http.MethodPost, "/api/blog/subscribe", map[string]string{"email": "Fan@Example.com"})
	assert.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, f.router(), http.MethodPost, "/api/blog/subscribe", map[string]string{"email": "fan@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "already subscribed")

	w = doJSON(t, f.router(), http.MethodPost, "/api/blog/subscribe", map[string]string{"email": " FAN@example.com  "})
	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, f.subs.subs, 1)
	assert.Equal(t, "fan@example.com", f.subs.subs[0].Email)

	w = doJSON(t, f.router(), http.MethodPost, "/api/blog/subscribe", map[string]string{"email": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, f.router(), http.MethodGet, "/api/blog/unsubscribe?email=Fan%40Example.com", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, f.router(), http.MethodGet, "/api/blog/unsubscribe?email=fan%40example.com", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
