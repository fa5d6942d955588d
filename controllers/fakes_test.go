package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ishanbagra18/artfolio-server/database"
	"github.com/ishanbagra18/artfolio-server/middleware"
	"github.com/ishanbagra18/artfolio-server/models"
	"github.com/ishanbagra18/artfolio-server/services"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var fixedNow = time.Date(2024, 5, 17, 10, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

// as injects the identity the auth middleware would set.
func as(artistID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxArtistID, artistID)
		c.Set(middleware.CtxRole, role)
		c.Set(middleware.CtxUsername, artistID)
		c.Next()
	}
}

func newEngine() *gin.Engine {
	return gin.New()
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			rd = bytes.NewBufferString(b)
		default:
			data, err := json.Marshal(b)
			require.NoError(t, err)
			rd = bytes.NewReader(data)
		}
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst), w.Body.String())
}

// ---- notifications

type recordingMailer struct {
	mu   sync.Mutex
	sent []services.Email
	fail map[string]bool
}

func (m *recordingMailer) Send(_ context.Context, e services.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, to := range e.To {
		if m.fail[to] {
			return errors.New("smtp: mailbox unavailable")
		}
	}
	m.sent = append(m.sent, e)
	return nil
}

func (m *recordingMailer) emails() []services.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]services.Email(nil), m.sent...)
}

func newNotifier(m *recordingMailer) *services.Notifier {
	return &services.Notifier{Mailer: m, Log: zap.NewNop(), Timeout: time.Second}
}

// ---- artists

type fakeArtists struct {
	mu       sync.Mutex
	byID     map[string]*models.Artist
	order    []string
	inserted int
	// raceDuplicate makes Insert fail as the unique index would.
	raceDuplicate bool
}

func newFakeArtists(artists ...*models.Artist) *fakeArtists {
	f := &fakeArtists{byID: map[string]*models.Artist{}}
	for _, a := range artists {
		f.put(a)
	}
	return f
}

func (f *fakeArtists) put(a *models.Artist) {
	cp := *a
	if cp.ID.IsZero() {
		cp.ID = primitive.NewObjectID()
	}
	if _, ok := f.byID[cp.ArtistID]; !ok {
		f.order = append(f.order, cp.ArtistID)
	}
	f.byID[cp.ArtistID] = &cp
}

func (f *fakeArtists) get(id string) *models.Artist {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return nil
	}
	cp := *a
	return &cp
}

func (f *fakeArtists) Insert(_ context.Context, a *models.Artist) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.raceDuplicate {
		return database.ErrDuplicate
	}
	for _, existing := range f.byID {
		if existing.Email == a.Email || existing.ArtistID == a.ArtistID {
			return database.ErrDuplicate
		}
	}
	f.put(a)
	f.inserted++
	return nil
}

func (f *fakeArtists) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.byID)), nil
}

func (f *fakeArtists) Taken(_ context.Context, email, artistID string) (bool, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var emailTaken, idTaken bool
	for _, a := range f.byID {
		emailTaken = emailTaken || a.Email == email
		idTaken = idTaken || a.ArtistID == artistID
	}
	return emailTaken, idTaken, nil
}

func (f *fakeArtists) FindByArtistID(_ context.Context, id string) (*models.Artist, error) {
	if a := f.get(id); a != nil {
		return a, nil
	}
	return nil, database.ErrNotFound
}

func (f *fakeArtists) List(_ context.Context, activeOnly bool) ([]models.Artist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Artist{}
	for _, id := range f.order {
		a, ok := f.byID[id]
		if !ok || (activeOnly && a.IsSuspended()) {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeArtists) Update(_ context.Context, id string, upd models.ArtistUpdate) (*models.Artist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	if upd.Username != nil {
		a.Username = *upd.Username
	}
	if upd.Email != nil {
		a.Email = *upd.Email
	}
	if upd.Phone != nil {
		a.Phone = *upd.Phone
	}
	if upd.Image != nil {
		a.Image = *upd.Image
	}
	if upd.Role != nil {
		a.Role = *upd.Role
	}
	if upd.Status != nil {
		a.Status = *upd.Status
	}
	cp := *a
	return &cp, nil
}

func (f *fakeArtists) SetPassword(_ context.Context, id, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return database.ErrNotFound
	}
	a.Password = hash
	return nil
}

func (f *fakeArtists) TouchLogin(_ context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return database.ErrNotFound
	}
	a.LastLogin = &at
	return nil
}

func (f *fakeArtists) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return database.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeArtists) Emails(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, id := range f.order {
		if a, ok := f.byID[id]; ok && a.Email != "" {
			out = append(out, a.Email)
		}
	}
	return out, nil
}

// ---- portfolios

// fakePortfolios keeps bson round-tripped copies so callers never share
// slices with the stored document, and applies the same version guard as
// the Mongo store.
type fakePortfolios struct {
	mu      sync.Mutex
	docs    map[string][]byte
	saves   int
	saveErr error
	// conflicts makes the next N saves fail with a version conflict.
	conflicts int
}

func newFakePortfolios() *fakePortfolios {
	return &fakePortfolios{docs: map[string][]byte{}}
}

func (f *fakePortfolios) seed(t *testing.T, p *models.Portfolio) {
	t.Helper()
	if p.Version == 0 {
		p.Version = 1
	}
	data, err := bson.Marshal(p)
	require.NoError(t, err)
	f.docs[p.ArtistID] = data
}

// seedRaw stores a document as written before portfolios were versioned.
func (f *fakePortfolios) seedRaw(t *testing.T, artistID string, doc bson.M) {
	t.Helper()
	doc["_id"] = primitive.NewObjectID()
	doc["artistId"] = artistID
	data, err := bson.Marshal(doc)
	require.NoError(t, err)
	f.docs[artistID] = data
}

func (f *fakePortfolios) Get(_ context.Context, artistID string) (*models.Portfolio, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.docs[artistID]
	if !ok {
		return nil, database.ErrNotFound
	}
	var p models.Portfolio
	if err := bson.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (f *fakePortfolios) Save(_ context.Context, p *models.Portfolio) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	if f.conflicts > 0 {
		f.conflicts--
		return database.ErrVersionConflict
	}

	var stored models.Portfolio
	if data, ok := f.docs[p.ArtistID]; ok {
		if err := bson.Unmarshal(data, &stored); err != nil {
			return err
		}
		if stored.Version != p.Version {
			return database.ErrVersionConflict
		}
		if p.Version == 0 && (p.ID.IsZero() || p.ID != stored.ID) {
			return database.ErrVersionConflict
		}
	} else if p.Version != 0 {
		return database.ErrVersionConflict
	}

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	p.Version++
	data, err := bson.Marshal(p)
	if err != nil {
		return err
	}
	f.docs[p.ArtistID] = data
	f.saves++
	return nil
}

func (f *fakePortfolios) Delete(_ context.Context, artistID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.docs[artistID]; !ok {
		return database.ErrNotFound
	}
	delete(f.docs, artistID)
	return nil
}

func (f *fakePortfolios) List(ctx context.Context) ([]models.Portfolio, error) {
	f.mu.Lock()
	ids := make([]string, 0, len(f.docs))
	for id := range f.docs {
		ids = append(ids, id)
	}
	f.mu.Unlock()
	sort.Strings(ids)

	out := []models.Portfolio{}
	for _, id := range ids {
		p, err := f.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

// ---- feedback

type fakeFeedback struct {
	mu        sync.Mutex
	items     []models.Feedback
	insertErr error
}

func (f *fakeFeedback) Insert(_ context.Context, fb *models.Feedback) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	if fb.ID.IsZero() {
		fb.ID = primitive.NewObjectID()
	}
	f.items = append(f.items, *fb)
	return nil
}

func (f *fakeFeedback) all() []models.Feedback {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Feedback(nil), f.items...)
}

func (f *fakeFeedback) FindByID(_ context.Context, id primitive.ObjectID) (*models.Feedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, fb := range f.items {
		if fb.ID == id {
			cp := fb
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeFeedback) remove(match func(models.Feedback) bool) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.items[:0]
	var n int64
	for _, fb := range f.items {
		if match(fb) {
			n++
			continue
		}
		kept = append(kept, fb)
	}
	f.items = kept
	return n
}

func (f *fakeFeedback) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	if f.remove(func(fb models.Feedback) bool { return fb.ID == id }) == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (f *fakeFeedback) DeleteByReviewID(_ context.Context, reviewID string) error {
	if f.remove(func(fb models.Feedback) bool { return fb.ReviewID == reviewID }) == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (f *fakeFeedback) DeleteByArtist(_ context.Context, artistID string) (int64, error) {
	return f.remove(func(fb models.Feedback) bool { return fb.ArtistID == artistID }), nil
}

func (f *fakeFeedback) ListByArtist(_ context.Context, artistID string) ([]models.Feedback, error) {
	out := []models.Feedback{}
	for _, fb := range f.all() {
		if fb.ArtistID == artistID {
			out = append(out, fb)
		}
	}
	return out, nil
}

func (f *fakeFeedback) List(_ context.Context, skip, limit int64) ([]models.Feedback, int64, error) {
	items := f.all()
	total := int64(len(items))
	if skip >= total {
		return []models.Feedback{}, total, nil
	}
	end := skip + limit
	if end > total {
		end = total
	}
	return items[skip:end], total, nil
}

func (f *fakeFeedback) Count(context.Context) (int64, error) {
	return int64(len(f.all())), nil
}

// ---- settings

type fakeSettings struct {
	mu      sync.Mutex
	current models.Settings
}

func (f *fakeSettings) Get(context.Context) (*models.Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := f.current
	return &cp, nil
}

func (f *fakeSettings) Update(_ context.Context, upd models.SettingsUpdate) (*models.Settings, *models.Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	prev := f.current
	upd.Apply(&f.current)
	next := f.current
	return &prev, &next, nil
}

// ---- blog

type fakePosts struct {
	mu    sync.Mutex
	posts map[primitive.ObjectID]*models.BlogPost
}

func newFakePosts() *fakePosts {
	return &fakePosts{posts: map[primitive.ObjectID]*models.BlogPost{}}
}

func (f *fakePosts) InsertPost(_ context.Context, p *models.BlogPost) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.posts {
		if existing.Slug == p.Slug {
			return database.ErrDuplicate
		}
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	cp := *p
	f.posts[p.ID] = &cp
	return nil
}

func (f *fakePosts) UpdatePost(_ context.Context, id primitive.ObjectID, req models.BlogPostRequest, slug string, at time.Time) (*models.BlogPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	p.Title, p.Slug, p.Content, p.Excerpt, p.UpdatedAt = req.Title, slug, req.Content, req.Excerpt, at
	cp := *p
	return &cp, nil
}

func (f *fakePosts) DeletePost(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[id]; !ok {
		return database.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePosts) FindPost(_ context.Context, id primitive.ObjectID) (*models.BlogPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePosts) published(slug string) *models.BlogPost {
	for _, p := range f.posts {
		if p.Slug == slug && p.Status == models.PostStatusPublished {
			return p
		}
	}
	return nil
}

func (f *fakePosts) FindBySlug(_ context.Context, slug string) (*models.BlogPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.published(slug)
	if p == nil {
		return nil, database.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePosts) SlugTaken(_ context.Context, slug string, exclude primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, p := range f.posts {
		if p.Slug == slug && id != exclude {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePosts) ListPosts(_ context.Context, publishedOnly bool) ([]models.BlogPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.BlogPost{}
	for _, p := range f.posts {
		if publishedOnly && p.Status != models.PostStatusPublished {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePosts) Publish(_ context.Context, id primitive.ObjectID, at time.Time) (*models.BlogPost, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return nil, false, database.ErrNotFound
	}
	first := p.PublishedAt == nil
	if first {
		p.PublishedAt = &at
	}
	p.Status = models.PostStatusPublished
	cp := *p
	return &cp, first, nil
}

func (f *fakePosts) Unpublish(_ context.Context, id primitive.ObjectID, at time.Time) (*models.BlogPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	p.Status = models.PostStatusDraft
	cp := *p
	return &cp, nil
}

func (f *fakePosts) MarkSubscribersNotified(_ context.Context, id primitive.ObjectID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.posts[id]; ok {
		p.SubscribersAt = &at
	}
	return nil
}

func (f *fakePosts) ViewPublished(_ context.Context, slug string) (*models.BlogPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.published(slug)
	if p == nil {
		return nil, database.ErrNotFound
	}
	p.Views++
	cp := *p
	return &cp, nil
}

func (f *fakePosts) CountPosts(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.posts)), nil
}

type fakeSubscribers struct {
	mu   sync.Mutex
	subs []models.BlogSubscriber
}

func (f *fakeSubscribers) Subscribe(_ context.Context, email string, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.subs {
		if s.Email == email {
			return false, nil
		}
	}
	f.subs = append(f.subs, models.BlogSubscriber{ID: primitive.NewObjectID(), Email: email, SubscribedAt: at})
	return true, nil
}

func (f *fakeSubscribers) Unsubscribe(_ context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, s := range f.subs {
		if s.Email == email {
			f.subs = append(f.subs[:i], f.subs[i+1:]...)
			return nil
		}
	}
	return database.ErrNotFound
}

func (f *fakeSubscribers) ListSubscribers(context.Context) ([]models.BlogSubscriber, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.BlogSubscriber(nil), f.subs...), nil
}

func (f *fakeSubscribers) CountSubscribers(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.subs)), nil
}

// ---- media

type fakeUploader struct {
	mu       sync.Mutex
	uploads  []string
	destroys []string
	err      error
}

func (f *fakeUploader) Upload(_ context.Context, r io.Reader, folder, publicID string) (*services.UploadedAsset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	id := "artfolio/" + folder + "/" + publicID
	f.uploads = append(f.uploads, id)
	return &services.UploadedAsset{PublicID: id, URL: "https://res.example/" + id, Bytes: int64(len(data))}, nil
}

func (f *fakeUploader) Destroy(_ context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroys = append(f.destroys, publicID)
	return nil
}

func (f *fakeUploader) Usage(context.Context) (interface{}, error) {
	return map[string]int{"credits": 1}, nil
}

type fakeMedia struct {
	mu     sync.Mutex
	assets []models.MediaAsset
}

func (f *fakeMedia) Acquire(_ context.Context, hash string) (*models.MediaAsset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.assets {
		if f.assets[i].Hash == hash {
			f.assets[i].Refs++
			cp := f.assets[i]
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeMedia) Insert(_ context.Context, a *models.MediaAsset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.assets {
		if existing.Hash == a.Hash {
			return database.ErrDuplicate
		}
	}
	a.ID = primitive.NewObjectID()
	if a.Refs == 0 {
		a.Refs = 1
	}
	f.assets = append(f.assets, *a)
	return nil
}

func (f *fakeMedia) Release(_ context.Context, publicID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.assets {
		if f.assets[i].PublicID != publicID {
			continue
		}
		f.assets[i].Refs--
		if f.assets[i].Refs > 0 {
			return false, nil
		}
		f.assets = append(f.assets[:i], f.assets[i+1:]...)
		return true, nil
	}
	return false, database.ErrNotFound
}

func (f *fakeMedia) DeleteByPublicID(_ context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, a := range f.assets {
		if a.PublicID == publicID {
			f.assets = append(f.assets[:i], f.assets[i+1:]...)
			return nil
		}
	}
	return database.ErrNotFound
}

func (f *fakeMedia) List(context.Context) ([]models.MediaAsset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.MediaAsset{}, f.assets...), nil
}

// ---- login logs and tokens

type fakeLoginLogs struct {
	mu      sync.Mutex
	entries []models.LoginLog
}

func (f *fakeLoginLogs) Insert(_ context.Context, e *models.LoginLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeLoginLogs) List(_ context.Context, artistID string, limit int64) ([]models.LoginLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.LoginLog{}
	for i := len(f.entries) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		if artistID == "" || f.entries[i].ArtistID == artistID {
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}

func (f *fakeLoginLogs) Clear(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := int64(len(f.entries))
	f.entries = nil
	return n, nil
}

type fakeTokens struct{}

func (fakeTokens) GenerateToken(artistID, username, role string) (string, time.Time, error) {
	return role + ":" + artistID, time.Now().Add(time.Hour), nil
}
