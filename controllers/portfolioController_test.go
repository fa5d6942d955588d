package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/ishanbagra18/artfolio-server/middleware"
	"github.com/ishanbagra18/artfolio-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type portfolioFixture struct {
	artists    *fakeArtists
	portfolios *fakePortfolios
	uploader   *fakeUploader
	assets     *fakeMedia
	ctl        *PortfolioController
}

func newPortfolioFixture(artists ...*models.Artist) *portfolioFixture {
	f := &portfolioFixture{
		artists:    newFakeArtists(artists...),
		portfolios: newFakePortfolios(),
		uploader:   &fakeUploader{},
		assets:     &fakeMedia{},
	}
	media := NewMediaController(f.uploader, f.assets, zap.NewNop())
	f.ctl = NewPortfolioController(f.portfolios, f.artists, media, zap.NewNop())
	f.ctl.now = clock
	return f
}

func (f *portfolioFixture) router() http.Handler {
	r := newEngine()
	r.GET("/api/portfolios", f.ctl.ListPortfolios())
	r.GET("/api/portfolios/:artistid", f.ctl.GetPublicPortfolio())
	me := r.Group("/api/artist/portfolio", as("mira", models.RoleArtist), middleware.ActiveArtist(f.artists, zap.NewNop()))
	me.GET("", f.ctl.GetMyPortfolio())
	me.PUT("/basic-details", f.ctl.UpdateBasicDetails())
	me.POST("/experience", f.ctl.AddExperience())
	me.PUT("/experience/:itemId", f.ctl.UpdateExperience())
	me.DELETE("/experience/:itemId", f.ctl.DeleteExperience())
	me.POST("/artworks", f.ctl.AddArtwork())
	me.PUT("/artworks/:itemId", f.ctl.UpdateArtwork())
	me.DELETE("/artworks/:itemId", f.ctl.DeleteArtwork())
	return r
}

type itemBody struct {
	Item       map[string]interface{} `json:"item"`
	Completion int                    `json:"completion"`
}

func TestAddExperience(t *testing.T) {
	f := newPortfolioFixture(mira)

	w := doJSON(t, f.router(), http.MethodPost, "/api/artist/portfolio/experience",
		map[string]interface{}{"title": "Muralist", "organization": "City Arts", "current": true})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body itemBody
	decode(t, w, &body)
	assert.NotEmpty(t, body.Item["id"])
	assert.Equal(t, 10, body.Completion)

	p, err := f.portfolios.Get(context.Background(), "mira")
	require.NoError(t, err)
	require.Len(t, p.Experience, 1)
	assert.Equal(t, body.Item["id"], p.Experience[0].ID)
	assert.True(t, fixedNow.Equal(p.UpdatedAt))

	w = doJSON(t, f.router(), http.MethodPost, "/api/artist/portfolio/experience", map[string]interface{}{"organization": "no title"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateAndDeleteExperience(t *testing.T) {
	f := newPortfolioFixture(mira)
	p := models.NewPortfolio("mira", fixedNow)
	p.Experience = []models.Experience{{ID: "exp-1", Title: "Assistant"}, {ID: "exp-2", Title: "Lead"}}
	f.portfolios.seed(t, p)

	w := doJSON(t, f.router(), http.MethodPut, "/api/artist/portfolio/experience/exp-2", map[string]string{"title": "Studio Lead"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, f.router(), http.MethodPut, "/api/artist/portfolio/experience/missing", map[string]string{"title": "Ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, f.router(), http.MethodDelete, "/api/artist/portfolio/experience/exp-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, f.router(), http.MethodDelete, "/api/artist/portfolio/experience/exp-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	got, err := f.portfolios.Get(context.Background(), "mira")
	require.NoError(t, err)
	require.Len(t, got.Experience, 1)
	assert.Equal(t, models.Experience{ID: "exp-2", Title: "Studio Lead"}, got.Experience[0])
}

func TestUpdateItem_MissingPortfolio(t *testing.T) {
	f := newPortfolioFixture(mira)
	w := doJSON(t, f.router(), http.MethodPut, "/api/artist/portfolio/experience/exp-1", map[string]string{"title": "Anything"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPortfolioWrite_ConflictAfterRetries(t *testing.T) {
	f := newPortfolioFixture(mira)
	f.portfolios.seed(t, models.NewPortfolio("mira", fixedNow))
	f.portfolios.conflicts = maxSaveAttempts

	w := doJSON(t, f.router(), http.MethodPut, "/api/artist/portfolio/basic-details", map[string]string{"fullName": "Mira Sol"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestArtworkLifecycle(t *testing.T) {
	f := newPortfolioFixture(mira)

	w := doMultipart(t, f.router(), http.MethodPost, "/api/artist/portfolio/artworks",
		map[string]string{"title": "Harbour at Dusk", "medium": "oil"},
		formFile{"image", "harbour.jpg", []byte("jpeg-bytes")})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var body itemBody
	decode(t, w, &body)
	itemID := body.Item["id"].(string)
	publicID := body.Item["publicId"].(string)
	assert.Contains(t, publicID, "artworks/harbour_")
	require.Len(t, f.uploader.uploads, 1)

	// Editing without a new image keeps the stored one.
	w = doJSON(t, f.router(), http.MethodPut, "/api/artist/portfolio/artworks/"+itemID, map[string]string{"title": "Harbour, Dusk"})
	require.Equal(t, http.StatusOK, w.Code)
	p, err := f.portfolios.Get(context.Background(), "mira")
	require.NoError(t, err)
	require.Len(t, p.Artworks, 1)
	assert.Equal(t, publicID, p.Artworks[0].PublicID)
	assert.True(t, fixedNow.Equal(p.Artworks[0].CreatedAt))

	w = doJSON(t, f.router(), http.MethodDelete, "/api/artist/portfolio/artworks/"+itemID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{publicID}, f.uploader.destroys)
	assert.Empty(t, f.assets.assets)
}

func TestAddArtwork_NeedsImage(t *testing.T) {
	f := newPortfolioFixture(mira)

	w := doMultipart(t, f.router(), http.MethodPost, "/api/artist/portfolio/artworks", map[string]string{"title": "Untitled"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doMultipart(t, f.router(), http.MethodPost, "/api/artist/portfolio/artworks",
		map[string]string{"title": "Hosted", "imageUrl": "https://img.example/hosted.jpg"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, f.uploader.uploads)
}

func TestPublicPortfolio_HidesSuspended(t *testing.T) {
	suspended := &models.Artist{ArtistID: "ines", Status: models.ArtistStatusSuspended}
	f := newPortfolioFixture(mira, suspended)
	f.portfolios.seed(t, models.NewPortfolio("mira", fixedNow))
	f.portfolios.seed(t, models.NewPortfolio("ines", fixedNow))

	w := doJSON(t, f.router(), http.MethodGet, "/api/portfolios/ines", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(t, f.router(), http.MethodGet, "/api/portfolios/mira", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, f.router(), http.MethodGet, "/api/portfolios", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)
	assert.NotContains(t, w.Body.String(), "ines")
}

func TestArtwork_SharedUploadSurvivesDelete(t *testing.T) {
	f := newPortfolioFixture(mira)
	r := f.router()

	var ids []string
	for _, title := range []string{"Harbour I", "Harbour II"} {
		w := doMultipart(t, r, http.MethodPost, "/api/artist/portfolio/artworks",
			map[string]string{"title": title}, formFile{"image", "harbour.jpg", []byte("same-jpeg-bytes")})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var body itemBody
		decode(t, w, &body)
		ids = append(ids, body.Item["id"].(string))
	}
	require.Len(t, f.uploader.uploads, 1)
	require.Len(t, f.assets.assets, 1)
	assert.Equal(t, int64(2), f.assets.assets[0].Refs)

	w := doJSON(t, r, http.MethodDelete, "/api/artist/portfolio/artworks/"+ids[0], nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, f.uploader.destroys)
	require.Len(t, f.assets.assets, 1)
	assert.Equal(t, int64(1), f.assets.assets[0].Refs)

	w = doJSON(t, r, http.MethodDelete, "/api/artist/portfolio/artworks/"+ids[1], nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, f.uploader.destroys, 1)
	assert.Empty(t, f.assets.assets)
}

func TestUpdateArtwork_IgnoresClientPublicID(t *testing.T) {
	f := newPortfolioFixture(mira)
	r := f.router()

	w := doMultipart(t, r, http.MethodPost, "/api/artist/portfolio/artworks",
		map[string]string{"title": "Harbour"}, formFile{"image", "harbour.jpg", []byte("jpeg-bytes")})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doMultipart(t, r, http.MethodPost, "/api/artist/portfolio/artworks",
		map[string]string{"title": "Hosted", "imageUrl": "https://img.example/a.jpg"})
	require.Equal(t, http.StatusCreated, w.Code)
	var hosted itemBody
	decode(t, w, &hosted)
	uploaded := f.assets.assets[0].PublicID

	w = doJSON(t, r, http.MethodPut, "/api/artist/portfolio/artworks/"+hosted.Item["id"].(string), map[string]string{
		"title": "Hosted", "imageUrl": "https://img.example/b.jpg", "publicId": uploaded,
	})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodDelete, "/api/artist/portfolio/artworks/"+hosted.Item["id"].(string), nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Empty(t, f.uploader.destroys)
	require.Len(t, f.assets.assets, 1)
	assert.Equal(t, int64(1), f.assets.assets[0].Refs)
}

func TestAddArtwork_FailedSaveReleasesUpload(t *testing.T) {
	f := newPortfolioFixture(mira)
	f.portfolios.conflicts = maxSaveAttempts

	w := doMultipart(t, f.router(), http.MethodPost, "/api/artist/portfolio/artworks",
		map[string]string{"title": "Harbour"}, formFile{"image", "harbour.jpg", []byte("jpeg-bytes")})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Len(t, f.uploader.destroys, 1)
	assert.Empty(t, f.assets.assets)
}

func TestPortfolioWrite_UnversionedDocument(t *testing.T) {
	f := newPortfolioFixture(mira)
	f.portfolios.seedRaw(t, "mira", bson.M{"basicDetails": bson.M{"fullName": "Mira Sol", "bio": "Painter"}})

	w := doJSON(t, f.router(), http.MethodPost, "/api/artist/portfolio/experience", map[string]string{"title": "Muralist"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	p, err := f.portfolios.Get(context.Background(), "mira")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.Version)
	assert.Equal(t, "Painter", p.BasicDetails.Bio)
	require.Len(t, p.Experience, 1)
	assert.Len(t, f.portfolios.docs, 1)
}

func TestPortfolioWrite_RequiresLiveAccount(t *testing.T) {
	suspended := *mira
	suspended.Status = models.ArtistStatusSuspended

	tests := []struct {
		name    string
		artists []*models.Artist
		want    int
	}{
		{"deleted artist", nil, http.StatusUnauthorized},
		{"suspended artist", []*models.Artist{&suspended}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPortfolioFixture(tt.artists...)
			w := doJSON(t, f.router(), http.MethodPost, "/api/artist/portfolio/experience", map[string]string{"title": "Muralist"})
			assert.Equal(t, tt.want, w.Code)
			assert.Empty(t, f.portfolios.docs)
		})
	}
}
