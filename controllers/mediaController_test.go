package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ishanbagra18/artfolio-server/models"
	"github.com/ishanbagra18/artfolio-server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type formFile struct {
	field, name string
	content     []byte
}

func doMultipart(t *testing.T, r http.Handler, method, path string, fields map[string]string, files ...formFile) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newMediaRouter(uploader *fakeUploader, assets *fakeMedia) http.Handler {
	ctl := NewMediaController(uploader, assets, zap.NewNop())
	ctl.now = clock
	r := newEngine()
	r.POST("/api/uploads", as("mira", models.RoleArtist), ctl.Upload())
	admin := r.Group("/api/admin", as("admin", models.RoleAdmin))
	admin.GET("/uploads", ctl.ListUploads())
	admin.DELETE("/uploads/*publicId", ctl.DeleteUpload())
	return r
}

var pngBytes = []byte("\x89PNG\r\n\x1a\nnot-really-a-png")

func TestUpload_DeduplicatesByContent(t *testing.T) {
	uploader, assets := &fakeUploader{}, &fakeMedia{}
	r := newMediaRouter(uploader, assets)

	w := doMultipart(t, r, http.MethodPost, "/api/uploads", map[string]string{"folder": "covers"},
		formFile{"file", "Sunset Study.png", pngBytes})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var first struct {
		Asset        models.MediaAsset `json:"asset"`
		Deduplicated bool              `json:"deduplicated"`
	}
	decode(t, w, &first)
	assert.False(t, first.Deduplicated)
	assert.Equal(t, "covers", first.Asset.Folder)
	assert.Equal(t, "mira", first.Asset.UploadedBy)
	assert.Equal(t, int64(len(pngBytes)), first.Asset.Bytes)
	assert.Contains(t, first.Asset.PublicID, "sunset_study_")

	// Same bytes under another name: no second upload.
	w = doMultipart(t, r, http.MethodPost, "/api/uploads", nil, formFile{"file", "copy.png", pngBytes})
	require.Equal(t, http.StatusOK, w.Code)
	var second struct {
		Asset        models.MediaAsset `json:"asset"`
		Deduplicated bool              `json:"deduplicated"`
	}
	decode(t, w, &second)
	assert.True(t, second.Deduplicated)
	assert.Equal(t, first.Asset.PublicID, second.Asset.PublicID)

	assert.Len(t, uploader.uploads, 1)
	assert.Len(t, assets.assets, 1)
}

func TestUpload_Rejections(t *testing.T) {
	uploader := &fakeUploader{}
	r := newMediaRouter(uploader, &fakeMedia{})

	w := doMultipart(t, r, http.MethodPost, "/api/uploads", nil, formFile{"file", "notes.pdf", []byte("%PDF-1.4")})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doMultipart(t, r, http.MethodPost, "/api/uploads", map[string]string{"folder": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, uploader.uploads)

	disabled := newMediaRouter(&fakeUploader{err: services.ErrMediaDisabled}, &fakeMedia{})
	w = doMultipart(t, disabled, http.MethodPost, "/api/uploads", nil, formFile{"file", "a.jpg", []byte("jpeg")})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestDeleteUpload_WildcardPublicID(t *testing.T) {
	uploader, assets := &fakeUploader{}, &fakeMedia{}
	r := newMediaRouter(uploader, assets)

	w := doMultipart(t, r, http.MethodPost, "/api/uploads", nil, formFile{"file", "a.jpg", []byte("jpeg")})
	require.Equal(t, http.StatusCreated, w.Code)
	publicID := assets.assets[0].PublicID

	w = doJSON(t, r, http.MethodDelete, "/api/admin/uploads/"+publicID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []string{publicID}, uploader.destroys)
	assert.Empty(t, assets.assets)

	w = doJSON(t, r, http.MethodDelete, "/api/admin/uploads/"+publicID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
