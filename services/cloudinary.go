package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var ErrMediaDisabled = errors.New("media storage is not configured")

// UploadedAsset is what the app keeps about a stored file.
type UploadedAsset struct {
	PublicID string
	URL      string
	Bytes    int64
}

// MediaStorage is the Cloudinary account used for portfolio images and chat
// photos.
type MediaStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewMediaStorage returns a disabled storage when url is empty.
func NewMediaStorage(url, folder string) (*MediaStorage, error) {
	if url == "" {
		return &MediaStorage{folder: folder}, nil
	}
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &MediaStorage{cld: cld, folder: folder}, nil
}

func (m *MediaStorage) Enabled() bool { return m.cld != nil }

// Upload streams r to Cloudinary under the app folder plus sub.
func (m *MediaStorage) Upload(ctx context.Context, r io.Reader, sub, publicID string) (*UploadedAsset, error) {
	if m.cld == nil {
		return nil, ErrMediaDisabled
	}
	folder := m.folder
	if sub != "" {
		folder = folder + "/" + sub
	}

	res, err := m.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       folder,
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	return &UploadedAsset{PublicID: res.PublicID, URL: res.SecureURL, Bytes: int64(res.Bytes)}, nil
}

func (m *MediaStorage) Destroy(ctx context.Context, publicID string) error {
	if m.cld == nil {
		return ErrMediaDisabled
	}
	res, err := m.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy: %s", res.Error.Message)
	}
	return nil
}

// Usage returns the account usage report as Cloudinary sends it.
func (m *MediaStorage) Usage(ctx context.Context) (interface{}, error) {
	if m.cld == nil {
		return nil, ErrMediaDisabled
	}
	res, err := m.cld.Admin.Usage(ctx, admin.UsageParams{})
	if err != nil {
		return nil, fmt.Errorf("cloudinary usage: %w", err)
	}
	return res, nil
}
