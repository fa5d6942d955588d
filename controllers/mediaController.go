package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ishanbagra18/artfolio-server/database"
	"github.com/ishanbagra18/artfolio-server/helpers"
	"github.com/ishanbagra18/artfolio-server/models"
	"github.com/ishanbagra18/artfolio-server/services"
	"go.uber.org/zap"
)

var errUnsupportedFile = errors.New("only image files are allowed")

type MediaController struct {
	uploader MediaUploader
	assets   MediaStore
	log      *zap.Logger
	now      func() time.Time
}

func NewMediaController(uploader MediaUploader, assets MediaStore, log *zap.Logger) *MediaController {
	return &MediaController{uploader: uploader, assets: assets, log: log, now: time.Now}
}

// store uploads an image unless a file with the same content hash was stored
// before, in which case the existing asset is returned with dedup true.
// Either way the caller holds one reference and hands it back with release.
func (mc *MediaController) store(ctx context.Context, file multipart.File, header *multipart.FileHeader, folder, uploadedBy string) (*models.MediaAsset, bool, error) {
	if !helpers.IsImageFile(header.Filename) {
		return nil, false, errUnsupportedFile
	}

	hash, size, err := helpers.HashContent(file)
	if err != nil {
		return nil, false, err
	}
	existing, err := mc.assets.Acquire(ctx, hash)
	if err == nil {
		return existing, true, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, false, err
	}

	// Reset file pointer after hashing
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, false, fmt.Errorf("rewind upload: %w", err)
	}

	publicID := helpers.PublicIDFromFilename(header.Filename) + "_" + hash[:12]
	uploaded, err := mc.uploader.Upload(ctx, file, folder, publicID)
	if err != nil {
		return nil, false, err
	}

	asset := &models.MediaAsset{
		Hash:       hash,
		PublicID:   uploaded.PublicID,
		URL:        uploaded.URL,
		Folder:     folder,
		Filename:   header.Filename,
		Bytes:      size,
		UploadedBy: uploadedBy,
		Refs:       1,
		CreatedAt:  mc.now(),
	}
	if err := mc.assets.Insert(ctx, asset); err != nil {
		if !errors.Is(err, database.ErrDuplicate) {
			return nil, false, err
		}
		// Lost a race against an identical upload; keep the first one.
		winner, ferr := mc.assets.Acquire(ctx, hash)
		if ferr != nil {
			return nil, false, ferr
		}
		if winner.PublicID != asset.PublicID {
			mc.release(ctx, asset.PublicID)
		}
		return winner, true, nil
	}
	return asset, false, nil
}

// release hands back one reference and destroys the file once nothing uses
// it. Uploads without a record are destroyed directly. Failures only log.
func (mc *MediaController) release(ctx context.Context, publicID string) {
	if publicID == "" {
		return
	}
	last, err := mc.assets.Release(ctx, publicID)
	switch {
	case errors.Is(err, database.ErrNotFound):
	case err != nil:
		mc.log.Warn("[Media] release failed", zap.String("publicId", publicID), zap.Error(err))
		return
	case !last:
		mc.log.Debug("[Media] asset still referenced", zap.String("publicId", publicID))
		return
	}
	if err := mc.uploader.Destroy(ctx, publicID); err != nil {
		mc.log.Warn("[Media] destroy failed", zap.String("publicId", publicID), zap.Error(err))
	}
}

// uploadFailure maps store errors to a response.
func (mc *MediaController) uploadFailure(c *gin.Context, tag string, err error) {
	switch {
	case errors.Is(err, errUnsupportedFile):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrMediaDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "file uploads are not configured"})
	default:
		mc.log.Error(tag+" upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file"})
	}
}

func (mc *MediaController) Upload() gin.HandlerFunc {
	return func(c *gin.Context) {
		header, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}
		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
			return
		}
		defer file.Close()

		folder := strings.Trim(c.PostForm("folder"), "/")
		if folder == "" {
			folder = "uploads"
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		asset, dedup, err := mc.store(ctx, file, header, folder, currentArtistID(c))
		if err != nil {
			mc.uploadFailure(c, "[Upload]", err)
			return
		}

		status := http.StatusCreated
		if dedup {
			status = http.StatusOK
		}
		c.JSON(status, gin.H{"msg": "file stored", "asset": asset, "url": asset.URL, "deduplicated": dedup})
	}
}

func (mc *MediaController) ListUploads() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		assets, err := mc.assets.List(ctx)
		if err != nil {
			storeFailure(c, mc.log, "[ListUploads]", err, "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(assets), "assets": assets})
	}
}

// DeleteUpload takes the public id from a wildcard since Cloudinary ids
// contain folder slashes.
func (mc *MediaController) DeleteUpload() gin.HandlerFunc {
	return func(c *gin.Context) {
		publicID := strings.TrimPrefix(c.Param("publicId"), "/")
		if publicID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "publicId is required"})
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := mc.uploader.Destroy(ctx, publicID); err != nil {
			if errors.Is(err, services.ErrMediaDisabled) {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "file uploads are not configured"})
				return
			}
			mc.log.Warn("[DeleteUpload] destroy failed", zap.String("publicId", publicID), zap.Error(err))
		}
		if err := mc.assets.DeleteByPublicID(ctx, publicID); err != nil {
			storeFailure(c, mc.log, "[DeleteUpload]", err, "Upload not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "upload deleted"})
	}
}

func (mc *MediaController) Usage() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		usage, err := mc.uploader.Usage(ctx)
		if err != nil {
			if errors.Is(err, services.ErrMediaDisabled) {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "file uploads are not configured"})
				return
			}
			mc.log.Error("[Usage] cloudinary usage failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "could not fetch usage"})
			return
		}
		c.JSON(http.StatusOK, usage)
	}
}
