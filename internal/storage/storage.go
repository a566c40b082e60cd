package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nagoyameshi/go-api-server/internal/config"
)

var (
	ErrUnsupportedType = errors.New("storage: unsupported file type")
	ErrTooLarge        = errors.New("storage: file too large")
)

var imageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// Store keeps restaurant images. Put returns the reference saved on the record.
type Store interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, ref string) error
	URL(ref string) string
}

// New builds the store selected by STORAGE_DRIVER.
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case config.StorageS3:
		return NewS3Store(ctx, cfg)
	case config.StorageLocal:
		return NewLocalStore(cfg.LocalDir, cfg.PublicBaseURL)
	default:
		return nil, fmt.Errorf("지원하지 않는 storage 드라이버: %s", cfg.Driver)
	}
}

// Image is an uploaded image file before it is stored.
type Image struct {
	Filename string
	Size     int64
	Body     io.Reader
}

// ImageKey validates the upload and returns a fresh object key under prefix
// together with its content type.
func ImageKey(prefix string, img Image, maxBytes int64) (string, string, error) {
	if maxBytes > 0 && img.Size > maxBytes {
		return "", "", ErrTooLarge
	}
	ext := strings.ToLower(filepath.Ext(img.Filename))
	contentType, ok := imageTypes[ext]
	if !ok {
		return "", "", ErrUnsupportedType
	}
	return prefix + "/" + uuid.NewString() + ext, contentType, nil
}

func joinURL(base, ref string) string {
	if ref == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(ref, "/")
}
