package storage

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/slug"
)

// Store persists uploaded webinar assets and returns a URL they can be fetched from.
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ValidateImageType validates the image content type
func ValidateImageType(contentType string) error {
	if _, ok := allowedImageTypes[strings.ToLower(contentType)]; !ok {
		return fmt.Errorf("invalid file type: %s. Allowed types: jpeg, jpg, png, webp", contentType)
	}
	return nil
}

// ValidateImageSize rejects empty files and files larger than maxSize bytes
func ValidateImageSize(size, maxSize int64) error {
	if size <= 0 {
		return fmt.Errorf("file is empty")
	}
	if size > maxSize {
		return fmt.Errorf("file too large: %d bytes (max %d bytes)", size, maxSize)
	}
	return nil
}

// DetectContentType sniffs the content type of data, preferring the sniffed
// value over a client-declared one.
func DetectContentType(declared string, data []byte) string {
	sniffed := http.DetectContentType(data)
	if _, ok := allowedImageTypes[sniffed]; ok {
		return sniffed
	}
	return strings.ToLower(declared)
}

// AssetKey builds the object key for an uploaded file:
// webinars/{owner}/{random}-{slugified-name}{ext}
func AssetKey(ownerID, originalName, contentType string) string {
	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	name := slug.Make(base)
	if name == "" {
		name = "photo"
	}

	ext := allowedImageTypes[strings.ToLower(contentType)]
	return path.Join("webinars", ownerID, uuid.NewString()[:8]+"-"+name+ext)
}

// LocalStore writes assets to a directory served by the API under urlPrefix.
type LocalStore struct {
	dir       string
	urlPrefix string
}

// NewLocalStore creates the upload directory if needed
func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

// Dir returns the directory assets are written to
func (l *LocalStore) Dir() string {
	return l.dir
}

// Put writes data to dir/key
func (l *LocalStore) Put(ctx context.Context, key, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	clean := path.Clean("/" + key)
	target := filepath.Join(l.dir, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("failed to create asset directory: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil { //nolint:gosec // public assets
		return "", fmt.Errorf("failed to write asset: %w", err)
	}
	return l.urlPrefix + clean, nil
}

var (
	_ Store = (*S3Store)(nil)
	_ Store = (*LocalStore)(nil)
)
