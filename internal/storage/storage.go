// Package storage persists uploaded images on local disk or in an S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"artspace/internal/config"
	"artspace/internal/models"

	"github.com/google/uuid"
)

// Category groups uploads and decides which file types are accepted.
type Category string

const (
	CategoryProfilePicture Category = "profile_pictures"
	CategoryArtwork        Category = "artworks"
	CategoryThumbnail      Category = "thumbnails"
)

var allowedExtensions = map[Category]map[string]struct{}{
	CategoryProfilePicture: {"png": {}, "jpg": {}, "jpeg": {}},
	CategoryArtwork:        {"png": {}, "jpg": {}, "jpeg": {}, "gif": {}},
	CategoryThumbnail:      {"png": {}, "jpg": {}, "jpeg": {}, "gif": {}},
}

// Store saves uploads and maps stored paths to public URLs.
type Store interface {
	// Save writes r under category and returns the stored relative path.
	Save(ctx context.Context, category Category, filename string, r io.Reader) (string, error)
	// Delete removes a previously saved object. Missing objects are not an error.
	Delete(ctx context.Context, relPath string) error
	// URL returns the public address for relPath.
	URL(relPath string) string
	// Backend names the implementation for metrics.
	Backend() string
}

// Allowed reports whether filename has an extension accepted for category.
func Allowed(category Category, filename string) bool {
	_, ok := allowedExtensions[category][extension(filename)]
	return ok
}

// isAbsoluteURL reports values that already point at an external location,
// such as video thumbnails given as links.
func isAbsoluteURL(v string) bool {
	return strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://")
}

func extension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}

// objectName builds a collision-free relative path that keeps the original extension.
func objectName(category Category, filename string) (string, error) {
	if !Allowed(category, filename) {
		return "", models.NewValidationError(fmt.Sprintf("file type not allowed for %s", category))
	}
	return path.Join(string(category), uuid.NewString()+"."+extension(filename)), nil
}

// New builds the Store selected by UPLOAD_BACKEND.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.UploadBackend {
	case "s3":
		return NewS3Store(ctx, cfg)
	default:
		return NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL+LocalURLPrefix)
	}
}
