// Package storage persists uploaded avatar images on local disk or S3
// compatible object storage, selected once at startup.
package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxUploadBytes caps avatar uploads.
const MaxUploadBytes = 10 << 20

// ErrUnsupportedType rejects anything that is not a known image format.
var ErrUnsupportedType = errors.New("storage: only jpeg, jpg, png and webp images are allowed")

// Store saves an uploaded object and returns the URL to persist on the user.
type Store interface {
	Save(ctx context.Context, key, contentType string, r io.Reader) (string, error)
}

var allowedExtensions = map[string]string{
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// NewKey builds a collision-free object key preserving the upload's
// extension. It fails for non-image extensions.
func NewKey(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", ErrUnsupportedType
	}
	return uuid.NewString() + ext, nil
}

// ContentTypeFor returns the MIME type matching a validated key.
func ContentTypeFor(key string) string {
	return allowedExtensions[strings.ToLower(filepath.Ext(key))]
}

// ValidContentType reports whether the client-declared MIME type is an
// accepted image type.
func ValidContentType(contentType string) bool {
	for _, allowed := range allowedExtensions {
		if contentType == allowed {
			return true
		}
	}
	return false
}
