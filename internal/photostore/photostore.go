package photostore

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("photo not found")

// PhotoStore keeps the material photos submitted for verification.
type PhotoStore interface {
	Save(ctx context.Context, prefix, mimeType string, r io.Reader) (storageKey string, err error)
	Get(ctx context.Context, storageKey string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, storageKey string) error
}

// NewKey builds a storage key of the form <prefix>_<uuid><ext>.
func NewKey(prefix, mimeType string) string {
	return prefix + "_" + uuid.NewString() + ExtForMIME(mimeType)
}

func ExtForMIME(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

func MIMEForKey(key string) string {
	lower := strings.ToLower(key)
	switch {
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".gif"):
		return "image/gif"
	case strings.HasSuffix(lower, ".webp"):
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
