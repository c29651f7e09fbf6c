package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage defines the interface for object storage operations.
type FileStorage interface {
	// GeneratePresignedUploadURL creates a temporary URL that allows PUT requests
	// for uploading an object directly to the storage provider.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET requests
	// for downloading/viewing an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}

// IsObjectKey reports whether a media reference points into our bucket as
// opposed to an absolute URL (or a placeholder such as "#").
func IsObjectKey(ref string) bool {
	if ref == "" || ref == "#" {
		return false
	}
	lower := strings.ToLower(ref)
	return !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://")
}

// ResolveReference turns a stored media reference into something a browser
// can load. Absolute URLs pass through; object keys become presigned GET
// URLs. With no storage configured the reference is returned unchanged.
func ResolveReference(ctx context.Context, fs FileStorage, ref string) (string, error) {
	if fs == nil || !IsObjectKey(ref) {
		return ref, nil
	}
	return fs.GeneratePresignedDownloadURL(ctx, ref, DefaultPresignedURLExpiry)
}

// NewObjectKey builds a unique key under prefix, e.g.
// "thumbnails/3f1c...e2.png" for contentType "image/png".
func NewObjectKey(prefix, contentType string) string {
	ext := "bin"
	if parts := strings.SplitN(contentType, "/", 2); len(parts) == 2 && parts[1] != "" {
		ext = parts[1]
	}
	return path.Join(prefix, fmt.Sprintf("%s.%s", uuid.NewString(), ext))
}
