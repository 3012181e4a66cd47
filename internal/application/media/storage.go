package media

import (
	"context"
	"io"
	"time"
)

// ObjectStorageService abstracts the object store backing file uploads.
// Implemented by infrastructure/storage against any S3-compatible backend.
type ObjectStorageService interface {
	// Upload streams an object to storage under the given key.
	Upload(ctx context.Context, storageKey string, body io.Reader, size int64, contentType string) error

	// DeleteObject removes an object. Deleting a missing key is not an error.
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists reports whether the key is present in the bucket.
	ObjectExists(ctx context.Context, storageKey string) (bool, error)

	// GenerateDownloadURL returns a presigned GET URL and its expiry time.
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// PublicURL returns the stable public URL for an object, or "" when the
	// bucket is not publicly exposed.
	PublicURL(storageKey string) string
}
