package media

import (
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/optivista/backend/internal/domain/media"
)

// UploadFileInput contains the input for uploading a file
type UploadFileInput struct {
	OwnerID      uuid.UUID
	OriginalName string
	ContentType  string
	Size         int64
	Body         io.Reader
}

// FileInfo is the client representation of an uploaded file
type FileInfo struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	StorageKey   string
	OriginalName string
	ContentType  string
	Size         int64
	URL          string
	CreatedAt    time.Time
}

// NewFileInfo maps a domain file object to its client representation
func NewFileInfo(f *media.FileObject) FileInfo {
	return FileInfo{
		ID:           f.ID,
		OwnerID:      f.OwnerID,
		StorageKey:   f.StorageKey,
		OriginalName: f.OriginalName,
		ContentType:  f.ContentType,
		Size:         f.Size,
		URL:          f.URL,
		CreatedAt:    f.CreatedAt,
	}
}

// DownloadURLResult carries a presigned download link and its expiry
type DownloadURLResult struct {
	URL       string
	ExpiresAt time.Time
}
