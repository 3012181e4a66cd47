package media

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/optivista/backend/internal/domain/shared"
)

// AllowedExtensions lists the file extensions accepted for upload.
// Images plus the 3D formats used for AR try-on models.
var AllowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
	".glb":  {},
	".gltf": {},
}

// FileObject represents an uploaded file stored in object storage
type FileObject struct {
	shared.BaseEntity
	OwnerID      uuid.UUID
	StorageKey   string
	OriginalName string
	ContentType  string
	Size         int64
	URL          string
}

// NewFileObject validates the upload and derives a unique storage key
func NewFileObject(ownerID uuid.UUID, originalName, contentType string, size, maxSize int64) (*FileObject, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if originalName == "" {
		return nil, shared.NewDomainError("INVALID_FILENAME", "Filename cannot be empty")
	}
	if size <= 0 {
		return nil, shared.NewDomainError("INVALID_FILE", "File is empty")
	}
	if maxSize > 0 && size > maxSize {
		return nil, shared.NewDomainError("FILE_TOO_LARGE",
			fmt.Sprintf("File exceeds the maximum size of %d bytes", maxSize))
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := AllowedExtensions[ext]; !ok {
		return nil, shared.NewDomainError("UNSUPPORTED_FILE_TYPE",
			fmt.Sprintf("File type %q is not allowed", ext))
	}

	base := shared.NewBaseEntity()
	return &FileObject{
		BaseEntity:   base,
		OwnerID:      ownerID,
		StorageKey:   fmt.Sprintf("uploads/%s%s", base.ID, ext),
		OriginalName: originalName,
		ContentType:  contentType,
		Size:         size,
	}, nil
}

// SetURL records the public URL after a successful storage write
func (f *FileObject) SetURL(url string) {
	f.URL = url
	f.Touch()
}

// Is3DModel reports whether the file is a try-on model asset
func (f *FileObject) Is3DModel() bool {
	ext := strings.ToLower(filepath.Ext(f.StorageKey))
	return ext == ".glb" || ext == ".gltf"
}
