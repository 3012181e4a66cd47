package media

import (
	"context"

	"github.com/google/uuid"
)

// FileRepository defines the interface for file metadata persistence
type FileRepository interface {
	// Create creates a new file record
	Create(ctx context.Context, file *FileObject) error

	// Delete deletes a file record by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a file by ID
	FindByID(ctx context.Context, id uuid.UUID) (*FileObject, error)

	// FindByStorageKey finds a file by its storage key
	FindByStorageKey(ctx context.Context, key string) (*FileObject, error)

	// FindByOwnerID returns an owner's files
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*FileObject, error)
}
