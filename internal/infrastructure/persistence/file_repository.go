package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/optivista/backend/internal/domain/media"
	"github.com/optivista/backend/internal/domain/shared"
	"github.com/optivista/backend/internal/infrastructure/persistence/models"
)

// GormFileRepository implements media.FileRepository using GORM
type GormFileRepository struct {
	db *gorm.DB
}

// NewGormFileRepository creates a new GormFileRepository
func NewGormFileRepository(db *gorm.DB) *GormFileRepository {
	return &GormFileRepository{db: db}
}

// Create creates a new file record
func (r *GormFileRepository) Create(ctx context.Context, f *media.FileObject) error {
	model := models.FileModelFromDomain(f)
	return r.db.WithContext(ctx).Create(model).Error
}

// Delete deletes a file record by ID
func (r *GormFileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.FileModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a file by ID
func (r *GormFileRepository) FindByID(ctx context.Context, id uuid.UUID) (*media.FileObject, error) {
	var model models.FileModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByStorageKey finds a file by its storage key
func (r *GormFileRepository) FindByStorageKey(ctx context.Context, key string) (*media.FileObject, error) {
	var model models.FileModel
	if err := r.db.WithContext(ctx).First(&model, "storage_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOwnerID returns an owner's files
func (r *GormFileRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*media.FileObject, error) {
	var fileModels []models.FileModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&fileModels).Error; err != nil {
		return nil, err
	}

	files := make([]*media.FileObject, len(fileModels))
	for i := range fileModels {
		files[i] = fileModels[i].ToDomain()
	}
	return files, nil
}
