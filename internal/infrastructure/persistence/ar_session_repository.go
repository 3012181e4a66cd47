package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/optivista/backend/internal/domain/engagement"
	"github.com/optivista/backend/internal/domain/shared"
	"github.com/optivista/backend/internal/infrastructure/persistence/models"
)

// GormARSessionRepository implements engagement.ARSessionRepository using GORM
type GormARSessionRepository struct {
	db *gorm.DB
}

// NewGormARSessionRepository creates a new GormARSessionRepository
func NewGormARSessionRepository(db *gorm.DB) *GormARSessionRepository {
	return &GormARSessionRepository{db: db}
}

// Create appends a new session record
func (r *GormARSessionRepository) Create(ctx context.Context, s *engagement.ARSession) error {
	model, err := models.ARSessionModelFromDomain(s)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID finds a session by ID
func (r *GormARSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*engagement.ARSession, error) {
	var model models.ARSessionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByUserID returns a user's sessions with pagination
func (r *GormARSessionRepository) FindByUserID(ctx context.Context, userID uuid.UUID, filter engagement.PageFilter) ([]*engagement.ARSession, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ARSessionModel{}).
		Where("user_id = ?", userID)
	return r.findPage(query, filter)
}

// FindByProductID returns sessions for a product with pagination
func (r *GormARSessionRepository) FindByProductID(ctx context.Context, productID uuid.UUID, filter engagement.PageFilter) ([]*engagement.ARSession, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ARSessionModel{}).
		Where("product_id = ?", productID)
	return r.findPage(query, filter)
}

// CountByProductID returns the number of sessions logged for a product
func (r *GormARSessionRepository) CountByProductID(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ARSessionModel{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	return count, err
}

func (r *GormARSessionRepository) findPage(query *gorm.DB, filter engagement.PageFilter) ([]*engagement.ARSession, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sessionModels []models.ARSessionModel
	if err := query.
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&sessionModels).Error; err != nil {
		return nil, 0, err
	}

	sessions := make([]*engagement.ARSession, len(sessionModels))
	for i := range sessionModels {
		s, err := sessionModels[i].ToDomain()
		if err != nil {
			return nil, 0, err
		}
		sessions[i] = s
	}
	return sessions, total, nil
}
