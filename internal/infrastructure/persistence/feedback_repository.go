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

// GormFeedbackRepository implements engagement.FeedbackRepository using GORM
type GormFeedbackRepository struct {
	db *gorm.DB
}

// NewGormFeedbackRepository creates a new GormFeedbackRepository
func NewGormFeedbackRepository(db *gorm.DB) *GormFeedbackRepository {
	return &GormFeedbackRepository{db: db}
}

// Create creates a new feedback
func (r *GormFeedbackRepository) Create(ctx context.Context, f *engagement.Feedback) error {
	model := models.FeedbackModelFromDomain(f)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update updates an existing feedback
func (r *GormFeedbackRepository) Update(ctx context.Context, f *engagement.Feedback) error {
	model := models.FeedbackModelFromDomain(f)
	result := r.db.WithContext(ctx).Model(&models.FeedbackModel{}).
		Where("id = ?", f.ID).
		Select("*").Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a feedback by ID
func (r *GormFeedbackRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.FeedbackModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a feedback by ID
func (r *GormFeedbackRepository) FindByID(ctx context.Context, id uuid.UUID) (*engagement.Feedback, error) {
	var model models.FeedbackModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUserAndProduct finds the user's feedback for a product
func (r *GormFeedbackRepository) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*engagement.Feedback, error) {
	var model models.FeedbackModel
	if err := r.db.WithContext(ctx).
		First(&model, "user_id = ? AND product_id = ?", userID, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProductID returns feedback for a product with pagination
func (r *GormFeedbackRepository) FindByProductID(ctx context.Context, productID uuid.UUID, filter engagement.PageFilter) ([]*engagement.Feedback, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.FeedbackModel{}).
		Where("product_id = ?", productID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var feedbackModels []models.FeedbackModel
	if err := query.
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&feedbackModels).Error; err != nil {
		return nil, 0, err
	}

	feedback := make([]*engagement.Feedback, len(feedbackModels))
	for i := range feedbackModels {
		feedback[i] = feedbackModels[i].ToDomain()
	}
	return feedback, total, nil
}

// ExistsByUserAndProduct checks if the user already reviewed the product
func (r *GormFeedbackRepository) ExistsByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.FeedbackModel{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// RatingSummary returns the average rating and count for a product
func (r *GormFeedbackRepository) RatingSummary(ctx context.Context, productID uuid.UUID) (*engagement.RatingSummary, error) {
	var row struct {
		Average float64
		Count   int64
	}
	if err := r.db.WithContext(ctx).Model(&models.FeedbackModel{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("product_id = ?", productID).
		Scan(&row).Error; err != nil {
		return nil, err
	}

	return &engagement.RatingSummary{
		ProductID: productID,
		Average:   row.Average,
		Count:     row.Count,
	}, nil
}
