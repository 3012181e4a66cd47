package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/optivista/backend/internal/domain/consultation"
	"github.com/optivista/backend/internal/domain/shared"
	"github.com/optivista/backend/internal/infrastructure/persistence/models"
)

// GormConsultationRepository implements consultation.ConsultationRepository using GORM
type GormConsultationRepository struct {
	db *gorm.DB
}

// NewGormConsultationRepository creates a new GormConsultationRepository
func NewGormConsultationRepository(db *gorm.DB) *GormConsultationRepository {
	return &GormConsultationRepository{db: db}
}

// Create creates a new consultation
func (r *GormConsultationRepository) Create(ctx context.Context, c *consultation.Consultation) error {
	model := models.ConsultationModelFromDomain(c)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing consultation
func (r *GormConsultationRepository) Update(ctx context.Context, c *consultation.Consultation) error {
	model := models.ConsultationModelFromDomain(c)
	result := r.db.WithContext(ctx).Model(&models.ConsultationModel{}).
		Where("id = ?", c.ID).
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

// FindByID finds a consultation by ID
func (r *GormConsultationRepository) FindByID(ctx context.Context, id uuid.UUID) (*consultation.Consultation, error) {
	var model models.ConsultationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCustomerID returns a customer's consultations with pagination
func (r *GormConsultationRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID, filter consultation.ConsultationFilter) ([]*consultation.Consultation, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ConsultationModel{}).
		Where("customer_id = ?", customerID)
	return r.findPage(query, filter)
}

// FindBySellerID returns a seller's consultations with pagination
func (r *GormConsultationRepository) FindBySellerID(ctx context.Context, sellerID uuid.UUID, filter consultation.ConsultationFilter) ([]*consultation.Consultation, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ConsultationModel{}).
		Where("seller_id = ?", sellerID)
	return r.findPage(query, filter)
}

func (r *GormConsultationRepository) findPage(query *gorm.DB, filter consultation.ConsultationFilter) ([]*consultation.Consultation, int64, error) {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var consultationModels []models.ConsultationModel
	if err := query.
		Order(orderClause(filter.SortBy, filter.SortOrder)).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&consultationModels).Error; err != nil {
		return nil, 0, err
	}

	consultations := make([]*consultation.Consultation, len(consultationModels))
	for i := range consultationModels {
		consultations[i] = consultationModels[i].ToDomain()
	}
	return consultations, total, nil
}
