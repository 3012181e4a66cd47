package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/optivista/backend/internal/domain/order"
	"github.com/optivista/backend/internal/domain/shared"
	"github.com/optivista/backend/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements order.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// CreateWithStockDecrement decrements stock and inserts the order with its
// items in one transaction. If any product lacks stock the whole operation
// rolls back and ErrInsufficientStock is returned.
func (r *GormOrderRepository) CreateWithStockDecrement(ctx context.Context, o *order.Order, adjustments []order.StockAdjustment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, adj := range adjustments {
			if err := decrementStock(tx, adj.ProductID, adj.Quantity); err != nil {
				return err
			}
		}

		model := models.OrderModelFromDomain(o)
		return tx.Create(model).Error
	})
}

// Update updates an existing order without touching its items
func (r *GormOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return r.updateOrder(r.db.WithContext(ctx), o)
}

// UpdateWithStockRestore updates the order and restores stock in one transaction
func (r *GormOrderRepository) UpdateWithStockRestore(ctx context.Context, o *order.Order, adjustments []order.StockAdjustment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.updateOrder(tx, o); err != nil {
			return err
		}
		for _, adj := range adjustments {
			if err := incrementStock(tx, adj.ProductID, adj.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormOrderRepository) updateOrder(db *gorm.DB, o *order.Order) error {
	model := models.OrderModelFromDomain(o)
	result := db.Model(&models.OrderModel{}).
		Where("id = ?", o.ID).
		Select("*").Omit("id", "created_at", "Items").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an order with its items by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrderNumber finds an order by its order number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUserID returns a user's orders with pagination
func (r *GormOrderRepository) FindByUserID(ctx context.Context, userID uuid.UUID, filter order.OrderFilter) ([]*order.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("user_id = ?", userID)
	return r.findPage(query, filter)
}

// FindAll returns orders matching the filter with pagination
func (r *GormOrderRepository) FindAll(ctx context.Context, filter order.OrderFilter) ([]*order.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.OrderModel{})
	return r.findPage(query, filter)
}

func (r *GormOrderRepository) findPage(query *gorm.DB, filter order.OrderFilter) ([]*order.Order, int64, error) {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orderModels []models.OrderModel
	if err := query.
		Preload("Items").
		Order(orderClause(filter.SortBy, filter.SortOrder)).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&orderModels).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]*order.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = orderModels[i].ToDomain()
	}
	return orders, total, nil
}
