package order

import (
	"context"

	"github.com/google/uuid"
)

// StockAdjustment pairs a product with a quantity to decrement or restore
type StockAdjustment struct {
	ProductID uuid.UUID
	Quantity  int
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// CreateWithStockDecrement atomically decrements stock for every
	// adjustment and inserts the order with its items, all in one
	// transaction. Insufficient stock on any product fails the whole
	// operation and rolls back.
	CreateWithStockDecrement(ctx context.Context, order *Order, adjustments []StockAdjustment) error

	// Update updates an existing order
	Update(ctx context.Context, order *Order) error

	// UpdateWithStockRestore updates the order and restores stock for
	// every adjustment in one transaction. Used on cancellation.
	UpdateWithStockRestore(ctx context.Context, order *Order, adjustments []StockAdjustment) error

	// FindByID finds an order with its items by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByOrderNumber finds an order by its order number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)

	// FindByUserID returns a user's orders with pagination
	FindByUserID(ctx context.Context, userID uuid.UUID, filter OrderFilter) ([]*Order, int64, error)

	// FindAll returns orders matching the filter with pagination
	FindAll(ctx context.Context, filter OrderFilter) ([]*Order, int64, error)
}

// OrderFilter contains filter options for querying orders
type OrderFilter struct {
	// Filter by status
	Status *OrderStatus

	// Pagination
	Page     int
	PageSize int

	// Sorting
	SortBy    string
	SortOrder string // "asc" or "desc"
}

// NewOrderFilter creates a new OrderFilter with default values
func NewOrderFilter() OrderFilter {
	return OrderFilter{
		Page:      1,
		PageSize:  20,
		SortBy:    "created_at",
		SortOrder: "desc",
	}
}

// WithStatus sets the status filter
func (f OrderFilter) WithStatus(status OrderStatus) OrderFilter {
	f.Status = &status
	return f
}

// WithPagination sets pagination parameters
func (f OrderFilter) WithPagination(page, pageSize int) OrderFilter {
	f.Page = page
	f.PageSize = pageSize
	return f
}

// Offset returns the offset for pagination
func (f OrderFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f OrderFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
