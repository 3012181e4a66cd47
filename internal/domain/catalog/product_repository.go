package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// Create creates a new product
	Create(ctx context.Context, product *Product) error

	// Update updates an existing product
	Update(ctx context.Context, product *Product) error

	// Delete deletes a product by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a product by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySKU finds a product by SKU
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// FindByIDs finds products by a set of IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Product, error)

	// FindAll returns products matching the filter with pagination
	FindAll(ctx context.Context, filter ProductFilter) ([]*Product, int64, error)

	// ExistsBySKU checks if a SKU already exists
	ExistsBySKU(ctx context.Context, sku string) (bool, error)

	// DecrementStock atomically decrements stock for a product.
	// It only succeeds when the remaining stock covers the quantity;
	// otherwise it reports insufficient stock.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error

	// IncrementStock atomically adds stock back to a product
	IncrementStock(ctx context.Context, id uuid.UUID, quantity int) error
}

// ProductFilter contains filter options for querying products
type ProductFilter struct {
	// Search keyword for name, SKU, or description
	Keyword string

	// Filter by status
	Status *ProductStatus

	// Filter by frame attributes
	Category   string
	Style      string
	FrameColor string

	// Pagination
	Page     int
	PageSize int

	// Sorting
	SortBy    string
	SortOrder string // "asc" or "desc"
}

// NewProductFilter creates a new ProductFilter with default values
func NewProductFilter() ProductFilter {
	return ProductFilter{
		Page:      1,
		PageSize:  20,
		SortBy:    "created_at",
		SortOrder: "desc",
	}
}

// WithKeyword sets the search keyword
func (f ProductFilter) WithKeyword(keyword string) ProductFilter {
	f.Keyword = keyword
	return f
}

// WithStatus sets the status filter
func (f ProductFilter) WithStatus(status ProductStatus) ProductFilter {
	f.Status = &status
	return f
}

// WithCategory sets the category filter
func (f ProductFilter) WithCategory(category string) ProductFilter {
	f.Category = category
	return f
}

// WithPagination sets pagination parameters
func (f ProductFilter) WithPagination(page, pageSize int) ProductFilter {
	f.Page = page
	f.PageSize = pageSize
	return f
}

// WithSort sets the sort column and direction
func (f ProductFilter) WithSort(sortBy, sortOrder string) ProductFilter {
	if sortBy != "" {
		f.SortBy = sortBy
	}
	if sortOrder != "" {
		f.SortOrder = sortOrder
	}
	return f
}

// Offset returns the offset for pagination
func (f ProductFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f ProductFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
