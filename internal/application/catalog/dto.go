package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/optivista/backend/internal/domain/catalog"
)

// ProductInfo is the client representation of a product
type ProductInfo struct {
	ID          uuid.UUID
	SKU         string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Frame       catalog.FrameAttributes
	ImageURL    string
	Model3DURL  string
	Status      catalog.ProductStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProductInfo maps a domain product to its client representation
func NewProductInfo(p *catalog.Product) ProductInfo {
	return ProductInfo{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Frame:       p.Frame,
		ImageURL:    p.ImageURL,
		Model3DURL:  p.Model3DURL,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// CreateProductInput contains the input for product creation
type CreateProductInput struct {
	SKU         string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Frame       catalog.FrameAttributes
	ImageURL    string
	Model3DURL  string
}

// UpdateProductInput contains the input for product update.
// Nil fields are left unchanged.
type UpdateProductInput struct {
	ProductID   uuid.UUID
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Frame       *catalog.FrameAttributes
	ImageURL    *string
	Model3DURL  *string
}

// AdjustStockInput contains the input for a manual stock adjustment
type AdjustStockInput struct {
	ProductID uuid.UUID
	Stock     int
}

// ListProductsInput contains filters for listing products
type ListProductsInput struct {
	Keyword    string
	Status     *catalog.ProductStatus
	Category   string
	Style      string
	FrameColor string
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}

// ProductListResult contains a page of products
type ProductListResult struct {
	Products []ProductInfo
	Total    int64
	Page     int
	PageSize int
}
