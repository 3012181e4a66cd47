package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogapp "github.com/optivista/backend/internal/application/catalog"
	"github.com/optivista/backend/internal/domain/catalog"
)

// FrameRequest describes frame attributes in product requests
type FrameRequest struct {
	Category   string `json:"category" binding:"omitempty,max=32"`
	Style      string `json:"style" binding:"omitempty,max=32"`
	FrameColor string `json:"frame_color" binding:"omitempty,max=32"`
	FrameSize  string `json:"frame_size" binding:"omitempty,max=32"`
}

// CreateProductRequest is the request body for product creation
type CreateProductRequest struct {
	SKU         string       `json:"sku" binding:"required,min=3,max=64"`
	Name        string       `json:"name" binding:"required,min=1,max=128"`
	Description string       `json:"description" binding:"omitempty,max=2000"`
	Price       string       `json:"price" binding:"required"`
	Stock       int          `json:"stock" binding:"gte=0"`
	Frame       FrameRequest `json:"frame"`
	ImageURL    string       `json:"image_url" binding:"omitempty,url"`
	Model3DURL  string       `json:"model_3d_url" binding:"omitempty,url"`
}

// UpdateProductRequest is the request body for product update.
// Absent fields are left unchanged.
type UpdateProductRequest struct {
	Name        *string       `json:"name" binding:"omitempty,min=1,max=128"`
	Description *string       `json:"description" binding:"omitempty,max=2000"`
	Price       *string       `json:"price"`
	Frame       *FrameRequest `json:"frame"`
	ImageURL    *string       `json:"image_url" binding:"omitempty,url"`
	Model3DURL  *string       `json:"model_3d_url" binding:"omitempty,url"`
}

// AdjustStockRequest is the request body for a manual stock adjustment
type AdjustStockRequest struct {
	Stock int `json:"stock" binding:"gte=0"`
}

// ProductResponse is the wire representation of a product
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category,omitempty"`
	Style       string          `json:"style,omitempty"`
	FrameColor  string          `json:"frame_color,omitempty"`
	FrameSize   string          `json:"frame_size,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	Model3DURL  string          `json:"model_3d_url,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func toProductResponse(p catalogapp.ProductInfo) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Frame.Category,
		Style:       p.Frame.Style,
		FrameColor:  p.Frame.FrameColor,
		FrameSize:   p.Frame.FrameSize,
		ImageURL:    p.ImageURL,
		Model3DURL:  p.Model3DURL,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r FrameRequest) toAttributes() catalog.FrameAttributes {
	return catalog.FrameAttributes{
		Category:   r.Category,
		Style:      r.Style,
		FrameColor: r.FrameColor,
		FrameSize:  r.FrameSize,
	}
}
