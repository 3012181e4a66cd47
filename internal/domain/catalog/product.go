package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/optivista/backend/internal/domain/shared"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "active"
	ProductStatusInactive     ProductStatus = "inactive"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

// FrameAttributes describes the physical characteristics of an eyewear frame
type FrameAttributes struct {
	Category   string // e.g. "sunglasses", "optical", "sports"
	Style      string // e.g. "aviator", "wayfarer", "round"
	FrameColor string
	FrameSize  string // e.g. "52-18-140"
}

// Product is the aggregate root for catalog operations
type Product struct {
	shared.BaseEntity
	SKU         string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Frame       FrameAttributes
	ImageURL    string
	Model3DURL  string // URL of the 3D asset used for AR try-on
	Status      ProductStatus
}

// NewProduct creates a new active product
func NewProduct(sku, name string, price decimal.Decimal, stock int) (*Product, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		SKU:        strings.ToUpper(sku),
		Name:       name,
		Price:      price,
		Stock:      stock,
		Status:     ProductStatusActive,
	}, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.Touch()
	return nil
}

// UpdateSKU updates the product's SKU.
// Other systems may reference the SKU, so use with caution.
func (p *Product) UpdateSKU(sku string) error {
	if err := validateSKU(sku); err != nil {
		return err
	}

	p.SKU = strings.ToUpper(sku)
	p.Touch()
	return nil
}

// SetPrice sets the selling price
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	p.Price = price
	p.Touch()
	return nil
}

// SetStock replaces the stock level
func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	p.Stock = stock
	p.Touch()
	return nil
}

// SetFrame sets the frame attributes
func (p *Product) SetFrame(frame FrameAttributes) error {
	for _, v := range []string{frame.Category, frame.Style, frame.FrameColor, frame.FrameSize} {
		if len(v) > 100 {
			return shared.NewDomainError("INVALID_FRAME", "Frame attributes cannot exceed 100 characters")
		}
	}

	p.Frame = frame
	p.Touch()
	return nil
}

// SetImageURL sets the product image URL
func (p *Product) SetImageURL(url string) error {
	if len(url) > 500 {
		return shared.NewDomainError("INVALID_IMAGE_URL", "Image URL cannot exceed 500 characters")
	}

	p.ImageURL = url
	p.Touch()
	return nil
}

// SetModel3DURL sets the URL of the 3D model used for AR try-on
func (p *Product) SetModel3DURL(url string) error {
	if len(url) > 500 {
		return shared.NewDomainError("INVALID_MODEL_URL", "Model URL cannot exceed 500 characters")
	}

	p.Model3DURL = url
	p.Touch()
	return nil
}

// Activate activates the product
func (p *Product) Activate() error {
	if p.Status == ProductStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}
	if p.Status == ProductStatusDiscontinued {
		return shared.NewDomainError("CANNOT_ACTIVATE", "Cannot activate a discontinued product")
	}

	p.Status = ProductStatusActive
	p.Touch()
	return nil
}

// Deactivate deactivates the product
func (p *Product) Deactivate() error {
	if p.Status == ProductStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Product is already inactive")
	}
	if p.Status == ProductStatusDiscontinued {
		return shared.NewDomainError("CANNOT_DEACTIVATE", "Cannot deactivate a discontinued product")
	}

	p.Status = ProductStatusInactive
	p.Touch()
	return nil
}

// Discontinue marks the product as discontinued.
// A discontinued product cannot be reactivated.
func (p *Product) Discontinue() error {
	if p.Status == ProductStatusDiscontinued {
		return shared.NewDomainError("ALREADY_DISCONTINUED", "Product is already discontinued")
	}

	p.Status = ProductStatusDiscontinued
	p.Touch()
	return nil
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// IsPurchasable returns true if the product can be ordered
func (p *Product) IsPurchasable() bool {
	return p.Status == ProductStatusActive
}

// InStock returns true if at least the given quantity is available
func (p *Product) InStock(quantity int) bool {
	return p.Stock >= quantity
}

// SupportsTryOn returns true if the product has a 3D model for AR try-on
func (p *Product) SupportsTryOn() bool {
	return p.Model3DURL != ""
}

// validateSKU validates the stock keeping unit
func validateSKU(sku string) error {
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	for _, r := range sku {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_SKU", "SKU can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
