package models

import (
	"github.com/shopspring/decimal"

	"github.com/optivista/backend/internal/domain/catalog"
)

// ProductModel is the persistence model for the Product aggregate root.
type ProductModel struct {
	BaseModel
	SKU         string                `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string                `gorm:"type:varchar(200);not null"`
	Description string                `gorm:"type:text"`
	Price       decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Stock       int                   `gorm:"not null;default:0"`
	Category    string                `gorm:"type:varchar(100);index"`
	Style       string                `gorm:"type:varchar(100);index"`
	FrameColor  string                `gorm:"type:varchar(100)"`
	FrameSize   string                `gorm:"type:varchar(100)"`
	ImageURL    string                `gorm:"type:varchar(500)"`
	Model3DURL  string                `gorm:"column:model_3d_url;type:varchar(500)"`
	Status      catalog.ProductStatus `gorm:"type:varchar(20);not null;default:'active';index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity:  m.ToDomainBase(),
		SKU:         m.SKU,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Stock:       m.Stock,
		Frame: catalog.FrameAttributes{
			Category:   m.Category,
			Style:      m.Style,
			FrameColor: m.FrameColor,
			FrameSize:  m.FrameSize,
		},
		ImageURL:   m.ImageURL,
		Model3DURL: m.Model3DURL,
		Status:     m.Status,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBase(p.BaseEntity)
	m.SKU = p.SKU
	m.Name = p.Name
	m.Description = p.Description
	m.Price = p.Price
	m.Stock = p.Stock
	m.Category = p.Frame.Category
	m.Style = p.Frame.Style
	m.FrameColor = p.Frame.FrameColor
	m.FrameSize = p.Frame.FrameSize
	m.ImageURL = p.ImageURL
	m.Model3DURL = p.Model3DURL
	m.Status = p.Status
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
