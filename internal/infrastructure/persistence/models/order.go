package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/optivista/backend/internal/domain/order"
)

// OrderModel is the persistence model for the Order aggregate root.
type OrderModel struct {
	BaseModel
	OrderNumber     string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	UserID          uuid.UUID           `gorm:"type:char(36);not null;index"`
	Items           []OrderItemModel    `gorm:"foreignKey:OrderID;references:ID"`
	TotalAmount     decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	ShippingAddress string              `gorm:"type:varchar(500);not null"`
	PaymentMethod   order.PaymentMethod `gorm:"type:varchar(30);not null"`
	Status          order.OrderStatus   `gorm:"type:varchar(20);not null;default:'pending';index"`
	ProcessingAt    *time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	CancelReason    string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		BaseEntity:      m.ToDomainBase(),
		OrderNumber:     m.OrderNumber,
		UserID:          m.UserID,
		TotalAmount:     m.TotalAmount,
		ShippingAddress: m.ShippingAddress,
		PaymentMethod:   m.PaymentMethod,
		Status:          m.Status,
		ProcessingAt:    m.ProcessingAt,
		ShippedAt:       m.ShippedAt,
		DeliveredAt:     m.DeliveredAt,
		CancelledAt:     m.CancelledAt,
		CancelReason:    m.CancelReason,
		Items:           make([]order.OrderItem, len(m.Items)),
	}
	for i, item := range m.Items {
		o.Items[i] = *item.ToDomain()
	}
	return o
}

// FromDomain populates the persistence model from a domain Order entity.
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainBase(o.BaseEntity)
	m.OrderNumber = o.OrderNumber
	m.UserID = o.UserID
	m.TotalAmount = o.TotalAmount
	m.ShippingAddress = o.ShippingAddress
	m.PaymentMethod = o.PaymentMethod
	m.Status = o.Status
	m.ProcessingAt = o.ProcessingAt
	m.ShippedAt = o.ShippedAt
	m.DeliveredAt = o.DeliveredAt
	m.CancelledAt = o.CancelledAt
	m.CancelReason = o.CancelReason
	m.Items = make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		m.Items[i] = *OrderItemModelFromDomain(&item)
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order entity.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is the persistence model for the OrderItem entity.
type OrderItemModel struct {
	ID          uuid.UUID       `gorm:"type:char(36);primary_key"`
	OrderID     uuid.UUID       `gorm:"type:char(36);not null;index"`
	ProductID   uuid.UUID       `gorm:"type:char(36);not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	ProductSKU  string          `gorm:"type:varchar(50);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Quantity    int             `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem entity.
func (m *OrderItemModel) ToDomain() *order.OrderItem {
	return &order.OrderItem{
		ID:          m.ID,
		OrderID:     m.OrderID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		ProductSKU:  m.ProductSKU,
		UnitPrice:   m.UnitPrice,
		Quantity:    m.Quantity,
		Amount:      m.Amount,
		CreatedAt:   m.CreatedAt,
	}
}

// OrderItemModelFromDomain creates a new persistence model from a domain OrderItem entity.
func OrderItemModelFromDomain(i *order.OrderItem) *OrderItemModel {
	return &OrderItemModel{
		ID:          i.ID,
		OrderID:     i.OrderID,
		ProductID:   i.ProductID,
		ProductName: i.ProductName,
		ProductSKU:  i.ProductSKU,
		UnitPrice:   i.UnitPrice,
		Quantity:    i.Quantity,
		Amount:      i.Amount,
		CreatedAt:   i.CreatedAt,
	}
}
