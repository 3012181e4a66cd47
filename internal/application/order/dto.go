package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/optivista/backend/internal/domain/order"
)

// OrderItemInput is a single line requested by the client.
// Prices are never taken from the client; they are resolved server-side.
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateOrderInput contains the input for order creation
type CreateOrderInput struct {
	UserID          uuid.UUID
	Items           []OrderItemInput
	ShippingAddress string
	PaymentMethod   order.PaymentMethod
}

// CancelOrderInput contains the input for order cancellation
type CancelOrderInput struct {
	OrderID uuid.UUID
	UserID  uuid.UUID // Acting user
	IsAdmin bool
	Reason  string
}

// UpdateStatusInput contains the input for an admin status change
type UpdateStatusInput struct {
	OrderID uuid.UUID
	Status  order.OrderStatus
}

// ListOrdersInput contains filters for listing orders
type ListOrdersInput struct {
	Status    *order.OrderStatus
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// OrderItemInfo is the client representation of an order line
type OrderItemInfo struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	ProductSKU  string
	UnitPrice   decimal.Decimal
	Quantity    int
	Amount      decimal.Decimal
}

// OrderInfo is the client representation of an order
type OrderInfo struct {
	ID              uuid.UUID
	OrderNumber     string
	UserID          uuid.UUID
	Items           []OrderItemInfo
	TotalAmount     decimal.Decimal
	ShippingAddress string
	PaymentMethod   order.PaymentMethod
	Status          order.OrderStatus
	CancelReason    string
	CreatedAt       time.Time
	ProcessingAt    *time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
}

// NewOrderInfo maps a domain order to its client representation
func NewOrderInfo(o *order.Order) OrderInfo {
	items := make([]OrderItemInfo, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemInfo{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			ProductSKU:  item.ProductSKU,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Amount:      item.Amount,
		})
	}
	return OrderInfo{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		UserID:          o.UserID,
		Items:           items,
		TotalAmount:     o.TotalAmount,
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   o.PaymentMethod,
		Status:          o.Status,
		CancelReason:    o.CancelReason,
		CreatedAt:       o.CreatedAt,
		ProcessingAt:    o.ProcessingAt,
		ShippedAt:       o.ShippedAt,
		DeliveredAt:     o.DeliveredAt,
		CancelledAt:     o.CancelledAt,
	}
}

// OrderListResult contains a page of orders
type OrderListResult struct {
	Orders   []OrderInfo
	Total    int64
	Page     int
	PageSize int
}
