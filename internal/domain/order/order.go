package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/optivista/backend/internal/domain/shared"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusProcessing || target == OrderStatusCancelled
	case OrderStatusProcessing:
		return target == OrderStatusShipped || target == OrderStatusCancelled
	case OrderStatusShipped:
		return target == OrderStatusDelivered
	case OrderStatusDelivered, OrderStatusCancelled:
		return false // Terminal states
	}
	return false
}

// PaymentMethod represents how the order will be paid
type PaymentMethod string

const (
	PaymentMethodCard           PaymentMethod = "card"
	PaymentMethodCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentMethodBalance        PaymentMethod = "balance"
)

// IsValid checks if the payment method is known
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodCashOnDelivery, PaymentMethodBalance:
		return true
	}
	return false
}

// OrderItem represents a line item in an order.
// ProductName and UnitPrice are snapshots taken at order time.
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	ProductSKU  string
	UnitPrice   decimal.Decimal
	Quantity    int
	Amount      decimal.Decimal // UnitPrice * Quantity
	CreatedAt   time.Time
}

// NewOrderItem creates a new order item with a price snapshot
func NewOrderItem(orderID, productID uuid.UUID, productName, productSKU string, unitPrice decimal.Decimal, quantity int) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &OrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		ProductSKU:  productSKU,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
		Amount:      unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		CreatedAt:   time.Now(),
	}, nil
}

// Order is the aggregate root for the order lifecycle
type Order struct {
	shared.BaseEntity
	OrderNumber     string
	UserID          uuid.UUID
	Items           []OrderItem
	TotalAmount     decimal.Decimal // Sum of all item amounts
	ShippingAddress string
	PaymentMethod   PaymentMethod
	Status          OrderStatus
	ProcessingAt    *time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	CancelReason    string
}

// NewOrder creates a new pending order
func NewOrder(userID uuid.UUID, shippingAddress string, paymentMethod PaymentMethod) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if shippingAddress == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Shipping address cannot be empty")
	}
	if len(shippingAddress) > 500 {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Shipping address cannot exceed 500 characters")
	}
	if !paymentMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}

	base := shared.NewBaseEntity()
	return &Order{
		BaseEntity:      base,
		OrderNumber:     generateOrderNumber(base.ID, base.CreatedAt),
		UserID:          userID,
		Items:           make([]OrderItem, 0),
		TotalAmount:     decimal.Zero,
		ShippingAddress: shippingAddress,
		PaymentMethod:   paymentMethod,
		Status:          OrderStatusPending,
	}, nil
}

// AddItem adds a line item to a pending order
func (o *Order) AddItem(productID uuid.UUID, productName, productSKU string, unitPrice decimal.Decimal, quantity int) (*OrderItem, error) {
	if o.Status != OrderStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-pending order")
	}

	for _, item := range o.Items {
		if item.ProductID == productID {
			return nil, shared.NewDomainError("DUPLICATE_PRODUCT", "Product already exists in order")
		}
	}

	item, err := NewOrderItem(o.ID, productID, productName, productSKU, unitPrice, quantity)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotal()
	o.Touch()

	return item, nil
}

// HasItems reports whether the order contains at least one item
func (o *Order) HasItems() bool {
	return len(o.Items) > 0
}

// TransitionTo moves the order to the target status, recording the timestamp
func (o *Order) TransitionTo(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}

	now := time.Now()
	switch target {
	case OrderStatusProcessing:
		o.ProcessingAt = &now
	case OrderStatusShipped:
		o.ShippedAt = &now
	case OrderStatusDelivered:
		o.DeliveredAt = &now
	case OrderStatusCancelled:
		o.CancelledAt = &now
	}

	o.Status = target
	o.Touch()
	return nil
}

// Cancel cancels the order with a reason.
// Only pending and processing orders can be cancelled.
func (o *Order) Cancel(reason string) error {
	if err := o.TransitionTo(OrderStatusCancelled); err != nil {
		return err
	}
	o.CancelReason = reason
	return nil
}

// IsCancellable reports whether the order is in a cancellable state
func (o *Order) IsCancellable() bool {
	return o.Status.CanTransitionTo(OrderStatusCancelled)
}

// IsTerminal reports whether the order is in a terminal state
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusDelivered || o.Status == OrderStatusCancelled
}

// recalculateTotal recomputes the order total from its items
func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Amount)
	}
	o.TotalAmount = total
}

// generateOrderNumber derives a human-readable order number
func generateOrderNumber(id uuid.UUID, createdAt time.Time) string {
	return fmt.Sprintf("ORD-%s-%s", createdAt.Format("20060102"), id.String()[:8])
}
