package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	orderapp "github.com/optivista/backend/internal/application/order"
	"github.com/optivista/backend/internal/domain/order"
	"github.com/optivista/backend/internal/interfaces/http/dto"
	"github.com/optivista/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles order HTTP requests
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("", h.CreateOrder)
		orders.GET("", h.ListMyOrders)
		orders.GET("/:id", h.GetOrder)
		orders.POST("/:id/cancel", h.CancelOrder)
	}

	admin := rg.Group("/admin/orders", middleware.RequireAdmin())
	{
		admin.GET("", h.ListAllOrders)
		admin.PUT("/:id/status", h.UpdateStatus)
	}
}

// OrderItemRequest is a single requested order line
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gte=1"`
}

// CreateOrderRequest is the request body for order creation
type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	ShippingAddress string             `json:"shipping_address" binding:"required,max=512"`
	PaymentMethod   string             `json:"payment_method" binding:"required,oneof=card cash_on_delivery balance"`
}

// UpdateOrderStatusRequest is the request body for an admin status change
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending processing shipped delivered"`
}

// CancelOrderRequest is the request body for order cancellation
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=512"`
}

// OrderItemResponse is a single order line in responses
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductSKU  string          `json:"product_sku"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
}

// OrderResponse is the order representation in responses
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	OrderNumber     string              `json:"order_number"`
	UserID          uuid.UUID           `json:"user_id"`
	Items           []OrderItemResponse `json:"items"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	ShippingAddress string              `json:"shipping_address"`
	PaymentMethod   string              `json:"payment_method"`
	Status          string              `json:"status"`
	CancelReason    string              `json:"cancel_reason,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	ProcessingAt    *time.Time          `json:"processing_at,omitempty"`
	ShippedAt       *time.Time          `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time          `json:"delivered_at,omitempty"`
	CancelledAt     *time.Time          `json:"cancelled_at,omitempty"`
}

func toOrderResponse(info orderapp.OrderInfo) OrderResponse {
	items := make([]OrderItemResponse, len(info.Items))
	for i, item := range info.Items {
		items[i] = OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			ProductSKU:  item.ProductSKU,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Amount:      item.Amount,
		}
	}
	return OrderResponse{
		ID:              info.ID,
		OrderNumber:     info.OrderNumber,
		UserID:          info.UserID,
		Items:           items,
		TotalAmount:     info.TotalAmount,
		ShippingAddress: info.ShippingAddress,
		PaymentMethod:   string(info.PaymentMethod),
		Status:          string(info.Status),
		CancelReason:    info.CancelReason,
		CreatedAt:       info.CreatedAt,
		ProcessingAt:    info.ProcessingAt,
		ShippedAt:       info.ShippedAt,
		DeliveredAt:     info.DeliveredAt,
		CancelledAt:     info.CancelledAt,
	}
}

// CreateOrder places a new order for the authenticated user
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	items := make([]orderapp.OrderItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = orderapp.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	created, err := h.orderService.CreateOrder(c.Request.Context(), orderapp.CreateOrderInput{
		UserID:          userID,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   order.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toOrderResponse(*created))
}

// GetOrder returns a single order. Customers only see their own.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	result, err := h.orderService.GetOrder(c.Request.Context(), orderID, userID, middleware.IsAdmin(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toOrderResponse(*result))
}

// ListMyOrders returns the authenticated user's orders
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	input, ok := h.bindListInput(c)
	if !ok {
		return
	}

	result, err := h.orderService.ListUserOrders(c.Request.Context(), userID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.respondList(c, result)
}

// ListAllOrders returns all orders for administrators
func (h *OrderHandler) ListAllOrders(c *gin.Context) {
	input, ok := h.bindListInput(c)
	if !ok {
		return
	}

	result, err := h.orderService.ListAllOrders(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.respondList(c, result)
}

// UpdateStatus moves an order along its fulfillment lifecycle
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.orderService.UpdateStatus(c.Request.Context(), orderapp.UpdateStatusInput{
		OrderID: orderID,
		Status:  order.OrderStatus(req.Status),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toOrderResponse(*result))
}

// CancelOrder cancels an order and restores reserved stock
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req CancelOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.HandleBindingError(c, err)
			return
		}
	}

	result, err := h.orderService.CancelOrder(c.Request.Context(), orderapp.CancelOrderInput{
		OrderID: orderID,
		UserID:  userID,
		IsAdmin: middleware.IsAdmin(c),
		Reason:  req.Reason,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toOrderResponse(*result))
}

func (h *OrderHandler) bindListInput(c *gin.Context) (orderapp.ListOrdersInput, bool) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return orderapp.ListOrdersInput{}, false
	}
	req.Normalize()

	input := orderapp.ListOrdersInput{
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}
	if status := c.Query("status"); status != "" {
		s := order.OrderStatus(status)
		input.Status = &s
	}
	return input, true
}

func (h *OrderHandler) respondList(c *gin.Context, result *orderapp.OrderListResult) {
	orders := make([]OrderResponse, len(result.Orders))
	for i, o := range result.Orders {
		orders[i] = toOrderResponse(o)
	}
	h.SuccessWithMeta(c, orders, result.Total, result.Page, result.PageSize)
}
