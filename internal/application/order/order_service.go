package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/optivista/backend/internal/domain/catalog"
	"github.com/optivista/backend/internal/domain/order"
	"github.com/optivista/backend/internal/domain/shared"
)

// OrderService handles order placement and lifecycle operations
type OrderService struct {
	orderRepo   order.OrderRepository
	productRepo catalog.ProductRepository
	cache       catalog.ProductCache
	logger      *zap.Logger
}

// NewOrderService creates a new order service.
// The cache may be nil; when present, cached product entries are dropped
// after any commit that moves stock.
func NewOrderService(
	orderRepo order.OrderRepository,
	productRepo catalog.ProductRepository,
	cache catalog.ProductCache,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cache:       cache,
		logger:      logger,
	}
}

// CreateOrder places a new order. Prices are resolved from the catalog, and
// stock for every line is decremented in the same transaction that stores
// the order. Any failure leaves both orders and stock untouched.
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderInfo, error) {
	if len(input.Items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	}

	o, err := order.NewOrder(input.UserID, input.ShippingAddress, input.PaymentMethod)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(input.Items))
	for _, item := range input.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("Failed to load products for order", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create order")
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	adjustments := make([]order.StockAdjustment, 0, len(input.Items))
	for _, item := range input.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "One or more products do not exist")
		}
		if !product.IsPurchasable() {
			return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE", "Product "+product.SKU+" is not available for purchase")
		}
		if !product.InStock(item.Quantity) {
			return nil, shared.ErrInsufficientStock
		}

		if _, err := o.AddItem(product.ID, product.Name, product.SKU, product.Price, item.Quantity); err != nil {
			return nil, err
		}
		adjustments = append(adjustments, order.StockAdjustment{
			ProductID: product.ID,
			Quantity:  item.Quantity,
		})
	}

	if err := s.orderRepo.CreateWithStockDecrement(ctx, o, adjustments); err != nil {
		if errors.Is(err, shared.ErrInsufficientStock) {
			return nil, shared.ErrInsufficientStock
		}
		s.logger.Error("Failed to create order", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create order")
	}

	s.invalidateProducts(ctx, adjustments)

	s.logger.Info("Order created",
		zap.String("order_id", o.ID.String()),
		zap.String("order_number", o.OrderNumber),
		zap.String("user_id", o.UserID.String()),
		zap.String("total", o.TotalAmount.String()))

	info := NewOrderInfo(o)
	return &info, nil
}

// GetOrder retrieves an order. Customers can only see their own orders.
func (s *OrderService) GetOrder(ctx context.Context, orderID, actingUserID uuid.UUID, isAdmin bool) (*OrderInfo, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if !isAdmin && o.UserID != actingUserID {
		// Hide the existence of other users' orders
		return nil, shared.ErrNotFound
	}

	info := NewOrderInfo(o)
	return &info, nil
}

// ListUserOrders returns a page of the given user's orders
func (s *OrderService) ListUserOrders(ctx context.Context, userID uuid.UUID, input ListOrdersInput) (*OrderListResult, error) {
	filter := s.buildFilter(input)

	orders, total, err := s.orderRepo.FindByUserID(ctx, userID, filter)
	if err != nil {
		s.logger.Error("Failed to list user orders", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list orders")
	}

	return s.toListResult(orders, total, filter), nil
}

// ListAllOrders returns a page of all orders (admin only)
func (s *OrderService) ListAllOrders(ctx context.Context, input ListOrdersInput) (*OrderListResult, error) {
	filter := s.buildFilter(input)

	orders, total, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list orders")
	}

	return s.toListResult(orders, total, filter), nil
}

// UpdateStatus moves an order along its lifecycle (admin only).
// Cancellation must go through CancelOrder so stock is restored.
func (s *OrderService) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*OrderInfo, error) {
	if input.Status == order.OrderStatusCancelled {
		return nil, shared.NewDomainError("INVALID_STATUS", "Use the cancel operation to cancel an order")
	}

	o, err := s.orderRepo.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if err := o.TransitionTo(input.Status); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Update(ctx, o); err != nil {
		s.logger.Error("Failed to update order status", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update order")
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", o.ID.String()),
		zap.String("status", o.Status.String()))

	info := NewOrderInfo(o)
	return &info, nil
}

// CancelOrder cancels an order and restores the reserved stock in the same
// transaction. Customers may cancel their own pending orders; admins may
// also cancel processing orders.
func (s *OrderService) CancelOrder(ctx context.Context, input CancelOrderInput) (*OrderInfo, error) {
	o, err := s.orderRepo.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if !input.IsAdmin {
		if o.UserID != input.UserID {
			return nil, shared.ErrNotFound
		}
		if o.Status != order.OrderStatusPending {
			return nil, shared.NewDomainError("INVALID_STATE", "Only pending orders can be cancelled")
		}
	}

	if err := o.Cancel(input.Reason); err != nil {
		return nil, err
	}

	adjustments := make([]order.StockAdjustment, 0, len(o.Items))
	for _, item := range o.Items {
		adjustments = append(adjustments, order.StockAdjustment{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	if err := s.orderRepo.UpdateWithStockRestore(ctx, o, adjustments); err != nil {
		s.logger.Error("Failed to cancel order", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to cancel order")
	}

	s.invalidateProducts(ctx, adjustments)

	s.logger.Info("Order cancelled",
		zap.String("order_id", o.ID.String()),
		zap.String("reason", input.Reason))

	info := NewOrderInfo(o)
	return &info, nil
}

// invalidateProducts drops cached entries for products whose stock changed,
// so catalog reads don't serve stale counts until the TTL expires.
func (s *OrderService) invalidateProducts(ctx context.Context, adjustments []order.StockAdjustment) {
	if s.cache == nil {
		return
	}
	for _, adj := range adjustments {
		if err := s.cache.Delete(ctx, adj.ProductID); err != nil {
			s.logger.Warn("Product cache invalidation failed",
				zap.String("product_id", adj.ProductID.String()),
				zap.Error(err))
		}
	}
}

func (s *OrderService) buildFilter(input ListOrdersInput) order.OrderFilter {
	filter := order.NewOrderFilter().WithPagination(input.Page, input.PageSize)
	if input.Status != nil {
		filter = filter.WithStatus(*input.Status)
	}
	if input.SortBy != "" {
		filter.SortBy = input.SortBy
	}
	if input.SortOrder != "" {
		filter.SortOrder = input.SortOrder
	}
	return filter
}

func (s *OrderService) toListResult(orders []*order.Order, total int64, filter order.OrderFilter) *OrderListResult {
	infos := make([]OrderInfo, 0, len(orders))
	for _, o := range orders {
		infos = append(infos, NewOrderInfo(o))
	}
	return &OrderListResult{
		Orders:   infos,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
}
