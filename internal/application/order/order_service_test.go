package order

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/optivista/backend/internal/domain/catalog"
	"github.com/optivista/backend/internal/domain/order"
	"github.com/optivista/backend/internal/domain/shared"
	"github.com/optivista/backend/internal/infrastructure/cache"
)

// MockOrderRepository is a mock implementation of order.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateWithStockDecrement(ctx context.Context, o *order.Order, adjustments []order.StockAdjustment) error {
	args := m.Called(ctx, o, adjustments)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateWithStockRestore(ctx context.Context, o *order.Order, adjustments []order.StockAdjustment) error {
	args := m.Called(ctx, o, adjustments)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUserID(ctx context.Context, userID uuid.UUID, filter order.OrderFilter) ([]*order.Order, int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]*order.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter order.OrderFilter) ([]*order.Order, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*order.Order), args.Get(1).(int64), args.Error(2)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter catalog.ProductFilter) ([]*catalog.Product, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *MockProductRepository) IncrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func newTestProduct(t *testing.T, sku string, price float64, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(sku, "Frame "+sku, decimal.NewFromFloat(price), stock)
	require.NoError(t, err)
	return p
}

func TestOrderService_CreateOrder(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("prices come from the catalog, not the client", func(t *testing.T) {
		product := newTestProduct(t, "AVT-100", 99.99, 10)

		productRepo := new(MockProductRepository)
		productRepo.On("FindByIDs", ctx, []uuid.UUID{product.ID}).Return([]*catalog.Product{product}, nil)

		orderRepo := new(MockOrderRepository)
		orderRepo.On("CreateWithStockDecrement", ctx, mock.AnythingOfType("*order.Order"),
			[]order.StockAdjustment{{ProductID: product.ID, Quantity: 2}}).Return(nil)

		svc := NewOrderService(orderRepo, productRepo, nil, zap.NewNop())
		info, err := svc.CreateOrder(ctx, CreateOrderInput{
			UserID:          userID,
			Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 2}},
			ShippingAddress: "1 Harbor View Rd",
			PaymentMethod:   order.PaymentMethodCard,
		})
		require.NoError(t, err)
		assert.True(t, info.TotalAmount.Equal(decimal.NewFromFloat(199.98)))
		assert.Equal(t, order.OrderStatusPending, info.Status)
		require.Len(t, info.Items, 1)
		assert.True(t, info.Items[0].UnitPrice.Equal(decimal.NewFromFloat(99.99)))
		orderRepo.AssertExpectations(t)
	})

	t.Run("rejects empty order", func(t *testing.T) {
		svc := NewOrderService(new(MockOrderRepository), new(MockProductRepository), nil, zap.NewNop())
		_, err := svc.CreateOrder(ctx, CreateOrderInput{
			UserID:          userID,
			ShippingAddress: "1 Harbor View Rd",
			PaymentMethod:   order.PaymentMethodCard,
		})
		require.Error(t, err)
	})

	t.Run("rejects unknown product", func(t *testing.T) {
		missing := uuid.New()
		productRepo := new(MockProductRepository)
		productRepo.On("FindByIDs", ctx, []uuid.UUID{missing}).Return([]*catalog.Product{}, nil)

		svc := NewOrderService(new(MockOrderRepository), productRepo, nil, zap.NewNop())
		_, err := svc.CreateOrder(ctx, CreateOrderInput{
			UserID:          userID,
			Items:           []OrderItemInput{{ProductID: missing, Quantity: 1}},
			ShippingAddress: "1 Harbor View Rd",
			PaymentMethod:   order.PaymentMethodCard,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PRODUCT_NOT_FOUND", domainErr.Code)
	})

	t.Run("rejects inactive product", func(t *testing.T) {
		product := newTestProduct(t, "AVT-100", 99.99, 10)
		require.NoError(t, product.Deactivate())

		productRepo := new(MockProductRepository)
		productRepo.On("FindByIDs", ctx, []uuid.UUID{product.ID}).Return([]*catalog.Product{product}, nil)

		svc := NewOrderService(new(MockOrderRepository), productRepo, nil, zap.NewNop())
		_, err := svc.CreateOrder(ctx, CreateOrderInput{
			UserID:          userID,
			Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
			ShippingAddress: "1 Harbor View Rd",
			PaymentMethod:   order.PaymentMethodCard,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PRODUCT_UNAVAILABLE", domainErr.Code)
	})

	t.Run("rejects oversell before hitting the repository", func(t *testing.T) {
		product := newTestProduct(t, "AVT-100", 99.99, 1)

		productRepo := new(MockProductRepository)
		productRepo.On("FindByIDs", ctx, []uuid.UUID{product.ID}).Return([]*catalog.Product{product}, nil)

		svc := NewOrderService(new(MockOrderRepository), productRepo, nil, zap.NewNop())
		_, err := svc.CreateOrder(ctx, CreateOrderInput{
			UserID:          userID,
			Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 5}},
			ShippingAddress: "1 Harbor View Rd",
			PaymentMethod:   order.PaymentMethodCard,
		})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	})

	t.Run("propagates transactional stock conflict", func(t *testing.T) {
		product := newTestProduct(t, "AVT-100", 99.99, 5)

		productRepo := new(MockProductRepository)
		productRepo.On("FindByIDs", ctx, []uuid.UUID{product.ID}).Return([]*catalog.Product{product}, nil)

		orderRepo := new(MockOrderRepository)
		orderRepo.On("CreateWithStockDecrement", ctx, mock.Anything, mock.Anything).Return(shared.ErrInsufficientStock)

		svc := NewOrderService(orderRepo, productRepo, nil, zap.NewNop())
		_, err := svc.CreateOrder(ctx, CreateOrderInput{
			UserID:          userID,
			Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 2}},
			ShippingAddress: "1 Harbor View Rd",
			PaymentMethod:   order.PaymentMethodCard,
		})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	})
}

func newPlacedOrder(t *testing.T, userID uuid.UUID) *order.Order {
	t.Helper()
	product := newTestProduct(t, "AVT-100", 99.99, 10)
	o, err := order.NewOrder(userID, "1 Harbor View Rd", order.PaymentMethodCard)
	require.NoError(t, err)
	_, err = o.AddItem(product.ID, product.Name, product.SKU, product.Price, 2)
	require.NoError(t, err)
	return o
}

func TestOrderService_GetOrder(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	o := newPlacedOrder(t, ownerID)

	repo := new(MockOrderRepository)
	repo.On("FindByID", ctx, o.ID).Return(o, nil)

	svc := NewOrderService(repo, new(MockProductRepository), nil, zap.NewNop())

	t.Run("owner can read", func(t *testing.T) {
		info, err := svc.GetOrder(ctx, o.ID, ownerID, false)
		require.NoError(t, err)
		assert.Equal(t, o.OrderNumber, info.OrderNumber)
	})

	t.Run("stranger gets not found", func(t *testing.T) {
		_, err := svc.GetOrder(ctx, o.ID, uuid.New(), false)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("admin can read any order", func(t *testing.T) {
		info, err := svc.GetOrder(ctx, o.ID, uuid.New(), true)
		require.NoError(t, err)
		assert.Equal(t, o.OrderNumber, info.OrderNumber)
	})
}

func TestOrderService_CancelOrder(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("owner cancels pending order and stock is restored", func(t *testing.T) {
		o := newPlacedOrder(t, ownerID)
		productID := o.Items[0].ProductID

		repo := new(MockOrderRepository)
		repo.On("FindByID", ctx, o.ID).Return(o, nil)
		repo.On("UpdateWithStockRestore", ctx, o,
			[]order.StockAdjustment{{ProductID: productID, Quantity: 2}}).Return(nil)

		svc := NewOrderService(repo, new(MockProductRepository), nil, zap.NewNop())
		info, err := svc.CancelOrder(ctx, CancelOrderInput{
			OrderID: o.ID,
			UserID:  ownerID,
			Reason:  "changed my mind",
		})
		require.NoError(t, err)
		assert.Equal(t, order.OrderStatusCancelled, info.Status)
		assert.Equal(t, "changed my mind", info.CancelReason)
		repo.AssertExpectations(t)
	})

	t.Run("owner cannot cancel processing order", func(t *testing.T) {
		o := newPlacedOrder(t, ownerID)
		require.NoError(t, o.TransitionTo(order.OrderStatusProcessing))

		repo := new(MockOrderRepository)
		repo.On("FindByID", ctx, o.ID).Return(o, nil)

		svc := NewOrderService(repo, new(MockProductRepository), nil, zap.NewNop())
		_, err := svc.CancelOrder(ctx, CancelOrderInput{OrderID: o.ID, UserID: ownerID})
		require.Error(t, err)
	})

	t.Run("admin can cancel processing order", func(t *testing.T) {
		o := newPlacedOrder(t, ownerID)
		require.NoError(t, o.TransitionTo(order.OrderStatusProcessing))

		repo := new(MockOrderRepository)
		repo.On("FindByID", ctx, o.ID).Return(o, nil)
		repo.On("UpdateWithStockRestore", ctx, o, mock.Anything).Return(nil)

		svc := NewOrderService(repo, new(MockProductRepository), nil, zap.NewNop())
		info, err := svc.CancelOrder(ctx, CancelOrderInput{
			OrderID: o.ID,
			UserID:  uuid.New(),
			IsAdmin: true,
			Reason:  "fraud check",
		})
		require.NoError(t, err)
		assert.Equal(t, order.OrderStatusCancelled, info.Status)
	})

	t.Run("shipped order cannot be cancelled", func(t *testing.T) {
		o := newPlacedOrder(t, ownerID)
		require.NoError(t, o.TransitionTo(order.OrderStatusProcessing))
		require.NoError(t, o.TransitionTo(order.OrderStatusShipped))

		repo := new(MockOrderRepository)
		repo.On("FindByID", ctx, o.ID).Return(o, nil)

		svc := NewOrderService(repo, new(MockProductRepository), nil, zap.NewNop())
		_, err := svc.CancelOrder(ctx, CancelOrderInput{OrderID: o.ID, IsAdmin: true})
		require.Error(t, err)
	})
}

func TestOrderService_CacheInvalidation(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("placing an order drops cached products", func(t *testing.T) {
		product := newTestProduct(t, "AVT-100", 99.99, 10)
		c := cache.NewMemoryProductCache(time.Minute)
		require.NoError(t, c.Set(ctx, product, time.Minute))

		productRepo := new(MockProductRepository)
		productRepo.On("FindByIDs", ctx, []uuid.UUID{product.ID}).Return([]*catalog.Product{product}, nil)

		orderRepo := new(MockOrderRepository)
		orderRepo.On("CreateWithStockDecrement", ctx, mock.AnythingOfType("*order.Order"), mock.Anything).Return(nil)

		svc := NewOrderService(orderRepo, productRepo, c, zap.NewNop())
		_, err := svc.CreateOrder(ctx, CreateOrderInput{
			UserID:          userID,
			Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 2}},
			ShippingAddress: "1 Harbor View Rd",
			PaymentMethod:   order.PaymentMethodCard,
		})
		require.NoError(t, err)

		cached, err := c.Get(ctx, product.ID)
		require.NoError(t, err)
		assert.Nil(t, cached)
	})

	t.Run("cancelling an order drops cached products", func(t *testing.T) {
		o := newPlacedOrder(t, userID)
		productID := o.Items[0].ProductID

		product := newTestProduct(t, "AVT-100", 99.99, 10)
		product.ID = productID
		c := cache.NewMemoryProductCache(time.Minute)
		require.NoError(t, c.Set(ctx, product, time.Minute))

		repo := new(MockOrderRepository)
		repo.On("FindByID", ctx, o.ID).Return(o, nil)
		repo.On("UpdateWithStockRestore", ctx, o, mock.Anything).Return(nil)

		svc := NewOrderService(repo, new(MockProductRepository), c, zap.NewNop())
		_, err := svc.CancelOrder(ctx, CancelOrderInput{OrderID: o.ID, UserID: userID, Reason: "changed my mind"})
		require.NoError(t, err)

		cached, err := c.Get(ctx, productID)
		require.NoError(t, err)
		assert.Nil(t, cached)
	})
}

func TestOrderService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("advances along the lifecycle", func(t *testing.T) {
		o := newPlacedOrder(t, uuid.New())

		repo := new(MockOrderRepository)
		repo.On("FindByID", ctx, o.ID).Return(o, nil)
		repo.On("Update", ctx, o).Return(nil)

		svc := NewOrderService(repo, new(MockProductRepository), nil, zap.NewNop())
		info, err := svc.UpdateStatus(ctx, UpdateStatusInput{OrderID: o.ID, Status: order.OrderStatusProcessing})
		require.NoError(t, err)
		assert.Equal(t, order.OrderStatusProcessing, info.Status)
		assert.NotNil(t, info.ProcessingAt)
	})

	t.Run("refuses cancellation via status update", func(t *testing.T) {
		svc := NewOrderService(new(MockOrderRepository), new(MockProductRepository), nil, zap.NewNop())
		_, err := svc.UpdateStatus(ctx, UpdateStatusInput{OrderID: uuid.New(), Status: order.OrderStatusCancelled})
		require.Error(t, err)
	})

	t.Run("rejects invalid transition", func(t *testing.T) {
		o := newPlacedOrder(t, uuid.New())

		repo := new(MockOrderRepository)
		repo.On("FindByID", ctx, o.ID).Return(o, nil)

		svc := NewOrderService(repo, new(MockProductRepository), nil, zap.NewNop())
		_, err := svc.UpdateStatus(ctx, UpdateStatusInput{OrderID: o.ID, Status: order.OrderStatusDelivered})
		require.Error(t, err)
	})
}
