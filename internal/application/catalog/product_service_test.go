package catalog

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
	"github.com/optivista/backend/internal/domain/shared"
	"github.com/optivista/backend/internal/infrastructure/cache"
)

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

func newTestProduct(t *testing.T) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct("AVT-100", "Aviator Classic", decimal.NewFromFloat(99.99), 10)
	require.NoError(t, err)
	return p
}

func TestProductService_CreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("creates product with frame attributes", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("ExistsBySKU", ctx, "AVT-100").Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		svc := NewProductService(repo, nil, zap.NewNop())
		info, err := svc.CreateProduct(ctx, CreateProductInput{
			SKU:   "AVT-100",
			Name:  "Aviator Classic",
			Price: decimal.NewFromFloat(99.99),
			Stock: 10,
			Frame: catalog.FrameAttributes{Category: "sunglasses", Style: "aviator"},
		})
		require.NoError(t, err)
		assert.Equal(t, "AVT-100", info.SKU)
		assert.Equal(t, "aviator", info.Frame.Style)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate SKU", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("ExistsBySKU", ctx, "AVT-100").Return(true, nil)

		svc := NewProductService(repo, nil, zap.NewNop())
		_, err := svc.CreateProduct(ctx, CreateProductInput{
			SKU:   "AVT-100",
			Name:  "Aviator Classic",
			Price: decimal.NewFromFloat(99.99),
			Stock: 10,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SKU_TAKEN", domainErr.Code)
	})
}

func TestProductService_GetProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("caches on first read and serves from cache after", func(t *testing.T) {
		product := newTestProduct(t)
		repo := new(MockProductRepository)
		repo.On("FindByID", ctx, product.ID).Return(product, nil).Once()

		c := cache.NewMemoryProductCache(time.Minute)
		svc := NewProductService(repo, c, zap.NewNop())

		first, err := svc.GetProduct(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, product.SKU, first.SKU)

		// Second read must not hit the repository
		second, err := svc.GetProduct(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, product.SKU, second.SKU)
		repo.AssertExpectations(t)
	})

	t.Run("missing product returns not found", func(t *testing.T) {
		repo := new(MockProductRepository)
		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		svc := NewProductService(repo, nil, zap.NewNop())
		_, err := svc.GetProduct(ctx, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductService_UpdateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("updates price and invalidates cache", func(t *testing.T) {
		product := newTestProduct(t)
		repo := new(MockProductRepository)
		repo.On("FindByID", ctx, product.ID).Return(product, nil)
		repo.On("Update", ctx, product).Return(nil)

		c := cache.NewMemoryProductCache(time.Minute)
		require.NoError(t, c.Set(ctx, product, 0))

		svc := NewProductService(repo, c, zap.NewNop())
		newPrice := decimal.NewFromFloat(129.99)
		info, err := svc.UpdateProduct(ctx, UpdateProductInput{
			ProductID: product.ID,
			Price:     &newPrice,
		})
		require.NoError(t, err)
		assert.True(t, info.Price.Equal(newPrice))

		cached, err := c.Get(ctx, product.ID)
		require.NoError(t, err)
		assert.Nil(t, cached)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		product := newTestProduct(t)
		repo := new(MockProductRepository)
		repo.On("FindByID", ctx, product.ID).Return(product, nil)

		svc := NewProductService(repo, nil, zap.NewNop())
		bad := decimal.NewFromInt(-1)
		_, err := svc.UpdateProduct(ctx, UpdateProductInput{
			ProductID: product.ID,
			Price:     &bad,
		})
		require.Error(t, err)
	})
}

func TestProductService_Lifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("discontinued product cannot be reactivated", func(t *testing.T) {
		product := newTestProduct(t)
		repo := new(MockProductRepository)
		repo.On("FindByID", ctx, product.ID).Return(product, nil)
		repo.On("Update", ctx, product).Return(nil)

		svc := NewProductService(repo, nil, zap.NewNop())
		require.NoError(t, svc.DiscontinueProduct(ctx, product.ID))

		err := svc.ActivateProduct(ctx, product.ID)
		require.Error(t, err)
	})
}

func TestProductService_DeleteProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects deleting an active product", func(t *testing.T) {
		product := newTestProduct(t)
		repo := new(MockProductRepository)
		repo.On("FindByID", ctx, product.ID).Return(product, nil)

		svc := NewProductService(repo, nil, zap.NewNop())
		err := svc.DeleteProduct(ctx, product.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CANNOT_DELETE_ACTIVE", domainErr.Code)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deletes a deactivated product", func(t *testing.T) {
		product := newTestProduct(t)
		require.NoError(t, product.Deactivate())

		repo := new(MockProductRepository)
		repo.On("FindByID", ctx, product.ID).Return(product, nil)
		repo.On("Delete", ctx, product.ID).Return(nil)

		svc := NewProductService(repo, nil, zap.NewNop())
		require.NoError(t, svc.DeleteProduct(ctx, product.ID))
		repo.AssertExpectations(t)
	})

	t.Run("surfaces order references as a conflict", func(t *testing.T) {
		product := newTestProduct(t)
		require.NoError(t, product.Deactivate())

		repo := new(MockProductRepository)
		repo.On("FindByID", ctx, product.ID).Return(product, nil)
		repo.On("Delete", ctx, product.ID).
			Return(shared.NewDomainError("PRODUCT_IN_USE", "Product is referenced by existing orders"))

		svc := NewProductService(repo, nil, zap.NewNop())
		err := svc.DeleteProduct(ctx, product.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PRODUCT_IN_USE", domainErr.Code)
	})
}

func TestProductService_AdjustStock(t *testing.T) {
	ctx := context.Background()

	product := newTestProduct(t)
	repo := new(MockProductRepository)
	repo.On("FindByID", ctx, product.ID).Return(product, nil)
	repo.On("Update", ctx, product).Return(nil)

	svc := NewProductService(repo, nil, zap.NewNop())
	info, err := svc.AdjustStock(ctx, AdjustStockInput{ProductID: product.ID, Stock: 42})
	require.NoError(t, err)
	assert.Equal(t, 42, info.Stock)

	_, err = svc.AdjustStock(ctx, AdjustStockInput{ProductID: product.ID, Stock: -1})
	require.Error(t, err)
}
