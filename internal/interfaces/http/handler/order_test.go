package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	orderapp "github.com/optivista/backend/internal/application/order"
	"github.com/optivista/backend/internal/domain/catalog"
	"github.com/optivista/backend/internal/domain/identity"
	"github.com/optivista/backend/internal/domain/order"
	"github.com/optivista/backend/internal/interfaces/http/dto"
)

// MockOrderRepository implements order.OrderRepository for testing
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

func setupOrderHandler(orderRepo *MockOrderRepository, productRepo *MockProductRepository) *OrderHandler {
	orderService := orderapp.NewOrderService(orderRepo, productRepo, nil, zap.NewNop())
	return NewOrderHandler(orderService)
}

func createTestOrder(t *testing.T, userID uuid.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(userID, "1 Main St, Springfield", order.PaymentMethodCard)
	require.NoError(t, err)
	product := createTestProduct(t)
	_, err = o.AddItem(product.ID, product.Name, product.SKU, product.Price, 2)
	require.NoError(t, err)
	return o
}

func TestOrderHandler_Create_Success(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	handler := setupOrderHandler(orderRepo, productRepo)

	userID := uuid.New()
	product := createTestProduct(t)

	productRepo.On("FindByIDs", mock.Anything, []uuid.UUID{product.ID}).
		Return([]*catalog.Product{product}, nil)
	orderRepo.On("CreateWithStockDecrement", mock.Anything, mock.AnythingOfType("*order.Order"),
		[]order.StockAdjustment{{ProductID: product.ID, Quantity: 2}}).Return(nil)

	router := setupTestRouter(userID, identity.RoleCustomer)
	router.POST("/orders", handler.CreateOrder)

	body, _ := json.Marshal(CreateOrderRequest{
		Items:           []OrderItemRequest{{ProductID: product.ID, Quantity: 2}},
		ShippingAddress: "1 Main St, Springfield",
		PaymentMethod:   "card",
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	// Pricing comes from the catalog, never from the request body
	var resp struct {
		Data OrderResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "199.98", resp.Data.TotalAmount.StringFixed(2))
	orderRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}

func TestOrderHandler_Create_InsufficientStock(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	handler := setupOrderHandler(orderRepo, productRepo)

	product := createTestProduct(t)

	productRepo.On("FindByIDs", mock.Anything, []uuid.UUID{product.ID}).
		Return([]*catalog.Product{product}, nil)

	router := setupTestRouter(uuid.New(), identity.RoleCustomer)
	router.POST("/orders", handler.CreateOrder)

	body, _ := json.Marshal(CreateOrderRequest{
		Items:           []OrderItemRequest{{ProductID: product.ID, Quantity: 999}},
		ShippingAddress: "1 Main St, Springfield",
		PaymentMethod:   "card",
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, dto.ErrCodeInsufficientStock, resp.Error.Code)
}

func TestOrderHandler_Create_EmptyItems(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	handler := setupOrderHandler(orderRepo, productRepo)

	router := setupTestRouter(uuid.New(), identity.RoleCustomer)
	router.POST("/orders", handler.CreateOrder)

	body, _ := json.Marshal(CreateOrderRequest{
		Items:           []OrderItemRequest{},
		ShippingAddress: "1 Main St, Springfield",
		PaymentMethod:   "card",
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_Get_OwnOrder(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	handler := setupOrderHandler(orderRepo, productRepo)

	userID := uuid.New()
	o := createTestOrder(t, userID)

	orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	router := setupTestRouter(userID, identity.RoleCustomer)
	router.GET("/orders/:id", handler.GetOrder)

	req := httptest.NewRequest(http.MethodGet, "/orders/"+o.ID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	orderRepo.AssertExpectations(t)
}

func TestOrderHandler_Get_OtherUsersOrderHidden(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	handler := setupOrderHandler(orderRepo, productRepo)

	o := createTestOrder(t, uuid.New())

	orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	router := setupTestRouter(uuid.New(), identity.RoleCustomer)
	router.GET("/orders/:id", handler.GetOrder)

	req := httptest.NewRequest(http.MethodGet, "/orders/"+o.ID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	// Other users' orders look like they don't exist
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderHandler_Get_AdminSeesAny(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	handler := setupOrderHandler(orderRepo, productRepo)

	o := createTestOrder(t, uuid.New())

	orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	router := setupTestRouter(uuid.New(), identity.RoleAdmin)
	router.GET("/orders/:id", handler.GetOrder)

	req := httptest.NewRequest(http.MethodGet, "/orders/"+o.ID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOrderHandler_Cancel_RestoresStock(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	handler := setupOrderHandler(orderRepo, productRepo)

	userID := uuid.New()
	o := createTestOrder(t, userID)
	productID := o.Items[0].ProductID

	orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	orderRepo.On("UpdateWithStockRestore", mock.Anything, mock.AnythingOfType("*order.Order"),
		[]order.StockAdjustment{{ProductID: productID, Quantity: 2}}).Return(nil)

	router := setupTestRouter(userID, identity.RoleCustomer)
	router.POST("/orders/:id/cancel", handler.CancelOrder)

	body, _ := json.Marshal(CancelOrderRequest{Reason: "changed my mind"})

	req := httptest.NewRequest(http.MethodPost, "/orders/"+o.ID.String()+"/cancel", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, order.OrderStatusCancelled, o.Status)
	orderRepo.AssertExpectations(t)
}

func TestOrderHandler_UpdateStatus_Success(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	handler := setupOrderHandler(orderRepo, productRepo)

	o := createTestOrder(t, uuid.New())

	orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	orderRepo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)

	router := setupTestRouter(uuid.New(), identity.RoleAdmin)
	router.PUT("/orders/:id/status", handler.UpdateStatus)

	body, _ := json.Marshal(UpdateOrderStatusRequest{Status: "processing"})

	req := httptest.NewRequest(http.MethodPut, "/orders/"+o.ID.String()+"/status", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, order.OrderStatusProcessing, o.Status)
	orderRepo.AssertExpectations(t)
}

func TestOrderHandler_UpdateStatus_RejectsCancelled(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	handler := setupOrderHandler(orderRepo, productRepo)

	o := createTestOrder(t, uuid.New())

	router := setupTestRouter(uuid.New(), identity.RoleAdmin)
	router.PUT("/orders/:id/status", handler.UpdateStatus)

	body, _ := json.Marshal(UpdateOrderStatusRequest{Status: "cancelled"})

	req := httptest.NewRequest(http.MethodPut, "/orders/"+o.ID.String()+"/status", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	// Cancellation has its own endpoint so stock gets restored
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_ListMyOrders(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	handler := setupOrderHandler(orderRepo, productRepo)

	userID := uuid.New()
	o := createTestOrder(t, userID)

	orderRepo.On("FindByUserID", mock.Anything, userID, mock.AnythingOfType("order.OrderFilter")).
		Return([]*order.Order{o}, int64(1), nil)

	router := setupTestRouter(userID, identity.RoleCustomer)
	router.GET("/orders", handler.ListMyOrders)

	req := httptest.NewRequest(http.MethodGet, "/orders?page=1&page_size=10", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)
	orderRepo.AssertExpectations(t)
}
