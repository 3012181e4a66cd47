package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/optivista/backend/internal/domain/catalog"
	"github.com/optivista/backend/internal/domain/consultation"
	"github.com/optivista/backend/internal/domain/engagement"
	"github.com/optivista/backend/internal/domain/identity"
	"github.com/optivista/backend/internal/domain/order"
	"github.com/optivista/backend/internal/domain/shared"
	"github.com/optivista/backend/internal/infrastructure/persistence/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.ProductModel{},
		&models.OrderModel{},
		&models.OrderItemModel{},
		&models.ConsultationModel{},
		&models.FeedbackModel{},
		&models.ARSessionModel{},
		&models.FileModel{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func seedUser(t *testing.T, repo *GormUserRepository, username, email string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(username, email, "Password123", identity.RoleCustomer)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func seedProduct(t *testing.T, repo *GormProductRepository, sku string, stock int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(sku, "Aviator Classic", decimal.NewFromFloat(99.99), stock)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), product))
	return product
}

func TestGormUserRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormUserRepository(db)

	t.Run("create and find", func(t *testing.T) {
		user := seedUser(t, repo, "ada", "ada@example.com")

		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "ada", found.Username)
		assert.True(t, found.VerifyPassword("Password123"))

		byName, err := repo.FindByUsername(ctx, "ADA")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byName.ID)

		byEmail, err := repo.FindByEmail(ctx, "Ada@Example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		dup, err := identity.NewUser("ada", "other@example.com", "Password123", identity.RoleCustomer)
		require.NoError(t, err)

		err = repo.Create(ctx, dup)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("exists checks", func(t *testing.T) {
		exists, err := repo.ExistsByUsername(ctx, "ada")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("update persists status changes", func(t *testing.T) {
		user := seedUser(t, repo, "grace", "grace@example.com")
		require.NoError(t, user.Deactivate())

		require.NoError(t, repo.Update(ctx, user))

		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, identity.UserStatusDeactivated, found.Status)
	})

	t.Run("find all with filters", func(t *testing.T) {
		filter := identity.NewUserFilter().WithKeyword("grace")
		users, total, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, users, 1)
		assert.Equal(t, "grace", users[0].Username)
	})

	t.Run("missing user returns not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormProductRepository(db)

	t.Run("create and find by sku", func(t *testing.T) {
		product := seedProduct(t, repo, "AVT-100", 10)

		found, err := repo.FindBySKU(ctx, "avt-100")
		require.NoError(t, err)
		assert.Equal(t, product.ID, found.ID)
		assert.True(t, found.Price.Equal(decimal.NewFromFloat(99.99)))
	})

	t.Run("decrement stock succeeds when available", func(t *testing.T) {
		product := seedProduct(t, repo, "WAY-200", 5)

		require.NoError(t, repo.DecrementStock(ctx, product.ID, 3))

		found, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, found.Stock)
	})

	t.Run("decrement stock fails on oversell", func(t *testing.T) {
		product := seedProduct(t, repo, "RND-300", 2)

		err := repo.DecrementStock(ctx, product.ID, 3)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)

		found, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, found.Stock)
	})

	t.Run("decrement stock on missing product returns not found", func(t *testing.T) {
		err := repo.DecrementStock(ctx, uuid.New(), 1)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("increment stock restores quantity", func(t *testing.T) {
		product := seedProduct(t, repo, "CAT-400", 1)

		require.NoError(t, repo.IncrementStock(ctx, product.ID, 4))

		found, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, found.Stock)
	})

	t.Run("find all filters by status and keyword", func(t *testing.T) {
		product := seedProduct(t, repo, "SPT-500", 10)
		require.NoError(t, product.Deactivate())
		require.NoError(t, repo.Update(ctx, product))

		filter := catalog.NewProductFilter().WithStatus(catalog.ProductStatusInactive)
		products, total, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, products, 1)
		assert.Equal(t, "SPT-500", products[0].SKU)
	})
}

func TestGormOrderRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	productRepo := NewGormProductRepository(db)
	repo := NewGormOrderRepository(db)
	userID := uuid.New()

	newOrderWithItem := func(t *testing.T, product *catalog.Product, qty int) *order.Order {
		t.Helper()
		o, err := order.NewOrder(userID, "1 Harbor View Rd", order.PaymentMethodCard)
		require.NoError(t, err)
		_, err = o.AddItem(product.ID, product.Name, product.SKU, product.Price, qty)
		require.NoError(t, err)
		return o
	}

	t.Run("create decrements stock and stores items atomically", func(t *testing.T) {
		product := seedProduct(t, productRepo, "ORD-100", 10)
		o := newOrderWithItem(t, product, 2)

		err := repo.CreateWithStockDecrement(ctx, o, []order.StockAdjustment{
			{ProductID: product.ID, Quantity: 2},
		})
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		require.Len(t, found.Items, 1)
		assert.True(t, found.TotalAmount.Equal(decimal.NewFromFloat(199.98)))

		p, err := productRepo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 8, p.Stock)
	})

	t.Run("insufficient stock rolls back the whole order", func(t *testing.T) {
		product := seedProduct(t, productRepo, "ORD-200", 1)
		o := newOrderWithItem(t, product, 3)

		err := repo.CreateWithStockDecrement(ctx, o, []order.StockAdjustment{
			{ProductID: product.ID, Quantity: 3},
		})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)

		_, err = repo.FindByID(ctx, o.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		p, err := productRepo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, p.Stock)
	})

	t.Run("partial failure restores earlier decrements", func(t *testing.T) {
		inStock := seedProduct(t, productRepo, "ORD-300", 5)
		outOfStock := seedProduct(t, productRepo, "ORD-400", 0)

		o, err := order.NewOrder(userID, "1 Harbor View Rd", order.PaymentMethodCard)
		require.NoError(t, err)
		_, err = o.AddItem(inStock.ID, inStock.Name, inStock.SKU, inStock.Price, 2)
		require.NoError(t, err)
		_, err = o.AddItem(outOfStock.ID, outOfStock.Name, outOfStock.SKU, outOfStock.Price, 1)
		require.NoError(t, err)

		err = repo.CreateWithStockDecrement(ctx, o, []order.StockAdjustment{
			{ProductID: inStock.ID, Quantity: 2},
			{ProductID: outOfStock.ID, Quantity: 1},
		})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)

		p, err := productRepo.FindByID(ctx, inStock.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, p.Stock)
	})

	t.Run("cancel with stock restore", func(t *testing.T) {
		product := seedProduct(t, productRepo, "ORD-500", 4)
		o := newOrderWithItem(t, product, 4)

		require.NoError(t, repo.CreateWithStockDecrement(ctx, o, []order.StockAdjustment{
			{ProductID: product.ID, Quantity: 4},
		}))

		require.NoError(t, o.Cancel("changed my mind"))
		require.NoError(t, repo.UpdateWithStockRestore(ctx, o, []order.StockAdjustment{
			{ProductID: product.ID, Quantity: 4},
		}))

		found, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, order.OrderStatusCancelled, found.Status)

		p, err := productRepo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, p.Stock)
	})

	t.Run("find by user filters by status", func(t *testing.T) {
		filter := order.NewOrderFilter().WithStatus(order.OrderStatusCancelled)
		orders, total, err := repo.FindByUserID(ctx, userID, filter)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, orders, 1)
		require.Len(t, orders[0].Items, 1)
	})
}

func TestGormConsultationRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormConsultationRepository(db)

	customerID := uuid.New()
	sellerID := uuid.New()

	c, err := consultation.NewConsultation(customerID, sellerID, time.Now().Add(48*time.Hour), 30*time.Minute, "Frame fitting")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, c))

	t.Run("round trip preserves duration", func(t *testing.T) {
		found, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, 30*time.Minute, found.Duration)
		assert.Equal(t, consultation.StatusRequested, found.Status)
	})

	t.Run("update persists transitions", func(t *testing.T) {
		require.NoError(t, c.Confirm())
		require.NoError(t, repo.Update(ctx, c))

		found, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, consultation.StatusConfirmed, found.Status)
		assert.NotNil(t, found.ConfirmedAt)
	})

	t.Run("find by participant", func(t *testing.T) {
		byCustomer, total, err := repo.FindByCustomerID(ctx, customerID, consultation.NewConsultationFilter())
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Len(t, byCustomer, 1)

		bySeller, total, err := repo.FindBySellerID(ctx, sellerID, consultation.NewConsultationFilter())
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Len(t, bySeller, 1)

		_, total, err = repo.FindByCustomerID(ctx, uuid.New(), consultation.NewConsultationFilter())
		require.NoError(t, err)
		assert.Zero(t, total)
	})
}

func TestGormFeedbackRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormFeedbackRepository(db)

	productID := uuid.New()
	userA := uuid.New()
	userB := uuid.New()

	fbA, err := engagement.NewFeedback(userA, productID, 5, "love them")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, fbA))

	fbB, err := engagement.NewFeedback(userB, productID, 2, "too tight")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, fbB))

	t.Run("one feedback per user and product", func(t *testing.T) {
		dup, err := engagement.NewFeedback(userA, productID, 3, "changed my mind")
		require.NoError(t, err)

		err = repo.Create(ctx, dup)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("rating summary averages all feedback", func(t *testing.T) {
		summary, err := repo.RatingSummary(ctx, productID)
		require.NoError(t, err)
		assert.EqualValues(t, 2, summary.Count)
		assert.InDelta(t, 3.5, summary.Average, 0.001)
	})

	t.Run("summary of unreviewed product is empty", func(t *testing.T) {
		summary, err := repo.RatingSummary(ctx, uuid.New())
		require.NoError(t, err)
		assert.Zero(t, summary.Count)
		assert.Zero(t, summary.Average)
	})

	t.Run("list by product paginates", func(t *testing.T) {
		feedback, total, err := repo.FindByProductID(ctx, productID, engagement.PageFilter{Page: 1, PageSize: 1})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Len(t, feedback, 1)
	})
}

func TestGormARSessionRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormARSessionRepository(db)

	userID := uuid.New()
	productID := uuid.New()

	s, err := engagement.NewARSession(userID, productID,
		[]string{"https://cdn.example.com/snap/1.jpg", "https://cdn.example.com/snap/2.jpg"},
		map[string]string{"device": "Pixel 9"})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, s))

	t.Run("round trip preserves snapshots and metadata", func(t *testing.T) {
		found, err := repo.FindByID(ctx, s.ID)
		require.NoError(t, err)
		assert.Len(t, found.SnapshotURLs, 2)
		assert.Equal(t, "Pixel 9", found.Metadata["device"])
	})

	t.Run("list and count by product", func(t *testing.T) {
		sessions, total, err := repo.FindByProductID(ctx, productID, engagement.NewPageFilter())
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Len(t, sessions, 1)

		count, err := repo.CountByProductID(ctx, productID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})

	t.Run("list by user", func(t *testing.T) {
		sessions, total, err := repo.FindByUserID(ctx, userID, engagement.NewPageFilter())
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Len(t, sessions, 1)
	})
}
