package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid fields", func(t *testing.T) {
		product, err := NewProduct("avt-100", "Aviator Classic", decimal.NewFromFloat(129.99), 50)

		require.NoError(t, err)
		assert.Equal(t, "AVT-100", product.SKU)
		assert.Equal(t, "Aviator Classic", product.Name)
		assert.True(t, product.Price.Equal(decimal.NewFromFloat(129.99)))
		assert.Equal(t, 50, product.Stock)
		assert.Equal(t, ProductStatusActive, product.Status)
	})

	t.Run("fails with empty SKU", func(t *testing.T) {
		_, err := NewProduct("", "Aviator Classic", decimal.NewFromInt(100), 10)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "SKU cannot be empty")
	})

	t.Run("fails with invalid SKU characters", func(t *testing.T) {
		_, err := NewProduct("avt 100", "Aviator Classic", decimal.NewFromInt(100), 10)

		assert.Error(t, err)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct("AVT-100", "", decimal.NewFromInt(100), 10)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewProduct("AVT-100", "Aviator Classic", decimal.NewFromInt(-1), 10)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Price cannot be negative")
	})

	t.Run("fails with negative stock", func(t *testing.T) {
		_, err := NewProduct("AVT-100", "Aviator Classic", decimal.NewFromInt(100), -1)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Stock cannot be negative")
	})
}

func TestProduct_SetPrice(t *testing.T) {
	product, _ := NewProduct("AVT-100", "Aviator Classic", decimal.NewFromInt(100), 10)

	require.NoError(t, product.SetPrice(decimal.NewFromFloat(149.50)))
	assert.True(t, product.Price.Equal(decimal.NewFromFloat(149.50)))

	assert.Error(t, product.SetPrice(decimal.NewFromInt(-5)))
}

func TestProduct_SetStock(t *testing.T) {
	product, _ := NewProduct("AVT-100", "Aviator Classic", decimal.NewFromInt(100), 10)

	require.NoError(t, product.SetStock(0))
	assert.Equal(t, 0, product.Stock)
	assert.False(t, product.InStock(1))

	require.NoError(t, product.SetStock(5))
	assert.True(t, product.InStock(5))
	assert.False(t, product.InStock(6))

	assert.Error(t, product.SetStock(-1))
}

func TestProduct_StatusTransitions(t *testing.T) {
	t.Run("deactivate and reactivate", func(t *testing.T) {
		product, _ := NewProduct("AVT-100", "Aviator Classic", decimal.NewFromInt(100), 10)

		require.NoError(t, product.Deactivate())
		assert.Equal(t, ProductStatusInactive, product.Status)
		assert.False(t, product.IsPurchasable())

		require.NoError(t, product.Activate())
		assert.True(t, product.IsActive())
	})

	t.Run("discontinued product cannot be reactivated", func(t *testing.T) {
		product, _ := NewProduct("AVT-100", "Aviator Classic", decimal.NewFromInt(100), 10)

		require.NoError(t, product.Discontinue())
		assert.Error(t, product.Activate())
		assert.Error(t, product.Deactivate())
		assert.Error(t, product.Discontinue())
	})
}

func TestProduct_TryOn(t *testing.T) {
	product, _ := NewProduct("AVT-100", "Aviator Classic", decimal.NewFromInt(100), 10)

	assert.False(t, product.SupportsTryOn())

	require.NoError(t, product.SetModel3DURL("https://cdn.example.com/models/avt-100.glb"))
	assert.True(t, product.SupportsTryOn())
}

func TestProduct_SetFrame(t *testing.T) {
	product, _ := NewProduct("AVT-100", "Aviator Classic", decimal.NewFromInt(100), 10)

	err := product.SetFrame(FrameAttributes{
		Category:   "sunglasses",
		Style:      "aviator",
		FrameColor: "gold",
		FrameSize:  "58-14-135",
	})

	require.NoError(t, err)
	assert.Equal(t, "aviator", product.Frame.Style)
}
