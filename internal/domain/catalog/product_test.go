package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProduct(t *testing.T) *Product {
	product, err := NewProduct("sku-001", "Test Product", decimal.RequireFromString("99.99"))
	require.NoError(t, err)
	return product
}

func TestNewProduct(t *testing.T) {
	t.Run("uppercases SKU", func(t *testing.T) {
		product := createTestProduct(t)
		assert.Equal(t, "SKU-001", product.SKU)
		assert.True(t, product.Active)
	})

	t.Run("rejects invalid SKU characters", func(t *testing.T) {
		_, err := NewProduct("sku 001", "Name", decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProduct("SKU-002", "Name", decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}

func TestProduct_AddVariant(t *testing.T) {
	product := createTestProduct(t)

	t.Run("adds variant with stock", func(t *testing.T) {
		variant, err := product.AddVariant("Large", "sku-001-l", nil, 10)
		require.NoError(t, err)

		assert.Equal(t, product.ID, variant.ProductID)
		assert.Equal(t, "SKU-001-L", variant.SKU)
		assert.Equal(t, 10, variant.Stock)
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		_, err := product.AddVariant("Small", "", nil, -1)
		assert.Error(t, err)
	})

	t.Run("rejects negative price override", func(t *testing.T) {
		price := decimal.NewFromInt(-5)
		_, err := product.AddVariant("Medium", "", &price, 0)
		assert.Error(t, err)
	})
}

func TestProduct_HasVariant(t *testing.T) {
	product := createTestProduct(t)
	variant, err := product.AddVariant("Large", "", nil, 5)
	require.NoError(t, err)

	assert.True(t, product.HasVariant(variant.ID))
	assert.False(t, product.HasVariant(uuid.New()))
	assert.NotNil(t, product.Variant(variant.ID))
	assert.Nil(t, product.Variant(uuid.New()))
}

func TestProductVariant_SetStock(t *testing.T) {
	product := createTestProduct(t)
	variant, err := product.AddVariant("Large", "", nil, 5)
	require.NoError(t, err)

	require.NoError(t, variant.SetStock(0))
	assert.Equal(t, 0, variant.Stock)

	assert.Error(t, variant.SetStock(-1))
	assert.Equal(t, 0, variant.Stock)
}
