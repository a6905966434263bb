package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	catalogapp "github.com/ayush-nalawade/CRM-backend/internal/application/catalog"
	"github.com/ayush-nalawade/CRM-backend/internal/domain/catalog"
	"github.com/ayush-nalawade/CRM-backend/internal/domain/shared"
	"github.com/ayush-nalawade/CRM-backend/internal/interfaces/http/dto"
)

// MockProductRepository implements catalog.ProductRepository for testing
type MockProductRepository struct {
	mock.Mock
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

func (m *MockProductRepository) FindVariantByID(ctx context.Context, variantID uuid.UUID) (*catalog.ProductVariant, error) {
	args := m.Called(ctx, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductVariant), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateVariantStock(ctx context.Context, variantID uuid.UUID, stock int) error {
	args := m.Called(ctx, variantID, stock)
	return args.Error(0)
}

func setupProductHandler(t *testing.T) (*MockProductRepository, *gin.Engine) {
	t.Helper()

	repo := new(MockProductRepository)
	service := catalogapp.NewProductService(repo, zap.NewNop())
	h := NewProductHandler(service)

	engine := gin.New()
	engine.POST("/products", h.Create)
	engine.GET("/products/:id", h.GetByID)
	engine.PUT("/variants/:id/stock", h.SetStock)
	engine.POST("/variants/stock/bulk", h.BulkSetStock)

	return repo, engine
}

func TestProductHandlerCreate(t *testing.T) {
	t.Run("creates product", func(t *testing.T) {
		repo, engine := setupProductHandler(t)

		repo.On("FindBySKU", mock.Anything, "WID-100").Return(nil, shared.ErrNotFound)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

		body, _ := json.Marshal(map[string]interface{}{
			"sku":        "WID-100",
			"name":       "Widget",
			"unit_price": 99.50,
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/products", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		repo.AssertExpectations(t)
	})

	t.Run("missing name is rejected before the service", func(t *testing.T) {
		repo, engine := setupProductHandler(t)

		body, _ := json.Marshal(map[string]interface{}{
			"sku":        "WID-100",
			"unit_price": 10,
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/products", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestProductHandlerGetByID(t *testing.T) {
	t.Run("unknown product is 404", func(t *testing.T) {
		repo, engine := setupProductHandler(t)

		productID := uuid.New()
		repo.On("FindByID", mock.Anything, productID).Return(nil, shared.ErrNotFound)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/products/"+productID.String(), nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, shared.CodeNotFound, resp.Error.Code)
	})

	t.Run("malformed id is 400", func(t *testing.T) {
		_, engine := setupProductHandler(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/products/not-a-uuid", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProductHandlerSetStock(t *testing.T) {
	repo, engine := setupProductHandler(t)

	variantID := uuid.New()
	repo.On("UpdateVariantStock", mock.Anything, variantID, 25).Return(nil)

	body, _ := json.Marshal(map[string]int{"stock": 25})
	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/variants/"+variantID.String()+"/stock", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	repo.AssertExpectations(t)
}

func TestProductHandlerBulkSetStock(t *testing.T) {
	repo, engine := setupProductHandler(t)

	okID := uuid.New()
	missingID := uuid.New()
	repo.On("UpdateVariantStock", mock.Anything, okID, 5).Return(nil)
	repo.On("UpdateVariantStock", mock.Anything, missingID, 7).Return(shared.ErrNotFound)

	body, _ := json.Marshal(map[string]interface{}{
		"entries": []map[string]interface{}{
			{"variant_id": okID.String(), "stock": 5},
			{"variant_id": missingID.String(), "stock": 7},
		},
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/variants/stock/bulk", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	// The batch itself succeeds even when entries fail
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                       `json:"success"`
		Data    catalogapp.BulkStockResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Data.Updated)
	assert.Equal(t, 1, resp.Data.Failed)
	require.Len(t, resp.Data.Results, 2)
	repo.AssertExpectations(t)
}
