package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gunungclimbing/storefront/internal/api/handlers"
	"github.com/gunungclimbing/storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) GetCart(ctx context.Context, cartID string) (*models.Cart, error) {
	args := m.Called(ctx, cartID)

	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, cartID string, product *models.Product, quantity int, size string) (*models.Cart, error) {
	args := m.Called(ctx, cartID, product, quantity, size)

	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, cartID, productID, size string) (*models.Cart, error) {
	args := m.Called(ctx, cartID, productID, size)

	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, cartID, productID string, quantity int, size string) (*models.Cart, error) {
	args := m.Called(ctx, cartID, productID, quantity, size)

	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCartService) Clear(ctx context.Context, cartID string) error {
	args := m.Called(ctx, cartID)

	return args.Error(0)
}

func (m *MockCartService) Totals(cart *models.Cart) models.CartTotals {
	args := m.Called(cart)

	return args.Get(0).(models.CartTotals)
}

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	args := m.Called(ctx)

	if products, ok := args.Get(0).([]*models.Product); ok {
		return products, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)

	if product, ok := args.Get(0).(*models.Product); ok {
		return product, args.Error(1)
	}

	return nil, args.Error(1)
}

func TestCartHandler_AddItem(t *testing.T) {
	t.Run("Success - Adds Product From Catalog", func(t *testing.T) {
		// Arrange
		mockCart := new(MockCartService)
		mockCatalog := new(MockCatalogService)
		handler := handlers.NewCartHandler(mockCart, mockCatalog)

		product := &models.Product{ID: "jett-qc", Name: "Jett QC", Price: 52999, Currency: "myr", IsActive: true}
		cart := &models.Cart{
			ID: "cart-1",
			Lines: []models.CartLine{
				{Product: product.Snapshot(), Quantity: 2, Size: "UK 7"},
			},
		}

		mockCatalog.On("GetProduct", mock.Anything, "jett-qc").Return(product, nil).Once()
		mockCart.On("AddItem", mock.Anything, "cart-1", product, 2, "UK 7").Return(cart, nil).Once()
		mockCart.On("Totals", cart).Return(models.CartTotals{Subtotal: 105998, TotalItems: 2}).Once()

		body := `{"product_id":"jett-qc","quantity":2,"size":"UK 7"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/carts/cart-1/items", strings.NewReader(body))
		req.SetPathValue("id", "cart-1")
		rec := httptest.NewRecorder()

		// Act
		handler.AddItem()(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Success bool `json:"success"`
			Data    struct {
				Subtotal   int64 `json:"subtotal"`
				TotalItems int   `json:"total_items"`
			} `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, int64(105998), resp.Data.Subtotal)
		assert.Equal(t, 2, resp.Data.TotalItems)
		mockCart.AssertExpectations(t)
		mockCatalog.AssertExpectations(t)
	})

	t.Run("Failure - Zero Quantity Fails Validation", func(t *testing.T) {
		// Arrange
		mockCart := new(MockCartService)
		mockCatalog := new(MockCatalogService)
		handler := handlers.NewCartHandler(mockCart, mockCatalog)

		body := `{"product_id":"jett-qc","quantity":0}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/carts/cart-1/items", strings.NewReader(body))
		req.SetPathValue("id", "cart-1")
		rec := httptest.NewRecorder()

		// Act
		handler.AddItem()(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockCart.AssertNotCalled(t, "AddItem")
		mockCatalog.AssertNotCalled(t, "GetProduct")
	})

	t.Run("Failure - Missing Cart ID Is Rejected", func(t *testing.T) {
		// Arrange
		handler := handlers.NewCartHandler(new(MockCartService), new(MockCatalogService))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/carts//items", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()

		// Act
		handler.AddItem()(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCartHandler_GetCart(t *testing.T) {
	t.Run("Success - Returns Cart With Totals", func(t *testing.T) {
		// Arrange
		mockCart := new(MockCartService)
		handler := handlers.NewCartHandler(mockCart, new(MockCatalogService))

		cart := &models.Cart{ID: "cart-1"}

		mockCart.On("GetCart", mock.Anything, "cart-1").Return(cart, nil).Once()
		mockCart.On("Totals", cart).Return(models.CartTotals{}).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/carts/cart-1", nil)
		req.SetPathValue("id", "cart-1")
		rec := httptest.NewRecorder()

		// Act
		handler.GetCart()(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		mockCart.AssertExpectations(t)
	})
}

func TestCartHandler_ClearCart(t *testing.T) {
	t.Run("Success - Clears The Cart", func(t *testing.T) {
		// Arrange
		mockCart := new(MockCartService)
		handler := handlers.NewCartHandler(mockCart, new(MockCatalogService))

		mockCart.On("Clear", mock.Anything, "cart-1").Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/carts/cart-1", nil)
		req.SetPathValue("id", "cart-1")
		rec := httptest.NewRecorder()

		// Act
		handler.ClearCart()(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		mockCart.AssertExpectations(t)
	})
}
