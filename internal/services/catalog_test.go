package service_test

import (
	"context"
	"database/sql"
	"testing"

	appErrors "github.com/gunungclimbing/storefront/internal/errors"
	"github.com/gunungclimbing/storefront/internal/models"
	service "github.com/gunungclimbing/storefront/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) ListProducts(ctx context.Context, activeOnly bool) ([]*models.Product, error) {
	args := m.Called(ctx, activeOnly)

	if products, ok := args.Get(0).([]*models.Product); ok {
		return products, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProductRepository) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)

	if product, ok := args.Get(0).(*models.Product); ok {
		return product, args.Error(1)
	}

	return nil, args.Error(1)
}

func TestCatalogService_ListProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Returns Repository Products", func(t *testing.T) {
		// Arrange
		mockRepo := new(MockProductRepository)
		catalogService := service.NewCatalogService(mockRepo, nil)

		mockRepo.On("ListProducts", ctx, true).Return([]*models.Product{shoeProduct()}, nil).Once()

		// Act
		products, err := catalogService.ListProducts(ctx)

		// Assert
		assert.NoError(t, err)
		assert.Len(t, products, 1)
		assert.Equal(t, "jett-qc", products[0].ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - Query Failure Serves Fallback Catalog", func(t *testing.T) {
		// Arrange
		mockRepo := new(MockProductRepository)
		catalogService := service.NewCatalogService(mockRepo, nil)

		mockRepo.On("ListProducts", ctx, true).Return(nil, assert.AnError).Once()

		// Act
		products, err := catalogService.ListProducts(ctx)

		// Assert
		assert.NoError(t, err)
		assert.NotEmpty(t, products)

		ids := make([]string, 0, len(products))
		for _, product := range products {
			ids = append(ids, product.ID)
		}
		assert.Contains(t, ids, "jett-qc")
	})

	t.Run("Success - Nil Repository Serves Fallback Catalog", func(t *testing.T) {
		// Arrange
		catalogService := service.NewCatalogService(nil, nil)

		// Act
		products, err := catalogService.ListProducts(ctx)

		// Assert
		assert.NoError(t, err)
		assert.NotEmpty(t, products)
	})
}

func TestCatalogService_GetProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Returns Repository Product", func(t *testing.T) {
		// Arrange
		mockRepo := new(MockProductRepository)
		catalogService := service.NewCatalogService(mockRepo, nil)

		mockRepo.On("GetProductByID", ctx, "jett-qc").Return(shoeProduct(), nil).Once()

		// Act
		product, err := catalogService.GetProduct(ctx, "jett-qc")

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, int64(52999), product.Price)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - Query Failure Falls Back To Built In Product", func(t *testing.T) {
		// Arrange
		mockRepo := new(MockProductRepository)
		catalogService := service.NewCatalogService(mockRepo, nil)

		mockRepo.On("GetProductByID", ctx, "jett-qc").Return(nil, assert.AnError).Once()

		// Act
		product, err := catalogService.GetProduct(ctx, "jett-qc")

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "Jett QC", product.Name)
	})

	t.Run("Failure - Missing Row Returns Not Found", func(t *testing.T) {
		// Arrange
		mockRepo := new(MockProductRepository)
		catalogService := service.NewCatalogService(mockRepo, nil)

		mockRepo.On("GetProductByID", ctx, "ghost-product").Return(nil, sql.ErrNoRows).Once()

		// Act
		product, err := catalogService.GetProduct(ctx, "ghost-product")

		// Assert
		assert.Nil(t, product)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}
