package service_test

import (
	"context"
	"database/sql"
	"testing"

	appErrors "github.com/gunungclimbing/storefront/internal/errors"
	service "github.com/gunungclimbing/storefront/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestAdminService_UpdateSalePrice(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Sets Sale Price Below Base Price", func(t *testing.T) {
		// Arrange
		mockSettings := new(MockSettingsRepository)
		adminService := service.NewAdminService(mockSettings)

		salePrice := int64(45999)

		mockSettings.On("GetProductPrice", ctx, "jett-qc").Return(int64(52999), nil).Once()
		mockSettings.On("UpdateSalePrice", ctx, "jett-qc", &salePrice).Return(nil).Once()

		// Act
		err := adminService.UpdateSalePrice(ctx, "jett-qc", &salePrice)

		// Assert
		assert.NoError(t, err)
		mockSettings.AssertExpectations(t)
	})

	t.Run("Success - Nil Clears The Sale Price", func(t *testing.T) {
		// Arrange
		mockSettings := new(MockSettingsRepository)
		adminService := service.NewAdminService(mockSettings)

		mockSettings.On("UpdateSalePrice", ctx, "jett-qc", (*int64)(nil)).Return(nil).Once()

		// Act
		err := adminService.UpdateSalePrice(ctx, "jett-qc", nil)

		// Assert
		assert.NoError(t, err)
		mockSettings.AssertNotCalled(t, "GetProductPrice")
		mockSettings.AssertExpectations(t)
	})

	t.Run("Failure - Sale Price Equal To Base Is Rejected", func(t *testing.T) {
		// Arrange
		mockSettings := new(MockSettingsRepository)
		adminService := service.NewAdminService(mockSettings)

		salePrice := int64(52999)

		mockSettings.On("GetProductPrice", ctx, "jett-qc").Return(int64(52999), nil).Once()

		// Act
		err := adminService.UpdateSalePrice(ctx, "jett-qc", &salePrice)

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		mockSettings.AssertNotCalled(t, "UpdateSalePrice")
	})

	t.Run("Failure - Negative Sale Price Is Rejected", func(t *testing.T) {
		// Arrange
		mockSettings := new(MockSettingsRepository)
		adminService := service.NewAdminService(mockSettings)

		salePrice := int64(-100)

		// Act
		err := adminService.UpdateSalePrice(ctx, "jett-qc", &salePrice)

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		mockSettings.AssertNotCalled(t, "GetProductPrice")
	})

	t.Run("Failure - Unknown Product Returns Not Found", func(t *testing.T) {
		// Arrange
		mockSettings := new(MockSettingsRepository)
		adminService := service.NewAdminService(mockSettings)

		salePrice := int64(1000)

		mockSettings.On("GetProductPrice", ctx, "ghost-product").Return(int64(0), sql.ErrNoRows).Once()

		// Act
		err := adminService.UpdateSalePrice(ctx, "ghost-product", &salePrice)

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestAdminService_UpdatePrice(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Updates Base Price", func(t *testing.T) {
		// Arrange
		mockSettings := new(MockSettingsRepository)
		adminService := service.NewAdminService(mockSettings)

		mockSettings.On("UpdatePrice", ctx, "jett-qc", int64(54999)).Return(nil).Once()

		// Act
		err := adminService.UpdatePrice(ctx, "jett-qc", 54999)

		// Assert
		assert.NoError(t, err)
		mockSettings.AssertExpectations(t)
	})

	t.Run("Failure - Zero Price Is Rejected", func(t *testing.T) {
		// Arrange
		mockSettings := new(MockSettingsRepository)
		adminService := service.NewAdminService(mockSettings)

		// Act
		err := adminService.UpdatePrice(ctx, "jett-qc", 0)

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		mockSettings.AssertNotCalled(t, "UpdatePrice")
	})
}

func TestAdminService_UpdateStock(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Upserts Stock For Size", func(t *testing.T) {
		// Arrange
		mockSettings := new(MockSettingsRepository)
		adminService := service.NewAdminService(mockSettings)

		mockSettings.On("UpsertStock", ctx, "jett-qc", "UK 7", 12).Return(nil).Once()

		// Act
		err := adminService.UpdateStock(ctx, "jett-qc", "UK 7", 12)

		// Assert
		assert.NoError(t, err)
		mockSettings.AssertExpectations(t)
	})

	t.Run("Failure - Negative Stock Is Rejected", func(t *testing.T) {
		// Arrange
		mockSettings := new(MockSettingsRepository)
		adminService := service.NewAdminService(mockSettings)

		// Act
		err := adminService.UpdateStock(ctx, "jett-qc", "UK 7", -1)

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		mockSettings.AssertNotCalled(t, "UpsertStock")
	})

	t.Run("Failure - Empty Size Label Is Rejected", func(t *testing.T) {
		// Arrange
		mockSettings := new(MockSettingsRepository)
		adminService := service.NewAdminService(mockSettings)

		// Act
		err := adminService.UpdateStock(ctx, "jett-qc", "", 5)

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
	})
}

func TestAdminService_DeleteSize(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Removes Size Row", func(t *testing.T) {
		// Arrange
		mockSettings := new(MockSettingsRepository)
		adminService := service.NewAdminService(mockSettings)

		mockSettings.On("DeleteSize", ctx, "jett-qc", "UK 5").Return(nil).Once()

		// Act
		err := adminService.DeleteSize(ctx, "jett-qc", "UK 5")

		// Assert
		assert.NoError(t, err)
		mockSettings.AssertExpectations(t)
	})

	t.Run("Failure - Missing Size Returns Not Found", func(t *testing.T) {
		// Arrange
		mockSettings := new(MockSettingsRepository)
		adminService := service.NewAdminService(mockSettings)

		mockSettings.On("DeleteSize", ctx, "jett-qc", "UK 99").Return(sql.ErrNoRows).Once()

		// Act
		err := adminService.DeleteSize(ctx, "jett-qc", "UK 99")

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestAdminService_SetStoreOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Toggles Store Status", func(t *testing.T) {
		// Arrange
		mockSettings := new(MockSettingsRepository)
		adminService := service.NewAdminService(mockSettings)

		mockSettings.On("SetStoreOpen", ctx, false).Return(nil).Once()

		// Act
		err := adminService.SetStoreOpen(ctx, false)

		// Assert
		assert.NoError(t, err)
		mockSettings.AssertExpectations(t)
	})
}
