package service

import (
	"context"
	"database/sql"
	"errors"

	appErrors "github.com/gunungclimbing/storefront/internal/errors"
	"github.com/gunungclimbing/storefront/internal/models"
	repository "github.com/gunungclimbing/storefront/internal/repositories"
)

// AdminService covers the dashboard operations: stock, pricing, product
// visibility and the store open/closed toggle.
type AdminService interface {
	StoreSettings(ctx context.Context) (*models.StoreSettings, error)
	SetStoreOpen(ctx context.Context, open bool) error
	UpdateStock(ctx context.Context, productID, size string, stock int) error
	DeleteSize(ctx context.Context, productID, size string) error
	UpdatePrice(ctx context.Context, productID string, price int64) error
	UpdateSalePrice(ctx context.Context, productID string, salePrice *int64) error
	SetProductActive(ctx context.Context, productID string, active bool) error
}

type adminService struct {
	settings repository.SettingsRepository
}

func NewAdminService(settings repository.SettingsRepository) AdminService {
	return &adminService{settings: settings}
}

func (s *adminService) StoreSettings(ctx context.Context) (*models.StoreSettings, error) {
	settings, err := s.settings.GetStoreSettings(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to load store settings").WithError(err)
	}

	return settings, nil
}

func (s *adminService) SetStoreOpen(ctx context.Context, open bool) error {
	if err := s.settings.SetStoreOpen(ctx, open); err != nil {
		return appErrors.DatabaseError("Failed to update store status").WithError(err)
	}

	return nil
}

func (s *adminService) UpdateStock(ctx context.Context, productID, size string, stock int) error {
	if stock < 0 {
		return appErrors.ValidationError("Stock cannot be negative")
	}

	if size == "" {
		return appErrors.ValidationError("Size label is required")
	}

	if err := s.settings.UpsertStock(ctx, productID, size, stock); err != nil {
		return appErrors.DatabaseError("Failed to update stock").WithError(err)
	}

	return nil
}

func (s *adminService) DeleteSize(ctx context.Context, productID, size string) error {
	err := s.settings.DeleteSize(ctx, productID, size)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Size not found").WithError(err)
		}

		return appErrors.DatabaseError("Failed to delete product size").WithError(err)
	}

	return nil
}

func (s *adminService) UpdatePrice(ctx context.Context, productID string, price int64) error {
	if price <= 0 {
		return appErrors.ValidationError("Price must be greater than zero")
	}

	err := s.settings.UpdatePrice(ctx, productID, price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Product not found").WithError(err)
		}

		return appErrors.DatabaseError("Failed to update product price").WithError(err)
	}

	return nil
}

// UpdateSalePrice sets or clears the sale price. A non-nil sale price must
// be non-negative and strictly below the current base price; the check runs
// here, server-side, regardless of what the dashboard already validated.
func (s *adminService) UpdateSalePrice(ctx context.Context, productID string, salePrice *int64) error {
	if salePrice != nil {
		if *salePrice < 0 {
			return appErrors.ValidationError("Sale price cannot be negative")
		}

		basePrice, err := s.settings.GetProductPrice(ctx, productID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.NotFoundError("Product not found").WithError(err)
			}

			return appErrors.DatabaseError("Failed to load product price").WithError(err)
		}

		if *salePrice >= basePrice {
			return appErrors.ValidationError("Sale price must be less than regular price")
		}
	}

	if err := s.settings.UpdateSalePrice(ctx, productID, salePrice); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Product not found").WithError(err)
		}

		return appErrors.DatabaseError("Failed to update sale price").WithError(err)
	}

	return nil
}

func (s *adminService) SetProductActive(ctx context.Context, productID string, active bool) error {
	err := s.settings.SetProductActive(ctx, productID, active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Product not found").WithError(err)
		}

		return appErrors.DatabaseError("Failed to update product status").WithError(err)
	}

	return nil
}
