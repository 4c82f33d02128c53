package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gunungclimbing/storefront/internal/models"
	"github.com/gunungclimbing/storefront/internal/utils"
)

// SettingsRepository covers the admin-panel writes: stock, pricing,
// visibility and the single store_settings row.
type SettingsRepository interface {
	GetStoreSettings(ctx context.Context) (*models.StoreSettings, error)
	SetStoreOpen(ctx context.Context, open bool) error
	GetProductPrice(ctx context.Context, productID string) (int64, error)
	UpdatePrice(ctx context.Context, productID string, price int64) error
	UpdateSalePrice(ctx context.Context, productID string, salePrice *int64) error
	SetProductActive(ctx context.Context, productID string, active bool) error
	UpsertStock(ctx context.Context, productID, size string, stock int) error
	DeleteSize(ctx context.Context, productID, size string) error
}

type settingsRepository struct {
	DB *sql.DB
}

func NewSettingsRepo(db *sql.DB) SettingsRepository {
	return &settingsRepository{DB: db}
}

func (r *settingsRepository) GetStoreSettings(ctx context.Context) (*models.StoreSettings, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	settings := &models.StoreSettings{}

	// Single settings row, created by migration.
	query := `SELECT is_store_open, updated_at FROM store_settings WHERE id = 1`

	err := r.DB.QueryRowContext(dbCtx, query).Scan(&settings.IsStoreOpen, &settings.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("querying store settings: %w", err)
	}

	return settings, nil
}

func (r *settingsRepository) SetStoreOpen(ctx context.Context, open bool) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE store_settings SET is_store_open = $1, updated_at = NOW() WHERE id = 1`

	return r.exec(dbCtx, query, open)
}

func (r *settingsRepository) GetProductPrice(ctx context.Context, productID string) (int64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var price int64

	err := r.DB.QueryRowContext(dbCtx, `SELECT price FROM products WHERE id = $1`, productID).Scan(&price)
	if err != nil {
		return 0, err
	}

	return price, nil
}

func (r *settingsRepository) UpdatePrice(ctx context.Context, productID string, price int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE products SET price = $2, updated_at = NOW() WHERE id = $1`

	return r.exec(dbCtx, query, productID, price)
}

func (r *settingsRepository) UpdateSalePrice(ctx context.Context, productID string, salePrice *int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE products SET sale_price = $2, updated_at = NOW() WHERE id = $1`

	return r.exec(dbCtx, query, productID, salePrice)
}

func (r *settingsRepository) SetProductActive(ctx context.Context, productID string, active bool) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE products SET is_active = $2, updated_at = NOW() WHERE id = $1`

	return r.exec(dbCtx, query, productID, active)
}

func (r *settingsRepository) UpsertStock(ctx context.Context, productID, size string, stock int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO product_sizes (product_id, size, stock)
		VALUES ($1, $2, $3)
		ON CONFLICT (product_id, size)
		DO UPDATE SET stock = EXCLUDED.stock, updated_at = NOW()
	`

	_, err := r.DB.ExecContext(dbCtx, query, productID, size, stock)
	if err != nil {
		return fmt.Errorf("failed to upsert stock for %s/%s: %w", productID, size, err)
	}

	return nil
}

func (r *settingsRepository) DeleteSize(ctx context.Context, productID, size string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM product_sizes WHERE product_id = $1 AND size = $2`

	return r.exec(dbCtx, query, productID, size)
}

// exec runs a statement that must touch at least one row.
func (r *settingsRepository) exec(ctx context.Context, query string, args ...any) error {
	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("executing statement: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}
