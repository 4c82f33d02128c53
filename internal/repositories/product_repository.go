package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gunungclimbing/storefront/internal/models"
	"github.com/gunungclimbing/storefront/internal/utils"
)

type ProductRepository interface {
	ListProducts(ctx context.Context, activeOnly bool) ([]*models.Product, error)
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

func (r *productRepository) ListProducts(ctx context.Context, activeOnly bool) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, name, description, details, price, sale_price, sale_end_date,
		       image, currency, is_active, created_at, updated_at
		FROM products
	`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}

	query += ` ORDER BY created_at`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}

	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product := &models.Product{}

		err := rows.Scan(&product.ID, &product.Name, &product.Description, &product.Details,
			&product.Price, &product.SalePrice, &product.SaleEndDate,
			&product.Image, &product.Currency, &product.IsActive,
			&product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, product := range products {
		sizes, err := r.listSizes(dbCtx, product.ID)
		if err != nil {
			return nil, err
		}

		product.Sizes = sizes
	}

	return products, nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product := &models.Product{}

	query := `
		SELECT id, name, description, details, price, sale_price, sale_end_date,
		       image, currency, is_active, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&product.ID, &product.Name,
		&product.Description, &product.Details, &product.Price, &product.SalePrice,
		&product.SaleEndDate, &product.Image, &product.Currency, &product.IsActive,
		&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying product: %w", err)
	}

	sizes, err := r.listSizes(dbCtx, product.ID)
	if err != nil {
		return nil, err
	}

	product.Sizes = sizes

	return product, nil
}

func (r *productRepository) listSizes(ctx context.Context, productID string) ([]models.Size, error) {
	query := `
		SELECT size, stock
		FROM product_sizes
		WHERE product_id = $1
		ORDER BY size
	`

	rows, err := r.DB.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("querying product sizes: %w", err)
	}

	defer rows.Close()

	var sizes []models.Size

	for rows.Next() {
		var size models.Size

		if err := rows.Scan(&size.Label, &size.Stock); err != nil {
			return nil, fmt.Errorf("scanning size row: %w", err)
		}

		sizes = append(sizes, size)
	}

	return sizes, rows.Err()
}
