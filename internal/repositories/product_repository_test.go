package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	repository "github.com/gunungclimbing/storefront/internal/repositories"
	"github.com/stretchr/testify/assert"
)

var productColumns = []string{
	"id", "name", "description", "details", "price", "sale_price", "sale_end_date",
	"image", "currency", "is_active", "created_at", "updated_at",
}

func TestProductRepository_GetProductByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("Success - Loads Product With Sizes", func(t *testing.T) {
		// Arrange
		db, mockDB, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		repo := repository.NewProductRepo(db)

		mockDB.ExpectQuery(`SELECT (.+) FROM products`).
			WithArgs("jett-qc").
			WillReturnRows(sqlmock.NewRows(productColumns).
				AddRow("jett-qc", "Jett QC", "Climbing shoe", "Details", int64(52999),
					nil, nil, "/images/products/jett-qc.jpg", "myr", true, now, now))

		mockDB.ExpectQuery(`SELECT size, stock FROM product_sizes`).
			WithArgs("jett-qc").
			WillReturnRows(sqlmock.NewRows([]string{"size", "stock"}).
				AddRow("UK 7", 10).
				AddRow("UK 8", 4))

		// Act
		product, err := repo.GetProductByID(ctx, "jett-qc")

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, int64(52999), product.Price)
		assert.Nil(t, product.SalePrice)
		assert.Len(t, product.Sizes, 2)
		assert.Equal(t, "UK 7", product.Sizes[0].Label)
		assert.Equal(t, 10, product.Sizes[0].Stock)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Success - Scans Sale Price Columns", func(t *testing.T) {
		// Arrange
		db, mockDB, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		repo := repository.NewProductRepo(db)
		saleEnd := now.Add(72 * time.Hour)

		mockDB.ExpectQuery(`SELECT (.+) FROM products`).
			WithArgs("jett-qc").
			WillReturnRows(sqlmock.NewRows(productColumns).
				AddRow("jett-qc", "Jett QC", "Climbing shoe", "Details", int64(52999),
					int64(45999), saleEnd, "/images/products/jett-qc.jpg", "myr", true, now, now))

		mockDB.ExpectQuery(`SELECT size, stock FROM product_sizes`).
			WithArgs("jett-qc").
			WillReturnRows(sqlmock.NewRows([]string{"size", "stock"}))

		// Act
		product, err := repo.GetProductByID(ctx, "jett-qc")

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, product.SalePrice)
		assert.Equal(t, int64(45999), *product.SalePrice)
		assert.NotNil(t, product.SaleEndDate)
	})

	t.Run("Failure - Missing Product Returns ErrNoRows", func(t *testing.T) {
		// Arrange
		db, mockDB, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		repo := repository.NewProductRepo(db)

		mockDB.ExpectQuery(`SELECT (.+) FROM products`).
			WithArgs("ghost-product").
			WillReturnError(sql.ErrNoRows)

		// Act
		product, err := repo.GetProductByID(ctx, "ghost-product")

		// Assert
		assert.Nil(t, product)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestProductRepository_ListProducts(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("Success - Lists Active Products", func(t *testing.T) {
		// Arrange
		db, mockDB, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		repo := repository.NewProductRepo(db)

		mockDB.ExpectQuery(`SELECT (.+) FROM products WHERE is_active = TRUE`).
			WillReturnRows(sqlmock.NewRows(productColumns).
				AddRow("jett-qc", "Jett QC", "Climbing shoe", "Details", int64(52999),
					nil, nil, "/images/products/jett-qc.jpg", "myr", true, now, now).
				AddRow("gunung-chalk-bag", "Gunung Chalk Bag", "Chalk bag", "Details", int64(8900),
					nil, nil, "/images/products/chalk-bag.jpg", "myr", true, now, now))

		mockDB.ExpectQuery(`SELECT size, stock FROM product_sizes`).
			WithArgs("jett-qc").
			WillReturnRows(sqlmock.NewRows([]string{"size", "stock"}).AddRow("UK 7", 10))

		mockDB.ExpectQuery(`SELECT size, stock FROM product_sizes`).
			WithArgs("gunung-chalk-bag").
			WillReturnRows(sqlmock.NewRows([]string{"size", "stock"}))

		// Act
		products, err := repo.ListProducts(ctx, true)

		// Assert
		assert.NoError(t, err)
		assert.Len(t, products, 2)
		assert.Len(t, products[0].Sizes, 1)
		assert.Empty(t, products[1].Sizes)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})
}
