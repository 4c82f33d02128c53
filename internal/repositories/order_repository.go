package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/gunungclimbing/storefront/internal/models"
	"github.com/gunungclimbing/storefront/internal/utils"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	CreateOrderItem(ctx context.Context, item *models.OrderItem) error
	DecrementStock(ctx context.Context, productID, size string, quantity int) error
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var addressJSON []byte

	if order.ShippingAddress != nil {
		var err error

		addressJSON, err = json.Marshal(order.ShippingAddress)
		if err != nil {
			return fmt.Errorf("failed to marshal shipping address: %w", err)
		}
	}

	query := `
		INSERT INTO orders (id, stripe_session_id, stripe_payment_intent_id, customer_email,
		                    customer_name, shipping_address, total_amount, currency, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, order.ID, order.StripeSessionID,
		order.StripePaymentIntentID, order.CustomerEmail, order.CustomerName,
		addressJSON, order.TotalAmount, order.Currency, order.Status).
		Scan(&order.CreatedAt, &order.UpdatedAt)
}

func (r *orderRepository) CreateOrderItem(ctx context.Context, item *models.OrderItem) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO order_items (id, order_id, product_id, product_name, size, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	return r.DB.QueryRowContext(dbCtx, query, item.ID, item.OrderID, item.ProductID,
		item.ProductName, item.Size, item.Quantity, item.UnitPrice).
		Scan(&item.CreatedAt)
}

// DecrementStock lowers the sized stock count, flooring at zero. Stock is
// advisory, so a decrement past zero is not an error.
func (r *orderRepository) DecrementStock(ctx context.Context, productID, size string, quantity int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE product_sizes
		SET stock = GREATEST(stock - $3, 0), updated_at = NOW()
		WHERE product_id = $1 AND size = $2
	`

	result, err := r.DB.ExecContext(dbCtx, query, productID, size, quantity)
	if err != nil {
		return fmt.Errorf("failed to decrement stock for %s/%s: %w", productID, size, err)
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
