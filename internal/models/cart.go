package models

import (
	"time"

	"github.com/gunungclimbing/storefront/internal/pricing"
)

// ProductSnapshot is the slice of product state a cart line carries so the
// subtotal can be recomputed against the line's own sale window at read time.
type ProductSnapshot struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Price       int64      `json:"price"`
	SalePrice   *int64     `json:"sale_price,omitempty"`
	SaleEndDate *time.Time `json:"sale_end_date,omitempty"`
	Currency    string     `json:"currency"`
	Image       string     `json:"image,omitempty"`
}

// CartLine is uniquely keyed by (product id, size label); adding the same
// key again increments Quantity instead of appending a duplicate line.
type CartLine struct {
	Product  ProductSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
	Size     string          `json:"size,omitempty"`
}

func (l *CartLine) Matches(productID, size string) bool {
	return l.Product.ID == productID && l.Size == size
}

type Cart struct {
	ID        string     `json:"id"`
	Lines     []CartLine `json:"lines"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Subtotal sums effective line prices, evaluating each line's sale window
// at the supplied time.
func (c *Cart) Subtotal(now time.Time) int64 {
	var subtotal int64

	for _, line := range c.Lines {
		quote := pricing.Resolve(line.Product.Price, line.Product.SalePrice, line.Product.SaleEndDate, now)
		subtotal += quote.EffectivePrice * int64(line.Quantity)
	}

	return subtotal
}

func (c *Cart) TotalItems() int {
	var count int

	for _, line := range c.Lines {
		count += line.Quantity
	}

	return count
}

// Quantity reports the quantity of the matching line, or 0 when absent.
func (c *Cart) Quantity(productID, size string) int {
	for _, line := range c.Lines {
		if line.Matches(productID, size) {
			return line.Quantity
		}
	}

	return 0
}

type CartTotals struct {
	Subtotal   int64 `json:"subtotal"`
	TotalItems int   `json:"total_items"`
}

type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
	Size      string `json:"size,omitempty"`
}

type UpdateQuantityRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"min=0"`
	Size      string `json:"size,omitempty"`
}

type RemoveItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size,omitempty"`
}
