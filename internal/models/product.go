package models

import "time"

// Size is one stockable variation of a product. Stock is advisory for
// display purposes; the authoritative decrement happens during order capture.
type Size struct {
	Label string `json:"size"`
	Stock int    `json:"stock"`
}

type Product struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Details     string     `json:"details,omitempty"`
	Price       int64      `json:"price"`
	SalePrice   *int64     `json:"sale_price,omitempty"`
	SaleEndDate *time.Time `json:"sale_end_date,omitempty"`
	Image       string     `json:"image,omitempty"`
	Currency    string     `json:"currency"`
	IsActive    bool       `json:"is_active"`
	Sizes       []Size     `json:"sizes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Snapshot captures the fields a cart line needs to re-price itself later.
func (p *Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		SalePrice:   p.SalePrice,
		SaleEndDate: p.SaleEndDate,
		Currency:    p.Currency,
		Image:       p.Image,
	}
}

type StoreSettings struct {
	IsStoreOpen bool      `json:"is_store_open"`
	UpdatedAt   time.Time `json:"updated_at"`
}
