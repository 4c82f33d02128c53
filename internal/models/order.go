package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ShippingAddress is collected on the checkout page and carried through
// the payment session metadata.
type ShippingAddress struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	Line1      string `json:"line1" validate:"required"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
}

type OrderItem struct {
	ID          uuid.UUID `json:"id"`
	OrderID     uuid.UUID `json:"order_id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Size        *string   `json:"size,omitempty"`
	Quantity    int       `json:"quantity"`
	UnitPrice   int64     `json:"unit_price"`
	CreatedAt   time.Time `json:"created_at"`
}

type Order struct {
	ID                    uuid.UUID        `json:"id"`
	StripeSessionID       string           `json:"stripe_session_id"`
	StripePaymentIntentID *string          `json:"stripe_payment_intent_id,omitempty"`
	CustomerEmail         string           `json:"customer_email"`
	CustomerName          *string          `json:"customer_name,omitempty"`
	ShippingAddress       *ShippingAddress `json:"shipping_address,omitempty"`
	TotalAmount           int64            `json:"total_amount"`
	Currency              string           `json:"currency"`
	Status                OrderStatus      `json:"status"`
	Items                 []OrderItem      `json:"items,omitempty"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`
}

type CheckoutItem struct {
	ProductID string `json:"id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	Size      string `json:"size,omitempty"`
}

type CheckoutRequest struct {
	Items           []CheckoutItem  `json:"items" validate:"required,min=1,dive"`
	ShippingAddress ShippingAddress `json:"shipping_address" validate:"required"`
	ShippingRateID  string          `json:"shipping_rate_id" validate:"required"`
	DiscountCode    string          `json:"discount_code,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

type CheckoutResponse struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
	Amount    int64  `json:"amount"`
}
