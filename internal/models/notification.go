package models

type OrderNotificationItem struct {
	Name      string  `json:"name"`
	Size      *string `json:"size,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice int64   `json:"unit_price"`
}

// OrderNotification is the payload for the operator email sent after a
// successful checkout.
type OrderNotification struct {
	SessionID       string                  `json:"session_id"`
	OrderID         string                  `json:"order_id,omitempty"`
	CustomerEmail   string                  `json:"customer_email"`
	CustomerName    string                  `json:"customer_name,omitempty"`
	TotalAmount     int64                   `json:"total_amount"`
	Currency        string                  `json:"currency"`
	Items           []OrderNotificationItem `json:"items"`
	ShippingAddress *ShippingAddress        `json:"shipping_address,omitempty"`
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message" validate:"required"`
}
