package models

type AdminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type UpdatePriceRequest struct {
	Price int64 `json:"price" validate:"required,gt=0"`
}

// A nil SalePrice clears the sale.
type UpdateSalePriceRequest struct {
	SalePrice *int64 `json:"sale_price"`
}

type UpdateStockRequest struct {
	Stock int `json:"stock" validate:"min=0"`
}

type UpdateVisibilityRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type UpdateStoreStatusRequest struct {
	IsOpen *bool `json:"is_open" validate:"required"`
}
