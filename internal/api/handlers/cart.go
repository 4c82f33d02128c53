package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gunungclimbing/storefront/internal/api/middleware"
	"github.com/gunungclimbing/storefront/internal/errors"
	"github.com/gunungclimbing/storefront/internal/models"
	service "github.com/gunungclimbing/storefront/internal/services"
	"github.com/gunungclimbing/storefront/internal/utils"
	"github.com/gunungclimbing/storefront/internal/utils/response"
)

type CartHandler struct {
	cartService service.CartService
	catalog     service.CatalogService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService, catalog service.CatalogService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		catalog:     catalog,
		validator:   validator.New(),
	}
}

type cartView struct {
	*models.Cart
	models.CartTotals
}

func (h *CartHandler) respondWithCart(w http.ResponseWriter, status int, cart *models.Cart) {
	response.Success(w, status, cartView{
		Cart:       cart,
		CartTotals: h.cartService.Totals(cart),
	})
}

func cartID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if id == "" {
		response.Error(w, errors.BadRequestError("Cart ID is required"))

		return "", false
	}

	return id, true
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := cartID(w, r)
		if !ok {
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), id)
		if err != nil {
			response.Error(w, err)

			return
		}

		h.respondWithCart(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, ok := cartID(w, r)
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		// The snapshot comes from the catalog, never from the client.
		product, err := h.catalog.GetProduct(r.Context(), req.ProductID)
		if err != nil {
			response.Error(w, err)

			return
		}

		cart, err := h.cartService.AddItem(r.Context(), id, product, req.Quantity, req.Size)
		if err != nil {
			logger.Error("Failed to add cart item", "error", err.Error())
			response.Error(w, err)

			return
		}

		logger.Info("Cart item added", "cartId", id, "productId", req.ProductID)
		h.respondWithCart(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := cartID(w, r)
		if !ok {
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.UpdateQuantity(r.Context(), id, req.ProductID, req.Quantity, req.Size)
		if err != nil {
			response.Error(w, err)

			return
		}

		h.respondWithCart(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := cartID(w, r)
		if !ok {
			return
		}

		var req models.RemoveItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), id, req.ProductID, req.Size)
		if err != nil {
			response.Error(w, err)

			return
		}

		h.respondWithCart(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := cartID(w, r)
		if !ok {
			return
		}

		if err := h.cartService.Clear(r.Context(), id); err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]string{"status": "cleared"})
	}
}
