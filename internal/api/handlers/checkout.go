package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gunungclimbing/storefront/internal/api/middleware"
	"github.com/gunungclimbing/storefront/internal/errors"
	"github.com/gunungclimbing/storefront/internal/metrics"
	"github.com/gunungclimbing/storefront/internal/models"
	service "github.com/gunungclimbing/storefront/internal/services"
	"github.com/gunungclimbing/storefront/internal/shipping"
	"github.com/gunungclimbing/storefront/internal/utils"
	"github.com/gunungclimbing/storefront/internal/utils/response"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		validator:       validator.New(),
	}
}

func (h *CheckoutHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.CheckoutRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		result, err := h.checkoutService.CreateSession(r.Context(), &req)
		if err != nil {
			metrics.ObserveCheckout("error")
			logger.Error("Checkout failed", "error", err.Error())
			response.Error(w, err)

			return
		}

		metrics.ObserveCheckout("created")
		logger.Info("Checkout session created",
			"sessionId", result.SessionID, "amount", result.Amount)
		response.Success(w, http.StatusOK, result)
	}
}

// ShippingRates answers GET /shipping/rates?state=. An unknown state is a
// validation error so the client can surface it before checkout.
func (h *CheckoutHandler) ShippingRates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := r.URL.Query().Get("state")
		if state == "" {
			response.Error(w, errors.BadRequestError("Query parameter 'state' is required"))

			return
		}

		if !shipping.IsValidState(state) {
			response.Error(w, errors.ValidationError("Please enter a valid Malaysian state"))

			return
		}

		response.Success(w, http.StatusOK, shipping.RatesFor(state))
	}
}
