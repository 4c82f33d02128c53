package handlers

import (
	"io"
	"net/http"

	"github.com/gunungclimbing/storefront/internal/api/middleware"
	"github.com/gunungclimbing/storefront/internal/errors"
	service "github.com/gunungclimbing/storefront/internal/services"
	"github.com/gunungclimbing/storefront/internal/utils/response"
)

type WebhookHandler struct {
	orderService service.OrderService
}

func NewWebhookHandler(orderService service.OrderService) *WebhookHandler {
	return &WebhookHandler{orderService: orderService}
}

func (h *WebhookHandler) HandleStripeWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		payload, err := io.ReadAll(r.Body)
		if err != nil {
			response.Error(w, errors.BadRequestError("Failed to read webhook payload").WithError(err))

			return
		}

		defer r.Body.Close()

		signature := r.Header.Get("Stripe-Signature")
		if signature == "" {
			response.Error(w, errors.BadRequestError("Missing Stripe-Signature header"))

			return
		}

		if err := h.orderService.HandleWebhookEvent(r.Context(), payload, signature); err != nil {
			logger.Error("Webhook processing failed", "error", err.Error())
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]bool{"received": true})
	}
}
