package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gunungclimbing/storefront/internal/api/middleware"
	"github.com/gunungclimbing/storefront/internal/models"
	service "github.com/gunungclimbing/storefront/internal/services"
	"github.com/gunungclimbing/storefront/internal/utils"
	"github.com/gunungclimbing/storefront/internal/utils/response"
)

type ContactHandler struct {
	notifications service.NotificationService
	validator     *validator.Validate
}

func NewContactHandler(notifications service.NotificationService) *ContactHandler {
	return &ContactHandler{
		notifications: notifications,
		validator:     validator.New(),
	}
}

func (h *ContactHandler) Submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.ContactRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.notifications.SendContactMessage(r.Context(), &req); err != nil {
			logger.Error("Failed to forward contact message", "error", err.Error())
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]string{"status": "sent"})
	}
}
