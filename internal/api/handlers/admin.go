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

type AdminHandler struct {
	adminService service.AdminService
	auth         *middleware.AdminAuth
	validator    *validator.Validate
}

func NewAdminHandler(adminService service.AdminService, auth *middleware.AdminAuth) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		auth:         auth,
		validator:    validator.New(),
	}
}

func (h *AdminHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.AdminLoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if !h.auth.VerifyPassword(req.Password) {
			logger.Warn("Admin login rejected")
			response.Error(w, errors.UnauthorizedError("Invalid password"))

			return
		}

		if err := h.auth.IssueSessionCookie(w); err != nil {
			logger.Error("Failed to issue admin session", "error", err.Error())
			response.Error(w, errors.InternalError("Failed to create session"))

			return
		}

		logger.Info("Admin logged in")
		response.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (h *AdminHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.auth.ClearSessionCookie(w)
		response.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (h *AdminHandler) UpdatePrice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := r.PathValue("id")

		var req models.UpdatePriceRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.adminService.UpdatePrice(r.Context(), productID, req.Price); err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}

func (h *AdminHandler) UpdateSalePrice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := r.PathValue("id")

		var req models.UpdateSalePriceRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, errors.BadRequestError("Invalid request body").WithError(err))

			return
		}

		if err := h.adminService.UpdateSalePrice(r.Context(), productID, req.SalePrice); err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}

func (h *AdminHandler) UpdateVisibility() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := r.PathValue("id")

		var req models.UpdateVisibilityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.adminService.SetProductActive(r.Context(), productID, *req.IsActive); err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}

func (h *AdminHandler) UpdateStock() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := r.PathValue("id")
		size := r.PathValue("size")

		var req models.UpdateStockRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.adminService.UpdateStock(r.Context(), productID, size, req.Stock); err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}

func (h *AdminHandler) DeleteSize() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := r.PathValue("id")
		size := r.PathValue("size")

		if err := h.adminService.DeleteSize(r.Context(), productID, size); err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func (h *AdminHandler) UpdateStoreStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.UpdateStoreStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.adminService.SetStoreOpen(r.Context(), *req.IsOpen); err != nil {
			response.Error(w, err)

			return
		}

		logger.Info("Store status updated", "open", *req.IsOpen)
		response.Success(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}

func (h *AdminHandler) StoreStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := h.adminService.StoreSettings(r.Context())
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, settings)
	}
}
