package handlers

import (
	"net/http"
	"time"

	"github.com/gunungclimbing/storefront/internal/api/middleware"
	"github.com/gunungclimbing/storefront/internal/models"
	"github.com/gunungclimbing/storefront/internal/pricing"
	service "github.com/gunungclimbing/storefront/internal/services"
	"github.com/gunungclimbing/storefront/internal/utils/response"
)

type ProductHandler struct {
	catalog service.CatalogService
	now     func() time.Time
}

func NewProductHandler(catalog service.CatalogService, now func() time.Time) *ProductHandler {
	if now == nil {
		now = time.Now
	}

	return &ProductHandler{catalog: catalog, now: now}
}

type productView struct {
	*models.Product
	Quote pricing.Quote `json:"quote"`
}

func (h *ProductHandler) view(product *models.Product) productView {
	return productView{
		Product: product,
		Quote:   pricing.Resolve(product.Price, product.SalePrice, product.SaleEndDate, h.now()),
	}
}

func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		products, err := h.catalog.ListProducts(r.Context())
		if err != nil {
			logger.Error("Failed to fetch products", "error", err.Error())
			response.Error(w, err)

			return
		}

		views := make([]productView, 0, len(products))
		for _, product := range products {
			views = append(views, h.view(product))
		}

		response.Success(w, http.StatusOK, views)
	}
}

func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		product, err := h.catalog.GetProduct(r.Context(), id)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, h.view(product))
	}
}

type feedEntry struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Price        string `json:"price"`
	SalePrice    string `json:"sale_price,omitempty"`
	Availability string `json:"availability"`
	ImageLink    string `json:"image_link,omitempty"`
}

// ProductFeed renders a merchant-feed style listing of active products with
// formatted display prices.
func (h *ProductHandler) ProductFeed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := h.catalog.ListProducts(r.Context())
		if err != nil {
			response.Error(w, err)

			return
		}

		now := h.now()
		entries := make([]feedEntry, 0, len(products))

		for _, product := range products {
			quote := pricing.Resolve(product.Price, product.SalePrice, product.SaleEndDate, now)

			entry := feedEntry{
				ID:           product.ID,
				Title:        product.Name,
				Description:  product.Description,
				Price:        pricing.FormatPrice(product.Price, product.Currency),
				Availability: "in_stock",
				ImageLink:    product.Image,
			}

			if quote.IsDiscounted {
				entry.SalePrice = pricing.FormatPrice(quote.EffectivePrice, product.Currency)
			}

			entries = append(entries, entry)
		}

		response.WriteJson(w, http.StatusOK, entries)
	}
}
