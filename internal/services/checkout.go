package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gunungclimbing/storefront/internal/config"
	appErrors "github.com/gunungclimbing/storefront/internal/errors"
	"github.com/gunungclimbing/storefront/internal/models"
	"github.com/gunungclimbing/storefront/internal/pricing"
	repository "github.com/gunungclimbing/storefront/internal/repositories"
	"github.com/gunungclimbing/storefront/internal/shipping"
	stripeclient "github.com/gunungclimbing/storefront/pkg/stripe"
	"github.com/stripe/stripe-go/v81"
)

type CheckoutService interface {
	CreateSession(ctx context.Context, req *models.CheckoutRequest) (*models.CheckoutResponse, error)
}

type checkoutService struct {
	catalog  CatalogService
	settings repository.SettingsRepository
	stripe   stripeclient.Client
	cfg      *config.Stripe
	now      func() time.Time
}

func NewCheckoutService(catalog CatalogService, settings repository.SettingsRepository, stripeClient stripeclient.Client, cfg *config.Stripe, now func() time.Time) CheckoutService {
	if now == nil {
		now = time.Now
	}

	return &checkoutService{
		catalog:  catalog,
		settings: settings,
		stripe:   stripeClient,
		cfg:      cfg,
		now:      now,
	}
}

// CreateSession re-prices every requested line from the catalog, validates
// the shipping destination and rate, and opens a hosted payment session.
// Client-supplied prices are never trusted.
func (s *checkoutService) CreateSession(ctx context.Context, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {
	if len(req.Items) == 0 {
		return nil, appErrors.ValidationError("No items provided")
	}

	if err := s.ensureStoreOpen(ctx); err != nil {
		return nil, err
	}

	state := req.ShippingAddress.State
	if !shipping.IsValidState(state) {
		return nil, appErrors.ValidationError("Please enter a valid Malaysian state")
	}

	rate := shipping.RateByID(req.ShippingRateID, state)
	if rate == nil {
		return nil, appErrors.ValidationError("Selected shipping method is not available for this state")
	}

	now := s.now()

	var (
		lineItems []*stripe.CheckoutSessionLineItemParams
		total     int64
		currency  string
	)

	for _, item := range req.Items {
		product, err := s.catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			if appErr, ok := appErrors.IsAppError(err); ok && appErr.Code == appErrors.ErrCodeNotFound {
				return nil, appErrors.ValidationError(fmt.Sprintf("Product %q not found", item.ProductID))
			}

			return nil, err
		}

		if !product.IsActive {
			return nil, appErrors.ValidationError(fmt.Sprintf("Product %q is no longer available", item.ProductID))
		}

		quote := pricing.Resolve(product.Price, product.SalePrice, product.SaleEndDate, now)
		currency = product.Currency

		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name:        stripe.String(product.Name),
			Description: stripe.String(product.Description),
			Metadata: map[string]string{
				"product_id": product.ID,
			},
		}
		if item.Size != "" {
			productData.Metadata["size"] = item.Size
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(product.Currency),
				ProductData: productData,
				UnitAmount:  stripe.Int64(quote.EffectivePrice),
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})

		total += quote.EffectivePrice * int64(item.Quantity)
	}

	// Shipping rides along as one extra line item.
	lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
		PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency: stripe.String(currency),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name:        stripe.String(rate.Name),
				Description: stripe.String(fmt.Sprintf("%s (%s)", rate.Description, rate.EstimatedDays)),
			},
			UnitAmount: stripe.Int64(rate.Amount),
		},
		Quantity: stripe.Int64(1),
	})

	total += rate.Amount

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(s.cfg.SuccessURL),
		CancelURL:          stripe.String(s.cfg.CancelURL),
		CustomerEmail:      stripe.String(req.ShippingAddress.Email),
	}

	params.AddMetadata("shipping_name", req.ShippingAddress.Name)
	params.AddMetadata("shipping_phone", req.ShippingAddress.Phone)
	params.AddMetadata("shipping_line1", req.ShippingAddress.Line1)
	params.AddMetadata("shipping_line2", req.ShippingAddress.Line2)
	params.AddMetadata("shipping_city", req.ShippingAddress.City)
	params.AddMetadata("shipping_state", state)
	params.AddMetadata("shipping_postal_code", req.ShippingAddress.PostalCode)
	params.AddMetadata("shipping_rate_id", rate.ID)

	if req.Notes != "" {
		params.AddMetadata("notes", req.Notes)
	}

	session, err := s.stripe.CreateCheckoutSession(params)
	if err != nil {
		return nil, appErrors.ThirdPartyError("Failed to create payment session").WithError(err)
	}

	return &models.CheckoutResponse{
		SessionID: session.ID,
		URL:       session.URL,
		Amount:    total,
	}, nil
}

// ensureStoreOpen checks the store toggle. An unreadable settings row
// degrades to open so a settings outage never blocks checkout.
func (s *checkoutService) ensureStoreOpen(ctx context.Context) error {
	if s.settings == nil {
		return nil
	}

	settings, err := s.settings.GetStoreSettings(ctx)
	if err != nil {
		slog.Warn("Store settings unavailable, assuming open", slog.String("error", err.Error()))

		return nil
	}

	if !settings.IsStoreOpen {
		return appErrors.StoreClosedError()
	}

	return nil
}
