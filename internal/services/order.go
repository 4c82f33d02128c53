package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	appErrors "github.com/gunungclimbing/storefront/internal/errors"
	"github.com/gunungclimbing/storefront/internal/models"
	repository "github.com/gunungclimbing/storefront/internal/repositories"
	stripeclient "github.com/gunungclimbing/storefront/pkg/stripe"
	"github.com/stripe/stripe-go/v81"
)

type OrderService interface {
	HandleWebhookEvent(ctx context.Context, payload []byte, signature string) error
}

type orderService struct {
	orders   repository.OrderRepository
	stripe   stripeclient.Client
	notifier NotificationService
}

// NewOrderService builds the webhook-driven order capture path. The order
// repository may be nil (database not configured); orders then degrade to
// email-only notification.
func NewOrderService(orders repository.OrderRepository, stripeClient stripeclient.Client, notifier NotificationService) OrderService {
	return &orderService{orders: orders, stripe: stripeClient, notifier: notifier}
}

func (s *orderService) HandleWebhookEvent(ctx context.Context, payload []byte, signature string) error {
	event, err := s.stripe.VerifyWebhookSignature(payload, signature)
	if err != nil {
		return appErrors.BadRequestError("Webhook signature verification failed").WithError(err)
	}

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession

		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return appErrors.BadRequestError("Malformed checkout session payload").WithError(err)
		}

		return s.handleCheckoutComplete(ctx, &session)

	case "payment_intent.succeeded":
		slog.Info("Payment succeeded", slog.String("eventId", event.ID))

		return nil

	default:
		slog.Info("Unhandled webhook event type", slog.String("type", string(event.Type)))

		return nil
	}
}

func (s *orderService) handleCheckoutComplete(ctx context.Context, session *stripe.CheckoutSession) error {
	address := addressFromMetadata(session)

	notification := &models.OrderNotification{
		SessionID:       session.ID,
		CustomerEmail:   customerEmail(session),
		CustomerName:    customerName(session),
		TotalAmount:     session.AmountTotal,
		Currency:        string(session.Currency),
		ShippingAddress: address,
	}

	if s.orders == nil {
		slog.Error("Order store not configured, falling back to notification only",
			slog.String("sessionId", session.ID))

		s.notify(ctx, notification)

		return nil
	}

	lineItems, err := s.stripe.ListLineItems(session.ID)
	if err != nil {
		return appErrors.ThirdPartyError("Failed to list session line items").WithError(err)
	}

	order := &models.Order{
		ID:              uuid.New(),
		StripeSessionID: session.ID,
		CustomerEmail:   notification.CustomerEmail,
		ShippingAddress: address,
		TotalAmount:     session.AmountTotal,
		Currency:        string(session.Currency),
		Status:          models.OrderStatusPaid,
	}

	if session.PaymentIntent != nil {
		order.StripePaymentIntentID = &session.PaymentIntent.ID
	}

	if notification.CustomerName != "" {
		name := notification.CustomerName
		order.CustomerName = &name
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		// Returning an error makes the payment provider retry delivery.
		return appErrors.DatabaseError("Failed to create order").WithError(err)
	}

	notification.OrderID = order.ID.String()

	for _, item := range lineItems {
		productID, size := lineItemProduct(item)

		orderItem := &models.OrderItem{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductID:   productID,
			ProductName: item.Description,
			Size:        size,
			Quantity:    int(item.Quantity),
			UnitPrice:   lineItemUnitPrice(item),
		}

		if err := s.orders.CreateOrderItem(ctx, orderItem); err != nil {
			slog.Error("Failed to create order item",
				slog.String("orderId", order.ID.String()),
				slog.String("productId", productID),
				slog.String("error", err.Error()))
		}

		if size != nil && productID != "" {
			if err := s.orders.DecrementStock(ctx, productID, *size, int(item.Quantity)); err != nil {
				slog.Error("Failed to decrease stock",
					slog.String("productId", productID),
					slog.String("size", *size),
					slog.String("error", err.Error()))
			}
		}

		notification.Items = append(notification.Items, models.OrderNotificationItem{
			Name:      item.Description,
			Size:      size,
			Quantity:  int(item.Quantity),
			UnitPrice: orderItem.UnitPrice,
		})
	}

	s.notify(ctx, notification)

	slog.Info("Order processed successfully", slog.String("orderId", order.ID.String()))

	return nil
}

// notify sends the operator email; a delivery failure is logged, never
// escalated, so the webhook still acks.
func (s *orderService) notify(ctx context.Context, notification *models.OrderNotification) {
	if s.notifier == nil {
		return
	}

	if err := s.notifier.SendOrderNotification(ctx, notification); err != nil {
		slog.Error("Failed to send order notification",
			slog.String("sessionId", notification.SessionID),
			slog.String("error", err.Error()))
	}
}

// addressFromMetadata rebuilds the shipping address collected on the
// checkout page and carried through session metadata.
func addressFromMetadata(session *stripe.CheckoutSession) *models.ShippingAddress {
	meta := session.Metadata
	if meta == nil || meta["shipping_line1"] == "" {
		return nil
	}

	return &models.ShippingAddress{
		Name:       meta["shipping_name"],
		Phone:      meta["shipping_phone"],
		Line1:      meta["shipping_line1"],
		Line2:      meta["shipping_line2"],
		City:       meta["shipping_city"],
		State:      meta["shipping_state"],
		PostalCode: meta["shipping_postal_code"],
	}
}

func customerEmail(session *stripe.CheckoutSession) string {
	if session.CustomerDetails != nil && session.CustomerDetails.Email != "" {
		return session.CustomerDetails.Email
	}

	return "unknown"
}

func customerName(session *stripe.CheckoutSession) string {
	if session.Metadata != nil && session.Metadata["shipping_name"] != "" {
		return session.Metadata["shipping_name"]
	}

	if session.CustomerDetails != nil {
		return session.CustomerDetails.Name
	}

	return ""
}

func lineItemProduct(item *stripe.LineItem) (string, *string) {
	if item.Price == nil || item.Price.Product == nil {
		return "", nil
	}

	product := item.Price.Product

	productID := product.ID
	if id, ok := product.Metadata["product_id"]; ok && id != "" {
		productID = id
	}

	if size, ok := product.Metadata["size"]; ok && size != "" {
		return productID, &size
	}

	return productID, nil
}

func lineItemUnitPrice(item *stripe.LineItem) int64 {
	if item.Price == nil {
		return 0
	}

	return item.Price.UnitAmount
}
