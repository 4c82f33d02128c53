package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	appErrors "github.com/gunungclimbing/storefront/internal/errors"
	"github.com/gunungclimbing/storefront/internal/models"
	"github.com/gunungclimbing/storefront/internal/pricing"
	"github.com/gunungclimbing/storefront/pkg/sendgrid"
	"github.com/microcosm-cc/bluemonday"
)

type NotificationService interface {
	SendOrderNotification(ctx context.Context, data *models.OrderNotification) error
	SendContactMessage(ctx context.Context, req *models.ContactRequest) error
}

type notificationService struct {
	email     sendgrid.EmailService
	recipient string
	sanitizer *bluemonday.Policy
}

// NewNotificationService sends operator emails. recipient is the shop
// inbox that receives order and contact notifications.
func NewNotificationService(email sendgrid.EmailService, recipient string) NotificationService {
	return &notificationService{
		email:     email,
		recipient: recipient,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *notificationService) SendOrderNotification(ctx context.Context, data *models.OrderNotification) error {
	msg := &sendgrid.Message{
		To:        s.recipient,
		Subject:   fmt.Sprintf("New order %s", orderRef(data)),
		PlainText: orderPlainText(data),
		HTML:      orderHTML(data),
	}

	if err := s.email.Send(ctx, msg); err != nil {
		return appErrors.ThirdPartyError("Failed to send order notification").WithError(err)
	}

	return nil
}

// SendContactMessage forwards a contact-form submission. The message body
// is sanitized before it is embedded in the email.
func (s *notificationService) SendContactMessage(ctx context.Context, req *models.ContactRequest) error {
	subject := req.Subject
	if subject == "" {
		subject = "Contact form message"
	}

	cleanMessage := s.sanitizer.Sanitize(req.Message)

	plain := fmt.Sprintf("From: %s <%s>\n\n%s", req.Name, req.Email, cleanMessage)

	htmlBody := fmt.Sprintf(
		"<p><strong>From:</strong> %s &lt;%s&gt;</p><p>%s</p>",
		html.EscapeString(req.Name),
		html.EscapeString(req.Email),
		strings.ReplaceAll(html.EscapeString(cleanMessage), "\n", "<br>"),
	)

	msg := &sendgrid.Message{
		To:        s.recipient,
		Subject:   fmt.Sprintf("[Contact] %s", subject),
		PlainText: plain,
		HTML:      htmlBody,
	}

	if err := s.email.Send(ctx, msg); err != nil {
		return appErrors.ThirdPartyError("Failed to send contact message").WithError(err)
	}

	return nil
}

func orderRef(data *models.OrderNotification) string {
	if data.OrderID != "" {
		return data.OrderID
	}

	return data.SessionID
}

func formatAddress(address *models.ShippingAddress) string {
	if address == nil {
		return "Not provided"
	}

	parts := []string{}

	for _, part := range []string{address.Line1, address.Line2, address.City, address.State, address.PostalCode} {
		if part != "" {
			parts = append(parts, part)
		}
	}

	if len(parts) == 0 {
		return "Not provided"
	}

	return strings.Join(parts, ", ")
}

func orderPlainText(data *models.OrderNotification) string {
	var b strings.Builder

	fmt.Fprintf(&b, "New order received.\n\n")
	fmt.Fprintf(&b, "Order: %s\n", orderRef(data))
	fmt.Fprintf(&b, "Customer: %s <%s>\n", data.CustomerName, data.CustomerEmail)
	fmt.Fprintf(&b, "Total: %s\n", pricing.FormatPrice(data.TotalAmount, data.Currency))
	fmt.Fprintf(&b, "Shipping address: %s\n\n", formatAddress(data.ShippingAddress))

	for _, item := range data.Items {
		size := ""
		if item.Size != nil {
			size = fmt.Sprintf(" (%s)", *item.Size)
		}

		fmt.Fprintf(&b, "- %s%s x%d @ %s\n",
			item.Name, size, item.Quantity, pricing.FormatPrice(item.UnitPrice, data.Currency))
	}

	return b.String()
}

func orderHTML(data *models.OrderNotification) string {
	var b strings.Builder

	b.WriteString("<h2>New order received</h2>")
	fmt.Fprintf(&b, "<p><strong>Order:</strong> %s</p>", html.EscapeString(orderRef(data)))
	fmt.Fprintf(&b, "<p><strong>Customer:</strong> %s &lt;%s&gt;</p>",
		html.EscapeString(data.CustomerName), html.EscapeString(data.CustomerEmail))
	fmt.Fprintf(&b, "<p><strong>Shipping address:</strong> %s</p>",
		html.EscapeString(formatAddress(data.ShippingAddress)))

	b.WriteString("<table border=\"1\" cellpadding=\"6\" cellspacing=\"0\">")
	b.WriteString("<tr><th>Item</th><th>Size</th><th>Qty</th><th>Unit price</th></tr>")

	for _, item := range data.Items {
		size := "-"
		if item.Size != nil {
			size = *item.Size
		}

		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%d</td><td>%s</td></tr>",
			html.EscapeString(item.Name), html.EscapeString(size), item.Quantity,
			pricing.FormatPrice(item.UnitPrice, data.Currency))
	}

	b.WriteString("</table>")
	fmt.Fprintf(&b, "<p><strong>Total: %s</strong></p>",
		pricing.FormatPrice(data.TotalAmount, data.Currency))

	return b.String()
}
