package service

import (
	"context"
	"log/slog"
	"time"

	appErrors "github.com/gunungclimbing/storefront/internal/errors"
	"github.com/gunungclimbing/storefront/internal/models"
	repository "github.com/gunungclimbing/storefront/internal/repositories"
)

type CartService interface {
	GetCart(ctx context.Context, cartID string) (*models.Cart, error)
	AddItem(ctx context.Context, cartID string, product *models.Product, quantity int, size string) (*models.Cart, error)
	RemoveItem(ctx context.Context, cartID, productID, size string) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, cartID, productID string, quantity int, size string) (*models.Cart, error)
	Clear(ctx context.Context, cartID string) error
	Totals(cart *models.Cart) models.CartTotals
}

type cartService struct {
	repo repository.CartRepository
	now  func() time.Time
}

// NewCartService wires the cart store to its persistence port. The clock is
// injected so sale-window evaluation stays deterministic under test; nil
// defaults to time.Now.
func NewCartService(repo repository.CartRepository, now func() time.Time) CartService {
	if now == nil {
		now = time.Now
	}

	return &cartService{repo: repo, now: now}
}

// load returns the stored cart or a fresh empty one. A failing persistence
// layer degrades to an empty cart rather than surfacing an error.
func (s *cartService) load(ctx context.Context, cartID string) *models.Cart {
	cart, err := s.repo.GetCart(ctx, cartID)
	if err != nil {
		slog.Warn("Failed to load cart, starting from empty",
			slog.String("cartId", cartID), slog.String("error", err.Error()))
	}

	if cart == nil {
		now := s.now()
		cart = &models.Cart{ID: cartID, CreatedAt: now, UpdatedAt: now}
	}

	return cart
}

func (s *cartService) save(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	cart.UpdatedAt = s.now()

	if err := s.repo.SaveCart(ctx, cart); err != nil {
		return nil, appErrors.DatabaseError("Failed to save cart").WithError(err)
	}

	return cart, nil
}

func (s *cartService) GetCart(ctx context.Context, cartID string) (*models.Cart, error) {
	return s.load(ctx, cartID), nil
}

func (s *cartService) AddItem(ctx context.Context, cartID string, product *models.Product, quantity int, size string) (*models.Cart, error) {
	if quantity < 1 {
		return nil, appErrors.ValidationError("Quantity must be at least 1")
	}

	cart := s.load(ctx, cartID)

	merged := false

	for i := range cart.Lines {
		if cart.Lines[i].Matches(product.ID, size) {
			cart.Lines[i].Quantity += quantity
			merged = true

			break
		}
	}

	if !merged {
		cart.Lines = append(cart.Lines, models.CartLine{
			Product:  product.Snapshot(),
			Quantity: quantity,
			Size:     size,
		})
	}

	return s.save(ctx, cart)
}

// RemoveItem drops the matching line. Removing an absent line is a no-op,
// not an error.
func (s *cartService) RemoveItem(ctx context.Context, cartID, productID, size string) (*models.Cart, error) {
	cart := s.load(ctx, cartID)

	kept := cart.Lines[:0]

	for _, line := range cart.Lines {
		if !line.Matches(productID, size) {
			kept = append(kept, line)
		}
	}

	if len(kept) == len(cart.Lines) {
		return cart, nil
	}

	cart.Lines = kept

	return s.save(ctx, cart)
}

// UpdateQuantity overwrites the quantity of the matching line; a quantity
// of zero or below removes the line instead. An absent line is a no-op.
func (s *cartService) UpdateQuantity(ctx context.Context, cartID, productID string, quantity int, size string) (*models.Cart, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, cartID, productID, size)
	}

	cart := s.load(ctx, cartID)

	for i := range cart.Lines {
		if cart.Lines[i].Matches(productID, size) {
			cart.Lines[i].Quantity = quantity

			return s.save(ctx, cart)
		}
	}

	return cart, nil
}

func (s *cartService) Clear(ctx context.Context, cartID string) error {
	if err := s.repo.DeleteCart(ctx, cartID); err != nil {
		return appErrors.DatabaseError("Failed to clear cart").WithError(err)
	}

	return nil
}

// Totals derives the subtotal and item count at the service clock's idea of
// now, so every line's sale window is evaluated at call time.
func (s *cartService) Totals(cart *models.Cart) models.CartTotals {
	now := s.now()

	return models.CartTotals{
		Subtotal:   cart.Subtotal(now),
		TotalItems: cart.TotalItems(),
	}
}
