package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gunungclimbing/storefront/internal/models"
	"github.com/redis/go-redis/v9"
)

// CartRepository is the persistence port for carts: an opaque
// JSON-serialized blob per cart id. A missing cart is (nil, nil), not an
// error, so callers can start from an empty cart.
type CartRepository interface {
	GetCart(ctx context.Context, id string) (*models.Cart, error)
	SaveCart(ctx context.Context, cart *models.Cart) error
	DeleteCart(ctx context.Context, id string) error
}

const cartKeyPrefix = "cart:"

// Carts are kept for 30 days past the last mutation.
const cartTTL = 30 * 24 * time.Hour

type cartRepository struct {
	client *redis.Client
}

func NewCartRepo(client *redis.Client) CartRepository {
	return &cartRepository{client: client}
}

func (r *cartRepository) GetCart(ctx context.Context, id string) (*models.Cart, error) {
	data, err := r.client.Get(ctx, cartKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to load cart %s: %w", id, err)
	}

	cart := &models.Cart{}
	if err := json.Unmarshal(data, cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart %s: %w", id, err)
	}

	return cart, nil
}

func (r *cartRepository) SaveCart(ctx context.Context, cart *models.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart %s: %w", cart.ID, err)
	}

	if err := r.client.Set(ctx, cartKeyPrefix+cart.ID, data, cartTTL).Err(); err != nil {
		return fmt.Errorf("failed to save cart %s: %w", cart.ID, err)
	}

	return nil
}

func (r *cartRepository) DeleteCart(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, cartKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete cart %s: %w", id, err)
	}

	return nil
}
