package repository_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/gunungclimbing/storefront/internal/models"
	repository "github.com/gunungclimbing/storefront/internal/repositories"
	"github.com/stretchr/testify/assert"
)

func sampleCart(t *testing.T) (*models.Cart, string) {
	t.Helper()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cart := &models.Cart{
		ID: "cart-1",
		Lines: []models.CartLine{
			{
				Product: models.ProductSnapshot{
					ID:       "jett-qc",
					Name:     "Jett QC",
					Price:    52999,
					Currency: "myr",
				},
				Quantity: 2,
				Size:     "UK 7",
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	data, err := json.Marshal(cart)
	assert.NoError(t, err)

	return cart, string(data)
}

func TestCartRepository_GetCart(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Returns Stored Cart", func(t *testing.T) {
		// Arrange
		client, mockRedis := redismock.NewClientMock()
		repo := repository.NewCartRepo(client)

		expected, payload := sampleCart(t)

		mockRedis.ExpectGet("cart:cart-1").SetVal(payload)

		// Act
		cart, err := repo.GetCart(ctx, "cart-1")

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, expected.ID, cart.ID)
		assert.Len(t, cart.Lines, 1)
		assert.Equal(t, 2, cart.Quantity("jett-qc", "UK 7"))
		assert.NoError(t, mockRedis.ExpectationsWereMet())
	})

	t.Run("Success - Missing Cart Is Nil Not Error", func(t *testing.T) {
		// Arrange
		client, mockRedis := redismock.NewClientMock()
		repo := repository.NewCartRepo(client)

		mockRedis.ExpectGet("cart:missing").RedisNil()

		// Act
		cart, err := repo.GetCart(ctx, "missing")

		// Assert
		assert.NoError(t, err)
		assert.Nil(t, cart)
		assert.NoError(t, mockRedis.ExpectationsWereMet())
	})

	t.Run("Failure - Corrupt Payload Returns Error", func(t *testing.T) {
		// Arrange
		client, mockRedis := redismock.NewClientMock()
		repo := repository.NewCartRepo(client)

		mockRedis.ExpectGet("cart:cart-1").SetVal("{not-json")

		// Act
		cart, err := repo.GetCart(ctx, "cart-1")

		// Assert
		assert.Nil(t, cart)
		assert.Error(t, err)
	})
}

func TestCartRepository_SaveCart(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Stores Cart With Expiry", func(t *testing.T) {
		// Arrange
		client, mockRedis := redismock.NewClientMock()
		repo := repository.NewCartRepo(client)

		cart, payload := sampleCart(t)

		mockRedis.ExpectSet("cart:cart-1", []byte(payload), 30*24*time.Hour).SetVal("OK")

		// Act
		err := repo.SaveCart(ctx, cart)

		// Assert
		assert.NoError(t, err)
		assert.NoError(t, mockRedis.ExpectationsWereMet())
	})
}

func TestCartRepository_DeleteCart(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Deletes Cart Key", func(t *testing.T) {
		// Arrange
		client, mockRedis := redismock.NewClientMock()
		repo := repository.NewCartRepo(client)

		mockRedis.ExpectDel("cart:cart-1").SetVal(1)

		// Act
		err := repo.DeleteCart(ctx, "cart-1")

		// Assert
		assert.NoError(t, err)
		assert.NoError(t, mockRedis.ExpectationsWereMet())
	})
}
