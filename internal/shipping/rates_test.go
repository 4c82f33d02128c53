package shipping_test

import (
	"testing"

	"github.com/gunungclimbing/storefront/internal/shipping"
	"github.com/stretchr/testify/assert"
)

func TestRatesFor(t *testing.T) {
	t.Run("Success - West Malaysian State Gets West Rates", func(t *testing.T) {
		rates := shipping.RatesFor("Selangor")

		assert.Len(t, rates, 2)
		assert.Equal(t, "standard_west", rates[0].ID)
		assert.Equal(t, int64(800), rates[0].Amount)
		assert.Equal(t, "2-4 business days", rates[0].EstimatedDays)
		assert.Equal(t, "express_west", rates[1].ID)
		assert.Equal(t, int64(1500), rates[1].Amount)
		assert.Equal(t, "1-2 business days", rates[1].EstimatedDays)
	})

	t.Run("Success - East Malaysian State Gets East Rates", func(t *testing.T) {
		rates := shipping.RatesFor("Sabah")

		assert.Len(t, rates, 2)
		assert.Equal(t, "standard_east", rates[0].ID)
		assert.Equal(t, int64(1500), rates[0].Amount)
		assert.Equal(t, "5-7 business days", rates[0].EstimatedDays)
		assert.Equal(t, "express_east", rates[1].ID)
		assert.Equal(t, int64(2500), rates[1].Amount)
		assert.Equal(t, "3-4 business days", rates[1].EstimatedDays)
	})

	t.Run("Success - Federal Territories Are West Malaysia", func(t *testing.T) {
		assert.True(t, shipping.IsWestMalaysia("Kuala Lumpur"))
		assert.True(t, shipping.IsWestMalaysia("Putrajaya"))
		assert.True(t, shipping.IsEastMalaysia("Labuan"))
	})

	t.Run("Success - Matching Is Case Insensitive", func(t *testing.T) {
		rates := shipping.RatesFor("kuala lumpur")

		assert.Len(t, rates, 2)
		assert.Equal(t, "standard_west", rates[0].ID)
	})

	t.Run("Success - Matching Tolerates Longer Address Forms", func(t *testing.T) {
		assert.True(t, shipping.IsWestMalaysia("Wilayah Persekutuan Kuala Lumpur"))
		assert.True(t, shipping.IsEastMalaysia("Sarawak, Malaysia"))
	})

	t.Run("Failure - Unknown State Gets Empty Rate List", func(t *testing.T) {
		rates := shipping.RatesFor("Atlantis")

		assert.NotNil(t, rates)
		assert.Empty(t, rates)
		assert.False(t, shipping.IsValidState("Atlantis"))
	})
}

func TestRateByID(t *testing.T) {
	t.Run("Success - Finds Rate Within Region Table", func(t *testing.T) {
		rate := shipping.RateByID("express_west", "Kuala Lumpur")

		assert.NotNil(t, rate)
		assert.Equal(t, int64(1500), rate.Amount)
	})

	t.Run("Failure - Cross Region Rate ID Is Rejected", func(t *testing.T) {
		assert.Nil(t, shipping.RateByID("express_west", "Sabah"))
		assert.Nil(t, shipping.RateByID("standard_east", "Johor"))
	})

	t.Run("Failure - Unknown Rate ID Returns Nil", func(t *testing.T) {
		assert.Nil(t, shipping.RateByID("overnight_drone", "Selangor"))
	})
}
