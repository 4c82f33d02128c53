// Package pricing resolves the effective unit price of a product,
// accounting for time-bounded sale pricing. All amounts are integer
// minor-currency units (cents).
package pricing

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Quote is the result of resolving a product's price at a point in time.
// OriginalPrice, Savings and SavingsPercent are only set when the sale
// price applies.
type Quote struct {
	EffectivePrice int64 `json:"effective_price"`
	OriginalPrice  int64 `json:"original_price,omitempty"`
	Savings        int64 `json:"savings,omitempty"`
	SavingsPercent int   `json:"savings_percent,omitempty"`
	IsDiscounted   bool  `json:"is_discounted"`
}

// Resolve computes the price to charge given a base price, an optional sale
// price and an optional sale expiry. A sale applies only when the sale price
// is strictly below the base price and the expiry, if set, is after now.
// An expired sale is treated as if no sale price were set.
func Resolve(basePrice int64, salePrice *int64, saleEndsAt *time.Time, now time.Time) Quote {
	saleActive := salePrice != nil && (saleEndsAt == nil || saleEndsAt.After(now))

	if saleActive && *salePrice < basePrice {
		savings := basePrice - *salePrice

		return Quote{
			EffectivePrice: *salePrice,
			OriginalPrice:  basePrice,
			Savings:        savings,
			SavingsPercent: roundHalfAwayPercent(savings, basePrice),
			IsDiscounted:   true,
		}
	}

	return Quote{
		EffectivePrice: basePrice,
		IsDiscounted:   false,
	}
}

// roundHalfAwayPercent rounds half away from zero, matching how the
// storefront has always displayed savings.
func roundHalfAwayPercent(savings, basePrice int64) int {
	return int(math.Round(float64(savings) / float64(basePrice) * 100))
}

// FormatPrice renders cents as a display string, e.g. "RM 459.99" for MYR.
func FormatPrice(cents int64, currency string) string {
	amount := float64(cents) / 100

	if strings.EqualFold(currency, "myr") {
		return fmt.Sprintf("RM %.2f", amount)
	}

	return fmt.Sprintf("%s %.2f", strings.ToUpper(currency), amount)
}
