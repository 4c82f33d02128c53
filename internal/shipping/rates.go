// Package shipping holds the Malaysian courier rate tables. Rates are
// fixed per region class (Peninsular vs. East Malaysia) and are in cents.
package shipping

import "strings"

type Rate struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Amount        int64  `json:"rate"`
	EstimatedDays string `json:"estimated_days"`
}

var westMalaysiaStates = []string{
	"Johor",
	"Kedah",
	"Kelantan",
	"Melaka",
	"Negeri Sembilan",
	"Pahang",
	"Perak",
	"Perlis",
	"Pulau Pinang",
	"Selangor",
	"Terengganu",
	"Kuala Lumpur",
	"Putrajaya",
}

var eastMalaysiaStates = []string{
	"Sabah",
	"Sarawak",
	"Labuan",
}

var eastRates = []Rate{
	{
		ID:            "standard_east",
		Name:          "Standard Shipping (East Malaysia)",
		Description:   "Delivery via courier service",
		Amount:        1500,
		EstimatedDays: "5-7 business days",
	},
	{
		ID:            "express_east",
		Name:          "Express Shipping (East Malaysia)",
		Description:   "Priority delivery",
		Amount:        2500,
		EstimatedDays: "3-4 business days",
	},
}

var westRates = []Rate{
	{
		ID:            "standard_west",
		Name:          "Standard Shipping (West Malaysia)",
		Description:   "Delivery via courier service",
		Amount:        800,
		EstimatedDays: "2-4 business days",
	},
	{
		ID:            "express_west",
		Name:          "Express Shipping (West Malaysia)",
		Description:   "Priority delivery",
		Amount:        1500,
		EstimatedDays: "1-2 business days",
	},
}

func matchesAny(state string, candidates []string) bool {
	lowered := strings.ToLower(state)

	for _, candidate := range candidates {
		if strings.Contains(lowered, strings.ToLower(candidate)) {
			return true
		}
	}

	return false
}

func IsEastMalaysia(state string) bool {
	return matchesAny(state, eastMalaysiaStates)
}

func IsWestMalaysia(state string) bool {
	return matchesAny(state, westMalaysiaStates)
}

func IsValidState(state string) bool {
	return IsWestMalaysia(state) || IsEastMalaysia(state)
}

// RatesFor returns the two courier options for the given state, or an empty
// slice when the state is not a Malaysian state. Callers are expected to
// block checkout on an empty result.
func RatesFor(state string) []Rate {
	switch {
	case IsEastMalaysia(state):
		return append([]Rate(nil), eastRates...)
	case IsWestMalaysia(state):
		return append([]Rate(nil), westRates...)
	default:
		return []Rate{}
	}
}

// RateByID looks up a rate id within the table for the given state. A nil
// result means the id does not exist there, including ids that belong to
// the other region's table.
func RateByID(id, state string) *Rate {
	for _, rate := range RatesFor(state) {
		if rate.ID == id {
			return &rate
		}
	}

	return nil
}
