package types

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Trip is the aggregate root built from one trip document snapshot. It is
// replaced wholesale when a newer snapshot arrives, never patched.
type Trip struct {
	ID             string          `json:"id"`
	OwnerID        string          `json:"ownerId"`
	Destinations   []string        `json:"destinations"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        time.Time       `json:"endDate"`
	IsDateFlexible bool            `json:"isDateFlexible"`
	Status         TripStatus      `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      *time.Time      `json:"updatedAt,omitempty"`
	Preferences    TripPreferences `json:"preferences"`
	Recommendation *Recommendation `json:"recommendation,omitempty"`
}

// TripPreferences are the optional planning inputs submitted with a trip.
type TripPreferences struct {
	Budget          string       `json:"budget,omitempty"`
	TravelStyle     string       `json:"travelStyle,omitempty"`
	GroupSize       *int         `json:"groupSize,omitempty"`
	FlightClass     *FlightClass `json:"flightClass,omitempty"`
	Interests       []string     `json:"interests,omitempty"`
	SpecialRequests string       `json:"specialRequests,omitempty"`
}

// DisplayDestinations joins all destinations for list rows: "Tokyo, Japan, Kyoto, Japan".
func (t *Trip) DisplayDestinations() string {
	return strings.Join(t.Destinations, ", ")
}

// PrimaryDestination is the first destination, or "" for an empty trip.
func (t *Trip) PrimaryDestination() string {
	if len(t.Destinations) == 0 {
		return ""
	}
	return t.Destinations[0]
}

// HasRecommendation is false while the recommendation is still being prepared
// or when the one stored could not be parsed.
func (t *Trip) HasRecommendation() bool {
	return t.Recommendation != nil
}

// BudgetAmount parses a numeric budget such as "3000", "$3,000" or "2500.50".
// Tier budgets like "moderate" report ok=false.
func (p TripPreferences) BudgetAmount() (decimal.Decimal, bool) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(p.Budget)
	if cleaned == "" {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil || amount.IsNegative() {
		return decimal.Zero, false
	}
	return amount, true
}
