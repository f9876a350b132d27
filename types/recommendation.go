package types

import (
	"time"

	"github.com/NomadCrew/nomad-itinerary/pkg/valueobjects"
)

// Recommendation is the generated plan for a trip. Older documents only carry
// the flat Activities/Accommodations/Transportation fields; newer ones add
// Itinerary, which takes precedence for presentation when both exist.
type Recommendation struct {
	ID              string                 `json:"id"`
	DestinationName string                 `json:"destinationName"`
	Overview        string                 `json:"overview"`
	Itinerary       *DetailedItinerary     `json:"itinerary,omitempty"`
	Activities      []Activity             `json:"activities,omitempty"`
	Accommodations  []Accommodation        `json:"accommodations,omitempty"`
	Transportation  *TransportationSummary `json:"transportation,omitempty"`
	EstimatedCost   CostBreakdown          `json:"estimatedCost"`
	BestTimeToVisit string                 `json:"bestTimeToVisit,omitempty"`
	Tips            []string               `json:"tips,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
}

// HasDetailedItinerary reports whether the day-by-day itinerary supersedes the flat lists.
func (r *Recommendation) HasDetailedItinerary() bool {
	return r.Itinerary != nil
}

// Activity is the legacy flat activity suggestion.
type Activity struct {
	Name        string                    `json:"name"`
	Description string                    `json:"description,omitempty"`
	Category    ActivityCategory          `json:"category"`
	Cost        valueobjects.FlexibleCost `json:"cost"`
	Duration    string                    `json:"duration,omitempty"`
	Location    string                    `json:"location,omitempty"`
}

// Accommodation is the legacy flat accommodation suggestion.
type Accommodation struct {
	Name          string                    `json:"name"`
	Type          AccommodationType         `json:"type"`
	Location      string                    `json:"location,omitempty"`
	PricePerNight valueobjects.FlexibleCost `json:"pricePerNight"`
	Rating        *float64                  `json:"rating,omitempty"`
	Amenities     []string                  `json:"amenities,omitempty"`
}

// TransportationSummary is the legacy flat transport overview.
type TransportationSummary struct {
	Summary      string                    `json:"summary,omitempty"`
	FlightCost   valueobjects.FlexibleCost `json:"flightCost"`
	LocalOptions []string                  `json:"localOptions,omitempty"`
	LocalCost    valueobjects.FlexibleCost `json:"localCost"`
}

// CostBreakdown is an estimate split by spending category.
type CostBreakdown struct {
	Flights        valueobjects.FlexibleCost `json:"flights"`
	Accommodations valueobjects.FlexibleCost `json:"accommodations"`
	Activities     valueobjects.FlexibleCost `json:"activities"`
	Food           valueobjects.FlexibleCost `json:"food"`
	Transportation valueobjects.FlexibleCost `json:"transportation"`
	Other          valueobjects.FlexibleCost `json:"other"`
	Total          valueobjects.FlexibleCost `json:"total"`
	Currency       string                    `json:"currency"`
}

// Lines returns the category lines (everything but Total) in display order.
func (b CostBreakdown) Lines() []valueobjects.FlexibleCost {
	return []valueobjects.FlexibleCost{
		b.Flights, b.Accommodations, b.Activities, b.Food, b.Transportation, b.Other,
	}
}
