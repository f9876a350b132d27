package trips

import (
	"time"

	"github.com/NomadCrew/nomad-itinerary/internal/document"
	"github.com/NomadCrew/nomad-itinerary/internal/itinerary"
	"github.com/NomadCrew/nomad-itinerary/types"
)

// EncodeTrip writes a trip in the current document shape: "destinations" as a
// list, "ownerId", canonical status tags and the "itinerary" key. Assembling
// the result yields an equal trip.
func EncodeTrip(t *types.Trip) document.Fragment {
	destinations := make([]any, len(t.Destinations))
	for i, d := range t.Destinations {
		destinations[i] = d
	}

	m := document.Fragment{
		"id":             t.ID,
		"ownerId":        t.OwnerID,
		"destinations":   destinations,
		"startDate":      formatTime(t.StartDate),
		"endDate":        formatTime(t.EndDate),
		"isDateFlexible": t.IsDateFlexible,
		"status":         t.Status.String(),
		"createdAt":      formatTime(t.CreatedAt),
		"preferences":    encodePreferences(t.Preferences),
	}
	if t.UpdatedAt != nil {
		m["updatedAt"] = formatTime(*t.UpdatedAt)
	}
	if t.Recommendation != nil {
		m["recommendation"] = itinerary.EncodeRecommendation(*t.Recommendation)
	}
	return m
}

func encodePreferences(p types.TripPreferences) document.Fragment {
	m := document.Fragment{}
	if p.Budget != "" {
		m["budget"] = p.Budget
	}
	if p.TravelStyle != "" {
		m["travelStyle"] = p.TravelStyle
	}
	if p.GroupSize != nil {
		m["groupSize"] = *p.GroupSize
	}
	if p.FlightClass != nil {
		m["flightClass"] = p.FlightClass.String()
	}
	if p.Interests != nil {
		interests := make([]any, len(p.Interests))
		for i, v := range p.Interests {
			interests[i] = v
		}
		m["interests"] = interests
	}
	if p.SpecialRequests != "" {
		m["specialRequests"] = p.SpecialRequests
	}
	return m
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
