package itinerary

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/NomadCrew/nomad-itinerary/internal/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func richRecommendation() document.Fragment {
	itinerary := threeLegFlights()
	legs := itinerary["flights"].([]any)
	legs[0].(map[string]any)["bookingInstructions"] = "Book via ANA"
	itinerary["id"] = "it-9"
	itinerary["dailyPlans"] = []any{
		map[string]any{
			"day":  1,
			"date": "2025-04-01T00:00:00Z",
			"activities": []any{
				map[string]any{"time": "09:00", "title": "Senso-ji", "category": "cultural", "cost": 0, "bookingRequired": false},
				map[string]any{"title": "Sushi class", "category": "food", "cost": map[string]any{"paymentType": "points", "pointsAmount": 8000, "pointsProgram": "Chase", "totalCashValue": 80}, "bookingRequired": "true", "bookingUrl": "https://example.com/sushi"},
			},
			"meals": []any{map[string]any{"type": "dinner", "name": "Izakaya", "cost": 45.5}},
		},
	}
	itinerary["accommodations"] = []any{
		map[string]any{"name": "Park Hyatt", "type": "hotel", "nights": 2, "costPerNight": map[string]any{"paymentType": "points", "pointsAmount": 30000, "pointsProgram": "Hyatt"}, "coordinates": map[string]any{"latitude": 35.68, "longitude": 139.69}, "amenities": []any{"pool", "gym"}},
	}
	itinerary["localTransportation"] = []any{
		map[string]any{"method": "rail", "from": "Tokyo", "to": "Kyoto", "time": "07:00", "cost": 140},
	}
	itinerary["bookingInstructions"] = map[string]any{"summary": "Book flights first", "steps": []any{"flights", "hotel"}}
	itinerary["emergencyInfo"] = map[string]any{"emergencyNumber": "110", "hospitals": "St. Luke's", "embassy": map[string]any{"name": "US Embassy"}}

	return document.Fragment{
		"id":              "rec-9",
		"destinationName": "Tokyo, Japan",
		"overview":        "Two weeks in Japan",
		"bestTimeToVisit": "Spring",
		"tips":            []any{"Get a Suica card"},
		"createdAt":       map[string]any{"_seconds": 1736510400, "_nanoseconds": 0},
		"activities":      []any{map[string]any{"name": "Shibuya crossing", "category": "sightseeing", "cost": 0}},
		"accommodations":  []any{map[string]any{"name": "Capsule", "type": "hostel", "pricePerNight": 40, "rating": 4.2}},
		"transportation":  map[string]any{"summary": "Rail pass", "flightCost": 1200, "localOptions": []any{"JR Pass"}, "localCost": 300},
		"estimatedCost":   map[string]any{"flights": 1200, "accommodations": 600, "food": 300, "currency": "USD"},
		"itinerary":       map[string]any(itinerary),
	}
}

func TestEncodeRecommendation_Idempotent(t *testing.T) {
	var diag document.Diagnostics
	first, err := ParseRecommendation(NewScope(&diag, "recommendation"), richRecommendation())
	require.NoError(t, err)
	require.Equal(t, 0, diag.Len(), "unexpected diagnostics: %v", diag.Strings())

	enc1 := EncodeRecommendation(first)
	second, err := ParseRecommendation(NewScope(nil, "recommendation"), enc1)
	require.NoError(t, err)
	enc2 := EncodeRecommendation(second)

	assert.Equal(t, enc1, enc2)
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
	assert.True(t, first.Itinerary.Flights.TotalCost.Equal(second.Itinerary.Flights.TotalCost))
	assert.Equal(t, first.Itinerary.Flights.Outbound.LayoverCount, second.Itinerary.Flights.Outbound.LayoverCount)
	assert.Equal(t, "Book via ANA", second.Itinerary.Flights.Outbound.BookingInstructions)
}

func TestEncodeRecommendation_CurrentShape(t *testing.T) {
	rec, err := ParseRecommendation(NewScope(nil, ""), richRecommendation())
	require.NoError(t, err)
	enc := EncodeRecommendation(rec)

	assert.Equal(t, "2025-01-10T12:00:00Z", enc["createdAt"])
	it := enc["itinerary"].(document.Fragment)
	transport := it["localTransportation"].([]any)[0].(document.Fragment)
	assert.Equal(t, "train", transport["type"])
	assert.Equal(t, "07:00", transport["departureTime"])
	assert.NotContains(t, transport, "method")
	assert.NotContains(t, transport, "time")

	raw, err := json.Marshal(enc)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	reparsed, err := ParseRecommendation(NewScope(nil, ""), decoded)
	require.NoError(t, err)
	assert.Equal(t, EncodeRecommendation(rec), EncodeRecommendation(reparsed))
	assert.True(t, time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC).Equal(reparsed.CreatedAt))
}
