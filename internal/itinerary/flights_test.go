package itinerary

import (
	"testing"

	"github.com/NomadCrew/nomad-itinerary/errors"
	"github.com/NomadCrew/nomad-itinerary/internal/document"
	"github.com/NomadCrew/nomad-itinerary/pkg/valueobjects"
	"github.com/NomadCrew/nomad-itinerary/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func segment(from, to string) map[string]any {
	return map[string]any{
		"airline":          "ANA",
		"flightNumber":     "NH" + from,
		"departureAirport": from,
		"arrivalAirport":   to,
		"departureTime":    "2025-04-01T10:00:00Z",
		"class":            "economy",
	}
}

func threeLegFlights() document.Fragment {
	return document.Fragment{
		"flights": []any{
			map[string]any{
				"cost":     map[string]any{"paymentType": "cash", "cashAmount": 450},
				"segments": []any{segment("JFK", "NRT"), segment("NRT", "KIX")},
			},
			map[string]any{
				"cost":     map[string]any{"paymentType": "points", "pointsAmount": 60000, "pointsProgram": "United", "totalCashValue": 700},
				"segments": []any{segment("KIX", "JFK")},
			},
			map[string]any{
				"cost":     map[string]any{"paymentType": "hybrid", "cashAmount": 120, "pointsAmount": 15000, "pointsProgram": "Amex"},
				"segments": []any{segment("KIX", "HND")},
			},
		},
	}
}

func TestParseFlightItinerary_ThreeLegs(t *testing.T) {
	flights, err := ParseFlightItinerary(NewScope(nil, "itinerary"), threeLegFlights())
	require.NoError(t, err)

	assert.False(t, flights.IsEmpty)
	assert.Equal(t, "JFK", flights.Outbound.DepartureAirport)
	assert.Equal(t, "NRT", flights.Outbound.ArrivalAirport)
	assert.Equal(t, 1, flights.Outbound.LayoverCount)

	require.NotNil(t, flights.Return)
	assert.Equal(t, "KIX", flights.Return.DepartureAirport)
	assert.Equal(t, "60,000 United points", flights.Return.Cost.DisplayText())

	require.Len(t, flights.Additional, 1)
	assert.Equal(t, "HND", flights.Additional[0].ArrivalAirport)

	// cash-only sum: 450 + 0 + 120, the points leg's 700 cash value is ignored
	assert.Equal(t, valueobjects.PaymentCash, flights.TotalCost.PaymentType())
	assert.True(t, decimal.NewFromInt(570).Equal(flights.TotalCost.CashAmount()), "total %s", flights.TotalCost.CashAmount())
	assert.Len(t, flights.Legs(), 3)
}

func TestParseFlightItinerary_PositionsSkipFailedLegs(t *testing.T) {
	frag := threeLegFlights()
	legs := frag["flights"].([]any)
	frag["flights"] = append([]any{map[string]any{"segments": []any{}}}, legs...)

	var diag document.Diagnostics
	flights, err := ParseFlightItinerary(NewScope(&diag, "itinerary"), frag)
	require.NoError(t, err)

	assert.Equal(t, "JFK", flights.Outbound.DepartureAirport)
	require.NotNil(t, flights.Return)
	assert.Equal(t, "KIX", flights.Return.DepartureAirport)
	assert.Len(t, flights.Additional, 1)

	items := diag.Items()
	require.Len(t, items, 1)
	assert.Equal(t, document.KindSkippedElement, items[0].Kind)
	assert.Equal(t, "itinerary.flights[0]", items[0].Path)
	assert.True(t, errors.IsType(items[0].Err, errors.MissingFieldError))
}

func TestParseFlightItinerary_Empty(t *testing.T) {
	tests := []struct {
		name string
		frag document.Fragment
	}{
		{"no flights key", document.Fragment{}},
		{"empty list", document.Fragment{"flights": []any{}}},
		{"only broken legs", document.Fragment{"flights": []any{"JFK-NRT", map[string]any{}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flights, err := ParseFlightItinerary(NewScope(nil, ""), tt.frag)
			require.NoError(t, err)
			assert.True(t, flights.IsEmpty)
			assert.Nil(t, flights.Return)
			assert.True(t, flights.TotalCost.IsZero())
			assert.Empty(t, flights.Legs())
		})
	}
}

func TestParseFlightLeg(t *testing.T) {
	t.Run("booking instructions propagate to the first segment", func(t *testing.T) {
		leg, err := ParseFlightLeg(NewScope(nil, "flights[0]"), document.Fragment{
			"bookingInstructions": "Book on ana.co.jp",
			"segments":            []any{segment("SFO", "HND")},
		})
		require.NoError(t, err)
		assert.Equal(t, "Book on ana.co.jp", leg.BookingInstructions)
		assert.Equal(t, 0, leg.LayoverCount)
	})

	t.Run("segment instructions win", func(t *testing.T) {
		seg := segment("SFO", "HND")
		seg["bookingInstructions"] = "Use the ANA app"
		leg, err := ParseFlightLeg(NewScope(nil, "flights[0]"), document.Fragment{
			"bookingInstructions": "Book on ana.co.jp",
			"segments":            []any{seg},
		})
		require.NoError(t, err)
		assert.Equal(t, "Use the ANA app", leg.BookingInstructions)
	})

	t.Run("cost falls back to totalCost then segment cost", func(t *testing.T) {
		leg, err := ParseFlightLeg(NewScope(nil, ""), document.Fragment{
			"totalCost": 300,
			"segments":  []any{segment("LAX", "SEA")},
		})
		require.NoError(t, err)
		assert.Equal(t, "$300", leg.Cost.DisplayText())

		seg := segment("LAX", "SEA")
		seg["cost"] = map[string]any{"cashAmount": 99}
		leg, err = ParseFlightLeg(NewScope(nil, ""), document.Fragment{"segments": []any{seg}})
		require.NoError(t, err)
		assert.Equal(t, "$99", leg.Cost.DisplayText())
	})

	t.Run("unknown cabin falls back to economy", func(t *testing.T) {
		seg := segment("LAX", "SEA")
		seg["class"] = "steerage"
		var diag document.Diagnostics
		leg, err := ParseFlightLeg(NewScope(&diag, "flights[0]"), document.Fragment{"segments": []any{seg}})
		require.NoError(t, err)
		assert.Equal(t, types.FlightClassEconomy, leg.Class)
		require.Equal(t, 1, diag.Count(document.KindEnumFallback))
		assert.Equal(t, "flights[0].segments[0].class", diag.Items()[0].Path)
	})

	t.Run("missing airport names the segment path", func(t *testing.T) {
		seg := segment("LAX", "SEA")
		delete(seg, "arrivalAirport")
		_, err := ParseFlightLeg(NewScope(nil, "itinerary.flights[1]"), document.Fragment{"segments": []any{seg}})
		var appErr *errors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "itinerary.flights[1].segments[0].arrivalAirport", appErr.Field)
	})
}
