package itinerary

import (
	"github.com/NomadCrew/nomad-itinerary/internal/document"
	"github.com/NomadCrew/nomad-itinerary/types"
)

// ParseDetailedItinerary reads the day-by-day plan. "dailyPlans" is the only
// required list; flights, stays and transport tolerate absence.
func ParseDetailedItinerary(s Scope, frag document.Fragment) (types.DetailedItinerary, error) {
	r := s.Reader(frag)
	var it types.DetailedItinerary
	var err error

	if it.ID, err = r.String("id", ""); err != nil {
		return types.DetailedItinerary{}, err
	}
	if _, ok := r.FirstKey("dailyPlans", "days"); !ok {
		return types.DetailedItinerary{}, missing(r, "dailyPlans")
	}

	if it.Flights, err = ParseFlightItinerary(s, frag); err != nil {
		return types.DetailedItinerary{}, err
	}
	it.DailyPlans = parseDailyPlans(s, r)
	it.Accommodations = parseList(s, r, ParseAccommodationDetails, "accommodations")
	it.LocalTransportation = parseList(s, r, ParseLocalTransportation, "localTransportation", "transportation")

	it.TotalCost = EmptyCostBreakdown()
	if b := ParseOptional(s, r, ParseCostBreakdown, "totalCost", "costBreakdown"); b != nil {
		it.TotalCost = *b
	}
	it.BookingInstructions = ParseOptional(s, r, ParseBookingInstructions, "bookingInstructions")
	it.EmergencyInfo = ParseOptional(s, r, ParseEmergencyInfo, "emergencyInfo")
	return it, nil
}
