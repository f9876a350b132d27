package itinerary

import (
	"github.com/NomadCrew/nomad-itinerary/errors"
	"github.com/NomadCrew/nomad-itinerary/internal/document"
	"github.com/NomadCrew/nomad-itinerary/pkg/valueobjects"
	"github.com/NomadCrew/nomad-itinerary/types"
	"github.com/shopspring/decimal"
)

// EmptyFlightItinerary is the placeholder for ground-only trips.
func EmptyFlightItinerary() types.FlightItinerary {
	return types.FlightItinerary{TotalCost: valueobjects.ZeroCost(), IsEmpty: true}
}

// ParseFlightItinerary reads the legs under "flights" of an itinerary fragment
// and assigns them by position: outbound, return, then additional. Legs that
// fail are skipped before positions are assigned. With no usable leg the
// empty placeholder is returned; this never fails.
//
// The total is the cash sum of every leg's cash amount whatever its payment
// type. Points-only legs contribute nothing to it.
func ParseFlightItinerary(s Scope, frag document.Fragment) (types.FlightItinerary, error) {
	legs := parseList(s, s.Reader(frag), ParseFlightLeg, "flights")
	if len(legs) == 0 {
		return EmptyFlightItinerary(), nil
	}

	total := decimal.Zero
	for _, leg := range legs {
		total = total.Add(leg.Cost.CashAmount())
	}
	totalCost, err := valueobjects.NewCashCost(total)
	if err != nil {
		return types.FlightItinerary{}, err
	}

	f := types.FlightItinerary{Outbound: legs[0], TotalCost: totalCost}
	if len(legs) > 1 {
		ret := legs[1]
		f.Return = &ret
	}
	if len(legs) > 2 {
		f.Additional = legs[2:]
	}
	return f, nil
}

// ParseFlightLeg summarizes one leg by its first segment. Later segments only
// count toward LayoverCount.
func ParseFlightLeg(s Scope, frag document.Fragment) (types.FlightDetails, error) {
	r := s.Reader(frag)

	segments, ok, err := r.List("segments")
	if err != nil {
		return types.FlightDetails{}, err
	}
	if !ok || len(segments) == 0 {
		return types.FlightDetails{}, errors.MissingField(r.At("segments"))
	}

	booking, err := r.String("bookingInstructions", "")
	if err != nil {
		return types.FlightDetails{}, err
	}

	segScope := s.At("segments").Index(0).WithBookingInstructions(booking)
	segFrag, ok := document.AsFragment(segments[0])
	if !ok {
		return types.FlightDetails{}, errors.WrongType(segScope.path, "object", segments[0])
	}
	details, err := ParseFlightSegment(segScope, segFrag)
	if err != nil {
		return types.FlightDetails{}, err
	}

	cost, ok, err := costField(s, r, "cost", "totalCost")
	if err != nil {
		return types.FlightDetails{}, err
	}
	if ok {
		details.Cost = cost
	}

	if len(segments) > 1 {
		details.LayoverCount = len(segments) - 1
	} else if details.LayoverCount, err = r.Int("layoverCount", 0); err != nil {
		return types.FlightDetails{}, err
	}
	return details, nil
}

// ParseFlightSegment reads one segment. Booking instructions missing on the
// segment are inherited from the leg through the scope.
func ParseFlightSegment(s Scope, frag document.Fragment) (types.FlightDetails, error) {
	r := s.Reader(frag)
	var d types.FlightDetails
	var errs [9]error

	d.DepartureAirport, errs[0] = r.RequiredFirstString("departureAirport", "from", "origin")
	d.ArrivalAirport, errs[1] = r.RequiredFirstString("arrivalAirport", "to", "destination")
	d.Airline, errs[2] = r.String("airline", "")
	d.FlightNumber, errs[3] = r.String("flightNumber", "")
	d.DepartureTime, errs[4] = r.String("departureTime", "")
	d.ArrivalTime, errs[5] = r.String("arrivalTime", "")
	d.Duration, errs[6] = r.String("duration", "")
	d.BookingInstructions, errs[7] = r.String("bookingInstructions", s.bookingInstructions)
	d.Cost, _, errs[8] = costField(s, r, "cost")
	if err := firstErr(errs[:]...); err != nil {
		return types.FlightDetails{}, err
	}
	if d.BookingInstructions == "" {
		d.BookingInstructions = s.bookingInstructions
	}
	d.Class = ResolveEnum(s, r, types.ResolveFlightClass, "class", "cabinClass")
	return d, nil
}
