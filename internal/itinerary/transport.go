package itinerary

import (
	"github.com/NomadCrew/nomad-itinerary/internal/document"
	"github.com/NomadCrew/nomad-itinerary/types"
)

// ParseLocalTransportation reads a ground or water leg. Newer field names are
// tried before the legacy ones: "type" before "method", and "departureTime"
// before the combined "time". Unknown methods fall back to train.
func ParseLocalTransportation(s Scope, frag document.Fragment) (types.LocalTransportation, error) {
	r := s.Reader(frag)
	var t types.LocalTransportation
	var errs [11]error

	t.From, errs[0] = r.FirstString("", "from", "origin")
	t.To, errs[1] = r.FirstString("", "to", "destination")
	t.DepartureDate, errs[2] = r.String("departureDate", "")
	t.DepartureTime, errs[3] = r.FirstString("", "departureTime", "time")
	t.ArrivalDate, errs[4] = r.String("arrivalDate", "")
	t.ArrivalTime, errs[5] = r.String("arrivalTime", "")
	t.Duration, errs[6] = r.String("duration", "")
	t.Provider, errs[7] = r.FirstString("", "provider", "operator")
	t.BookingInstructions, errs[8] = r.String("bookingInstructions", "")
	t.Notes, errs[9] = r.String("notes", "")
	t.Cost, _, errs[10] = costField(s, r, "cost")
	if err := firstErr(errs[:]...); err != nil {
		return types.LocalTransportation{}, err
	}
	t.Method = ResolveEnum(s, r, types.ResolveTransportMethod, "type", "method")
	return t, nil
}
