package itinerary

import (
	"github.com/NomadCrew/nomad-itinerary/internal/document"
	"github.com/NomadCrew/nomad-itinerary/types"
)

// ParseRecommendation requires an id, a destination name and an overview.
// createdAt falls back to the trip's creation time carried by the scope.
func ParseRecommendation(s Scope, frag document.Fragment) (types.Recommendation, error) {
	r := s.Reader(frag)
	var rec types.Recommendation
	var err error

	if rec.ID, err = r.RequiredString("id"); err != nil {
		return types.Recommendation{}, err
	}
	if rec.DestinationName, err = r.RequiredFirstString("destinationName", "destination"); err != nil {
		return types.Recommendation{}, err
	}
	if rec.Overview, err = r.RequiredString("overview"); err != nil {
		return types.Recommendation{}, err
	}

	if r.Has("createdAt") || s.createdAt == nil {
		if rec.CreatedAt, err = r.RequiredTime("createdAt"); err != nil {
			return types.Recommendation{}, err
		}
	} else {
		rec.CreatedAt = *s.createdAt
	}

	var errs [2]error
	rec.BestTimeToVisit, errs[0] = r.String("bestTimeToVisit", "")
	rec.Tips, errs[1] = r.FirstStrings("tips", "travelTips")
	if err := firstErr(errs[:]...); err != nil {
		return types.Recommendation{}, err
	}

	rec.Activities = parseList(s, r, ParseActivity, "activities")
	rec.Accommodations = parseList(s, r, ParseAccommodation, "accommodations")
	rec.Transportation = ParseOptional(s, r, ParseTransportationSummary, "transportation")

	rec.EstimatedCost = EmptyCostBreakdown()
	if b := ParseOptional(s, r, ParseCostBreakdown, "estimatedCost"); b != nil {
		rec.EstimatedCost = *b
	}
	rec.Itinerary = ParseOptional(s, r, ParseDetailedItinerary, "itinerary", "detailedItinerary")
	return rec, nil
}

func ParseActivity(s Scope, frag document.Fragment) (types.Activity, error) {
	r := s.Reader(frag)
	var a types.Activity
	var err error

	if a.Name, err = r.RequiredFirstString("name", "title"); err != nil {
		return types.Activity{}, err
	}

	var errs [4]error
	a.Description, errs[0] = r.String("description", "")
	a.Duration, errs[1] = r.String("duration", "")
	a.Location, errs[2] = r.String("location", "")
	a.Cost, _, errs[3] = costField(s, r, "cost", "estimatedCost")
	if err := firstErr(errs[:]...); err != nil {
		return types.Activity{}, err
	}
	a.Category = ResolveEnum(s, r, types.ResolveActivityCategory, "category", "type")
	return a, nil
}

func ParseAccommodation(s Scope, frag document.Fragment) (types.Accommodation, error) {
	r := s.Reader(frag)
	var a types.Accommodation
	var err error

	if a.Name, err = r.RequiredString("name"); err != nil {
		return types.Accommodation{}, err
	}

	var errs [4]error
	a.Location, errs[0] = r.FirstString("", "location", "area")
	a.Rating, errs[1] = r.OptionalFloat("rating")
	a.Amenities, errs[2] = r.Strings("amenities")
	a.PricePerNight, _, errs[3] = costField(s, r, "pricePerNight", "costPerNight")
	if err := firstErr(errs[:]...); err != nil {
		return types.Accommodation{}, err
	}
	a.Type = ResolveEnum(s, r, types.ResolveAccommodationType, "type", "accommodationType")
	return a, nil
}

func ParseTransportationSummary(s Scope, frag document.Fragment) (types.TransportationSummary, error) {
	r := s.Reader(frag)
	var t types.TransportationSummary
	var errs [4]error

	t.Summary, errs[0] = r.FirstString("", "summary", "overview")
	t.LocalOptions, errs[1] = r.FirstStrings("localOptions", "localTransport")
	t.FlightCost, _, errs[2] = costField(s, r, "flightCost", "estimatedFlightCost")
	t.LocalCost, _, errs[3] = costField(s, r, "localCost", "localTransportCost")
	return t, firstErr(errs[:]...)
}
