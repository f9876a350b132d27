package itinerary

import (
	"github.com/NomadCrew/nomad-itinerary/internal/document"
	"github.com/NomadCrew/nomad-itinerary/pkg/valueobjects"
	"github.com/NomadCrew/nomad-itinerary/types"
)

// ParseAccommodationDetails reads one stay. Without an explicit total the stay
// costs the nightly rate times the nights. Nights default to the distance
// between check-in and check-out when both are dates.
func ParseAccommodationDetails(s Scope, frag document.Fragment) (types.AccommodationDetails, error) {
	r := s.Reader(frag)
	var a types.AccommodationDetails
	var err error

	if a.Name, err = r.RequiredString("name"); err != nil {
		return types.AccommodationDetails{}, err
	}

	var errs [6]error
	a.Address, errs[0] = r.String("address", "")
	a.CheckIn, errs[1] = r.FirstString("", "checkIn", "checkInDate")
	a.CheckOut, errs[2] = r.FirstString("", "checkOut", "checkOutDate")
	a.BookingURL, errs[3] = r.FirstString("", "bookingUrl", "bookingURL")
	a.Amenities, errs[4] = r.Strings("amenities")
	a.CostPerNight, _, errs[5] = costField(s, r, "costPerNight", "pricePerNight")
	if err := firstErr(errs[:]...); err != nil {
		return types.AccommodationDetails{}, err
	}
	a.Type = ResolveEnum(s, r, types.ResolveAccommodationType, "type", "accommodationType")
	a.Location = parseLocation(s, r, &a.Address)

	nights, err := r.OptionalInt("nights")
	if err != nil {
		return types.AccommodationDetails{}, err
	}
	if nights != nil {
		a.Nights = *nights
	} else {
		a.Nights = nightsBetween(a.CheckIn, a.CheckOut)
	}
	if a.Nights < 0 {
		a.Nights = 0
	}

	total, ok, err := costField(s, r, "totalCost")
	if err != nil {
		return types.AccommodationDetails{}, err
	}
	if !ok {
		total = a.CostPerNight.Times(a.Nights)
	}
	a.TotalCost = total
	return a, nil
}

// parseLocation reads coordinates from "coordinates" or an object-valued
// "location". A string "location" is legacy address text and fills address
// when that is empty. Bad coordinates drop the location, not the stay.
func parseLocation(s Scope, r document.Reader, address *string) *valueobjects.GeoPoint {
	key, ok := r.FirstKey("coordinates", "location")
	if !ok {
		return nil
	}
	raw, _ := r.Lookup(key)
	if text, isText := raw.(string); isText {
		if *address == "" {
			*address = text
		}
		return nil
	}

	point := ParseOptional(s, r, ParseGeoPoint, key)
	if point == nil {
		return nil
	}
	return *point
}

func ParseGeoPoint(s Scope, frag document.Fragment) (*valueobjects.GeoPoint, error) {
	r := s.Reader(frag)
	var errs [2]error
	var lat, lng float64

	if k, ok := r.FirstKey("latitude", "lat"); ok {
		lat, errs[0] = r.Float(k, 0)
	} else {
		errs[0] = missing(r, "latitude")
	}
	if k, ok := r.FirstKey("longitude", "lng", "lon"); ok {
		lng, errs[1] = r.Float(k, 0)
	} else {
		errs[1] = missing(r, "longitude")
	}
	if err := firstErr(errs[:]...); err != nil {
		return nil, err
	}
	return valueobjects.NewGeoPoint(lat, lng)
}

func nightsBetween(checkIn, checkOut string) int {
	in, ok := document.AsTime(checkIn)
	if !ok {
		return 0
	}
	out, ok := document.AsTime(checkOut)
	if !ok || !out.After(in) {
		return 0
	}
	return int(out.Sub(in).Hours() / 24)
}
