package valueobjects

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/NomadCrew/nomad-itinerary/errors"
)

// GeoPoint is a validated coordinate pair, used for accommodation locations.
type GeoPoint struct {
	latitude  float64
	longitude float64
}

// NewGeoPoint creates a new GeoPoint with validation
func NewGeoPoint(lat, lng float64) (*GeoPoint, error) {
	if err := validateCoordinates(lat, lng); err != nil {
		return nil, err
	}

	return &GeoPoint{
		latitude:  lat,
		longitude: lng,
	}, nil
}

// Latitude returns the latitude value
func (g GeoPoint) Latitude() float64 {
	return g.latitude
}

// Longitude returns the longitude value
func (g GeoPoint) Longitude() float64 {
	return g.longitude
}

func (g GeoPoint) Equal(other GeoPoint) bool {
	return g.latitude == other.latitude && g.longitude == other.longitude
}

func (g GeoPoint) String() string {
	return fmt.Sprintf("(%f, %f)", g.latitude, g.longitude)
}

// Coordinates returns the current document form of the point.
func (g GeoPoint) Coordinates() map[string]any {
	return map[string]any{
		"latitude":  g.latitude,
		"longitude": g.longitude,
	}
}

func (g GeoPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Coordinates())
}

func validateCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return errors.ValidationFailed("invalid coordinates", "coordinates must be finite")
	}

	if lat < -90 || lat > 90 {
		return errors.ValidationFailed(
			"invalid latitude",
			fmt.Sprintf("latitude %f is outside valid range [-90, 90]", lat),
		)
	}

	if lng < -180 || lng > 180 {
		return errors.ValidationFailed(
			"invalid longitude",
			fmt.Sprintf("longitude %f is outside valid range [-180, 180]", lng),
		)
	}

	return nil
}
