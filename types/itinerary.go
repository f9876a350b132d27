package types

import (
	"time"

	"github.com/NomadCrew/nomad-itinerary/pkg/valueobjects"
)

// DetailedItinerary is the day-by-day plan attached to a recommendation.
type DetailedItinerary struct {
	ID                  string                 `json:"id"`
	Flights             FlightItinerary        `json:"flights"`
	LocalTransportation []LocalTransportation  `json:"localTransportation,omitempty"`
	DailyPlans          []DailyPlan            `json:"dailyPlans"`
	Accommodations      []AccommodationDetails `json:"accommodations"`
	TotalCost           CostBreakdown          `json:"totalCost"`
	BookingInstructions *BookingInstructions   `json:"bookingInstructions,omitempty"`
	EmergencyInfo       *EmergencyInfo         `json:"emergencyInfo,omitempty"`
}

// FlightItinerary assigns legs by position: outbound, return, then any extra legs.
// An itinerary without parseable legs is the IsEmpty placeholder, which is valid
// for ground-only trips.
type FlightItinerary struct {
	Outbound   FlightDetails             `json:"outbound"`
	Return     *FlightDetails            `json:"return,omitempty"`
	Additional []FlightDetails           `json:"additional,omitempty"`
	TotalCost  valueobjects.FlexibleCost `json:"totalCost"`
	IsEmpty    bool                      `json:"isEmpty"`
}

// Legs returns every parsed leg in positional order.
func (f FlightItinerary) Legs() []FlightDetails {
	if f.IsEmpty {
		return nil
	}
	legs := []FlightDetails{f.Outbound}
	if f.Return != nil {
		legs = append(legs, *f.Return)
	}
	return append(legs, f.Additional...)
}

// FlightDetails summarizes one leg by its first segment.
type FlightDetails struct {
	Airline             string                    `json:"airline"`
	FlightNumber        string                    `json:"flightNumber"`
	DepartureAirport    string                    `json:"departureAirport"`
	ArrivalAirport      string                    `json:"arrivalAirport"`
	DepartureTime       string                    `json:"departureTime,omitempty"`
	ArrivalTime         string                    `json:"arrivalTime,omitempty"`
	Duration            string                    `json:"duration,omitempty"`
	Class               FlightClass               `json:"class"`
	Cost                valueobjects.FlexibleCost `json:"cost"`
	BookingInstructions string                    `json:"bookingInstructions,omitempty"`
	LayoverCount        int                       `json:"layoverCount"`
}

type DailyPlan struct {
	Day        int                       `json:"day"`
	Date       *time.Time                `json:"date,omitempty"`
	Title      string                    `json:"title,omitempty"`
	Activities []DailyActivity           `json:"activities"`
	Meals      []Meal                    `json:"meals,omitempty"`
	Notes      string                    `json:"notes,omitempty"`
	Cost       valueobjects.FlexibleCost `json:"cost"`
}

type DailyActivity struct {
	Time            string                    `json:"time,omitempty"`
	Title           string                    `json:"title"`
	Description     string                    `json:"description,omitempty"`
	Location        string                    `json:"location,omitempty"`
	Category        ActivityCategory          `json:"category"`
	Cost            valueobjects.FlexibleCost `json:"cost"`
	Duration        string                    `json:"duration,omitempty"`
	BookingRequired bool                      `json:"bookingRequired"`
	BookingURL      string                    `json:"bookingUrl,omitempty"`
}

type Meal struct {
	Type     MealType                  `json:"type"`
	Name     string                    `json:"name,omitempty"`
	Location string                    `json:"location,omitempty"`
	Cost     valueobjects.FlexibleCost `json:"cost"`
}

type AccommodationDetails struct {
	Name         string                    `json:"name"`
	Type         AccommodationType         `json:"type"`
	Address      string                    `json:"address,omitempty"`
	Location     *valueobjects.GeoPoint    `json:"location,omitempty"`
	CheckIn      string                    `json:"checkIn,omitempty"`
	CheckOut     string                    `json:"checkOut,omitempty"`
	Nights       int                       `json:"nights"`
	CostPerNight valueobjects.FlexibleCost `json:"costPerNight"`
	TotalCost    valueobjects.FlexibleCost `json:"totalCost"`
	BookingURL   string                    `json:"bookingUrl,omitempty"`
	Amenities    []string                  `json:"amenities,omitempty"`
}

type LocalTransportation struct {
	Method              TransportMethod           `json:"type"`
	From                string                    `json:"from,omitempty"`
	To                  string                    `json:"to,omitempty"`
	DepartureDate       string                    `json:"departureDate,omitempty"`
	DepartureTime       string                    `json:"departureTime,omitempty"`
	ArrivalDate         string                    `json:"arrivalDate,omitempty"`
	ArrivalTime         string                    `json:"arrivalTime,omitempty"`
	Duration            string                    `json:"duration,omitempty"`
	Provider            string                    `json:"provider,omitempty"`
	Cost                valueobjects.FlexibleCost `json:"cost"`
	BookingInstructions string                    `json:"bookingInstructions,omitempty"`
	Notes               string                    `json:"notes,omitempty"`
}

type BookingInstructions struct {
	Summary        string   `json:"summary"`
	Flights        string   `json:"flights,omitempty"`
	Accommodations string   `json:"accommodations,omitempty"`
	Activities     string   `json:"activities,omitempty"`
	Transportation string   `json:"transportation,omitempty"`
	Steps          []string `json:"steps,omitempty"`
}

type EmergencyInfo struct {
	EmergencyNumber string          `json:"emergencyNumber"`
	Police          string          `json:"police,omitempty"`
	Embassy         *EmbassyContact `json:"embassy,omitempty"`
	Hospitals       []string        `json:"hospitals,omitempty"`
	Insurance       string          `json:"insurance,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

type EmbassyContact struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}
