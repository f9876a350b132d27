package itinerary

import (
	"encoding/json"
	"time"

	"github.com/NomadCrew/nomad-itinerary/internal/document"
	"github.com/NomadCrew/nomad-itinerary/pkg/valueobjects"
	"github.com/NomadCrew/nomad-itinerary/types"
)

// Encoders write the current document shape. Parsing an encoded entity and
// encoding it again yields the same fragment.

func EncodeFlexibleCost(c valueobjects.FlexibleCost) document.Fragment {
	m := document.Fragment{
		"paymentType":    c.PaymentType().String(),
		"cashAmount":     json.Number(c.CashAmount().String()),
		"totalCashValue": json.Number(c.TotalCashValue().String()),
	}
	if points, ok := c.PointsAmount(); ok {
		m["pointsAmount"] = points
	}
	if program, ok := c.PointsProgram(); ok {
		m["pointsProgram"] = program
	}
	putString(m, "notes", c.Notes())
	return m
}

func EncodeCostBreakdown(b types.CostBreakdown) document.Fragment {
	return document.Fragment{
		"flights":        EncodeFlexibleCost(b.Flights),
		"accommodations": EncodeFlexibleCost(b.Accommodations),
		"activities":     EncodeFlexibleCost(b.Activities),
		"food":           EncodeFlexibleCost(b.Food),
		"transportation": EncodeFlexibleCost(b.Transportation),
		"other":          EncodeFlexibleCost(b.Other),
		"total":          EncodeFlexibleCost(b.Total),
		"currency":       b.Currency,
	}
}

// EncodeFlights writes the leg list. The placeholder encodes as an empty list.
func EncodeFlights(f types.FlightItinerary) []any {
	legs := f.Legs()
	out := make([]any, 0, len(legs))
	for _, leg := range legs {
		out = append(out, EncodeFlightLeg(leg))
	}
	return out
}

// EncodeFlightLeg writes a leg with its summarizing segment. Layovers are kept
// as a count since the other segments are not retained.
func EncodeFlightLeg(d types.FlightDetails) document.Fragment {
	segment := document.Fragment{
		"departureAirport": d.DepartureAirport,
		"arrivalAirport":   d.ArrivalAirport,
		"class":            d.Class.String(),
	}
	putString(segment, "airline", d.Airline)
	putString(segment, "flightNumber", d.FlightNumber)
	putString(segment, "departureTime", d.DepartureTime)
	putString(segment, "arrivalTime", d.ArrivalTime)
	putString(segment, "duration", d.Duration)

	leg := document.Fragment{
		"cost":         EncodeFlexibleCost(d.Cost),
		"layoverCount": d.LayoverCount,
		"segments":     []any{segment},
	}
	putString(leg, "bookingInstructions", d.BookingInstructions)
	return leg
}

func EncodeDailyPlan(p types.DailyPlan) document.Fragment {
	m := document.Fragment{
		"day":       p.Day,
		"totalCost": EncodeFlexibleCost(p.Cost),
	}
	if p.Date != nil {
		m["date"] = encodeTime(*p.Date)
	}
	putString(m, "title", p.Title)
	putString(m, "notes", p.Notes)
	putList(m, "activities", p.Activities, EncodeDailyActivity)
	putList(m, "meals", p.Meals, EncodeMeal)
	return m
}

func EncodeDailyActivity(a types.DailyActivity) document.Fragment {
	m := document.Fragment{
		"category":        a.Category.String(),
		"cost":            EncodeFlexibleCost(a.Cost),
		"bookingRequired": a.BookingRequired,
	}
	putString(m, "time", a.Time)
	putString(m, "title", a.Title)
	putString(m, "description", a.Description)
	putString(m, "location", a.Location)
	putString(m, "duration", a.Duration)
	putString(m, "bookingUrl", a.BookingURL)
	return m
}

func EncodeMeal(meal types.Meal) document.Fragment {
	m := document.Fragment{
		"type": meal.Type.String(),
		"cost": EncodeFlexibleCost(meal.Cost),
	}
	putString(m, "name", meal.Name)
	putString(m, "location", meal.Location)
	return m
}

func EncodeAccommodationDetails(a types.AccommodationDetails) document.Fragment {
	m := document.Fragment{
		"name":         a.Name,
		"type":         a.Type.String(),
		"nights":       a.Nights,
		"costPerNight": EncodeFlexibleCost(a.CostPerNight),
		"totalCost":    EncodeFlexibleCost(a.TotalCost),
	}
	if a.Location != nil {
		m["coordinates"] = document.Fragment(a.Location.Coordinates())
	}
	putString(m, "address", a.Address)
	putString(m, "checkIn", a.CheckIn)
	putString(m, "checkOut", a.CheckOut)
	putString(m, "bookingUrl", a.BookingURL)
	putStrings(m, "amenities", a.Amenities)
	return m
}

func EncodeLocalTransportation(t types.LocalTransportation) document.Fragment {
	m := document.Fragment{
		"type": t.Method.String(),
		"cost": EncodeFlexibleCost(t.Cost),
	}
	putString(m, "from", t.From)
	putString(m, "to", t.To)
	putString(m, "departureDate", t.DepartureDate)
	putString(m, "departureTime", t.DepartureTime)
	putString(m, "arrivalDate", t.ArrivalDate)
	putString(m, "arrivalTime", t.ArrivalTime)
	putString(m, "duration", t.Duration)
	putString(m, "provider", t.Provider)
	putString(m, "bookingInstructions", t.BookingInstructions)
	putString(m, "notes", t.Notes)
	return m
}

func EncodeBookingInstructions(b types.BookingInstructions) document.Fragment {
	m := document.Fragment{"summary": b.Summary}
	putString(m, "flights", b.Flights)
	putString(m, "accommodations", b.Accommodations)
	putString(m, "activities", b.Activities)
	putString(m, "transportation", b.Transportation)
	putStrings(m, "steps", b.Steps)
	return m
}

func EncodeEmergencyInfo(e types.EmergencyInfo) document.Fragment {
	m := document.Fragment{"emergencyNumber": e.EmergencyNumber}
	putString(m, "police", e.Police)
	putString(m, "insurance", e.Insurance)
	putString(m, "notes", e.Notes)
	putStrings(m, "hospitals", e.Hospitals)
	if e.Embassy != nil {
		embassy := document.Fragment{}
		putString(embassy, "name", e.Embassy.Name)
		putString(embassy, "address", e.Embassy.Address)
		putString(embassy, "phone", e.Embassy.Phone)
		m["embassy"] = embassy
	}
	return m
}

func EncodeDetailedItinerary(it types.DetailedItinerary) document.Fragment {
	plans := make([]any, 0, len(it.DailyPlans))
	for _, p := range it.DailyPlans {
		plans = append(plans, EncodeDailyPlan(p))
	}
	m := document.Fragment{
		"id":         it.ID,
		"flights":    EncodeFlights(it.Flights),
		"dailyPlans": plans,
		"totalCost":  EncodeCostBreakdown(it.TotalCost),
	}
	putList(m, "accommodations", it.Accommodations, EncodeAccommodationDetails)
	putList(m, "localTransportation", it.LocalTransportation, EncodeLocalTransportation)
	if it.BookingInstructions != nil {
		m["bookingInstructions"] = EncodeBookingInstructions(*it.BookingInstructions)
	}
	if it.EmergencyInfo != nil {
		m["emergencyInfo"] = EncodeEmergencyInfo(*it.EmergencyInfo)
	}
	return m
}

func EncodeRecommendation(rec types.Recommendation) document.Fragment {
	m := document.Fragment{
		"id":              rec.ID,
		"destinationName": rec.DestinationName,
		"overview":        rec.Overview,
		"estimatedCost":   EncodeCostBreakdown(rec.EstimatedCost),
		"createdAt":       encodeTime(rec.CreatedAt),
	}
	putString(m, "bestTimeToVisit", rec.BestTimeToVisit)
	putStrings(m, "tips", rec.Tips)
	putList(m, "activities", rec.Activities, EncodeActivity)
	putList(m, "accommodations", rec.Accommodations, EncodeAccommodation)
	if rec.Transportation != nil {
		m["transportation"] = EncodeTransportationSummary(*rec.Transportation)
	}
	if rec.Itinerary != nil {
		m["itinerary"] = EncodeDetailedItinerary(*rec.Itinerary)
	}
	return m
}

func EncodeActivity(a types.Activity) document.Fragment {
	m := document.Fragment{
		"name":     a.Name,
		"category": a.Category.String(),
		"cost":     EncodeFlexibleCost(a.Cost),
	}
	putString(m, "description", a.Description)
	putString(m, "duration", a.Duration)
	putString(m, "location", a.Location)
	return m
}

func EncodeAccommodation(a types.Accommodation) document.Fragment {
	m := document.Fragment{
		"name":          a.Name,
		"type":          a.Type.String(),
		"pricePerNight": EncodeFlexibleCost(a.PricePerNight),
	}
	if a.Rating != nil {
		m["rating"] = *a.Rating
	}
	putString(m, "location", a.Location)
	putStrings(m, "amenities", a.Amenities)
	return m
}

func EncodeTransportationSummary(t types.TransportationSummary) document.Fragment {
	m := document.Fragment{
		"flightCost": EncodeFlexibleCost(t.FlightCost),
		"localCost":  EncodeFlexibleCost(t.LocalCost),
	}
	putString(m, "summary", t.Summary)
	putStrings(m, "localOptions", t.LocalOptions)
	return m
}

func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func putString(m document.Fragment, key, v string) {
	if v != "" {
		m[key] = v
	}
}

// putStrings keeps the nil/empty distinction so absent lists stay absent.
func putStrings(m document.Fragment, key string, v []string) {
	if v == nil {
		return
	}
	out := make([]any, len(v))
	for i := range v {
		out[i] = v[i]
	}
	m[key] = out
}

func putList[T any](m document.Fragment, key string, items []T, encode func(T) document.Fragment) {
	if items == nil {
		return
	}
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, encode(item))
	}
	m[key] = out
}
