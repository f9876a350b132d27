package types

import "strings"

// Each vocabulary below is a closed set of string tags. Resolve* functions never
// fail: unknown tags map to the documented default and report ok=false.

type TripStatus string

const (
	TripStatusPending    TripStatus = "pending"
	TripStatusInProgress TripStatus = "inProgress"
	TripStatusCompleted  TripStatus = "completed"
	TripStatusCancelled  TripStatus = "cancelled"
)

// DefaultTripStatus applies to unknown status tags.
const DefaultTripStatus = TripStatusPending

var tripStatusTags = map[string]TripStatus{
	"pending":    TripStatusPending,
	"inprogress": TripStatusInProgress,
	"completed":  TripStatusCompleted,
	"cancelled":  TripStatusCancelled,
	// legacy aliases
	"submitted":  TripStatusPending,
	"processing": TripStatusInProgress,
	"failed":     TripStatusCancelled,
	"canceled":   TripStatusCancelled,
}

func ResolveTripStatus(raw string) (TripStatus, bool) {
	if s, ok := tripStatusTags[normalizeTag(raw)]; ok {
		return s, true
	}
	return DefaultTripStatus, false
}

// String provides a string representation of the status
func (ts TripStatus) String() string {
	return string(ts)
}

func (ts TripStatus) Label() string {
	switch ts {
	case TripStatusInProgress:
		return "In Progress"
	case TripStatusCompleted:
		return "Completed"
	case TripStatusCancelled:
		return "Cancelled"
	default:
		return "Pending"
	}
}

// IsValid checks if the status is a canonical trip status
func (ts TripStatus) IsValid() bool {
	switch ts {
	case TripStatusPending, TripStatusInProgress, TripStatusCompleted, TripStatusCancelled:
		return true
	default:
		return false
	}
}

type ActivityCategory string

const (
	ActivitySightseeing   ActivityCategory = "sightseeing"
	ActivityCultural      ActivityCategory = "cultural"
	ActivityAdventure     ActivityCategory = "adventure"
	ActivityFood          ActivityCategory = "food"
	ActivityNightlife     ActivityCategory = "nightlife"
	ActivityShopping      ActivityCategory = "shopping"
	ActivityNature        ActivityCategory = "nature"
	ActivityRelaxation    ActivityCategory = "relaxation"
	ActivityEntertainment ActivityCategory = "entertainment"
	ActivityOther         ActivityCategory = "other"
)

const DefaultActivityCategory = ActivityOther

var activityCategoryTags = map[string]ActivityCategory{
	"sightseeing":   ActivitySightseeing,
	"cultural":      ActivityCultural,
	"culture":       ActivityCultural,
	"adventure":     ActivityAdventure,
	"food":          ActivityFood,
	"dining":        ActivityFood,
	"nightlife":     ActivityNightlife,
	"shopping":      ActivityShopping,
	"nature":        ActivityNature,
	"outdoor":       ActivityNature,
	"relaxation":    ActivityRelaxation,
	"entertainment": ActivityEntertainment,
	"other":         ActivityOther,
}

func ResolveActivityCategory(raw string) (ActivityCategory, bool) {
	if c, ok := activityCategoryTags[normalizeTag(raw)]; ok {
		return c, true
	}
	return DefaultActivityCategory, false
}

func (c ActivityCategory) String() string { return string(c) }

func (c ActivityCategory) Label() string {
	switch c {
	case ActivitySightseeing:
		return "Sightseeing"
	case ActivityCultural:
		return "Cultural"
	case ActivityAdventure:
		return "Adventure"
	case ActivityFood:
		return "Food & Dining"
	case ActivityNightlife:
		return "Nightlife"
	case ActivityShopping:
		return "Shopping"
	case ActivityNature:
		return "Nature"
	case ActivityRelaxation:
		return "Relaxation"
	case ActivityEntertainment:
		return "Entertainment"
	default:
		return "Other"
	}
}

func (c ActivityCategory) IsValid() bool {
	resolved, ok := activityCategoryTags[normalizeTag(string(c))]
	return ok && resolved == c
}

type AccommodationType string

const (
	AccommodationHotel           AccommodationType = "hotel"
	AccommodationHostel          AccommodationType = "hostel"
	AccommodationApartment       AccommodationType = "apartment"
	AccommodationResort          AccommodationType = "resort"
	AccommodationGuesthouse      AccommodationType = "guesthouse"
	AccommodationBedAndBreakfast AccommodationType = "bedAndBreakfast"
	AccommodationVacationRental  AccommodationType = "vacationRental"
	AccommodationOther           AccommodationType = "other"
)

const DefaultAccommodationType = AccommodationHotel

var accommodationTypeTags = map[string]AccommodationType{
	"hotel":           AccommodationHotel,
	"hostel":          AccommodationHostel,
	"apartment":       AccommodationApartment,
	"resort":          AccommodationResort,
	"guesthouse":      AccommodationGuesthouse,
	"bedandbreakfast": AccommodationBedAndBreakfast,
	"bnb":             AccommodationBedAndBreakfast,
	"vacationrental":  AccommodationVacationRental,
	"airbnb":          AccommodationVacationRental,
	"other":           AccommodationOther,
}

func ResolveAccommodationType(raw string) (AccommodationType, bool) {
	if t, ok := accommodationTypeTags[normalizeTag(raw)]; ok {
		return t, true
	}
	return DefaultAccommodationType, false
}

func (t AccommodationType) String() string { return string(t) }

func (t AccommodationType) Label() string {
	switch t {
	case AccommodationHostel:
		return "Hostel"
	case AccommodationApartment:
		return "Apartment"
	case AccommodationResort:
		return "Resort"
	case AccommodationGuesthouse:
		return "Guesthouse"
	case AccommodationBedAndBreakfast:
		return "Bed & Breakfast"
	case AccommodationVacationRental:
		return "Vacation Rental"
	case AccommodationOther:
		return "Other"
	default:
		return "Hotel"
	}
}

func (t AccommodationType) IsValid() bool {
	resolved, ok := accommodationTypeTags[normalizeTag(string(t))]
	return ok && resolved == t
}

type TransportMethod string

const (
	TransportTrain     TransportMethod = "train"
	TransportBus       TransportMethod = "bus"
	TransportFerry     TransportMethod = "ferry"
	TransportSubway    TransportMethod = "subway"
	TransportTaxi      TransportMethod = "taxi"
	TransportRentalCar TransportMethod = "rentalCar"
	TransportFlight    TransportMethod = "flight"
	TransportWalking   TransportMethod = "walking"
	TransportOther     TransportMethod = "other"
)

const DefaultTransportMethod = TransportTrain

var transportMethodTags = map[string]TransportMethod{
	"train":     TransportTrain,
	"rail":      TransportTrain,
	"bus":       TransportBus,
	"coach":     TransportBus,
	"ferry":     TransportFerry,
	"boat":      TransportFerry,
	"subway":    TransportSubway,
	"metro":     TransportSubway,
	"taxi":      TransportTaxi,
	"rideshare": TransportTaxi,
	"rentalcar": TransportRentalCar,
	"car":       TransportRentalCar,
	"flight":    TransportFlight,
	"walking":   TransportWalking,
	"walk":      TransportWalking,
	"other":     TransportOther,
}

func ResolveTransportMethod(raw string) (TransportMethod, bool) {
	if m, ok := transportMethodTags[normalizeTag(raw)]; ok {
		return m, true
	}
	return DefaultTransportMethod, false
}

func (m TransportMethod) String() string { return string(m) }

func (m TransportMethod) Label() string {
	switch m {
	case TransportBus:
		return "Bus"
	case TransportFerry:
		return "Ferry"
	case TransportSubway:
		return "Subway"
	case TransportTaxi:
		return "Taxi"
	case TransportRentalCar:
		return "Rental Car"
	case TransportFlight:
		return "Flight"
	case TransportWalking:
		return "Walking"
	case TransportOther:
		return "Other"
	default:
		return "Train"
	}
}

func (m TransportMethod) IsValid() bool {
	resolved, ok := transportMethodTags[normalizeTag(string(m))]
	return ok && resolved == m
}

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealBrunch    MealType = "brunch"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

const DefaultMealType = MealSnack

var mealTypeTags = map[string]MealType{
	"breakfast": MealBreakfast,
	"brunch":    MealBrunch,
	"lunch":     MealLunch,
	"dinner":    MealDinner,
	"snack":     MealSnack,
}

func ResolveMealType(raw string) (MealType, bool) {
	if m, ok := mealTypeTags[normalizeTag(raw)]; ok {
		return m, true
	}
	return DefaultMealType, false
}

func (m MealType) String() string { return string(m) }

func (m MealType) Label() string {
	switch m {
	case MealBreakfast:
		return "Breakfast"
	case MealBrunch:
		return "Brunch"
	case MealLunch:
		return "Lunch"
	case MealDinner:
		return "Dinner"
	default:
		return "Snack"
	}
}

func (m MealType) IsValid() bool {
	_, ok := mealTypeTags[string(m)]
	return ok
}

type FlightClass string

const (
	FlightClassEconomy        FlightClass = "economy"
	FlightClassPremiumEconomy FlightClass = "premiumEconomy"
	FlightClassBusiness       FlightClass = "business"
	FlightClassFirst          FlightClass = "first"
)

const DefaultFlightClass = FlightClassEconomy

var flightClassTags = map[string]FlightClass{
	"economy":        FlightClassEconomy,
	"coach":          FlightClassEconomy,
	"premiumeconomy": FlightClassPremiumEconomy,
	"business":       FlightClassBusiness,
	"first":          FlightClassFirst,
	"firstclass":     FlightClassFirst,
}

func ResolveFlightClass(raw string) (FlightClass, bool) {
	if c, ok := flightClassTags[normalizeTag(raw)]; ok {
		return c, true
	}
	return DefaultFlightClass, false
}

func (c FlightClass) String() string { return string(c) }

func (c FlightClass) Label() string {
	switch c {
	case FlightClassPremiumEconomy:
		return "Premium Economy"
	case FlightClassBusiness:
		return "Business"
	case FlightClassFirst:
		return "First"
	default:
		return "Economy"
	}
}

func (c FlightClass) IsValid() bool {
	resolved, ok := flightClassTags[normalizeTag(string(c))]
	return ok && resolved == c
}

// normalizeTag folds case and drops separators so "In_Progress", "in-progress"
// and "inProgress" compare equal.
func normalizeTag(raw string) string {
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(raw)))
}
