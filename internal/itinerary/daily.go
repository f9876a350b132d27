package itinerary

import (
	"sort"

	"github.com/NomadCrew/nomad-itinerary/internal/document"
	"github.com/NomadCrew/nomad-itinerary/pkg/valueobjects"
	"github.com/NomadCrew/nomad-itinerary/types"
	"github.com/shopspring/decimal"
)

// ParseDailyPlan reads one day. Day is the only required field. Without an
// explicit total the plan costs the cash sum of its activities and meals.
func ParseDailyPlan(s Scope, frag document.Fragment) (types.DailyPlan, error) {
	r := s.Reader(frag)
	var p types.DailyPlan
	var err error

	if p.Day, err = r.RequiredInt("day"); err != nil {
		return types.DailyPlan{}, err
	}

	var errs [3]error
	p.Date, errs[0] = r.OptionalTime("date")
	p.Title, errs[1] = r.FirstString("", "title", "theme")
	p.Notes, errs[2] = r.String("notes", "")
	if err := firstErr(errs[:]...); err != nil {
		return types.DailyPlan{}, err
	}

	p.Activities = parseList(s, r, ParseDailyActivity, "activities")
	p.Meals = parseList(s, r, ParseMeal, "meals")

	cost, ok, err := costField(s, r, "totalCost", "cost")
	if err != nil {
		return types.DailyPlan{}, err
	}
	if !ok {
		sum := decimal.Zero
		for _, a := range p.Activities {
			sum = sum.Add(a.Cost.TotalCashValue())
		}
		for _, m := range p.Meals {
			sum = sum.Add(m.Cost.TotalCashValue())
		}
		if cost, err = valueobjects.NewCashCost(sum); err != nil {
			return types.DailyPlan{}, err
		}
	}
	p.Cost = cost
	return p, nil
}

// parseDailyPlans reads and orders the plans by day. Equal days keep document order.
func parseDailyPlans(s Scope, r document.Reader) []types.DailyPlan {
	plans := parseList(s, r, ParseDailyPlan, "dailyPlans", "days")
	sort.SliceStable(plans, func(i, j int) bool { return plans[i].Day < plans[j].Day })
	return plans
}

func ParseDailyActivity(s Scope, frag document.Fragment) (types.DailyActivity, error) {
	r := s.Reader(frag)
	var a types.DailyActivity
	var errs [8]error

	a.Time, errs[0] = r.FirstString("", "time", "startTime")
	a.Title, errs[1] = r.FirstString("", "title", "name")
	a.Description, errs[2] = r.String("description", "")
	a.Location, errs[3] = r.String("location", "")
	a.Duration, errs[4] = r.String("duration", "")
	a.BookingRequired, errs[5] = r.Bool("bookingRequired", false)
	a.BookingURL, errs[6] = r.FirstString("", "bookingUrl", "bookingURL")
	a.Cost, _, errs[7] = costField(s, r, "cost")
	if err := firstErr(errs[:]...); err != nil {
		return types.DailyActivity{}, err
	}
	a.Category = ResolveEnum(s, r, types.ResolveActivityCategory, "category", "type")
	return a, nil
}

func ParseMeal(s Scope, frag document.Fragment) (types.Meal, error) {
	r := s.Reader(frag)
	var m types.Meal
	var errs [3]error

	m.Name, errs[0] = r.FirstString("", "name", "restaurant")
	m.Location, errs[1] = r.String("location", "")
	m.Cost, _, errs[2] = costField(s, r, "cost")
	if err := firstErr(errs[:]...); err != nil {
		return types.Meal{}, err
	}
	m.Type = ResolveEnum(s, r, types.ResolveMealType, "type", "mealType")
	return m, nil
}
