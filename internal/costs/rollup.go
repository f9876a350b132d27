// Package costs rolls itinerary costs up by category. Lines keep their own
// payment type so points spending stays visible; only cash-equivalent values
// feed the grand total used for budget comparisons.
package costs

import (
	"fmt"
	"strings"

	"github.com/NomadCrew/nomad-itinerary/pkg/valueobjects"
	"github.com/NomadCrew/nomad-itinerary/types"
	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryFlights        Category = "flights"
	CategoryAccommodations Category = "accommodations"
	CategoryTransportation Category = "transportation"
	CategoryActivities     Category = "activities"
	CategoryDining         Category = "dining"
)

// Categories lists the groups of a rollup in display order.
var Categories = []Category{
	CategoryFlights,
	CategoryAccommodations,
	CategoryTransportation,
	CategoryActivities,
	CategoryDining,
}

// Line is one priced item.
type Line struct {
	Label string                    `json:"label"`
	Cost  valueobjects.FlexibleCost `json:"cost"`
}

// Group is one category. CashTotal sums cash amounts only; CashEquivalent
// sums cash-equivalent values. Points are totalled per program.
type Group struct {
	Category       Category         `json:"category"`
	Lines          []Line           `json:"lines"`
	CashTotal      decimal.Decimal  `json:"cashTotal"`
	CashEquivalent decimal.Decimal  `json:"cashEquivalent"`
	Points         map[string]int64 `json:"points,omitempty"`
}

type Rollup struct {
	Groups     []Group          `json:"groups"`
	GrandTotal decimal.Decimal  `json:"grandTotal"`
	Points     map[string]int64 `json:"points,omitempty"`
}

// Summarize builds one group from parallel label and cost slices. Missing
// labels are left blank.
func Summarize(category Category, labels []string, costs []valueobjects.FlexibleCost) Group {
	g := Group{
		Category:       category,
		Lines:          make([]Line, 0, len(costs)),
		CashTotal:      decimal.Zero,
		CashEquivalent: decimal.Zero,
	}
	for i, c := range costs {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		g.add(Line{Label: label, Cost: c})
	}
	return g
}

func (g *Group) add(line Line) {
	g.Lines = append(g.Lines, line)
	g.CashTotal = g.CashTotal.Add(line.Cost.CashAmount())
	g.CashEquivalent = g.CashEquivalent.Add(line.Cost.TotalCashValue())
	if points, ok := line.Cost.PointsAmount(); ok {
		program, _ := line.Cost.PointsProgram()
		if g.Points == nil {
			g.Points = make(map[string]int64)
		}
		g.Points[program] += points
	}
}

// RollupItinerary groups every priced item of the itinerary.
func RollupItinerary(it *types.DetailedItinerary) *Rollup {
	groups := map[Category]*Group{}
	for _, c := range Categories {
		g := Summarize(c, nil, nil)
		groups[c] = &g
	}

	for i, leg := range it.Flights.Legs() {
		groups[CategoryFlights].add(Line{Label: flightLabel(i, leg), Cost: leg.Cost})
	}
	for _, stay := range it.Accommodations {
		groups[CategoryAccommodations].add(Line{Label: stayLabel(stay), Cost: stay.TotalCost})
	}
	for _, t := range it.LocalTransportation {
		groups[CategoryTransportation].add(Line{Label: transportLabel(t), Cost: t.Cost})
	}
	for _, plan := range it.DailyPlans {
		for _, a := range plan.Activities {
			groups[CategoryActivities].add(Line{Label: fmt.Sprintf("Day %d: %s", plan.Day, a.Title), Cost: a.Cost})
		}
		for _, m := range plan.Meals {
			groups[CategoryDining].add(Line{Label: mealLabel(plan.Day, m), Cost: m.Cost})
		}
	}

	r := &Rollup{GrandTotal: decimal.Zero}
	for _, c := range Categories {
		g := groups[c]
		r.Groups = append(r.Groups, *g)
		r.GrandTotal = r.GrandTotal.Add(g.CashEquivalent)
		for program, points := range g.Points {
			if r.Points == nil {
				r.Points = make(map[string]int64)
			}
			r.Points[program] += points
		}
	}
	return r
}

// RollupTrip returns false while the trip has no detailed itinerary, which
// callers present as "still being prepared".
func RollupTrip(t *types.Trip) (*Rollup, bool) {
	if t == nil || t.Recommendation == nil || t.Recommendation.Itinerary == nil {
		return nil, false
	}
	return RollupItinerary(t.Recommendation.Itinerary), true
}

// Group returns the group for category.
func (r *Rollup) Group(category Category) (Group, bool) {
	for _, g := range r.Groups {
		if g.Category == category {
			return g, true
		}
	}
	return Group{}, false
}

// LineCount is the number of priced items across all groups.
func (r *Rollup) LineCount() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Lines)
	}
	return n
}

// WithinBudget compares the cash-equivalent grand total against budget.
func (r *Rollup) WithinBudget(budget decimal.Decimal) bool {
	return r.GrandTotal.LessThanOrEqual(budget)
}

// GrandTotalCost is the grand total as a cash cost for display.
func (r *Rollup) GrandTotalCost() valueobjects.FlexibleCost {
	cost, err := valueobjects.NewCashCost(r.GrandTotal)
	if err != nil {
		return valueobjects.ZeroCost()
	}
	return cost
}

func flightLabel(i int, leg types.FlightDetails) string {
	position := "Outbound"
	switch {
	case i == 1:
		position = "Return"
	case i > 1:
		position = fmt.Sprintf("Flight %d", i+1)
	}
	return joinNonEmpty(" ", position, leg.DepartureAirport+"-"+leg.ArrivalAirport, leg.FlightNumber)
}

func stayLabel(stay types.AccommodationDetails) string {
	if stay.Nights > 0 {
		return fmt.Sprintf("%s (%d nights)", stay.Name, stay.Nights)
	}
	return stay.Name
}

func transportLabel(t types.LocalTransportation) string {
	route := ""
	if t.From != "" || t.To != "" {
		route = t.From + " to " + t.To
	}
	return joinNonEmpty(" ", t.Method.Label(), strings.TrimSpace(route))
}

func mealLabel(day int, m types.Meal) string {
	return fmt.Sprintf("Day %d: %s", day, joinNonEmpty(" at ", m.Type.Label(), m.Name))
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
