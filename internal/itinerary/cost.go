package itinerary

import (
	"math"

	"github.com/NomadCrew/nomad-itinerary/errors"
	"github.com/NomadCrew/nomad-itinerary/internal/document"
	"github.com/NomadCrew/nomad-itinerary/pkg/valueobjects"
	"github.com/NomadCrew/nomad-itinerary/types"
	"github.com/shopspring/decimal"
)

// DefaultCurrency applies when a cost breakdown names none.
const DefaultCurrency = "USD"

// ParseFlexibleCost reads a cost fragment, or a legacy bare number which is
// taken as a cash amount. An unknown payment type falls back to cash.
func ParseFlexibleCost(s Scope, raw any) (valueobjects.FlexibleCost, error) {
	frag, ok := document.AsFragment(raw)
	if !ok {
		amount, ok := document.AsDecimal(raw)
		if !ok {
			return valueobjects.FlexibleCost{}, errors.WrongType(s.path, "cost", raw)
		}
		if amount.IsNegative() {
			return valueobjects.FlexibleCost{}, errors.WrongType(s.path, "non-negative amount", raw)
		}
		return valueobjects.NewCashCost(amount)
	}

	r := s.Reader(frag)
	paymentType := ResolveEnum(s, r, valueobjects.ResolvePaymentType, "paymentType", "type")

	cash, err := nonNegativeDecimal(r, "cashAmount", "amount", "cost", "price")
	if err != nil {
		return valueobjects.FlexibleCost{}, err
	}
	cashValue, err := nonNegativeDecimal(r, "totalCashValue", "cashValue")
	if err != nil {
		return valueobjects.FlexibleCost{}, err
	}
	notes, err := r.String("notes", "")
	if err != nil {
		return valueobjects.FlexibleCost{}, err
	}

	params := valueobjects.CostParams{
		PaymentType:    paymentType,
		CashAmount:     decimal.Zero,
		TotalCashValue: cashValue,
		Notes:          notes,
	}
	if cash != nil {
		params.CashAmount = *cash
	}

	if paymentType.RequiresPoints() {
		pointsKey, ok := r.FirstKey("pointsAmount", "points")
		if !ok {
			return valueobjects.FlexibleCost{}, errors.MissingField(r.At("pointsAmount"))
		}
		points, err := r.Float(pointsKey, 0)
		if err != nil {
			return valueobjects.FlexibleCost{}, err
		}
		if points < 0 {
			raw, _ := r.Lookup(pointsKey)
			return valueobjects.FlexibleCost{}, errors.WrongType(r.At(pointsKey), "non-negative amount", raw)
		}
		// float64(1<<63) is the first value int64 cannot hold.
		if math.Round(points) >= 1<<63 {
			raw, _ := r.Lookup(pointsKey)
			return valueobjects.FlexibleCost{}, errors.WrongType(r.At(pointsKey), "points amount", raw)
		}
		amount := int64(math.Round(points))
		params.PointsAmount = &amount

		programKey, ok := r.FirstKey("pointsProgram", "program")
		if !ok {
			return valueobjects.FlexibleCost{}, errors.MissingField(r.At("pointsProgram"))
		}
		program, err := r.String(programKey, "")
		if err != nil {
			return valueobjects.FlexibleCost{}, err
		}
		params.PointsProgram = &program
	}

	return valueobjects.NewFlexibleCost(params)
}

// nonNegativeDecimal reads the first present key; nil when none is present.
func nonNegativeDecimal(r document.Reader, keys ...string) (*decimal.Decimal, error) {
	key, ok := r.FirstKey(keys...)
	if !ok {
		return nil, nil
	}
	d, err := r.Decimal(key, decimal.Zero)
	if err != nil {
		return nil, err
	}
	if d.IsNegative() {
		raw, _ := r.Lookup(key)
		return nil, errors.WrongType(r.At(key), "non-negative amount", raw)
	}
	return &d, nil
}

// costField parses the cost under the first present key, or ZeroCost when none is.
func costField(s Scope, r document.Reader, keys ...string) (valueobjects.FlexibleCost, bool, error) {
	key, ok := r.FirstKey(keys...)
	if !ok {
		return valueobjects.ZeroCost(), false, nil
	}
	raw, _ := r.Lookup(key)
	cost, err := ParseFlexibleCost(s.At(key), raw)
	return cost, true, err
}

// ParseCostBreakdown reads the per-category estimate. A missing total is the
// cash sum of every line's cash-equivalent value.
func ParseCostBreakdown(s Scope, frag document.Fragment) (types.CostBreakdown, error) {
	r := s.Reader(frag)
	var b types.CostBreakdown

	lines := []struct {
		key  string
		dest *valueobjects.FlexibleCost
	}{
		{"flights", &b.Flights},
		{"accommodations", &b.Accommodations},
		{"activities", &b.Activities},
		{"food", &b.Food},
		{"transportation", &b.Transportation},
		{"other", &b.Other},
	}
	for _, line := range lines {
		cost, _, err := costField(s, r, line.key)
		if err != nil {
			return types.CostBreakdown{}, err
		}
		*line.dest = cost
	}

	total, ok, err := costField(s, r, "total")
	if err != nil {
		return types.CostBreakdown{}, err
	}
	if !ok {
		sum := decimal.Zero
		for _, line := range b.Lines() {
			sum = sum.Add(line.TotalCashValue())
		}
		if total, err = valueobjects.NewCashCost(sum); err != nil {
			return types.CostBreakdown{}, err
		}
	}
	b.Total = total

	if b.Currency, err = r.String("currency", DefaultCurrency); err != nil {
		return types.CostBreakdown{}, err
	}
	if b.Currency == "" {
		b.Currency = DefaultCurrency
	}
	return b, nil
}

// EmptyCostBreakdown is the breakdown used when a document carries none.
func EmptyCostBreakdown() types.CostBreakdown {
	zero := valueobjects.ZeroCost()
	return types.CostBreakdown{
		Flights:        zero,
		Accommodations: zero,
		Activities:     zero,
		Food:           zero,
		Transportation: zero,
		Other:          zero,
		Total:          zero,
		Currency:       DefaultCurrency,
	}
}
