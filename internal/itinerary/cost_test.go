package itinerary

import (
	"testing"

	"github.com/NomadCrew/nomad-itinerary/errors"
	"github.com/NomadCrew/nomad-itinerary/internal/document"
	"github.com/NomadCrew/nomad-itinerary/pkg/valueobjects"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlexibleCost(t *testing.T) {
	tests := []struct {
		name        string
		raw         any
		wantType    valueobjects.PaymentType
		wantDisplay string
		wantShort   string
		wantValue   string
		wantErrType errors.ErrorType
	}{
		{
			name:        "cash fragment",
			raw:         map[string]any{"paymentType": "cash", "cashAmount": 1499.99},
			wantType:    valueobjects.PaymentCash,
			wantDisplay: "$1499",
			wantShort:   "$1499",
			wantValue:   "1499.99",
		},
		{
			name:        "bare number is cash",
			raw:         250.0,
			wantType:    valueobjects.PaymentCash,
			wantDisplay: "$250",
			wantShort:   "$250",
			wantValue:   "250",
		},
		{
			name:        "currency string is cash",
			raw:         "$1,200",
			wantType:    valueobjects.PaymentCash,
			wantDisplay: "$1200",
			wantShort:   "$1200",
			wantValue:   "1200",
		},
		{
			name:        "points",
			raw:         map[string]any{"paymentType": "points", "pointsAmount": 25000.0, "pointsProgram": "Chase", "totalCashValue": 250.0},
			wantType:    valueobjects.PaymentPoints,
			wantDisplay: "25,000 Chase points",
			wantShort:   "25,000pts",
			wantValue:   "250",
		},
		{
			name:        "points without cash value defaults to zero",
			raw:         map[string]any{"paymentType": "points", "pointsAmount": 25000.0, "pointsProgram": "Chase"},
			wantType:    valueobjects.PaymentPoints,
			wantDisplay: "25,000 Chase points",
			wantShort:   "25,000pts",
			wantValue:   "0",
		},
		{
			name:        "hybrid",
			raw:         map[string]any{"paymentType": "hybrid", "cashAmount": 200.0, "pointsAmount": 15000.0, "pointsProgram": "Amex"},
			wantType:    valueobjects.PaymentHybrid,
			wantDisplay: "$200 + 15,000 Amex",
			wantShort:   "$200+15,000pts",
			wantValue:   "200",
		},
		{
			name:        "legacy keys",
			raw:         map[string]any{"type": "mixed", "amount": "80", "points": 4000, "program": "Hyatt", "cashValue": 120},
			wantType:    valueobjects.PaymentHybrid,
			wantDisplay: "$80 + 4,000 Hyatt",
			wantShort:   "$80+4,000pts",
			wantValue:   "120",
		},
		{
			name:        "unknown payment type falls back to cash",
			raw:         map[string]any{"paymentType": "crypto", "cashAmount": 30},
			wantType:    valueobjects.PaymentCash,
			wantDisplay: "$30",
			wantShort:   "$30",
			wantValue:   "30",
		},
		{
			name:        "points without program",
			raw:         map[string]any{"paymentType": "points", "pointsAmount": 100},
			wantErrType: errors.MissingFieldError,
		},
		{
			name:        "hybrid without points",
			raw:         map[string]any{"paymentType": "hybrid", "cashAmount": 10, "pointsProgram": "Amex"},
			wantErrType: errors.MissingFieldError,
		},
		{
			name:        "negative cash",
			raw:         map[string]any{"paymentType": "cash", "cashAmount": -5},
			wantErrType: errors.WrongTypeError,
		},
		{
			name:        "negative bare number",
			raw:         -5.0,
			wantErrType: errors.WrongTypeError,
		},
		{
			name:        "points beyond int64",
			raw:         map[string]any{"paymentType": "points", "pointsAmount": 1e30, "pointsProgram": "Chase"},
			wantErrType: errors.WrongTypeError,
		},
		{
			name:        "points as huge text",
			raw:         map[string]any{"paymentType": "hybrid", "cashAmount": 5, "pointsAmount": "9223372036854775808", "pointsProgram": "Amex"},
			wantErrType: errors.WrongTypeError,
		},
		{
			name:        "largest whole points amount",
			raw:         map[string]any{"paymentType": "points", "pointsAmount": 9.0e15, "pointsProgram": "Chase", "totalCashValue": 1},
			wantType:    valueobjects.PaymentPoints,
			wantDisplay: "9,000,000,000,000,000 Chase points",
			wantShort:   "9,000,000,000,000,000pts",
			wantValue:   "1",
		},
		{
			name:        "not a cost",
			raw:         []any{1, 2},
			wantErrType: errors.WrongTypeError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var diag document.Diagnostics
			cost, err := ParseFlexibleCost(NewScope(&diag, "cost"), tt.raw)
			if tt.wantErrType != "" {
				require.Error(t, err)
				assert.True(t, errors.IsType(err, tt.wantErrType), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, cost.PaymentType())
			assert.Equal(t, tt.wantDisplay, cost.DisplayText())
			assert.Equal(t, tt.wantShort, cost.ShortDisplayText())
			assert.True(t, decimal.RequireFromString(tt.wantValue).Equal(cost.TotalCashValue()),
				"cash value %s", cost.TotalCashValue())
		})
	}
}

func TestParseFlexibleCost_UnknownTypeIsRecorded(t *testing.T) {
	var diag document.Diagnostics
	_, err := ParseFlexibleCost(NewScope(&diag, "dailyPlans[0].cost"), map[string]any{"paymentType": "barter"})
	require.NoError(t, err)

	items := diag.Items()
	require.Len(t, items, 1)
	assert.Equal(t, document.KindEnumFallback, items[0].Kind)
	assert.Equal(t, "dailyPlans[0].cost.paymentType", items[0].Path)
	assert.True(t, errors.IsType(items[0].Err, errors.UnresolvableEnumError))
}

func TestParseFlexibleCost_MissingFieldNamesPath(t *testing.T) {
	_, err := ParseFlexibleCost(NewScope(nil, "flights[1].cost"), map[string]any{"paymentType": "points", "pointsProgram": "Chase"})

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "flights[1].cost.pointsAmount", appErr.Field)
}

func TestParseCostBreakdown(t *testing.T) {
	b, err := ParseCostBreakdown(NewScope(nil, "estimatedCost"), document.Fragment{
		"flights":        900,
		"accommodations": map[string]any{"paymentType": "points", "pointsAmount": 40000, "pointsProgram": "Marriott", "totalCashValue": 320},
		"food":           "150",
	})
	require.NoError(t, err)

	assert.Equal(t, "USD", b.Currency)
	assert.True(t, b.Activities.IsZero())
	assert.Equal(t, "40,000 Marriott points", b.Accommodations.DisplayText())
	assert.True(t, decimal.NewFromInt(1370).Equal(b.Total.TotalCashValue()), "total %s", b.Total.TotalCashValue())
	assert.Equal(t, valueobjects.PaymentCash, b.Total.PaymentType())

	explicit, err := ParseCostBreakdown(NewScope(nil, ""), document.Fragment{
		"flights":  100,
		"total":    map[string]any{"cashAmount": 999},
		"currency": "EUR",
	})
	require.NoError(t, err)
	assert.Equal(t, "EUR", explicit.Currency)
	assert.Equal(t, "$999", explicit.Total.DisplayText())
}
