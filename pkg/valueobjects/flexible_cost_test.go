// pkg/valueobjects/flexible_cost_test.go
package valueobjects

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64    { return &v }
func stringPtr(v string) *string { return &v }

func TestNewFlexibleCost(t *testing.T) {
	fifty := decimal.NewFromInt(50)

	tests := []struct {
		name          string
		params        CostParams
		shouldError   bool
		wantCashValue decimal.Decimal
	}{
		{
			name:          "cash defaults cash value to amount",
			params:        CostParams{PaymentType: PaymentCash, CashAmount: decimal.NewFromFloat(120.5)},
			wantCashValue: decimal.NewFromFloat(120.5),
		},
		{
			name: "points defaults cash value to zero",
			params: CostParams{
				PaymentType:   PaymentPoints,
				PointsAmount:  int64Ptr(25000),
				PointsProgram: stringPtr("Chase"),
			},
			wantCashValue: decimal.Zero,
		},
		{
			name: "points keeps explicit cash value",
			params: CostParams{
				PaymentType:    PaymentPoints,
				PointsAmount:   int64Ptr(5000),
				PointsProgram:  stringPtr("Chase"),
				TotalCashValue: &fifty,
			},
			wantCashValue: fifty,
		},
		{
			name: "hybrid defaults cash value to cash component",
			params: CostParams{
				PaymentType:   PaymentHybrid,
				CashAmount:    decimal.NewFromInt(200),
				PointsAmount:  int64Ptr(15000),
				PointsProgram: stringPtr("Amex"),
			},
			wantCashValue: decimal.NewFromInt(200),
		},
		{
			name:        "points without program",
			params:      CostParams{PaymentType: PaymentPoints, PointsAmount: int64Ptr(100)},
			shouldError: true,
		},
		{
			name:        "hybrid without points",
			params:      CostParams{PaymentType: PaymentHybrid, PointsProgram: stringPtr("Amex")},
			shouldError: true,
		},
		{
			name:        "negative cash",
			params:      CostParams{PaymentType: PaymentCash, CashAmount: decimal.NewFromInt(-1)},
			shouldError: true,
		},
		{
			name:        "unknown payment type",
			params:      CostParams{PaymentType: "barter"},
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cost, err := NewFlexibleCost(tt.params)
			if tt.shouldError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.wantCashValue.Equal(cost.TotalCashValue()),
				"expected cash value %s, got %s", tt.wantCashValue, cost.TotalCashValue())
		})
	}
}

func TestFlexibleCost_CashDropsPointsFields(t *testing.T) {
	cost, err := NewFlexibleCost(CostParams{
		PaymentType:   PaymentCash,
		CashAmount:    decimal.NewFromInt(10),
		PointsAmount:  int64Ptr(99),
		PointsProgram: stringPtr("Chase"),
	})
	require.NoError(t, err)

	_, hasPoints := cost.PointsAmount()
	_, hasProgram := cost.PointsProgram()
	assert.False(t, hasPoints)
	assert.False(t, hasProgram)
}

func TestFlexibleCost_DisplayText(t *testing.T) {
	cash, err := NewCashCost(decimal.NewFromFloat(1499.99))
	require.NoError(t, err)
	points, err := NewPointsCost(25000, "Chase", decimal.NewFromInt(250))
	require.NoError(t, err)
	hybrid, err := NewHybridCost(decimal.NewFromInt(200), 15000, "Amex")
	require.NoError(t, err)
	bigPoints, err := NewPointsCost(1250000, "Marriott Bonvoy", decimal.Zero)
	require.NoError(t, err)
	hugeCash, err := NewCashCost(decimal.RequireFromString("99999999999999999999999.75"))
	require.NoError(t, err)
	hugeHybrid, err := NewHybridCost(decimal.RequireFromString("12345678901234567890123"), 1000, "Amex")
	require.NoError(t, err)

	tests := []struct {
		name      string
		cost      FlexibleCost
		display   string
		shortText string
	}{
		{"cash truncates to integer", cash, "$1499", "$1499"},
		{"points", points, "25,000 Chase points", "25,000pts"},
		{"hybrid", hybrid, "$200 + 15,000 Amex", "$200+15,000pts"},
		{"millions of points", bigPoints, "1,250,000 Marriott Bonvoy points", "1,250,000pts"},
		{"zero", ZeroCost(), "$0", "$0"},
		{"cash beyond int64", hugeCash, "$99999999999999999999999", "$99999999999999999999999"},
		{"hybrid cash beyond int64", hugeHybrid, "$12345678901234567890123 + 1,000 Amex", "$12345678901234567890123+1,000pts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.display, tt.cost.DisplayText())
			assert.Equal(t, tt.shortText, tt.cost.ShortDisplayText())
		})
	}
}

func TestFlexibleCost_CashShortTextMatchesDisplay(t *testing.T) {
	for _, amount := range []float64{0, 1, 9.99, 100, 12345.67} {
		cost, err := NewCashCost(decimal.NewFromFloat(amount))
		require.NoError(t, err)
		assert.NotContains(t, cost.DisplayText(), ".")
		assert.Equal(t, cost.DisplayText(), cost.ShortDisplayText())
	}
}

func TestFlexibleCost_TimesSaturatesPoints(t *testing.T) {
	cost, err := NewPointsCost(math.MaxInt64/2, "Hyatt", decimal.NewFromInt(100))
	require.NoError(t, err)

	scaled := cost.Times(3)
	points, ok := scaled.PointsAmount()
	require.True(t, ok)
	assert.Equal(t, int64(math.MaxInt64), points)
	assert.True(t, decimal.NewFromInt(300).Equal(scaled.TotalCashValue()))
}

func TestFlexibleCost_Times(t *testing.T) {
	nightly, err := NewHybridCost(decimal.NewFromInt(80), 10000, "Hyatt")
	require.NoError(t, err)

	stay := nightly.Times(3)
	assert.True(t, decimal.NewFromInt(240).Equal(stay.CashAmount()))
	assert.True(t, decimal.NewFromInt(240).Equal(stay.TotalCashValue()))
	points, ok := stay.PointsAmount()
	require.True(t, ok)
	assert.Equal(t, int64(30000), points)

	// original untouched
	original, _ := nightly.PointsAmount()
	assert.Equal(t, int64(10000), original)

	assert.True(t, nightly.Times(-2).IsZero())
}

func TestFlexibleCost_Equal(t *testing.T) {
	a, _ := NewCashCost(decimal.NewFromInt(200))
	b, _ := NewCashCost(decimal.RequireFromString("200.00"))
	c, _ := NewHybridCost(decimal.NewFromInt(200), 1, "Amex")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestFlexibleCost_MarshalJSON(t *testing.T) {
	cost, err := NewPointsCost(25000, "Chase", decimal.NewFromInt(250))
	require.NoError(t, err)

	raw, err := json.Marshal(cost)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"paymentType": "points",
		"cashAmount": 0,
		"pointsAmount": 25000,
		"pointsProgram": "Chase",
		"totalCashValue": 250,
		"displayText": "25,000 Chase points",
		"shortDisplayText": "25,000pts"
	}`, string(raw))
}

func TestResolvePaymentType(t *testing.T) {
	tests := []struct {
		raw    string
		want   PaymentType
		wantOK bool
	}{
		{"cash", PaymentCash, true},
		{"POINTS", PaymentPoints, true},
		{"Hybrid", PaymentHybrid, true},
		{"mixed", PaymentHybrid, true},
		{"", PaymentCash, false},
		{"crypto", PaymentCash, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ResolvePaymentType(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}

	assert.Equal(t, "Cash + Points", PaymentHybrid.Label())
}
