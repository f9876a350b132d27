// pkg/valueobjects/flexible_cost.go
package valueobjects

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/NomadCrew/nomad-itinerary/errors"
	"github.com/shopspring/decimal"
)

const (
	ErrInvalidAmount      = "INVALID_AMOUNT"
	ErrMissingPoints      = "MISSING_POINTS"
	ErrInvalidPaymentType = "INVALID_PAYMENT_TYPE"
)

// FlexibleCost is an amount payable in cash, loyalty points, or both.
// TotalCashValue is always populated so costs of any payment type can be summed
// and compared. Values are immutable; edits produce a new FlexibleCost.
type FlexibleCost struct {
	paymentType    PaymentType
	cashAmount     decimal.Decimal
	pointsAmount   *int64
	pointsProgram  *string
	totalCashValue decimal.Decimal
	notes          string
}

// CostParams are the raw inputs to NewFlexibleCost. A nil TotalCashValue is
// filled from the payment type's default.
type CostParams struct {
	PaymentType    PaymentType
	CashAmount     decimal.Decimal
	PointsAmount   *int64
	PointsProgram  *string
	TotalCashValue *decimal.Decimal
	Notes          string
}

// NewFlexibleCost builds a cost, applying the cash-equivalent defaults:
// cash and hybrid default to the cash amount, points default to zero.
func NewFlexibleCost(p CostParams) (FlexibleCost, error) {
	c := FlexibleCost{
		paymentType: p.PaymentType,
		cashAmount:  p.CashAmount,
		notes:       p.Notes,
	}

	if p.PaymentType.RequiresPoints() {
		c.pointsAmount = p.PointsAmount
		if p.PointsProgram != nil {
			program := strings.TrimSpace(*p.PointsProgram)
			c.pointsProgram = &program
		}
	}

	switch {
	case p.TotalCashValue != nil:
		c.totalCashValue = *p.TotalCashValue
	case p.PaymentType == PaymentPoints:
		c.totalCashValue = decimal.Zero
	default:
		c.totalCashValue = p.CashAmount
	}

	if res := c.Validate(); !res.Valid {
		return FlexibleCost{}, errors.ValidationFailed(res.Code, res.Message)
	}
	return c, nil
}

// NewCashCost creates a cash-only cost whose cash value equals the amount.
func NewCashCost(amount decimal.Decimal) (FlexibleCost, error) {
	return NewFlexibleCost(CostParams{PaymentType: PaymentCash, CashAmount: amount})
}

// NewPointsCost creates a points-only cost. cashValue is the points' cash equivalent.
func NewPointsCost(points int64, program string, cashValue decimal.Decimal) (FlexibleCost, error) {
	return NewFlexibleCost(CostParams{
		PaymentType:    PaymentPoints,
		CashAmount:     decimal.Zero,
		PointsAmount:   &points,
		PointsProgram:  &program,
		TotalCashValue: &cashValue,
	})
}

// NewHybridCost creates a cash + points cost valued at its cash component.
func NewHybridCost(cash decimal.Decimal, points int64, program string) (FlexibleCost, error) {
	return NewFlexibleCost(CostParams{
		PaymentType:   PaymentHybrid,
		CashAmount:    cash,
		PointsAmount:  &points,
		PointsProgram: &program,
	})
}

// ZeroCost is a free, cash-denominated cost.
func ZeroCost() FlexibleCost {
	return FlexibleCost{
		paymentType:    PaymentCash,
		cashAmount:     decimal.Zero,
		totalCashValue: decimal.Zero,
	}
}

func (c FlexibleCost) PaymentType() PaymentType {
	if c.paymentType == "" {
		return PaymentCash
	}
	return c.paymentType
}

func (c FlexibleCost) CashAmount() decimal.Decimal {
	return c.cashAmount
}

// PointsAmount returns the points component and whether one is present.
func (c FlexibleCost) PointsAmount() (int64, bool) {
	if c.pointsAmount == nil {
		return 0, false
	}
	return *c.pointsAmount, true
}

// PointsProgram returns the loyalty program and whether one is present.
func (c FlexibleCost) PointsProgram() (string, bool) {
	if c.pointsProgram == nil {
		return "", false
	}
	return *c.pointsProgram, true
}

// TotalCashValue is the canonical comparison value.
func (c FlexibleCost) TotalCashValue() decimal.Decimal {
	return c.totalCashValue
}

func (c FlexibleCost) Notes() string {
	return c.notes
}

// IsZero reports whether the cost is free in every denomination.
func (c FlexibleCost) IsZero() bool {
	points, _ := c.PointsAmount()
	return c.cashAmount.IsZero() && c.totalCashValue.IsZero() && points == 0
}

// Times scales every component by n, e.g. a nightly rate by a number of nights.
// Negative n is treated as zero.
func (c FlexibleCost) Times(n int) FlexibleCost {
	if n < 0 {
		n = 0
	}
	factor := decimal.NewFromInt(int64(n))
	scaled := c
	scaled.cashAmount = c.cashAmount.Mul(factor)
	scaled.totalCashValue = c.totalCashValue.Mul(factor)
	if c.pointsAmount != nil {
		points := *c.pointsAmount * int64(n)
		if n > 0 && *c.pointsAmount > math.MaxInt64/int64(n) {
			points = math.MaxInt64
		}
		scaled.pointsAmount = &points
	}
	return scaled
}

// Equal compares values rather than decimal representations.
func (c FlexibleCost) Equal(other FlexibleCost) bool {
	if c.PaymentType() != other.PaymentType() || c.notes != other.notes {
		return false
	}
	if !c.cashAmount.Equal(other.cashAmount) || !c.totalCashValue.Equal(other.totalCashValue) {
		return false
	}
	p1, ok1 := c.PointsAmount()
	p2, ok2 := other.PointsAmount()
	if ok1 != ok2 || p1 != p2 {
		return false
	}
	prog1, ok1 := c.PointsProgram()
	prog2, ok2 := other.PointsProgram()
	return ok1 == ok2 && prog1 == prog2
}

// DisplayText renders the cost for presentation. Other layers render this
// string verbatim, so the format is part of the contract.
//
//	cash:   "$1500"
//	points: "25,000 Chase points"
//	hybrid: "$200 + 15,000 Amex"
func (c FlexibleCost) DisplayText() string {
	points, _ := c.PointsAmount()
	program, _ := c.PointsProgram()

	switch c.PaymentType() {
	case PaymentPoints:
		return fmt.Sprintf("%s %s points", groupThousands(points), program)
	case PaymentHybrid:
		return fmt.Sprintf("$%s + %s %s", c.wholeCash(), groupThousands(points), program)
	default:
		return "$" + c.wholeCash()
	}
}

// ShortDisplayText is the compact form: "$1500", "25,000pts", "$200+15,000pts".
func (c FlexibleCost) ShortDisplayText() string {
	points, _ := c.PointsAmount()

	switch c.PaymentType() {
	case PaymentPoints:
		return groupThousands(points) + "pts"
	case PaymentHybrid:
		return fmt.Sprintf("$%s+%spts", c.wholeCash(), groupThousands(points))
	default:
		return c.DisplayText()
	}
}

// wholeCash drops the fraction without going through int64, so amounts past
// its range still render.
func (c FlexibleCost) wholeCash() string {
	return c.cashAmount.Truncate(0).String()
}

func (c FlexibleCost) String() string {
	return c.DisplayText()
}

// MarshalJSON renders amounts as JSON numbers alongside both display strings.
func (c FlexibleCost) MarshalJSON() ([]byte, error) {
	out := struct {
		PaymentType      PaymentType `json:"paymentType"`
		CashAmount       json.Number `json:"cashAmount"`
		PointsAmount     *int64      `json:"pointsAmount,omitempty"`
		PointsProgram    *string     `json:"pointsProgram,omitempty"`
		TotalCashValue   json.Number `json:"totalCashValue"`
		Notes            string      `json:"notes,omitempty"`
		DisplayText      string      `json:"displayText"`
		ShortDisplayText string      `json:"shortDisplayText"`
	}{
		PaymentType:      c.PaymentType(),
		CashAmount:       json.Number(c.cashAmount.String()),
		PointsAmount:     c.pointsAmount,
		PointsProgram:    c.pointsProgram,
		TotalCashValue:   json.Number(c.totalCashValue.String()),
		Notes:            c.notes,
		DisplayText:      c.DisplayText(),
		ShortDisplayText: c.ShortDisplayText(),
	}
	return json.Marshal(out)
}

type ValidationResult struct {
	Valid   bool
	Code    string
	Message string
}

// Validate checks the cost invariants.
func (c FlexibleCost) Validate() ValidationResult {
	if !c.PaymentType().IsValid() {
		return ValidationResult{
			Code:    ErrInvalidPaymentType,
			Message: fmt.Sprintf("payment type %q is not supported", c.paymentType),
		}
	}

	if c.cashAmount.IsNegative() || c.totalCashValue.IsNegative() {
		return ValidationResult{
			Code:    ErrInvalidAmount,
			Message: "amounts cannot be negative",
		}
	}

	if c.PaymentType().RequiresPoints() {
		if c.pointsAmount == nil || c.pointsProgram == nil || *c.pointsProgram == "" {
			return ValidationResult{
				Code:    ErrMissingPoints,
				Message: fmt.Sprintf("%s costs require a points amount and program", c.PaymentType()),
			}
		}
		if *c.pointsAmount < 0 {
			return ValidationResult{
				Code:    ErrInvalidAmount,
				Message: "points amount cannot be negative",
			}
		}
	}

	return ValidationResult{Valid: true}
}

// groupThousands formats n with comma separators: 25000 -> "25,000".
func groupThousands(n int64) string {
	digits := strconv.FormatInt(n, 10)
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	if len(digits) <= 3 {
		return sign + digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return sign + b.String()
}
