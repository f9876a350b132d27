package valueobjects

import "strings"

// PaymentType is how a cost is settled.
type PaymentType string

const (
	PaymentCash   PaymentType = "cash"
	PaymentPoints PaymentType = "points"
	PaymentHybrid PaymentType = "hybrid"
)

// DefaultPaymentType is used when a document carries no usable payment type.
const DefaultPaymentType = PaymentCash

var paymentTypeTags = map[string]PaymentType{
	"cash":    PaymentCash,
	"points":  PaymentPoints,
	"hybrid":  PaymentHybrid,
	"mixed":   PaymentHybrid,
	"loyalty": PaymentPoints,
}

// ResolvePaymentType maps a raw tag to a PaymentType. Unknown or empty tags
// resolve to DefaultPaymentType with ok=false.
func ResolvePaymentType(raw string) (PaymentType, bool) {
	if pt, ok := paymentTypeTags[normalizeTag(raw)]; ok {
		return pt, true
	}
	return DefaultPaymentType, false
}

func (p PaymentType) String() string {
	return string(p)
}

// Label is the user-facing name.
func (p PaymentType) Label() string {
	switch p {
	case PaymentPoints:
		return "Points"
	case PaymentHybrid:
		return "Cash + Points"
	default:
		return "Cash"
	}
}

// IsValid checks if the value is a canonical payment type
func (p PaymentType) IsValid() bool {
	switch p {
	case PaymentCash, PaymentPoints, PaymentHybrid:
		return true
	default:
		return false
	}
}

// RequiresPoints reports whether costs of this type must name a points amount and program.
func (p PaymentType) RequiresPoints() bool {
	return p == PaymentPoints || p == PaymentHybrid
}

func normalizeTag(raw string) string {
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(raw)))
}
