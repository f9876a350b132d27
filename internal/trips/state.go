package trips

// State is where a document ended up in the assembly state machine:
// unparsed -> {valid, rejected}, with valid split by recommendation presence.
type State string

const (
	StateUnparsed                   State = "unparsed"
	StateRejected                   State = "rejected"
	StateValidWithRecommendation    State = "valid_with_recommendation"
	StateValidWithoutRecommendation State = "valid_without_recommendation"
)

func (s State) String() string {
	return string(s)
}

// IsValid reports whether the document produced a usable trip.
func (s State) IsValid() bool {
	return s == StateValidWithRecommendation || s == StateValidWithoutRecommendation
}

// Preparing is the "still being prepared" state shown for a valid trip
// whose recommendation is absent.
func (s State) Preparing() bool {
	return s == StateValidWithoutRecommendation
}
