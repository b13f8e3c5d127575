package valueobject

import "fmt"

// Decision is an immutable value object representing the outcome of a fraud
// risk assessment.
type Decision struct {
	value string
}

var (
	DecisionAccepted = Decision{value: "ACCEPTED"}
	DecisionInReview = Decision{value: "IN_REVIEW"}
	DecisionRejected = Decision{value: "REJECTED"}
)

// DecisionFromString reconstructs a decision from its string representation.
func DecisionFromString(s string) (Decision, error) {
	switch s {
	case "ACCEPTED":
		return DecisionAccepted, nil
	case "IN_REVIEW":
		return DecisionInReview, nil
	case "REJECTED":
		return DecisionRejected, nil
	default:
		return Decision{}, fmt.Errorf("invalid decision: %s", s)
	}
}

// DecisionFromScore maps a final risk score onto a decision. Both boundaries
// are inclusive: a score equal to rejectAt rejects, a score equal to reviewAt
// goes to review.
func DecisionFromScore(score, reviewAt, rejectAt int) Decision {
	switch {
	case score >= rejectAt:
		return DecisionRejected
	case score >= reviewAt:
		return DecisionInReview
	default:
		return DecisionAccepted
	}
}

// String returns the string representation.
func (d Decision) String() string {
	return d.value
}

// IsZero returns true if the decision has not been set.
func (d Decision) IsZero() bool {
	return d.value == ""
}

// Equal checks equality with another Decision.
func (d Decision) Equal(other Decision) bool {
	return d.value == other.value
}

// IsAccepted returns true if the decision is ACCEPTED.
func (d Decision) IsAccepted() bool {
	return d.value == "ACCEPTED"
}

// IsInReview returns true if the decision is IN_REVIEW.
func (d Decision) IsInReview() bool {
	return d.value == "IN_REVIEW"
}

// IsRejected returns true if the decision is REJECTED.
func (d Decision) IsRejected() bool {
	return d.value == "REJECTED"
}
