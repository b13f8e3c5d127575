package valueobject

import "strings"

// Reputation is an immutable value object for the account-history tier of the
// paying customer.
type Reputation struct {
	value string
}

var (
	ReputationTrusted   = Reputation{value: "trusted"}
	ReputationRecurrent = Reputation{value: "recurrent"}
	ReputationNew       = Reputation{value: "new"}
	ReputationHighRisk  = Reputation{value: "high_risk"}
)

// ReputationFromString parses a reputation tier case-insensitively.
// Unrecognized values return the zero Reputation, which carries no weight and
// does not qualify for new-user or established-customer rules.
func ReputationFromString(s string) (Reputation, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trusted":
		return ReputationTrusted, true
	case "recurrent":
		return ReputationRecurrent, true
	case "new":
		return ReputationNew, true
	case "high_risk":
		return ReputationHighRisk, true
	default:
		return Reputation{}, false
	}
}

// String returns the lowercase reputation tier name.
func (r Reputation) String() string {
	return r.value
}

// IsZero returns true if the reputation is unset or was unrecognized.
func (r Reputation) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another Reputation.
func (r Reputation) Equal(other Reputation) bool {
	return r.value == other.value
}

// IsEstablished returns true for customers with a trusted or recurrent
// history, the tiers that qualify for the frequency buffer discount.
func (r Reputation) IsEstablished() bool {
	return r.value == "trusted" || r.value == "recurrent"
}
