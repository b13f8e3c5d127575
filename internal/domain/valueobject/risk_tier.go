package valueobject

import "strings"

// RiskTier is an immutable value object for the categorical risk level of a
// single fraud signal (IP reputation, email reputation, device trust).
type RiskTier struct {
	value string
}

var (
	TierLow       = RiskTier{value: "low"}
	TierMedium    = RiskTier{value: "medium"}
	TierHigh      = RiskTier{value: "high"}
	TierNewDomain = RiskTier{value: "new_domain"}
)

// RiskTierFromString parses a tier name case-insensitively. Unrecognized
// values return the zero RiskTier, which carries no weight in scoring.
func RiskTierFromString(s string) (RiskTier, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return TierLow, true
	case "medium":
		return TierMedium, true
	case "high":
		return TierHigh, true
	case "new_domain":
		return TierNewDomain, true
	default:
		return RiskTier{}, false
	}
}

// String returns the lowercase tier name.
func (t RiskTier) String() string {
	return t.value
}

// IsZero returns true if the tier is unset or was unrecognized.
func (t RiskTier) IsZero() bool {
	return t.value == ""
}

// Equal checks equality with another RiskTier.
func (t RiskTier) Equal(other RiskTier) bool {
	return t.value == other.value
}
