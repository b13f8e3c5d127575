package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/velopago/riskengine/internal/domain/model"
	"github.com/velopago/riskengine/internal/domain/valueobject"
)

// Weights holds the score deltas contributed by each rule. Categorical tables
// map tier value objects to integer deltas; a lookup miss (including the zero
// tier for unrecognized input) contributes nothing.
type Weights struct {
	IPRisk                map[valueobject.RiskTier]int
	EmailRisk             map[valueobject.RiskTier]int
	DeviceFingerprintRisk map[valueobject.RiskTier]int
	UserReputation        map[valueobject.Reputation]int
	NightHour             int
	GeoMismatch           int
	HighAmount            int
	LatencyExtreme        int
	NewUserHighAmount     int
}

// Config carries every tunable of the scoring pipeline. It is constructed
// once at startup and treated as immutable afterwards; the scorer never
// writes to it.
type Config struct {
	// AmountThresholds maps lowercase product types to the amount at or above
	// which the high-amount rule fires. Must contain a "_default" entry.
	AmountThresholds map[string]decimal.Decimal

	// LatencyMSExtreme is the latency at or above which the latency rule fires.
	LatencyMSExtreme int

	// ChargebackHardBlock is the chargeback count at or above which, combined
	// with a high IP risk tier, the transaction is rejected outright.
	ChargebackHardBlock int

	Weights Weights

	// ReviewAt and RejectAt are the decision boundaries, both inclusive.
	// RejectAt should be configured strictly greater than ReviewAt; the
	// engine does not enforce this.
	ReviewAt int
	RejectAt int
}

// DefaultConfig returns the production scoring configuration.
func DefaultConfig() Config {
	return Config{
		AmountThresholds: map[string]decimal.Decimal{
			"digital":                decimal.NewFromInt(2500),
			"physical":               decimal.NewFromInt(6000),
			"subscription":           decimal.NewFromInt(1500),
			model.DefaultProductType: decimal.NewFromInt(4000),
		},
		LatencyMSExtreme:    2500,
		ChargebackHardBlock: 2,
		Weights: Weights{
			IPRisk: map[valueobject.RiskTier]int{
				valueobject.TierLow:    0,
				valueobject.TierMedium: 2,
				valueobject.TierHigh:   4,
			},
			EmailRisk: map[valueobject.RiskTier]int{
				valueobject.TierLow:       0,
				valueobject.TierMedium:    1,
				valueobject.TierHigh:      3,
				valueobject.TierNewDomain: 2,
			},
			DeviceFingerprintRisk: map[valueobject.RiskTier]int{
				valueobject.TierLow:    0,
				valueobject.TierMedium: 2,
				valueobject.TierHigh:   4,
			},
			UserReputation: map[valueobject.Reputation]int{
				valueobject.ReputationTrusted:   -2,
				valueobject.ReputationRecurrent: -1,
				valueobject.ReputationNew:       0,
				valueobject.ReputationHighRisk:  4,
			},
			NightHour:         1,
			GeoMismatch:       2,
			HighAmount:        2,
			LatencyExtreme:    2,
			NewUserHighAmount: 2,
		},
		ReviewAt: 4,
		RejectAt: 10,
	}
}

// AmountThreshold resolves the high-amount threshold for a product type,
// falling back to the "_default" entry for unrecognized types.
func (c Config) AmountThreshold(productType string) decimal.Decimal {
	if t, ok := c.AmountThresholds[strings.ToLower(productType)]; ok {
		return t
	}
	return c.AmountThresholds[model.DefaultProductType]
}
