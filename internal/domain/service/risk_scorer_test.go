package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velopago/riskengine/internal/domain/model"
	"github.com/velopago/riskengine/internal/domain/service"
	"github.com/velopago/riskengine/internal/domain/valueobject"
)

func newScorer() *service.RiskScorer {
	return service.NewRiskScorer(service.DefaultConfig())
}

// baselineTx mirrors a record with every field absent: all-low tiers, new
// reputation, noon hour, no countries, zero amount.
func baselineTx() model.Transaction {
	return model.TransactionFromRecord(map[string]string{})
}

func TestRiskScorer_Baseline(t *testing.T) {
	output := newScorer().Score(baselineTx())

	assert.Equal(t, 0, output.Score)
	assert.Empty(t, output.Reasons)
	assert.True(t, output.Decision.IsAccepted())
	assert.False(t, output.HardBlocked)
}

func TestRiskScorer_Deterministic(t *testing.T) {
	scorer := newScorer()
	tx := model.TransactionFromRecord(map[string]string{
		"ip_risk":         "high",
		"email_risk":      "new_domain",
		"user_reputation": "recurrent",
		"hour":            "23",
		"bin_country":     "mx",
		"ip_country":      "us",
		"amount_mxn":      "9000.50",
		"product_type":    "physical",
	})

	first := scorer.Score(tx)
	second := scorer.Score(tx)

	assert.Equal(t, first, second)
}

func TestRiskScorer_HardBlock(t *testing.T) {
	scorer := newScorer()

	t.Run("chargebacks at limit with high ip risk reject immediately", func(t *testing.T) {
		tx := baselineTx()
		tx.ChargebackCount = 2
		tx.IPRisk = valueobject.TierHigh

		output := scorer.Score(tx)

		assert.True(t, output.Decision.IsRejected())
		assert.Equal(t, 100, output.Score)
		assert.Equal(t, []string{"hard_block:chargebacks>=2+ip_high"}, output.Reasons)
		assert.True(t, output.HardBlocked)
	})

	t.Run("overrides every other signal, even score-lowering ones", func(t *testing.T) {
		tx := model.TransactionFromRecord(map[string]string{
			"chargeback_count": "3",
			"ip_risk":          "HIGH", // casing must not matter
			"user_reputation":  "trusted",
			"customer_txn_30d": "50",
			"amount_mxn":       "1",
		})

		output := scorer.Score(tx)

		assert.True(t, output.Decision.IsRejected())
		assert.Equal(t, 100, output.Score)
		require.Len(t, output.Reasons, 1)
		assert.Contains(t, output.Reasons[0], "hard_block")
	})

	t.Run("chargebacks below limit do not block", func(t *testing.T) {
		tx := baselineTx()
		tx.ChargebackCount = 1
		tx.IPRisk = valueobject.TierHigh

		output := scorer.Score(tx)

		assert.False(t, output.HardBlocked)
		assert.Equal(t, 4, output.Score) // ip_risk:high only
	})

	t.Run("high chargebacks without high ip risk do not block", func(t *testing.T) {
		tx := baselineTx()
		tx.ChargebackCount = 10
		tx.IPRisk = valueobject.TierMedium

		output := scorer.Score(tx)

		assert.False(t, output.HardBlocked)
		assert.Equal(t, 2, output.Score) // ip_risk:medium only
	})
}

func TestRiskScorer_CategoricalTiers(t *testing.T) {
	scorer := newScorer()

	tx := baselineTx()
	tx.IPRisk = valueobject.TierMedium
	tx.EmailRisk = valueobject.TierNewDomain
	tx.DeviceFingerprintRisk = valueobject.TierHigh

	output := scorer.Score(tx)

	// ip medium 2 + email new_domain 2 + device high 4 = 8
	assert.Equal(t, 8, output.Score)
	assert.Equal(t, []string{
		"ip_risk:medium(+2)",
		"email_risk:new_domain(+2)",
		"device_fingerprint_risk:high(+4)",
	}, output.Reasons)
}

func TestRiskScorer_UnknownTiersContributeNothing(t *testing.T) {
	scorer := newScorer()

	tx := model.TransactionFromRecord(map[string]string{
		"ip_risk":                 "extreme",
		"email_risk":              "unknown",
		"device_fingerprint_risk": "",
		"user_reputation":         "vip",
	})

	output := scorer.Score(tx)

	assert.Equal(t, 0, output.Score)
	assert.Empty(t, output.Reasons)
	assert.True(t, output.Decision.IsAccepted())
}

func TestRiskScorer_Reputation(t *testing.T) {
	scorer := newScorer()

	t.Run("trusted lowers the score", func(t *testing.T) {
		tx := baselineTx()
		tx.UserReputation = valueobject.ReputationTrusted
		tx.IPRisk = valueobject.TierHigh

		output := scorer.Score(tx)

		// ip high 4 + trusted -2 = 2
		assert.Equal(t, 2, output.Score)
		assert.Contains(t, output.Reasons, "user_reputation:trusted(-2)")
	})

	t.Run("high_risk raises the score", func(t *testing.T) {
		tx := baselineTx()
		tx.UserReputation = valueobject.ReputationHighRisk

		output := scorer.Score(tx)

		assert.Equal(t, 4, output.Score)
		assert.Contains(t, output.Reasons, "user_reputation:high_risk(+4)")
	})

	t.Run("new contributes zero and no reason", func(t *testing.T) {
		output := scorer.Score(baselineTx())
		assert.Empty(t, output.Reasons)
	})
}

func TestRiskScorer_NightHour(t *testing.T) {
	scorer := newScorer()

	tests := []struct {
		hour  int
		night bool
	}{
		{hour: 22, night: true},
		{hour: 23, night: true},
		{hour: 0, night: true},
		{hour: 2, night: true},
		{hour: 5, night: true},
		{hour: 6, night: false},
		{hour: 12, night: false},
		{hour: 21, night: false},
	}

	for _, tt := range tests {
		tx := baselineTx()
		tx.Hour = tt.hour

		output := scorer.Score(tx)

		if tt.night {
			assert.Equal(t, 1, output.Score, "hour %d", tt.hour)
			assert.Contains(t, output.Reasons[0], "night_hour")
		} else {
			assert.Equal(t, 0, output.Score, "hour %d", tt.hour)
		}
	}
}

func TestRiskScorer_GeoMismatch(t *testing.T) {
	scorer := newScorer()

	t.Run("differing countries fire the rule", func(t *testing.T) {
		tx := baselineTx()
		tx.BINCountry = "BR"
		tx.IPCountry = "MX"

		output := scorer.Score(tx)

		assert.Equal(t, 2, output.Score)
		assert.Equal(t, []string{"geo_mismatch:BR!=MX(+2)"}, output.Reasons)
	})

	t.Run("comparison is case-insensitive via decode normalization", func(t *testing.T) {
		tx := model.TransactionFromRecord(map[string]string{
			"bin_country": "mx",
			"ip_country":  "MX",
		})

		output := scorer.Score(tx)

		assert.Equal(t, 0, output.Score)
	})

	t.Run("an empty side disables the rule", func(t *testing.T) {
		tx := baselineTx()
		tx.BINCountry = "BR"

		output := scorer.Score(tx)

		assert.Equal(t, 0, output.Score)
	})
}

func TestRiskScorer_HighAmount(t *testing.T) {
	scorer := newScorer()

	t.Run("threshold is per product type and inclusive", func(t *testing.T) {
		tx := baselineTx()
		tx.UserReputation = valueobject.ReputationTrusted
		tx.ProductType = "subscription"
		tx.AmountMXN = decimal.NewFromInt(1500)

		output := scorer.Score(tx)

		// high_amount 2 + trusted -2 = 0
		assert.Contains(t, output.Reasons, "high_amount:subscription:1500(+2)")
	})

	t.Run("unrecognized product type falls back to the default threshold", func(t *testing.T) {
		tx := baselineTx()
		tx.UserReputation = valueobject.ReputationTrusted
		tx.ProductType = "giftcard"
		tx.AmountMXN = decimal.NewFromInt(3999)

		output := scorer.Score(tx)
		assert.Empty(t, output.Reasons)

		tx.AmountMXN = decimal.NewFromInt(4000)
		output = scorer.Score(tx)
		assert.Contains(t, output.Reasons, "high_amount:giftcard:4000(+2)")
	})

	t.Run("new users stack the new-user surcharge", func(t *testing.T) {
		tx := baselineTx() // reputation defaults to new
		tx.ProductType = "digital"
		tx.AmountMXN = decimal.NewFromInt(2500)

		output := scorer.Score(tx)

		// high_amount 2 + new_user_high_amount 2 = 4
		assert.Equal(t, 4, output.Score)
		assert.Equal(t, []string{
			"high_amount:digital:2500(+2)",
			"new_user_high_amount(+2)",
		}, output.Reasons)
	})

	t.Run("trusted users do not stack the surcharge", func(t *testing.T) {
		tx := baselineTx()
		tx.UserReputation = valueobject.ReputationTrusted
		tx.ProductType = "digital"
		tx.AmountMXN = decimal.NewFromInt(2500)

		output := scorer.Score(tx)

		assert.NotContains(t, output.Reasons, "new_user_high_amount(+2)")
		assert.Contains(t, output.Reasons, "high_amount:digital:2500(+2)")
	})
}

func TestRiskScorer_LatencyExtreme(t *testing.T) {
	scorer := newScorer()

	tx := baselineTx()
	tx.LatencyMS = 2499

	output := scorer.Score(tx)
	assert.Equal(t, 0, output.Score)

	tx.LatencyMS = 2500
	output = scorer.Score(tx)
	assert.Equal(t, 2, output.Score)
	assert.Equal(t, []string{"latency_extreme:2500ms(+2)"}, output.Reasons)
}

func TestRiskScorer_FrequencyBuffer(t *testing.T) {
	scorer := newScorer()

	// positiveSignal produces a pre-buffer score of exactly 1 for recurrent
	// customers: ip medium 2 + recurrent -1.
	positiveSignal := func() model.Transaction {
		tx := baselineTx()
		tx.IPRisk = valueobject.TierMedium
		tx.UserReputation = valueobject.ReputationRecurrent
		tx.CustomerTxn30d = 3
		return tx
	}

	t.Run("applies once for established frequent customers", func(t *testing.T) {
		output := scorer.Score(positiveSignal())

		assert.Equal(t, 0, output.Score)
		assert.Contains(t, output.Reasons, "frequency_buffer(-1)")
		assert.True(t, output.Decision.IsAccepted())
	})

	t.Run("requires an established reputation", func(t *testing.T) {
		tx := positiveSignal()
		tx.UserReputation = valueobject.ReputationNew

		output := scorer.Score(tx)

		assert.NotContains(t, output.Reasons, "frequency_buffer(-1)")
		assert.Equal(t, 2, output.Score) // ip medium, no reputation delta
	})

	t.Run("requires at least three recent transactions", func(t *testing.T) {
		tx := positiveSignal()
		tx.CustomerTxn30d = 2

		output := scorer.Score(tx)

		assert.NotContains(t, output.Reasons, "frequency_buffer(-1)")
		assert.Equal(t, 1, output.Score)
	})

	t.Run("requires a positive pre-buffer score", func(t *testing.T) {
		tx := baselineTx()
		tx.UserReputation = valueobject.ReputationTrusted
		tx.CustomerTxn30d = 10

		output := scorer.Score(tx)

		// trusted -2, nothing else: buffer must not apply at -2.
		assert.Equal(t, -2, output.Score)
		assert.NotContains(t, output.Reasons, "frequency_buffer(-1)")
	})

	t.Run("buffer reduces a score of exactly one to zero", func(t *testing.T) {
		tx := baselineTx()
		tx.UserReputation = valueobject.ReputationTrusted
		tx.CustomerTxn30d = 5
		// ip medium +2, email medium +1, trusted -2: pre-buffer score of 1.
		tx.IPRisk = valueobject.TierMedium
		tx.EmailRisk = valueobject.TierMedium

		output := scorer.Score(tx)

		assert.Equal(t, 0, output.Score)
		assert.Contains(t, output.Reasons, "frequency_buffer(-1)")
		assert.True(t, output.Decision.IsAccepted())
	})
}

// Raising one tier on an otherwise fixed record must never lower the score
// (absent the frequency buffer and reputation interactions).
func TestRiskScorer_MonotonicAccumulation(t *testing.T) {
	scorer := newScorer()

	tx := baselineTx()
	tx.EmailRisk = valueobject.TierMedium
	tx.Hour = 23

	low := scorer.Score(tx)

	tx.IPRisk = valueobject.TierMedium
	medium := scorer.Score(tx)

	tx.IPRisk = valueobject.TierHigh
	high := scorer.Score(tx)

	assert.GreaterOrEqual(t, medium.Score, low.Score)
	assert.GreaterOrEqual(t, high.Score, medium.Score)
}

func TestRiskScorer_ReasonsFollowRuleOrder(t *testing.T) {
	scorer := newScorer()

	tx := model.TransactionFromRecord(map[string]string{
		"ip_risk":                 "medium",
		"device_fingerprint_risk": "medium",
		"user_reputation":         "recurrent",
		"hour":                    "23",
		"bin_country":             "BR",
		"ip_country":              "MX",
		"amount_mxn":              "6000",
		"product_type":            "physical",
		"latency_ms":              "3000",
		"customer_txn_30d":        "4",
	})

	output := scorer.Score(tx)

	assert.Equal(t, []string{
		"ip_risk:medium(+2)",
		"device_fingerprint_risk:medium(+2)",
		"user_reputation:recurrent(-1)",
		"night_hour:23(+1)",
		"geo_mismatch:BR!=MX(+2)",
		"high_amount:physical:6000(+2)",
		"latency_extreme:3000ms(+2)",
		"frequency_buffer(-1)",
	}, output.Reasons)
	// 2+2-1+1+2+2+2-1 = 9: one short of rejection, goes to review.
	assert.Equal(t, 9, output.Score)
	assert.True(t, output.Decision.IsInReview())
}

// End-to-end worst-case scenario: every risk-raising rule fires.
func TestRiskScorer_AllSignalsScenario(t *testing.T) {
	scorer := newScorer()

	tx := model.TransactionFromRecord(map[string]string{
		"ip_risk":                 "high",
		"email_risk":              "high",
		"device_fingerprint_risk": "high",
		"user_reputation":         "high_risk",
		"hour":                    "2",
		"bin_country":             "BR",
		"ip_country":              "MX",
		"amount_mxn":              "10000",
		"product_type":            "physical",
		"latency_ms":              "5000",
		"customer_txn_30d":        "0",
	})

	output := scorer.Score(tx)

	// 4 + 3 + 4 + 4 + 1 + 2 + 2 + 2 = 22
	assert.Equal(t, 22, output.Score)
	assert.True(t, output.Decision.IsRejected())
	assert.False(t, output.HardBlocked)
}

func TestRiskScorer_ThresholdBoundaries(t *testing.T) {
	scorer := newScorer()

	// ip medium 2 + device medium 2 = 4: exactly the review boundary.
	tx := baselineTx()
	tx.IPRisk = valueobject.TierMedium
	tx.DeviceFingerprintRisk = valueobject.TierMedium

	output := scorer.Score(tx)
	assert.Equal(t, 4, output.Score)
	assert.True(t, output.Decision.IsInReview())

	// ip high 4 + device high 4 + email medium 1 + night 1 = 10: exactly the
	// reject boundary, inclusive.
	tx = baselineTx()
	tx.IPRisk = valueobject.TierHigh
	tx.DeviceFingerprintRisk = valueobject.TierHigh
	tx.EmailRisk = valueobject.TierMedium
	tx.Hour = 23

	output = scorer.Score(tx)
	assert.Equal(t, 10, output.Score)
	assert.True(t, output.Decision.IsRejected())
}

func TestRiskScorer_CustomConfig(t *testing.T) {
	cfg := service.DefaultConfig()
	cfg.ReviewAt = 1
	cfg.RejectAt = 3
	cfg.ChargebackHardBlock = 5
	scorer := service.NewRiskScorer(cfg)

	tx := baselineTx()
	tx.ChargebackCount = 3
	tx.IPRisk = valueobject.TierHigh

	output := scorer.Score(tx)

	// Hard block limit raised to 5, so weighted scoring runs: ip high 4.
	assert.False(t, output.HardBlocked)
	assert.Equal(t, 4, output.Score)
	assert.True(t, output.Decision.IsRejected())
}
