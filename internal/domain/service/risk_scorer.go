package service

import (
	"fmt"

	"github.com/velopago/riskengine/internal/domain/model"
	"github.com/velopago/riskengine/internal/domain/valueobject"
)

// RiskOutput contains the result of scoring one transaction.
type RiskOutput struct {
	Decision    valueobject.Decision
	Score       int
	Reasons     []string
	HardBlocked bool
}

// RiskScorer evaluates the ordered fraud rule pipeline against a single
// transaction. It is a pure function of (transaction, config): no state
// carries between calls and identical inputs always produce an identical
// result. Scoring never fails on business input; defaults and lenient
// coercion are absorbed upstream by TransactionFromRecord.
type RiskScorer struct {
	cfg Config
}

// NewRiskScorer creates a RiskScorer bound to an immutable configuration.
func NewRiskScorer(cfg Config) *RiskScorer {
	return &RiskScorer{cfg: cfg}
}

// Score runs the rule pipeline in its fixed order: hard block, categorical
// tiers, reputation, night hour, geo mismatch, amount, latency, frequency
// buffer, then threshold mapping. Each firing rule appends one reason.
func (s *RiskScorer) Score(tx model.Transaction) RiskOutput {
	if out, blocked := s.hardBlock(tx); blocked {
		return out
	}

	score := 0
	reasons := make([]string, 0, 8)

	add, catReasons := s.categoricalScore(tx)
	score += add
	reasons = append(reasons, catReasons...)

	add, reason := s.reputationScore(tx)
	score += add
	if reason != "" {
		reasons = append(reasons, reason)
	}

	add, reason = s.nightScore(tx)
	score += add
	if reason != "" {
		reasons = append(reasons, reason)
	}

	add, reason = s.geoMismatchScore(tx)
	score += add
	if reason != "" {
		reasons = append(reasons, reason)
	}

	add, amountReasons := s.amountScore(tx)
	score += add
	reasons = append(reasons, amountReasons...)

	add, reason = s.latencyScore(tx)
	score += add
	if reason != "" {
		reasons = append(reasons, reason)
	}

	add, reason = s.frequencyBuffer(tx, score)
	score += add
	if reason != "" {
		reasons = append(reasons, reason)
	}

	return RiskOutput{
		Decision: valueobject.DecisionFromScore(score, s.cfg.ReviewAt, s.cfg.RejectAt),
		Score:    score,
		Reasons:  reasons,
	}
}

// hardBlock rejects outright when the chargeback count reaches the configured
// limit while the IP risk tier is high. It is an absolute override: no other
// rule evaluates.
func (s *RiskScorer) hardBlock(tx model.Transaction) (RiskOutput, bool) {
	if tx.ChargebackCount < s.cfg.ChargebackHardBlock || !tx.IPRisk.Equal(valueobject.TierHigh) {
		return RiskOutput{}, false
	}
	return RiskOutput{
		Decision:    valueobject.DecisionRejected,
		Score:       100,
		Reasons:     []string{fmt.Sprintf("hard_block:chargebacks>=%d+ip_high", s.cfg.ChargebackHardBlock)},
		HardBlocked: true,
	}, true
}

func (s *RiskScorer) categoricalScore(tx model.Transaction) (int, []string) {
	signals := []struct {
		name    string
		tier    valueobject.RiskTier
		weights map[valueobject.RiskTier]int
	}{
		{"ip_risk", tx.IPRisk, s.cfg.Weights.IPRisk},
		{"email_risk", tx.EmailRisk, s.cfg.Weights.EmailRisk},
		{"device_fingerprint_risk", tx.DeviceFingerprintRisk, s.cfg.Weights.DeviceFingerprintRisk},
	}

	score := 0
	var reasons []string
	for _, sig := range signals {
		add := sig.weights[sig.tier]
		score += add
		if add != 0 {
			reasons = append(reasons, fmt.Sprintf("%s:%s(+%d)", sig.name, sig.tier, add))
		}
	}
	return score, reasons
}

func (s *RiskScorer) reputationScore(tx model.Transaction) (int, string) {
	add := s.cfg.Weights.UserReputation[tx.UserReputation]
	if add == 0 {
		return 0, ""
	}
	return add, fmt.Sprintf("user_reputation:%s(%+d)", tx.UserReputation, add)
}

// isNight reports whether the hour falls in the wrap-around night window,
// 22:00 through 05:59.
func isNight(hour int) bool {
	return hour >= 22 || hour <= 5
}

func (s *RiskScorer) nightScore(tx model.Transaction) (int, string) {
	if !isNight(tx.Hour) {
		return 0, ""
	}
	add := s.cfg.Weights.NightHour
	return add, fmt.Sprintf("night_hour:%d(+%d)", tx.Hour, add)
}

func (s *RiskScorer) geoMismatchScore(tx model.Transaction) (int, string) {
	if tx.BINCountry == "" || tx.IPCountry == "" || tx.BINCountry == tx.IPCountry {
		return 0, ""
	}
	add := s.cfg.Weights.GeoMismatch
	return add, fmt.Sprintf("geo_mismatch:%s!=%s(+%d)", tx.BINCountry, tx.IPCountry, add)
}

// amountScore fires when the amount reaches the product-type threshold. New
// users additionally pay the new-user-high-amount surcharge on top of the
// base weight.
func (s *RiskScorer) amountScore(tx model.Transaction) (int, []string) {
	threshold := s.cfg.AmountThreshold(tx.ProductType)
	if tx.AmountMXN.LessThan(threshold) {
		return 0, nil
	}

	add := s.cfg.Weights.HighAmount
	reasons := []string{fmt.Sprintf("high_amount:%s:%s(+%d)", tx.ProductType, tx.AmountMXN, add)}
	if tx.UserReputation.Equal(valueobject.ReputationNew) {
		extra := s.cfg.Weights.NewUserHighAmount
		add += extra
		reasons = append(reasons, fmt.Sprintf("new_user_high_amount(+%d)", extra))
	}
	return add, reasons
}

func (s *RiskScorer) latencyScore(tx model.Transaction) (int, string) {
	if tx.LatencyMS < s.cfg.LatencyMSExtreme {
		return 0, ""
	}
	add := s.cfg.Weights.LatencyExtreme
	return add, fmt.Sprintf("latency_extreme:%dms(+%d)", tx.LatencyMS, add)
}

// frequencyBuffer discounts one point for established customers with recent
// activity, but only while the running score is still positive. It applies at
// most once, after every other rule.
func (s *RiskScorer) frequencyBuffer(tx model.Transaction, running int) (int, string) {
	if !tx.UserReputation.IsEstablished() || tx.CustomerTxn30d < 3 || running <= 0 {
		return 0, ""
	}
	return -1, "frequency_buffer(-1)"
}
