package model

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/velopago/riskengine/internal/domain/valueobject"
)

// DefaultProductType is the amount-threshold table key used when a
// transaction carries no recognizable product type.
const DefaultProductType = "_default"

// Transaction is the flat, typed view of a single payment transaction record.
// Every field is optional in source data; TransactionFromRecord fills the
// documented default for anything absent or unparseable, so scoring never has
// to deal with raw strings.
type Transaction struct {
	// ChargebackCount is the customer's historical chargeback count. Default 0.
	ChargebackCount int
	// IPRisk is the IP reputation tier. Default low.
	IPRisk valueobject.RiskTier
	// EmailRisk is the email reputation tier. Default low.
	EmailRisk valueobject.RiskTier
	// DeviceFingerprintRisk is the device trust tier. Default low.
	DeviceFingerprintRisk valueobject.RiskTier
	// UserReputation is the account-history tier. Default new.
	UserReputation valueobject.Reputation
	// Hour is the local hour of the transaction, 0-23. Default 12.
	Hour int
	// BINCountry is the card issuing country, uppercase ISO code or "".
	BINCountry string
	// IPCountry is the originating IP country, uppercase ISO code or "".
	IPCountry string
	// AmountMXN is the transaction amount in MXN. Default zero.
	AmountMXN decimal.Decimal
	// ProductType is the lowercase product category. Default "_default".
	ProductType string
	// LatencyMS is the request latency in milliseconds. Default 0.
	LatencyMS int
	// CustomerTxn30d is the customer's 30-day transaction count. Default 0.
	CustomerTxn30d int
}

// TransactionFromRecord decodes a raw field mapping into a Transaction.
// Record keys not listed in the field table are ignored. Coercion is lenient:
// a present-but-unparseable numeric value falls back to 0 (never an error),
// while an absent field takes its documented default.
func TransactionFromRecord(record map[string]string) Transaction {
	tx := Transaction{
		IPRisk:                valueobject.TierLow,
		EmailRisk:             valueobject.TierLow,
		DeviceFingerprintRisk: valueobject.TierLow,
		UserReputation:        valueobject.ReputationNew,
		Hour:                  12,
		ProductType:           DefaultProductType,
	}

	if raw, ok := record["chargeback_count"]; ok {
		tx.ChargebackCount = safeInt(raw)
	}
	if raw, ok := record["ip_risk"]; ok {
		tx.IPRisk, _ = valueobject.RiskTierFromString(raw)
	}
	if raw, ok := record["email_risk"]; ok {
		tx.EmailRisk, _ = valueobject.RiskTierFromString(raw)
	}
	if raw, ok := record["device_fingerprint_risk"]; ok {
		tx.DeviceFingerprintRisk, _ = valueobject.RiskTierFromString(raw)
	}
	if raw, ok := record["user_reputation"]; ok {
		tx.UserReputation, _ = valueobject.ReputationFromString(raw)
	}
	if raw, ok := record["hour"]; ok {
		tx.Hour = safeInt(raw)
	}
	tx.BINCountry = strings.ToUpper(strings.TrimSpace(record["bin_country"]))
	tx.IPCountry = strings.ToUpper(strings.TrimSpace(record["ip_country"]))
	if raw, ok := record["amount_mxn"]; ok {
		tx.AmountMXN = safeDecimal(raw)
	}
	if raw, ok := record["product_type"]; ok {
		if ptype := strings.ToLower(strings.TrimSpace(raw)); ptype != "" {
			tx.ProductType = ptype
		}
	}
	if raw, ok := record["latency_ms"]; ok {
		tx.LatencyMS = safeInt(raw)
	}
	if raw, ok := record["customer_txn_30d"]; ok {
		tx.CustomerTxn30d = safeInt(raw)
	}

	return tx
}

func safeInt(raw string) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return v
}

func safeDecimal(raw string) decimal.Decimal {
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return v
}
