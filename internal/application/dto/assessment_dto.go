package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/velopago/riskengine/internal/domain/model"
)

// AssessTransactionRequest is the input DTO for the AssessTransaction use
// case. Record carries the raw transaction fields exactly as received at the
// boundary; decoding (defaults, lenient coercion, tier parsing) happens once
// inside the use case.
type AssessTransactionRequest struct {
	TransactionID uuid.UUID         `json:"transaction_id"`
	Record        map[string]string `json:"record"`
}

// AssessmentResponse is the output DTO returned after an assessment.
type AssessmentResponse struct {
	ID            uuid.UUID `json:"id"`
	TransactionID uuid.UUID `json:"transaction_id"`
	Amount        string    `json:"amount"`
	ProductType   string    `json:"product_type"`
	Decision      string    `json:"decision"`
	RiskScore     int       `json:"risk_score"`
	Reasons       []string  `json:"reasons"`
	HardBlocked   bool      `json:"hard_blocked"`
	AssessedAt    time.Time `json:"assessed_at"`
}

// FromModel maps a domain assessment to the response DTO.
func FromModel(a *model.Assessment) AssessmentResponse {
	return AssessmentResponse{
		ID:            a.ID(),
		TransactionID: a.TransactionID(),
		Amount:        a.Amount().String(),
		ProductType:   a.ProductType(),
		Decision:      a.Decision().String(),
		RiskScore:     a.RiskScore(),
		Reasons:       a.Reasons(),
		HardBlocked:   a.HardBlocked(),
		AssessedAt:    a.AssessedAt(),
	}
}
