package usecase

import (
	"context"
	"fmt"

	"github.com/velopago/riskengine/internal/application/dto"
	"github.com/velopago/riskengine/internal/domain/model"
	"github.com/velopago/riskengine/internal/domain/port"
	"github.com/velopago/riskengine/internal/domain/service"
)

// AssessTransaction is the use case for scoring a single transaction and
// publishing the resulting domain events.
type AssessTransaction struct {
	publisher port.EventPublisher
	scorer    *service.RiskScorer
}

// NewAssessTransaction creates a new AssessTransaction use case.
func NewAssessTransaction(publisher port.EventPublisher, scorer *service.RiskScorer) *AssessTransaction {
	return &AssessTransaction{
		publisher: publisher,
		scorer:    scorer,
	}
}

// Execute decodes the record, runs the rule pipeline, and publishes events.
// Malformed field values never fail the call; only an invalid envelope
// (missing transaction ID) or a publishing failure does.
func (uc *AssessTransaction) Execute(ctx context.Context, req dto.AssessTransactionRequest) (dto.AssessmentResponse, error) {
	tx := model.TransactionFromRecord(req.Record)

	assessment, err := model.NewAssessment(req.TransactionID, tx.AmountMXN, tx.ProductType)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to create assessment: %w", err)
	}

	output := uc.scorer.Score(tx)

	if err := assessment.Apply(output.Decision, output.Score, output.Reasons, output.HardBlocked); err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to apply scoring outcome: %w", err)
	}

	events := assessment.DomainEvents()
	if len(events) > 0 {
		if err := uc.publisher.Publish(ctx, events...); err != nil {
			return dto.AssessmentResponse{}, fmt.Errorf("failed to publish events: %w", err)
		}
	}

	return dto.FromModel(assessment), nil
}
