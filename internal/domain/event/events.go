package event

import (
	"time"

	"github.com/google/uuid"
)

const (
	// EventTypeAssessmentCompleted is emitted when a transaction risk
	// assessment finishes.
	EventTypeAssessmentCompleted = "risk.assessment.completed"

	// EventTypeHardBlockTriggered is emitted when the chargeback hard block
	// rejects a transaction outright.
	EventTypeHardBlockTriggered = "risk.hard_block.triggered"
)

// Event is implemented by all risk domain events.
type Event interface {
	EventType() string
	AggregateID() uuid.UUID
}

// AssessmentCompleted is published when a fraud risk assessment has been
// completed for a transaction.
type AssessmentCompleted struct {
	AssessmentID  uuid.UUID `json:"assessment_id"`
	TransactionID uuid.UUID `json:"transaction_id"`
	RiskScore     int       `json:"risk_score"`
	Decision      string    `json:"decision"`
	Reasons       []string  `json:"reasons"`
	AssessedAt    time.Time `json:"assessed_at"`
}

// EventType returns the event type identifier.
func (e AssessmentCompleted) EventType() string {
	return EventTypeAssessmentCompleted
}

// AggregateID returns the assessment ID as the aggregate identifier.
func (e AssessmentCompleted) AggregateID() uuid.UUID {
	return e.AssessmentID
}

// HardBlockTriggered is published when a transaction is rejected by the
// chargeback hard block, bypassing weighted scoring entirely.
type HardBlockTriggered struct {
	AssessmentID  uuid.UUID `json:"assessment_id"`
	TransactionID uuid.UUID `json:"transaction_id"`
	RiskScore     int       `json:"risk_score"`
	Reasons       []string  `json:"reasons"`
	TriggeredAt   time.Time `json:"triggered_at"`
}

// EventType returns the event type identifier.
func (e HardBlockTriggered) EventType() string {
	return EventTypeHardBlockTriggered
}

// AggregateID returns the assessment ID as the aggregate identifier.
func (e HardBlockTriggered) AggregateID() uuid.UUID {
	return e.AssessmentID
}
