package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/velopago/riskengine/internal/domain/event"
	"github.com/velopago/riskengine/internal/domain/valueobject"
)

// Assessment is the aggregate root for a single fraud risk assessment.
// It is ephemeral: constructed fresh per transaction, never persisted, and
// not mutated after Apply.
type Assessment struct {
	id            uuid.UUID
	transactionID uuid.UUID
	amount        decimal.Decimal
	productType   string
	decision      valueobject.Decision
	riskScore     int
	reasons       []string
	hardBlocked   bool
	assessedAt    time.Time
	createdAt     time.Time
	domainEvents  []event.Event
}

// NewAssessment creates an unscored assessment for an incoming transaction.
// Call Apply with the scorer output to finalize it.
func NewAssessment(transactionID uuid.UUID, amount decimal.Decimal, productType string) (*Assessment, error) {
	if transactionID == uuid.Nil {
		return nil, fmt.Errorf("transaction ID is required")
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("amount must not be negative")
	}
	if productType == "" {
		productType = DefaultProductType
	}

	return &Assessment{
		id:            uuid.New(),
		transactionID: transactionID,
		amount:        amount,
		productType:   productType,
		reasons:       make([]string, 0),
		createdAt:     time.Now().UTC(),
	}, nil
}

// Apply records the scoring outcome on the assessment and emits domain
// events. This is the only state transition an assessment goes through.
func (a *Assessment) Apply(decision valueobject.Decision, riskScore int, reasons []string, hardBlocked bool) error {
	if decision.IsZero() {
		return fmt.Errorf("decision is required")
	}
	if !a.decision.IsZero() {
		return fmt.Errorf("assessment already applied")
	}

	a.decision = decision
	a.riskScore = riskScore
	a.reasons = reasons
	a.hardBlocked = hardBlocked
	a.assessedAt = time.Now().UTC()

	a.domainEvents = append(a.domainEvents, event.AssessmentCompleted{
		AssessmentID:  a.id,
		TransactionID: a.transactionID,
		RiskScore:     a.riskScore,
		Decision:      a.decision.String(),
		Reasons:       a.reasons,
		AssessedAt:    a.assessedAt,
	})

	if a.hardBlocked {
		a.domainEvents = append(a.domainEvents, event.HardBlockTriggered{
			AssessmentID:  a.id,
			TransactionID: a.transactionID,
			RiskScore:     a.riskScore,
			Reasons:       a.reasons,
			TriggeredAt:   a.assessedAt,
		})
	}

	return nil
}

// --- Accessors ---

func (a *Assessment) ID() uuid.UUID                  { return a.id }
func (a *Assessment) TransactionID() uuid.UUID       { return a.transactionID }
func (a *Assessment) Amount() decimal.Decimal        { return a.amount }
func (a *Assessment) ProductType() string            { return a.productType }
func (a *Assessment) Decision() valueobject.Decision { return a.decision }
func (a *Assessment) RiskScore() int                 { return a.riskScore }
func (a *Assessment) Reasons() []string              { return a.reasons }
func (a *Assessment) HardBlocked() bool              { return a.hardBlocked }
func (a *Assessment) AssessedAt() time.Time          { return a.assessedAt }
func (a *Assessment) CreatedAt() time.Time           { return a.createdAt }

// DomainEvents returns all accumulated domain events and clears them.
func (a *Assessment) DomainEvents() []event.Event {
	evts := a.domainEvents
	a.domainEvents = make([]event.Event, 0)
	return evts
}
