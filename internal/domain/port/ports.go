package port

import (
	"context"

	"github.com/velopago/riskengine/internal/domain/event"
)

// EventPublisher defines the port for publishing domain events to the
// messaging infrastructure.
type EventPublisher interface {
	// Publish sends one or more domain events.
	Publish(ctx context.Context, events ...event.Event) error
}
