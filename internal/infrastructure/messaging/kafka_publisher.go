package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/velopago/riskengine/internal/domain/event"
	"github.com/velopago/riskengine/pkg/kafka"
)

// producer is the slice of the Kafka client the publisher needs.
type producer interface {
	Publish(ctx context.Context, topic string, messages ...kafka.Message) error
}

// KafkaEventPublisher publishes risk domain events to a Kafka topic. Events
// are keyed by aggregate ID so all events for one assessment land on the same
// partition in order.
type KafkaEventPublisher struct {
	producer producer
	topic    string
}

// NewKafkaEventPublisher creates a publisher bound to a topic.
func NewKafkaEventPublisher(p *kafka.Producer, topic string) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: p, topic: topic}
}

// Publish serializes the events as JSON and sends them in one batch.
func (p *KafkaEventPublisher) Publish(ctx context.Context, events ...event.Event) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(events))
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", evt.EventType(), err)
		}
		messages = append(messages, kafka.Message{
			Key:     []byte(evt.AggregateID().String()),
			Value:   payload,
			Headers: map[string]string{"event_type": evt.EventType()},
		})
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish %d events: %w", len(messages), err)
	}
	return nil
}
