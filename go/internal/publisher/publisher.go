// Package publisher ships session events off the screen host. Screens never
// wait on a broker: events go through a buffered Dispatcher that drops when
// full.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mcdev12/chipstore/go/internal/events"
)

type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
	Close() error
}

// Kind selects a Publisher implementation.
type Kind string

const (
	KindLog      Kind = "log"
	KindNATS     Kind = "nats"
	KindRabbitMQ Kind = "rabbitmq"
)

type envelope struct {
	EventID   string          `json:"eventId"`
	EventType string          `json:"eventType"`
	SessionID string          `json:"sessionId"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// Marshal renders the wire form shared by every broker.
func Marshal(event events.Event) ([]byte, error) {
	body, err := json.Marshal(envelope{
		EventID:   event.ID.String(),
		EventType: string(event.Type),
		SessionID: event.SessionID,
		Timestamp: event.Timestamp,
		Payload:   event.Data,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}
	return body, nil
}

// Subject joins prefix and event type, e.g. chipstore.cart.updated.
func Subject(prefix string, typ events.Type) string {
	if prefix == "" {
		return string(typ)
	}
	return prefix + "." + string(typ)
}
