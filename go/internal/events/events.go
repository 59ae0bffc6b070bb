// Package events defines the session events a screen host emits while a
// shopper moves through the store.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event is the envelope for every session event.
type Event struct {
	ID        uuid.UUID       `json:"id"`
	SessionID string          `json:"session_id"`
	Type      Type            `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

type Type string

const (
	TypeScreenMounted    Type = "screen.mounted"
	TypeScreenUnmounted  Type = "screen.unmounted"
	TypeCartUpdated      Type = "cart.updated"
	TypeCheckoutUnlocked Type = "checkout.unlocked"
	TypeOrderSubmitted   Type = "order.submitted"
)

// New wraps payload in an envelope with a fresh id.
func New(sessionID string, typ Type, payload any, at time.Time) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal %s payload: %w", typ, err)
	}
	return Event{
		ID:        uuid.New(),
		SessionID: sessionID,
		Type:      typ,
		Timestamp: at.UTC(),
		Data:      data,
	}, nil
}

// ParsePayload decodes the event data into its payload struct. Unknown types
// return nil, nil.
func ParsePayload(event *Event) (any, error) {
	switch event.Type {
	case TypeScreenMounted:
		return decode[ScreenMountedPayload](event.Data)
	case TypeScreenUnmounted:
		return decode[ScreenUnmountedPayload](event.Data)
	case TypeCartUpdated:
		return decode[CartUpdatedPayload](event.Data)
	case TypeCheckoutUnlocked:
		return decode[CheckoutUnlockedPayload](event.Data)
	case TypeOrderSubmitted:
		return decode[OrderSubmittedPayload](event.Data)
	default:
		return nil, nil
	}
}

func decode[T any](data json.RawMessage) (any, error) {
	var payload T
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}
