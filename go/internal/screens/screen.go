// Package screens holds what the store, checkout and complete screens share:
// the client action shape, the screen contract and the environment a screen
// is mounted with.
package screens

import (
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/chipstore/go/internal/events"
	"github.com/mcdev12/chipstore/go/internal/random"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrClosed        = errors.New("screen closed")
)

// Action is one user interaction sent by the client.
type Action struct {
	Type   string `json:"type"`
	ItemID int    `json:"item_id,omitempty"`
	Value  string `json:"value,omitempty"`
	Index  int    `json:"index,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// UnknownAction wraps ErrUnknownAction with the screen and action names.
func UnknownAction(screen string, action Action) error {
	return fmt.Errorf("%s: %w %q", screen, ErrUnknownAction, action.Type)
}

// Screen is a mounted page. Handle and View are safe for concurrent use;
// Close cancels everything the screen scheduled and must be called exactly
// once, never from inside Handle.
type Screen interface {
	Name() string
	Location() string
	Handle(action Action) error
	View() any
	Close()
}

// Navigator receives the location a screen wants to move to. It is called
// from inside the screen's loop and must not block or close the screen.
type Navigator interface {
	Navigate(location string)
}

type NavigatorFunc func(location string)

func (f NavigatorFunc) Navigate(location string) { f(location) }

// Emitter receives session events. Emit must not block.
type Emitter interface {
	Emit(typ events.Type, payload any)
}

type EmitterFunc func(typ events.Type, payload any)

func (f EmitterFunc) Emit(typ events.Type, payload any) { f(typ, payload) }

// Env is everything a screen needs from its host.
type Env struct {
	Clock     clockwork.Clock
	Random    random.Source
	Navigator Navigator
	Events    Emitter
	// OnChange is called after every state change, outside the screen lock.
	OnChange func()
}

// WithDefaults fills the unset fields with production values.
func (e Env) WithDefaults() Env {
	if e.Clock == nil {
		e.Clock = clockwork.NewRealClock()
	}
	if e.Random == nil {
		e.Random = random.New()
	}
	if e.Navigator == nil {
		e.Navigator = NavigatorFunc(func(string) {})
	}
	if e.Events == nil {
		e.Events = EmitterFunc(func(events.Type, any) {})
	}
	return e
}
