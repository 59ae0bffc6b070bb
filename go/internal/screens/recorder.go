package screens

import (
	"sync"

	"github.com/mcdev12/chipstore/go/internal/events"
)

// Recorder is a Navigator and Emitter that remembers what it was given, for
// screen tests to assert on.
type Recorder struct {
	mu        sync.Mutex
	locations []string
	emitted   []Emitted
}

type Emitted struct {
	Type    events.Type
	Payload any
}

func (r *Recorder) Navigate(location string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locations = append(r.locations, location)
}

func (r *Recorder) Emit(typ events.Type, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emitted = append(r.emitted, Emitted{Type: typ, Payload: payload})
}

// Locations returns every location navigated to, oldest first.
func (r *Recorder) Locations() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.locations...)
}

// Last returns the latest navigation, if any.
func (r *Recorder) Last() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.locations) == 0 {
		return "", false
	}
	return r.locations[len(r.locations)-1], true
}

func (r *Recorder) Events() []Emitted {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Emitted(nil), r.emitted...)
}

// EventsOf returns the payloads emitted with typ.
func (r *Recorder) EventsOf(typ events.Type) []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []any
	for _, e := range r.emitted {
		if e.Type == typ {
			out = append(out, e.Payload)
		}
	}
	return out
}
