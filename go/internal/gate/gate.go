// Package gate is the hidden-code check that lets a shopper leave the store
// for checkout.
package gate

import "strings"

// SecretCode unlocks checkout. It is a joke, not a credential.
const SecretCode = "a4hpw8"

// Placeholder is the hint shown in the code input.
const Placeholder = "Type '" + SecretCode + "' to proceed"

type State int

const (
	Idle State = iota
	Transitioning
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Transitioning:
		return "transitioning"
	default:
		return "unknown"
	}
}

// Gate watches the code input. Once it transitions it stays transitioned.
type Gate struct {
	input string
	state State
}

func New() *Gate {
	return &Gate{}
}

// Input records the current contents of the code field and reports whether
// this keystroke unlocked checkout. It returns true at most once.
func (g *Gate) Input(text string) bool {
	g.input = text
	if g.state != Idle {
		return false
	}
	if strings.EqualFold(text, SecretCode) {
		g.state = Transitioning
		return true
	}
	return false
}

func (g *Gate) Value() string {
	return g.input
}

func (g *Gate) State() State {
	return g.state
}
