// Package random provides the injectable randomness behind every erratic
// interaction in the store.
package random

import (
	"math/rand/v2"
)

// Source is the subset of math/rand/v2 the screens draw from.
type Source interface {
	// IntN returns a value in [0,n).
	IntN(n int) int
	// Float64 returns a value in [0.0,1.0).
	Float64() float64
}

type globalSource struct{}

func (globalSource) IntN(n int) int   { return rand.IntN(n) }
func (globalSource) Float64() float64 { return rand.Float64() }

// New returns a Source backed by the runtime's shared generator. It is safe for
// concurrent use.
func New() Source {
	return globalSource{}
}

// NewSeeded returns a reproducible Source. It is not safe for concurrent use;
// screens only touch it under their loop lock.
func NewSeeded(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Between returns a value in [lo,hi] inclusive.
func Between(src Source, lo, hi int) int {
	return lo + src.IntN(hi-lo+1)
}
