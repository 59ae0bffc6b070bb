package random

import (
	"fmt"
	"sync"
)

// Sequence replays scripted values. Once a queue is exhausted it keeps
// returning its fallback (0 unless set).
type Sequence struct {
	mu     sync.Mutex
	ints   []int
	floats []float64

	intFallback   int
	floatFallback float64
}

func NewSequence(ints ...int) *Sequence {
	return &Sequence{ints: ints}
}

// WithFloats queues values for Float64.
func (s *Sequence) WithFloats(floats ...float64) *Sequence {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.floats = append(s.floats, floats...)
	return s
}

// PushInts appends values for IntN.
func (s *Sequence) PushInts(ints ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ints = append(s.ints, ints...)
}

func (s *Sequence) Fallback(i int, f float64) *Sequence {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intFallback = i
	s.floatFallback = f
	return s
}

func (s *Sequence) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.intFallback
	if len(s.ints) > 0 {
		v, s.ints = s.ints[0], s.ints[1:]
	}
	if v < 0 || v >= n {
		panic(fmt.Sprintf("random: scripted value %d outside [0,%d)", v, n))
	}
	return v
}

func (s *Sequence) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.floatFallback
	if len(s.floats) > 0 {
		v, s.floats = s.floats[0], s.floats[1:]
	}
	if v < 0 || v >= 1 {
		panic(fmt.Sprintf("random: scripted float %v outside [0,1)", v))
	}
	return v
}
