package effects

import "github.com/mcdev12/chipstore/go/internal/random"

// Position is the add button's translation in pixels.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Jitter moves the add button around. Hover and click draw from different
// ranges.
type Jitter struct {
	rnd random.Source
	pos Position
}

func NewJitter(rnd random.Source) *Jitter {
	return &Jitter{rnd: rnd}
}

// Hover moves the button to x,y in [-5,195).
func (j *Jitter) Hover() Position {
	j.pos = j.draw(5)
	return j.pos
}

// Click moves the button to x,y in [-20,180).
func (j *Jitter) Click() Position {
	j.pos = j.draw(20)
	return j.pos
}

func (j *Jitter) Position() Position {
	return j.pos
}

func (j *Jitter) draw(shift float64) Position {
	x := j.rnd.Float64()*200 - shift
	y := j.rnd.Float64()*200 - shift
	return Position{X: x, Y: y}
}
