// Package cart owns the cart lines and the erratic quantity rules applied to
// them.
package cart

import (
	"fmt"

	"github.com/mcdev12/chipstore/go/internal/models"
	"github.com/mcdev12/chipstore/go/internal/random"
)

const (
	// MinDelta and MaxDelta bound the quantity drawn on every add and remove.
	MinDelta = 0
	MaxDelta = 10
)

// Engine holds an ordered set of lines, at most one per item id. It is not
// safe for concurrent use; the owning screen serializes access.
type Engine struct {
	rnd     random.Source
	lines   []models.CartLine
	payload string
}

func NewEngine(rnd random.Source) *Engine {
	return NewEngineWithLines(rnd, nil)
}

// NewEngineWithLines seeds the engine with previously decoded lines. Lines with
// a non-positive quantity are dropped.
func NewEngineWithLines(rnd random.Source, lines []models.CartLine) *Engine {
	e := &Engine{rnd: rnd}
	for _, line := range lines {
		if line.Quantity > 0 && e.indexOf(line.ID) < 0 {
			e.lines = append(e.lines, line)
		}
	}
	e.payload = Encode(e.lines)
	return e
}

// Add draws a delta in [MinDelta,MaxDelta] and adds it to the item's line,
// inserting the line when absent. A zero draw for an absent item inserts
// nothing rather than a zero-quantity line, so an empty cart stays empty and
// the store keeps the checkout code field hidden. It returns the drawn delta.
func (e *Engine) Add(item models.Item) int {
	delta := random.Between(e.rnd, MinDelta, MaxDelta)

	if i := e.indexOf(item.ID); i >= 0 {
		e.lines[i].Quantity += delta
	} else if delta > 0 {
		e.lines = append(e.lines, models.CartLine{Item: item, Quantity: delta})
	}

	e.payload = Encode(e.lines)
	return delta
}

// Remove draws a delta in [MinDelta,MaxDelta] and subtracts it from the item's
// line, floored at zero. A line that reaches zero is dropped. Unknown ids are
// a no-op and draw nothing.
func (e *Engine) Remove(itemID int) (delta int, ok bool) {
	i := e.indexOf(itemID)
	if i < 0 {
		return 0, false
	}

	delta = random.Between(e.rnd, MinDelta, MaxDelta)
	remaining := max(0, e.lines[i].Quantity-delta)
	if remaining > 0 {
		e.lines[i].Quantity = remaining
	} else {
		e.lines = append(e.lines[:i], e.lines[i+1:]...)
	}

	e.payload = Encode(e.lines)
	return delta, true
}

// Lines returns a copy of the current lines in insertion order.
func (e *Engine) Lines() []models.CartLine {
	lines := make([]models.CartLine, len(e.lines))
	copy(lines, e.lines)
	return lines
}

// Line returns the line for an item id.
func (e *Engine) Line(itemID int) (models.CartLine, bool) {
	if i := e.indexOf(itemID); i >= 0 {
		return e.lines[i], true
	}
	return models.CartLine{}, false
}

func (e *Engine) Empty() bool {
	return len(e.lines) == 0
}

func (e *Engine) TotalCount() int {
	return TotalCount(e.lines)
}

func (e *Engine) TotalPrice() float64 {
	return TotalPrice(e.lines)
}

// Payload is the URL-safe serialization produced by the latest mutation.
func (e *Engine) Payload() string {
	return e.payload
}

func (e *Engine) indexOf(itemID int) int {
	for i, line := range e.lines {
		if line.ID == itemID {
			return i
		}
	}
	return -1
}

// TotalCount sums the quantities of lines.
func TotalCount(lines []models.CartLine) int {
	total := 0
	for _, line := range lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice sums quantity × price across lines. Rounding is left to display.
func TotalPrice(lines []models.CartLine) float64 {
	total := 0.0
	for _, line := range lines {
		total += line.Subtotal()
	}
	return total
}

// FormatPrice renders an amount the way the store displays it.
func FormatPrice(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
