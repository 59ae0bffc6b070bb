// Package effects implements the store's distraction effects: the background
// flicker, the jittering add button and the "added to cart" notice.
package effects

import (
	"time"

	"github.com/mcdev12/chipstore/go/internal/random"
	"github.com/mcdev12/chipstore/go/internal/scheduler"
)

const (
	// FlickerThreshold is the total item count at which the background starts
	// blinking.
	FlickerThreshold = 2
	FlickerInterval  = 100 * time.Millisecond
)

// BlinkColors are the backgrounds the flicker picks from.
var BlinkColors = []string{"#FFFFFF", "#000000"}

// Flicker blinks the background while the cart holds enough items. It must be
// used from inside its loop.
type Flicker struct {
	rnd   random.Source
	task  *scheduler.Task
	color string
}

func NewFlicker(rnd random.Source) *Flicker {
	return &Flicker{rnd: rnd}
}

// Sync arms or disarms the flicker for the given total item count. Arming an
// already armed flicker keeps the running interval.
func (f *Flicker) Sync(loop *scheduler.Loop, count int) {
	if count < FlickerThreshold {
		f.Stop()
		return
	}
	if f.Active() {
		return
	}
	f.task = loop.Every(FlickerInterval, func() {
		f.color = BlinkColors[f.rnd.IntN(len(BlinkColors))]
	})
}

func (f *Flicker) Active() bool {
	return f.task != nil && !f.task.Stopped()
}

// Color is the current background; "" means the page default.
func (f *Flicker) Color() string {
	return f.color
}

// Stop cancels the interval and resets the background.
func (f *Flicker) Stop() {
	if f.task != nil {
		f.task.Stop()
		f.task = nil
	}
	f.color = ""
}
