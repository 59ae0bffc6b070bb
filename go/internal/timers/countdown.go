// Package timers holds the per-screen countdown clocks.
package timers

import (
	"sync"
	"time"

	"github.com/mcdev12/chipstore/go/internal/scheduler"
)

const (
	StoreSeconds    = 60
	CheckoutSeconds = 120

	tickInterval = time.Second
)

// Countdown decrements once per second until it reaches zero and then holds
// there. Reaching zero triggers nothing beyond closing Expired.
type Countdown struct {
	remaining int
	task      *scheduler.Task

	expired     chan struct{}
	expiredOnce sync.Once
}

func NewCountdown(seconds int) *Countdown {
	if seconds < 0 {
		seconds = 0
	}
	c := &Countdown{
		remaining: seconds,
		expired:   make(chan struct{}),
	}
	if seconds == 0 {
		c.markExpired()
	}
	return c
}

// Tick advances the countdown by one second and returns the remaining time.
func (c *Countdown) Tick() int {
	if c.remaining > 0 {
		c.remaining--
	}
	if c.remaining == 0 {
		c.markExpired()
	}
	return c.remaining
}

func (c *Countdown) Remaining() int {
	return c.remaining
}

// Start ticks the countdown on loop once per second. The task stops itself at
// zero. Calling Start on a running countdown is a no-op.
func (c *Countdown) Start(loop *scheduler.Loop) {
	if c.task != nil && !c.task.Stopped() {
		return
	}
	if c.remaining == 0 {
		return
	}
	c.task = loop.Every(tickInterval, func() {
		if c.Tick() == 0 {
			c.task.Stop()
		}
	})
}

// Stop cancels the ticking task, if any.
func (c *Countdown) Stop() {
	if c.task != nil {
		c.task.Stop()
	}
}

// Expired is closed when the countdown first reads zero.
func (c *Countdown) Expired() <-chan struct{} {
	return c.expired
}

func (c *Countdown) markExpired() {
	c.expiredOnce.Do(func() { close(c.expired) })
}
