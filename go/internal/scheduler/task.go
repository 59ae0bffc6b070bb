package scheduler

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Task is a cancellable scheduled callback owned by a Loop.
type Task struct {
	loop     *Loop
	timer    clockwork.Timer
	interval time.Duration
	fn       func()

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// Stop cancels the task. It is safe to call more than once, from any
// goroutine, including from inside the task's own callback. A callback that
// has not started yet will not run.
func (t *Task) Stop() {
	t.stopOnce.Do(func() {
		close(t.stop)
		if t.timer != nil {
			stopAndDrainTimer(t.timer)
		}
	})
}

// Done is closed once the task's goroutine has exited, either because the
// callback ran for the last time or because the task was stopped.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Stopped reports whether Stop has been called.
func (t *Task) Stopped() bool {
	select {
	case <-t.stop:
		return true
	default:
		return false
	}
}

func (t *Task) run() {
	defer t.loop.wg.Done()
	defer close(t.done)
	defer t.loop.untrack(t)
	// Reset may re-arm the timer after a concurrent Stop; disarm it on the way out.
	defer t.timer.Stop()

	for {
		select {
		case <-t.stop:
			return
		case <-t.timer.Chan():
		}

		if !t.fire() {
			return
		}
		if t.interval == 0 {
			return
		}
		t.timer.Reset(t.interval)
	}
}

// fire runs the callback under the loop lock and reports whether the task is
// still live afterwards.
func (t *Task) fire() bool {
	l := t.loop
	l.mu.Lock()
	if t.Stopped() {
		l.mu.Unlock()
		return false
	}
	t.fn()
	l.mu.Unlock()

	l.notify()
	return !t.Stopped()
}

// stopAndDrainTimer stops a timer and drains its channel if it already fired.
func stopAndDrainTimer(timer clockwork.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.Chan():
		default:
		}
	}
}
