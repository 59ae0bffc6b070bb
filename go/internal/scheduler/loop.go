// Package scheduler gives each screen a single-threaded event loop: UI events
// and timer callbacks run one at a time under the loop lock, and every timer
// the screen creates is owned by the loop so that Close can cancel it.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Loop serializes a screen's handlers and owns its scheduled tasks.
type Loop struct {
	name  string
	clock clockwork.Clock

	// mu is held while any handler or callback runs.
	mu sync.Mutex

	tasksMu sync.Mutex
	tasks   map[*Task]struct{}
	closed  bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	onChange func()
}

// Option configures a Loop.
type Option func(*Loop)

// WithOnChange registers a callback invoked after every handler or timer
// callback completes, outside the loop lock. It may run on any goroutine.
func WithOnChange(fn func()) Option {
	return func(l *Loop) {
		l.onChange = fn
	}
}

// NewLoop creates a loop driven by clock. Pass clockwork.NewRealClock() in
// production and a FakeClock in tests.
func NewLoop(name string, clock clockwork.Clock, opts ...Option) *Loop {
	ctx, cancel := context.WithCancel(context.Background())
	l := &Loop{
		name:   name,
		clock:  clock,
		tasks:  make(map[*Task]struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loop) Clock() clockwork.Clock {
	return l.clock
}

// Dispatch runs fn under the loop lock. It returns false without running fn
// once the loop is closed.
func (l *Loop) Dispatch(fn func()) bool {
	l.mu.Lock()
	if l.isClosed() {
		l.mu.Unlock()
		return false
	}
	fn()
	l.mu.Unlock()

	l.notify()
	return true
}

// Inspect runs fn under the loop lock without signalling a change. It is
// meant for reading state, and works after Close.
func (l *Loop) Inspect(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn()
}

// After schedules fn to run once after d.
func (l *Loop) After(d time.Duration, fn func()) *Task {
	return l.schedule(d, 0, fn)
}

// Every schedules fn to run every d until the task is stopped. The next run is
// armed only after the previous callback returns, so a slow callback delays
// rather than stacks ticks.
func (l *Loop) Every(d time.Duration, fn func()) *Task {
	return l.schedule(d, d, fn)
}

// Go runs fn on a tracked goroutine. The context is cancelled by Close, which
// also waits for fn to return. fn must not hold the loop lock while blocking;
// use Dispatch to apply its result.
func (l *Loop) Go(fn func(ctx context.Context)) bool {
	l.tasksMu.Lock()
	if l.closed {
		l.tasksMu.Unlock()
		return false
	}
	l.wg.Add(1)
	l.tasksMu.Unlock()

	go func() {
		defer l.wg.Done()
		fn(l.ctx)
	}()
	return true
}

// Pending reports how many scheduled tasks are still live.
func (l *Loop) Pending() int {
	l.tasksMu.Lock()
	defer l.tasksMu.Unlock()
	return len(l.tasks)
}

// Close cancels every task and background goroutine and waits for them to
// exit. It must not be called from inside a handler or callback.
func (l *Loop) Close() {
	l.tasksMu.Lock()
	if l.closed {
		l.tasksMu.Unlock()
		return
	}
	l.closed = true
	live := make([]*Task, 0, len(l.tasks))
	for task := range l.tasks {
		live = append(live, task)
	}
	l.tasksMu.Unlock()

	for _, task := range live {
		task.Stop()
	}
	l.cancel()
	l.wg.Wait()

	log.Debug().
		Str("loop", l.name).
		Int("cancelled_tasks", len(live)).
		Msg("loop closed")
}

func (l *Loop) isClosed() bool {
	l.tasksMu.Lock()
	defer l.tasksMu.Unlock()
	return l.closed
}

func (l *Loop) notify() {
	if l.onChange != nil {
		l.onChange()
	}
}

func (l *Loop) schedule(d, interval time.Duration, fn func()) *Task {
	task := &Task{
		loop:     l,
		interval: interval,
		fn:       fn,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	l.tasksMu.Lock()
	if l.closed {
		l.tasksMu.Unlock()
		task.stopOnce.Do(func() { close(task.stop) })
		close(task.done)
		return task
	}
	task.timer = l.clock.NewTimer(d)
	l.tasks[task] = struct{}{}
	l.wg.Add(1)
	l.tasksMu.Unlock()

	go task.run()
	return task
}

func (l *Loop) untrack(task *Task) {
	l.tasksMu.Lock()
	defer l.tasksMu.Unlock()
	delete(l.tasks, task)
}
