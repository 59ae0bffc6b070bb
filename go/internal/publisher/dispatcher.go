package publisher

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/mcdev12/chipstore/go/internal/events"
	"github.com/rs/zerolog/log"
)

const (
	DefaultBufferSize     = 256
	DefaultPublishTimeout = 5 * time.Second
	drainTimeout          = 5 * time.Second
)

// Dispatcher decouples event producers from a Publisher. Emit never blocks.
type Dispatcher struct {
	pub     Publisher
	queue   chan events.Event
	timeout time.Duration

	emitted   atomic.Int64
	published atomic.Int64
	dropped   atomic.Int64
	failed    atomic.Int64
}

type Stats struct {
	Emitted   int64 `json:"emitted"`
	Published int64 `json:"published"`
	Dropped   int64 `json:"dropped"`
	Failed    int64 `json:"failed"`
	Queued    int   `json:"queued"`
}

func NewDispatcher(pub Publisher, bufferSize int, publishTimeout time.Duration) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	if publishTimeout <= 0 {
		publishTimeout = DefaultPublishTimeout
	}
	return &Dispatcher{
		pub:     pub,
		queue:   make(chan events.Event, bufferSize),
		timeout: publishTimeout,
	}
}

// Emit queues event for publishing and reports whether it was accepted. A
// full queue drops the event.
func (d *Dispatcher) Emit(event events.Event) bool {
	d.emitted.Add(1)
	select {
	case d.queue <- event:
		return true
	default:
		d.dropped.Add(1)
		log.Warn().Str("event_type", string(event.Type)).Str("session_id", event.SessionID).Msg("event queue full, dropping event")
		return false
	}
}

// Run publishes queued events until ctx is cancelled, then drains what is
// left with a bounded timeout.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			d.drain()
			return nil
		case event := <-d.queue:
			d.publish(ctx, event)
		}
	}
}

func (d *Dispatcher) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	for {
		select {
		case event := <-d.queue:
			d.publish(ctx, event)
		default:
			return
		}
	}
}

func (d *Dispatcher) publish(ctx context.Context, event events.Event) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := d.pub.Publish(ctx, event); err != nil {
		d.failed.Add(1)
		log.Error().Err(err).
			Str("event_id", event.ID.String()).
			Str("event_type", string(event.Type)).
			Msg("failed to publish event")
		return
	}
	d.published.Add(1)
}

func (d *Dispatcher) Stats() Stats {
	return Stats{
		Emitted:   d.emitted.Load(),
		Published: d.published.Load(),
		Dropped:   d.dropped.Load(),
		Failed:    d.failed.Load(),
		Queued:    len(d.queue),
	}
}
