package publisher

import (
	"context"

	"github.com/mcdev12/chipstore/go/internal/events"
	"github.com/rs/zerolog"
)

// LogPublisher writes events to a zerolog logger. It is the default when no
// broker is configured.
type LogPublisher struct {
	logger zerolog.Logger
}

func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event events.Event) error {
	p.logger.Info().
		Str("event_id", event.ID.String()).
		Str("event_type", string(event.Type)).
		Str("session_id", event.SessionID).
		RawJSON("data", event.Data).
		Msg("session event")
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
