package publisher

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

type Config struct {
	Kind     Kind
	NATS     NATSConfig
	RabbitMQ RabbitMQConfig
}

// Open builds the Publisher selected by cfg.Kind. An empty kind logs.
func Open(cfg Config) (Publisher, error) {
	switch cfg.Kind {
	case KindLog, "":
		return NewLogPublisher(zerolog.New(os.Stdout).With().Timestamp().Str("component", "events").Logger()), nil
	case KindNATS:
		return NewNATSPublisher(cfg.NATS)
	case KindRabbitMQ:
		return NewRabbitMQPublisher(cfg.RabbitMQ)
	default:
		return nil, fmt.Errorf("unknown publisher kind %q", cfg.Kind)
	}
}
