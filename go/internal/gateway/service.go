package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/mcdev12/chipstore/go/internal/publisher"
	"github.com/rs/zerolog/log"
)

const drainSessionsTimeout = 5 * time.Second

// Service hosts the screens over WebSocket and forwards session events to
// the dispatcher.
type Service struct {
	connectionManager *ConnectionManager
	wsHandler         *WebSocketHandler
	dispatcher        *publisher.Dispatcher
}

type Config struct {
	ConnectionConfig ConnectionConfig
}

func DefaultConfig() Config {
	return Config{
		ConnectionConfig: DefaultConnectionConfig(),
	}
}

// NewService wires a connection manager to router and dispatcher. Extra
// options override the manager defaults; WithEmitter is set from dispatcher.
func NewService(config Config, router Mounter, dispatcher *publisher.Dispatcher, opts ...ManagerOption) *Service {
	opts = append([]ManagerOption{WithEmitter(dispatcher.Emit)}, opts...)
	connectionManager := NewConnectionManager(config.ConnectionConfig, router, opts...)

	return &Service{
		connectionManager: connectionManager,
		wsHandler:         NewWebSocketHandler(connectionManager),
		dispatcher:        dispatcher,
	}
}

// Start runs the event dispatcher until ctx is cancelled, then closes every
// session so their unmount events are drained.
func (s *Service) Start(ctx context.Context) error {
	log.Info().Msg("starting screen gateway service")

	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	defer stopDispatcher()

	done := make(chan error, 1)
	go func() {
		done <- s.dispatcher.Run(dispatcherCtx)
	}()

	<-ctx.Done()
	log.Info().Msg("screen gateway service shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), drainSessionsTimeout)
	defer cancel()
	if err := s.connectionManager.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to close sessions")
	}

	stopDispatcher()
	return <-done
}

func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	s.wsHandler.RegisterRoutes(mux)
	log.Info().Msg("screen gateway routes registered")
}

type ServiceStats struct {
	Service  string          `json:"service"`
	Status   string          `json:"status"`
	Sessions Stats           `json:"sessions"`
	Events   publisher.Stats `json:"events"`
}

func (s *Service) GetStats() ServiceStats {
	return ServiceStats{
		Service:  "chipstore_gateway",
		Status:   "running",
		Sessions: s.connectionManager.GetConnectionStats(),
		Events:   s.dispatcher.Stats(),
	}
}
