package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/chipstore/go/internal/events"
	"github.com/mcdev12/chipstore/go/internal/random"
	"github.com/mcdev12/chipstore/go/internal/screens"
	"github.com/rs/zerolog/log"
)

// ErrMount is returned by UpgradeConnection when no screen could be mounted
// for the requested location.
var ErrMount = errors.New("failed to mount screen")

// Mounter resolves a location to a freshly mounted screen.
type Mounter interface {
	Mount(location string, env screens.Env) (screens.Screen, error)
}

// ConnectionManager owns the live screen sessions.
type ConnectionManager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	wg       sync.WaitGroup

	upgrader websocket.Upgrader
	config   ConnectionConfig

	router Mounter
	emit   func(events.Event) bool
	clock  clockwork.Clock
	random random.Source
}

type ManagerOption func(*ConnectionManager)

// WithClock drives every mounted screen from clock.
func WithClock(clock clockwork.Clock) ManagerOption {
	return func(cm *ConnectionManager) { cm.clock = clock }
}

func WithRandom(src random.Source) ManagerOption {
	return func(cm *ConnectionManager) { cm.random = src }
}

// WithEmitter receives every session event. Emit must not block.
func WithEmitter(emit func(events.Event) bool) ManagerOption {
	return func(cm *ConnectionManager) { cm.emit = emit }
}

// Stats describes the live sessions.
type Stats struct {
	TotalSessions int            `json:"total_sessions"`
	Screens       map[string]int `json:"screens"`
}

func NewConnectionManager(config ConnectionConfig, router Mounter, opts ...ManagerOption) *ConnectionManager {
	cm := &ConnectionManager{
		sessions: make(map[string]*Session),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config: config,
		router: router,
		emit:   func(events.Event) bool { return true },
		clock:  clockwork.NewRealClock(),
		random: random.New(),
	}
	for _, opt := range opts {
		opt(cm)
	}
	return cm
}

// UpgradeConnection mounts the screen for location and upgrades the request.
// Unknown locations fail before the upgrade so the client gets a plain 404.
func (cm *ConnectionManager) UpgradeConnection(w http.ResponseWriter, r *http.Request, location string) (*Session, error) {
	session := newSession(uuid.New().String(), cm)

	screen, err := cm.router.Mount(location, session.env())
	if err != nil {
		return nil, fmt.Errorf("%w at %q: %w", ErrMount, location, err)
	}

	conn, err := cm.upgrader.Upgrade(w, r, nil)
	if err != nil {
		screen.Close()
		return nil, fmt.Errorf("failed to upgrade connection: %w", err)
	}
	session.Conn = conn

	cm.registerSession(session)
	session.start(screen)

	log.Info().
		Str("session_id", session.ID).
		Str("screen", screen.Name()).
		Str("location", location).
		Msg("WebSocket session established")

	return session, nil
}

func (cm *ConnectionManager) registerSession(s *Session) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	cm.sessions[s.ID] = s
	cm.wg.Add(1)

	log.Debug().
		Str("session_id", s.ID).
		Int("total_sessions", len(cm.sessions)).
		Msg("session registered")
}

func (cm *ConnectionManager) unregisterSession(s *Session) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if _, ok := cm.sessions[s.ID]; !ok {
		return
	}
	delete(cm.sessions, s.ID)
	cm.wg.Done()

	log.Info().
		Str("session_id", s.ID).
		Dur("duration", time.Since(s.ConnectedAt)).
		Msg("session unregistered")
}

// GetConnectionStats returns statistics about active sessions
func (cm *ConnectionManager) GetConnectionStats() Stats {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	stats := Stats{
		TotalSessions: len(cm.sessions),
		Screens:       make(map[string]int),
	}
	for _, s := range cm.sessions {
		stats.Screens[s.ScreenName()]++
	}
	return stats
}

// Shutdown closes every session and waits for their screens to unmount.
func (cm *ConnectionManager) Shutdown(ctx context.Context) error {
	cm.mu.RLock()
	live := make([]*Session, 0, len(cm.sessions))
	for _, s := range cm.sessions {
		live = append(live, s)
	}
	cm.mu.RUnlock()

	for _, s := range live {
		s.Close()
	}

	done := make(chan struct{})
	go func() {
		cm.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info().Int("sessions", len(live)).Msg("all sessions closed")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown sessions: %w", ctx.Err())
	}
}
