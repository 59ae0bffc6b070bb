package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mcdev12/chipstore/go/internal/events"
	"github.com/mcdev12/chipstore/go/internal/screens"
	"github.com/rs/zerolog/log"
)

const (
	unmountNavigate   = "navigate"
	unmountDisconnect = "disconnect"
)

// Session is one socket with one mounted screen. Navigation swaps the
// screen in place.
type Session struct {
	ID      string
	Conn    *websocket.Conn
	Send    chan []byte
	Manager *ConnectionManager

	ConnectedAt time.Time

	mu     sync.RWMutex
	screen screens.Screen

	navMu      sync.Mutex
	pendingNav string

	dirty     chan struct{}
	navigate  chan struct{}
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func newSession(id string, cm *ConnectionManager) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		ID:          id,
		Send:        make(chan []byte, cm.config.SendBufferSize),
		Manager:     cm,
		ConnectedAt: cm.clock.Now(),
		dirty:       make(chan struct{}, 1),
		navigate:    make(chan struct{}, 1),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// env is what every screen mounted on this session sees.
func (s *Session) env() screens.Env {
	return screens.Env{
		Clock:     s.Manager.clock,
		Random:    s.Manager.random,
		Navigator: screens.NavigatorFunc(s.requestNavigation),
		Events:    screens.EmitterFunc(s.emit),
		OnChange:  s.markDirty,
	}
}

func (s *Session) start(screen screens.Screen) {
	s.setScreen(screen)
	s.emit(events.TypeScreenMounted, events.ScreenMountedPayload{Screen: screen.Name(), Location: screen.Location()})
	s.markDirty()

	go s.run()
	go s.writePump()
	go s.readPump()
}

// Close tears the session down. It is safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
	})
}

func (s *Session) ScreenName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.screen == nil {
		return ""
	}
	return s.screen.Name()
}

func (s *Session) currentScreen() screens.Screen {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.screen
}

func (s *Session) setScreen(screen screens.Screen) screens.Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.screen
	s.screen = screen
	return old
}

// requestNavigation is called from inside a screen's loop, so it only
// records the target.
func (s *Session) requestNavigation(location string) {
	s.navMu.Lock()
	s.pendingNav = location
	s.navMu.Unlock()

	select {
	case s.navigate <- struct{}{}:
	default:
	}
}

func (s *Session) markDirty() {
	select {
	case s.dirty <- struct{}{}:
	default:
	}
}

func (s *Session) emit(typ events.Type, payload any) {
	event, err := events.New(s.ID, typ, payload, s.Manager.clock.Now())
	if err != nil {
		log.Error().Err(err).Str("session_id", s.ID).Msg("failed to build session event")
		return
	}
	s.Manager.emit(event)
}

// run owns the Send channel: it renders views, performs navigations and
// finally unmounts the screen.
func (s *Session) run() {
	defer func() {
		if old := s.setScreen(nil); old != nil {
			old.Close()
			s.emit(events.TypeScreenUnmounted, events.ScreenUnmountedPayload{Screen: old.Name(), Reason: unmountDisconnect})
		}
		close(s.Send)
		s.Manager.unregisterSession(s)
	}()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-s.navigate:
			if !s.swap() {
				return
			}
		case <-s.dirty:
			s.render()
		}
	}
}

func (s *Session) swap() bool {
	s.navMu.Lock()
	target := s.pendingNav
	s.navMu.Unlock()

	next, err := s.Manager.router.Mount(target, s.env())
	if err != nil {
		log.Error().Err(err).Str("session_id", s.ID).Str("location", target).Msg("navigation failed")
		return true
	}

	old := s.setScreen(next)
	if old != nil {
		old.Close()
		s.emit(events.TypeScreenUnmounted, events.ScreenUnmountedPayload{Screen: old.Name(), Reason: unmountNavigate})
	}
	s.emit(events.TypeScreenMounted, events.ScreenMountedPayload{Screen: next.Name(), Location: next.Location()})

	log.Debug().Str("session_id", s.ID).Str("screen", next.Name()).Str("location", target).Msg("navigated")

	if !s.send(ServerMessage{Type: MessageTypeNavigate, Location: target}) {
		return false
	}
	s.render()
	return true
}

func (s *Session) render() {
	screen := s.currentScreen()
	if screen == nil {
		return
	}
	s.send(ServerMessage{
		Type:     MessageTypeView,
		Screen:   screen.Name(),
		Location: screen.Location(),
		View:     screen.View(),
	})
}

// send queues msg for the write pump. A full buffer drops the message; the
// next render carries the latest state anyway.
func (s *Session) send(msg ServerMessage) bool {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("session_id", s.ID).Msg("failed to marshal server message")
		return true
	}

	select {
	case s.Send <- data:
	default:
		log.Warn().Str("session_id", s.ID).Str("type", msg.Type).Msg("session send buffer full, dropping message")
	}
	return s.ctx.Err() == nil
}

// writePump handles sending messages to the WebSocket connection
func (s *Session) writePump() {
	cfg := s.Manager.config
	ticker := time.NewTicker(cfg.PingInterval)
	defer func() {
		ticker.Stop()
		s.Conn.Close()
		s.Close()
	}()

	for {
		select {
		case message, ok := <-s.Send:
			s.Conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
			if !ok {
				s.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := s.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error().
					Err(err).
					Str("session_id", s.ID).
					Msg("failed to write message to WebSocket")
				return
			}

		case <-ticker.C:
			s.Conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
			if err := s.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Error().
					Err(err).
					Str("session_id", s.ID).
					Msg("failed to send ping")
				return
			}
		}
	}
}

// readPump feeds client actions to the mounted screen
func (s *Session) readPump() {
	cfg := s.Manager.config
	defer s.Close()

	s.Conn.SetReadLimit(cfg.MaxMessageSize)
	s.Conn.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))
	s.Conn.SetPongHandler(func(string) error {
		s.Conn.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))
		return nil
	})

	for {
		_, message, err := s.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Error().
					Err(err).
					Str("session_id", s.ID).
					Msg("unexpected WebSocket close error")
			}
			return
		}

		s.handleClientMessage(message)
		s.Conn.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))
	}
}

// handleClientMessage applies one action. Failures are logged, never sent
// back to the client.
func (s *Session) handleClientMessage(message []byte) {
	var action screens.Action
	if err := json.Unmarshal(message, &action); err != nil {
		log.Debug().Err(err).Str("session_id", s.ID).Msg("ignoring malformed client message")
		return
	}

	screen := s.currentScreen()
	if screen == nil {
		return
	}
	if err := screen.Handle(action); err != nil {
		// A navigation can close the screen between lookup and Handle.
		if errors.Is(err, screens.ErrClosed) {
			return
		}
		log.Debug().
			Err(err).
			Str("session_id", s.ID).
			Str("screen", screen.Name()).
			Str("action", action.Type).
			Msg("client action rejected")
	}
}
