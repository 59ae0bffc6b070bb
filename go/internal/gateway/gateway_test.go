package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mcdev12/chipstore/go/internal/events"
	"github.com/mcdev12/chipstore/go/internal/publisher"
	"github.com/mcdev12/chipstore/go/internal/random"
	"github.com/mcdev12/chipstore/go/internal/screens/checkout"
	"github.com/mcdev12/chipstore/go/internal/screens/router"
	"github.com/mcdev12/chipstore/go/internal/screens/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventSink struct {
	mu     sync.Mutex
	events []events.Event
}

func (s *eventSink) emit(event events.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return true
}

func (s *eventSink) types() []events.Type {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]events.Type, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Type)
	}
	return out
}

type received struct {
	Type     string          `json:"type"`
	Screen   string          `json:"screen"`
	Location string          `json:"location"`
	View     json.RawMessage `json:"view"`
}

func newTestServer(t *testing.T, rnd random.Source) (*ConnectionManager, *httptest.Server, *eventSink) {
	t.Helper()
	sink := &eventSink{}
	cm := NewConnectionManager(DefaultConnectionConfig(), router.New(checkout.Deps{}),
		WithRandom(rnd),
		WithEmitter(sink.emit),
	)

	mux := http.NewServeMux()
	NewWebSocketHandler(cm).RegisterRoutes(mux)
	srv := httptest.NewServer(CORS(mux))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		assert.NoError(t, cm.Shutdown(ctx))
		srv.Close()
	})
	return cm, srv, sink
}

func dial(t *testing.T, srv *httptest.Server, location string) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(srv.URL, "http") + ScreenRoute + "?location=" + url.QueryEscape(location)
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readUntil(t *testing.T, conn *websocket.Conn, match func(received) bool) received {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var msg received
		require.NoError(t, conn.ReadJSON(&msg))
		if match(msg) {
			return msg
		}
	}
}

func storeView(t *testing.T, msg received) store.View {
	t.Helper()
	var v store.View
	require.NoError(t, json.Unmarshal(msg.View, &v))
	return v
}

func send(t *testing.T, conn *websocket.Conn, action map[string]any) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(action))
}

func TestGateway_StoreToCheckout(t *testing.T) {
	cm, srv, sink := newTestServer(t, random.NewSequence(3))
	conn := dial(t, srv, "/")

	first := readUntil(t, conn, func(m received) bool { return m.Type == MessageTypeView })
	assert.Equal(t, store.Name, first.Screen)
	assert.Equal(t, "/", first.Location)

	send(t, conn, map[string]any{"type": store.ActionAdd, "item_id": 1})
	msg := readUntil(t, conn, func(m received) bool {
		return m.Type == MessageTypeView && m.Screen == store.Name && storeView(t, m).Badge == 3
	})
	assert.True(t, strings.HasPrefix(msg.Location, "/?cart="))

	send(t, conn, map[string]any{"type": store.ActionCheckoutCode, "value": "A4HPW8"})
	nav := readUntil(t, conn, func(m received) bool { return m.Type == MessageTypeNavigate })
	assert.True(t, strings.HasPrefix(nav.Location, "/checkout?cart="))

	view := readUntil(t, conn, func(m received) bool { return m.Type == MessageTypeView })
	assert.Equal(t, checkout.Name, view.Screen)
	assert.Equal(t, nav.Location, view.Location)

	stats := cm.GetConnectionStats()
	assert.Equal(t, 1, stats.TotalSessions)
	assert.Equal(t, map[string]int{checkout.Name: 1}, stats.Screens)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return cm.GetConnectionStats().TotalSessions == 0 }, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, []events.Type{
		events.TypeScreenMounted,
		events.TypeCartUpdated,
		events.TypeCheckoutUnlocked,
		events.TypeScreenUnmounted,
		events.TypeScreenMounted,
		events.TypeScreenUnmounted,
	}, sink.types())
}

func TestGateway_MalformedMessagesAreIgnored(t *testing.T) {
	_, srv, _ := newTestServer(t, random.NewSequence(2))
	conn := dial(t, srv, "/")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	send(t, conn, map[string]any{"type": "teleport"})
	send(t, conn, map[string]any{"type": store.ActionAdd, "item_id": 4})

	readUntil(t, conn, func(m received) bool {
		return m.Type == MessageTypeView && storeView(t, m).Badge == 2
	})
}

func TestGateway_UnknownLocation(t *testing.T) {
	_, srv, _ := newTestServer(t, random.NewSequence())

	u := "ws" + strings.TrimPrefix(srv.URL, "http") + ScreenRoute + "?location=/admin"
	_, resp, err := websocket.DefaultDialer.Dial(u, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGateway_Stats(t *testing.T) {
	_, srv, _ := newTestServer(t, random.NewSequence())
	conn := dial(t, srv, "/complete")
	readUntil(t, conn, func(m received) bool { return m.Type == MessageTypeView })

	resp, err := http.Get(srv.URL + StatsRoute)
	require.NoError(t, err)
	defer resp.Body.Close()

	var stats Stats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 1, stats.TotalSessions)
	assert.Equal(t, 1, stats.Screens["complete"])
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func TestService_ShutdownUnmountsAndDrains(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewService(DefaultConfig(), router.New(checkout.Deps{}), publisher.NewDispatcher(pub, 16, time.Second),
		WithRandom(random.NewSequence()))

	mux := http.NewServeMux()
	svc.RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Start(ctx) }()

	conn := dial(t, srv, "/")
	readUntil(t, conn, func(m received) bool { return m.Type == MessageTypeView })
	assert.Equal(t, 1, svc.GetStats().Sessions.TotalSessions)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("service did not stop")
	}

	pub.mu.Lock()
	defer pub.mu.Unlock()
	require.Len(t, pub.events, 2)
	assert.Equal(t, events.TypeScreenMounted, pub.events[0].Type)
	assert.Equal(t, events.TypeScreenUnmounted, pub.events[1].Type)
	assert.Equal(t, pub.events[0].SessionID, pub.events[1].SessionID)
}
