package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcdev12/chipstore/go/internal/screens/router"
	"github.com/rs/zerolog/log"
)

const (
	ScreenRoute = "/ws/screen"
	StatsRoute  = "/ws/stats"

	defaultLocation = "/"
)

// WebSocketHandler handles WebSocket upgrade requests for screens
type WebSocketHandler struct {
	connectionManager *ConnectionManager
}

func NewWebSocketHandler(cm *ConnectionManager) *WebSocketHandler {
	return &WebSocketHandler{
		connectionManager: cm,
	}
}

// HandleScreenConnection mounts the screen named by the location query
// parameter, e.g. /ws/screen?location=/checkout?cart=...
func (h *WebSocketHandler) HandleScreenConnection(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		location = defaultLocation
	}

	if _, err := h.connectionManager.UpgradeConnection(w, r, location); err != nil {
		log.Error().
			Err(err).
			Str("location", location).
			Msg("failed to open screen session")
		switch {
		case errors.Is(err, router.ErrNoRoute):
			http.Error(w, "no screen at "+location, http.StatusNotFound)
		case errors.Is(err, ErrMount):
			http.Error(w, "invalid location", http.StatusBadRequest)
		}
		// A failed upgrade has already replied.
		return
	}
}

func (h *WebSocketHandler) HandleConnectionStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.connectionManager.GetConnectionStats()); err != nil {
		log.Error().Err(err).Msg("failed to write connection stats")
	}
}

// RegisterRoutes registers WebSocket routes with an HTTP mux
func (h *WebSocketHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc(ScreenRoute, h.HandleScreenConnection)
	mux.HandleFunc(StatsRoute, h.HandleConnectionStats)
}
