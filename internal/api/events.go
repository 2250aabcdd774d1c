package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/rflorenc/teamroadmaps/internal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const pingInterval = 30 * time.Second

// EventHub fans team events out to WebSocket subscribers.
type EventHub struct {
	mu   sync.Mutex
	subs map[string]map[chan models.TeamEvent]struct{}
}

// NewEventHub creates an empty hub.
func NewEventHub() *EventHub {
	return &EventHub{subs: make(map[string]map[chan models.TeamEvent]struct{})}
}

// Subscribe registers a listener for a team. Call the returned func to
// unsubscribe.
func (h *EventHub) Subscribe(teamID string) (<-chan models.TeamEvent, func()) {
	ch := make(chan models.TeamEvent, 16)
	h.mu.Lock()
	if h.subs[teamID] == nil {
		h.subs[teamID] = make(map[chan models.TeamEvent]struct{})
	}
	h.subs[teamID][ch] = struct{}{}
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs[teamID], ch)
		if len(h.subs[teamID]) == 0 {
			delete(h.subs, teamID)
		}
	}
}

// Publish delivers ev to every subscriber of the team. Slow subscribers
// drop events rather than block the publisher.
func (h *EventHub) Publish(teamID string, ev models.TeamEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[teamID] {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribers returns the number of listeners for a team.
func (h *EventHub) Subscribers(teamID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[teamID])
}

// StreamTeamEvents streams a team's events over WebSocket as JSON frames.
func (s *Server) StreamTeamEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "teamId")
	if s.Store.GetTeam(id) == nil {
		writeError(w, http.StatusNotFound, "team not found")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	events, unsubscribe := s.Events.Subscribe(id)
	defer unsubscribe()
	s.Logger.Debug("event stream opened", "team", id, "subscribers", s.Events.Subscribers(id))

	// Reader goroutine: notices client close.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case ev := <-events:
			if err := conn.WriteJSON(ev); err != nil {
				s.Logger.Debug("event stream write failed", "team", id, "error", err)
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		}
	}
}
