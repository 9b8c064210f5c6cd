package ws

import (
	"SchoolPick/entity"
	"SchoolPick/internal/geo"
	"SchoolPick/internal/lib/sl"
	"SchoolPick/internal/ranking"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

const renderTimeout = 5 * time.Second

// Board renders the leaderboard a subscriber asked for.
type Board interface {
	Leaderboard(ctx context.Context, mode string, origin *entity.Location, source string) (*entity.Leaderboard, error)
}

// Event is what subscribers receive.
type Event struct {
	Type string      `json:"type"` // "leaderboard", "error"
	Data interface{} `json:"data"`
}

// Hub keeps leaderboard subscribers. Each client renders its own board in
// its own goroutine, so a slow render never holds up the hub.
type Hub struct {
	clients    map[*Client]bool
	refresh    chan struct{}
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
	board      Board
	log        *slog.Logger
}

func NewHub(board Board, log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		refresh:    make(chan struct{}, 1),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		board:      board,
		log:        log.With(sl.Module("ws.hub")),
	}
}

// Run is the hub's event loop. It returns when ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				h.drop(client)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			go client.renderLoop(ctx)
			client.requestRender()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				h.drop(client)
			}
			h.mu.Unlock()

		case <-h.refresh:
			h.mu.RLock()
			for client := range h.clients {
				// Distance boards do not change with the counts.
				if client.subscription().Mode == ranking.ModeDistance {
					continue
				}
				client.requestRender()
			}
			h.mu.RUnlock()
		}
	}
}

// Refresh asks for every vote-based board to be updated. Bursts of calls
// collapse into one round.
func (h *Hub) Refresh() {
	select {
	case h.refresh <- struct{}{}:
	default:
	}
}

// Subscribers returns the number of connected clients.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// drop removes a client. h.mu must be held for writing.
func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.send)
	close(client.stop)
}

func (h *Hub) push(ctx context.Context, client *Client) {
	sub := client.subscription()

	renderCtx, cancel := context.WithTimeout(ctx, renderTimeout)
	defer cancel()

	var event Event
	board, err := h.board.Leaderboard(renderCtx, sub.Mode, sub.origin(), sub.Source)
	if err != nil {
		h.log.Debug("render leaderboard", slog.String("mode", sub.Mode), sl.Err(err))
		event = Event{Type: "error", Data: map[string]string{"message": err.Error()}}
	} else {
		event = Event{Type: "leaderboard", Data: board}
	}

	data, err := json.Marshal(event)
	if err != nil {
		h.log.Error("marshal event", sl.Err(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; !ok {
		return
	}
	select {
	case client.send <- data:
	default:
		h.drop(client)
	}
}

// Subscription is the view a client is watching.
type Subscription struct {
	Mode   string   `json:"mode"`
	Source string   `json:"source,omitempty"`
	Lat    *float64 `json:"lat,omitempty"`
	Lng    *float64 `json:"lng,omitempty"`
}

// origin is nil unless both coordinates are present and in range.
func (s Subscription) origin() *entity.Location {
	if s.Lat == nil || s.Lng == nil {
		return nil
	}
	location := entity.Location{Lat: *s.Lat, Lng: *s.Lng}
	if !geo.Valid(location) {
		return nil
	}
	return &location
}

// clientEvent is an incoming message from a subscriber.
type clientEvent struct {
	Type string          `json:"type"` // "select"
	Data json.RawMessage `json:"data"`
}
