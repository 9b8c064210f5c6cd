package ws

import (
	"SchoolPick/internal/lib/sl"
	"context"
	"encoding/json"
	"github.com/gorilla/websocket"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one leaderboard subscriber.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	// render holds at most one pending render request.
	render chan struct{}
	stop   chan struct{}

	mu  sync.Mutex
	sub Subscription
}

func (c *Client) subscription() Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sub
}

func (c *Client) setSubscription(sub Subscription) {
	c.mu.Lock()
	c.sub = sub
	c.mu.Unlock()
}

func (c *Client) requestRender() {
	select {
	case c.render <- struct{}{}:
	default:
	}
}

// renderLoop renders the client's board on request, one at a time, with
// the subscription current at render time.
func (c *Client) renderLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.stop:
			return
		case <-c.render:
			c.hub.push(ctx, c)
		}
	}
}

// readPump reads "select" messages and handles ping/pong keepalive.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		var event clientEvent
		if err := json.Unmarshal(message, &event); err != nil {
			c.hub.log.Debug("bad client message", sl.Err(err))
			continue
		}
		if event.Type != "select" {
			continue
		}
		var sub Subscription
		if err := json.Unmarshal(event.Data, &sub); err != nil {
			c.hub.log.Debug("bad subscription", sl.Err(err))
			continue
		}
		c.setSubscription(sub)
		c.requestRender()
	}
}

// writePump pumps messages from the hub to the WebSocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWs upgrades the request and subscribes the client. The initial
// view comes from the mode, source, lat and lng query parameters.
func ServeWs(hub *Hub, log *slog.Logger, w http.ResponseWriter, r *http.Request) {
	sub := subscriptionFromQuery(r)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("websocket upgrade failed", sl.Err(err))
		return
	}

	client := &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, 16),
		render: make(chan struct{}, 1),
		stop:   make(chan struct{}),
		sub:    sub,
	}

	select {
	case hub.register <- client:
	case <-hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

func subscriptionFromQuery(r *http.Request) Subscription {
	q := r.URL.Query()
	sub := Subscription{Mode: q.Get("mode"), Source: q.Get("source")}
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(q.Get("lng"), 64)
	if errLat == nil && errLng == nil {
		sub.Lat, sub.Lng = &lat, &lng
	}
	return sub
}
