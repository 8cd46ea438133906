package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"proassignment/internal/usecase/interfaces"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	sendBuffer = 16
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Event is the frame written to a websocket connection.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub keeps the live websocket connections of this process, keyed by user id.
// A user may hold several connections (tabs, devices).
type Hub struct {
	mu       sync.RWMutex
	conns    map[string]map[*client]struct{}
	upgrader websocket.Upgrader
}

var _ interfaces.IEventSink = (*Hub)(nil)

func NewHub(allowedOrigins []string) *Hub {
	h := &Hub{conns: map[string]map[*client]struct{}{}}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

func originChecker(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

// Notify delivers to the connections of userID held by this process.
func (h *Hub) Notify(_ context.Context, userID, event string, payload any) {
	b, err := json.Marshal(Event{Type: event, Payload: payload})
	if err != nil {
		log.WithError(err).WithField("event", event).Warn("[events][realtime] marshal failed")
		return
	}
	h.deliver(userID, b)
}

func (h *Hub) deliver(userID string, frame []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	sent := 0
	for c := range h.conns[userID] {
		select {
		case c.send <- frame:
			sent++
		default:
			log.WithField("user_id", userID).Warn("[events][realtime] slow connection, frame dropped")
		}
	}
	return sent
}

// Connections returns how many live connections userID has.
func (h *Hub) Connections(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[userID])
}

// ServeWS upgrades the request and keeps the connection registered until the
// peer goes away. Inbound frames are ignored.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.register(userID, c)
	log.Printf("[events][realtime] connected user_id=%s", userID)

	go h.writeLoop(c)
	h.readLoop(c)

	h.unregister(userID, c)
	log.Printf("[events][realtime] disconnected user_id=%s", userID)
	return nil
}

func (h *Hub) register(userID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[userID] == nil {
		h.conns[userID] = map[*client]struct{}{}
	}
	h.conns[userID][c] = struct{}{}
}

func (h *Hub) unregister(userID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.conns[userID]; ok {
		if _, ok := set[c]; ok {
			delete(set, c)
			close(c.send)
		}
		if len(set) == 0 {
			delete(h.conns, userID)
		}
	}
}

func (h *Hub) readLoop(c *client) {
	defer c.conn.Close()
	c.conn.SetReadLimit(4096)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
