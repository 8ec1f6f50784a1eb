// server/internal/socket/hub.go
package socket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event names pushed to station clients.
const (
	EventRequestSubmitted = "request_submitted"
	EventApprovalDecided  = "approval_decided"
)

const (
	writeWait = 5 * time.Second
	sendQueue = 16
)

// Message is the JSON frame sent to clients.
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// client owns one connection. Only its writer goroutine writes data frames.
type client struct {
	id      string
	session string
	conn    *websocket.Conn
	send    chan []byte
	done    chan struct{}
	once    sync.Once
}

func (c *client) enqueue(payload []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

func (c *client) stop() {
	c.once.Do(func() { close(c.done) })
}

func (c *client) writer(h *Hub) {
	defer c.conn.Close()
	for {
		select {
		case payload := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.log.Warn("websocket write failed, dropping client", "client", c.id, "error", err)
				h.remove(c)
				return
			}
		case <-c.done:
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended")
			_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
			return
		}
	}
}

// Hub keeps the connected websocket clients, keyed by connection id. Each
// client belongs to the station session that opened it.
type Hub struct {
	clients map[string]*client
	mu      sync.RWMutex
	log     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[string]*client),
		log:     logger,
	}
}

// Register adds a client of sessionID and starts its writer. A connection
// registered under an existing id replaces the old one.
func (h *Hub) Register(id, sessionID string, conn *websocket.Conn) {
	c := &client{
		id:      id,
		session: sessionID,
		conn:    conn,
		send:    make(chan []byte, sendQueue),
		done:    make(chan struct{}),
	}
	h.mu.Lock()
	old := h.clients[id]
	h.clients[id] = c
	h.mu.Unlock()

	if old != nil {
		old.stop()
	}
	go c.writer(h)
	h.log.Debug("websocket client registered", "client", id)
}

func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	c, ok := h.clients[id]
	if ok {
		delete(h.clients, id)
	}
	h.mu.Unlock()

	if ok {
		c.stop()
		h.log.Debug("websocket client unregistered", "client", id)
	}
}

// remove drops c unless its id was already taken over by a newer client.
func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if h.clients[c.id] == c {
		delete(h.clients, c.id)
	}
	h.mu.Unlock()
	c.stop()
}

// CloseSession closes every client opened by sessionID.
func (h *Hub) CloseSession(sessionID string) {
	if h == nil || sessionID == "" {
		return
	}
	h.mu.Lock()
	var closed []*client
	for id, c := range h.clients {
		if c.session == sessionID {
			delete(h.clients, id)
			closed = append(closed, c)
		}
	}
	h.mu.Unlock()

	for _, c := range closed {
		c.stop()
	}
	if len(closed) > 0 {
		h.log.Debug("websocket session closed", "clients", len(closed))
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Send queues an event for one client. A client that is gone is not an error.
func (h *Hub) Send(id, event string, data interface{}) error {
	payload, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event, err)
	}

	h.mu.RLock()
	c, ok := h.clients[id]
	h.mu.RUnlock()
	if !ok {
		h.log.Debug("websocket client not found", "client", id, "event", event)
		return nil
	}
	if !c.enqueue(payload) {
		h.log.Warn("websocket client not keeping up, dropping it", "client", id, "event", event)
		h.remove(c)
	}
	return nil
}

// Broadcast queues an event for every client without waiting on any of
// them. A client whose queue is full is dropped from the hub.
func (h *Hub) Broadcast(event string, data interface{}) error {
	if h == nil {
		return nil
	}
	payload, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event, err)
	}

	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if !c.enqueue(payload) {
			h.log.Warn("websocket client not keeping up, dropping it", "client", c.id, "event", event)
			h.remove(c)
		}
	}
	return nil
}
