package transport

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// sendQueueSize is how many messages a client may fall behind before it is dropped.
const sendQueueSize = 64

var errHubClosed = errors.New("hub closed")

// client is one connection and the queue its writer goroutine drains.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub is a set of websocket clients that receive the same JSON messages.
// Each client has its own writer goroutine, so Broadcast never waits on the network.
type Hub struct {
	name         string
	writeTimeout time.Duration
	log          *zap.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]*client
	closed  bool
	writers sync.WaitGroup
}

// NewHub creates an empty hub. name is used in logs.
func NewHub(name string, writeTimeout time.Duration, log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		name:         name,
		writeTimeout: writeTimeout,
		log:          log,
		clients:      map[*websocket.Conn]*client{},
	}
}

// Broadcast queues v for every client. A client whose queue is full is disconnected.
func (h *Hub) Broadcast(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.log.Error("Failed to encode broadcast", zap.String("hub", h.name), zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, cl := range h.clients {
		select {
		case cl.send <- data:
		default:
			h.log.Warn("Dropping slow client", zap.String("hub", h.name), zap.Int("queued", len(cl.send)))
			h.dropLocked(cl)
			cl.conn.Close()
		}
	}
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// add registers c, first sending it hello when non-nil.
func (h *Hub) add(c *websocket.Conn, hello any) error {
	if hello != nil {
		data, err := json.Marshal(hello)
		if err != nil {
			return err
		}
		if err := h.write(c, data); err != nil {
			return err
		}
	}

	cl := &client{conn: c, send: make(chan []byte, sendQueueSize)}
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return errHubClosed
	}
	h.clients[c] = cl
	n := len(h.clients)
	h.writers.Add(1)
	h.mu.Unlock()

	go h.writePump(cl)
	h.log.Debug("Client connected", zap.String("hub", h.name), zap.Int("clients", n))
	return nil
}

func (h *Hub) remove(c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if cl, ok := h.clients[c]; ok {
		h.dropLocked(cl)
		h.log.Debug("Client disconnected", zap.String("hub", h.name), zap.Int("clients", len(h.clients)))
	}
}

// Close disconnects every client and waits for their writers to finish.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	for _, cl := range h.clients {
		h.dropLocked(cl)
	}
	h.mu.Unlock()
	h.writers.Wait()
}

// dropLocked unregisters cl and ends its writer. h.mu must be held.
func (h *Hub) dropLocked(cl *client) {
	if h.clients[cl.conn] != cl {
		return
	}
	delete(h.clients, cl.conn)
	close(cl.send)
}

// writePump sends queued messages until the queue is closed, then says goodbye.
func (h *Hub) writePump(cl *client) {
	defer h.writers.Done()
	defer cl.conn.Close()

	for data := range cl.send {
		if err := h.write(cl.conn, data); err != nil {
			h.log.Debug("Dropping client after write error", zap.String("hub", h.name), zap.Error(err))
			h.mu.Lock()
			h.dropLocked(cl)
			h.mu.Unlock()
			for range cl.send {
			}
			return
		}
	}

	_ = cl.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
		time.Now().Add(h.writeTimeout))
}

func (h *Hub) write(c *websocket.Conn, data []byte) error {
	if h.writeTimeout > 0 {
		_ = c.SetWriteDeadline(time.Now().Add(h.writeTimeout))
	}
	return c.WriteMessage(websocket.TextMessage, data)
}
