// Package stream pushes board updates and background frames to websocket clients.
package stream

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/matrix-screener/internal/logging"
	"github.com/preston-bernstein/matrix-screener/internal/matrix"
	"github.com/preston-bernstein/matrix-screener/internal/metrics"
	"github.com/preston-bernstein/matrix-screener/internal/render"
)

// Message types.
const (
	TypeBoard  = "board"
	TypeMatrix = "matrix"
	TypeResize = "resize"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 64
	broadcastQueue = 256
)

// Message is the envelope of everything sent to clients.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// ClientMessage is what clients may send. Only resize is understood.
type ClientMessage struct {
	Type   string `json:"type"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Options configures a Hub.
type Options struct {
	// OnResize is called for every valid resize message.
	OnResize func(width, height int)
	// Initial returns the message sent to a client right after it connects.
	Initial func() (Message, bool)
	// CheckOrigin overrides the upgrader's origin check.
	CheckOrigin func(r *http.Request) bool
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub fans messages out to connected clients.
type Hub struct {
	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	done       chan struct{}
	mu         sync.RWMutex

	upgrader websocket.Upgrader
	opts     Options
	logger   *slog.Logger
	metrics  *metrics.Recorder
}

// NewHub constructs a Hub. Run must be started before clients connect.
func NewHub(logger *slog.Logger, recorder *metrics.Recorder, opts Options) *Hub {
	checkOrigin := opts.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	return &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, broadcastQueue),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		opts:    opts,
		logger:  logger,
		metrics: recorder,
	}
}

// Run serves registrations and broadcasts until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				h.removeLocked(c)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			total := len(h.clients)
			h.mu.Unlock()
			if h.metrics != nil {
				h.metrics.RecordStreamClients(1)
			}
			logging.Info(h.logger, "stream client registered", slog.Int(logging.FieldCount, total))

		case c := <-h.unregister:
			h.mu.Lock()
			removed := h.removeLocked(c)
			total := len(h.clients)
			h.mu.Unlock()
			if removed {
				logging.Info(h.logger, "stream client unregistered", slog.Int(logging.FieldCount, total))
			}

		case msg := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					h.removeLocked(c)
					logging.Warn(h.logger, "stream client too slow, dropped")
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) removeLocked(c *client) bool {
	if _, ok := h.clients[c]; !ok {
		return false
	}
	delete(h.clients, c)
	close(c.send)
	if h.metrics != nil {
		h.metrics.RecordStreamClients(-1)
	}
	return true
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast queues msg for every client. When the queue is full the message is dropped.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		logging.Error(h.logger, "failed to marshal stream message", err, slog.String("type", msg.Type))
		return
	}
	select {
	case h.broadcast <- data:
	default:
		logging.Warn(h.logger, "stream queue full, message dropped", slog.String("type", msg.Type))
	}
}

// PublishFrame broadcasts a background frame.
func (h *Hub) PublishFrame(f matrix.Frame) {
	h.Broadcast(Message{Type: TypeMatrix, Data: f})
}

// PublishBoard broadcasts a rendered board.
func (h *Hub) PublishBoard(v render.View) {
	h.Broadcast(Message{Type: TypeBoard, Data: v})
}

// ServeHTTP upgrades the request to a websocket and attaches the client.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn(logging.FromContext(r.Context(), h.logger), "websocket upgrade failed", slog.Any(logging.FieldError, err))
		return
	}

	c := &client{hub: h, conn: conn, send: make(chan []byte, sendBuffer)}

	if h.opts.Initial != nil {
		if msg, ok := h.opts.Initial(); ok {
			if data, err := json.Marshal(msg); err == nil {
				c.send <- data
			}
		}
	}

	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.Warn(c.hub.logger, "stream read failed", slog.Any(logging.FieldError, err))
			}
			return
		}
		c.handleMessage(data)
	}
}

func (c *client) handleMessage(data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		logging.Warn(c.hub.logger, "ignoring malformed stream message", slog.Any(logging.FieldError, err))
		return
	}
	switch msg.Type {
	case TypeResize:
		if msg.Width <= 0 || msg.Height <= 0 {
			return
		}
		if c.hub.opts.OnResize != nil {
			c.hub.opts.OnResize(msg.Width, msg.Height)
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
