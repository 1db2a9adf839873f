package preview

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/vtree/pkg/host"
)

// MessageType represents the type of a message sent to browsers.
type MessageType string

const (
	// MessageRender carries the container HTML and the mutations of a cycle.
	MessageRender MessageType = "render"

	// MessageError reports a tree document or event failure.
	MessageError MessageType = "error"
)

// Message is sent to browsers via WebSocket.
type Message struct {
	Type        MessageType     `json:"type"`
	HTML        string          `json:"html,omitempty"`
	Mutations   []host.Mutation `json:"mutations,omitempty"`
	Diagnostics []string        `json:"diagnostics,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// EventMessage is a browser event forwarded to the page. Target is the
// element-index path from the container to the event target.
type EventMessage struct {
	Type   string            `json:"type"`
	Target []int             `json:"target"`
	Data   map[string]string `json:"data,omitempty"`
}

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub manages the WebSocket connections of preview browsers.
type Hub struct {
	clients  map[*client]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	logger   *slog.Logger

	// OnConnect returns the message a new browser is greeted with.
	OnConnect func() *Message

	// OnEvent handles an event sent by a browser. A non-nil result is
	// sent back to that browser only.
	OnEvent func(r *http.Request, ev EventMessage) *Message
}

// NewHub creates a new hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[*client]bool),
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true // Preview is a local tool
			},
		},
	}
}

// HandleWebSocket upgrades the connection and reads browser events until
// the browser disconnects.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}
	c := &client{conn: conn}

	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()

	if h.OnConnect != nil {
		if msg := h.OnConnect(); msg != nil {
			h.send(c, *msg)
		}
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		var ev EventMessage
		if err := json.Unmarshal(data, &ev); err != nil {
			h.send(c, Message{Type: MessageError, Error: "malformed event: " + err.Error()})
			continue
		}
		if h.OnEvent == nil {
			continue
		}
		if reply := h.OnEvent(req, ev); reply != nil {
			h.send(c, *reply)
		}
	}

	h.remove(c)
}

// Broadcast sends msg to all connected browsers.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("encode preview message", "error", err)
		return
	}

	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.write(data); err != nil {
			h.remove(c)
		}
	}
}

func (h *Hub) send(c *client, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("encode preview message", "error", err)
		return
	}
	if err := c.write(data); err != nil {
		h.remove(c)
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		c.conn.Close()
	}
}

// ClientCount returns the number of connected browsers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close closes all browser connections.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		c.conn.Close()
		delete(h.clients, c)
	}
}
