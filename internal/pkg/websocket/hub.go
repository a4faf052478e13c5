package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Hub maintains the set of connected clients and pushes academic events to
// them. Delivery is best effort: a client whose send buffer is full gets
// disconnected rather than blocking the hub.
type Hub struct {
	// Connected clients
	clients map[*Client]bool

	// Channel for outbound events to broadcast
	broadcast chan *Message

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Logger for hub operations
	logger zerolog.Logger
}

// Message is an event pushed over WebSocket to connected clients.
type Message struct {
	// Event type, e.g. "enrollment.created" or "semester.current_changed"
	Type string `json:"type"`

	// Event payload, shape depends on the type
	Payload interface{} `json:"payload,omitempty"`

	// Timestamp when the event was published
	Timestamp time.Time `json:"timestamp"`
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *Message, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     logger,
	}
}

// Run starts the hub loop, handling registrations and broadcasts. It is meant
// to run in its own goroutine for the lifetime of the process.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

// Broadcast queues an event for delivery to all connected clients.
func (h *Hub) Broadcast(message *Message) {
	h.broadcast <- message
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true

	h.logger.Info().
		Int64("userID", client.userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("WebSocket client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)

		h.logger.Info().
			Int64("userID", client.userID).
			Msg("WebSocket client unregistered")
	}
}

func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("type", message.Type).
			Msg("Failed to marshal event for broadcast")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			// Client's send buffer is full, they are slow or gone.
			// Drop them instead of stalling every other client.
			delete(h.clients, client)
			close(client.send)
		}
	}

	h.logger.Debug().
		Str("type", message.Type).
		Int("clientCount", len(h.clients)).
		Msg("Event broadcasted")
}
