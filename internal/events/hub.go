package events

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/nayanchoudhary31/raffle-service/internal/models"
)

// Hub fans raffle events out to connected websocket observers. Writes are
// serialized under the hub mutex; conns that fail a write are dropped.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
	}
}

// Register adds a connection to the broadcast set
func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
	slog.Info("websocket observer connected", "observers", len(h.clients))
}

// Unregister removes a connection and closes it
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}

// Broadcast sends the event to every connected observer
func (h *Hub) Broadcast(event models.RaffleEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to marshal raffle event for broadcast", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			slog.Warn("dropping websocket observer after failed write", "error", err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

// Count returns the number of connected observers
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
