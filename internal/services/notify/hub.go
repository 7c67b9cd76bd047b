package notify

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"fallguard/internal/logger"
	"fallguard/internal/models"
)

// Hub pushes newly created incidents to connected review clients over
// websockets. Delivery is best effort; clients that fail a write are
// dropped.
type Hub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mutex      sync.RWMutex
	logger     *logger.Logger
}

// NewHub creates a notification hub.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		logger:     log,
	}
}

// Run processes client registrations and broadcasts until the process ends.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			h.logger.Info("Review client connected. Total: %d", h.ClientCount())

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			h.mutex.Unlock()
			h.logger.Info("Review client disconnected. Total: %d", h.ClientCount())

		case message := <-h.broadcast:
			h.mutex.Lock()
			for client := range h.clients {
				if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
					h.logger.Error("Error sending notification: %v", err)
					delete(h.clients, client)
					client.Close()
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Register adds a review client connection.
func (h *Hub) Register(client *websocket.Conn) {
	h.register <- client
}

// Unregister removes a review client connection.
func (h *Hub) Unregister(client *websocket.Conn) {
	h.unregister <- client
}

// NotifyIncident broadcasts a created incident to all connected clients.
func (h *Hub) NotifyIncident(incident *models.Incident) {
	payload, err := json.Marshal(incident)
	if err != nil {
		h.logger.Error("Error encoding incident notification: %v", err)
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		h.logger.Warning("Notification channel full, dropping incident %d", incident.ID)
	}
}

// ClientCount returns the number of connected review clients.
func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
