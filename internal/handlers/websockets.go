package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"

	"fallguard/internal/logger"
	"fallguard/internal/services/notify"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NotificationsWebsocketHandler streams newly created incidents to review
// clients.
func NotificationsWebsocketHandler(hub *notify.Hub, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		connection, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("WebSocket upgrade error: %v", err)
			return
		}

		hub.Register(connection)
		defer hub.Unregister(connection)

		// Clients only listen; the read loop just detects disconnects.
		for {
			if _, _, err := connection.ReadMessage(); err != nil {
				break
			}
		}
	}
}
