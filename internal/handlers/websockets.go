package handlers

import (
	"net/http"

	"smarttag/internal/logger"
	"smarttag/internal/services"
	"smarttag/internal/state"

	"github.com/gorilla/websocket"
)

var Upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ViewWebsocketHandler registers a dashboard viewer on the hub and pushes
// the current state to it.
func ViewWebsocketHandler(manager *services.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		connection, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("WebSocket upgrade error: %v", err)
			return
		}

		hub := manager.GetWebsocketService()
		hub.Register(connection)
		hub.Publish(state.StateEvent, manager.Snapshot())

		if err := hub.Listen(connection); err != nil {
			logger.Info("Viewer %s left: %v", r.RemoteAddr, err)
		}
	}
}
