// Package websocket fans state changes and notifications out to the
// dashboard viewers connected on /api/view.
package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"smarttag/internal/logger"

	"github.com/gorilla/websocket"
)

const (
	broadcastBuffer = 64
	viewerReadLimit = 512
	writeWait       = 10 * time.Second
	defaultPongWait = 60 * time.Second
)

// Message is the envelope every viewer receives.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// HubService owns every viewer connection. All writes, pings included,
// happen on the Run goroutine.
type HubService struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}
	mutex      sync.RWMutex
	logger     *logger.Logger

	pongWait   time.Duration
	pingPeriod time.Duration
}

func NewHubService(logger *logger.Logger) *HubService {
	return newHubService(logger, defaultPongWait)
}

func newHubService(logger *logger.Logger, pongWait time.Duration) *HubService {
	return &HubService{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, broadcastBuffer),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		logger:     logger,
		pongWait:   pongWait,
		pingPeriod: pongWait / 2,
	}
}

// Run serves the hub until ctx is cancelled. It must be called once.
func (h *HubService) Run(ctx context.Context) {
	ping := time.NewTicker(h.pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			return

		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			h.logger.Info("Viewer connected. Total: %d", total)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			total := len(h.clients)
			h.mutex.Unlock()
			h.logger.Info("Viewer disconnected. Total: %d", total)

		case message := <-h.broadcast:
			h.writeAll(func(client *websocket.Conn) error {
				client.SetWriteDeadline(time.Now().Add(writeWait))
				return client.WriteMessage(websocket.TextMessage, message)
			})

		case <-ping.C:
			h.writeAll(func(client *websocket.Conn) error {
				return client.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			})
		}
	}
}

// writeAll drops every viewer whose write fails.
func (h *HubService) writeAll(write func(*websocket.Conn) error) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for client := range h.clients {
		if err := write(client); err != nil {
			h.logger.Error("Error sending message: %v", err)
			delete(h.clients, client)
			client.Close()
		}
	}
}

func (h *HubService) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
}

// Register adds a viewer. After Run has returned the connection is closed instead.
func (h *HubService) Register(client *websocket.Conn) {
	select {
	case h.register <- client:
	case <-h.done:
		client.Close()
	}
}

func (h *HubService) Unregister(client *websocket.Conn) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Listen reads from a registered viewer until it goes away, then unregisters
// it. Pongs to the hub's pings keep the connection alive; viewers only send
// control frames.
func (h *HubService) Listen(client *websocket.Conn) error {
	defer h.Unregister(client)

	client.SetReadLimit(viewerReadLimit)
	client.SetReadDeadline(time.Now().Add(h.pongWait))
	client.SetPongHandler(func(string) error {
		return client.SetReadDeadline(time.Now().Add(h.pongWait))
	})

	for {
		if _, _, err := client.ReadMessage(); err != nil {
			return err
		}
		client.SetReadDeadline(time.Now().Add(h.pongWait))
	}
}

// Publish queues a typed message for every viewer. Messages are dropped
// when the queue is full.
func (h *HubService) Publish(kind string, payload any) {
	data, err := json.Marshal(Message{Type: kind, Data: payload})
	if err != nil {
		h.logger.Error("Error encoding %s message: %v", kind, err)
		return
	}
	h.Broadcast(data)
}

func (h *HubService) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warning("Viewer queue full, dropping message")
	}
}

func (h *HubService) GetClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
