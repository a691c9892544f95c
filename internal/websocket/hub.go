package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"docucortex-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Hub fans AI turn results out to the clients watching each chat session.
type Hub struct {
	// SessionID -> list of clients (multi-tab support)
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out
	rdb *redis.Client

	logger logger.ILogger
}

const clusterChannel = "docucortex_events"

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"session_id": client.SessionID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.SessionID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.SessionID] = append(clients[:i], clients[i+1:]...)
						// Signal the writer instead of closing Send, a
						// concurrent broadcast may still be sending.
						close(client.done)
						break
					}
				}
				if len(h.clients[client.SessionID]) == 0 {
					delete(h.clients, client.SessionID)
					h.logger.Info("Hub", "Session fully disconnected", map[string]interface{}{"session_id": client.SessionID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToSession pushes a payload to every client of one session,
// locally and through Redis for the other instances.
func (h *Hub) BroadcastToSession(sessionID string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Hub", "Failed to marshal broadcast payload", map[string]interface{}{"error": err.Error()})
		return
	}

	h.sendLocal(sessionID, data)

	if h.rdb != nil {
		envelope, _ := json.Marshal(map[string]interface{}{
			"target_session": sessionID,
			"message":        json.RawMessage(data),
		})
		h.rdb.Publish(context.Background(), clusterChannel, envelope)
	}
}

func (h *Hub) sendLocal(sessionID string, data []byte) {
	h.mu.RLock()
	clients, ok := h.clients[sessionID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			// Slow consumer. Hand off asynchronously, Run may be busy.
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"session_id": sessionID})
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			TargetSession string          `json:"target_session"`
			Message       json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		h.sendLocal(payload.TargetSession, payload.Message)
	}
}
