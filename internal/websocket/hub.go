package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"policy-compass-be/internal/dto"
	"policy-compass-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Hub fans activity feed messages out to the websocket clients of a
// session. Redis pub/sub carries messages across instances.
type Hub struct {
	// SessionID -> list of clients (multi-tab)
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	rdb *redis.Client

	logger logger.ILogger
}

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
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.SessionID]) == 0 {
					delete(h.clients, client.SessionID)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"session_id": client.SessionID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Send delivers an activity feed message to every client of a session,
// locally and via Redis for other instances.
func (h *Hub) Send(sessionID string, msg dto.ActivityFeedMessage) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "activity",
		"data": msg,
	})

	h.mu.RLock()
	clients, localFound := h.clients[sessionID]
	h.mu.RUnlock()

	if localFound {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				// The unregister path owns the single close of Send.
				h.logger.Warn("Hub", "Client Send buffer full, dropping message", map[string]interface{}{"session_id": sessionID})
				h.unregister <- client
			}
		}
	}

	if h.rdb != nil {
		h.rdb.Publish(context.Background(), "activity_feed_events", redisEnvelope(sessionID, data))
	}
}

// redisEnvelope wraps an already-marshalled feed message for the
// cross-instance channel. The message rides as raw JSON so remote
// subscribers deliver byte-identical payloads to their clients.
func redisEnvelope(sessionID string, message []byte) []byte {
	payload, _ := json.Marshal(map[string]interface{}{
		"target_session_id": sessionID,
		"message":           json.RawMessage(message),
	})
	return payload
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "activity_feed_events")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			TargetSessionID string          `json:"target_session_id"`
			Message         json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		h.mu.RLock()
		clients, ok := h.clients[payload.TargetSessionID]
		h.mu.RUnlock()

		if ok {
			for _, client := range clients {
				select {
				case client.Send <- payload.Message:
				default:
					h.unregister <- client
				}
			}
		}
	}
}
