package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"chat-relay-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Hub keeps broadcast rooms keyed by conversation id. A client may sit
// in exactly one room; one conversation may have many clients
// (multi-device, shared screens).
type Hub struct {
	rooms map[uuid.UUID]map[*Client]bool

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance fan-out
	rdb *redis.Client

	// Identifies this process on the cluster channel so it can skip
	// payloads it already delivered locally.
	instanceID string

	// Dedicated Logger
	logger logger.ILogger
}

const clusterChannel = "chat_room_events"

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[uuid.UUID]map[*Client]bool),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run() {
	// Start Redis subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.rooms[client.ConversationID] == nil {
				h.rooms[client.ConversationID] = make(map[*Client]bool)
			}
			h.rooms[client.ConversationID][client] = true
			h.mu.Unlock()
			h.logger.Info("Hub", "Client joined room", map[string]interface{}{
				"conversation_id": client.ConversationID,
				"user_id":         client.UserID,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if room, ok := h.rooms[client.ConversationID]; ok {
				if _, in := room[client]; in {
					delete(room, client)
					close(client.Send)
				}
				if len(room) == 0 {
					delete(h.rooms, client.ConversationID)
					h.logger.Info("Hub", "Room emptied", map[string]interface{}{
						"conversation_id": client.ConversationID,
					})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish delivers a payload to every client of a conversation room, on
// this instance and (via Redis) on any other instance holding clients
// for the same conversation. Calls for one conversation happen in
// message-creation order, so the room sees messages in order.
func (h *Hub) Publish(conversationID uuid.UUID, payload []byte) {
	h.deliverLocal(conversationID, payload)

	if h.rdb != nil {
		wrapped, _ := json.Marshal(map[string]interface{}{
			"origin":                 h.instanceID,
			"target_conversation_id": conversationID.String(),
			"message":                json.RawMessage(payload),
		})
		h.rdb.Publish(context.Background(), clusterChannel, wrapped)
	}
}

func (h *Hub) deliverLocal(conversationID uuid.UUID, payload []byte) {
	h.mu.RLock()
	room := h.rooms[conversationID]
	clients := make([]*Client, 0, len(room))
	for c := range room {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- payload:
		default:
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{
				"conversation_id": conversationID,
				"user_id":         client.UserID,
			})
			h.unregister <- client
		}
	}
}

func (h *Hub) subscribeToRedis() {
	// Every instance subscribes to the single room-events channel and
	// delivers to whatever rooms it holds locally. The origin field
	// prevents double delivery on the publishing instance.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			Origin               string          `json:"origin"`
			TargetConversationID string          `json:"target_conversation_id"`
			Message              json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		if payload.Origin == h.instanceID {
			continue
		}

		cid, err := uuid.Parse(payload.TargetConversationID)
		if err != nil {
			continue
		}

		h.deliverLocal(cid, payload.Message)
	}
}
