package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateConversationRequest struct {
	Title string `json:"title" validate:"max=255"`
}

type ConversationResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type RenameConversationRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}

type SendMessageRequest struct {
	ConversationId uuid.UUID `json:"conversation_id" validate:"required"`
	Content        string    `json:"content" validate:"required"`
	RoutingKey     string    `json:"routing_key,omitempty"`
}

type MessageDTO struct {
	Id             uuid.UUID `json:"id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
	ResponseTimeMs *int64    `json:"response_time_ms,omitempty"`
}

type SendMessageResponse struct {
	ConversationId uuid.UUID   `json:"conversation_id"`
	Title          string      `json:"title"`
	Sent           *MessageDTO `json:"sent"`
	Reply          *MessageDTO `json:"reply"`
}

type ListMessagesResponse struct {
	Messages []MessageDTO `json:"messages"`
	Page     int          `json:"page"`
	Limit    int          `json:"limit"`
	Total    int64        `json:"total"`
}

// RealtimeMessage is the envelope pushed to websocket subscribers.
type RealtimeMessage struct {
	Type string     `json:"type"`
	Data MessageDTO `json:"data"`
}

// MessageCreatedEvent is the in-process pubsub payload that carries a
// freshly persisted message from the relay to the websocket hub.
type MessageCreatedEvent struct {
	ConversationId uuid.UUID  `json:"conversation_id"`
	Message        MessageDTO `json:"message"`
}
