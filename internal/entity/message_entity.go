package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message rows are append-only: once created they are never mutated
// and their created_at ordering is the display order.
type Message struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	Role           string
	Content        string
	ResponseTimeMs *int64
	RawResponse    *string
	CreatedAt      time.Time
}
