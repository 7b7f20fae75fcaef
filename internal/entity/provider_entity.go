package entity

import (
	"time"

	"github.com/google/uuid"
)

// AIProvider selects which routing key is attached to an outbound
// webhook call. It carries no behavior beyond that.
type AIProvider struct {
	Id         uuid.UUID
	Name       string
	RoutingKey string
	IsActive   bool
	Order      int
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
