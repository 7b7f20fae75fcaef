package dto

import "github.com/google/uuid"

type ProviderDTO struct {
	Id         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	RoutingKey string    `json:"routing_key"`
	IsActive   bool      `json:"is_active"`
	Order      int       `json:"order"`
}
