package mapper

import (
	"time"

	"chat-relay-be/internal/entity"
	"chat-relay-be/internal/model"
)

type ProviderMapper struct{}

func NewProviderMapper() *ProviderMapper {
	return &ProviderMapper{}
}

func (m *ProviderMapper) ToEntity(p *model.AIProvider) *entity.AIProvider {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.AIProvider{
		Id:         p.Id,
		Name:       p.Name,
		RoutingKey: p.RoutingKey,
		IsActive:   p.IsActive,
		Order:      p.Order,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *ProviderMapper) ToModel(p *entity.AIProvider) *model.AIProvider {
	if p == nil {
		return nil
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	return &model.AIProvider{
		Id:         p.Id,
		Name:       p.Name,
		RoutingKey: p.RoutingKey,
		IsActive:   p.IsActive,
		Order:      p.Order,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}
