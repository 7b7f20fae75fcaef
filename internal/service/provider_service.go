// FILE: internal/service/provider_service.go
package service

import (
	"context"
	"time"

	"chat-relay-be/internal/dto"
	"chat-relay-be/internal/entity"
	"chat-relay-be/internal/repository/specification"
	"chat-relay-be/internal/repository/unitofwork"

	gocache "github.com/patrickmn/go-cache"
)

const providerCacheKey = "active_providers"

type IProviderService interface {
	ListProviders(ctx context.Context) ([]dto.ProviderDTO, error)
	// ResolveRoutingKey returns the routing key the relay should use.
	// An explicit key from the client wins; otherwise the lowest-order
	// active provider decides. Empty means no routing hint at all.
	ResolveRoutingKey(ctx context.Context, explicit string) (string, error)
}

type providerService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *gocache.Cache
}

func NewProviderService(uowFactory unitofwork.RepositoryFactory) IProviderService {
	return &providerService{
		uowFactory: uowFactory,
		cache:      gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *providerService) activeProviders(ctx context.Context) ([]*entity.AIProvider, error) {
	if cached, found := s.cache.Get(providerCacheKey); found {
		return cached.([]*entity.AIProvider), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	providers, err := uow.ProviderRepository().FindAll(ctx,
		specification.ActiveOnly{},
		specification.OrderBy{Field: "sort_order"},
	)
	if err != nil {
		return nil, err
	}

	s.cache.Set(providerCacheKey, providers, gocache.DefaultExpiration)
	return providers, nil
}

func (s *providerService) ListProviders(ctx context.Context) ([]dto.ProviderDTO, error) {
	providers, err := s.activeProviders(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ProviderDTO, 0, len(providers))
	for _, p := range providers {
		result = append(result, dto.ProviderDTO{
			Id:         p.Id,
			Name:       p.Name,
			RoutingKey: p.RoutingKey,
			IsActive:   p.IsActive,
			Order:      p.Order,
		})
	}
	return result, nil
}

func (s *providerService) ResolveRoutingKey(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	providers, err := s.activeProviders(ctx)
	if err != nil {
		return "", err
	}
	if len(providers) == 0 {
		return "", nil
	}
	return providers[0].RoutingKey, nil
}
