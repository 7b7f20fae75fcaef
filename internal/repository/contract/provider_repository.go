package contract

import (
	"context"

	"chat-relay-be/internal/entity"
	"chat-relay-be/internal/repository/specification"
)

type ProviderRepository interface {
	Create(ctx context.Context, provider *entity.AIProvider) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AIProvider, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AIProvider, error)
}
