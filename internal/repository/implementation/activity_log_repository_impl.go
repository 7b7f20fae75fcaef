package implementation

import (
	"context"

	"chat-relay-be/internal/entity"
	"chat-relay-be/internal/model"
	"chat-relay-be/internal/repository/contract"
	"chat-relay-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ActivityLogRepositoryImpl struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) contract.ActivityLogRepository {
	return &ActivityLogRepositoryImpl{db: db}
}

func (r *ActivityLogRepositoryImpl) Create(ctx context.Context, logEntry *entity.ActivityLog) error {
	m := model.ActivityLog(*logEntry)
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *ActivityLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ActivityLog, error) {
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}

	var models []*model.ActivityLog
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ActivityLog, len(models))
	for i, m := range models {
		e := entity.ActivityLog(*m)
		entities[i] = &e
	}
	return entities, nil
}
