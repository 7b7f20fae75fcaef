package service

import (
	"context"
	"time"

	"chat-relay-be/internal/entity"
	"chat-relay-be/internal/pkg/logger"
	"chat-relay-be/internal/repository/unitofwork"
	"chat-relay-be/pkg/events"
	pktNats "chat-relay-be/pkg/nats"

	"github.com/google/uuid"
)

const (
	ActivityRegister      = "USER_REGISTER"
	ActivityLogin         = "USER_LOGIN"
	ActivityEmailVerified = "USER_EMAIL_VERIFIED"
)

type IActivityService interface {
	// Record is fire-and-forget: it never returns an error and never
	// blocks the caller's request path.
	Record(userId uuid.UUID, action, detail, ipAddress, userAgent string)
}

type activityService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewActivityService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher, log logger.ILogger) IActivityService {
	return &activityService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *activityService) Record(userId uuid.UUID, action, detail, ipAddress, userAgent string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		uow := s.uowFactory.NewUnitOfWork(ctx)
		logEntry := &entity.ActivityLog{
			Id:        uuid.New(),
			UserId:    userId,
			Action:    action,
			Detail:    detail,
			IpAddress: ipAddress,
			UserAgent: userAgent,
			CreatedAt: time.Now(),
		}
		if err := uow.ActivityLogRepository().Create(ctx, logEntry); err != nil {
			s.logger.Warn("Activity", "Failed to persist activity record", map[string]interface{}{
				"action": action,
				"error":  err.Error(),
			})
		}

		if s.eventPublisher == nil {
			return
		}
		event := events.BaseEvent{
			Type: action,
			Data: map[string]interface{}{
				"user_id": userId,
				"detail":  detail,
				"device":  userAgent,
				"time":    time.Now().Format(time.RFC822),
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Activity", "Failed to publish activity event", map[string]interface{}{
				"action": action,
				"error":  err.Error(),
			})
		}
	}()
}
