// FILE: internal/service/chat_service.go
package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"chat-relay-be/internal/constant"
	"chat-relay-be/internal/dto"
	"chat-relay-be/internal/entity"
	"chat-relay-be/internal/pkg/logger"
	"chat-relay-be/internal/pkg/serverutils"
	"chat-relay-be/internal/repository/specification"
	"chat-relay-be/internal/repository/unitofwork"
	"chat-relay-be/pkg/webhook"

	"github.com/google/uuid"
)

type IChatService interface {
	CreateConversation(ctx context.Context, userId uuid.UUID, req *dto.CreateConversationRequest) (*dto.ConversationResponse, error)
	ListConversations(ctx context.Context, userId uuid.UUID) ([]dto.ConversationResponse, error)
	RenameConversation(ctx context.Context, userId, conversationId uuid.UUID, req *dto.RenameConversationRequest) error
	DeleteConversation(ctx context.Context, userId, conversationId uuid.UUID) error
	SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	ListMessages(ctx context.Context, userId, conversationId uuid.UUID, page, limit int) (*dto.ListMessagesResponse, error)
}

type chatService struct {
	uowFactory       unitofwork.RepositoryFactory
	relay            webhook.Relay
	providerService  IProviderService
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	relay webhook.Relay,
	providerService IProviderService,
	publisherService IPublisherService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:       uowFactory,
		relay:            relay,
		providerService:  providerService,
		publisherService: publisherService,
		logger:           log,
	}
}

// DeriveTitle builds a conversation title from the first user message:
// the first 50 runes, with an ellipsis when the content was longer.
func DeriveTitle(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return constant.DefaultConversationTitle
	}
	runes := []rune(trimmed)
	if len(runes) <= constant.ConversationTitleMaxLen {
		return trimmed
	}
	return string(runes[:constant.ConversationTitleMaxLen]) + "..."
}

func (s *chatService) CreateConversation(ctx context.Context, userId uuid.UUID, req *dto.CreateConversationRequest) (*dto.ConversationResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = constant.DefaultConversationTitle
	}

	conversation := &entity.Conversation{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     title,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ConversationRepository().Create(ctx, conversation); err != nil {
		return nil, err
	}

	return &dto.ConversationResponse{
		Id:        conversation.Id,
		Title:     conversation.Title,
		CreatedAt: conversation.CreatedAt,
		UpdatedAt: conversation.UpdatedAt,
	}, nil
}

func (s *chatService) ListConversations(ctx context.Context, userId uuid.UUID) ([]dto.ConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversations, err := uow.ConversationRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ConversationResponse, 0, len(conversations))
	for _, c := range conversations {
		result = append(result, dto.ConversationResponse{
			Id:        c.Id,
			Title:     c.Title,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}
	return result, nil
}

// ownedConversation loads a conversation scoped to its owner. A foreign
// or missing conversation is the same 404 either way, so ownership is
// never leaked.
func (s *chatService) ownedConversation(ctx context.Context, uow unitofwork.UnitOfWork, userId, conversationId uuid.UUID) (*entity.Conversation, error) {
	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByID{ID: conversationId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, serverutils.NewNotFound("conversation not found")
	}
	return conversation, nil
}

func (s *chatService) RenameConversation(ctx context.Context, userId, conversationId uuid.UUID, req *dto.RenameConversationRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.ownedConversation(ctx, uow, userId, conversationId); err != nil {
		return err
	}
	return uow.ConversationRepository().UpdateTitle(ctx, conversationId, strings.TrimSpace(req.Title))
}

func (s *chatService) DeleteConversation(ctx context.Context, userId, conversationId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.ownedConversation(ctx, uow, userId, conversationId); err != nil {
		return err
	}
	return uow.ConversationRepository().Delete(ctx, conversationId)
}

func (s *chatService) SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, serverutils.NewBadRequest("message content cannot be empty")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := s.ownedConversation(ctx, uow, userId, req.ConversationId)
	if err != nil {
		return nil, err
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, serverutils.NewNotFound("user not found")
	}

	existing, err := uow.MessageRepository().Count(ctx, specification.ByConversationID{ConversationID: conversation.Id})
	if err != nil {
		return nil, err
	}
	isFirstMessage := existing == 0

	userMessage := &entity.Message{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		Role:           constant.ChatMessageRoleUser,
		Content:        content,
		CreatedAt:      time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, userMessage); err != nil {
		return nil, err
	}
	s.publishMessage(ctx, conversation.Id, userMessage)

	// Title derivation is best effort: a failure here must never block
	// the relay.
	title := conversation.Title
	if isFirstMessage {
		title = DeriveTitle(content)
		if err := uow.ConversationRepository().UpdateTitle(ctx, conversation.Id, title); err != nil {
			s.logger.Warn("ChatService", "Failed to derive conversation title", map[string]interface{}{
				"conversation_id": conversation.Id.String(),
				"error":           err.Error(),
			})
			title = conversation.Title
		}
	}

	routingKey, err := s.providerService.ResolveRoutingKey(ctx, req.RoutingKey)
	if err != nil {
		s.logger.Warn("ChatService", "Failed to resolve routing key", map[string]interface{}{"error": err.Error()})
		routingKey = req.RoutingKey
	}

	assistantMessage := s.callWebhook(ctx, conversation.Id, user, content, routingKey)
	if err := uow.MessageRepository().Create(ctx, assistantMessage); err != nil {
		return nil, err
	}

	if err := uow.ConversationRepository().Touch(ctx, conversation.Id); err != nil {
		s.logger.Warn("ChatService", "Failed to touch conversation", map[string]interface{}{
			"conversation_id": conversation.Id.String(),
			"error":           err.Error(),
		})
	}
	s.publishMessage(ctx, conversation.Id, assistantMessage)

	sentDTO := toMessageDTO(userMessage)
	replyDTO := toMessageDTO(assistantMessage)
	return &dto.SendMessageResponse{
		ConversationId: conversation.Id,
		Title:          title,
		Sent:           &sentDTO,
		Reply:          &replyDTO,
	}, nil
}

// callWebhook relays the user content upstream and always comes back
// with a persistable assistant message: on any failure the reply body
// is the canned fallback text.
func (s *chatService) callWebhook(ctx context.Context, conversationId uuid.UUID, user *entity.User, content, routingKey string) *entity.Message {
	result, err := s.relay.Send(ctx, webhook.Request{
		Message:        content,
		ConversationId: conversationId.String(),
		User: &webhook.UserContext{
			Id:    user.Id.String(),
			Email: user.Email,
			Name:  user.DisplayName,
		},
		RoutingKey: routingKey,
	})

	msg := &entity.Message{
		Id:             uuid.New(),
		ConversationId: conversationId,
		Role:           constant.ChatMessageRoleAssistant,
		CreatedAt:      time.Now(),
	}

	if err != nil {
		s.logger.Error("ChatService", "Webhook relay failed", map[string]interface{}{
			"conversation_id": conversationId.String(),
			"error":           err.Error(),
		})
		msg.Content = constant.AssistantFallbackMessage
		return msg
	}

	msg.Content = result.Reply
	msg.ResponseTimeMs = &result.ResponseTimeMs
	if result.RawBody != "" {
		raw := result.RawBody
		msg.RawResponse = &raw
	}
	return msg
}

func (s *chatService) publishMessage(ctx context.Context, conversationId uuid.UUID, msg *entity.Message) {
	event := dto.MessageCreatedEvent{
		ConversationId: conversationId,
		Message:        toMessageDTO(msg),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Warn("ChatService", "Failed to marshal message event", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn("ChatService", "Failed to publish message event", map[string]interface{}{"error": err.Error()})
	}
}

func (s *chatService) ListMessages(ctx context.Context, userId, conversationId uuid.UUID, page, limit int) (*dto.ListMessagesResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.ownedConversation(ctx, uow, userId, conversationId); err != nil {
		return nil, err
	}

	total, err := uow.MessageRepository().Count(ctx, specification.ByConversationID{ConversationID: conversationId})
	if err != nil {
		return nil, err
	}

	// Page 1 holds the newest messages; within a page the order flips
	// back to oldest-first for display.
	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversationId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	if err != nil {
		return nil, err
	}

	result := make([]dto.MessageDTO, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		result = append(result, toMessageDTO(messages[i]))
	}

	return &dto.ListMessagesResponse{
		Messages: result,
		Page:     page,
		Limit:    limit,
		Total:    total,
	}, nil
}

func toMessageDTO(m *entity.Message) dto.MessageDTO {
	return dto.MessageDTO{
		Id:             m.Id,
		Role:           m.Role,
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
		ResponseTimeMs: m.ResponseTimeMs,
	}
}
