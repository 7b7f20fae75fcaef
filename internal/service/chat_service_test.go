package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"chat-relay-be/internal/constant"
	"chat-relay-be/internal/dto"
	"chat-relay-be/internal/entity"
	"chat-relay-be/internal/pkg/serverutils"
	"chat-relay-be/internal/repository/contract"
	"chat-relay-be/internal/repository/specification"
	"chat-relay-be/internal/repository/unitofwork"
	"chat-relay-be/pkg/webhook"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "short content unchanged",
			content: "Hello, how do I reset my password?",
			want:    "Hello, how do I reset my password?",
		},
		{
			name:    "exactly fifty runes unchanged",
			content: strings.Repeat("a", 50),
			want:    strings.Repeat("a", 50),
		},
		{
			name:    "long content truncated with ellipsis",
			content: strings.Repeat("a", 51),
			want:    strings.Repeat("a", 50) + "...",
		},
		{
			name:    "multibyte runes are not split",
			content: strings.Repeat("日", 60),
			want:    strings.Repeat("日", 50) + "...",
		},
		{
			name:    "surrounding whitespace trimmed before measuring",
			content: "   trimmed   ",
			want:    "trimmed",
		},
		{
			name:    "empty content falls back to default",
			content: "",
			want:    "New conversation",
		},
		{
			name:    "whitespace-only content falls back to default",
			content: "   \n ",
			want:    "New conversation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveTitle(tt.content)
			if got != tt.want {
				t.Errorf("DeriveTitle(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

// --- SendMessage wiring stubs ---

// recorder keeps the order of side effects so tests can assert the
// persist-then-relay contract.
type recorder struct {
	calls []string
}

func (r *recorder) record(call string) {
	r.calls = append(r.calls, call)
}

type stubUserRepo struct {
	contract.UserRepository
	user *entity.User
}

func (s *stubUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	return s.user, nil
}

type stubConversationRepo struct {
	contract.ConversationRepository
	rec          *recorder
	conversation *entity.Conversation
}

func (s *stubConversationRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error) {
	return s.conversation, nil
}

func (s *stubConversationRepo) UpdateTitle(ctx context.Context, id uuid.UUID, title string) error {
	s.rec.record("update_title")
	s.conversation.Title = title
	return nil
}

func (s *stubConversationRepo) Touch(ctx context.Context, id uuid.UUID) error {
	s.rec.record("touch")
	return nil
}

type stubMessageRepo struct {
	contract.MessageRepository
	rec      *recorder
	messages []*entity.Message
}

func (s *stubMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	s.rec.record("persist_" + message.Role)
	s.messages = append(s.messages, message)
	return nil
}

func (s *stubMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(s.messages)), nil
}

type stubUow struct {
	unitofwork.UnitOfWork
	users         contract.UserRepository
	conversations contract.ConversationRepository
	messages      contract.MessageRepository
}

func (s *stubUow) UserRepository() contract.UserRepository                 { return s.users }
func (s *stubUow) ConversationRepository() contract.ConversationRepository { return s.conversations }
func (s *stubUow) MessageRepository() contract.MessageRepository           { return s.messages }

type stubFactory struct {
	uow unitofwork.UnitOfWork
}

func (s *stubFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return s.uow }

type stubRelay struct {
	rec    *recorder
	result *webhook.Result
	err    error
}

func (s *stubRelay) Send(ctx context.Context, req webhook.Request) (*webhook.Result, error) {
	s.rec.record("relay")
	return s.result, s.err
}

type stubProviders struct{}

func (stubProviders) ListProviders(ctx context.Context) ([]dto.ProviderDTO, error) { return nil, nil }
func (stubProviders) ResolveRoutingKey(ctx context.Context, explicit string) (string, error) {
	return explicit, nil
}

type stubPublisher struct {
	rec *recorder
}

func (s *stubPublisher) Publish(ctx context.Context, payload []byte) error {
	s.rec.record("publish")
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type relayFixture struct {
	rec      *recorder
	messages *stubMessageRepo
	convRepo *stubConversationRepo
	userID   uuid.UUID
	convID   uuid.UUID
}

func newRelayFixture(t *testing.T, relay webhook.Relay, rec *recorder) (IChatService, *relayFixture) {
	t.Helper()

	userID := uuid.New()
	convID := uuid.New()

	convRepo := &stubConversationRepo{
		rec: rec,
		conversation: &entity.Conversation{
			Id:        convID,
			UserId:    userID,
			Title:     constant.DefaultConversationTitle,
			CreatedAt: time.Now(),
		},
	}
	msgRepo := &stubMessageRepo{rec: rec}
	uow := &stubUow{
		users: &stubUserRepo{user: &entity.User{
			Id:          userID,
			Email:       "sender@example.com",
			DisplayName: "Sender",
		}},
		conversations: convRepo,
		messages:      msgRepo,
	}

	svc := NewChatService(
		&stubFactory{uow: uow},
		relay,
		stubProviders{},
		&stubPublisher{rec: rec},
		nopLogger{},
	)

	return svc, &relayFixture{
		rec:      rec,
		messages: msgRepo,
		convRepo: convRepo,
		userID:   userID,
		convID:   convID,
	}
}

func TestSendMessagePersistsUserMessageBeforeRelay(t *testing.T) {
	rec := &recorder{}
	relay := &stubRelay{rec: rec, result: &webhook.Result{
		Reply:          "assistant reply",
		RawBody:        `{"output":"assistant reply"}`,
		ResponseTimeMs: 12,
	}}
	svc, fx := newRelayFixture(t, relay, rec)

	res, err := svc.SendMessage(context.Background(), fx.userID, &dto.SendMessageRequest{
		ConversationId: fx.convID,
		Content:        "hello out there",
	})
	require.NoError(t, err)

	// The user message hits storage before any relay attempt.
	userIdx, relayIdx := -1, -1
	for i, call := range rec.calls {
		switch call {
		case "persist_" + constant.ChatMessageRoleUser:
			userIdx = i
		case "relay":
			relayIdx = i
		}
	}
	require.GreaterOrEqual(t, userIdx, 0, "user message was never persisted")
	require.GreaterOrEqual(t, relayIdx, 0, "relay was never called")
	assert.Less(t, userIdx, relayIdx, "user message must be persisted before the relay call, got %v", rec.calls)

	require.Len(t, fx.messages.messages, 2)
	assistant := fx.messages.messages[1]
	assert.Equal(t, constant.ChatMessageRoleAssistant, assistant.Role)
	assert.Equal(t, "assistant reply", assistant.Content)
	require.NotNil(t, assistant.ResponseTimeMs)
	assert.Equal(t, int64(12), *assistant.ResponseTimeMs)
	require.NotNil(t, assistant.RawResponse)
	assert.Equal(t, `{"output":"assistant reply"}`, *assistant.RawResponse)

	assert.Contains(t, rec.calls, "touch")
	assert.Equal(t, "assistant reply", res.Reply.Content)
	assert.Equal(t, "hello out there", fx.convRepo.conversation.Title, "first message derives the title")
}

func TestSendMessageWebhookFailurePersistsFallback(t *testing.T) {
	rec := &recorder{}
	relay := &stubRelay{rec: rec, err: errors.New("connect timeout")}
	svc, fx := newRelayFixture(t, relay, rec)

	res, err := svc.SendMessage(context.Background(), fx.userID, &dto.SendMessageRequest{
		ConversationId: fx.convID,
		Content:        "are you there?",
	})
	require.NoError(t, err, "relay failure must not fail the request")

	// Both sides of the exchange are persisted, the assistant side
	// carrying exactly the canned fallback text.
	require.Len(t, fx.messages.messages, 2)
	assert.Equal(t, constant.ChatMessageRoleUser, fx.messages.messages[0].Role)
	assert.Equal(t, "are you there?", fx.messages.messages[0].Content)

	assistant := fx.messages.messages[1]
	assert.Equal(t, constant.ChatMessageRoleAssistant, assistant.Role)
	assert.Equal(t, constant.AssistantFallbackMessage, assistant.Content)
	assert.Nil(t, assistant.ResponseTimeMs)
	assert.Nil(t, assistant.RawResponse)

	assert.Equal(t, constant.AssistantFallbackMessage, res.Reply.Content)
}

func TestSendMessageRejectsWhitespaceContent(t *testing.T) {
	rec := &recorder{}
	relay := &stubRelay{rec: rec, result: &webhook.Result{Reply: "never"}}
	svc, fx := newRelayFixture(t, relay, rec)

	res, err := svc.SendMessage(context.Background(), fx.userID, &dto.SendMessageRequest{
		ConversationId: fx.convID,
		Content:        "   \n\t ",
	})
	require.Error(t, err)
	assert.Nil(t, res)

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)

	// Rejected before anything was stored or relayed.
	assert.Empty(t, rec.calls)
	assert.Empty(t, fx.messages.messages)
}
