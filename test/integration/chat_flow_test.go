package integration

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"chat-relay-be/internal/constant"
	"chat-relay-be/internal/entity"
	"chat-relay-be/internal/repository/specification"
	"chat-relay-be/internal/repository/unitofwork"
	"chat-relay-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationFlow(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err, "Failed to connect to DB")

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	ctx := context.Background()
	uow := uowFactory.NewUnitOfWork(ctx)

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.ConversationRepository())
	assert.NotNil(t, uow.MessageRepository())
	assert.NotNil(t, uow.ProviderRepository())
	assert.NotNil(t, uow.ActivityLogRepository())

	// Test fixtures, removed at the end
	user := &entity.User{
		Id:            uuid.New(),
		Email:         fmt.Sprintf("it-%s@example.com", uuid.NewString()[:8]),
		PasswordHash:  "not-a-real-hash",
		DisplayName:   "Integration Test",
		Theme:         "light",
		Status:        entity.UserStatusActive,
		EmailVerified: true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	require.NoError(t, uow.UserRepository().Create(ctx, user))

	conversation := &entity.Conversation{
		Id:        uuid.New(),
		UserId:    user.Id,
		Title:     constant.DefaultConversationTitle,
		CreatedAt: time.Now(),
	}
	require.NoError(t, uow.ConversationRepository().Create(ctx, conversation))

	defer func() {
		gormDB.Exec("DELETE FROM messages WHERE conversation_id = ?", conversation.Id)
		gormDB.Exec("DELETE FROM conversations WHERE id = ?", conversation.Id)
		gormDB.Exec("DELETE FROM users WHERE id = ?", user.Id)
	}()

	t.Run("owner sees the conversation", func(t *testing.T) {
		found, err := uow.ConversationRepository().FindOne(ctx,
			specification.ByID{ID: conversation.Id},
			specification.UserOwnedBy{UserID: user.Id},
		)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, conversation.Title, found.Title)
	})

	t.Run("foreign user sees nothing", func(t *testing.T) {
		found, err := uow.ConversationRepository().FindOne(ctx,
			specification.ByID{ID: conversation.Id},
			specification.UserOwnedBy{UserID: uuid.New()},
		)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("messages round-trip in creation order", func(t *testing.T) {
		userMsg := &entity.Message{
			Id:             uuid.New(),
			ConversationId: conversation.Id,
			Role:           constant.ChatMessageRoleUser,
			Content:        "hello",
			CreatedAt:      time.Now(),
		}
		require.NoError(t, uow.MessageRepository().Create(ctx, userMsg))

		rtt := int64(42)
		assistantMsg := &entity.Message{
			Id:             uuid.New(),
			ConversationId: conversation.Id,
			Role:           constant.ChatMessageRoleAssistant,
			Content:        "hi back",
			ResponseTimeMs: &rtt,
			CreatedAt:      time.Now().Add(time.Millisecond),
		}
		require.NoError(t, uow.MessageRepository().Create(ctx, assistantMsg))

		count, err := uow.MessageRepository().Count(ctx,
			specification.ByConversationID{ConversationID: conversation.Id})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		messages, err := uow.MessageRepository().FindAll(ctx,
			specification.ByConversationID{ConversationID: conversation.Id},
			specification.OrderBy{Field: "created_at"},
		)
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, constant.ChatMessageRoleUser, messages[0].Role)
		assert.Equal(t, constant.ChatMessageRoleAssistant, messages[1].Role)
	})

	t.Run("soft delete hides the conversation", func(t *testing.T) {
		require.NoError(t, uow.ConversationRepository().Delete(ctx, conversation.Id))

		found, err := uow.ConversationRepository().FindOne(ctx,
			specification.ByID{ID: conversation.Id},
			specification.UserOwnedBy{UserID: user.Id},
		)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}
