package handler

import (
	"os"

	"chat-relay-be/internal/pkg/logger"
	"chat-relay-be/internal/repository/specification"
	"chat-relay-be/internal/repository/unitofwork"
	internalWS "chat-relay-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ChatWsHandler upgrades authenticated connections into conversation
// rooms on the hub.
type ChatWsHandler struct {
	uowFactory unitofwork.RepositoryFactory
	hub        *internalWS.Hub
	logger     logger.ILogger
}

func NewChatWsHandler(uowFactory unitofwork.RepositoryFactory, hub *internalWS.Hub, log logger.ILogger) *ChatWsHandler {
	return &ChatWsHandler{
		uowFactory: uowFactory,
		hub:        hub,
		logger:     log,
	}
}

// ServeWs handles websocket requests from the peer.
func (h *ChatWsHandler) ServeWs(c *fiber.Ctx) error {
	// Priority 1: Query Param (Browser standard)
	tokenStr := c.Query("token")

	// Priority 2: Authorization Header (Tooling/Non-browser standard)
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		h.logger.Warn("ChatWsHandler", "Invalid Token in WS Handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Token missing user_id"})
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Invalid user ID format in token"})
	}

	conversationID, err := uuid.Parse(c.Query("conversation_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing or invalid conversation_id"})
	}

	// Ownership gate: a foreign conversation looks exactly like a
	// missing one.
	uow := h.uowFactory.NewUnitOfWork(c.Context())
	conversation, err := uow.ConversationRepository().FindOne(c.Context(),
		specification.ByID{ID: conversationID},
		specification.UserOwnedBy{UserID: userID},
	)
	if err != nil || conversation == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Conversation not found"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("ChatWsHandler", "Starting WebSocket session", map[string]interface{}{
				"user_id":         userID,
				"conversation_id": conversationID,
			})
			internalWS.ServeWs(h.hub, conn, userID, conversationID)
			h.logger.Info("ChatWsHandler", "WebSocket session ended", map[string]interface{}{
				"user_id":         userID,
				"conversation_id": conversationID,
			})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// RegisterRoutes registers the websocket endpoint.
func (h *ChatWsHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws", h.ServeWs)
}
