package bootstrap

import (
	"context"
	"log"
	"time"

	"chat-relay-be/internal/config"
	"chat-relay-be/internal/controller"
	"chat-relay-be/internal/handler"
	"chat-relay-be/internal/pkg/logger"
	"chat-relay-be/internal/pkg/mailer"
	"chat-relay-be/internal/repository/unitofwork"
	"chat-relay-be/internal/service"
	"chat-relay-be/internal/websocket"
	pktNats "chat-relay-be/pkg/nats"
	"chat-relay-be/pkg/webhook"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const messageCreatedTopic = "MESSAGE_CREATED"

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	UserController     controller.IUserController
	ChatController     controller.IChatController
	ProviderController controller.IProviderController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	ChatWsHandler *handler.ChatWsHandler
	WebSocketHub  *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		cfg.App.ClientURL,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/realtime.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Outbound relay
	relay := webhook.NewClient(
		cfg.Webhook.URL,
		time.Duration(cfg.Webhook.TimeoutSeconds)*time.Second,
	)

	// 3. Services
	publisherService := service.NewPublisherService(messageCreatedTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, messageCreatedTopic, wsHub)

	activityService := service.NewActivityService(uowFactory, natsPub, sysLogger)
	authService := service.NewAuthService(uowFactory, emailService, activityService, cfg.Auth)
	userService := service.NewUserService(uowFactory)
	providerService := service.NewProviderService(uowFactory)
	chatService := service.NewChatService(
		uowFactory,
		relay,
		providerService,
		publisherService,
		sysLogger,
	)

	// WebSocket Handler
	chatWsHandler := handler.NewChatWsHandler(uowFactory, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		AuthController:     controller.NewAuthController(authService),
		UserController:     controller.NewUserController(userService),
		ChatController:     controller.NewChatController(chatService),
		ProviderController: controller.NewProviderController(providerService),

		ConsumerService: consumerService,

		ChatWsHandler: chatWsHandler,
		WebSocketHub:  wsHub,
	}
}
