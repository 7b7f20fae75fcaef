// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"

	"chat-relay-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// RoomDelivery pushes real-time payloads to everyone watching a
// conversation. Typically implemented by the WebSocket Hub.
type RoomDelivery interface {
	Publish(conversationID uuid.UUID, payload []byte)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	delivery  RoomDelivery
}

func NewConsumerService(pubSub *gochannel.GoChannel, topicName string, delivery RoomDelivery) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		delivery:  delivery,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var event dto.MessageCreatedEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	frame := dto.RealtimeMessage{
		Type: "message",
		Data: event.Message,
	}
	payload, err := json.Marshal(frame)
	if err != nil {
		log.Printf("[ERROR] Failed to marshal realtime frame: %v", err)
		msg.Ack()
		return
	}

	if cs.delivery != nil {
		cs.delivery.Publish(event.ConversationId, payload)
	}
	msg.Ack()
}
