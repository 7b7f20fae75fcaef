package websocket

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func newTestClient(hub *Hub, conversationID uuid.UUID) *Client {
	return &Client{
		Hub:            hub,
		UserID:         uuid.New(),
		ConversationID: conversationID,
		Send:           make(chan []byte, 8),
	}
}

func TestHubRoomDelivery(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	conversationID := uuid.New()
	a := newTestClient(hub, conversationID)
	b := newTestClient(hub, conversationID)
	other := newTestClient(hub, uuid.New())

	hub.register <- a
	hub.register <- b
	hub.register <- other

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.rooms[conversationID]) == 2
	}, time.Second, 5*time.Millisecond)

	hub.Publish(conversationID, []byte("hello room"))

	assert.Equal(t, []byte("hello room"), <-a.Send)
	assert.Equal(t, []byte("hello room"), <-b.Send)

	// The other conversation's client sees nothing.
	select {
	case payload := <-other.Send:
		t.Fatalf("unexpected delivery to other room: %s", payload)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubUnregisterClosesSendAndEmptiesRoom(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	conversationID := uuid.New()
	client := newTestClient(hub, conversationID)

	hub.register <- client
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.rooms[conversationID]) == 1
	}, time.Second, 5*time.Millisecond)

	hub.unregister <- client

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		_, exists := hub.rooms[conversationID]
		return !exists
	}, time.Second, 5*time.Millisecond)

	_, open := <-client.Send
	assert.False(t, open, "send channel should be closed after unregister")
}

func TestHubPublishToEmptyRoom(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	// No clients, no Redis: must not panic or block.
	hub.Publish(uuid.New(), []byte("into the void"))
}
