package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs attaches an upgraded connection to a conversation room and
// runs the client pumps. Ownership of the conversation must already be
// verified by the caller.
func ServeWs(hub *Hub, c *websocket.Conn, userID, conversationID uuid.UUID) {
	client := &Client{
		Hub:            hub,
		Conn:           c,
		UserID:         userID,
		ConversationID: conversationID,
		Send:           make(chan []byte, 256),
	}
	client.Hub.register <- client

	go client.writePump()
	client.readPump() // runs in the handler goroutine
}
