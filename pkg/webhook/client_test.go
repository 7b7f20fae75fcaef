package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSend(t *testing.T) {
	var received Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"output":"assistant says hi"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	result, err := client.Send(context.Background(), Request{
		Message:        "hello",
		ConversationId: "c-1",
		User:           &UserContext{Id: "u-1", Email: "a@b.com", Name: "A"},
		RoutingKey:     "default",
	})

	require.NoError(t, err)
	assert.Equal(t, "assistant says hi", result.Reply)
	assert.Equal(t, `{"output":"assistant says hi"}`, result.RawBody)
	assert.GreaterOrEqual(t, result.ResponseTimeMs, int64(0))

	// Payload landed upstream unchanged, timestamp filled in.
	assert.Equal(t, "hello", received.Message)
	assert.Equal(t, "c-1", received.ConversationId)
	assert.Equal(t, "default", received.RoutingKey)
	assert.NotEmpty(t, received.Timestamp)
}

func TestClientSendErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	result, err := client.Send(context.Background(), Request{Message: "hi", ConversationId: "c-1"})

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestClientSendNonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("just plain text"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	result, err := client.Send(context.Background(), Request{Message: "hi", ConversationId: "c-1"})

	require.NoError(t, err)
	assert.Equal(t, "just plain text", result.Reply)
}

func TestClientSendTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`"late"`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 50*time.Millisecond)
	result, err := client.Send(context.Background(), Request{Message: "hi", ConversationId: "c-1"})

	assert.Error(t, err)
	assert.Nil(t, result)
}
