package webhook

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// UserContext identifies the authenticated sender to the workflow engine.
type UserContext struct {
	Id    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Request is the payload posted to the configured webhook.
type Request struct {
	Message        string       `json:"message"`
	ConversationId string       `json:"conversationId"`
	User           *UserContext `json:"user,omitempty"`
	RoutingKey     string       `json:"routingKey,omitempty"`
	Timestamp      string       `json:"timestamp"`
}

// Result carries the extracted assistant text plus the raw body for
// auditing.
type Result struct {
	Reply          string
	RawBody        string
	ResponseTimeMs int64
}

type Relay interface {
	Send(ctx context.Context, req Request) (*Result, error)
}

type Client struct {
	http *resty.Client
	url  string
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().SetTimeout(timeout),
		url:  url,
	}
}

// Send performs exactly one synchronous call; timeouts and transport
// failures surface as errors, the caller decides on fallback behavior.
// No retries here: the relay contract forbids them.
func (c *Client) Send(ctx context.Context, req Request) (*Result, error) {
	if req.Timestamp == "" {
		req.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(c.url)
	elapsed := time.Since(start).Milliseconds()

	if err != nil {
		return nil, fmt.Errorf("webhook call failed: %w", err)
	}

	// Redirect-range statuses are already followed by the client;
	// anything >= 400 counts as assistant unavailable.
	if resp.StatusCode() >= 400 {
		return nil, fmt.Errorf("webhook returned status %d", resp.StatusCode())
	}

	body := resp.Body()
	return &Result{
		Reply:          ExtractReply(body),
		RawBody:        string(body),
		ResponseTimeMs: elapsed,
	}, nil
}
