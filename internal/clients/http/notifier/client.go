// Package notifier is a client for the messaging service that emails owners on our behalf.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const messagePath = "/message"

// Message is the payload accepted by the messaging service.
type Message struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	ContactName  string `json:"contactName,omitempty"`
	EmailContact string `json:"emailContact,omitempty"`
	Message      string `json:"message,omitempty"`
	Token        string `json:"token"`
	Template     string `json:"template"`
}

// errorBody is returned by the messaging service on failure.
type errorBody struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Client posts messages to the messaging service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient instantiates the client with sane defaults. The default HTTP client
// propagates the trace context of the caller.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("notifier base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   5 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &Client{baseURL: baseURL, http: httpClient}, nil
}

// Send posts the message and maps non-2xx answers to errors.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if c == nil || c.http == nil {
		return errors.New("notifier client not configured")
	}
	if strings.TrimSpace(msg.Email) == "" {
		return errors.New("notifier recipient email is required")
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+messagePath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notifier request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call notifier: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	case resp.StatusCode >= http.StatusBadRequest:
		return fmt.Errorf("notifier error: %s", errorMessage(resp))
	default:
		return fmt.Errorf("notifier unexpected status: %s", resp.Status)
	}
}

func errorMessage(resp *http.Response) string {
	var body errorBody
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err != nil {
		return resp.Status
	}
	if msg := strings.TrimSpace(body.Message); msg != "" {
		return msg
	}
	if msg := strings.TrimSpace(body.Status); msg != "" {
		return msg
	}
	return resp.Status
}
