// Package replyclient talks to the chat-reply service: one JSON POST per
// prompt, carrying {"texto": ...} and answered with {"resposta": ...}.
package replyclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	requestField  = "texto"
	responseField = "resposta"

	// maxResponseBytes bounds how much of a reply body is read.
	maxResponseBytes = 1 << 20
)

// ErrCommunication wraps every failure to obtain a reply: transport errors,
// non-2xx statuses, unparseable bodies and bodies without a reply field.
var ErrCommunication = errors.New("communication with chat service failed")

// Config describes how to reach the service.
type Config struct {
	Endpoint string
	// Timeout of 0 leaves the transport default in place.
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client implements chat.Replier over HTTP.
type Client struct {
	endpoint string
	http     *http.Client
}

// New creates a client for cfg.Endpoint.
func New(cfg Config) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("replyclient: endpoint is required")
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{endpoint: endpoint, http: hc}, nil
}

// Endpoint returns the service URL.
func (c *Client) Endpoint() string { return c.endpoint }

// Reply sends text and returns the service's reply.
func (c *Client) Reply(ctx context.Context, text string) (string, error) {
	body, err := sjson.SetBytes([]byte(`{}`), requestField, text)
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", ErrCommunication, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrCommunication, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCommunication, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", ErrCommunication, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d", ErrCommunication, resp.StatusCode)
	}
	return parseReply(data)
}

// parseReply extracts the reply string. A body without a string "resposta"
// field is treated as malformed.
func parseReply(data []byte) (string, error) {
	if !gjson.ValidBytes(data) {
		return "", fmt.Errorf("%w: invalid JSON body", ErrCommunication)
	}
	field := gjson.GetBytes(data, responseField)
	if !field.Exists() {
		return "", fmt.Errorf("%w: missing %q field", ErrCommunication, responseField)
	}
	if field.Type != gjson.String {
		return "", fmt.Errorf("%w: %q is %s, want string", ErrCommunication, responseField, field.Type)
	}
	return field.String(), nil
}
