package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Exchanger is the transport capability the orchestrator depends on. The
// production implementation is Client; tests substitute stubs.
type Exchanger interface {
	Exchange(ctx context.Context, req ExchangeRequest) (*ExchangeResponse, error)
}

// Client talks to the backend over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Entry
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger overrides the client's logger.
func WithLogger(logger *logrus.Logger) ClientOption {
	return func(c *Client) { c.logger = logger.WithField("component", "chat-client") }
}

// NewClient returns a client for the backend at baseURL, e.g.
// "http://localhost:5000".
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
		logger: logrus.StandardLogger().WithField("component", "chat-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Exchange issues one POST /api/chat call. Any transport fault or non-2xx
// status is a single error; the caller decides how to surface it.
func (c *Client) Exchange(ctx context.Context, req ExchangeRequest) (*ExchangeResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading chat response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("chat request failed with status %d", resp.StatusCode)
	}

	var out ExchangeResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("decoding chat response: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"session":  req.SessionID,
		"history":  len(req.History),
		"commands": len(out.GraphCommands),
		"elapsed":  time.Since(start).Round(time.Millisecond),
	}).Debug("chat exchange completed")
	return &out, nil
}
