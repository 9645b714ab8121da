// Package api implements the outbound side of the chat: one form-encoded
// POST per message, answered with ready-to-render markup.
package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	apierrors "github.com/diogo/posechat/internal/errors"
	"github.com/diogo/posechat/internal/models"
)

// Doer is the part of tls_client.HttpClient the client uses.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client sends user messages to the recommendation server.
type Client struct {
	httpClient Doer
	endpoint   string
	timeout    time.Duration
	logger     *slog.Logger
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithHTTPClient replaces the TLS client, mainly for tests
func WithHTTPClient(doer Doer) ClientOption {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// WithTimeout bounds each round trip. Zero, the default, waits forever.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger sets the client logger
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	endpoint, err := ResponseURL(baseURL)
	if err != nil {
		return nil, err
	}

	client := &Client{
		endpoint: endpoint,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(int(client.timeout / time.Second)),
			tls_client.WithClientProfile(profiles.Chrome_120),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// ResponseURL joins baseURL and the response endpoint.
func ResponseURL(baseURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid server URL %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid server URL %q: missing host", baseURL)
	}
	u.Path = strings.TrimRight(u.Path, "/") + models.EndpointResponse
	u.RawQuery = ""
	return u.String(), nil
}

// Endpoint returns the full URL messages are posted to
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Send posts text as the user_input form field and returns the response body.
// Every delivered body is returned as-is, whatever the status code; only a
// transport failure is an error.
func (c *Client) Send(ctx context.Context, text string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	// Spaces encode as "+" rather than "%20"; form decoding reads both the same.
	form := url.Values{}
	form.Set(models.FieldUserInput, text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apierrors.NewNetworkError("send message", c.endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apierrors.NewNetworkError("read response", c.endpoint, err)
	}

	c.logger.Debug("response received",
		"status", resp.StatusCode,
		"bytes", len(body),
		"elapsed", time.Since(start),
	)
	return string(body), nil
}
