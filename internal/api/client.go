package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the public instance of the story-sharing service.
const DefaultBaseURL = "https://hack-or-snooze-v3.herokuapp.com"

// Client talks to the remote story-sharing service. Every operation is a
// single round-trip; local collections passed to the mutating operations
// are updated only after the service confirms the change.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New builds a Client for the service at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Scheme == "" {
		parsed.Scheme = "https"
	}

	client := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, query, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, endpoint string, body, out any) error {
	req, err := c.newRequest(ctx, http.MethodPost, endpoint, nil, body)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// The service expects the token as a JSON body field on DELETE as well.
func (c *Client) del(ctx context.Context, endpoint string, body any) error {
	req, err := c.newRequest(ctx, http.MethodDelete, endpoint, nil, body)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, query url.Values, body any) (*http.Request, error) {
	resolved := *c.baseURL
	basePath := strings.TrimSuffix(c.baseURL.Path, "/")
	resolved.Path = path.Clean(basePath + endpoint)
	if query != nil {
		resolved.RawQuery = query.Encode()
	}

	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		buf = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, resolved.String(), buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	logrus.WithFields(logrus.Fields{
		"method": req.Method,
		"path":   req.URL.Path,
	}).Debug("storyhive api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("storyhive api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var svcErr errorBody
		data, readErr := io.ReadAll(resp.Body)
		if readErr == nil && len(data) > 0 {
			_ = json.Unmarshal(data, &svcErr)
		}
		message := svcErr.Error.Message
		if message == "" {
			message = strings.TrimSpace(string(data))
		}
		return mapStatus(resp.StatusCode, message)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
