// Package client provides a thin HTTP client for the rocketgrowth-margin API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"syscall"
)

const defaultUserAgent = "rgm"

// ErrServerUnavailable is returned when nothing is listening at the base URL.
var ErrServerUnavailable = errors.New("API server not running")

// APIError is a non-2xx response. Detail and Errors are taken from the
// server's problem document when it sends one.
type APIError struct {
	StatusCode int
	Detail     string
	Errors     []string
	Body       string
}

func (e *APIError) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = e.Body
	}
	if len(e.Errors) > 0 {
		msg += " (" + strings.Join(e.Errors, "; ") + ")"
	}
	return fmt.Sprintf("API error (HTTP %d): %s", e.StatusCode, msg)
}

// problem is the subset of huma's error model the client reads.
type problem struct {
	Detail string `json:"detail"`
	Errors []struct {
		Message  string `json:"message"`
		Location string `json:"location"`
	} `json:"errors"`
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Body: strings.TrimSpace(string(body))}

	var p problem
	if json.Unmarshal(body, &p) == nil {
		apiErr.Detail = p.Detail
		for _, d := range p.Errors {
			if d.Location != "" {
				apiErr.Errors = append(apiErr.Errors, d.Location+": "+d.Message)
				continue
			}
			apiErr.Errors = append(apiErr.Errors, d.Message)
		}
	}
	return apiErr
}

// Client is a thin HTTP client for the rocketgrowth-margin API.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// New creates a new API client targeting the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  defaultUserAgent,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	return c.roundTrip(ctx, http.MethodGet, path, nil, dst)
}

func (c *Client) postJSON(ctx context.Context, path string, body, dst any) error {
	return c.roundTrip(ctx, http.MethodPost, path, body, dst)
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body, dst any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isConnectionRefused(err) {
			return fmt.Errorf("%w at %s", ErrServerUnavailable, c.baseURL)
		}
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return newAPIError(resp.StatusCode, raw)
	}

	if dst == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

func isConnectionRefused(err error) bool {
	return errors.Is(err, syscall.ECONNREFUSED) ||
		strings.Contains(err.Error(), "connection refused")
}
