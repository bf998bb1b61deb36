package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultTimeout = 10 * time.Second
	timeoutEnvKey  = "KEYPUB_HTTP_TIMEOUT"
)

// Client talks to the JSON API of a running keypub server.
type Client struct {
	base string
	hc   *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		hc:   &http.Client{Timeout: timeoutFromEnv()},
	}
}

// Ping succeeds when /health answers 200.
func (c *Client) Ping(ctx context.Context) error {
	_, err := call[map[string]string](ctx, c, http.MethodGet, "/health", nil)
	return err
}

func (c *Client) GetInfo(ctx context.Context) (InfoResponse, error) {
	return call[InfoResponse](ctx, c, http.MethodGet, "/v1/info", nil)
}

// PublishKey stores a new key and returns its record.
func (c *Client) PublishKey(ctx context.Context, req KeyPublishRequest) (KeyResponse, error) {
	return call[KeyResponse](ctx, c, http.MethodPost, "/v1/keys", req)
}

func (c *Client) GetKey(ctx context.Context, id string) (KeyResponse, error) {
	return call[KeyResponse](ctx, c, http.MethodGet, "/v1/keys/"+url.PathEscape(id), nil)
}

func call[T any](ctx context.Context, c *Client, method, path string, in any) (T, error) {
	var out T

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return out, fmt.Errorf("encode %s body: %w", path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return out, err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return out, responseError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("decode %s response: %w", path, err)
	}
	return out, nil
}

// responseError prefers the server's ErrorResponse body and falls back to
// the status line for anything else, such as a proxy error page.
func responseError(resp *http.Response) *APIError {
	var body ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
		return &APIError{Status: resp.StatusCode, Message: "unexpected response: " + resp.Status}
	}
	return &APIError{Status: resp.StatusCode, Code: body.Code, ErrorCode: body.ErrorCode, Message: body.Error}
}

// timeoutFromEnv reads KEYPUB_HTTP_TIMEOUT as a Go duration or whole seconds.
func timeoutFromEnv() time.Duration {
	raw := strings.TrimSpace(os.Getenv(timeoutEnvKey))
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return defaultTimeout
}
