// Package api is the REST client for the agency backend.
//
// Every call sends the bearer token from the configured TokenSource. A 401
// response runs the unauthorized hook (the CLI clears stored credentials)
// and returns ErrUnauthorized.
package api

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

	"github.com/rs/zerolog"
)

// ErrUnauthorized is returned when the backend rejects the token.
var ErrUnauthorized = errors.New("unauthorized: log in again")

// StatusError is returned for non-2xx responses other than 401.
type StatusError struct {
	Method  string
	Path    string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Code, http.StatusText(e.Code))
}

// TokenSource returns the current bearer token. An empty token sends no
// Authorization header.
type TokenSource func() string

// Client calls the agency REST backend.
type Client struct {
	baseURL        string
	client         *http.Client
	token          TokenSource
	onUnauthorized func()
	logger         zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.client = httpClient
	}
}

// WithTimeout bounds each request. Zero keeps requests unbounded.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.client.Timeout = timeout
		}
	}
}

// WithToken sets the bearer token source.
func WithToken(source TokenSource) Option {
	return func(c *Client) {
		c.token = source
	}
}

// WithUnauthorizedHook runs fn whenever the backend answers 401.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// WithLogger sets the request logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	c := &Client{
		baseURL: baseURL,
		client:  &http.Client{},
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized backend URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do sends a request and decodes the response into dest. It reports whether
// the response carried a body; an empty or null body leaves dest untouched.
func (c *Client) do(ctx context.Context, method, path string, payload any, dest any) (bool, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return false, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return false, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Msg("request")

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return false, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, readErrorResponse(method, path, resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("read %s %s: %w", method, path, err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return false, nil
	}
	if dest == nil {
		return true, nil
	}
	if err := json.Unmarshal(trimmed, dest); err != nil {
		return false, fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return true, nil
}

func readErrorResponse(method, path string, resp *http.Response) error {
	statusErr := &StatusError{Method: method, Path: path, Code: resp.StatusCode}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		switch {
		case len(payload.Detail) > 0:
			statusErr.Message = detailMessage(payload.Detail)
		case payload.Error != "":
			statusErr.Message = payload.Error
		}
	}
	return statusErr
}

// detailMessage flattens a detail field, which is either a string or a list
// of validation errors carrying msg fields.
func detailMessage(raw json.RawMessage) string {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &items); err == nil {
		messages := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				messages = append(messages, item.Msg)
			}
		}
		return strings.Join(messages, "; ")
	}
	return string(raw)
}
