// Package api is the typed HTTP gateway to the dayring server. All state
// mutation flows through it; callers get decoded models or a typed error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/charmbracelet/log"
)

// ErrUnauthorized is returned when the server rejects the bearer token.
// The stored token has already been cleared by the time callers see it;
// they must short-circuit to the login surface.
var ErrUnauthorized = errors.New("session expired, please log in again")

// maxErrorBody bounds how much of a non-JSON error body is surfaced.
const maxErrorBody = 240

const defaultTimeout = 30 * time.Second

// Error is a non-2xx response decoded into something presentable.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// TokenSource supplies and invalidates the bearer token. Implementations
// are expected to be backed by the OS keyring.
type TokenSource interface {
	Token() (string, error)
	Clear() error
}

// staticToken is a TokenSource for tests and one-shot commands.
type staticToken struct{ token string }

func (s *staticToken) Token() (string, error) { return s.token, nil }
func (s *staticToken) Clear() error           { s.token = ""; return nil }

// StaticToken returns a TokenSource holding a fixed token in memory.
func StaticToken(token string) TokenSource { return &staticToken{token: token} }

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *log.Logger

	// maxRetries bounds transport-level retries on idempotent requests.
	maxRetries uint64
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

func WithLogger(logger *log.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithMaxRetries(n uint64) Option {
	return func(c *Client) { c.maxRetries = n }
}

// New constructs a Client with optional functional arguments.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		http:       &http.Client{Timeout: defaultTimeout},
		logger:     log.Default(),
		maxRetries: 3,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get issues an authenticated GET and decodes the response into out.
// Transport failures are retried with exponential backoff; any response
// the server actually produced is final.
func (c *Client) get(ctx context.Context, path string, out any) error {
	op := func() error {
		err := c.do(ctx, http.MethodGet, path, nil, out, true)
		if err == nil {
			return nil
		}
		var apiErr *Error
		if errors.As(err, &apiErr) || errors.Is(err, ErrUnauthorized) {
			return backoff.Permanent(err)
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return backoff.Permanent(err)
		}
		c.logger.Debug("retrying request", "path", path, "err", err)
		return err
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
	return backoff.Retry(op, policy)
}

// send issues a mutating request exactly once. Mutations are never
// auto-retried; the caller decides whether a retry is safe.
func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, body, out, true)
}

// public issues a request without a bearer token (login, register).
func (c *Client) public(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, body, out, false)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed && c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return fmt.Errorf("failed to read stored token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		if authed && c.tokens != nil {
			if cerr := c.tokens.Clear(); cerr != nil {
				c.logger.Warn("failed to clear stored token", "err", cerr)
			}
		}
		io.Copy(io.Discard, resp.Body)
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeError turns a non-2xx response into an *Error. The server's
// message or error JSON field wins; otherwise the raw body, truncated;
// otherwise a generic status line.
func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var payload struct {
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Message != "" {
			return &Error{Status: resp.StatusCode, Message: payload.Message}
		}
		if payload.Err != "" {
			return &Error{Status: resp.StatusCode, Message: payload.Err}
		}
	}

	if text := truncate(string(bytes.TrimSpace(raw)), maxErrorBody); text != "" {
		return &Error{Status: resp.StatusCode, Message: text}
	}
	return &Error{
		Status:  resp.StatusCode,
		Message: fmt.Sprintf("request failed (status %d)", resp.StatusCode),
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}

func query(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	return "?" + q.Encode()
}
