// Package client is the single point of outbound HTTP configuration for the
// budget backend: base URL, JSON encoding, bearer token injection and the global
// reaction to 401 responses.
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
	"sync"
	"time"

	apperrors "budgetplanner/internal/errors"
	"budgetplanner/internal/logger"
	"budgetplanner/internal/session"
	"budgetplanner/internal/uuid"

	"go.uber.org/zap"
)

// maxErrorBody caps how much of a failed response is kept for error translation.
const maxErrorBody = 64 << 10

// StatusError is returned for every non-2xx response. The body is passed through
// untouched so callers can extract field errors.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
}

// Client performs JSON requests against the backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Session
	log        *zap.SugaredLogger

	mu             sync.RWMutex
	onUnauthorized []func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default *http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a Client for baseURL that reads its bearer token from sess.
func New(baseURL string, sess *session.Session, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		session:    sess,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.Named("client")
	}
	return c
}

// OnUnauthorized registers fn to run after a 401 response has cleared the
// session. Handlers run synchronously, before the failing call returns.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = append(c.onUnauthorized, fn)
}

// Get issues a GET and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// Do performs one request. body is JSON encoded when non-nil; out receives the
// decoded response when non-nil and the response has content.
//
// Errors: *StatusError for non-2xx responses, an error wrapping
// apperrors.ErrNetwork when no response arrived, and ErrServer-wrapped errors
// for undecodable responses.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	requestID := uuid.New()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(uuid.HeaderRequestID, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debugw("request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s %s: %w", method, path, ctxErr)
		}
		return apperrors.Wrap(apperrors.ErrNetwork, fmt.Errorf("%s %s: %w", method, path, err))
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debugw("request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"latency", time.Since(start),
		"request_id", requestID,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if resp.StatusCode == http.StatusUnauthorized {
			c.handleUnauthorized()
		}
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: raw}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperrors.Wrap(
			apperrors.WithMessage(apperrors.ErrServer, "Unexpected response from server"),
			fmt.Errorf("decoding %s %s response: %w", method, path, err),
		)
	}
	return nil
}

func (c *Client) handleUnauthorized() {
	if err := c.session.Clear(); err != nil {
		c.log.Warnw("failed to clear session after 401", "error", err)
	}
	c.mu.RLock()
	handlers := append([]func(){}, c.onUnauthorized...)
	c.mu.RUnlock()
	for _, fn := range handlers {
		fn()
	}
}
