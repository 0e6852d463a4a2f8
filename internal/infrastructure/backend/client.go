// Package backend is the single point through which every VetLink backend
// call passes. It attaches the session's bearer token to outbound requests
// and owns the global 401 handling: the persisted session is cleared before
// the error reaches the caller, so the login view never observes a stale
// token.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vetlink/session-gateway/internal/core/domain"
	"github.com/vetlink/session-gateway/internal/core/ports"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20
)

// UpstreamError represents a non-2xx backend response other than an
// authentication failure.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend error: status=%d", e.Status)
	}
	return fmt.Sprintf("backend error: status=%d body=%s", e.Status, e.Body)
}

// Config captures the settings for the upstream client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Transport overrides the default transport; tests inject one here.
	Transport http.RoundTripper
}

// Client is the configured request sender shared by all endpoint wrappers.
type Client struct {
	baseURL string
	http    *http.Client
	store   ports.SessionStore
	logger  zerolog.Logger
}

// NewClient validates the base URL and builds the shared client. The store is
// needed for the 401 teardown; this is the one component outside the session
// service allowed to clear it.
func NewClient(cfg Config, store ports.SessionStore, logger zerolog.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("backend: invalid base url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: timeout, Transport: transport},
		store:   store,
		logger:  logger,
	}, nil
}

// doJSON performs one JSON request against the backend. The bearer token, if
// the context carries an authenticated session, is attached; otherwise the
// request goes out unauthenticated without warning or blocking.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("backend: marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return fmt.Errorf("backend: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	sess := domain.SessionFromContext(ctx)
	if sess != nil && sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))

	if resp.StatusCode == http.StatusUnauthorized {
		return c.teardown(ctx, sess, strings.TrimSpace(string(raw)))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &UpstreamError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("backend: unmarshal response: %w", err)
	}
	return nil
}

// Ping reports whether the backend answers HTTP at all. Any response,
// including a 404 for the probe path, counts as reachable; only transport
// failures are errors.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	resp.Body.Close()
	return nil
}

// teardown handles an upstream 401: the stored session is cleared and the
// in-memory session reset before the error propagates, so any navigation the
// error handler triggers happens strictly after the store is empty.
func (c *Client) teardown(ctx context.Context, sess *domain.Session, body string) error {
	if sess != nil {
		if err := c.store.Clear(ctx, sess.ID); err != nil {
			c.logger.Error().Err(err).Str("session_id", sess.ID).Msg("failed to clear session after 401")
		}
		sess.Reset()
		c.logger.Warn().Str("session_id", sess.ID).Msg("session expired, stored session cleared")
	}

	if body == "" {
		return domain.ErrSessionExpired
	}
	return fmt.Errorf("%w: %s", domain.ErrSessionExpired, body)
}
