// Package rest implements the outbound adapters for the reservation backend:
// a shared authenticated HTTP client plus the booking, room, and auth
// repositories built on top of it.
package rest

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

	"github.com/campusrooms/booking-client/internal/core/domain"
	"github.com/campusrooms/booking-client/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// Client is the shared HTTP layer. It attaches the bearer token from the
// session store, enforces the request timeout, and translates transport and
// status failures into domain errors so callers never see raw HTTP details.
type Client struct {
	base  *url.URL
	http  *http.Client
	store ports.SessionStore
	log   zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, store ports.SessionStore, log zerolog.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		base:  u,
		http:  &http.Client{Timeout: timeout},
		store: store,
		log:   log,
	}, nil
}

// apiError is the error envelope the backend renders. Some endpoints use
// "message", others "error"; accept both.
type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e apiError) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// do performs one request against the backend. op names the logical
// operation for metrics and logs. A nil out skips response decoding.
//
// Error mapping, in order:
//   - transport failure or timeout  -> domain.ErrNetworkUnavailable
//   - 401 on an authenticated call  -> domain.ErrSessionExpired
//   - other non-2xx                 -> *domain.RequestError
//   - undecodable 2xx body          -> domain.ErrInvalidResponse
func (c *Client) do(ctx context.Context, op, method, path string, body, out any, authed bool) error {
	start := time.Now()
	err := c.doOnce(ctx, method, path, body, out, authed)
	observeRequest(op, time.Since(start), err)
	return err
}

func (c *Client) doOnce(ctx context.Context, method, path string, body, out any, authed bool) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	ref := &url.URL{Path: path}
	req, err := http.NewRequestWithContext(ctx, method, c.base.ResolveReference(ref).String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authed {
		sess, err := c.store.Load(ctx)
		if err != nil {
			return fmt.Errorf("%w: load session: %v", domain.ErrUnauthenticated, err)
		}
		if sess.Empty() {
			return domain.ErrUnauthenticated
		}
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("request transport failure")
		return fmt.Errorf("%w: %v", domain.ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	// 401 is the session-expiry signal, but only where a session was
	// presented: a refused login is an ordinary rejection.
	if resp.StatusCode == http.StatusUnauthorized && authed {
		return domain.ErrSessionExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope apiError
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		_ = json.Unmarshal(raw, &envelope)
		msg := envelope.text()
		if msg == "" {
			msg = strings.TrimSpace(string(raw))
		}
		return &domain.RequestError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.Warn().Err(err).Str("path", path).Msg("undecodable response body")
		return fmt.Errorf("%w: %v", domain.ErrInvalidResponse, err)
	}
	return nil
}
