// Package upstream is the portal's HTTP client for the STWMS backend. It
// centralizes the base URL, attaches the caller's bearer credential and
// decodes the backend's JSON envelopes. The backend owns every business rule;
// this package only moves bytes and maps failures onto domain errors.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/stwms/workforce-portal/internal/api/metrics"
	"github.com/stwms/workforce-portal/internal/core/domain"
)

const defaultTimeout = 30 * time.Second

// Client talks to the STWMS backend over HTTP+JSON.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// New creates a Client for the given base URL. A zero timeout falls back to
// defaultTimeout; per-request deadlines come from the caller's context.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.With().Str("component", "upstream").Logger(),
	}
}

// StatusError is a non-2xx answer from the backend, carrying whatever message
// its error envelope held. It unwraps to domain.ErrUpstream.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream status %d", e.Code)
	}
	return fmt.Sprintf("upstream status %d: %s", e.Code, e.Message)
}

func (e *StatusError) Unwrap() error { return domain.ErrUpstream }

// statusCode extracts the upstream status from err, or 0 when err is not a
// StatusError.
func statusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

// errorEnvelope covers both shapes the backend uses for failures.
type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// do performs one request. A non-empty token is attached as a bearer
// credential. body (when non-nil) is sent as JSON; out (when non-nil)
// receives the decoded response.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(method, routeLabel(path), "transport_error").Inc()
		return fmt.Errorf("%s %s: %w: %w", method, path, domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	metrics.UpstreamRequestDuration.WithLabelValues(routeLabel(path)).Observe(time.Since(start).Seconds())
	metrics.UpstreamRequestsTotal.WithLabelValues(method, routeLabel(path), strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env errorEnvelope
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = json.Unmarshal(raw, &env)
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		c.log.Warn().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Str("message", msg).Msg("upstream rejected request")
		return &StatusError{Code: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return nil
}

// routeLabel collapses numeric path segments so metric cardinality stays
// bounded regardless of resource IDs.
func routeLabel(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if p == "" {
			continue
		}
		if _, err := strconv.ParseInt(p, 10, 64); err == nil {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}
