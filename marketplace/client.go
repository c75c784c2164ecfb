// Package marketplace is the typed client for the WedVenue REST backend.
// Every call travels through the transport chain, so bearer attachment,
// trailing-slash normalization, and 401 classification apply uniformly.
// Authorization failures on the soft endpoints (bookings, checklist,
// favorites, reviews) come back to the caller as *APIError with the session
// untouched; the calling feature owns the recovery UI.
package marketplace

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

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/wedvenue/wedvenue-client/nav"
	"github.com/wedvenue/wedvenue-client/session"
	"github.com/wedvenue/wedvenue-client/transport"
)

const defaultRequestTimeout = 10 * time.Second

// Client calls the marketplace backend on behalf of the UI features.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	manager    *session.Manager
	logger     zerolog.Logger
	timeout    time.Duration
}

// Option defines a function type to modify the Client instance.
type Option func(*Client)

// WithHTTPClient replaces the default transport-chained HTTP client
// (primarily for testing).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// New creates a Client rooted at baseURL. The navigator is handed to the
// transport chain so fatal authorization failures can route the user to a
// login surface.
func New(baseURL string, manager *session.Manager, navigator nav.Navigator, options ...Option) (*Client, error) {
	if manager == nil {
		return nil, errors.New("[marketplace.New] session manager is required")
	}
	if navigator == nil {
		return nil, errors.New("[marketplace.New] navigator is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "[marketplace.New] parse base URL")
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, errors.New("[marketplace.New] base URL must be absolute")
	}

	c := &Client{
		baseURL: parsed,
		manager: manager,
		logger:  zerolog.Nop(),
		timeout: defaultRequestTimeout,
	}
	for _, option := range options {
		option(c)
	}

	if c.httpClient == nil {
		chain, err := transport.New(manager, navigator, nil, c.logger)
		if err != nil {
			return nil, err
		}
		c.httpClient = &http.Client{Timeout: c.timeout, Transport: chain}
	}
	return c, nil
}

// APIError carries a backend failure to the calling feature unchanged.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
}

// IsUnauthorized reports whether the failure was an authorization failure
// delegated to the caller.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	pathOnly, rawQuery, _ := strings.Cut(path, "?")
	endpoint := c.baseURL.JoinPath(strings.TrimPrefix(pathOnly, "/"))
	endpoint.RawQuery = rawQuery

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "encode %s %s", method, path)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return errors.Wrapf(err, "build %s %s", method, path)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.apiError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode %s %s", method, path)
	}
	return nil
}

func (c *Client) apiError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Detail != "" {
		apiErr.Detail = payload.Detail
	} else {
		apiErr.Detail = http.StatusText(resp.StatusCode)
	}

	c.logger.Debug().Int("status", apiErr.StatusCode).Str("detail", apiErr.Detail).Msg("backend error")
	return apiErr
}
