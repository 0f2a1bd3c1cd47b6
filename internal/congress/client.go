// Package congress is a small client for the Congress.gov v3 REST API. It
// returns pages of the same raw record shapes the fixture files use, so remote
// data passes through the fixture validation boundary unchanged.
package congress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"legislativelens/internal/core"
	"legislativelens/internal/fixture"
)

// Defaults applied by NewClient.
const (
	DefaultBaseURL    = "https://api.congress.gov/v3"
	DefaultRetries    = 3
	DefaultRetryDelay = 500 * time.Millisecond
	DefaultLimit      = 20
	DefaultUserAgent  = "legislativelens/1.0"
)

// NoRetries in Config.Retries disables retrying; zero selects DefaultRetries.
const NoRetries = -1

// HTTPClient is an interface matching the Do method of *http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds the client settings. Zero values select the defaults.
type Config struct {
	BaseURL    string
	APIKey     string
	Retries    int
	RetryDelay time.Duration
	UserAgent  string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient swaps the transport, typically for tests.
func WithHTTPClient(c HTTPClient) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithLogger installs a structured logger for retry diagnostics.
func WithLogger(l core.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

// Client fetches paginated bills, members and committees.
type Client struct {
	http       HTTPClient
	baseURL    string
	apiKey     string
	retries    int
	retryDelay time.Duration
	userAgent  string
	logger     core.Logger
}

// NewClient applies defaults to cfg and returns a ready client. A negative
// Retries disables retrying.
func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		http:       http.DefaultClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		retries:    cfg.Retries,
		retryDelay: cfg.RetryDelay,
		userAgent:  cfg.UserAgent,
		logger:     core.NewZapLogger(nil),
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	switch {
	case c.retries == 0:
		c.retries = DefaultRetries
	case c.retries < 0:
		c.retries = 0
	}
	if c.retryDelay <= 0 {
		c.retryDelay = DefaultRetryDelay
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PageRequest selects a congress and a window of results. Congress 0 lists
// across all congresses.
type PageRequest struct {
	Congress int
	Offset   int
	Limit    int
}

// Pagination mirrors the API's pagination block.
type Pagination struct {
	Count      int    `json:"count"`
	TotalCount int    `json:"totalCount,omitempty"`
	Next       string `json:"next,omitempty"`
}

// Page is one response envelope. Items passed fixture validation; records
// that did not are listed in Quarantined.
type Page[T any] struct {
	Pagination  Pagination
	Items       []T
	Quarantined []fixture.Quarantined
}

// HasNext reports whether the API advertised another page.
func (p Page[T]) HasNext() bool { return p.Pagination.Next != "" }

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	// Body is the decoded JSON error document, or nil when the body was not JSON.
	Body map[string]any
	Raw  string
}

func (e *APIError) Error() string {
	msg := strings.TrimSpace(e.Raw)
	if m, ok := e.Body["error"].(map[string]any); ok {
		if s, ok := m["message"].(string); ok {
			msg = s
		}
	} else if s, ok := e.Body["error"].(string); ok {
		msg = s
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("congress api: status %d: %s", e.StatusCode, msg)
}

// Retryable reports whether the status is a server-side failure.
func (e *APIError) Retryable() bool { return e.StatusCode >= 500 }

// Bills lists bills.
func (c *Client) Bills(ctx context.Context, req PageRequest) (Page[fixture.RawBill], error) {
	return fetchPage(ctx, c, "bill", "bills", req, fixture.DecodeBills)
}

// Members lists members.
func (c *Client) Members(ctx context.Context, req PageRequest) (Page[fixture.RawMember], error) {
	return fetchPage(ctx, c, "member", "members", req, fixture.DecodeMembers)
}

// Committees lists committees.
func (c *Client) Committees(ctx context.Context, req PageRequest) (Page[fixture.RawCommittee], error) {
	return fetchPage(ctx, c, "committee", "committees", req, fixture.DecodeCommittees)
}

func fetchPage[T any](ctx context.Context, c *Client, resource, field string, req PageRequest, decode func([]byte) ([]T, []fixture.Quarantined, error)) (Page[T], error) {
	var env map[string]json.RawMessage
	if err := c.get(ctx, resource, req, &env); err != nil {
		return Page[T]{}, err
	}
	var page Page[T]
	if raw, ok := env["pagination"]; ok {
		if err := json.Unmarshal(raw, &page.Pagination); err != nil {
			return Page[T]{}, fmt.Errorf("%s: decode pagination: %w", resource, err)
		}
	}
	items, ok := env[field]
	if !ok {
		page.Items = []T{}
		return page, nil
	}
	var err error
	if page.Items, page.Quarantined, err = decode(items); err != nil {
		return Page[T]{}, fmt.Errorf("%s: %w", resource, err)
	}
	return page, nil
}

// URL builds the request URL for resource.
func (c *Client) URL(resource string, req PageRequest) string {
	path := c.baseURL + "/" + resource
	if req.Congress > 0 {
		path += "/" + strconv.Itoa(req.Congress)
	}
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	q := url.Values{}
	q.Set("format", "json")
	q.Set("offset", strconv.Itoa(max(req.Offset, 0)))
	q.Set("limit", strconv.Itoa(limit))
	if c.apiKey != "" {
		q.Set("api_key", c.apiKey)
	}
	return path + "?" + q.Encode()
}

func (c *Client) get(ctx context.Context, resource string, req PageRequest, out any) error {
	target := c.URL(resource, req)
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			wait := c.retryDelay * time.Duration(attempt)
			c.logger.Warn("retrying congress api request", "resource", resource, "attempt", attempt, "wait", wait, "error", lastErr)
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return fmt.Errorf("%s: %w", resource, ctx.Err())
			case <-timer.C:
			}
		}
		err := c.do(ctx, target, out)
		if err == nil {
			return nil
		}
		var apiErr *APIError
		if !errors.As(err, &apiErr) || !apiErr.Retryable() {
			return fmt.Errorf("%s: %w", resource, err)
		}
		lastErr = err
	}
	return fmt.Errorf("%s: giving up after %d retries: %w", resource, c.retries, lastErr)
}

func (c *Client) do(ctx context.Context, target string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Raw: string(body)}
		var parsed map[string]any
		if json.Unmarshal(body, &parsed) == nil {
			apiErr.Body = parsed
		}
		return apiErr
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
