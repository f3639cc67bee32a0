package eia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/openeia/eiascout/pkg/cache"
	"github.com/openeia/eiascout/pkg/observability"
)

const (
	// DefaultBaseURL is the production API root.
	DefaultBaseURL = "https://api.eia.gov/v2"

	// DefaultCallDelay spaces consecutive API calls.
	DefaultCallDelay = time.Second

	// DefaultCacheTTL bounds cached responses when a backend is configured.
	DefaultCacheTTL = 24 * time.Hour

	httpTimeout = 30 * time.Second

	// maxErrBody caps how much of an error response is kept for messages.
	maxErrBody = 64 << 10
)

// Config configures a Client. The zero value of every field except APIKey
// is usable; defaults are applied by NewClient.
type Config struct {
	// APIKey authenticates every request. Required.
	APIKey string

	// BaseURL overrides the API root, mainly for tests.
	BaseURL string

	// HTTPClient overrides the default HTTP client (30s timeout).
	HTTPClient *http.Client

	// CallDelay is the fixed pause before every network request. Zero
	// means DefaultCallDelay; a negative value disables the pause.
	CallDelay time.Duration

	// Clock supplies time operations so tests can fake the call delay.
	Clock clockwork.Clock

	// Cache stores raw response bodies. Nil disables caching.
	Cache cache.Cache

	// CacheTTL bounds cached entries; zero means DefaultCacheTTL.
	CacheTTL time.Duration

	// Refresh bypasses cache reads while still storing fresh responses.
	Refresh bool

	// Logger receives progress lines. Nil means silent.
	Logger func(format string, args ...any)
}

// Client talks to the API.
//
// A Client issues at most one request per traversal at a time and paces
// every request with the configured delay. It never retries: API failures
// surface to the caller unchanged. The Client is safe for concurrent use;
// concurrent traversals each pace their own requests.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	delay   time.Duration
	clock   clockwork.Clock
	cache   cache.Cache
	keyer   cache.Keyer
	ttl     time.Duration
	refresh bool
	logf    func(string, ...any)
}

// NewClient validates cfg and applies defaults.
//
// An empty API key is rejected here, before any network activity. Pass the
// key from [creds.Load] or wire it directly.
//
// [creds.Load]: github.com/openeia/eiascout/pkg/creds.Load
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("eia: api key required")
	}

	c := &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		http:    cfg.HTTPClient,
		delay:   cfg.CallDelay,
		clock:   cfg.Clock,
		cache:   cfg.Cache,
		keyer:   cache.NewDefaultKeyer(),
		ttl:     cfg.CacheTTL,
		refresh: cfg.Refresh,
		logf:    cfg.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: httpTimeout}
	}
	if c.delay == 0 {
		c.delay = DefaultCallDelay
	}
	if c.clock == nil {
		c.clock = clockwork.NewRealClock()
	}
	if c.cache == nil {
		c.cache = cache.NewNullCache()
	}
	if c.ttl == 0 {
		c.ttl = DefaultCacheTTL
	}
	return c, nil
}

// Describe fetches the metadata for one route and classifies it.
func (c *Client) Describe(ctx context.Context, route Route) (*Node, error) {
	payload, err := c.call(ctx, route, nil)
	if err != nil {
		return nil, err
	}

	var meta metaPayload
	if err := json.Unmarshal(payload, &meta); err != nil {
		return nil, &DecodeError{Route: route, Err: err}
	}
	return classify(route, &meta)
}

// call performs one GET against route with the given query, honoring the
// cache, the pre-call delay, and the no-retry policy. It returns the
// contents of the response envelope.
func (c *Client) call(ctx context.Context, route Route, query url.Values) (json.RawMessage, error) {
	cacheKey := c.keyer.ResponseKey(route.String(), query.Encode())

	if !c.refresh {
		if body, ok, err := c.cache.Get(ctx, cacheKey); err == nil && ok {
			observability.Cache().OnCacheHit(ctx, "response")
			return decodeEnvelope(route, body)
		}
		observability.Cache().OnCacheMiss(ctx, "response")
	}

	if err := c.pause(ctx); err != nil {
		return nil, err
	}

	// The request is deliberately not bound to ctx: cancellation applies
	// between calls and during the pause, never to an in-flight transfer.
	req, err := http.NewRequest(http.MethodGet, c.requestURL(route, query), nil)
	if err != nil {
		return nil, fmt.Errorf("eia: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	host, path := req.URL.Host, req.URL.Path
	observability.HTTP().OnRequest(ctx, http.MethodGet, host, path)

	start := c.clock.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodGet, host, path, err)
		return nil, fmt.Errorf("eia: route %q: %w", displayRoute(route), err)
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, http.MethodGet, host, path, resp.StatusCode, c.clock.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
		return nil, &StatusError{Route: route, StatusCode: resp.StatusCode, Body: body}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("eia: route %q: read body: %w", displayRoute(route), err)
	}

	payload, err := decodeEnvelope(route, body)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, cacheKey, body, c.ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, "response", len(body))
	}
	return payload, nil
}

// pause waits the configured delay before a network call. Cancelling ctx
// aborts the wait; the request is then never issued.
func (c *Client) pause(ctx context.Context) error {
	if c.delay <= 0 {
		return nil
	}
	select {
	case <-c.clock.After(c.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// requestURL assembles the call URL, appending the API key to the query.
func (c *Client) requestURL(route Route, query url.Values) string {
	q := url.Values{}
	for k, vs := range query {
		q[k] = vs
	}
	q.Set("api_key", c.apiKey)

	u := c.baseURL
	if !route.IsRoot() {
		u += "/" + route.String()
	}
	return u + "?" + q.Encode()
}

func (c *Client) log(format string, args ...any) {
	if c.logf != nil {
		c.logf(format, args...)
	}
}
