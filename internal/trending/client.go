package trending

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/nao1215/trendwatch/internal/model"
)

// Client fetches the trending page and probes source reachability.
//
// Design decision: We use a struct with the http.Client rather than
// package-level functions because:
//  1. Client configuration (timeouts, headers) should be consistent
//  2. Connection pooling works better with a shared client
//  3. Easier to test against httptest servers
type Client struct {
	// httpClient performs the actual HTTP requests.
	httpClient *http.Client

	// extractor turns fetched markup into Project records.
	extractor *Extractor

	// trendingURL is the page listing trending repositories.
	trendingURL string

	// healthURL is the source origin probed by HealthCheck.
	healthURL string

	// userAgent is the User-Agent header sent with every request.
	// A common browser identity avoids the bot handling GitHub applies
	// to obviously automated clients.
	userAgent string

	// fetchTimeout bounds a trending page fetch.
	fetchTimeout time.Duration

	// healthTimeout bounds the reachability probe. Deliberately short:
	// the probe is a liveness signal, not a data fetch.
	healthTimeout time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
// Mainly useful for tests and custom transports.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTrendingURL overrides the trending page URL.
func WithTrendingURL(u string) ClientOption {
	return func(c *Client) {
		c.trendingURL = u
	}
}

// WithHealthURL overrides the origin probed by HealthCheck.
func WithHealthURL(u string) ClientOption {
	return func(c *Client) {
		c.healthURL = u
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithFetchTimeout sets the per-fetch timeout.
func WithFetchTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.fetchTimeout = d
	}
}

// WithHealthTimeout sets the reachability probe timeout.
func WithHealthTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.healthTimeout = d
	}
}

// NewClient creates a Client with production defaults: the public GitHub
// trending page, a 30 second fetch timeout, a 5 second health probe
// timeout, and a browser-like User-Agent.
func NewClient(extractor *Extractor, opts ...ClientOption) *Client {
	c := &Client{
		httpClient:    &http.Client{},
		extractor:     extractor,
		trendingURL:   "https://github.com/trending",
		healthURL:     "https://github.com",
		userAgent:     "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
		fetchTimeout:  30 * time.Second,
		healthTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchTrending retrieves the trending page and extracts Project records.
// Network errors, timeouts, and non-2xx responses are returned as errors;
// the Guard decides how to recover from them.
func (c *Client) FetchTrending(ctx context.Context) ([]model.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.trendingURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setBrowserHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trending page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("trending page returned status %d", resp.StatusCode)
	}

	projects, err := c.extractor.Extract(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse trending page: %w", err)
	}
	return projects, nil
}

// HealthCheck probes the source origin with a short timeout and reports
// the outcome. It never returns a Go error: failures are folded into the
// Health value so the HTTP layer can always serve a well-formed response.
func (c *Client) HealthCheck(ctx context.Context) model.Health {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.healthURL, nil)
	if err != nil {
		return model.Health{
			Status:    model.HealthStatusUnhealthy,
			Timestamp: time.Now(),
			Error:     err.Error(),
		}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Health{
			Status:    model.HealthStatusUnhealthy,
			Timestamp: time.Now(),
			Error:     err.Error(),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return model.Health{
			Status:    model.HealthStatusUnhealthy,
			Timestamp: time.Now(),
			Error:     fmt.Sprintf("source origin returned status %d", resp.StatusCode),
		}
	}

	return model.Health{
		Status:    model.HealthStatusHealthy,
		Timestamp: time.Now(),
	}
}

// setBrowserHeaders applies a small, plausible browser header set.
// The trending page occasionally serves degraded markup to clients that
// do not look like browsers.
func (c *Client) setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
}
