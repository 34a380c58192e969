package comicapi

import (
	"fmt"
	"net/http"
	"time"
)

// Option configures a Client at construction time.
type Option func(*Client)

// WithBaseURL sets the content API base URL, e.g. a proxy or the
// upstream host. Trailing slashes are trimmed.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		for len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
			baseURL = baseURL[:len(baseURL)-1]
		}
		c.baseURL = baseURL
	}
}

// WithAPIKey sets the upstream API key. When set, every request carries
// api_key and format=json query parameters. Leave empty when the base
// URL points at a key-injecting proxy.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithCacheTTL sets the response cache TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.cacheTTL = ttl
	}
}

// WithRateLimit bounds outbound requests to limit per window.
func WithRateLimit(limit int, window time.Duration) Option {
	return func(c *Client) {
		c.rateLimit = limit
		c.rateWindow = window
	}
}

// WithMaxAttempts sets the total attempt budget per call, the initial
// attempt included.
func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		c.maxAttempts = n
	}
}

// WithInitialBackoff sets the delay before the first retry.
func WithInitialBackoff(d time.Duration) Option {
	return func(c *Client) {
		c.initialBackoff = d
	}
}

// WithMaxBackoff caps the retry delay.
func WithMaxBackoff(d time.Duration) Option {
	return func(c *Client) {
		c.maxBackoff = d
	}
}

// WithAttemptTimeout sets the per-attempt transport timeout.
func WithAttemptTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.attemptTimeout = d
	}
}

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithMiddleware appends middleware to the transport chain.
func WithMiddleware(middleware ...Middleware) Option {
	return func(c *Client) {
		c.middleware = append(c.middleware, middleware...)
	}
}

// WithMetrics enables Prometheus metrics on the default registerer.
func WithMetrics() Option {
	return func(c *Client) {
		c.metrics = NewMetricsCollector()
	}
}

// WithMetricsCollector sets a custom metrics collector.
func WithMetricsCollector(collector *MetricsCollector) Option {
	return func(c *Client) {
		c.metrics = collector
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// ValidateConfiguration checks the client configuration and returns an
// error describing every violation found.
func (c *Client) ValidateConfiguration() error {
	var problems []string

	problems = append(problems, c.validateRetryConfig()...)
	problems = append(problems, c.validateLimiterConfig()...)
	problems = append(problems, c.validateTransportConfig()...)

	if len(problems) > 0 {
		return fmt.Errorf("comicapi: invalid configuration: %v", problems)
	}
	return nil
}

func (c *Client) validateRetryConfig() []string {
	var problems []string

	if c.maxAttempts < 1 {
		problems = append(problems, "maxAttempts must be at least 1")
	}
	if c.initialBackoff <= 0 {
		problems = append(problems, "initialBackoff must be positive")
	}
	if c.maxBackoff < c.initialBackoff {
		problems = append(problems, "maxBackoff must be >= initialBackoff")
	}
	if c.cacheTTL <= 0 {
		problems = append(problems, "cacheTTL must be positive")
	}

	return problems
}

func (c *Client) validateLimiterConfig() []string {
	var problems []string

	if c.rateLimit <= 0 {
		problems = append(problems, "rate limit must be positive")
	}
	if c.rateWindow <= 0 {
		problems = append(problems, "rate window must be positive")
	}

	return problems
}

func (c *Client) validateTransportConfig() []string {
	var problems []string

	if c.httpClient == nil {
		problems = append(problems, "HTTP client cannot be nil")
	}
	if c.attemptTimeout <= 0 {
		problems = append(problems, "attemptTimeout must be positive")
	}
	if c.baseURL == "" {
		problems = append(problems, "base URL must be set")
	}
	for i, m := range c.middleware {
		if m == nil {
			problems = append(problems, fmt.Sprintf("middleware[%d] cannot be nil", i))
		}
	}

	return problems
}
