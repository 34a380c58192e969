package comicapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Default tuning. All of it can be overridden through Options; nothing
// here is reachable from business logic except via the constructor.
const (
	DefaultCacheTTL       = 5 * time.Minute
	DefaultRateLimit      = 200
	DefaultRateWindow     = time.Minute
	DefaultMaxAttempts    = 3
	DefaultInitialBackoff = 500 * time.Millisecond
	DefaultMaxBackoff     = 4 * time.Second
	DefaultAttemptTimeout = 15 * time.Second
)

// Middleware wraps the transport call, outermost first.
type Middleware func(req *http.Request, next RoundTripper) (*http.Response, error)

// RoundTripper is the narrow transport contract the client depends on.
type RoundTripper interface {
	RoundTrip(*http.Request) (*http.Response, error)
}

// RoundTripperFunc adapts a function to RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Client is a resilient client for the comic content API. Every call
// runs through a response cache, a client-side fixed-window rate limit,
// per-signature deduplication with latest-request-wins cancellation, and
// a bounded retry loop; all failures surface as *APIError (or the
// ErrSuperseded sentinel). It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string

	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	attemptTimeout time.Duration

	cacheTTL   time.Duration
	rateLimit  int
	rateWindow time.Duration

	cache    *ResponseCache
	limiter  *FixedWindowLimiter
	inflight *InflightTracker

	middleware []Middleware
	metrics    *MetricsCollector
	logger     Logger
}

// New constructs a Client from the provided options. The configuration
// is validated; an invalid combination returns an error instead of a
// half-working client.
func New(options ...Option) (*Client, error) {
	c := &Client{
		httpClient:     &http.Client{},
		maxAttempts:    DefaultMaxAttempts,
		initialBackoff: DefaultInitialBackoff,
		maxBackoff:     DefaultMaxBackoff,
		attemptTimeout: DefaultAttemptTimeout,
		cacheTTL:       DefaultCacheTTL,
		rateLimit:      DefaultRateLimit,
		rateWindow:     DefaultRateWindow,
	}

	for _, option := range options {
		option(c)
	}

	if err := c.ValidateConfiguration(); err != nil {
		return nil, err
	}

	c.cache = NewResponseCache(c.cacheTTL)
	c.limiter = NewFixedWindowLimiter(c.rateLimit, c.rateWindow)
	c.inflight = NewInflightTracker()

	return c, nil
}

// requestOptions carries per-call flags.
type requestOptions struct {
	useCache bool
}

// RequestOption adjusts a single Get call.
type RequestOption func(*requestOptions)

// WithoutCache bypasses the response cache for one call: no lookup
// before dispatch and no store on success.
func WithoutCache() RequestOption {
	return func(o *requestOptions) {
		o.useCache = false
	}
}

// Get fetches endpoint with the given query parameters and returns the
// raw response payload.
//
// Per call: signature → cache lookup → rate limit slot → supersede any
// in-flight call with the same signature → transport with per-attempt
// timeout → retry transient failures with exponential backoff → cache
// the payload on success.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values, opts ...RequestOption) ([]byte, error) {
	ro := requestOptions{useCache: true}
	for _, opt := range opts {
		opt(&ro)
	}

	sig := Signature(endpoint, params)
	start := time.Now()

	if ro.useCache {
		if payload, ok := c.cache.Get(sig); ok {
			c.metrics.RecordCacheHit(endpoint)
			c.debugf("cache hit", "signature", sig)
			return payload, nil
		}
		c.metrics.RecordCacheMiss(endpoint)
	}

	if !c.limiter.TryAcquire() {
		apiErr := &APIError{Kind: KindRateLimited, Message: "client-side rate limit exceeded"}
		c.metrics.RecordError(apiErr.Kind, endpoint)
		c.warnf("rate limit exceeded", "signature", sig)
		return nil, apiErr
	}
	c.metrics.RecordRateLimiterRemaining(c.limiter.Remaining())

	callCtx, entry := c.inflight.Begin(ctx, sig)
	defer c.inflight.Finish(sig, entry)

	c.metrics.RecordRequestStart(endpoint)
	defer c.metrics.RecordRequestEnd(endpoint)

	var lastErr *APIError
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			c.metrics.RecordRetry(endpoint, attempt-1)
			c.debugf("retrying request", "signature", sig, "attempt", attempt)
		}

		payload, statusCode, apiErr := c.fetch(callCtx, endpoint, params)

		if cancelErr := cancellationOutcome(ctx, callCtx); cancelErr != nil {
			if errors.Is(cancelErr, ErrSuperseded) {
				c.metrics.RecordSuperseded(endpoint)
				c.debugf("request superseded", "signature", sig)
			}
			return nil, cancelErr
		}

		if apiErr == nil {
			c.metrics.RecordRequest(endpoint, statusCode, time.Since(start))
			if ro.useCache {
				c.cache.Set(sig, payload)
				c.metrics.RecordCacheSize(c.cache.Len())
			}
			return payload, nil
		}

		lastErr = apiErr
		if !c.shouldRetry(apiErr, attempt) {
			break
		}

		if err := sleepBackoff(callCtx, c.delayFor(attempt)); err != nil {
			if cancelErr := cancellationOutcome(ctx, callCtx); cancelErr != nil {
				if errors.Is(cancelErr, ErrSuperseded) {
					c.metrics.RecordSuperseded(endpoint)
				}
				return nil, cancelErr
			}
			return nil, translateTransport(err)
		}
	}

	c.metrics.RecordRequest(endpoint, lastErr.StatusCode, time.Since(start))
	c.metrics.RecordError(lastErr.Kind, endpoint)
	c.warnf("request failed", "signature", sig, "kind", string(lastErr.Kind), "error", lastErr.Error())
	return nil, lastErr
}

// GetJSON fetches endpoint and decodes the payload into v. A payload
// that fails to decode is a non-retryable KindUnknown failure.
func (c *Client) GetJSON(ctx context.Context, endpoint string, params url.Values, v interface{}, opts ...RequestOption) error {
	payload, err := c.Get(ctx, endpoint, params, opts...)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(payload, v); err != nil {
		return &APIError{Kind: KindUnknown, Message: "malformed response body", Cause: err}
	}
	return nil
}

// ClearCache removes every cached response.
func (c *Client) ClearCache() {
	c.cache.Clear()
	c.metrics.RecordCacheSize(0)
}

// CancelRequest aborts the in-flight call for endpoint+params, if any.
func (c *Client) CancelRequest(endpoint string, params url.Values) {
	c.inflight.Cancel(Signature(endpoint, params))
}

// CancelAllRequests aborts every in-flight call. Used on teardown.
func (c *Client) CancelAllRequests() {
	c.inflight.CancelAll()
}

// RemainingRequests reports the slots left in the current rate window.
func (c *Client) RemainingRequests() int {
	return c.limiter.Remaining()
}

// fetch performs a single transport attempt and translates any failure.
// statusCode is reported for metrics even on success.
func (c *Client) fetch(ctx context.Context, endpoint string, params url.Values) ([]byte, int, *APIError) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	req, err := c.buildRequest(attemptCtx, endpoint, params)
	if err != nil {
		return nil, 0, &APIError{Kind: KindUnknown, Message: "failed to build request", Cause: err}
	}

	resp, err := c.executeMiddleware(req)
	if err != nil {
		return nil, 0, translateTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, translateStatus(resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, translateTransport(err)
	}

	return payload, resp.StatusCode, nil
}

func (c *Client) buildRequest(ctx context.Context, endpoint string, params url.Values) (*http.Request, error) {
	query := url.Values{}
	for key, values := range params {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	if c.apiKey != "" {
		query.Set("api_key", c.apiKey)
		query.Set("format", "json")
	}

	fullURL := c.baseURL + endpoint
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// executeMiddleware runs the transport chain, outermost middleware first.
func (c *Client) executeMiddleware(req *http.Request) (*http.Response, error) {
	current := RoundTripperFunc(c.httpClient.Do)

	for i := len(c.middleware) - 1; i >= 0; i-- {
		middleware := c.middleware[i]
		next := current
		current = RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			return middleware(r, next)
		})
	}

	return current.RoundTrip(req)
}

// cancellationOutcome distinguishes the three ways a call context ends:
// superseded by a newer call (ErrSuperseded), cancelled by the caller
// (the caller's own cause), or still live (nil). Attempt timeouts do not
// cancel callCtx and report nil here so the retry loop can handle them.
func cancellationOutcome(parent, callCtx context.Context) error {
	if callCtx.Err() == nil {
		return nil
	}
	if cause := context.Cause(callCtx); errors.Is(cause, ErrSuperseded) {
		return ErrSuperseded
	}
	if parent.Err() != nil {
		return context.Cause(parent)
	}
	return callCtx.Err()
}

func (c *Client) debugf(msg string, keysAndValues ...interface{}) {
	if c.logger != nil {
		c.logger.Debug(msg, keysAndValues...)
	}
}

func (c *Client) warnf(msg string, keysAndValues ...interface{}) {
	if c.logger != nil {
		c.logger.Warn(msg, keysAndValues...)
	}
}
