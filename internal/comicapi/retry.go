package comicapi

import (
	"context"
	"errors"
	"time"
)

// shouldRetry reports whether another attempt is allowed after err.
// attempt is the number of attempts already made. Only retryable kinds
// (upstream 5xx, attempt timeout) qualify; client-side rate limiting,
// 4xx responses, malformed payloads and cancellations never retry.
func (c *Client) shouldRetry(err error, attempt int) bool {
	if attempt >= c.maxAttempts {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}
	return false
}

// delayFor returns the backoff before attempt n+1, after n attempts:
// initialBackoff * 2^(n-1), capped at maxBackoff.
func (c *Client) delayFor(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	delay := c.initialBackoff
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= c.maxBackoff {
			return c.maxBackoff
		}
	}
	if delay > c.maxBackoff {
		delay = c.maxBackoff
	}
	return delay
}

// sleepBackoff waits d without blocking other signatures. It returns the
// cancellation cause if ctx is cancelled while waiting.
func sleepBackoff(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return context.Cause(ctx)
	}
}
