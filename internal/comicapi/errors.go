package comicapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// Kind classifies a failed API call into one of a closed set of outcomes.
// Callers branch on Kind instead of inspecting transport internals.
type Kind string

const (
	KindUnauthorized       Kind = "Unauthorized"
	KindNotFound           Kind = "NotFound"
	KindRateLimited        Kind = "RateLimited"
	KindServerUnavailable  Kind = "ServerUnavailable"
	KindTimeout            Kind = "Timeout"
	KindNetworkUnreachable Kind = "NetworkUnreachable"
	KindUnknown            Kind = "Unknown"
)

// ErrSuperseded is returned to a caller whose in-flight request was
// cancelled because a newer request with the same signature was issued.
// It is a terminal outcome, not part of the APIError taxonomy: the call
// was abandoned, not failed.
var ErrSuperseded = errors.New("comicapi: request superseded by newer request")

// APIError is the only error type the client surfaces for failed calls.
// StatusCode is zero when no HTTP response was received.
type APIError struct {
	Kind       Kind
	Message    string
	StatusCode int
	Cause      error
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Kind, e.Message, e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is matches two APIErrors by Kind so callers can compare with errors.Is
// against a bare &APIError{Kind: ...}.
func (e *APIError) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*APIError); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Retryable reports whether the failure class may succeed on a later
// attempt. Only upstream 5xx responses and attempt timeouts qualify.
func (e *APIError) Retryable() bool {
	if e == nil {
		return false
	}
	return e.Kind == KindServerUnavailable || e.Kind == KindTimeout
}

// translateStatus maps a received HTTP status code to an APIError.
// Callers pass only codes >= 400.
func translateStatus(statusCode int) *APIError {
	switch {
	case statusCode == 401 || statusCode == 403:
		return &APIError{Kind: KindUnauthorized, Message: "invalid API key", StatusCode: statusCode}
	case statusCode == 404:
		return &APIError{Kind: KindNotFound, Message: "resource not found", StatusCode: statusCode}
	case statusCode == 429:
		return &APIError{Kind: KindRateLimited, Message: "rate limit exceeded", StatusCode: statusCode}
	case statusCode >= 500:
		return &APIError{Kind: KindServerUnavailable, Message: "content API is currently unavailable", StatusCode: statusCode}
	default:
		return &APIError{Kind: KindUnknown, Message: fmt.Sprintf("unexpected status %d", statusCode), StatusCode: statusCode}
	}
}

// translateTransport maps a transport-level failure (no HTTP response)
// to an APIError. Translation is total: every error shape maps to
// exactly one Kind.
func translateTransport(err error) *APIError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &APIError{Kind: KindTimeout, Message: "request timeout", Cause: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &APIError{Kind: KindTimeout, Message: "request timeout", Cause: err}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &APIError{Kind: KindNetworkUnreachable, Message: "no response from API", Cause: err}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &APIError{Kind: KindNetworkUnreachable, Message: "no response from API", Cause: err}
	}

	return &APIError{Kind: KindUnknown, Message: err.Error(), Cause: err}
}
