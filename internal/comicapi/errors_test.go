package comicapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"testing"
)

func TestTranslateStatus(t *testing.T) {
	tests := []struct {
		statusCode int
		want       Kind
	}{
		{401, KindUnauthorized},
		{403, KindUnauthorized},
		{404, KindNotFound},
		{429, KindRateLimited},
		{500, KindServerUnavailable},
		{502, KindServerUnavailable},
		{503, KindServerUnavailable},
		{400, KindUnknown},
		{418, KindUnknown},
	}

	for _, tt := range tests {
		apiErr := translateStatus(tt.statusCode)
		if apiErr.Kind != tt.want {
			t.Errorf("translateStatus(%d).Kind = %s, want %s", tt.statusCode, apiErr.Kind, tt.want)
		}
		if apiErr.StatusCode != tt.statusCode {
			t.Errorf("translateStatus(%d).StatusCode = %d", tt.statusCode, apiErr.StatusCode)
		}
	}
}

func TestTranslateTransport(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"deadline exceeded", context.DeadlineExceeded, KindTimeout},
		{"wrapped deadline", fmt.Errorf("attempt: %w", context.DeadlineExceeded), KindTimeout},
		{"net timeout", &timeoutError{}, KindTimeout},
		{"url error", &url.Error{Op: "Get", URL: "http://x", Err: errors.New("refused")}, KindNetworkUnreachable},
		{"op error", &net.OpError{Op: "dial", Err: errors.New("refused")}, KindNetworkUnreachable},
		{"plain error", errors.New("something odd"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := translateTransport(tt.err)
			if apiErr.Kind != tt.want {
				t.Errorf("Kind = %s, want %s", apiErr.Kind, tt.want)
			}
			if apiErr.StatusCode != 0 {
				t.Errorf("StatusCode = %d, want 0 for transport failures", apiErr.StatusCode)
			}
			if !errors.Is(apiErr, tt.err) && apiErr.Cause != tt.err {
				t.Error("Expected original error to be preserved as Cause")
			}
		})
	}
}

// timeoutError implements net.Error with Timeout() == true.
type timeoutError struct{}

func (*timeoutError) Error() string   { return "i/o timeout" }
func (*timeoutError) Timeout() bool   { return true }
func (*timeoutError) Temporary() bool { return true }

func TestAPIErrorIsMatchesByKind(t *testing.T) {
	err := &APIError{Kind: KindNotFound, Message: "resource not found", StatusCode: 404}

	if !errors.Is(err, &APIError{Kind: KindNotFound}) {
		t.Error("Expected errors.Is to match by Kind")
	}
	if errors.Is(err, &APIError{Kind: KindTimeout}) {
		t.Error("Expected errors.Is to reject different Kind")
	}
	if errors.Is(err, ErrSuperseded) {
		t.Error("APIError must not match the supersession sentinel")
	}
}

func TestAPIErrorUnwrap(t *testing.T) {
	cause := context.DeadlineExceeded
	err := &APIError{Kind: KindTimeout, Message: "request timeout", Cause: cause}

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("Expected Unwrap chain to reach the cause")
	}
}

func TestAPIErrorMessageFormats(t *testing.T) {
	withStatus := &APIError{Kind: KindNotFound, Message: "resource not found", StatusCode: 404}
	if withStatus.Error() != "NotFound: resource not found (status 404)" {
		t.Errorf("Unexpected message %q", withStatus.Error())
	}

	withCause := &APIError{Kind: KindTimeout, Message: "request timeout", Cause: errors.New("i/o timeout")}
	if withCause.Error() != "Timeout: request timeout (i/o timeout)" {
		t.Errorf("Unexpected message %q", withCause.Error())
	}

	bare := &APIError{Kind: KindRateLimited, Message: "client-side rate limit exceeded"}
	if bare.Error() != "RateLimited: client-side rate limit exceeded" {
		t.Errorf("Unexpected message %q", bare.Error())
	}
}

func TestAPIErrorRetryable(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindServerUnavailable, true},
		{KindTimeout, true},
		{KindUnauthorized, false},
		{KindNotFound, false},
		{KindRateLimited, false},
		{KindNetworkUnreachable, false},
		{KindUnknown, false},
	}

	for _, tt := range tests {
		err := &APIError{Kind: tt.kind}
		if err.Retryable() != tt.want {
			t.Errorf("Retryable() for %s = %v, want %v", tt.kind, err.Retryable(), tt.want)
		}
	}
}
