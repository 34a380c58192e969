package comicapi

import (
	"testing"
	"time"
)

func TestFixedWindowLimiterDeniesBeyondLimit(t *testing.T) {
	limiter := NewFixedWindowLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !limiter.TryAcquire() {
			t.Fatalf("Acquisition %d should be allowed", i+1)
		}
	}

	if limiter.TryAcquire() {
		t.Error("Acquisition beyond limit should be denied")
	}
}

func TestFixedWindowLimiterResetsAfterWindow(t *testing.T) {
	limiter := NewFixedWindowLimiter(1, 30*time.Millisecond)

	if !limiter.TryAcquire() {
		t.Fatal("First acquisition should be allowed")
	}
	if limiter.TryAcquire() {
		t.Fatal("Second acquisition in same window should be denied")
	}

	time.Sleep(50 * time.Millisecond)

	if !limiter.TryAcquire() {
		t.Error("Acquisition after window elapsed should be allowed again")
	}
}

func TestFixedWindowLimiterRemaining(t *testing.T) {
	limiter := NewFixedWindowLimiter(5, time.Minute)

	if remaining := limiter.Remaining(); remaining != 5 {
		t.Errorf("Expected 5 remaining, got %d", remaining)
	}

	limiter.TryAcquire()
	limiter.TryAcquire()

	if remaining := limiter.Remaining(); remaining != 3 {
		t.Errorf("Expected 3 remaining, got %d", remaining)
	}

	// Remaining is advisory and must not consume capacity.
	if remaining := limiter.Remaining(); remaining != 3 {
		t.Errorf("Expected Remaining to be side-effect free, got %d", remaining)
	}
}

func TestFixedWindowLimiterFullWindow(t *testing.T) {
	limiter := NewFixedWindowLimiter(200, time.Minute)

	for i := 0; i < 200; i++ {
		if !limiter.TryAcquire() {
			t.Fatalf("Acquisition %d of 200 should be allowed", i+1)
		}
	}

	if limiter.TryAcquire() {
		t.Error("The 201st acquisition should be denied")
	}
	if remaining := limiter.Remaining(); remaining != 0 {
		t.Errorf("Expected 0 remaining, got %d", remaining)
	}
}
