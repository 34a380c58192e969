package comicapi

import (
	"sync"
	"time"
)

// FixedWindowLimiter bounds outbound requests to limit per window.
// Window boundaries are wall-clock: the window starts when the first
// acquisition after a reset happens and ends exactly window later. This
// is a client-side guard, independent of the upstream's own 429s.
type FixedWindowLimiter struct {
	mu          sync.Mutex
	limit       int
	window      time.Duration
	windowStart time.Time
	count       int
}

// NewFixedWindowLimiter creates a limiter allowing limit acquisitions
// per window.
func NewFixedWindowLimiter(limit int, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		limit:       limit,
		window:      window,
		windowStart: time.Now(),
	}
}

// TryAcquire consumes one slot from the current window. If the window
// has elapsed it is reset before the capacity check.
func (l *FixedWindowLimiter) TryAcquire() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rollWindow(time.Now())

	if l.count >= l.limit {
		return false
	}
	l.count++
	return true
}

// Remaining reports how many slots are left in the current window. It is
// advisory only and does not consume capacity.
func (l *FixedWindowLimiter) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rollWindow(time.Now())

	remaining := l.limit - l.count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// rollWindow resets the counter when now has crossed into a new window.
// Caller must hold l.mu.
func (l *FixedWindowLimiter) rollWindow(now time.Time) {
	if now.Sub(l.windowStart) >= l.window {
		l.windowStart = now
		l.count = 0
	}
}
