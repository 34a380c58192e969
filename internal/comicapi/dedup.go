package comicapi

import (
	"context"
	"sync"
)

// inflightEntry represents one live transport call for a signature.
// Cancelling it aborts the underlying request via its context.
type inflightEntry struct {
	cancel context.CancelCauseFunc
}

// InflightTracker enforces at most one live transport call per request
// signature. Registering a new call for a signature cancels the previous
// one with ErrSuperseded, which yields latest-request-wins semantics:
// a superseded call never resolves its caller with stale data.
//
// Distinct signatures are fully independent; the tracker never blocks
// one signature on another.
type InflightTracker struct {
	mu      sync.Mutex
	entries map[string]*inflightEntry
}

// NewInflightTracker returns an empty tracker.
func NewInflightTracker() *InflightTracker {
	return &InflightTracker{
		entries: make(map[string]*inflightEntry),
	}
}

// Begin registers a new in-flight call for sig, cancelling and replacing
// any existing one. The returned context is derived from ctx and is
// cancelled with ErrSuperseded when a later Begin for the same signature
// arrives, or when Cancel/CancelAll runs.
func (t *InflightTracker) Begin(ctx context.Context, sig string) (context.Context, *inflightEntry) {
	callCtx, cancel := context.WithCancelCause(ctx)
	entry := &inflightEntry{cancel: cancel}

	t.mu.Lock()
	if prev, exists := t.entries[sig]; exists {
		prev.cancel(ErrSuperseded)
	}
	t.entries[sig] = entry
	t.mu.Unlock()

	return callCtx, entry
}

// Finish removes the entry for sig if it is still the one that owner
// registered. A superseded call finishing late must not evict its
// successor, hence the identity check.
func (t *InflightTracker) Finish(sig string, owner *inflightEntry) {
	t.mu.Lock()
	if current, exists := t.entries[sig]; exists && current == owner {
		delete(t.entries, sig)
	}
	t.mu.Unlock()

	// Release the context resources of the finished call.
	owner.cancel(nil)
}

// Cancel aborts the in-flight call for sig, if any.
func (t *InflightTracker) Cancel(sig string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if entry, exists := t.entries[sig]; exists {
		entry.cancel(ErrSuperseded)
		delete(t.entries, sig)
	}
}

// CancelAll aborts every tracked in-flight call. Used on teardown.
func (t *InflightTracker) CancelAll() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for sig, entry := range t.entries {
		entry.cancel(ErrSuperseded)
		delete(t.entries, sig)
	}
}

// Len returns the number of live in-flight calls.
func (t *InflightTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.entries)
}
