package comicapi

import (
	"context"
	"errors"
	"testing"
)

func TestInflightTrackerSupersedesPrevious(t *testing.T) {
	tracker := NewInflightTracker()

	ctxA, entryA := tracker.Begin(context.Background(), "sig")
	ctxB, _ := tracker.Begin(context.Background(), "sig")

	select {
	case <-ctxA.Done():
	default:
		t.Fatal("Expected first call context to be cancelled by second Begin")
	}
	if !errors.Is(context.Cause(ctxA), ErrSuperseded) {
		t.Errorf("Expected ErrSuperseded cause, got %v", context.Cause(ctxA))
	}

	if ctxB.Err() != nil {
		t.Error("Second call context should still be live")
	}
	if tracker.Len() != 1 {
		t.Errorf("Expected exactly one tracked entry, got %d", tracker.Len())
	}

	// The superseded call finishing late must not evict its successor.
	tracker.Finish("sig", entryA)
	if tracker.Len() != 1 {
		t.Errorf("Expected successor entry to survive stale Finish, got %d entries", tracker.Len())
	}
}

func TestInflightTrackerIndependentSignatures(t *testing.T) {
	tracker := NewInflightTracker()

	ctxA, _ := tracker.Begin(context.Background(), "sig-a")
	ctxB, _ := tracker.Begin(context.Background(), "sig-b")

	if ctxA.Err() != nil || ctxB.Err() != nil {
		t.Error("Distinct signatures must not cancel each other")
	}
	if tracker.Len() != 2 {
		t.Errorf("Expected 2 tracked entries, got %d", tracker.Len())
	}
}

func TestInflightTrackerFinishRemovesOwnEntry(t *testing.T) {
	tracker := NewInflightTracker()

	_, entry := tracker.Begin(context.Background(), "sig")
	tracker.Finish("sig", entry)

	if tracker.Len() != 0 {
		t.Errorf("Expected empty tracker after Finish, got %d entries", tracker.Len())
	}
}

func TestInflightTrackerCancel(t *testing.T) {
	tracker := NewInflightTracker()

	ctx, _ := tracker.Begin(context.Background(), "sig")
	tracker.Cancel("sig")

	if !errors.Is(context.Cause(ctx), ErrSuperseded) {
		t.Errorf("Expected ErrSuperseded cause after Cancel, got %v", context.Cause(ctx))
	}
	if tracker.Len() != 0 {
		t.Errorf("Expected empty tracker after Cancel, got %d entries", tracker.Len())
	}

	// Cancelling an unknown signature is a no-op.
	tracker.Cancel("unknown")
}

func TestInflightTrackerCancelAll(t *testing.T) {
	tracker := NewInflightTracker()

	ctxA, _ := tracker.Begin(context.Background(), "sig-a")
	ctxB, _ := tracker.Begin(context.Background(), "sig-b")

	tracker.CancelAll()

	for name, ctx := range map[string]context.Context{"sig-a": ctxA, "sig-b": ctxB} {
		if !errors.Is(context.Cause(ctx), ErrSuperseded) {
			t.Errorf("Expected ErrSuperseded cause for %s, got %v", name, context.Cause(ctx))
		}
	}
	if tracker.Len() != 0 {
		t.Errorf("Expected empty tracker after CancelAll, got %d entries", tracker.Len())
	}
}

func TestInflightTrackerInheritsParentCancellation(t *testing.T) {
	tracker := NewInflightTracker()

	parent, cancel := context.WithCancel(context.Background())
	callCtx, _ := tracker.Begin(parent, "sig")

	cancel()

	select {
	case <-callCtx.Done():
	default:
		t.Fatal("Expected call context to follow parent cancellation")
	}
	if errors.Is(context.Cause(callCtx), ErrSuperseded) {
		t.Error("Caller cancellation must not be reported as supersession")
	}
}
