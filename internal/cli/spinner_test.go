package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, "Testing with context...")
	s.Start()

	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner goroutine did not exit after context cancellation")
	}
}

func TestSpinnerStopsOnContextTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, "Testing with timeout...")
	s.Start()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner goroutine did not exit after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinnerWithContext(context.Background(), "Testing idempotent stop...")
	s.Start()

	// Stop multiple times should not panic
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, "Testing stop after cancel...")
	s.Start()
	cancel()

	// Stop must not hang once the goroutine already exited.
	s.Stop()
}

func TestNilSpinnerIsSafe(t *testing.T) {
	var s *Spinner
	s.Stop()
}

func TestStartSpinnerNoTTY(t *testing.T) {
	s := startSpinner(context.Background(), "Working...")
	// Test binaries run without a terminal on stderr, so s is typically
	// nil. Stop must be safe either way.
	s.Stop()
}
