package pacer

import (
	"context"
	"testing"
	"time"
)

func TestWait_NoInterval(t *testing.T) {
	p := New(0)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := p.Wait(context.Background()); err != nil {
			t.Fatalf("Wait failed: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("Disabled pacer should not block, took %v", elapsed)
	}
}

func TestWait_SpacesRequests(t *testing.T) {
	interval := 30 * time.Millisecond
	p := New(interval)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := p.Wait(context.Background()); err != nil {
			t.Fatalf("Wait failed: %v", err)
		}
	}

	// First call is immediate, the next two each wait out the interval
	if elapsed := time.Since(start); elapsed < 2*interval {
		t.Errorf("Expected at least %v between three requests, got %v", 2*interval, elapsed)
	}
}

func TestWait_CancelledContext(t *testing.T) {
	p := New(time.Minute)
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("First wait should be immediate: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Wait(ctx); err == nil {
		t.Error("Expected error when context is cancelled before the interval elapses")
	}
}
