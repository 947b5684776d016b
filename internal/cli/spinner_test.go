package cli

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerBasic(t *testing.T) {
	buf := captureUI(t)
	s := newSpinner("Synthesizing...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "Synthesizing...") {
		t.Errorf("spinner never drew its message: %q", buf.String())
	}
}

func TestSpinnerWithContext(t *testing.T) {
	captureUI(t)
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, "Testing with context...")
	s.Start()

	// Cancel the context
	cancel()

	// Give goroutine time to notice cancellation
	time.Sleep(100 * time.Millisecond)

	// Spinner should be cancelled
	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
}

func TestSpinnerWithTimeout(t *testing.T) {
	captureUI(t)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, "Testing with timeout...")
	s.Start()

	// Wait for timeout
	time.Sleep(100 * time.Millisecond)

	// Spinner should be cancelled due to timeout
	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	captureUI(t)
	s := newSpinner("Testing idempotent stop...")
	s.Start()

	// Stop multiple times should not panic
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithSuccess(t *testing.T) {
	buf := captureUI(t)
	s := newSpinner("Rendering svg...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithSuccess("Rendered")
	if !strings.Contains(buf.String(), iconSuccess+" Rendered") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestSpinnerStopWithError(t *testing.T) {
	buf := captureUI(t)
	s := newSpinner("Rendering svg...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithError("Render failed")
	if !strings.Contains(buf.String(), iconError+" Render failed") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestSpinnerBackgroundContext(t *testing.T) {
	captureUI(t)
	s := newSpinnerWithContext(context.Background(), "Test")
	s.Start()
	s.Stop()
}

func TestSpinnerSetMessage(t *testing.T) {
	buf := captureUI(t)
	s := newSpinner("Synthesizing 40 operators...")
	s.Start()
	time.Sleep(120 * time.Millisecond)
	s.SetMessage("Synthesizing... 7 left, 31 gates")
	time.Sleep(120 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "7 left, 31 gates") {
		t.Errorf("updated message never drawn: %q", buf.String())
	}
	if s.Cancelled() {
		t.Error("Stop must not report a cancelled parent")
	}
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	captureUI(t)
	s := newSpinner("idle")
	s.Stop()
}
