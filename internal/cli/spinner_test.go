package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStartStop(t *testing.T) {
	s := newSpinner("decomposing...")
	s.Start()
	time.Sleep(3 * spinnerInterval)
	s.Stop()
}

func TestSpinnerStopBeforeFirstFrame(t *testing.T) {
	s := newSpinner("quick stage")
	s.Start()
	s.Stop() // must not hang waiting for a tick
}

func TestSpinnerParentCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerWithContext(ctx, "rendering...")
	s.Start()

	cancel()
	time.Sleep(3 * spinnerInterval) // let the goroutine observe ctx

	if !s.Cancelled() {
		t.Error("Cancelled() = false after parent context cancellation")
	}
}

func TestSpinnerDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), spinnerInterval)
	defer cancel()

	s := newSpinnerWithContext(ctx, "layout...")
	s.Start()
	time.Sleep(3 * spinnerInterval)

	if !s.Cancelled() {
		t.Error("Cancelled() = false after context deadline")
	}
}

func TestSpinnerRepeatedStop(t *testing.T) {
	s := newSpinner("idempotent stop")
	s.Start()
	for range 3 {
		s.Stop()
	}
}

func TestSpinnerStopMessages(t *testing.T) {
	s := newSpinner("one")
	s.Start()
	s.StopWithSuccess("done")

	s = newSpinner("two")
	s.Start()
	s.StopWithError("failed")
}
