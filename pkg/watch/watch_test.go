package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDebouncerQuietWindow(t *testing.T) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	d := Debouncer{Quiet: 100 * time.Millisecond, MaxWait: time.Second}

	if d.Pending() {
		t.Error("fresh debouncer should not be pending")
	}
	if !d.FireAt().IsZero() {
		t.Error("fresh debouncer should have no fire time")
	}

	d.Observe(base)
	if got, want := d.FireAt(), base.Add(100*time.Millisecond); !got.Equal(want) {
		t.Errorf("FireAt = %v, want %v", got, want)
	}

	// A later observation pushes the fire time out.
	d.Observe(base.Add(50 * time.Millisecond))
	if got, want := d.FireAt(), base.Add(150*time.Millisecond); !got.Equal(want) {
		t.Errorf("FireAt = %v, want %v", got, want)
	}

	d.Reset()
	if d.Pending() {
		t.Error("Reset should clear the pending burst")
	}
}

func TestDebouncerMaxWaitCap(t *testing.T) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	d := Debouncer{Quiet: 100 * time.Millisecond, MaxWait: time.Second}

	d.Observe(base)
	d.Observe(base.Add(950 * time.Millisecond))

	// Quiet would push to base+1050ms; MaxWait caps at base+1s.
	if got, want := d.FireAt(), base.Add(time.Second); !got.Equal(want) {
		t.Errorf("FireAt = %v, want %v", got, want)
	}
}

func TestDebouncerNoMaxWait(t *testing.T) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	d := Debouncer{Quiet: 100 * time.Millisecond}

	d.Observe(base)
	d.Observe(base.Add(time.Hour))

	if got, want := d.FireAt(), base.Add(time.Hour+100*time.Millisecond); !got.Equal(want) {
		t.Errorf("FireAt = %v, want %v", got, want)
	}
}

func TestWatcherDeliversEvent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nodes.csv")
	if err := os.WriteFile(target, []byte("Alpha,a\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New([]string{target}, 20*time.Millisecond, 500*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := w.Start(ctx)

	if err := os.WriteFile(target, []byte("Alpha,a\nBeta,b\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-events:
		abs, _ := filepath.Abs(target)
		if len(ev.Paths) != 1 || ev.Paths[0] != abs {
			t.Errorf("Paths = %v, want [%s]", ev.Paths, abs)
		}
		if ev.Time.IsZero() {
			t.Error("event time should be set")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nodes.csv")
	other := filepath.Join(dir, "other.csv")
	if err := os.WriteFile(target, []byte("Alpha,a\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New([]string{target}, 20*time.Millisecond, 500*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := w.Start(ctx)

	if err := os.WriteFile(other, []byte("noise\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-events:
		t.Errorf("unexpected event for sibling file: %v", ev.Paths)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherClosesOnCancel(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nodes.csv")
	if err := os.WriteFile(target, []byte("Alpha,a\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New([]string{target}, 20*time.Millisecond, 500*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	events := w.Start(ctx)
	cancel()

	select {
	case _, ok := <-events:
		if ok {
			t.Error("expected channel close, got event")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}

func TestNewMissingDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent", "nodes.csv")
	if _, err := New([]string{missing}, time.Millisecond, time.Second, nil); err == nil {
		t.Error("watching a file in a missing directory should fail")
	}
}
