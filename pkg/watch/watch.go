// Package watch emits debounced change notifications for a fixed set of
// input files. The parent directory of each file is watched, since editors
// typically replace files on save rather than writing in place; events are
// filtered back to the files of interest and bursts are coalesced before a
// notification fires.
package watch

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fsnotify/fsnotify"
)

// Event is one settled burst of input file changes.
type Event struct {
	// Paths lists the distinct files that changed, sorted.
	Paths []string

	// Time is when the burst settled.
	Time time.Time
}

// Watcher watches input files and delivers debounced change events.
type Watcher struct {
	fsw    *fsnotify.Watcher
	files  map[string]bool
	events chan Event
	logger *log.Logger
	deb    Debouncer
}

// New creates a watcher for the given files. quiet is how long the burst
// must be silent before an event fires; maxWait caps how long a steady
// stream of changes can defer it. A nil logger discards diagnostics.
func New(paths []string, quiet, maxWait time.Duration, logger *log.Logger) (*Watcher, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		fsw:    fsw,
		files:  make(map[string]bool, len(paths)),
		events: make(chan Event, 16),
		logger: logger,
		deb:    Debouncer{Quiet: quiet, MaxWait: maxWait},
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	return w, nil
}

// Start launches the event loop and returns the event channel. The channel
// closes when ctx is canceled.
func (w *Watcher) Start(ctx context.Context) <-chan Event {
	go w.run(ctx)
	return w.events
}

func (w *Watcher) run(ctx context.Context) {
	defer w.fsw.Close()
	defer close(w.events)

	pending := make(map[string]bool)
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			path := filepath.Clean(ev.Name)
			if !w.files[path] {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			w.logger.Debug("input changed", "path", path, "op", ev.Op)
			pending[path] = true
			w.deb.Observe(time.Now())
			timer.Reset(time.Until(w.deb.FireAt()))

		case <-timer.C:
			// The timer can hold a stale fire from a burst that already
			// flushed; an empty pending set means nothing to do.
			if !w.deb.Pending() {
				continue
			}
			w.deb.Reset()

			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			slices.Sort(paths)
			pending = make(map[string]bool)

			select {
			case w.events <- Event{Paths: paths, Time: time.Now()}:
			default:
				w.logger.Warn("dropping change event, consumer is behind")
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", "err", err)
		}
	}
}
