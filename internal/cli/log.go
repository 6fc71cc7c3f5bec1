package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// logTimeFormat shows wall-clock time with centisecond resolution, enough
// to read stage durations off a verbose run.
const logTimeFormat = "15:04:05.00"

// newLogger builds the application logger writing to w at the given level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      logTimeFormat,
		Level:           level,
	})
}

// progress stamps the start of an operation so done can report how long it
// took. One goroutine per tracker.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, rounded to the millisecond, e.g.
// "Snapshot ready: 8 nodes, 5 components (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
