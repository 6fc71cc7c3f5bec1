package watch

import "time"

// Debouncer decides when a burst of change notifications has settled. It is
// a pure state machine over caller-supplied clock readings, which keeps the
// timing logic testable without sleeping: Observe records a notification at
// time t, FireAt reports when the pending burst should flush, and Reset
// clears it after flushing.
type Debouncer struct {
	// Quiet is how long the burst must stay silent before firing.
	Quiet time.Duration

	// MaxWait caps the total deferral, so a steady stream of changes
	// cannot postpone the flush forever. Zero means no cap.
	MaxWait time.Duration

	first time.Time
	last  time.Time
}

// Observe records one notification at time t.
func (d *Debouncer) Observe(t time.Time) {
	if d.first.IsZero() {
		d.first = t
	}
	d.last = t
}

// Pending reports whether a burst is waiting to flush.
func (d *Debouncer) Pending() bool {
	return !d.first.IsZero()
}

// FireAt returns the instant the pending burst should flush: Quiet after
// the last notification, but never later than MaxWait after the first. The
// zero time means nothing is pending.
func (d *Debouncer) FireAt() time.Time {
	if d.first.IsZero() {
		return time.Time{}
	}
	fire := d.last.Add(d.Quiet)
	if d.MaxWait > 0 {
		if limit := d.first.Add(d.MaxWait); fire.After(limit) {
			fire = limit
		}
	}
	return fire
}

// Reset clears the pending burst.
func (d *Debouncer) Reset() {
	d.first = time.Time{}
	d.last = time.Time{}
}
