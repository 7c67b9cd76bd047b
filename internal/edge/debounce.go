package edge

import (
	"sync"
	"time"
)

// Debouncer suppresses repeated alerts for the same track within a cooldown
// window. Tracks are independent of each other. State advances only via
// MarkDispatched, which callers invoke after confirmed delivery, so a failed
// send leaves the track eligible for retry on the next frame.
type Debouncer struct {
	cooldown  time.Duration
	lastAlert map[int]time.Time
	mu        sync.Mutex
}

// NewDebouncer creates a Debouncer with the given cooldown window.
func NewDebouncer(cooldown time.Duration) *Debouncer {
	return &Debouncer{
		cooldown:  cooldown,
		lastAlert: make(map[int]time.Time),
	}
}

// Allow reports whether an alert for the track may be dispatched at the
// given time: either no alert was ever sent for it, or the cooldown window
// has elapsed since the last one.
func (d *Debouncer) Allow(trackID int, now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	last, ok := d.lastAlert[trackID]
	if !ok {
		return true
	}
	return now.Sub(last) > d.cooldown
}

// MarkDispatched records a confirmed alert delivery for the track. Must only
// be called after the ingest endpoint acknowledged the alert.
func (d *Debouncer) MarkDispatched(trackID int, now time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastAlert[trackID] = now
}
