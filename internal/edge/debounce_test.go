package edge

import (
	"testing"
	"time"
)

func TestDebouncer_FirstAlertAllowed(t *testing.T) {
	d := NewDebouncer(30 * time.Second)
	now := time.Now()

	if !d.Allow(1, now) {
		t.Error("First alert for a track should be allowed")
	}
}

func TestDebouncer_SuppressedWithinCooldown(t *testing.T) {
	d := NewDebouncer(30 * time.Second)
	start := time.Now()

	d.MarkDispatched(1, start)

	tests := []struct {
		elapsed time.Duration
		allowed bool
	}{
		{time.Second, false},
		{15 * time.Second, false},
		{30 * time.Second, false}, // exactly at the window edge stays suppressed
		{31 * time.Second, true},
		{5 * time.Minute, true},
	}

	for _, tt := range tests {
		if got := d.Allow(1, start.Add(tt.elapsed)); got != tt.allowed {
			t.Errorf("Allow after %v = %v, expected %v", tt.elapsed, got, tt.allowed)
		}
	}
}

func TestDebouncer_TracksIndependent(t *testing.T) {
	d := NewDebouncer(30 * time.Second)
	now := time.Now()

	d.MarkDispatched(1, now)

	if d.Allow(1, now.Add(time.Second)) {
		t.Error("Track 1 should be cooling down")
	}
	if !d.Allow(2, now.Add(time.Second)) {
		t.Error("Track 2 cooldown must not be affected by track 1")
	}
}

func TestDebouncer_NoAdvanceWithoutMark(t *testing.T) {
	d := NewDebouncer(30 * time.Second)
	now := time.Now()

	// Allow alone (e.g. a failed dispatch) must not start the cooldown.
	d.Allow(7, now)

	if !d.Allow(7, now.Add(time.Millisecond)) {
		t.Error("Track should still be eligible after an unconfirmed dispatch")
	}
}
