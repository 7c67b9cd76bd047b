package edge

import (
	"errors"
	"testing"
	"time"

	"fallguard/internal/logger"
	"fallguard/internal/models"
)

// fakeTracker reports one lying-down person per frame.
type fakeTracker struct {
	box models.TrackedBox
}

func (f *fakeTracker) Track(frame []byte) ([]models.TrackedBox, error) {
	return []models.TrackedBox{f.box}, nil
}

// fakeDispatcher records alerts and can be told to fail the first n sends.
type fakeDispatcher struct {
	alerts   []Alert
	failNext int
}

func (f *fakeDispatcher) Dispatch(alert Alert) error {
	if f.failNext > 0 {
		f.failNext--
		return errors.New("connection refused")
	}
	f.alerts = append(f.alerts, alert)
	return nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	return logger.New(t.TempDir())
}

func fallBox(trackID int) models.TrackedBox {
	return models.TrackedBox{TrackID: trackID, Confidence: 0.91, X1: 100, Y1: 200, X2: 300, Y2: 260}
}

func newTestPipeline(t *testing.T, frames int, tracker Tracker, dispatcher Dispatcher) *Pipeline {
	t.Helper()
	sampler := NewSampler(newFakeSource(frames), 1, 10)
	debouncer := NewDebouncer(30 * time.Second)
	return NewPipeline(sampler, tracker, AspectRatioPolicy, debouncer, dispatcher, testLogger(t))
}

func TestPipeline_OneAlertPerCooldownWindow(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	p := newTestPipeline(t, 50, &fakeTracker{box: fallBox(4)}, dispatcher)

	// Frames arrive one second apart; all 50 within two cooldown windows.
	clock := time.Now()
	p.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	if err := p.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// 50 fall frames over ~50s: first alert immediately, second once the
	// 30s window has elapsed.
	if len(dispatcher.alerts) != 2 {
		t.Fatalf("Expected 2 alerts, got %d", len(dispatcher.alerts))
	}
	if dispatcher.alerts[0].TrackID != 4 {
		t.Errorf("Alert track = %d, expected 4", dispatcher.alerts[0].TrackID)
	}
	if got := dispatcher.alerts[1].Timestamp.Sub(dispatcher.alerts[0].Timestamp); got <= 30*time.Second {
		t.Errorf("Alerts only %v apart, expected more than the 30s cooldown", got)
	}
}

func TestPipeline_FailedDispatchRetriesNextFrame(t *testing.T) {
	dispatcher := &fakeDispatcher{failNext: 1}
	p := newTestPipeline(t, 2, &fakeTracker{box: fallBox(1)}, dispatcher)

	if err := p.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// First dispatch fails; the cooldown must not advance, so the very next
	// fall frame produces another attempt, which succeeds.
	if len(dispatcher.alerts) != 1 {
		t.Fatalf("Expected 1 delivered alert after a retry, got %d", len(dispatcher.alerts))
	}
}

func TestPipeline_AlertCarriesEvidence(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	p := newTestPipeline(t, 3, &fakeTracker{box: fallBox(2)}, dispatcher)

	if err := p.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(dispatcher.alerts) == 0 {
		t.Fatal("Expected at least one alert")
	}

	alert := dispatcher.alerts[0]
	if string(alert.FallFrame) != "frame-1" {
		t.Errorf("Fall frame = %q, expected frame-1", alert.FallFrame)
	}
	if string(alert.BeforeFrame) != "frame-1" {
		t.Errorf("Before frame = %q, expected the oldest buffered frame", alert.BeforeFrame)
	}
	if alert.Location != (models.Location{X: 200, Y: 230}) {
		t.Errorf("Location = %+v, expected centroid {200 230}", alert.Location)
	}
	if alert.Confidence != 0.91 {
		t.Errorf("Confidence = %v, expected 0.91", alert.Confidence)
	}
}

func TestPipeline_IgnoresStandingTracks(t *testing.T) {
	standing := models.TrackedBox{TrackID: 3, X1: 0, Y1: 0, X2: 80, Y2: 200}
	dispatcher := &fakeDispatcher{}
	p := newTestPipeline(t, 10, &fakeTracker{box: standing}, dispatcher)

	if err := p.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(dispatcher.alerts) != 0 {
		t.Errorf("Expected no alerts for a standing track, got %d", len(dispatcher.alerts))
	}
}
