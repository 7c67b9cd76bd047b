package edge

import (
	"errors"
	"time"

	"fallguard/internal/logger"
	"fallguard/internal/models"
)

// Pipeline runs the edge loop: sample a frame, track people in it, classify
// each track with the fall policy, and dispatch debounced alerts. One
// logical thread of control; a fall on frame t is dispatched before frame
// t+1 is sampled.
type Pipeline struct {
	sampler    *Sampler
	tracker    Tracker
	policy     FallPolicy
	debouncer  *Debouncer
	dispatcher Dispatcher
	logger     *logger.Logger
	now        func() time.Time
}

// NewPipeline wires the edge components together.
func NewPipeline(sampler *Sampler, tracker Tracker, policy FallPolicy, debouncer *Debouncer, dispatcher Dispatcher, log *logger.Logger) *Pipeline {
	return &Pipeline{
		sampler:    sampler,
		tracker:    tracker,
		policy:     policy,
		debouncer:  debouncer,
		dispatcher: dispatcher,
		logger:     log,
		now:        time.Now,
	}
}

// Run processes frames until the source is exhausted. Tracker and dispatch
// errors are logged and the loop moves on; a failed dispatch leaves the
// track's cooldown untouched so the next fall frame retries it.
func (p *Pipeline) Run() error {
	for {
		frame, err := p.sampler.Sample()
		if errors.Is(err, ErrSourceExhausted) {
			p.logger.Info("Frame source exhausted, stopping pipeline")
			return nil
		}
		if err != nil {
			return err
		}

		boxes, err := p.tracker.Track(frame)
		if err != nil {
			p.logger.Error("Tracking failed: %v", err)
			continue
		}

		for _, det := range Classify(boxes, p.policy) {
			if !det.IsFall {
				continue
			}
			p.handleFall(det, frame)
		}
	}
}

// handleFall dispatches one classified fall if its track is out of cooldown.
func (p *Pipeline) handleFall(det models.ClassifiedDetection, frame []byte) {
	now := p.now()
	if !p.debouncer.Allow(det.TrackID, now) {
		return
	}

	alert := Alert{
		TrackID:     det.TrackID,
		Confidence:  det.Confidence,
		Location:    det.Centroid(),
		Timestamp:   now,
		BeforeFrame: p.sampler.OldestBuffered(),
		FallFrame:   frame,
	}

	if err := p.dispatcher.Dispatch(alert); err != nil {
		p.logger.Error("Alert dispatch failed for track %d: %v", det.TrackID, err)
		return
	}

	p.debouncer.MarkDispatched(det.TrackID, now)
	p.logger.Info("Alert sent for track %d at %v", det.TrackID, alert.Location)
}
