package edge

import (
	"testing"

	"fallguard/internal/models"
)

func TestAspectRatioPolicy(t *testing.T) {
	tests := []struct {
		name   string
		height int
		width  int
		fall   bool
	}{
		{"standing person", 200, 80, false},
		{"lying person", 80, 200, true},
		{"square box counts as fall", 100, 100, true},
		{"barely taller than wide", 101, 100, false},
		{"zero-area box counts as fall", 0, 0, true},
	}

	for _, tt := range tests {
		if got := AspectRatioPolicy(tt.height, tt.width); got != tt.fall {
			t.Errorf("%s: AspectRatioPolicy(%d, %d) = %v, expected %v",
				tt.name, tt.height, tt.width, got, tt.fall)
		}
	}
}

func TestClassify(t *testing.T) {
	boxes := []models.TrackedBox{
		{TrackID: 1, Confidence: 0.9, X1: 10, Y1: 10, X2: 90, Y2: 210},  // standing
		{TrackID: 2, Confidence: 0.8, X1: 10, Y1: 10, X2: 210, Y2: 90},  // lying
		{TrackID: 3, Confidence: 0.7, X1: 50, Y1: 50, X2: 150, Y2: 150}, // square
	}

	detections := Classify(boxes, AspectRatioPolicy)
	if len(detections) != 3 {
		t.Fatalf("Expected 3 detections, got %d", len(detections))
	}

	expected := []bool{false, true, true}
	for i, det := range detections {
		if det.IsFall != expected[i] {
			t.Errorf("Track %d: IsFall = %v, expected %v", det.TrackID, det.IsFall, expected[i])
		}
	}

	if detections[0].Height != 200 || detections[0].Width != 80 {
		t.Errorf("Expected 200x80 dimensions, got %dx%d", detections[0].Height, detections[0].Width)
	}
}

func TestClassify_CustomPolicy(t *testing.T) {
	boxes := []models.TrackedBox{{TrackID: 1, X1: 0, Y1: 0, X2: 10, Y2: 100}}

	everything := func(height, width int) bool { return true }
	detections := Classify(boxes, everything)

	if !detections[0].IsFall {
		t.Error("Injected policy should have flagged the box")
	}
}

func TestClassify_Empty(t *testing.T) {
	detections := Classify(nil, AspectRatioPolicy)
	if len(detections) != 0 {
		t.Errorf("Expected no detections, got %d", len(detections))
	}
}
