package models

// TrackedBox is one tracked bounding box returned by the external
// detection-and-tracking model for a single frame. TrackID is stable across
// frames for the same physical subject.
type TrackedBox struct {
	TrackID    int     `json:"track_id"`
	ClassID    int     `json:"class_id"`
	Confidence float64 `json:"confidence"`
	X1         int     `json:"x1"`
	Y1         int     `json:"y1"`
	X2         int     `json:"x2"`
	Y2         int     `json:"y2"`
}

// Width returns the box width in pixels.
func (b TrackedBox) Width() int {
	return b.X2 - b.X1
}

// Height returns the box height in pixels.
func (b TrackedBox) Height() int {
	return b.Y2 - b.Y1
}

// Centroid returns the geometric center of the box.
func (b TrackedBox) Centroid() Location {
	return Location{X: (b.X1 + b.X2) / 2, Y: (b.Y1 + b.Y2) / 2}
}

// ClassifiedDetection is a TrackedBox with the fall heuristic applied.
// Created fresh per processed frame and consumed immediately by the
// debouncer; never persisted.
type ClassifiedDetection struct {
	TrackedBox
	IsFall bool
	Height int
	Width  int
}
