package models

import "time"

// Incident statuses. The set is open; these are the ones the system assigns
// or the review UI is known to send.
const (
	StatusPending   = "pending"
	StatusReviewed  = "reviewed"
	StatusDismissed = "dismissed"
)

// Description sentinels for incidents that have not been (or cannot be)
// analyzed by the vision service.
const (
	DescriptionPendingAnalysis      = "Pending analysis"
	DescriptionInsufficientEvidence = "Insufficient evidence for analysis"
	DescriptionAnalysisUnavailable  = "Analysis unavailable"
)

// Location is the centroid of the fall bounding box in frame coordinates.
type Location struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Incident is the durable record of one dispatched fall alert.
type Incident struct {
	ID             int64     `json:"id"`
	TrackID        int       `json:"trackId"`
	CameraID       string    `json:"cameraId"`
	UserID         string    `json:"userId,omitempty"`
	Room           string    `json:"room,omitempty"`
	Type           string    `json:"type"`
	Priority       string    `json:"priority"`
	Status         string    `json:"status"`
	Confidence     float64   `json:"confidence"`
	Location       Location  `json:"location"`
	Description    string    `json:"description"`
	EvidenceImages []string  `json:"evidenceImages"`
	Timestamp      time.Time `json:"timestamp"`
	CreatedAt      time.Time `json:"createdAt"`
}

// IncidentFilter contains filtering options for querying incidents.
type IncidentFilter struct {
	UserID   string
	Type     string
	Priority string
	Status   string
}
