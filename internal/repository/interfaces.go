package repository

import (
	"errors"

	"fallguard/internal/models"
)

// ErrNotFound is returned when an incident id does not exist.
var ErrNotFound = errors.New("incident not found")

// IncidentRepository defines the interface for incident data operations.
type IncidentRepository interface {
	// Insert persists an incident together with its evidence image URIs, in
	// order, and returns the assigned id.
	Insert(incident *models.Incident) (int64, error)

	GetByID(id int64) (*models.Incident, error)
	GetAll(filter *models.IncidentFilter) ([]models.Incident, error)

	// UpdateStatus transitions the review status of an incident. Returns
	// ErrNotFound for unknown ids.
	UpdateStatus(id int64, status string) error

	// UpdateDescription stores the enrichment result for an incident.
	UpdateDescription(id int64, description string) error
}
