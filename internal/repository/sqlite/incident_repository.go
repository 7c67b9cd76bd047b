package sqlite

import (
	"database/sql"
	"fmt"

	"fallguard/internal/models"
	"fallguard/internal/repository"
)

// IncidentRepository implements repository.IncidentRepository for SQLite.
type IncidentRepository struct {
	db *DB
}

// NewIncidentRepository creates a new SQLite incident repository.
func NewIncidentRepository(db *DB) *IncidentRepository {
	return &IncidentRepository{db: db}
}

// Insert adds a new incident and its evidence image URIs in one transaction.
// The record only becomes visible once evidence rows are written, so a
// failure part-way leaves nothing behind.
func (r *IncidentRepository) Insert(incident *models.Incident) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	tx, err := r.db.Conn().Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		INSERT INTO incidents (track_id, camera_id, user_id, room, type, priority,
			status, confidence, location_x, location_y, description, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, incident.TrackID, incident.CameraID, incident.UserID, incident.Room,
		incident.Type, incident.Priority, incident.Status, incident.Confidence,
		incident.Location.X, incident.Location.Y, incident.Description, incident.Timestamp)
	if err != nil {
		return 0, fmt.Errorf("failed to insert incident: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get incident id: %w", err)
	}

	for i, path := range incident.EvidenceImages {
		if _, err := tx.Exec(`
			INSERT INTO incident_images (incident_id, position, path)
			VALUES (?, ?, ?)
		`, id, i, path); err != nil {
			return 0, fmt.Errorf("failed to insert evidence image: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit incident: %w", err)
	}

	return id, nil
}

// GetByID retrieves an incident by its ID, or repository.ErrNotFound.
func (r *IncidentRepository) GetByID(id int64) (*models.Incident, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var inc models.Incident
	err := r.db.Conn().QueryRow(`
		SELECT id, track_id, camera_id, user_id, room, type, priority, status,
			confidence, location_x, location_y, description, timestamp, created_at
		FROM incidents WHERE id = ?
	`, id).Scan(&inc.ID, &inc.TrackID, &inc.CameraID, &inc.UserID, &inc.Room,
		&inc.Type, &inc.Priority, &inc.Status, &inc.Confidence,
		&inc.Location.X, &inc.Location.Y, &inc.Description, &inc.Timestamp, &inc.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get incident: %w", err)
	}

	if inc.EvidenceImages, err = r.evidenceImages(inc.ID); err != nil {
		return nil, err
	}
	return &inc, nil
}

// GetAll retrieves incidents matching the filter, newest first.
func (r *IncidentRepository) GetAll(filter *models.IncidentFilter) ([]models.Incident, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	query := `
		SELECT id, track_id, camera_id, user_id, room, type, priority, status,
			confidence, location_x, location_y, description, timestamp, created_at
		FROM incidents
		WHERE 1=1
	`
	args := []interface{}{}

	if filter != nil {
		if filter.UserID != "" {
			query += " AND user_id = ?"
			args = append(args, filter.UserID)
		}
		if filter.Type != "" {
			query += " AND type = ?"
			args = append(args, filter.Type)
		}
		if filter.Priority != "" {
			query += " AND priority = ?"
			args = append(args, filter.Priority)
		}
		if filter.Status != "" {
			query += " AND status = ?"
			args = append(args, filter.Status)
		}
	}

	query += " ORDER BY timestamp DESC"

	rows, err := r.db.Conn().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query incidents: %w", err)
	}
	defer rows.Close()

	var incidents []models.Incident
	for rows.Next() {
		var inc models.Incident
		if err := rows.Scan(&inc.ID, &inc.TrackID, &inc.CameraID, &inc.UserID,
			&inc.Room, &inc.Type, &inc.Priority, &inc.Status, &inc.Confidence,
			&inc.Location.X, &inc.Location.Y, &inc.Description,
			&inc.Timestamp, &inc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan incident: %w", err)
		}
		incidents = append(incidents, inc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate incidents: %w", err)
	}

	for i := range incidents {
		if incidents[i].EvidenceImages, err = r.evidenceImages(incidents[i].ID); err != nil {
			return nil, err
		}
	}

	return incidents, nil
}

// UpdateStatus transitions an incident's review status. Last writer wins.
func (r *IncidentRepository) UpdateStatus(id int64, status string) error {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`UPDATE incidents SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check status update: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpdateDescription stores the analysis result for an incident.
func (r *IncidentRepository) UpdateDescription(id int64, description string) error {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`UPDATE incidents SET description = ? WHERE id = ?`, description, id)
	if err != nil {
		return fmt.Errorf("failed to update description: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check description update: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// evidenceImages returns the evidence URIs for an incident in upload order.
func (r *IncidentRepository) evidenceImages(incidentID int64) ([]string, error) {
	rows, err := r.db.Conn().Query(`
		SELECT path FROM incident_images WHERE incident_id = ? ORDER BY position
	`, incidentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query evidence images: %w", err)
	}
	defer rows.Close()

	paths := []string{}
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("failed to scan evidence image: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, rows.Err()
}
