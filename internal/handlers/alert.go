package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"fallguard/internal/logger"
	"fallguard/internal/models"
	"fallguard/internal/repository"
	"fallguard/internal/services/enrichment"
	"fallguard/internal/services/notify"
	"fallguard/internal/services/storage"
)

const maxUploadBytes = 32 << 20

// FallAlertHandler receives a fall alert with its evidence images, persists
// everything and answers with the new incident id. The incident record is
// only created after all evidence is on disk, so a failure part-way never
// leaves a half-visible incident.
func FallAlertHandler(incidents repository.IncidentRepository, evidence *storage.EvidenceStore, worker *enrichment.Worker, hub *notify.Hub, inline bool, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}

		trackValue := r.FormValue("track_id")
		if trackValue == "" {
			writeError(w, http.StatusBadRequest, "track_id not provided")
			return
		}
		trackID, err := strconv.Atoi(trackValue)
		if err != nil {
			writeError(w, http.StatusBadRequest, "track_id must be an integer")
			return
		}

		now := time.Now()
		timestamp := parseTimestamp(r.FormValue("timestamp"), now)
		confidence, _ := strconv.ParseFloat(r.FormValue("confidence"), 64)

		var location models.Location
		if raw := r.FormValue("location"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &location); err != nil {
				log.Warning("Unparseable location %q: %v", raw, err)
			}
		}

		images, err := openUploads(r)
		if err != nil {
			log.Error("Error reading uploaded images: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to read images")
			return
		}
		defer closeAll(images)

		paths, err := evidence.Save(trackValue, now, readers(images))
		if err != nil {
			log.Error("Error saving evidence: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to store evidence")
			return
		}

		description := models.DescriptionPendingAnalysis
		if len(paths) < 2 {
			description = models.DescriptionInsufficientEvidence
		}

		incident := &models.Incident{
			TrackID:        trackID,
			CameraID:       r.FormValue("camera_id"),
			UserID:         r.FormValue("user_id"),
			Room:           r.FormValue("room"),
			Type:           "fall_detection",
			Priority:       "high",
			Status:         models.StatusPending,
			Confidence:     confidence,
			Location:       location,
			Description:    description,
			EvidenceImages: paths,
			Timestamp:      timestamp,
		}

		id, err := incidents.Insert(incident)
		if err != nil {
			log.Error("Error inserting incident: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to create incident")
			return
		}
		incident.ID = id
		incident.CreatedAt = now

		log.Info("Incident %d created for track %d (%d images)", id, trackID, len(paths))
		hub.NotifyIncident(incident)

		if len(paths) >= 2 {
			if inline {
				worker.Enrich(id, paths)
			} else {
				go worker.Enrich(id, paths)
			}
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":     "success",
			"incidentId": id,
			"imagePaths": paths,
		})
	}
}

// parseTimestamp accepts the edge pipeline's timestamp format and falls back
// to the receive time.
func parseTimestamp(value string, fallback time.Time) time.Time {
	if value == "" {
		return fallback
	}
	ts, err := time.ParseInLocation("2006-01-02 15:04:05", value, time.Local)
	if err != nil {
		return fallback
	}
	return ts
}

// openUploads opens the "images" file parts in submitted order.
func openUploads(r *http.Request) ([]io.ReadCloser, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	var opened []io.ReadCloser
	for _, header := range r.MultipartForm.File["images"] {
		file, err := header.Open()
		if err != nil {
			closeAll(opened)
			return nil, err
		}
		opened = append(opened, file)
	}
	return opened, nil
}

func readers(files []io.ReadCloser) []io.Reader {
	rs := make([]io.Reader, len(files))
	for i, f := range files {
		rs[i] = f
	}
	return rs
}

func closeAll(files []io.ReadCloser) {
	for _, f := range files {
		f.Close()
	}
}
