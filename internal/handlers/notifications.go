package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"fallguard/internal/logger"
	"fallguard/internal/models"
	"fallguard/internal/repository"
)

// ListNotificationsHandler returns incidents matching the query filters,
// newest first.
func ListNotificationsHandler(incidents repository.IncidentRepository, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := &models.IncidentFilter{
			UserID:   q.Get("userId"),
			Type:     q.Get("type"),
			Priority: q.Get("priority"),
			Status:   q.Get("status"),
		}

		list, err := incidents.GetAll(filter)
		if err != nil {
			log.Error("Error listing incidents: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to list incidents")
			return
		}
		if list == nil {
			list = []models.Incident{}
		}

		writeJSON(w, http.StatusOK, list)
	}
}

// UpdateNotificationHandler transitions an incident's review status.
func UpdateNotificationHandler(incidents repository.IncidentRepository, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid incident id")
			return
		}

		var body struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
			writeError(w, http.StatusBadRequest, "status not provided")
			return
		}

		if err := incidents.UpdateStatus(id, body.Status); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				writeError(w, http.StatusNotFound, "incident not found")
				return
			}
			log.Error("Error updating incident %d: %v", id, err)
			writeError(w, http.StatusInternalServerError, "failed to update incident")
			return
		}

		log.Info("Incident %d set to %s", id, body.Status)
		writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
	}
}
