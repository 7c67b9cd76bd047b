package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"fallguard/internal/config"
	"fallguard/internal/handlers"
	"fallguard/internal/logger"
	"fallguard/internal/repository"
	"fallguard/internal/services/enrichment"
	"fallguard/internal/services/notify"
	"fallguard/internal/services/storage"
)

// Setup registers the ingest and query API routes.
func Setup(incidents repository.IncidentRepository, evidence *storage.EvidenceStore, worker *enrichment.Worker, hub *notify.Hub, cfg *config.Config, log *logger.Logger) http.Handler {
	router := mux.NewRouter()

	// Ingest
	router.HandleFunc("/fall_alert",
		handlers.FallAlertHandler(incidents, evidence, worker, hub, cfg.AnalysisInline, log)).Methods(http.MethodPost)

	// Query API
	router.HandleFunc("/notifications",
		handlers.ListNotificationsHandler(incidents, log)).Methods(http.MethodGet)
	router.HandleFunc("/notifications/ws",
		handlers.NotificationsWebsocketHandler(hub, log)).Methods(http.MethodGet)
	router.HandleFunc("/notifications/{id}",
		handlers.UpdateNotificationHandler(incidents, log)).Methods(http.MethodPut)

	// Stored evidence images, so evidenceImages URIs resolve in the review UI
	router.PathPrefix("/fall_images/").Handler(
		http.StripPrefix("/fall_images/", http.FileServer(http.Dir(evidence.BaseDir()))))

	// Log endpoints
	router.HandleFunc("/logs/{level}", handlers.ShowLogsHandler(log)).Methods(http.MethodGet)

	return router
}
