package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"fallguard/internal/logger"
)

// ShowLogsHandler serves the raw log file for the requested level
// (info/warning/error).
func ShowLogsHandler(log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := log.LogFile(mux.Vars(r)["level"])
		if path == "" {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		http.ServeFile(w, r, path)
	}
}
