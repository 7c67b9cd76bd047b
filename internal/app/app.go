package app

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"fallguard/internal/config"
	"fallguard/internal/logger"
	"fallguard/internal/repository/sqlite"
	"fallguard/internal/routes"
	"fallguard/internal/services/enrichment"
	"fallguard/internal/services/notify"
	"fallguard/internal/services/storage"
)

// App wires the incident ingest service together.
type App struct {
	config    *config.Config
	logger    *logger.Logger
	db        *sqlite.DB
	incidents *sqlite.IncidentRepository
	evidence  *storage.EvidenceStore
	worker    *enrichment.Worker
	hub       *notify.Hub
}

// NewApp builds the application from configuration.
func NewApp() (*App, error) {
	cfg := config.Load()
	log := logger.New(cfg.LogDirectory)

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open incident database: %w", err)
	}

	evidence, err := storage.NewEvidenceStore(cfg.EvidenceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to init evidence store: %w", err)
	}

	incidents := sqlite.NewIncidentRepository(db)
	analyzer := enrichment.NewClient(cfg.AnalysisURL, cfg.AnalysisKey, cfg.AnalysisModel)
	worker := enrichment.NewWorker(analyzer, incidents, log)
	hub := notify.NewHub(log)

	return &App{
		config:    cfg,
		logger:    log,
		db:        db,
		incidents: incidents,
		evidence:  evidence,
		worker:    worker,
		hub:       hub,
	}, nil
}

// Run starts the background hub and serves the HTTP API.
func (a *App) Run() error {
	defer a.db.Close()

	go a.hub.Run()

	router := routes.Setup(a.incidents, a.evidence, a.worker, a.hub, a.config, a.logger)

	a.logger.Info("Fall incident server listening on :%d", a.config.Port)
	a.logger.Info("Evidence directory: %s", a.config.EvidenceDir)
	a.logger.Info("Database: %s", a.config.DatabasePath)

	return http.ListenAndServe(fmt.Sprintf(":%d", a.config.Port), router)
}
