package enrichment

import (
	"fallguard/internal/logger"
	"fallguard/internal/models"
	"fallguard/internal/repository"
)

// Worker attaches analysis descriptions to stored incidents. A failed
// analysis never rolls back the incident; the record keeps a sentinel
// description instead.
type Worker struct {
	analyzer  Analyzer
	incidents repository.IncidentRepository
	logger    *logger.Logger
}

// NewWorker creates an enrichment worker.
func NewWorker(analyzer Analyzer, incidents repository.IncidentRepository, log *logger.Logger) *Worker {
	return &Worker{
		analyzer:  analyzer,
		incidents: incidents,
		logger:    log,
	}
}

// Enrich analyzes the incident's evidence images and writes the result into
// its description. With fewer than two images the external service is not
// called at all.
func (w *Worker) Enrich(incidentID int64, evidenceImages []string) {
	description := w.describe(evidenceImages)

	if err := w.incidents.UpdateDescription(incidentID, description); err != nil {
		w.logger.Error("Failed to store description for incident %d: %v", incidentID, err)
		return
	}
	w.logger.Info("Incident %d enriched", incidentID)
}

func (w *Worker) describe(evidenceImages []string) string {
	if len(evidenceImages) < 2 {
		return models.DescriptionInsufficientEvidence
	}

	description, err := w.analyzer.Describe(evidenceImages[0], evidenceImages[1])
	if err != nil {
		w.logger.Warning("Analysis failed: %v", err)
		return models.DescriptionAnalysisUnavailable
	}
	return description
}
