package main

import (
	"log"
	"time"

	"fallguard/internal/config"
	"fallguard/internal/edge"
	"fallguard/internal/logger"
)

func main() {
	cfg := config.Load()
	edgeLog := logger.New(cfg.LogDirectory)

	source, err := edge.NewWebcamSource(cfg.CameraIndex, cfg.FrameWidth, cfg.FrameHeight)
	if err != nil {
		log.Fatalf("Failed to open camera: %v", err)
	}
	defer source.Close()

	sampler := edge.NewSampler(source, cfg.SampleInterval, cfg.BufferSize)
	tracker := edge.NewInferenceClient(cfg.TrackerURL, cfg.CameraID)
	debouncer := edge.NewDebouncer(time.Duration(cfg.CooldownSeconds) * time.Second)
	dispatcher := edge.NewAlertClient(cfg.IngestURL, cfg.CameraID)

	pipeline := edge.NewPipeline(sampler, tracker, edge.AspectRatioPolicy, debouncer, dispatcher, edgeLog)

	edgeLog.Info("Edge pipeline started for camera %s (every %d frames, %ds cooldown)",
		cfg.CameraID, cfg.SampleInterval, cfg.CooldownSeconds)

	if err := pipeline.Run(); err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	edgeLog.Info("Edge pipeline stopped")
}
