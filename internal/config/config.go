package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Ingest server
	Port         int
	DatabasePath string
	EvidenceDir  string
	LogDirectory string

	// Vision description service (OpenAI-compatible)
	AnalysisURL    string
	AnalysisKey    string
	AnalysisModel  string
	AnalysisInline bool // run enrichment inside the request instead of async

	// Edge pipeline
	CameraID        string
	CameraIndex     int
	FrameWidth      int
	FrameHeight     int
	SampleInterval  int // process every N-th captured frame
	BufferSize      int // look-back frames kept for the "before" image
	CooldownSeconds int // minimum seconds between alerts for one track
	TrackerURL      string
	IngestURL       string
}

func Load() *Config {
	// .env is optional; real deployments use actual env vars
	_ = godotenv.Load()

	return &Config{
		Port:         getEnvAsInt("PORT", 5000),
		DatabasePath: getEnv("DB_PATH", filepath.Join(".", "data", "incidents.db")),
		EvidenceDir:  getEnv("EVIDENCE_DIR", filepath.Join(".", "fall_images")),
		LogDirectory: getEnv("LOG_DIR", filepath.Join(".", "logs")),

		AnalysisURL:    getEnv("ANALYSIS_URL", "https://api.openai.com/v1"),
		AnalysisKey:    getEnv("OPENAI_API_KEY", ""),
		AnalysisModel:  getEnv("ANALYSIS_MODEL", "gpt-4o-mini"),
		AnalysisInline: getEnvAsBool("ANALYSIS_INLINE", false),

		CameraID:        getEnv("CAMERA_ID", "webcam_1"),
		CameraIndex:     getEnvAsInt("CAMERA_INDEX", 0),
		FrameWidth:      getEnvAsInt("FRAME_WIDTH", 1020),
		FrameHeight:     getEnvAsInt("FRAME_HEIGHT", 600),
		SampleInterval:  getEnvAsInt("SAMPLE_INTERVAL", 3),
		BufferSize:      getEnvAsInt("BUFFER_SIZE", 10),
		CooldownSeconds: getEnvAsInt("COOLDOWN_SECONDS", 30),
		TrackerURL:      getEnv("TRACKER_URL", "http://localhost:8500"),
		IngestURL:       getEnv("INGEST_URL", "http://localhost:5000"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
