package edge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"fallguard/internal/models"
)

// Alert is the evidence package for one detected fall: the frame it was
// detected on plus the oldest buffered frame from before it.
type Alert struct {
	TrackID     int
	Confidence  float64
	Location    models.Location
	Timestamp   time.Time
	BeforeFrame []byte
	FallFrame   []byte
}

// Dispatcher delivers alerts to the ingest endpoint.
type Dispatcher interface {
	Dispatch(alert Alert) error
}

// AlertClient dispatches alerts as multipart POSTs to the ingest service.
type AlertClient struct {
	httpClient *resty.Client
	cameraID   string
}

// NewAlertClient creates a dispatcher posting to the ingest service at
// baseURL.
func NewAlertClient(baseURL, cameraID string) *AlertClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second)

	return &AlertClient{
		httpClient: client,
		cameraID:   cameraID,
	}
}

// Dispatch writes both evidence frames to a transient directory, sends them
// with the alert metadata, and removes the directory again on every path.
// Any transport error or non-success status is returned to the caller so
// debounce state stays untouched and the fall is retried on a later frame.
func (c *AlertClient) Dispatch(alert Alert) error {
	tmpDir, err := os.MkdirTemp("", "fall_alert_")
	if err != nil {
		return fmt.Errorf("failed to create evidence dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	beforePath := filepath.Join(tmpDir, "frame_before_fall.jpg")
	fallPath := filepath.Join(tmpDir, "fall_frame.jpg")
	if err := os.WriteFile(beforePath, alert.BeforeFrame, 0644); err != nil {
		return fmt.Errorf("failed to write before frame: %w", err)
	}
	if err := os.WriteFile(fallPath, alert.FallFrame, 0644); err != nil {
		return fmt.Errorf("failed to write fall frame: %w", err)
	}

	location, err := json.Marshal(alert.Location)
	if err != nil {
		return fmt.Errorf("failed to encode location: %w", err)
	}

	beforeFile, err := os.Open(beforePath)
	if err != nil {
		return fmt.Errorf("failed to open before frame: %w", err)
	}
	defer beforeFile.Close()
	fallFile, err := os.Open(fallPath)
	if err != nil {
		return fmt.Errorf("failed to open fall frame: %w", err)
	}
	defer fallFile.Close()

	resp, err := c.httpClient.R().
		SetFormData(map[string]string{
			"timestamp":  alert.Timestamp.Format("2006-01-02 15:04:05"),
			"track_id":   strconv.Itoa(alert.TrackID),
			"confidence": strconv.FormatFloat(alert.Confidence, 'f', -1, 64),
			"location":   string(location),
			"camera_id":  c.cameraID,
		}).
		SetFileReader("images", "frame_before_fall.jpg", beforeFile).
		SetFileReader("images", "fall_frame.jpg", fallFile).
		Post("/fall_alert")
	if err != nil {
		return fmt.Errorf("failed to send alert: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("ingest returned status %d: %s", resp.StatusCode(), resp.String())
	}

	return nil
}
