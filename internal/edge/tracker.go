package edge

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"fallguard/internal/models"
)

// Tracker is the external detection-and-tracking model: given one frame it
// returns the tracked person boxes, with track IDs stable across frames.
type Tracker interface {
	Track(frame []byte) ([]models.TrackedBox, error)
}

type trackRequest struct {
	Image    string `json:"image"` // base64 JPEG
	CameraID string `json:"camera_id"`
}

type trackResponse struct {
	ErrMsg string              `json:"err_msg"`
	Boxes  []models.TrackedBox `json:"boxes"`
}

// InferenceClient talks to a tracking inference service over HTTP.
type InferenceClient struct {
	httpClient *resty.Client
	cameraID   string
}

// NewInferenceClient creates a client for the inference service at baseURL.
func NewInferenceClient(baseURL, cameraID string) *InferenceClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &InferenceClient{
		httpClient: client,
		cameraID:   cameraID,
	}
}

// Track sends the frame to the inference service and decodes the tracked
// boxes for it.
func (c *InferenceClient) Track(frame []byte) ([]models.TrackedBox, error) {
	request := trackRequest{
		Image:    base64.StdEncoding.EncodeToString(frame),
		CameraID: c.cameraID,
	}

	var response trackResponse
	resp, err := c.httpClient.R().
		SetBody(request).
		SetResult(&response).
		Post("/track")
	if err != nil {
		return nil, fmt.Errorf("failed to call tracker: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("tracker returned status %d: %s", resp.StatusCode(), resp.String())
	}
	if response.ErrMsg != "" && response.ErrMsg != "success" {
		return nil, fmt.Errorf("tracker error: %s", response.ErrMsg)
	}

	return response.Boxes, nil
}
