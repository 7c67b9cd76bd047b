package enrichment

import (
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

// Prompt sent to the vision service together with the two evidence images.
const analysisPrompt = "Do these images show a fall? Provide context about the situation."

const maxTokens = 300

// Analyzer produces a natural-language description of a fall from its two
// evidence images.
type Analyzer interface {
	Describe(beforePath, fallPath string) (string, error)
}

// Client calls an OpenAI-compatible chat completions endpoint with the two
// evidence images attached as base64 data URLs, ordered before then fall.
type Client struct {
	httpClient *resty.Client
	model      string
}

// NewClient creates an analysis client for the service at baseURL.
func NewClient(baseURL, apiKey, model string) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(60 * time.Second).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient: client,
		model:      model,
	}
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Describe asks the vision service whether the two images show a fall.
func (c *Client) Describe(beforePath, fallPath string) (string, error) {
	beforeURL, err := encodeImage(beforePath)
	if err != nil {
		return "", err
	}
	fallURL, err := encodeImage(fallPath)
	if err != nil {
		return "", err
	}

	request := chatRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages: []chatMessage{{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: analysisPrompt},
				{Type: "image_url", ImageURL: &imageURL{URL: beforeURL}},
				{Type: "image_url", ImageURL: &imageURL{URL: fallURL}},
			},
		}},
	}

	var response chatResponse
	resp, err := c.httpClient.R().
		SetBody(request).
		SetResult(&response).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("failed to call analysis service: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("analysis service returned status %d: %s", resp.StatusCode(), resp.String())
	}
	if response.Error != nil {
		return "", fmt.Errorf("analysis service error: %s", response.Error.Message)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("analysis service returned no choices")
	}

	return response.Choices[0].Message.Content, nil
}

func encodeImage(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image %s: %w", path, err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data), nil
}
