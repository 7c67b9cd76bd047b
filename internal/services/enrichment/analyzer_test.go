package enrichment

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImage(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestClient_Describe(t *testing.T) {
	before := writeImage(t, "before.jpg", "before-img")
	fall := writeImage(t, "fall.jpg", "fall-img")

	var captured chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"Yes, the person fell near the table."}}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "gpt-4o-mini")
	description, err := client.Describe(before, fall)
	require.NoError(t, err)
	assert.Equal(t, "Yes, the person fell near the table.", description)

	require.Len(t, captured.Messages, 1)
	parts := captured.Messages[0].Content
	require.Len(t, parts, 3)

	assert.Equal(t, "text", parts[0].Type)
	assert.Contains(t, parts[0].Text, "show a fall")
	// Images attached in order: before first, fall second.
	assert.True(t, strings.HasPrefix(parts[1].ImageURL.URL, "data:image/jpeg;base64,"))
	assert.Contains(t, parts[1].ImageURL.URL, "YmVmb3JlLWltZw==") // "before-img"
	assert.Contains(t, parts[2].ImageURL.URL, "ZmFsbC1pbWc=")     // "fall-img"
	assert.Equal(t, "gpt-4o-mini", captured.Model)
	assert.Equal(t, maxTokens, captured.MaxTokens)
}

func TestClient_Describe_ServiceError(t *testing.T) {
	before := writeImage(t, "before.jpg", "x")
	fall := writeImage(t, "fall.jpg", "y")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "gpt-4o-mini")
	_, err := client.Describe(before, fall)
	assert.Error(t, err)
}

func TestClient_Describe_MissingImage(t *testing.T) {
	client := NewClient("http://localhost:0", "test-key", "gpt-4o-mini")
	_, err := client.Describe("/nonexistent/before.jpg", "/nonexistent/fall.jpg")
	assert.Error(t, err)
}
