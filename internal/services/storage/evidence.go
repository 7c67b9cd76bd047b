package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// EvidenceStore persists uploaded evidence images under a per-incident
// folder. Folder names carry a random suffix so two alerts landing in the
// same second (even for the same track) can never overwrite each other.
type EvidenceStore struct {
	baseDir string
}

// NewEvidenceStore creates a store rooted at baseDir, creating it if needed.
func NewEvidenceStore(baseDir string) (*EvidenceStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create evidence directory: %w", err)
	}
	return &EvidenceStore{baseDir: baseDir}, nil
}

// Save writes the images for one alert, in the given order, into a freshly
// allocated incident folder and returns their paths in the same order. On
// any write failure the partial folder is removed so no half-saved evidence
// remains.
func (s *EvidenceStore) Save(trackID string, receivedAt time.Time, images []io.Reader) ([]string, error) {
	folder := fmt.Sprintf("%s_track%s_%s",
		receivedAt.Format("20060102_150405"), trackID, uuid.NewString()[:8])
	dir := filepath.Join(s.baseDir, folder)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create incident folder: %w", err)
	}

	paths := make([]string, 0, len(images))
	for i, image := range images {
		name := fmt.Sprintf("track_%s_frame_%d.jpg", trackID, i)
		path := filepath.Join(dir, name)

		if err := s.writeImage(path, image); err != nil {
			os.RemoveAll(dir)
			return nil, fmt.Errorf("failed to save image %s: %w", name, err)
		}
		paths = append(paths, path)
	}

	return paths, nil
}

// BaseDir returns the root directory evidence is stored under.
func (s *EvidenceStore) BaseDir() string {
	return s.baseDir
}

func (s *EvidenceStore) writeImage(path string, image io.Reader) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := io.Copy(file, image); err != nil {
		return err
	}
	return file.Sync()
}
