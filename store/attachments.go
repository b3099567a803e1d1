package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// AttachmentStore persists uploaded photos on disk, one directory per
// occurrence id. Files are stored verbatim; size and type policy belongs to
// the callers.
type AttachmentStore struct {
	baseDir string
}

// NewAttachmentStore creates an attachment store rooted at baseDir.
func NewAttachmentStore(baseDir string) *AttachmentStore {
	return &AttachmentStore{baseDir: baseDir}
}

// Save writes data under <baseDir>/<occurrenceID>/<filename> and returns the
// stored path. The filename is reduced to its base to keep uploads inside
// the occurrence directory.
func (s *AttachmentStore) Save(occurrenceID, filename string, data []byte) (string, error) {
	dir := filepath.Join(s.baseDir, occurrenceID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating attachment directory: %w", err)
	}

	path := filepath.Join(dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing attachment %s: %w", path, err)
	}
	return path, nil
}
