package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// DoneDir is the archive directory below the data path.
const DoneDir = "done"

// archiveName returns the archive location of a processed file:
// <dataPath>/done/<yyyyMMdd>/<kind>-<yyyyMMdd-HHmmss>-<id>.
func archiveName(dataPath string, kind Kind, at time.Time) string {
	id := uuid.New().String()[:8]
	name := fmt.Sprintf("%s-%s-%s", kind, at.Format("20060102-150405"), id)
	return filepath.Join(dataPath, DoneDir, at.Format("20060102"), name)
}

// archive moves path into the done directory and returns the new location.
func archive(dataPath string, kind Kind, path string, at time.Time) (string, error) {
	dst := archiveName(dataPath, kind, at)

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}
	if err := os.Rename(path, dst); err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", path, err)
	}

	return dst, nil
}
