// Package artifact manages the shared directory of generated audio files.
// Writers get collision-free names so concurrent requests never overwrite
// one another; a time-based sweep removes files whose modification time
// predates the age threshold, which makes it safe to run alongside
// in-flight writes.
package artifact

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const (
	filePermissions = 0o600
	dirPermissions  = 0o750
)

// ErrEmptyArtifact is returned when a written artifact has zero bytes.
var ErrEmptyArtifact = errors.New("artifact is empty")

// Artifact describes one generated audio file.
type Artifact struct {
	// ID is the opaque file identifier (the file name within the store).
	ID string `json:"file_identifier"`

	// ByteSize is the on-disk size of the artifact.
	ByteSize int64 `json:"byte_size"`

	// DurationMinutes is the estimated narration length.
	DurationMinutes float64 `json:"estimated_duration_minutes"`
}

// Store is the artifacts directory.
type Store struct {
	dir string
}

// NewStore creates the directory if needed and returns a store over it.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("artifacts directory cannot be empty")
	}
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return nil, fmt.Errorf("creating artifacts directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's directory path.
func (s *Store) Dir() string { return s.dir }

// Write persists audio bytes under a fresh collision-free name and returns
// the artifact. Zero-byte payloads are rejected.
func (s *Store) Write(audio []byte) (*Artifact, error) {
	if len(audio) == 0 {
		return nil, ErrEmptyArtifact
	}

	id := fmt.Sprintf("audiobook_%s.mp3", uuid.NewString())
	path := filepath.Join(s.dir, id)

	if err := os.WriteFile(path, audio, filePermissions); err != nil {
		return nil, fmt.Errorf("writing artifact: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("validating artifact: %w", err)
	}
	if info.Size() == 0 {
		_ = os.Remove(path)
		return nil, ErrEmptyArtifact
	}

	return &Artifact{ID: id, ByteSize: info.Size()}, nil
}

// Publish relocates an artifact to its stable job-addressed name
// ("<jobID>.mp3") and returns the new identifier. Rename is tried first;
// a copy-then-remove fallback covers cross-device moves.
func (s *Store) Publish(artifactID, jobID string) (string, error) {
	src := filepath.Join(s.dir, artifactID)
	published := jobID + ".mp3"
	dst := filepath.Join(s.dir, published)

	if err := os.Rename(src, dst); err != nil {
		if copyErr := copyFile(src, dst); copyErr != nil {
			return "", fmt.Errorf("publishing artifact: %w", copyErr)
		}
		_ = os.Remove(src)
	}
	return published, nil
}

// Path resolves an artifact identifier to its on-disk path, rejecting
// identifiers that escape the store directory.
func (s *Store) Path(id string) (string, error) {
	if id == "" || id != filepath.Base(id) {
		return "", fmt.Errorf("invalid artifact identifier %q", id)
	}
	path := filepath.Join(s.dir, id)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("artifact not found: %w", err)
	}
	return path, nil
}

// Sweep deletes artifacts whose modification time is older than maxAge and
// returns how many were removed. Files younger than the threshold — which
// includes anything still being written — are always left alone.
func (s *Store) Sweep(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("reading artifacts directory: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			slog.Warn("failed to remove old artifact", "name", entry.Name(), "error", err)
			continue
		}
		removed++
	}

	if removed > 0 {
		slog.Info("artifact sweep complete", "removed", removed)
	}
	return removed, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePermissions)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
