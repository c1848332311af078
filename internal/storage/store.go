package storage

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ytget/yt-clipper/internal/model"
)

// File permissions
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// StagingDirName is the subdirectory the external tool downloads into before
// a finished file is adopted.
const StagingDirName = "staging"

// Store manages the temporary artifact directory. Each task owns at most one
// artifact file at a time, named by its task id to prevent collisions between
// concurrent tasks.
type Store struct {
	dir string
}

// New creates the store, ensuring both the artifact and staging directories
// exist.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dir, StagingDirName), DefaultDirPermissions); err != nil {
		return nil, fmt.Errorf("%w: create temp dir: %v", model.ErrArtifactIO, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the artifact directory
func (s *Store) Dir() string {
	return s.dir
}

// StagingDir returns the directory downloads are written into before adoption
func (s *Store) StagingDir() string {
	return filepath.Join(s.dir, StagingDirName)
}

// Adopt moves a finished download into the artifact area under the task id,
// preserving the file extension. Falls back to a copy when rename crosses
// filesystems.
func (s *Store) Adopt(taskID, src string) (string, error) {
	dest := filepath.Join(s.dir, taskID+filepath.Ext(src))

	if err := os.Rename(src, dest); err != nil {
		if copyErr := copyFile(src, dest); copyErr != nil {
			return "", fmt.Errorf("%w: adopt %s: %v", model.ErrArtifactIO, src, copyErr)
		}
		if err := os.Remove(src); err != nil {
			log.Printf("Failed to remove staged file %s: %v", src, err)
		}
	}
	return dest, nil
}

// Remove deletes an artifact file. Paths outside the store are refused.
func (s *Store) Remove(path string) error {
	rel, err := filepath.Rel(s.dir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: path %s is outside the store", model.ErrArtifactIO, path)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: remove %s: %v", model.ErrArtifactIO, path, err)
	}
	return nil
}

// Sweep deletes artifacts and staged leftovers older than ttl and returns how
// many files were removed. Covers tasks that completed but were never fetched
// and partials orphaned by crashes.
func (s *Store) Sweep(ttl time.Duration) int {
	removed := 0
	cutoff := time.Now().Add(-ttl)

	for _, dir := range []string{s.dir, s.StagingDir()} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			log.Printf("Sweep: read %s: %v", dir, err)
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			info, err := e.Info()
			if err != nil {
				continue
			}
			if info.ModTime().After(cutoff) {
				continue
			}
			path := filepath.Join(dir, e.Name())
			if err := os.Remove(path); err != nil {
				log.Printf("Sweep: remove %s: %v", path, err)
				continue
			}
			removed++
		}
	}
	return removed
}

// RunSweeper sweeps on every tick until stop is closed.
func (s *Store) RunSweeper(interval, ttl time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if n := s.Sweep(ttl); n > 0 {
				log.Printf("Swept %d expired artifact(s)", n)
			}
		}
	}
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, DefaultFilePermissions)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		os.Remove(dest)
		return err
	}
	return out.Close()
}
