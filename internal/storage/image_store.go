package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrOutsideStore = errors.New("path is outside the image directory")

// ImageStore keeps uploaded images in a local directory, addressed by
// generated filenames and served statically under /images.
type ImageStore struct {
	dir string
}

func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image directory: %w", err)
	}
	return &ImageStore{dir: dir}, nil
}

func (s *ImageStore) Dir() string {
	return s.dir
}

// NewPath returns a fresh storage path for an upload, keeping the original
// extension so static serving gets the content type right.
func (s *ImageStore) NewPath(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return filepath.ToSlash(filepath.Join(s.dir, uuid.New().String()+ext))
}

// Remove deletes a previously stored image. Best-effort: failures are logged
// by the caller, never surfaced as request failures. Paths outside the image
// directory are refused.
func (s *ImageStore) Remove(path string) error {
	clean := filepath.Clean(filepath.FromSlash(path))
	absDir, err := filepath.Abs(s.dir)
	if err != nil {
		return err
	}
	absPath, err := filepath.Abs(clean)
	if err != nil {
		return err
	}
	if absPath != absDir && !strings.HasPrefix(absPath, absDir+string(filepath.Separator)) {
		return ErrOutsideStore
	}
	if absPath == absDir {
		return ErrOutsideStore
	}
	return os.Remove(absPath)
}

// RemoveLogged is Remove with the error swallowed, for the fire-and-forget
// cleanup sites (superseded upload, deleted post).
func (s *ImageStore) RemoveLogged(path string) {
	if path == "" {
		return
	}
	if err := s.Remove(path); err != nil {
		slog.Warn("Failed to remove image", "path", path, "error", err)
	}
}
