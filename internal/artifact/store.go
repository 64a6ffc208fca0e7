// Package artifact manages the scratch directory where compression inputs
// and outputs live: collision-proof naming, size accounting, and retention.
package artifact

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// Role tags embedded in artifact filenames.
const (
	RoleInput      = "input"
	RoleCompressed = "compressed"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Store owns a scratch directory on an afero filesystem. Artifact names are
// derived from the upload's filename plus a random suffix, so two uploads
// with identical names never collide.
type Store struct {
	fs     afero.Fs
	dir    string
	logger *slog.Logger
}

// NewStore ensures the scratch directory exists and returns a Store over it.
func NewStore(fs afero.Fs, dir string, logger *slog.Logger) (*Store, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create scratch dir %s: %w", dir, err)
	}
	return &Store{fs: fs, dir: dir, logger: logger}, nil
}

// Dir returns the scratch directory path.
func (s *Store) Dir() string { return s.dir }

// NewName builds a unique artifact filename: sanitized base, role tag,
// random suffix, original extension.
func (s *Store) NewName(original, role string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("%s_%s_%s%s", sanitizeBase(original), role, uuid.New().String(), ext)
}

// SaveInput writes upload bytes under a fresh input-role name and returns
// the artifact path.
func (s *Store) SaveInput(originalName string, data []byte) (string, error) {
	path := filepath.Join(s.dir, s.NewName(originalName, RoleInput))
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return "", fmt.Errorf("write artifact %s: %w", path, err)
	}
	return path, nil
}

// NewOutput reserves an output-role name for the given upload and returns
// both the artifact path and the bare filename used in download URLs.
// The converter always produces a PDF, whatever the input extension claimed.
func (s *Store) NewOutput(originalName string) (path, name string) {
	name = fmt.Sprintf("%s_%s_%s.pdf", sanitizeBase(originalName), RoleCompressed, uuid.New().String())
	return filepath.Join(s.dir, name), name
}

// Size returns the on-disk size of an artifact.
func (s *Store) Size(path string) (int64, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat artifact %s: %w", path, err)
	}
	return info.Size(), nil
}

// Remove deletes an artifact. A missing file is not an error: callers
// release inputs on every exit path and may race the janitor.
func (s *Store) Remove(path string) error {
	if err := s.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove artifact %s: %w", path, err)
	}
	return nil
}

// SweepOlderThan removes every artifact whose mtime is before cutoff and
// returns how many were deleted. Per-file failures are logged and skipped.
func (s *Store) SweepOlderThan(cutoff time.Time) (int, error) {
	infos, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return 0, fmt.Errorf("read scratch dir %s: %w", s.dir, err)
	}

	removed := 0
	for _, info := range infos {
		if info.IsDir() || !info.ModTime().Before(cutoff) {
			continue
		}
		path := filepath.Join(s.dir, info.Name())
		if err := s.fs.Remove(path); err != nil {
			s.logger.Warn("sweep could not remove artifact", "path", path, "error", err)
			continue
		}
		removed++
	}
	return removed, nil
}

// HTTPDir exposes the scratch directory as an http.FileSystem for the
// artifact download route.
func (s *Store) HTTPDir() http.FileSystem {
	return afero.NewHttpFs(s.fs).Dir(s.dir)
}

// sanitizeBase reduces an upload filename to a path-safe base: the extension
// and any directory components are dropped, anything outside [A-Za-z0-9_-]
// collapses to an underscore.
func sanitizeBase(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = unsafeChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "_")
	if base == "" {
		return "upload"
	}
	return base
}
