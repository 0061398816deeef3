// Package allow checks .envrc files against the direnv allow-list.
//
// The allow-list lives at $XDG_DATA_HOME/direnv/allow/ (or
// ~/.local/share/direnv/allow/) and is produced by direnv itself; envgate only
// reads it. Each entry is a plain text file named by the fingerprint of the
// trusted file and containing that file's resolved real path.
package allow

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/unrss/envgate/internal/envrc"
)

// NotAllowedError indicates a file was found but is not present in the
// allow-list, or its allow entry no longer points at the file. This is the
// security gate: callers must not execute the file.
type NotAllowedError struct {
	Path string
}

func (e *NotAllowedError) Error() string {
	return fmt.Sprintf("file is not allowed by direnv: %s", e.Path)
}

// Store reads allow entries from a direnv allow directory.
type Store struct {
	dir string // e.g. ~/.local/share/direnv/allow/
}

// NewStore creates a Store over the XDG-compliant allow directory.
// Uses $XDG_DATA_HOME/direnv/allow/ or ~/.local/share/direnv/allow/.
func NewStore() (*Store, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return NewStoreWithDir(filepath.Join(dataHome, "direnv", "allow")), nil
}

// NewStoreWithDir creates a Store over a custom allow directory (for testing).
func NewStoreWithDir(dir string) *Store {
	return &Store{dir: dir}
}

// IsAllowed reports whether the file may be executed.
//
// A file is allowed iff an entry named by its current fingerprint exists AND
// the entry's trimmed content equals the file's symlink-resolved real path.
// The double check keeps a stale entry (same content, different location) or
// a moved file from silently retaining trust. A missing or mismatched entry
// is not an error; it simply means "not allowed".
func (s *Store) IsAllowed(rc *envrc.RC) (bool, error) {
	if !rc.Exists || rc.Fingerprint == "" {
		return false, nil
	}

	entry := filepath.Join(s.dir, rc.Fingerprint)
	content, err := os.ReadFile(entry)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read allow entry: %w", err)
	}

	realPath, err := rc.RealPath()
	if err != nil {
		return false, fmt.Errorf("resolve real path: %w", err)
	}

	return strings.TrimSpace(string(content)) == realPath, nil
}

// EntryPath returns the allow entry path for an RC, whether or not the entry
// exists. Useful for diagnostics.
func (s *Store) EntryPath(rc *envrc.RC) string {
	if rc.Fingerprint == "" {
		return ""
	}
	return filepath.Join(s.dir, rc.Fingerprint)
}
