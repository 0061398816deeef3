package envrc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by Find in strict mode when no matching file exists
// in any ancestor directory.
var ErrNotFound = errors.New("file not found")

// Find searches increasingly higher directories for filename.
//
// The walk starts at start: a directory is used as-is, a file means its
// containing directory, and the empty string means the current working
// directory. At each level dir/filename is checked; the first match wins.
// The walk stops at the filesystem root (parent(dir) == dir).
//
// If nothing matches, Find returns ErrNotFound when strict is set, otherwise
// the empty string with a nil error. A start path that does not exist is
// always an error.
func Find(filename, start string, strict bool) (string, error) {
	if filename == "" {
		filename = DefaultName
	}

	if start == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		start = cwd
	}

	info, err := os.Stat(start)
	if err != nil {
		return "", fmt.Errorf("starting path not found: %s: %w", start, err)
	}
	if !info.IsDir() {
		start = filepath.Dir(start)
	}

	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("absolute path: %w", err)
	}

	for {
		candidate := filepath.Join(dir, filename)
		if isFile(candidate) {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if strict {
		return "", fmt.Errorf("%s: %w", filename, ErrNotFound)
	}
	return "", nil
}

// isFile reports whether path names a regular file, following symlinks.
func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
