// Package envrc provides abstractions for .envrc file discovery and fingerprinting.
package envrc

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultName is the file name searched for when none is given.
const DefaultName = ".envrc"

// RC represents a single .envrc file.
type RC struct {
	Path        string // Absolute path to the .envrc
	Dir         string // Directory containing the .envrc
	Exists      bool   // Whether the file currently exists
	Fingerprint string // SHA256(absolutePath + "\n" + content), empty if !Exists
}

// NewRC creates an RC from a path, computing the fingerprint if the file exists.
// A missing file is not an error; Exists is false and the fingerprint is empty.
// A file that exists but cannot be read is an error.
func NewRC(path string) (*RC, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}

	if _, err := os.Lstat(absPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &RC{
				Path:   absPath,
				Dir:    filepath.Dir(absPath),
				Exists: false,
			}, nil
		}
		return nil, fmt.Errorf("stat %s: %w", absPath, err)
	}

	fingerprint, err := fingerprintFile(absPath)
	if err != nil {
		return nil, err
	}

	return &RC{
		Path:        absPath,
		Dir:         filepath.Dir(absPath),
		Exists:      true,
		Fingerprint: fingerprint,
	}, nil
}

// RealPath returns the symlink-resolved path of the file.
func (rc *RC) RealPath() (string, error) {
	resolved, err := filepath.EvalSymlinks(rc.Path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", rc.Path, err)
	}
	return resolved, nil
}

// fingerprintFile computes SHA256 of (absolute path + "\n" + content),
// rendered as lowercase hex. Hashing the path alongside the content means a
// byte-identical file at another location gets a different fingerprint.
func fingerprintFile(absPath string) (string, error) {
	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("read file %s: %w", absPath, err)
	}

	h := sha256.New()
	h.Write([]byte(absPath))
	h.Write([]byte("\n"))
	h.Write(content)

	return hex.EncodeToString(h.Sum(nil)), nil
}
