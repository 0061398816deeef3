package allow

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/unrss/envgate/internal/envrc"
)

// writeEntry creates an allow entry for rc in allowDir, containing the given
// path. Tests write entries directly because envgate never manages the
// allow-list itself.
func writeEntry(t *testing.T, allowDir string, rc *envrc.RC, storedPath string) {
	t.Helper()

	if err := os.MkdirAll(allowDir, 0o755); err != nil {
		t.Fatalf("mkdir allow dir: %v", err)
	}
	entry := filepath.Join(allowDir, rc.Fingerprint)
	if err := os.WriteFile(entry, []byte(storedPath+"\n"), 0o644); err != nil {
		t.Fatalf("write allow entry: %v", err)
	}
}

func newTestRC(t *testing.T, dir, content string) *envrc.RC {
	t.Helper()

	path := filepath.Join(dir, ".envrc")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write envrc: %v", err)
	}
	rc, err := envrc.NewRC(path)
	if err != nil {
		t.Fatalf("NewRC: %v", err)
	}
	return rc
}

func TestIsAllowed_NoEntry_ReturnsFalse(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rc := newTestRC(t, dir, "export FOO=bar")

	store := NewStoreWithDir(filepath.Join(dir, "allow"))

	allowed, err := store.IsAllowed(rc)
	if err != nil {
		t.Fatalf("IsAllowed: %v", err)
	}
	if allowed {
		t.Error("IsAllowed = true without an allow entry")
	}
}

func TestIsAllowed_MatchingEntry_ReturnsTrue(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rc := newTestRC(t, dir, "export FOO=bar")
	allowDir := filepath.Join(dir, "allow")

	real, err := rc.RealPath()
	if err != nil {
		t.Fatalf("RealPath: %v", err)
	}
	writeEntry(t, allowDir, rc, real)

	store := NewStoreWithDir(allowDir)

	allowed, err := store.IsAllowed(rc)
	if err != nil {
		t.Fatalf("IsAllowed: %v", err)
	}
	if !allowed {
		t.Error("IsAllowed = false with a matching entry")
	}
}

func TestIsAllowed_PathMismatch_ReturnsFalse(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rc := newTestRC(t, dir, "export FOO=bar")
	allowDir := filepath.Join(dir, "allow")

	// Entry hash matches but it vouches for a different location.
	writeEntry(t, allowDir, rc, "/somewhere/else/.envrc")

	store := NewStoreWithDir(allowDir)

	allowed, err := store.IsAllowed(rc)
	if err != nil {
		t.Fatalf("IsAllowed: %v", err)
	}
	if allowed {
		t.Error("IsAllowed = true for an entry pointing at another path")
	}
}

func TestIsAllowed_ContentChanged_ReturnsFalse(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rc := newTestRC(t, dir, "export FOO=bar")
	allowDir := filepath.Join(dir, "allow")

	real, err := rc.RealPath()
	if err != nil {
		t.Fatalf("RealPath: %v", err)
	}
	writeEntry(t, allowDir, rc, real)

	// Modify the file; the fingerprint no longer names the entry.
	if err := os.WriteFile(rc.Path, []byte("export FOO=evil"), 0o644); err != nil {
		t.Fatalf("rewrite envrc: %v", err)
	}
	changed, err := envrc.NewRC(rc.Path)
	if err != nil {
		t.Fatalf("NewRC: %v", err)
	}

	store := NewStoreWithDir(allowDir)

	allowed, err := store.IsAllowed(changed)
	if err != nil {
		t.Fatalf("IsAllowed: %v", err)
	}
	if allowed {
		t.Error("IsAllowed = true after content change")
	}
}

func TestIsAllowed_SymlinkRetarget_ReturnsFalse(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	original := filepath.Join(dir, "original.envrc")
	replacement := filepath.Join(dir, "replacement.envrc")
	link := filepath.Join(dir, ".envrc")

	// Same content, so the fingerprint stays identical when the link moves.
	for _, p := range []string{original, replacement} {
		if err := os.WriteFile(p, []byte("export FOO=bar"), 0o644); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := os.Symlink(original, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	rc, err := envrc.NewRC(link)
	if err != nil {
		t.Fatalf("NewRC: %v", err)
	}
	allowDir := filepath.Join(dir, "allow")

	real, err := rc.RealPath()
	if err != nil {
		t.Fatalf("RealPath: %v", err)
	}
	writeEntry(t, allowDir, rc, real)

	store := NewStoreWithDir(allowDir)
	if allowed, err := store.IsAllowed(rc); err != nil || !allowed {
		t.Fatalf("IsAllowed before retarget = %v, %v; want true, nil", allowed, err)
	}

	// Retarget the symlink: fingerprint is unchanged but the real path no
	// longer matches the stored one.
	if err := os.Remove(link); err != nil {
		t.Fatalf("remove link: %v", err)
	}
	if err := os.Symlink(replacement, link); err != nil {
		t.Fatalf("retarget link: %v", err)
	}
	retargeted, err := envrc.NewRC(link)
	if err != nil {
		t.Fatalf("NewRC: %v", err)
	}

	allowed, err := store.IsAllowed(retargeted)
	if err != nil {
		t.Fatalf("IsAllowed: %v", err)
	}
	if allowed {
		t.Error("IsAllowed = true after symlink retarget")
	}
}

func TestIsAllowed_MissingFile_ReturnsFalse(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rc, err := envrc.NewRC(filepath.Join(dir, ".envrc"))
	if err != nil {
		t.Fatalf("NewRC: %v", err)
	}

	store := NewStoreWithDir(filepath.Join(dir, "allow"))

	allowed, err := store.IsAllowed(rc)
	if err != nil {
		t.Fatalf("IsAllowed: %v", err)
	}
	if allowed {
		t.Error("IsAllowed = true for a non-existent file")
	}
}

func TestNewStore_UsesXDGDataHome(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	dir := t.TempDir()
	rc := newTestRC(t, dir, "export FOO=bar")

	real, err := rc.RealPath()
	if err != nil {
		t.Fatalf("RealPath: %v", err)
	}
	writeEntry(t, filepath.Join(dataHome, "direnv", "allow"), rc, real)

	store, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	allowed, err := store.IsAllowed(rc)
	if err != nil {
		t.Fatalf("IsAllowed: %v", err)
	}
	if !allowed {
		t.Error("IsAllowed = false for entry under $XDG_DATA_HOME/direnv/allow")
	}
}

func TestIsAllowed_TrimsEntryWhitespace(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rc := newTestRC(t, dir, "export FOO=bar")
	allowDir := filepath.Join(dir, "allow")

	real, err := rc.RealPath()
	if err != nil {
		t.Fatalf("RealPath: %v", err)
	}
	// Extra surrounding whitespace must not defeat the comparison.
	if err := os.MkdirAll(allowDir, 0o755); err != nil {
		t.Fatalf("mkdir allow dir: %v", err)
	}
	entry := filepath.Join(allowDir, rc.Fingerprint)
	if err := os.WriteFile(entry, []byte("  "+real+"\n\n"), 0o644); err != nil {
		t.Fatalf("write allow entry: %v", err)
	}

	store := NewStoreWithDir(allowDir)
	allowed, err := store.IsAllowed(rc)
	if err != nil {
		t.Fatalf("IsAllowed: %v", err)
	}
	if !allowed {
		t.Error("IsAllowed = false for entry with surrounding whitespace")
	}
}
