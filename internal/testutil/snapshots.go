package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/preston-bernstein/esports-sim/internal/snapshots"
)

// NewTempWriter returns a save writer whose save file and autosave directory
// live in a fresh temp dir.
func NewTempWriter(t *testing.T, retention int) *snapshots.Writer {
	t.Helper()
	dir := t.TempDir()
	return snapshots.NewWriter(filepath.Join(dir, "save.json"), filepath.Join(dir, "autosaves"), retention)
}

// NewTempLoader returns a loader reading the writer's autosave directory.
func NewTempLoader(w *snapshots.Writer) *snapshots.FSStore {
	return snapshots.NewFSStore(w.AutosaveDir())
}

// WriteFile writes raw bytes to path, creating parents, failing the test on error.
func WriteFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
