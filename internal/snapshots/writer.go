package snapshots

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/preston-bernstein/esports-sim/internal/domain"
)

const defaultRetention = 10

// Writer persists save documents and rolling autosaves with count-based pruning.
type Writer struct {
	savePath    string
	autosaveDir string
	retention   int
	now         func() time.Time
}

// NewWriter constructs a writer for the main save path and an autosave directory.
func NewWriter(savePath, autosaveDir string, retention int) *Writer {
	if retention <= 0 {
		retention = defaultRetention
	}
	return &Writer{
		savePath:    savePath,
		autosaveDir: autosaveDir,
		retention:   retention,
		now:         time.Now,
	}
}

// SavePath exposes the main save location.
func (w *Writer) SavePath() string {
	if w == nil {
		return ""
	}
	return w.savePath
}

// AutosaveDir exposes the autosave directory.
func (w *Writer) AutosaveDir() string {
	if w == nil {
		return ""
	}
	return w.autosaveDir
}

// Save writes doc to the main save path.
func (w *Writer) Save(doc Document) error {
	if w == nil || w.savePath == "" {
		return domain.Errorf(domain.ErrSaveFailed, "save path not configured")
	}
	return w.write(w.savePath, doc)
}

// Autosave writes doc under the autosave directory, records it in the
// manifest, and prunes the oldest autosaves beyond the retention count.
func (w *Writer) Autosave(doc Document) (string, error) {
	if w == nil || w.autosaveDir == "" {
		return "", domain.Errorf(domain.ErrSaveFailed, "autosave directory not configured")
	}
	target := AutosavePath(w.autosaveDir, doc.Season(), doc.Day())
	if err := w.write(target, doc); err != nil {
		return "", err
	}
	if err := w.updateManifest(filepath.Base(target), doc); err != nil {
		return target, domain.Wrap(domain.ErrSaveFailed, err, "update autosave manifest")
	}
	return target, nil
}

func (w *Writer) write(target string, doc Document) error {
	if doc.Version == 0 {
		doc.Version = FormatVersion
	}
	if doc.SavedAt.IsZero() {
		doc.SavedAt = w.now().UTC()
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return domain.Wrap(domain.ErrSaveFailed, err, "encode save")
	}
	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return nil
	}
	if err := writeAtomic(target, data); err != nil {
		return domain.Wrap(domain.ErrSaveFailed, err, "write %s", target)
	}
	return nil
}

func (w *Writer) updateManifest(file string, doc Document) error {
	manifestPath := filepath.Join(w.autosaveDir, manifestName)
	m, _ := readManifest(manifestPath, w.retention)

	entries, err := w.listAutosaves()
	if err != nil {
		return err
	}
	known := make(map[string]AutosaveEntry, len(m.Autosaves))
	for _, e := range m.Autosaves {
		known[e.File] = e
	}
	for i, e := range entries {
		if prev, ok := known[e.File]; ok {
			entries[i].SavedAt = prev.SavedAt
		}
		if e.File == file {
			entries[i].SavedAt = doc.SavedAt
		}
	}

	m.Autosaves = w.prune(entries)
	m.Retention.Count = w.retention
	return writeManifest(w.autosaveDir, m)
}

// listAutosaves returns autosave files ordered by season then day.
func (w *Writer) listAutosaves() ([]AutosaveEntry, error) {
	dirEntries, err := os.ReadDir(w.autosaveDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []AutosaveEntry{}, nil
		}
		return nil, err
	}
	var out []AutosaveEntry
	for _, e := range dirEntries {
		if e.IsDir() {
			continue
		}
		season, day, ok := parseAutosaveName(e.Name())
		if !ok {
			continue
		}
		out = append(out, AutosaveEntry{File: e.Name(), Season: season, Day: day})
	}
	sortEntries(out)
	return out, nil
}

func sortEntries(entries []AutosaveEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Season != entries[j].Season {
			return entries[i].Season < entries[j].Season
		}
		return entries[i].Day < entries[j].Day
	})
}

// prune removes the oldest files beyond retention and returns the survivors.
func (w *Writer) prune(entries []AutosaveEntry) []AutosaveEntry {
	if len(entries) <= w.retention {
		return entries
	}
	cut := len(entries) - w.retention
	for _, e := range entries[:cut] {
		_ = os.Remove(filepath.Join(w.autosaveDir, e.File))
	}
	return append([]AutosaveEntry(nil), entries[cut:]...)
}
