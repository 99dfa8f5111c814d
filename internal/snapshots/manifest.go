package snapshots

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Manifest tracks autosave metadata.
type Manifest struct {
	Version     int             `json:"version"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Retention   Retention       `json:"retention"`
	Autosaves   []AutosaveEntry `json:"autosaves"`
}

type Retention struct {
	Count int `json:"count"`
}

// AutosaveEntry describes one retained autosave, oldest first in the manifest.
type AutosaveEntry struct {
	File    string    `json:"file"`
	Season  int       `json:"season"`
	Day     int       `json:"day"`
	SavedAt time.Time `json:"savedAt"`
}

func defaultManifest(retention int) Manifest {
	return Manifest{
		Version:     FormatVersion,
		GeneratedAt: time.Now().UTC(),
		Retention:   Retention{Count: retention},
		Autosaves:   []AutosaveEntry{},
	}
}

func readManifest(path string, retention int) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return defaultManifest(retention), err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(retention), err
	}
	return m, nil
}

func writeManifest(dir string, m Manifest) error {
	m.GeneratedAt = time.Now().UTC()
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(filepath.Join(dir, manifestName), data)
}

// writeAtomic writes through a temp file and rename so readers never see a partial file.
func writeAtomic(target string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
