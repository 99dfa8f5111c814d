package snapshots

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/preston-bernstein/esports-sim/internal/domain"
)

// Loader defines how save documents are read back.
type Loader interface {
	Load(path string) (Document, error)
	LatestAutosave() (Document, string, error)
}

// FSStore loads save documents from the filesystem.
type FSStore struct {
	autosaveDir string
}

// NewFSStore constructs a loader that also knows the autosave directory.
func NewFSStore(autosaveDir string) *FSStore {
	return &FSStore{autosaveDir: autosaveDir}
}

// Load reads and decodes the document at path. A missing file is
// ErrSaveNotFound; undecodable or inconsistent content is ErrCorruptSave.
func (s *FSStore) Load(path string) (Document, error) {
	if path == "" {
		return Document{}, domain.Errorf(domain.ErrSaveNotFound, "no save path")
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Document{}, domain.Wrap(domain.ErrSaveNotFound, err, "%s", path)
		}
		return Document{}, domain.Wrap(domain.ErrCorruptSave, err, "open %s", path)
	}
	defer f.Close()

	var doc Document
	dec := json.NewDecoder(f)
	if err := dec.Decode(&doc); err != nil {
		return Document{}, domain.Wrap(domain.ErrCorruptSave, err, "decode %s", path)
	}
	if err := validate(doc); err != nil {
		return Document{}, domain.Wrap(domain.ErrCorruptSave, err, "%s", path)
	}
	return doc, nil
}

// LatestAutosave loads the most recent autosave by season and day.
func (s *FSStore) LatestAutosave() (Document, string, error) {
	if s == nil || s.autosaveDir == "" {
		return Document{}, "", domain.Errorf(domain.ErrSaveNotFound, "autosave directory not configured")
	}
	w := &Writer{autosaveDir: s.autosaveDir}
	entries, err := w.listAutosaves()
	if err != nil {
		return Document{}, "", domain.Wrap(domain.ErrCorruptSave, err, "list autosaves")
	}
	if len(entries) == 0 {
		return Document{}, "", domain.Errorf(domain.ErrSaveNotFound, "no autosaves in %s", s.autosaveDir)
	}
	path := filepath.Join(s.autosaveDir, entries[len(entries)-1].File)
	doc, err := s.Load(path)
	return doc, path, err
}

// validate catches documents that decode but cannot describe a world.
func validate(doc Document) error {
	if doc.Version == 0 || doc.Version > FormatVersion {
		return errors.New("unsupported save version")
	}
	season := doc.State.Season
	if season.LengthDays <= 0 || season.DaysPassed < 0 {
		return errors.New("invalid season calendar")
	}
	teamIDs := make(map[string]struct{}, len(doc.State.Teams))
	for _, t := range doc.State.Teams {
		if t.ID == "" {
			return errors.New("team without id")
		}
		teamIDs[t.ID] = struct{}{}
	}
	for _, p := range doc.State.Players {
		if p.ID == "" {
			return errors.New("player without id")
		}
		if p.TeamID != "" {
			if _, ok := teamIDs[p.TeamID]; !ok {
				return errors.New("player on unknown team " + p.TeamID)
			}
		}
	}
	return nil
}
