package snapshots

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
)

const manifestName = "manifest.json"

var autosaveName = regexp.MustCompile(`^season-(\d+)-day-(\d+)\.json$`)

// AutosavePath builds the path of the autosave for a season day.
func AutosavePath(dir string, season, day int) string {
	return filepath.Join(dir, fmt.Sprintf("season-%d-day-%d.json", season, day))
}

// parseAutosaveName extracts season and day from an autosave file name.
func parseAutosaveName(name string) (season, day int, ok bool) {
	m := autosaveName.FindStringSubmatch(name)
	if m == nil {
		return 0, 0, false
	}
	season, _ = strconv.Atoi(m[1])
	day, _ = strconv.Atoi(m[2])
	return season, day, true
}
