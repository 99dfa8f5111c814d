package server

import (
	"errors"
	"log/slog"

	"github.com/preston-bernstein/esports-sim/internal/config"
	"github.com/preston-bernstein/esports-sim/internal/domain"
	"github.com/preston-bernstein/esports-sim/internal/logging"
	"github.com/preston-bernstein/esports-sim/internal/snapshots"
)

type snapshotComponents struct {
	writer *snapshots.Writer
	loader *snapshots.FSStore
}

func buildSnapshots(cfg config.Config) snapshotComponents {
	p := cfg.Persistence
	return snapshotComponents{
		writer: snapshots.NewWriter(p.SavePath, p.AutosaveDir, p.AutosaveRetention),
		loader: snapshots.NewFSStore(p.AutosaveDir),
	}
}

// newestSave picks whichever of the explicit save and the latest autosave has
// simulated more days. Unreadable candidates are skipped with a warning.
func (c snapshotComponents) newestSave(savePath string, logger *slog.Logger) (string, bool) {
	var (
		best     string
		bestDays = -1
	)
	if doc, err := c.loader.Load(savePath); err == nil {
		best, bestDays = savePath, doc.Clock.DaysSimulated
	} else if !errors.Is(err, domain.ErrSaveNotFound) {
		logging.Warn(logger, "ignoring unreadable save", logging.FieldFile, savePath, "err", err)
	}
	if doc, path, err := c.loader.LatestAutosave(); err == nil {
		if doc.Clock.DaysSimulated > bestDays {
			best, bestDays = path, doc.Clock.DaysSimulated
		}
	} else if !errors.Is(err, domain.ErrSaveNotFound) {
		logging.Warn(logger, "ignoring unreadable autosave", "err", err)
	}
	return best, bestDays >= 0
}
