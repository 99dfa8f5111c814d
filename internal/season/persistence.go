package season

import (
	"context"

	"github.com/preston-bernstein/esports-sim/internal/domain"
	"github.com/preston-bernstein/esports-sim/internal/logging"
	"github.com/preston-bernstein/esports-sim/internal/random"
	"github.com/preston-bernstein/esports-sim/internal/snapshots"
)

// Save writes the world to the configured save path.
func (o *Orchestrator) Save(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.writer == nil {
		return domain.Errorf(domain.ErrSaveFailed, "no save writer configured")
	}
	doc := o.document()
	if err := o.writer.Save(doc); err != nil {
		logging.Error(o.log(ctx), "save failed", err, logging.FieldFile, o.writer.SavePath())
		return err
	}
	logging.Info(o.log(ctx), "world saved",
		logging.FieldFile, o.writer.SavePath(),
		logging.FieldSeason, doc.Season(),
		logging.FieldDay, doc.Day(),
	)
	return nil
}

// Autosave writes a rolling autosave and returns its path.
func (o *Orchestrator) Autosave(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.writer == nil {
		return "", domain.Errorf(domain.ErrSaveFailed, "no save writer configured")
	}
	path, err := o.writer.Autosave(o.document())
	if err != nil {
		logging.Error(o.log(ctx), "autosave failed", err)
		return "", err
	}
	o.metrics.RecordAutosave()
	logging.Info(o.log(ctx), "autosaved", logging.FieldFile, path)
	return path, nil
}

// Load replaces the world with the document at path. On any error the
// in-memory world is left as it was.
func (o *Orchestrator) Load(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if o.loader == nil {
		return domain.Errorf(domain.ErrSaveNotFound, "no save loader configured")
	}
	doc, err := o.loader.Load(path)
	if err != nil {
		return err
	}
	o.restore(ctx, doc, path)
	return nil
}

// LoadLatestAutosave restores the newest autosave and returns its path.
func (o *Orchestrator) LoadLatestAutosave(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if o.loader == nil {
		return "", domain.Errorf(domain.ErrSaveNotFound, "no save loader configured")
	}
	doc, path, err := o.loader.LatestAutosave()
	if err != nil {
		return "", err
	}
	o.restore(ctx, doc, path)
	return path, nil
}

func (o *Orchestrator) restore(ctx context.Context, doc snapshots.Document, path string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.store.Replace(doc.State)
	o.daysSimulated = doc.Clock.DaysSimulated
	if doc.Clock.Seed != 0 {
		o.seed = doc.Clock.Seed
	}
	// The live stream is not in the save; restart it from the saved seed
	// and day count so a save always plays on the same way.
	if !random.Reseed(o.src, checkpointSeed(o.seed, o.daysSimulated)) {
		logging.Warn(o.log(ctx), "random source cannot be reseeded; continuing the live stream")
	}
	logging.Info(o.log(ctx), "world loaded",
		logging.FieldFile, path,
		logging.FieldSeason, doc.Season(),
		logging.FieldDay, doc.Day(),
	)
}

func (o *Orchestrator) document() snapshots.Document {
	return snapshots.NewDocument(o.store.Export(), o.clockMeta(), o.now())
}

func (o *Orchestrator) clockMeta() snapshots.ClockMeta {
	meta := snapshots.ClockMeta{Seed: o.seed, DaysSimulated: o.daysSimulated}
	if o.tickInterval > 0 {
		meta.TickInterval = o.tickInterval.String()
	}
	return meta
}
