// Package season drives the simulated calendar. One day step plays the day's
// fixtures, applies their results, develops players, settles contracts and
// salaries, and rolls the season over when its last day has passed.
package season

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/esports-sim/internal/archive"
	"github.com/preston-bernstein/esports-sim/internal/development"
	"github.com/preston-bernstein/esports-sim/internal/domain"
	"github.com/preston-bernstein/esports-sim/internal/economy"
	"github.com/preston-bernstein/esports-sim/internal/generator"
	"github.com/preston-bernstein/esports-sim/internal/logging"
	"github.com/preston-bernstein/esports-sim/internal/metrics"
	"github.com/preston-bernstein/esports-sim/internal/providers"
	"github.com/preston-bernstein/esports-sim/internal/random"
	"github.com/preston-bernstein/esports-sim/internal/simulation"
	"github.com/preston-bernstein/esports-sim/internal/snapshots"
	"github.com/preston-bernstein/esports-sim/internal/store"
)

// ErrNoSeason is returned by day steps before StartNewSeason or Load.
var ErrNoSeason = errors.New("no season in progress")

// Config tunes the calendar and the league economy.
type Config struct {
	LengthDays       int
	TeamCount        int
	MaxRounds        int
	ContractMonths   int
	DailyEventChance float64
	ChemistryPerDay  float64

	StartingBudget     decimal.Decimal
	MonthlySponsorship decimal.Decimal
	LeaguePrizePool    decimal.Decimal
	PlayoffPrizePool   decimal.Decimal

	Simulation  simulation.Config
	Development development.Config
	Economy     economy.Config
}

// DefaultConfig is an eight team, nine month season.
func DefaultConfig() Config {
	return Config{
		LengthDays:         270,
		TeamCount:          8,
		MaxRounds:          24,
		ContractMonths:     12,
		DailyEventChance:   0.05,
		ChemistryPerDay:    0.1,
		StartingBudget:     decimal.NewFromInt(1000000),
		MonthlySponsorship: decimal.NewFromInt(25000),
		LeaguePrizePool:    decimal.NewFromInt(250000),
		PlayoffPrizePool:   decimal.NewFromInt(750000),
		Simulation:         simulation.DefaultConfig(),
		Development:        development.DefaultConfig(),
		Economy:            economy.DefaultConfig(),
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.LengthDays <= 0 {
		c.LengthDays = def.LengthDays
	}
	if c.TeamCount < 2 {
		c.TeamCount = def.TeamCount
	}
	if c.ContractMonths <= 0 {
		c.ContractMonths = def.ContractMonths
	}
	if c.Development.RetirementAge <= 0 {
		c.Development = def.Development
	}
	return c
}

// Deps are the collaborators the orchestrator drives. Store, Pack, and
// Source are required; the rest are optional.
type Deps struct {
	Store   *store.MemoryStore
	Pack    providers.DataPack
	Source  random.Source
	Seed    int64
	Archive archive.Archive
	Writer  *snapshots.Writer
	Loader  snapshots.Loader
	Metrics *metrics.Recorder
	Logger  *slog.Logger
}

// Orchestrator owns the day step. Day steps, saves, and loads are serialized;
// queries read store snapshots and may run concurrently with a step.
type Orchestrator struct {
	mu sync.Mutex

	cfg     Config
	store   *store.MemoryStore
	pack    providers.DataPack
	src     random.Source
	seed    int64
	economy *economy.Engine
	dev     *development.Engine
	gen     *generator.Generator
	archive archive.Archive
	writer  *snapshots.Writer
	loader  snapshots.Loader
	metrics *metrics.Recorder
	logger  *slog.Logger
	now     func() time.Time

	daysSimulated int
	tickInterval  time.Duration
}

// New wires an orchestrator. The pack must be valid; it seeds the generator
// and supplies the map pool.
func New(cfg Config, deps Deps) (*Orchestrator, error) {
	if deps.Store == nil {
		return nil, domain.Errorf(domain.ErrInvalidConfig, "orchestrator needs a store")
	}
	if deps.Source == nil {
		return nil, domain.Errorf(domain.ErrInvalidConfig, "orchestrator needs a random source")
	}
	cfg = cfg.withDefaults()
	if cfg.MaxRounds <= 0 {
		return nil, domain.Errorf(domain.ErrInvalidConfig, "max rounds must be positive, got %d", cfg.MaxRounds)
	}
	arch := deps.Archive
	if arch == nil {
		arch = archive.Nop{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	o := &Orchestrator{
		cfg:     cfg,
		store:   deps.Store,
		pack:    deps.Pack,
		seed:    deps.Seed,
		archive: arch,
		writer:  deps.Writer,
		loader:  deps.Loader,
		metrics: deps.Metrics,
		logger:  logger,
		now:     time.Now,
	}
	if err := o.useSource(deps.Source); err != nil {
		return nil, err
	}
	return o, nil
}

// useSource points every engine at src. The engines share one stream so
// draw order alone fixes the outcome of a seed.
func (o *Orchestrator) useSource(src random.Source) error {
	gen, err := generator.New(o.pack, src)
	if err != nil {
		return err
	}
	o.src = src
	o.gen = gen
	o.economy = economy.New(o.cfg.Economy, o.store, src)
	o.dev = development.New(o.cfg.Development, src)
	return nil
}

// checkpointSeed mixes the day count into the world seed so every save
// point restarts on its own stream.
func checkpointSeed(seed int64, days int) int64 {
	return int64(uint64(seed) ^ uint64(days+1)*0x9E3779B97F4A7C15)
}

// Economy exposes the economy engine for callers that run market actions.
func (o *Orchestrator) Economy() *economy.Engine {
	return o.economy
}

// SetTickInterval records the wall-clock pace for save metadata.
func (o *Orchestrator) SetTickInterval(d time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.tickInterval = d
}

// DaysSimulated counts day steps since the world was created.
func (o *Orchestrator) DaysSimulated() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.daysSimulated
}

func (o *Orchestrator) log(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, o.logger)
}

// budgetRejected logs a budget failure and keeps the loop going. Other
// errors are logged at error level.
func (o *Orchestrator) budgetRejected(ctx context.Context, operation string, err error, args ...any) {
	if domain.IsKind(err, domain.KindBudget) {
		o.metrics.RecordBudgetRejection(operation)
		logging.Warn(o.log(ctx), "budget rejected "+operation, append(args, "err", err)...)
		return
	}
	logging.Error(o.log(ctx), operation+" failed", err, args...)
}
