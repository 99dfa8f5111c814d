package server

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/esports-sim/internal/archive"
	"github.com/preston-bernstein/esports-sim/internal/config"
	"github.com/preston-bernstein/esports-sim/internal/logging"
	"github.com/preston-bernstein/esports-sim/internal/random"
	"github.com/preston-bernstein/esports-sim/internal/season"
)

// seasonConfig overlays configured values on the season defaults. Zero values
// keep the default so partial configs stay runnable.
func seasonConfig(cfg config.Config) season.Config {
	sc := season.DefaultConfig()
	setInt(&sc.LengthDays, cfg.Season.LengthDays)
	setInt(&sc.TeamCount, cfg.Season.TeamCount)
	setInt(&sc.MaxRounds, cfg.Simulation.MaxRounds)
	setFloat(&sc.DailyEventChance, cfg.Season.DailyEventChance)
	setFloat(&sc.ChemistryPerDay, cfg.Season.ChemistryPerDay)
	setMoney(&sc.LeaguePrizePool, cfg.Season.LeaguePrizePool)
	setMoney(&sc.PlayoffPrizePool, cfg.Season.PlayoffPrizePool)
	setMoney(&sc.StartingBudget, cfg.Economy.StartingBudget)
	setMoney(&sc.MonthlySponsorship, cfg.Economy.MonthlySponsorship)

	setInt(&sc.Simulation.OvertimeRounds, cfg.Simulation.OvertimeRounds)
	setInt(&sc.Simulation.MaxOvertimes, cfg.Simulation.MaxOvertimes)
	setInt(&sc.Simulation.MomentumCap, cfg.Simulation.MomentumCap)
	setFloat(&sc.Simulation.MomentumWeight, cfg.Simulation.MomentumWeight)
	setFloat(&sc.Simulation.MinRoundChance, cfg.Simulation.MinRoundChance)

	setInt(&sc.Development.RetirementAge, cfg.Season.RetirementAge)

	setInt(&sc.Economy.TerminationMultiplier, cfg.Economy.TerminationMultiplier)
	setInt(&sc.Economy.ListingDeadlineDays, cfg.Economy.ListingDeadlineDays)
	setMoney(&sc.Economy.MarketValueScale, cfg.Economy.MarketValueScale)
	setMoney(&sc.Economy.MarketValueFloor, cfg.Economy.MarketValueFloor)
	setFloat(&sc.Economy.PrimeAge, cfg.Economy.PrimeAge)
	return sc
}

func setInt(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}

func setFloat(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}

func setMoney(dst *decimal.Decimal, v float64) {
	if v > 0 {
		*dst = decimal.NewFromFloat(v)
	}
}

// resolveSeed keeps a configured seed, otherwise draws a fresh one.
func resolveSeed(cfg config.Config) (int64, error) {
	if cfg.Clock.Seed != 0 {
		return cfg.Clock.Seed, nil
	}
	return random.NewSeed()
}

// openArchive falls back to the no-op archive when no driver is configured
// or the database cannot be opened.
func openArchive(ctx context.Context, cfg config.Config, logger *slog.Logger) archive.Archive {
	if cfg.Archive.Driver == "" {
		return archive.Nop{}
	}
	a, err := archive.Open(ctx, archive.Dialect(cfg.Archive.Driver), cfg.Archive.DSN)
	if err != nil {
		logging.Warn(logger, "match archive unavailable, history disabled", "driver", cfg.Archive.Driver, "err", err)
		return archive.Nop{}
	}
	return a
}

// bootWorld resumes from the newest save when asked to, otherwise starts
// season one.
func bootWorld(ctx context.Context, cfg config.Config, orch *season.Orchestrator, snaps snapshotComponents, logger *slog.Logger) error {
	if cfg.Persistence.LoadOnStart {
		if path, ok := snaps.newestSave(cfg.Persistence.SavePath, logger); ok {
			err := orch.Load(ctx, path)
			if err == nil {
				return nil
			}
			logging.Warn(logger, "resume failed, starting a new world", logging.FieldFile, path, "err", err)
		}
	}
	year := cfg.Season.StartYear
	if year <= 0 {
		year = defaultStartYear
	}
	return orch.StartNewSeason(ctx, 1, year)
}
