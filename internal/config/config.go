package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds runtime configuration for the simulator service.
type Config struct {
	Port            string        `env:"PORT" envDefault:"4000"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"text"`
	Version         string        `env:"SERVICE_VERSION" envDefault:"dev"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
	CORSOrigins     []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	Clock       ClockConfig
	Season      SeasonConfig
	Simulation  SimulationConfig
	Economy     EconomyConfig
	Persistence PersistenceConfig
	Archive     ArchiveConfig
	DataPack    DataPackConfig
	Metrics     MetricsConfig
}

// ClockConfig drives the wall-clock runner that advances simulated days.
type ClockConfig struct {
	TickInterval      time.Duration `env:"CLOCK_TICK_INTERVAL" envDefault:"2s"`
	AutoStart         bool          `env:"CLOCK_AUTOSTART" envDefault:"true"`
	Seed              int64         `env:"SIM_SEED" envDefault:"0"`
	AutosaveEveryDays int           `env:"AUTOSAVE_EVERY_DAYS" envDefault:"7"`
}

// SeasonConfig shapes the league calendar.
type SeasonConfig struct {
	LengthDays       int     `env:"SEASON_LENGTH_DAYS" envDefault:"270"`
	TeamCount        int     `env:"SEASON_TEAM_COUNT" envDefault:"8"`
	StartYear        int     `env:"SEASON_START_YEAR" envDefault:"2026"`
	RetirementAge    int     `env:"RETIREMENT_AGE" envDefault:"38"`
	DailyEventChance float64 `env:"DAILY_EVENT_CHANCE" envDefault:"0.05"`
	ChemistryPerDay  float64 `env:"CHEMISTRY_PER_DAY" envDefault:"0.1"`
	LeaguePrizePool  float64 `env:"LEAGUE_PRIZE_POOL" envDefault:"250000"`
	PlayoffPrizePool float64 `env:"PLAYOFF_PRIZE_POOL" envDefault:"750000"`
}

// SimulationConfig tunes the round model.
type SimulationConfig struct {
	MaxRounds      int     `env:"MATCH_MAX_ROUNDS" envDefault:"30"`
	OvertimeRounds int     `env:"MATCH_OVERTIME_ROUNDS" envDefault:"6"`
	MaxOvertimes   int     `env:"MATCH_MAX_OVERTIMES" envDefault:"5"`
	MomentumWeight float64 `env:"MATCH_MOMENTUM_WEIGHT" envDefault:"0.02"`
	MomentumCap    int     `env:"MATCH_MOMENTUM_CAP" envDefault:"3"`
	MinRoundChance float64 `env:"MATCH_MIN_ROUND_CHANCE" envDefault:"0.05"`
}

// EconomyConfig holds money and market tuning.
type EconomyConfig struct {
	StartingBudget        float64 `env:"STARTING_BUDGET" envDefault:"1000000"`
	MonthlySponsorship    float64 `env:"MONTHLY_SPONSORSHIP" envDefault:"25000"`
	TerminationMultiplier int     `env:"TERMINATION_SALARY_MULTIPLIER" envDefault:"3"`
	ListingDeadlineDays   int     `env:"LISTING_DEADLINE_DAYS" envDefault:"30"`
	MarketValueScale      float64 `env:"MARKET_VALUE_SCALE" envDefault:"50000"`
	MarketValueFloor      float64 `env:"MARKET_VALUE_FLOOR" envDefault:"10000"`
	PrimeAge              float64 `env:"MARKET_PRIME_AGE" envDefault:"25"`
}

// PersistenceConfig locates save files.
type PersistenceConfig struct {
	SavePath          string `env:"SAVE_PATH" envDefault:"data/save.json"`
	AutosaveDir       string `env:"AUTOSAVE_DIR" envDefault:"data/autosaves"`
	AutosaveRetention int    `env:"AUTOSAVE_RETENTION" envDefault:"10"`
	LoadOnStart       bool   `env:"LOAD_ON_START" envDefault:"true"`
}

// ArchiveConfig selects the match archive backend. An empty driver disables it.
type ArchiveConfig struct {
	Driver string `env:"ARCHIVE_DRIVER" envDefault:"sqlite"`
	DSN    string `env:"ARCHIVE_DSN" envDefault:"data/matches.db"`
}

// DataPackConfig selects where name pools and maps come from.
type DataPackConfig struct {
	Source   string        `env:"DATAPACK_SOURCE" envDefault:"fixture"`
	Path     string        `env:"DATAPACK_PATH"`
	URL      string        `env:"DATAPACK_URL"`
	APIKey   string        `env:"DATAPACK_API_KEY"`
	Attempts int           `env:"DATAPACK_ATTEMPTS" envDefault:"3"`
	Timeout  time.Duration `env:"DATAPACK_TIMEOUT" envDefault:"10s"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the simulator cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Clock.TickInterval <= 0:
		return fmt.Errorf("config: CLOCK_TICK_INTERVAL must be positive")
	case c.Season.LengthDays <= 0:
		return fmt.Errorf("config: SEASON_LENGTH_DAYS must be positive")
	case c.Season.TeamCount < 2:
		return fmt.Errorf("config: SEASON_TEAM_COUNT must be at least 2")
	case c.Simulation.MaxRounds <= 0:
		return fmt.Errorf("config: MATCH_MAX_ROUNDS must be positive")
	case c.Simulation.OvertimeRounds <= 0 || c.Simulation.OvertimeRounds%2 != 0:
		return fmt.Errorf("config: MATCH_OVERTIME_ROUNDS must be a positive even number")
	case c.Season.DailyEventChance < 0 || c.Season.DailyEventChance > 1:
		return fmt.Errorf("config: DAILY_EVENT_CHANCE must be within [0,1]")
	}
	switch c.Archive.Driver {
	case "", "sqlite", "postgres":
	default:
		return fmt.Errorf("config: unknown ARCHIVE_DRIVER %q", c.Archive.Driver)
	}
	switch strings.ToLower(c.DataPack.Source) {
	case "", "fixture":
	case "file", "jsonfile":
		if c.DataPack.Path == "" {
			return fmt.Errorf("config: DATAPACK_PATH is required for file data packs")
		}
	case "remote":
		if c.DataPack.URL == "" {
			return fmt.Errorf("config: DATAPACK_URL is required for remote data packs")
		}
	default:
		return fmt.Errorf("config: unknown DATAPACK_SOURCE %q", c.DataPack.Source)
	}
	return nil
}
