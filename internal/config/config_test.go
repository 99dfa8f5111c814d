package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "4000" {
		t.Fatalf("expected default port 4000, got %s", cfg.Port)
	}
	if cfg.Clock.TickInterval != 2*time.Second {
		t.Fatalf("expected default tick interval 2s, got %s", cfg.Clock.TickInterval)
	}
	if cfg.Season.LengthDays != 270 {
		t.Fatalf("expected 270 day season, got %d", cfg.Season.LengthDays)
	}
	if cfg.Simulation.MaxRounds != 30 || cfg.Simulation.OvertimeRounds != 6 {
		t.Fatalf("unexpected simulation defaults %+v", cfg.Simulation)
	}
	if cfg.Archive.Driver != "sqlite" {
		t.Fatalf("expected sqlite archive by default, got %q", cfg.Archive.Driver)
	}
	if cfg.Metrics.ServiceName != "esports-sim" || !cfg.Metrics.Enabled {
		t.Fatalf("unexpected metrics defaults %+v", cfg.Metrics)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("expected wildcard cors origin, got %v", cfg.CORSOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "5000")
	t.Setenv("CLOCK_TICK_INTERVAL", "45s")
	t.Setenv("SIM_SEED", "42")
	t.Setenv("MATCH_MAX_ROUNDS", "24")
	t.Setenv("ARCHIVE_DRIVER", "postgres")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "5000" {
		t.Fatalf("expected port 5000, got %s", cfg.Port)
	}
	if cfg.Clock.TickInterval != 45*time.Second {
		t.Fatalf("expected tick interval 45s, got %s", cfg.Clock.TickInterval)
	}
	if cfg.Clock.Seed != 42 {
		t.Fatalf("expected seed 42, got %d", cfg.Clock.Seed)
	}
	if cfg.Simulation.MaxRounds != 24 {
		t.Fatalf("expected 24 max rounds, got %d", cfg.Simulation.MaxRounds)
	}
	if cfg.Archive.Driver != "postgres" {
		t.Fatalf("expected postgres driver, got %s", cfg.Archive.Driver)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("expected two cors origins, got %v", cfg.CORSOrigins)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"CLOCK_TICK_INTERVAL":   "0s",
		"MATCH_MAX_ROUNDS":      "0",
		"MATCH_OVERTIME_ROUNDS": "5",
		"SEASON_TEAM_COUNT":     "1",
		"DAILY_EVENT_CHANCE":    "1.5",
		"ARCHIVE_DRIVER":        "mysql",
		"DATAPACK_SOURCE":       "ftp",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, val)
			}
		})
	}
}

func TestLoadInvalidDurationErrors(t *testing.T) {
	t.Setenv("CLOCK_TICK_INTERVAL", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Fatal("expected parse error on invalid duration")
	}
}

func TestValidateDataPackSources(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	cfg.DataPack.Source = "remote"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected remote source without a url to be rejected")
	}
	cfg.DataPack.URL = "https://packs.test/pack.json"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected remote source with url to validate, got %v", err)
	}

	cfg.DataPack.Source = "file"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected file source without a path to be rejected")
	}
	cfg.DataPack.Path = "packs/custom.json"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected file source with path to validate, got %v", err)
	}
}
