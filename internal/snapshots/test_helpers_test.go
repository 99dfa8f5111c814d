package snapshots

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/esports-sim/internal/domain/contracts"
	"github.com/preston-bernstein/esports-sim/internal/domain/players"
	"github.com/preston-bernstein/esports-sim/internal/domain/seasons"
	"github.com/preston-bernstein/esports-sim/internal/domain/teams"
	"github.com/preston-bernstein/esports-sim/internal/domain/transfers"
	"github.com/preston-bernstein/esports-sim/internal/store"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func sampleState(season, day int) store.State {
	return store.State{
		Season: seasons.Season{Number: season, Year: 2025, LengthDays: 270, DaysPassed: day},
		Teams:  []teams.Team{{ID: "t1", Name: "Northwind", Roster: []string{"p1"}}},
		Players: []players.Player{
			{ID: "p1", Nickname: "frost", Age: 22, TeamID: "t1", Salary: decimal.NewFromInt(5000)},
			{ID: "p2", Nickname: "kobra", Age: 19},
		},
		Contracts: []contracts.Contract{
			{ID: "c1", PlayerID: "p1", TeamID: "t1", Status: contracts.StatusActive},
			{ID: "c0", PlayerID: "p2", TeamID: "t1", Status: contracts.StatusExpired},
		},
		Listings: []transfers.Listing{
			{ID: "l1", PlayerID: "p1", Status: transfers.ListingActive},
			{ID: "l0", PlayerID: "p1", Status: transfers.ListingWithdrawn},
		},
	}
}

func sampleDoc(season, day int) Document {
	return NewDocument(sampleState(season, day), ClockMeta{Seed: 42, DaysSimulated: day}, fixedNow)
}

func newTestWriter(t *testing.T, retention int) (*Writer, string) {
	t.Helper()
	dir := t.TempDir()
	w := NewWriter(filepath.Join(dir, "save.json"), filepath.Join(dir, "autosaves"), retention)
	w.now = func() time.Time { return fixedNow }
	return w, dir
}

func requireFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
}

func requireFileMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Fatalf("expected %s to be removed", path)
	}
}
