package archive

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/preston-bernstein/esports-sim/internal/domain/matches"
)

func openTestArchive(t *testing.T) *SQLArchive {
	t.Helper()
	a, err := Open(context.Background(), DialectSQLite, filepath.Join(t.TempDir(), "nested", "matches.db"))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func result(id, a, b string, day int) matches.MatchResult {
	return matches.MatchResult{
		ID: id, TeamA: a, TeamB: b, MapID: "mirage", Day: day,
		MaxRounds: 24, ScoreA: 13, ScoreB: 9, WinnerID: a, RoundsPlayed: 22,
		Performances: []matches.PlayerPerformance{{PlayerID: "p1", TeamID: a, Kills: 20, Rounds: 22}},
	}
}

func TestOpenRejectsUnknownDialect(t *testing.T) {
	if _, err := Open(context.Background(), Dialect("oracle"), "x"); err == nil {
		t.Fatal("expected error for unknown dialect")
	}
	if _, err := Open(context.Background(), DialectPostgres, ""); err == nil {
		t.Fatal("expected error for empty postgres dsn")
	}
}

func TestRecordAndGet(t *testing.T) {
	a := openTestArchive(t)
	ctx := context.Background()
	want := result("m1", "t1", "t2", 3)
	if err := a.Record(ctx, 1, want); err != nil {
		t.Fatalf("record: %v", err)
	}
	got, ok, err := a.Get(ctx, "m1")
	if err != nil || !ok {
		t.Fatalf("expected match, ok=%v err=%v", ok, err)
	}
	if got.ScoreA != 13 || got.WinnerID != "t1" || len(got.Performances) != 1 || got.Performances[0].Kills != 20 {
		t.Fatalf("unexpected result %+v", got)
	}
	if _, ok, err := a.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}
}

func TestRecordIgnoresDuplicates(t *testing.T) {
	a := openTestArchive(t)
	ctx := context.Background()
	r := result("m1", "t1", "t2", 3)
	for i := 0; i < 2; i++ {
		if err := a.Record(ctx, 1, r); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}
	list, err := a.ByTeam(ctx, "t1", 10)
	if err != nil {
		t.Fatalf("by team: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one row, got %d", len(list))
	}
}

func TestByTeamOrdersMostRecentFirst(t *testing.T) {
	a := openTestArchive(t)
	ctx := context.Background()
	records := []struct {
		season int
		r      matches.MatchResult
	}{
		{1, result("a", "t1", "t2", 5)},
		{1, result("b", "t3", "t1", 9)},
		{2, result("c", "t1", "t4", 1)},
		{2, result("d", "t2", "t3", 2)},
	}
	for _, rec := range records {
		if err := a.Record(ctx, rec.season, rec.r); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	list, err := a.ByTeam(ctx, "t1", 0)
	if err != nil {
		t.Fatalf("by team: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(list))
	}
	if list[0].MatchID != "c" || list[1].MatchID != "b" || list[2].MatchID != "a" {
		t.Fatalf("unexpected order %+v", list)
	}
	if list[0].Season != 2 {
		t.Fatalf("expected season 2, got %d", list[0].Season)
	}

	limited, err := a.ByTeam(ctx, "t1", 1)
	if err != nil || len(limited) != 1 {
		t.Fatalf("expected limit applied, got %d %v", len(limited), err)
	}
}

func TestMigrationsApplyOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.db")
	ctx := context.Background()
	first, err := Open(ctx, DialectSQLite, path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := first.Record(ctx, 1, result("m1", "t1", "t2", 1)); err != nil {
		t.Fatalf("record: %v", err)
	}
	_ = first.Close()

	second, err := Open(ctx, DialectSQLite, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	var n int
	if err := second.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&n); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected one migration row, got %d", n)
	}
	if _, ok, _ := second.Get(ctx, "m1"); !ok {
		t.Fatal("expected data to survive reopen")
	}
}

func TestNopArchive(t *testing.T) {
	var a Archive = Nop{}
	if err := a.Record(context.Background(), 1, result("m", "a", "b", 1)); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if _, ok, _ := a.Get(context.Background(), "m"); ok {
		t.Fatal("expected nop to miss")
	}
}
