package store

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/esports-sim/internal/domain/contracts"
	"github.com/preston-bernstein/esports-sim/internal/domain/matches"
	"github.com/preston-bernstein/esports-sim/internal/domain/players"
	"github.com/preston-bernstein/esports-sim/internal/domain/seasons"
	"github.com/preston-bernstein/esports-sim/internal/domain/teams"
	"github.com/preston-bernstein/esports-sim/internal/domain/transfers"
)

func TestMemoryStoreApplyAndGet(t *testing.T) {
	s := NewMemoryStore()
	season := seasons.Season{Number: 1, LengthDays: 270}

	s.Apply(Batch{
		Season:  &season,
		Teams:   []teams.Team{{ID: "t2"}, {ID: "t1"}},
		Players: []players.Player{{ID: "p1", Nickname: "ace"}},
	})

	if got := s.Season().Number; got != 1 {
		t.Fatalf("expected season 1, got %d", got)
	}
	all := s.Teams()
	if len(all) != 2 || all[0].ID != "t1" {
		t.Fatalf("expected teams ordered by id, got %+v", all)
	}
	p, ok := s.Player("p1")
	if !ok || p.Nickname != "ace" {
		t.Fatalf("expected player ace, got %+v", p)
	}
}

func TestMemoryStoreGetNotFound(t *testing.T) {
	s := NewMemoryStore()
	if _, ok := s.Player("missing"); ok {
		t.Fatalf("expected missing id to return false")
	}
	if _, ok := s.Budget("missing"); ok {
		t.Fatalf("expected missing budget to return false")
	}
	if _, ok := s.Match("missing"); ok {
		t.Fatalf("expected missing match to return false")
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	s.Apply(Batch{Teams: []teams.Team{{ID: "t1", Roster: []string{"a"}}}})

	team, _ := s.Team("t1")
	team.Roster[0] = "mutated"

	again, _ := s.Team("t1")
	if again.Roster[0] != "a" {
		t.Fatalf("expected store copy to be unaffected, got %v", again.Roster)
	}
}

func TestMemoryStoreActiveContractIndex(t *testing.T) {
	s := NewMemoryStore()
	c := contracts.Contract{ID: "c1", PlayerID: "p1", TeamID: "t1", Status: contracts.StatusActive, MonthlySalary: decimal.NewFromInt(1)}
	s.Apply(Batch{Contracts: []contracts.Contract{c}})

	if _, ok := s.ActiveContract("p1"); !ok {
		t.Fatal("expected active contract")
	}
	if got := s.ActiveContracts("t1"); len(got) != 1 {
		t.Fatalf("expected one team contract, got %d", len(got))
	}

	c.Status = contracts.StatusTerminated
	s.Apply(Batch{Contracts: []contracts.Contract{c}})

	if _, ok := s.ActiveContract("p1"); ok {
		t.Fatal("expected terminated contract to leave the active index")
	}
	if got := s.Contracts(); len(got) != 1 {
		t.Fatalf("expected contract history kept, got %d", len(got))
	}
}

func TestMemoryStoreListingsActiveFilter(t *testing.T) {
	s := NewMemoryStore()
	s.Apply(Batch{Listings: []transfers.Listing{
		{ID: "b", ListedDay: 1, DeadlineDay: 31, Status: transfers.ListingActive},
		{ID: "a", ListedDay: 1, DeadlineDay: 10, Status: transfers.ListingActive},
		{ID: "c", ListedDay: 0, DeadlineDay: 31, Status: transfers.ListingWithdrawn},
	}})

	active := s.Listings(20)
	if len(active) != 1 || active[0].ID != "b" {
		t.Fatalf("expected only listing b active, got %+v", active)
	}
	if all := s.Listings(-1); len(all) != 3 || all[0].ID != "c" {
		t.Fatalf("expected all listings ordered by day, got %+v", all)
	}
}

func TestMemoryStoreSeriesStoresSummaries(t *testing.T) {
	s := NewMemoryStore()
	s.Apply(Batch{Series: []matches.Series{{
		ID:   "s1",
		Maps: []matches.MatchResult{{ID: "m1", Rounds: []matches.RoundResult{{Number: 1}}}},
	}}})

	m, ok := s.Match("m1")
	if !ok {
		t.Fatal("expected indexed match")
	}
	if m.Rounds != nil {
		t.Fatal("expected round detail stripped")
	}
}

func TestMemoryStoreExportReplaceRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	season := seasons.Season{Number: 3}
	s.Apply(Batch{
		Season:  &season,
		Teams:   []teams.Team{{ID: "t1"}},
		Budgets: []contracts.Budget{{TeamID: "t1", Total: decimal.NewFromInt(10)}},
	})
	state := s.Export()

	other := NewMemoryStore()
	other.Apply(Batch{Teams: []teams.Team{{ID: "stale"}}})
	other.Replace(state)

	if _, ok := other.Team("stale"); ok {
		t.Fatal("expected replace to drop stale entities")
	}
	b, ok := other.Budget("t1")
	if !ok || !b.Total.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected budget restored, got %+v", b)
	}
	if other.Season().Number != 3 {
		t.Fatal("expected season restored")
	}
}
