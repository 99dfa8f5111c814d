package simulation

import (
	"errors"
	"testing"

	"github.com/preston-bernstein/esports-sim/internal/domain"
	"github.com/preston-bernstein/esports-sim/internal/domain/matches"
	"github.com/preston-bernstein/esports-sim/internal/domain/teams"
	"github.com/preston-bernstein/esports-sim/internal/random"
)

var pool = []matches.Map{
	{ID: "mirage"}, {ID: "inferno"}, {ID: "nuke"}, {ID: "ancient"},
	{ID: "anubis"}, {ID: "vertigo"}, {ID: "dust2"},
}

func TestVetoShape(t *testing.T) {
	cases := []struct {
		bestOf int
		bans   int
		picks  int
	}{
		{1, 6, 0},
		{3, 4, 2},
		{5, 2, 4},
	}
	for _, tc := range cases {
		log, order := Veto(lineup("a", 10), lineup("b", 10), pool, tc.bestOf)
		if len(log) != len(pool) {
			t.Fatalf("bo%d: expected %d veto steps, got %d", tc.bestOf, len(pool), len(log))
		}
		if len(order) != tc.bestOf {
			t.Fatalf("bo%d: expected %d maps to play, got %d", tc.bestOf, tc.bestOf, len(order))
		}
		counts := map[matches.VetoAction]int{}
		seen := map[string]bool{}
		for _, v := range log {
			counts[v.Action]++
			if seen[v.MapID] {
				t.Fatalf("bo%d: map %s vetoed twice", tc.bestOf, v.MapID)
			}
			seen[v.MapID] = true
		}
		if counts[matches.VetoBan] != tc.bans || counts[matches.VetoPick] != tc.picks || counts[matches.VetoDecider] != 1 {
			t.Fatalf("bo%d: unexpected veto counts %v", tc.bestOf, counts)
		}
		if log[len(log)-1].Action != matches.VetoDecider || order[len(order)-1].ID != log[len(log)-1].MapID {
			t.Fatalf("bo%d: decider must be last", tc.bestOf)
		}
	}
}

func TestVetoBansWeakestMap(t *testing.T) {
	a := lineup("a", 10)
	b := lineup("b", 10)
	b.MapRecords = map[string]teams.MapRecord{"nuke": {Played: 20, Wins: 20}}

	log, _ := Veto(a, b, pool, 1)
	if log[0].TeamID != "a" || log[0].MapID != "nuke" {
		t.Fatalf("expected a to ban b's best map first, got %+v", log[0])
	}
}

func TestSimulateSeriesStopsAtMajority(t *testing.T) {
	e := New(DefaultConfig(), random.NewSeeded(4))
	for i := 0; i < 50; i++ {
		s, err := e.SimulateSeries(lineup("a", 10), lineup("b", 12), pool, 3, 24)
		if err != nil {
			t.Fatalf("series: %v", err)
		}
		if !s.Decided() {
			t.Fatalf("expected decided series, got %d-%d", s.WinsA, s.WinsB)
		}
		if len(s.Maps) < 2 || len(s.Maps) > 3 {
			t.Fatalf("expected 2-3 maps, got %d", len(s.Maps))
		}
		if s.WinsA+s.WinsB != len(s.Maps) {
			t.Fatalf("map wins do not add up")
		}
		winner := s.WinsA
		if s.WinnerID == "b" {
			winner = s.WinsB
		}
		if winner != 2 {
			t.Fatalf("expected winner to stop at 2 maps, got %d", winner)
		}
	}
}

func TestSimulateSeriesValidatesFormat(t *testing.T) {
	e := New(DefaultConfig(), random.NewSeeded(4))
	if _, err := e.SimulateSeries(lineup("a", 10), lineup("b", 10), pool, 2, 24); !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected invalid config for bo2, got %v", err)
	}
	if _, err := e.SimulateSeries(lineup("a", 10), lineup("b", 10), pool[:2], 3, 24); !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected invalid config for small pool, got %v", err)
	}
	short := lineup("a", 10)
	short.Players = short.Players[:3]
	if _, err := e.SimulateSeries(short, lineup("b", 10), pool, 1, 24); !errors.Is(err, domain.ErrInvalidRoster) {
		t.Fatalf("expected invalid roster, got %v", err)
	}
}
