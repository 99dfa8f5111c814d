package matches

import "testing"

func TestLoserAndScore(t *testing.T) {
	m := MatchResult{TeamA: "a", TeamB: "b", ScoreA: 16, ScoreB: 10, WinnerID: "a"}
	if m.LoserID() != "b" {
		t.Fatalf("expected b to lose, got %s", m.LoserID())
	}
	if m.Score("b") != 10 || m.Score("z") != 0 {
		t.Fatal("unexpected scores")
	}
}

func TestWinsNeeded(t *testing.T) {
	cases := map[int]int{1: 1, 3: 2, 5: 3}
	for bo, want := range cases {
		if got := WinsNeeded(bo); got != want {
			t.Fatalf("bo%d: expected %d got %d", bo, want, got)
		}
	}
}

func TestSeriesRoundDiff(t *testing.T) {
	s := Series{TeamA: "a", TeamB: "b", BestOf: 3, WinsA: 2, Maps: []MatchResult{
		{TeamA: "a", TeamB: "b", ScoreA: 16, ScoreB: 10},
		{TeamA: "a", TeamB: "b", ScoreA: 16, ScoreB: 14},
	}}
	won, lost := s.RoundDiff("b")
	if won != 24 || lost != 32 {
		t.Fatalf("expected 24/32, got %d/%d", won, lost)
	}
	if !s.Decided() {
		t.Fatal("expected series decided")
	}
}

func TestSummaryDropsRounds(t *testing.T) {
	m := MatchResult{Rounds: []RoundResult{{Number: 1}}, Performances: []PlayerPerformance{{PlayerID: "p"}}}
	s := m.Summary()
	if s.Rounds != nil {
		t.Fatal("expected rounds dropped")
	}
	s.Performances[0].PlayerID = "x"
	if m.Performances[0].PlayerID != "p" {
		t.Fatal("expected performances copied")
	}
}

func TestADR(t *testing.T) {
	if (PlayerPerformance{}).ADR() != 0 {
		t.Fatal("expected zero ADR without rounds")
	}
	if (PlayerPerformance{Damage: 800, Rounds: 10}).ADR() != 80 {
		t.Fatal("expected ADR 80")
	}
}
