package development

import (
	"math"
	"testing"

	"github.com/preston-bernstein/esports-sim/internal/domain/matches"
	"github.com/preston-bernstein/esports-sim/internal/domain/players"
	"github.com/preston-bernstein/esports-sim/internal/random"
)

// fixedSource returns the same draw every time so probabilities become switches.
type fixedSource struct{ f float64 }

func (s fixedSource) Float64() float64     { return s.f }
func (s fixedSource) Intn(int) int         { return 0 }
func (s fixedSource) Int63() int64         { return 0 }
func (s fixedSource) NormFloat64() float64 { return 0 }

var (
	always = fixedSource{f: 0}
	never  = fixedSource{f: 0.999}
)

func newPlayer(skill int) players.Player {
	return players.Player{
		ID:  "p1",
		Age: 24,
		Skills: players.Skills{
			Aim: skill, ReactionTime: skill, Consistency: skill, Positioning: skill,
			Utility: skill, Clutch: skill, Mental: skill, GameSense: skill, Movement: skill,
			AWP: skill, Rifle: skill, Pistol: skill, Leadership: skill, Anchor: skill,
			Entry: skill, Lurking: skill, Teamwork: skill, WorkEthic: skill, Temperament: skill,
		},
		Career: players.Career{Form: players.FormAverage, Morale: 60, Phase: players.PhaseRising},
	}
}

func TestFormForRatingThresholds(t *testing.T) {
	cases := []struct {
		rating float64
		want   players.Form
	}{
		{1.51, players.FormExceptional},
		{1.5, players.FormExcellent},
		{1.21, players.FormExcellent},
		{1.2, players.FormGood},
		{1.0, players.FormAverage},
		{0.81, players.FormAverage},
		{0.8, players.FormPoor},
		{0.5, players.FormTerrible},
		{0, players.FormTerrible},
	}
	for _, tc := range cases {
		if got := FormForRating(tc.rating); got != tc.want {
			t.Fatalf("rating %.2f: expected %s got %s", tc.rating, tc.want, got)
		}
	}
}

func TestRecordMatchPerformanceKDAWithZeroDeaths(t *testing.T) {
	e := New(DefaultConfig(), never)
	p := newPlayer(10)

	for i := 0; i < 10; i++ {
		e.RecordMatchPerformance(&p, matches.PlayerPerformance{Kills: 14, Rating: 1.1, Won: true}, "mirage")
	}
	if p.Career.Kills != 140 || p.Career.Deaths != 0 {
		t.Fatalf("expected 140/0, got %d/%d", p.Career.Kills, p.Career.Deaths)
	}
	if p.KDA() != 140 {
		t.Fatalf("expected KDA 140, got %f", p.KDA())
	}
	if p.Career.Matches != 10 || p.Career.Wins != 10 {
		t.Fatalf("expected 10 matches and wins, got %+v", p.Career)
	}
	if p.Career.Maps["mirage"].Matches != 10 {
		t.Fatalf("expected map stats tracked, got %+v", p.Career.Maps)
	}
	if p.Career.Form != players.FormGood {
		t.Fatalf("expected good form, got %s", p.Career.Form)
	}
}

func TestRecordMatchPerformanceAveragesRating(t *testing.T) {
	e := New(DefaultConfig(), never)
	p := newPlayer(10)
	e.RecordMatchPerformance(&p, matches.PlayerPerformance{Rating: 1.0}, "")
	e.RecordMatchPerformance(&p, matches.PlayerPerformance{Rating: 0.5}, "")
	if p.Career.AverageRating != 0.75 {
		t.Fatalf("expected average 0.75, got %f", p.Career.AverageRating)
	}
	if p.Career.Experience != 15 {
		t.Fatalf("expected 15 experience, got %f", p.Career.Experience)
	}
}

func TestGrowthNeverExceedsMax(t *testing.T) {
	e := New(DefaultConfig(), always)
	p := newPlayer(19)
	for i := 0; i < 50; i++ {
		e.RecordMatchPerformance(&p, matches.PlayerPerformance{Rating: 2.0}, "nuke")
	}
	if p.Skills.Aim != players.MaxSkill || p.Skills.ReactionTime != players.MaxSkill || p.Skills.Consistency != players.MaxSkill {
		t.Fatalf("expected skills capped at max, got %+v", p.Skills)
	}
	if p.MapProficiency["nuke"] != players.MaxSkill {
		t.Fatalf("expected map proficiency capped, got %d", p.MapProficiency["nuke"])
	}
	if !p.Skills.Valid() {
		t.Fatal("expected skills within bounds")
	}
}

func TestNoGrowthBelowThreshold(t *testing.T) {
	e := New(DefaultConfig(), always)
	p := newPlayer(10)
	e.RecordMatchPerformance(&p, matches.PlayerPerformance{Rating: 1.2}, "")
	if p.Skills.Aim != 10 {
		t.Fatalf("expected no growth at rating 1.2, got aim %d", p.Skills.Aim)
	}
}

func TestFormDecayTable(t *testing.T) {
	cases := []struct {
		from players.Form
		to   players.Form
	}{
		{players.FormExceptional, players.FormExcellent},
		{players.FormExcellent, players.FormGood},
		{players.FormGood, players.FormAverage},
		{players.FormAverage, players.FormAverage},
		{players.FormPoor, players.FormAverage},
		{players.FormTerrible, players.FormPoor},
	}
	for _, tc := range cases {
		e := New(DefaultConfig(), always)
		p := newPlayer(10)
		p.Career.Form = tc.from
		e.AdvanceOneDay(&p, 1)
		if p.Career.Form != tc.to {
			t.Fatalf("%s: expected %s got %s", tc.from, tc.to, p.Career.Form)
		}

		stay := New(DefaultConfig(), never)
		q := newPlayer(10)
		q.Career.Form = tc.from
		stay.AdvanceOneDay(&q, 1)
		if q.Career.Form != tc.from {
			t.Fatalf("%s: expected no decay when the draw fails", tc.from)
		}
	}
}

func TestPhasePrecedence(t *testing.T) {
	e := New(DefaultConfig(), never)
	cases := []struct {
		age   int
		exp   float64
		phase players.Phase
		want  players.Phase
	}{
		{20, 100, players.PhaseRising, players.PhaseRising},
		{25, 600, players.PhaseRising, players.PhasePeak},
		{31, 100, players.PhasePeak, players.PhaseDeclining},
		{36, 5000, players.PhasePeak, players.PhaseVeteran},
		{36, 100, players.PhaseRising, players.PhaseVeteran},
		{25, 5000, players.PhaseRetired, players.PhaseRetired},
	}
	for _, tc := range cases {
		p := newPlayer(10)
		p.Age = tc.age
		p.Career.Experience = tc.exp
		p.Career.Phase = tc.phase
		if got := e.PhaseFor(p); got != tc.want {
			t.Fatalf("age %d exp %.0f: expected %s got %s", tc.age, tc.exp, tc.want, got)
		}
	}
}

func TestAdvanceOneDayMoraleDecaysTowardBaseline(t *testing.T) {
	e := New(DefaultConfig(), never)
	high := newPlayer(10)
	high.Career.Morale = 80
	low := newPlayer(10)
	low.Career.Morale = 59.95

	e.AdvanceOneDay(&high, 1)
	e.AdvanceOneDay(&low, 1)

	if math.Abs(high.Career.Morale-79.9) > 1e-9 {
		t.Fatalf("expected morale 79.9, got %f", high.Career.Morale)
	}
	if low.Career.Morale != 60 {
		t.Fatalf("expected morale to stop at baseline, got %f", low.Career.Morale)
	}
}

func TestInjuryPenaltyAppliedOnce(t *testing.T) {
	e := New(DefaultConfig(), never)
	p := newPlayer(10)
	p.Career.Morale = 60

	e.CauseInjury(&p, 3, 5)
	if p.Skills.Aim != 8 || p.Skills.ReactionTime != 8 {
		t.Fatalf("expected 20%% penalty, got aim %d reaction %d", p.Skills.Aim, p.Skills.ReactionTime)
	}
	if !p.IsInjured() {
		t.Fatal("expected injured player")
	}

	for day := 6; day < 9; day++ {
		e.AdvanceOneDay(&p, day)
	}
	if p.Skills.Aim != 8 {
		t.Fatalf("expected penalty not repeated, got aim %d", p.Skills.Aim)
	}
	if p.IsInjured() {
		t.Fatal("expected recovery after countdown")
	}
	// +10 on recovery, then the same day's decay toward the baseline.
	if math.Abs(p.Career.Morale-69.9) > 1e-9 {
		t.Fatalf("expected recovery morale boost to 69.9, got %f", p.Career.Morale)
	}

	types := map[players.EventType]int{}
	for _, ev := range p.Career.History {
		types[ev.Type]++
	}
	if types[players.EventInjury] != 1 || types[players.EventRecovery] != 1 {
		t.Fatalf("expected injury and recovery events, got %+v", p.Career.History)
	}
}

func TestInjuryPenaltyRespectsFloor(t *testing.T) {
	e := New(DefaultConfig(), never)
	p := newPlayer(1)
	e.CauseInjury(&p, 2, 0)
	if p.Skills.Aim != players.MinSkill {
		t.Fatalf("expected floor at min skill, got %d", p.Skills.Aim)
	}
}

func TestAwardAchievementClampsMorale(t *testing.T) {
	e := New(DefaultConfig(), never)
	p := newPlayer(10)
	p.Career.Morale = 95
	e.AwardAchievement(&p, "MVP of the league", 100)
	if p.Career.Morale != players.MaxMorale {
		t.Fatalf("expected morale clamped to max, got %f", p.Career.Morale)
	}
	if n := len(p.Career.History); n != 1 || p.Career.History[0].Type != players.EventAward {
		t.Fatalf("expected award event, got %+v", p.Career.History)
	}
}

func TestAgeOneYearRetires(t *testing.T) {
	e := New(DefaultConfig(), never)
	p := newPlayer(10)
	p.Age = 37
	if !e.AgeOneYear(&p, 270) {
		t.Fatal("expected retirement at 38")
	}
	if !p.IsRetired() {
		t.Fatalf("expected retired phase, got %s", p.Career.Phase)
	}
	if e.AgeOneYear(&p, 540) {
		t.Fatal("expected no second retirement")
	}
	if p.Age != 38 {
		t.Fatalf("expected retired players to stop aging, got %d", p.Age)
	}

	before := len(p.Career.History)
	e.AdvanceOneDay(&p, 541)
	if len(p.Career.History) != before {
		t.Fatal("expected retired players to be left alone")
	}
}

func TestVeteranDriftLowersSkills(t *testing.T) {
	e := New(DefaultConfig(), random.NewSeeded(1))
	p := newPlayer(15)
	p.Age = 36
	for day := 0; day < 2000; day++ {
		e.AdvanceOneDay(&p, day)
	}
	if p.Skills.ReactionTime >= 15 || p.Skills.Consistency >= 15 {
		t.Fatalf("expected drift to lower skills, got reaction %d consistency %d", p.Skills.ReactionTime, p.Skills.Consistency)
	}
	if !p.Skills.Valid() {
		t.Fatal("expected skills within bounds")
	}
	if p.Career.Phase != players.PhaseVeteran {
		t.Fatalf("expected veteran phase, got %s", p.Career.Phase)
	}
}

func TestHistoryIsAppendOnly(t *testing.T) {
	e := New(DefaultConfig(), never)
	p := newPlayer(10)
	e.AwardAchievement(&p, "first", 1)
	first := p.Career.History[0]
	e.CauseInjury(&p, 1, 2)
	e.AdvanceOneDay(&p, 3)
	if p.Career.History[0] != first {
		t.Fatal("expected earlier events untouched")
	}
	for i := 1; i < len(p.Career.History); i++ {
		if p.Career.History[i].Day < p.Career.History[i-1].Day {
			t.Fatal("expected events in chronological order")
		}
	}
}
