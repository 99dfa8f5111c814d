package simulation

import (
	"github.com/preston-bernstein/esports-sim/internal/domain/players"
	"github.com/preston-bernstein/esports-sim/internal/domain/teams"
)

// Lineup is a read-only snapshot of a team taking the field.
type Lineup struct {
	TeamID     string
	Players    []players.Player
	Style      teams.PlayStyle
	MapRecords map[string]teams.MapRecord
}

// NewLineup snapshots a team and its active roster.
func NewLineup(team teams.Team, roster []players.Player) Lineup {
	snap := make([]players.Player, len(roster))
	for i, p := range roster {
		snap[i] = p.Clone()
	}
	return Lineup{
		TeamID:     team.ID,
		Players:    snap,
		Style:      team.Style,
		MapRecords: team.Clone().MapRecords,
	}
}

// formModifier scales a player's output by short-term form.
func formModifier(f players.Form) float64 {
	switch f {
	case players.FormExceptional:
		return 1.10
	case players.FormExcellent:
		return 1.05
	case players.FormGood:
		return 1.02
	case players.FormPoor:
		return 0.97
	case players.FormTerrible:
		return 0.93
	default:
		return 1.0
	}
}

// moraleModifier maps morale 0..100 onto 0.95..1.05.
func moraleModifier(morale float64) float64 {
	return 1 + (players.ClampMorale(morale)-50)/1000
}

// PlayerStrength is a player's weighted attribute score with form and morale applied.
func PlayerStrength(p players.Player, w Weights) float64 {
	s := p.Skills
	sum := w.Aim*float64(s.Aim) +
		w.Reaction*float64(s.ReactionTime) +
		w.Consistency*float64(s.Consistency) +
		w.GameSense*float64(s.GameSense) +
		w.Utility*float64(s.Utility) +
		w.Positioning*float64(s.Positioning) +
		w.Clutch*float64(s.Clutch)
	return sum / w.total() * formModifier(p.Career.Form) * moraleModifier(p.Career.Morale)
}

// TeamSkillFactor is the mean player strength scaled by chemistry (0.9 at no
// chemistry, 1.1 at full).
func TeamSkillFactor(l Lineup, w Weights) float64 {
	if len(l.Players) == 0 {
		return 0
	}
	total := 0.0
	for _, p := range l.Players {
		total += PlayerStrength(p, w)
	}
	chem := l.Style.Chemistry
	if chem < 0 {
		chem = 0
	}
	if chem > 100 {
		chem = 100
	}
	return total / float64(len(l.Players)) * (0.9 + 0.2*chem/100)
}

// MapAdvantage is the team's multiplier on a map side: historical side win rate
// (smoothed, neutral at 1.0) times mean player proficiency (neutral at 10.5).
func MapAdvantage(l Lineup, mapID string, attacking bool) float64 {
	rec := l.MapRecords[mapID]
	rate := rec.DefenseRate()
	if attacking {
		rate = rec.AttackRate()
	}
	prof := 0.0
	for _, p := range l.Players {
		prof += float64(p.Proficiency(mapID))
	}
	if len(l.Players) > 0 {
		prof /= float64(len(l.Players))
	} else {
		prof = 10.5
	}
	return (0.5 + rate) * (1 + (prof-10.5)/95)
}

// WinProbability is the attacker's share of combined strength.
func WinProbability(attSkill, attAdv, defSkill, defAdv float64) float64 {
	a := attSkill * attAdv
	d := defSkill * defAdv
	if a+d <= 0 {
		return 0.5
	}
	return a / (a + d)
}
