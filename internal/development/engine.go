// Package development evolves players after matches and on every simulated
// day: form, morale, injuries, career phase, and skill growth or drift.
package development

import (
	"fmt"

	"github.com/preston-bernstein/esports-sim/internal/domain/matches"
	"github.com/preston-bernstein/esports-sim/internal/domain/players"
	"github.com/preston-bernstein/esports-sim/internal/random"
)

// Config holds the tuning constants.
type Config struct {
	GrowthRating            float64
	AimGrowthChance         float64
	ReactionGrowthChance    float64
	ConsistencyGrowthChance float64

	MoraleBaseline    float64
	MoraleDecayPerDay float64
	RecoveryMorale    float64
	AwardMorale       float64

	InjuryPenalty       float64
	ExperiencePerRating float64

	PeakExperience float64
	DecliningAge   int
	VeteranAge     int
	RetirementAge  int

	ReactionDrift    float64
	ConsistencyDrift float64
}

// DefaultConfig returns the standard development curve.
func DefaultConfig() Config {
	return Config{
		GrowthRating:            1.2,
		AimGrowthChance:         0.15,
		ReactionGrowthChance:    0.10,
		ConsistencyGrowthChance: 0.08,

		MoraleBaseline:    60,
		MoraleDecayPerDay: 0.1,
		RecoveryMorale:    10,
		AwardMorale:       15,

		InjuryPenalty:       0.8,
		ExperiencePerRating: 10,

		PeakExperience: 500,
		DecliningAge:   30,
		VeteranAge:     35,
		RetirementAge:  38,

		ReactionDrift:    0.9995,
		ConsistencyDrift: 0.999,
	}
}

// Engine applies development rules with an injected random source.
type Engine struct {
	cfg Config
	src random.Source
}

// New constructs an Engine.
func New(cfg Config, src random.Source) *Engine {
	return &Engine{cfg: cfg, src: src}
}

// FormForRating maps a match rating onto a form tier.
func FormForRating(rating float64) players.Form {
	switch {
	case rating > 1.5:
		return players.FormExceptional
	case rating > 1.2:
		return players.FormExcellent
	case rating > 1.0:
		return players.FormGood
	case rating > 0.8:
		return players.FormAverage
	case rating > 0.5:
		return players.FormPoor
	default:
		return players.FormTerrible
	}
}

// formDecay is the daily transition toward average. Average is absorbing.
var formDecay = map[players.Form]struct {
	to     players.Form
	chance float64
}{
	players.FormExceptional: {players.FormExcellent, 0.10},
	players.FormExcellent:   {players.FormGood, 0.05},
	players.FormGood:        {players.FormAverage, 0.02},
	players.FormPoor:        {players.FormAverage, 0.10},
	players.FormTerrible:    {players.FormPoor, 0.10},
}

// DecayTarget returns the tier form decays to and the daily chance of doing so.
func DecayTarget(f players.Form) (players.Form, float64) {
	if t, ok := formDecay[f]; ok {
		return t.to, t.chance
	}
	return f, 0
}

// PhaseFor classifies a career. Precedence: retired stays retired, then the
// oldest age band wins, then experience.
func (e *Engine) PhaseFor(p players.Player) players.Phase {
	switch {
	case p.Career.Phase == players.PhaseRetired:
		return players.PhaseRetired
	case p.Age > e.cfg.VeteranAge:
		return players.PhaseVeteran
	case p.Age > e.cfg.DecliningAge:
		return players.PhaseDeclining
	case p.Career.Experience < e.cfg.PeakExperience:
		return players.PhaseRising
	default:
		return players.PhasePeak
	}
}

// RecordMatchPerformance folds one map into the player's career.
func (e *Engine) RecordMatchPerformance(p *players.Player, perf matches.PlayerPerformance, mapID string) {
	c := &p.Career
	c.AverageRating = (c.AverageRating*float64(c.Matches) + perf.Rating) / float64(c.Matches+1)
	c.Matches++
	if perf.Won {
		c.Wins++
	}
	c.Kills += perf.Kills
	c.Deaths += perf.Deaths
	c.Assists += perf.Assists
	c.Headshots += perf.Headshots
	c.MVPs += perf.MVPs
	c.Experience += perf.Rating * e.cfg.ExperiencePerRating

	if mapID != "" {
		if c.Maps == nil {
			c.Maps = make(map[string]players.MapStats)
		}
		ms := c.Maps[mapID]
		ms.AverageRating = (ms.AverageRating*float64(ms.Matches) + perf.Rating) / float64(ms.Matches+1)
		ms.Matches++
		c.Maps[mapID] = ms
	}

	c.Form = FormForRating(perf.Rating)

	if perf.Rating > e.cfg.GrowthRating {
		if random.Chance(e.src, e.cfg.AimGrowthChance) {
			p.Skills.Aim++
		}
		if random.Chance(e.src, e.cfg.ReactionGrowthChance) {
			p.Skills.ReactionTime++
		}
		if random.Chance(e.src, e.cfg.ConsistencyGrowthChance) {
			p.Skills.Consistency++
		}
		if mapID != "" {
			if random.Chance(e.src, e.cfg.AimGrowthChance) {
				if p.MapProficiency == nil {
					p.MapProficiency = make(map[string]int)
				}
				p.MapProficiency[mapID] = players.ClampSkill(p.Proficiency(mapID) + 1)
			}
		}
	}
	p.Skills.Clamp()
}

// AdvanceOneDay ticks injuries, morale, form, career phase, and age drift.
func (e *Engine) AdvanceOneDay(p *players.Player, day int) {
	c := &p.Career
	if c.Phase == players.PhaseRetired {
		return
	}

	if c.InjuryDays > 0 {
		c.InjuryDays--
		if c.InjuryDays == 0 {
			c.Morale = players.ClampMorale(c.Morale + e.cfg.RecoveryMorale)
			p.AddEvent(day, players.EventRecovery, "returned from injury")
		}
	}

	c.Morale = decayToward(c.Morale, e.cfg.MoraleBaseline, e.cfg.MoraleDecayPerDay)

	if to, chance := DecayTarget(c.Form); chance > 0 && random.Chance(e.src, chance) {
		c.Form = to
	}

	prev := c.Phase
	c.Phase = e.PhaseFor(*p)
	if prev != "" && prev != c.Phase {
		p.AddEvent(day, phaseEvent(c.Phase), fmt.Sprintf("career phase %s -> %s", prev, c.Phase))
	}

	if c.Phase == players.PhaseDeclining || c.Phase == players.PhaseVeteran {
		p.Skills.ReactionTime = random.StochasticRound(e.src, float64(p.Skills.ReactionTime)*e.cfg.ReactionDrift)
		p.Skills.Consistency = random.StochasticRound(e.src, float64(p.Skills.Consistency)*e.cfg.ConsistencyDrift)
	}
	p.Skills.Clamp()
}

func phaseEvent(ph players.Phase) players.EventType {
	if ph == players.PhasePeak {
		return players.EventPromotion
	}
	return players.EventDemotion
}

// CauseInjury sets the countdown and applies a one-time aim/reaction penalty.
func (e *Engine) CauseInjury(p *players.Player, days, day int) {
	if days <= 0 {
		return
	}
	p.Career.InjuryDays = days
	p.Skills.Aim = penalize(p.Skills.Aim, e.cfg.InjuryPenalty)
	p.Skills.ReactionTime = penalize(p.Skills.ReactionTime, e.cfg.InjuryPenalty)
	p.Skills.Clamp()
	p.AddEvent(day, players.EventInjury, fmt.Sprintf("injured for %d days", days))
}

// AwardAchievement boosts morale and records the award.
func (e *Engine) AwardAchievement(p *players.Player, description string, day int) {
	p.Career.Morale = players.ClampMorale(p.Career.Morale + e.cfg.AwardMorale)
	p.AddEvent(day, players.EventAward, description)
}

// AgeOneYear ages the player and retires them past the retirement age. It
// reports whether the player retired.
func (e *Engine) AgeOneYear(p *players.Player, day int) bool {
	if p.IsRetired() {
		return false
	}
	p.Age++
	if p.Age >= e.cfg.RetirementAge {
		p.Career.Phase = players.PhaseRetired
		p.AddEvent(day, players.EventRetirement, fmt.Sprintf("retired at %d", p.Age))
		return true
	}
	p.Career.Phase = e.PhaseFor(*p)
	return false
}

func decayToward(v, target, rate float64) float64 {
	switch {
	case v > target:
		v -= rate
		if v < target {
			v = target
		}
	case v < target:
		v += rate
		if v > target {
			v = target
		}
	}
	return players.ClampMorale(v)
}

// penalize scales v by factor, always costing at least one point.
func penalize(v int, factor float64) int {
	scaled := int(float64(v) * factor)
	if scaled >= v {
		scaled = v - 1
	}
	return players.ClampSkill(scaled)
}
