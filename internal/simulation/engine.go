// Package simulation plays maps round by round. It never mutates entities:
// lineups are snapshots and results are returned as values.
package simulation

import (
	"math"

	"github.com/preston-bernstein/esports-sim/internal/domain"
	"github.com/preston-bernstein/esports-sim/internal/domain/matches"
	"github.com/preston-bernstein/esports-sim/internal/domain/teams"
	"github.com/preston-bernstein/esports-sim/internal/random"
)

// Engine simulates matches with an injected random source. An Engine is not
// safe for concurrent use; give each goroutine its own.
type Engine struct {
	cfg Config
	src random.Source
}

// New constructs an Engine.
func New(cfg Config, src random.Source) *Engine {
	return &Engine{cfg: cfg.withDefaults(), src: src}
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

type side struct {
	lineup Lineup
	skill  float64
	attAdv float64
	defAdv float64
	totals []matches.PlayerPerformance
	rounds int
}

type matchState struct {
	a, b       *side
	m          matches.Map
	result     matches.MatchResult
	streakTeam string
	streak     int
}

// SimulateMatch plays one map between a and b. Team a attacks first.
func (e *Engine) SimulateMatch(a, b Lineup, m matches.Map, maxRounds int) (matches.MatchResult, error) {
	if len(a.Players) != teams.RosterSize {
		return matches.MatchResult{}, domain.Errorf(domain.ErrInvalidRoster, "team %s fielded %d players", a.TeamID, len(a.Players))
	}
	if len(b.Players) != teams.RosterSize {
		return matches.MatchResult{}, domain.Errorf(domain.ErrInvalidRoster, "team %s fielded %d players", b.TeamID, len(b.Players))
	}
	if maxRounds <= 0 {
		return matches.MatchResult{}, domain.Errorf(domain.ErrInvalidConfig, "max rounds must be positive, got %d", maxRounds)
	}
	if a.TeamID == b.TeamID {
		return matches.MatchResult{}, domain.Errorf(domain.ErrInvalidConfig, "team %s cannot play itself", a.TeamID)
	}

	st := &matchState{
		a: e.newSide(a, m.ID),
		b: e.newSide(b, m.ID),
		m: m,
		result: matches.MatchResult{
			ID:        random.UUID(e.src),
			TeamA:     a.TeamID,
			TeamB:     b.TeamID,
			MapID:     m.ID,
			MaxRounds: maxRounds,
		},
	}

	e.playRegulation(st, maxRounds)
	if st.result.ScoreA == st.result.ScoreB {
		e.playOvertime(st)
	}

	r := &st.result
	r.RoundsPlayed = r.ScoreA + r.ScoreB
	if r.ScoreA > r.ScoreB {
		r.WinnerID = a.TeamID
	} else {
		r.WinnerID = b.TeamID
	}
	r.Performances = append(finalize(st.a, r.WinnerID), finalize(st.b, r.WinnerID)...)
	return *r, nil
}

func (e *Engine) newSide(l Lineup, mapID string) *side {
	s := &side{
		lineup: l,
		skill:  TeamSkillFactor(l, e.cfg.Weights),
		attAdv: MapAdvantage(l, mapID, true),
		defAdv: MapAdvantage(l, mapID, false),
		totals: make([]matches.PlayerPerformance, len(l.Players)),
	}
	for i, p := range l.Players {
		s.totals[i] = matches.PlayerPerformance{PlayerID: p.ID, TeamID: l.TeamID}
	}
	return s
}

func (e *Engine) playRegulation(st *matchState, maxRounds int) {
	need := maxRounds/2 + 1
	half := (maxRounds + 1) / 2
	for n := 0; n < maxRounds; n++ {
		if st.result.ScoreA >= need || st.result.ScoreB >= need {
			return
		}
		e.playRound(st, n < half, false)
	}
}

// playOvertime runs blocks until one side takes a block majority. After
// MaxOvertimes drawn blocks a single sudden-death round decides the map.
func (e *Engine) playOvertime(st *matchState) {
	ot := e.cfg.OvertimeRounds
	need := ot/2 + 1
	for block := 0; block < e.cfg.MaxOvertimes; block++ {
		st.result.OvertimeBlocks++
		startA, startB := st.result.ScoreA, st.result.ScoreB
		for n := 0; n < ot; n++ {
			e.playRound(st, n < ot/2, true)
			wonA, wonB := st.result.ScoreA-startA, st.result.ScoreB-startB
			if wonA >= need || wonB >= need {
				return
			}
		}
	}
	st.result.SuddenDeath = true
	e.playRound(st, true, true)
}

func (e *Engine) playRound(st *matchState, aAttacks, overtime bool) {
	att, def := st.a, st.b
	if !aAttacks {
		att, def = st.b, st.a
	}

	p := e.roundChance(st, att, def)
	attackerWins := e.src.Float64() < p

	winner, loser := def, att
	winnerSide := matches.SideDefense
	if attackerWins {
		winner, loser = att, def
		winnerSide = matches.SideAttack
	}

	if winner == st.a {
		st.result.ScoreA++
	} else {
		st.result.ScoreB++
	}
	if st.streakTeam == winner.lineup.TeamID {
		st.streak++
	} else {
		st.streakTeam, st.streak = winner.lineup.TeamID, 1
	}

	stats := e.roundStats(winner, loser, attackerWins)
	att.rounds++
	def.rounds++

	st.result.Rounds = append(st.result.Rounds, matches.RoundResult{
		Number:     len(st.result.Rounds) + 1,
		AttackerID: att.lineup.TeamID,
		WinnerID:   winner.lineup.TeamID,
		WinnerSide: winnerSide,
		ScoreA:     st.result.ScoreA,
		ScoreB:     st.result.ScoreB,
		Overtime:   overtime,
		Stats:      stats,
	})
}

// roundChance combines strength, map side advantage, map bias, and momentum.
func (e *Engine) roundChance(st *matchState, att, def *side) float64 {
	p := WinProbability(att.skill, att.attAdv, def.skill, def.defAdv)
	p += st.m.AttackBias

	if e.cfg.MomentumWeight != 0 && st.streak > 0 {
		n := st.streak
		if n > e.cfg.MomentumCap {
			n = e.cfg.MomentumCap
		}
		if st.streakTeam == att.lineup.TeamID {
			p += e.cfg.MomentumWeight * float64(n)
		} else {
			p -= e.cfg.MomentumWeight * float64(n)
		}
	}

	lo, hi := e.cfg.MinRoundChance, 1-e.cfg.MinRoundChance
	return math.Max(lo, math.Min(hi, p))
}

func finalize(s *side, winnerID string) []matches.PlayerPerformance {
	out := make([]matches.PlayerPerformance, len(s.totals))
	for i, t := range s.totals {
		t.Rounds = s.rounds
		t.Won = s.lineup.TeamID == winnerID
		t.Rating = Rating(t)
		out[i] = t
	}
	return out
}

// Rating is (KPR + 0.3*APR + 0.5*MVPR + 0.1) / (DPR + 0.2), with deaths
// floored at one. The result is always finite and positive.
func Rating(p matches.PlayerPerformance) float64 {
	rounds := float64(p.Rounds)
	if rounds < 1 {
		rounds = 1
	}
	deaths := p.Deaths
	if deaths < 1 {
		deaths = 1
	}
	kpr := float64(p.Kills) / rounds
	apr := float64(p.Assists) / rounds
	mvpr := float64(p.MVPs) / rounds
	dpr := float64(deaths) / rounds
	return (kpr + 0.3*apr + 0.5*mvpr + 0.1) / (dpr + 0.2)
}
