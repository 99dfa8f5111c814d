package simulation

import (
	"github.com/preston-bernstein/esports-sim/internal/domain/matches"
	"github.com/preston-bernstein/esports-sim/internal/random"
)

const (
	assistChance      = 0.35
	plantOnTeamWipe   = 0.3
	failedPlantChance = 0.3
	killDamage        = 100
)

// roundStats samples per-player lines consistent with the round outcome:
// winners kill 3-5, losers kill 0-4, so at least one winner survives.
func (e *Engine) roundStats(winner, loser *side, attackerWins bool) []matches.PlayerRoundStat {
	ws := newLines(winner)
	ls := newLines(loser)

	winnerKills := random.Between(e.src, 3, 5)
	loserKills := random.Between(e.src, 0, 4)

	loserDead := e.pickVictims(loser, winnerKills)
	winnerDead := e.pickVictims(winner, loserKills)

	for _, v := range loserDead {
		e.creditKill(winner, ws, ls, v)
	}
	for _, v := range winnerDead {
		e.creditKill(loser, ls, ws, v)
	}

	e.chip(ws)
	e.chip(ls)

	attLines, defLines := ls, ws
	if attackerWins {
		attLines, defLines = ws, ls
		if winnerKills < len(loser.lineup.Players) || random.Chance(e.src, plantOnTeamWipe) {
			attLines[e.pickAlive(attLines)].Planted = true
		}
	} else if random.Chance(e.src, failedPlantChance) {
		attLines[e.src.Intn(len(attLines))].Planted = true
		defLines[e.pickAlive(defLines)].Defused = true
	}

	ws[mvpIndex(ws)].MVP = true

	for i, l := range ws {
		accumulate(&winner.totals[i], l)
	}
	for i, l := range ls {
		accumulate(&loser.totals[i], l)
	}

	out := make([]matches.PlayerRoundStat, 0, len(attLines)+len(defLines))
	out = append(out, attLines...)
	return append(out, defLines...)
}

func newLines(s *side) []matches.PlayerRoundStat {
	out := make([]matches.PlayerRoundStat, len(s.lineup.Players))
	for i, p := range s.lineup.Players {
		out[i] = matches.PlayerRoundStat{PlayerID: p.ID, TeamID: s.lineup.TeamID}
	}
	return out
}

// pickVictims chooses n distinct players, weaker positioning dies more often.
func (e *Engine) pickVictims(s *side, n int) []int {
	remaining := make([]int, len(s.lineup.Players))
	for i := range remaining {
		remaining[i] = i
	}
	var out []int
	for k := 0; k < n && len(remaining) > 0; k++ {
		weights := make([]float64, len(remaining))
		for j, idx := range remaining {
			weights[j] = float64(21 - s.lineup.Players[idx].Skills.Positioning)
		}
		j := e.weighted(weights)
		out = append(out, remaining[j])
		remaining = append(remaining[:j], remaining[j+1:]...)
	}
	return out
}

func (e *Engine) creditKill(killers *side, kl, vl []matches.PlayerRoundStat, victim int) {
	weights := make([]float64, len(killers.lineup.Players))
	for i, p := range killers.lineup.Players {
		weights[i] = PlayerStrength(p, Weights{Aim: 2, Reaction: 1})
	}
	k := e.weighted(weights)
	kl[k].Kills++
	vl[victim].Deaths++

	aim := float64(killers.lineup.Players[k].Skills.Aim)
	if random.Chance(e.src, 0.25+aim/80) {
		kl[k].Headshots++
	}

	dmg := killDamage
	if len(kl) > 1 && random.Chance(e.src, assistChance) {
		a := e.src.Intn(len(kl) - 1)
		if a >= k {
			a++
		}
		share := random.Between(e.src, 20, 60)
		kl[a].Assists++
		kl[a].Damage += share
		dmg -= share
	}
	kl[k].Damage += dmg
}

func (e *Engine) chip(lines []matches.PlayerRoundStat) {
	for i := range lines {
		lines[i].Damage += random.Between(e.src, 0, 15)
	}
}

func (e *Engine) pickAlive(lines []matches.PlayerRoundStat) int {
	var alive []int
	for i, l := range lines {
		if l.Deaths == 0 {
			alive = append(alive, i)
		}
	}
	if len(alive) == 0 {
		return e.src.Intn(len(lines))
	}
	return alive[e.src.Intn(len(alive))]
}

func (e *Engine) weighted(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return e.src.Intn(len(weights))
	}
	r := e.src.Float64() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if r < w {
			return i
		}
		r -= w
	}
	return len(weights) - 1
}

// mvpIndex picks the winner with most kills, then objective play, then damage.
func mvpIndex(lines []matches.PlayerRoundStat) int {
	best := 0
	for i := 1; i < len(lines); i++ {
		if mvpScore(lines[i]).beats(mvpScore(lines[best])) {
			best = i
		}
	}
	return best
}

type mvpKey struct {
	kills     int
	objective int
	damage    int
}

func mvpScore(l matches.PlayerRoundStat) mvpKey {
	k := mvpKey{kills: l.Kills, damage: l.Damage}
	if l.Planted || l.Defused {
		k.objective = 1
	}
	return k
}

func (k mvpKey) beats(o mvpKey) bool {
	if k.kills != o.kills {
		return k.kills > o.kills
	}
	if k.objective != o.objective {
		return k.objective > o.objective
	}
	return k.damage > o.damage
}

func accumulate(t *matches.PlayerPerformance, l matches.PlayerRoundStat) {
	t.Kills += l.Kills
	t.Deaths += l.Deaths
	t.Assists += l.Assists
	t.Headshots += l.Headshots
	t.Damage += l.Damage
	if l.MVP {
		t.MVPs++
	}
	if l.Planted {
		t.Plants++
	}
	if l.Defused {
		t.Defuses++
	}
}
