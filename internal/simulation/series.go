package simulation

import (
	"github.com/preston-bernstein/esports-sim/internal/domain"
	"github.com/preston-bernstein/esports-sim/internal/domain/matches"
	"github.com/preston-bernstein/esports-sim/internal/random"
)

// SimulateSeries runs a map veto over pool and plays maps until a team holds
// a majority of bestOf.
func (e *Engine) SimulateSeries(a, b Lineup, pool []matches.Map, bestOf, maxRounds int) (matches.Series, error) {
	switch bestOf {
	case 1, 3, 5:
	default:
		return matches.Series{}, domain.Errorf(domain.ErrInvalidConfig, "best-of must be 1, 3 or 5, got %d", bestOf)
	}
	if len(pool) < bestOf {
		return matches.Series{}, domain.Errorf(domain.ErrInvalidConfig, "map pool of %d cannot host best-of-%d", len(pool), bestOf)
	}

	veto, order := Veto(a, b, pool, bestOf)
	series := matches.Series{
		ID:     random.UUID(e.src),
		TeamA:  a.TeamID,
		TeamB:  b.TeamID,
		BestOf: bestOf,
		Veto:   veto,
	}

	for _, m := range order {
		if series.Decided() {
			break
		}
		result, err := e.SimulateMatch(a, b, m, maxRounds)
		if err != nil {
			return matches.Series{}, err
		}
		series.Maps = append(series.Maps, result)
		if result.WinnerID == a.TeamID {
			series.WinsA++
		} else {
			series.WinsB++
		}
	}

	if series.WinsA > series.WinsB {
		series.WinnerID = a.TeamID
	} else {
		series.WinnerID = b.TeamID
	}
	return series, nil
}

// Veto alternates bans and picks starting with a. Teams ban the map where
// they trail the opponent most and pick the map where they lead most. The
// last map standing is the decider. It returns the veto log and play order.
func Veto(a, b Lineup, pool []matches.Map, bestOf int) ([]matches.Veto, []matches.Map) {
	remaining := append([]matches.Map(nil), pool...)
	picks := bestOf - 1
	bans := len(pool) - bestOf
	openingBans := bans
	if openingBans > 2 {
		openingBans = 2
	}

	var (
		log    []matches.Veto
		played []matches.Map
		turn   int
	)
	next := func() (Lineup, Lineup) {
		defer func() { turn++ }()
		if turn%2 == 0 {
			return a, b
		}
		return b, a
	}
	take := func(i int) matches.Map {
		m := remaining[i]
		remaining = append(remaining[:i], remaining[i+1:]...)
		return m
	}

	for i := 0; i < openingBans; i++ {
		me, opp := next()
		m := take(extremeMap(me, opp, remaining, false))
		log = append(log, matches.Veto{TeamID: me.TeamID, MapID: m.ID, Action: matches.VetoBan})
	}
	for i := 0; i < picks; i++ {
		me, opp := next()
		m := take(extremeMap(me, opp, remaining, true))
		log = append(log, matches.Veto{TeamID: me.TeamID, MapID: m.ID, Action: matches.VetoPick})
		played = append(played, m)
	}
	for i := openingBans; i < bans; i++ {
		me, opp := next()
		m := take(extremeMap(me, opp, remaining, false))
		log = append(log, matches.Veto{TeamID: me.TeamID, MapID: m.ID, Action: matches.VetoBan})
	}

	decider := remaining[0]
	log = append(log, matches.Veto{MapID: decider.ID, Action: matches.VetoDecider})
	played = append(played, decider)
	return log, played
}

// mapEdge is how much stronger me is than opp on a map.
func mapEdge(me, opp Lineup, m matches.Map) float64 {
	return mapComfort(me, m) - mapComfort(opp, m)
}

func mapComfort(l Lineup, m matches.Map) float64 {
	rec := l.MapRecords[m.ID]
	prof := 0.0
	for _, p := range l.Players {
		prof += float64(p.Proficiency(m.ID))
	}
	if len(l.Players) > 0 {
		prof /= float64(len(l.Players))
	}
	return rec.WinRate() + prof/20
}

// extremeMap returns the index with the highest edge (pick) or lowest edge
// (ban). Ties keep pool order.
func extremeMap(me, opp Lineup, maps []matches.Map, highest bool) int {
	best := 0
	bestEdge := mapEdge(me, opp, maps[0])
	for i := 1; i < len(maps); i++ {
		edge := mapEdge(me, opp, maps[i])
		if (highest && edge > bestEdge) || (!highest && edge < bestEdge) {
			best, bestEdge = i, edge
		}
	}
	return best
}
