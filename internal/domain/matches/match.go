package matches

// LoserID returns the team that did not win.
func (m MatchResult) LoserID() string {
	if m.WinnerID == m.TeamA {
		return m.TeamB
	}
	return m.TeamA
}

// Score returns the rounds won by teamID.
func (m MatchResult) Score(teamID string) int {
	switch teamID {
	case m.TeamA:
		return m.ScoreA
	case m.TeamB:
		return m.ScoreB
	}
	return 0
}

// Performance looks up a player's aggregate line.
func (m MatchResult) Performance(playerID string) (PlayerPerformance, bool) {
	for _, p := range m.Performances {
		if p.PlayerID == playerID {
			return p, true
		}
	}
	return PlayerPerformance{}, false
}

// Summary returns a copy without round-by-round detail.
func (m MatchResult) Summary() MatchResult {
	out := m
	out.Rounds = nil
	out.Performances = append([]PlayerPerformance(nil), m.Performances...)
	return out
}

// ADR is average damage per round.
func (p PlayerPerformance) ADR() float64 {
	if p.Rounds == 0 {
		return 0
	}
	return float64(p.Damage) / float64(p.Rounds)
}

// WinsNeeded is the number of maps that decides a best-of-n series.
func WinsNeeded(bestOf int) int {
	return bestOf/2 + 1
}

// Decided reports whether a team reached the majority.
func (s Series) Decided() bool {
	need := WinsNeeded(s.BestOf)
	return s.WinsA >= need || s.WinsB >= need
}

// LoserID returns the team that did not win the series.
func (s Series) LoserID() string {
	if s.WinnerID == s.TeamA {
		return s.TeamB
	}
	return s.TeamA
}

// RoundDiff returns rounds won minus rounds lost for teamID across maps.
func (s Series) RoundDiff(teamID string) (won, lost int) {
	for _, m := range s.Maps {
		won += m.Score(teamID)
		if teamID == m.TeamA {
			lost += m.ScoreB
		} else {
			lost += m.ScoreA
		}
	}
	return won, lost
}
