package tournaments

// RoundDiff is rounds for minus rounds against.
func (s Standing) RoundDiff() int {
	return s.RoundsFor - s.RoundsAgainst
}

// FixturesOn returns fixtures scheduled on day that have not been played.
func (t Tournament) FixturesOn(day int) []Fixture {
	var out []Fixture
	for _, f := range t.Fixtures {
		if f.Day == day && f.WinnerID == "" {
			out = append(out, f)
		}
	}
	return out
}

// Pending reports whether any fixture of stage is unplayed.
func (t Tournament) Pending(stage Stage) bool {
	for _, f := range t.Fixtures {
		if f.Stage == stage && f.WinnerID == "" {
			return true
		}
	}
	return false
}

// IsComplete reports whether the tournament finished.
func (t Tournament) IsComplete() bool {
	return t.Stage == StageCompleted
}

// Clone returns a deep copy.
func (t Tournament) Clone() Tournament {
	out := t
	out.TeamIDs = append([]string(nil), t.TeamIDs...)
	out.Fixtures = append([]Fixture(nil), t.Fixtures...)
	if t.Standings != nil {
		out.Standings = append([]Standing(nil), t.Standings...)
	}
	if t.Placements != nil {
		out.Placements = append([]string(nil), t.Placements...)
	}
	return out
}
