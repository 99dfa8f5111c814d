package seasons

// DefaultLengthDays is a nine month season.
const DefaultLengthDays = 270

// Phase is the season stage derived from progress.
type Phase string

const (
	PhasePreSeason     Phase = "preseason"
	PhaseRegularSeason Phase = "regular_season"
	PhasePlayoffs      Phase = "playoffs"
	PhaseOffseason     Phase = "offseason"
)

// Season tracks calendar progress. Phase is always derived, never stored.
type Season struct {
	Number     int    `json:"number"`
	Year       int    `json:"year"`
	StartDay   int    `json:"startDay"`
	LengthDays int    `json:"lengthDays"`
	DaysPassed int    `json:"daysPassed"`
	LeagueID   string `json:"leagueId,omitempty"`
	PlayoffsID string `json:"playoffsId,omitempty"`
}

// PhaseFor maps progress to a phase: under 20% preseason, under 70% regular
// season, under 90% playoffs, offseason after.
func PhaseFor(daysPassed, length int) Phase {
	if length <= 0 {
		return PhaseOffseason
	}
	switch {
	case daysPassed*10 < length*2:
		return PhasePreSeason
	case daysPassed*10 < length*7:
		return PhaseRegularSeason
	case daysPassed*10 < length*9:
		return PhasePlayoffs
	default:
		return PhaseOffseason
	}
}

// PhaseStart returns the first day (relative to season start) of phase.
func PhaseStart(phase Phase, length int) int {
	var tenths int
	switch phase {
	case PhasePreSeason:
		return 0
	case PhaseRegularSeason:
		tenths = 2
	case PhasePlayoffs:
		tenths = 7
	default:
		tenths = 9
	}
	return (length*tenths + 9) / 10
}

// Phase derives the current phase.
func (s Season) Phase() Phase {
	return PhaseFor(s.DaysPassed, s.LengthDays)
}

// Day is the absolute simulated day.
func (s Season) Day() int {
	return s.StartDay + s.DaysPassed
}

// Complete reports whether every day has been played.
func (s Season) Complete() bool {
	return s.DaysPassed >= s.LengthDays
}

// Progress is the fraction of the season elapsed.
func (s Season) Progress() float64 {
	if s.LengthDays <= 0 {
		return 1
	}
	return float64(s.DaysPassed) / float64(s.LengthDays)
}
