package tournaments

import "github.com/shopspring/decimal"

// Tier ranks event prestige.
type Tier string

const (
	TierMajor Tier = "major"
	TierS     Tier = "s"
	TierA     Tier = "a"
	TierB     Tier = "b"
	TierC     Tier = "c"
)

// Format is the competition structure.
type Format string

const (
	FormatRoundRobin        Format = "round_robin"
	FormatSingleElimination Format = "single_elimination"
)

// Stage is the tournament progression state.
type Stage string

const (
	StageNotStarted    Stage = "not_started"
	StageGroup         Stage = "group_stage"
	StageQuarterfinals Stage = "quarterfinals"
	StageSemifinals    Stage = "semifinals"
	StageGrandFinal    Stage = "grand_final"
	StageCompleted     Stage = "completed"
)

// Fixture is a scheduled series.
type Fixture struct {
	ID       string `json:"id"`
	Day      int    `json:"day"`
	TeamA    string `json:"teamA"`
	TeamB    string `json:"teamB"`
	BestOf   int    `json:"bestOf"`
	Stage    Stage  `json:"stage"`
	Slot     int    `json:"slot"`
	SeriesID string `json:"seriesId,omitempty"`
	WinnerID string `json:"winnerId,omitempty"`
}

// Standing is a league table row.
type Standing struct {
	TeamID        string `json:"teamId"`
	Played        int    `json:"played"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	RoundsFor     int    `json:"roundsFor"`
	RoundsAgainst int    `json:"roundsAgainst"`
	Points        int    `json:"points"`
}

// Tournament is a league or bracket event.
type Tournament struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Tier       Tier            `json:"tier"`
	Format     Format          `json:"format"`
	Stage      Stage           `json:"stage"`
	TeamIDs    []string        `json:"teamIds"`
	PrizePool  decimal.Decimal `json:"prizePool"`
	StartDay   int             `json:"startDay"`
	EndDay     int             `json:"endDay"`
	Fixtures   []Fixture       `json:"fixtures"`
	Standings  []Standing      `json:"standings,omitempty"`
	ChampionID string          `json:"championId,omitempty"`
	RunnerUpID string          `json:"runnerUpId,omitempty"`
	Placements []string        `json:"placements,omitempty"`
	PrizesPaid bool            `json:"prizesPaid,omitempty"`
}

// RankedTeam is a world ranking row.
type RankedTeam struct {
	TeamID   string  `json:"teamId"`
	Position int     `json:"position"`
	Points   float64 `json:"points"`
	Change   int     `json:"change"`
}
