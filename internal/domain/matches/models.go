package matches

// Side is attack or defense within a round.
type Side string

const (
	SideAttack  Side = "attack"
	SideDefense Side = "defense"
)

// Map describes a playable map and its inherent attack-side bias.
type Map struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	AttackBias float64 `json:"attackBias"`
}

// PlayerRoundStat is a player's contribution to one round.
type PlayerRoundStat struct {
	PlayerID  string `json:"playerId"`
	TeamID    string `json:"teamId"`
	Kills     int    `json:"kills"`
	Deaths    int    `json:"deaths"`
	Assists   int    `json:"assists"`
	Damage    int    `json:"damage"`
	Headshots int    `json:"headshots"`
	MVP       bool   `json:"mvp,omitempty"`
	Planted   bool   `json:"planted,omitempty"`
	Defused   bool   `json:"defused,omitempty"`
}

// RoundResult records a single round.
type RoundResult struct {
	Number     int               `json:"number"`
	AttackerID string            `json:"attackerId"`
	WinnerID   string            `json:"winnerId"`
	WinnerSide Side              `json:"winnerSide"`
	ScoreA     int               `json:"scoreA"`
	ScoreB     int               `json:"scoreB"`
	Overtime   bool              `json:"overtime,omitempty"`
	Stats      []PlayerRoundStat `json:"stats"`
}

// PlayerPerformance aggregates a player's map.
type PlayerPerformance struct {
	PlayerID  string  `json:"playerId"`
	TeamID    string  `json:"teamId"`
	Kills     int     `json:"kills"`
	Deaths    int     `json:"deaths"`
	Assists   int     `json:"assists"`
	Headshots int     `json:"headshots"`
	Damage    int     `json:"damage"`
	MVPs      int     `json:"mvps"`
	Plants    int     `json:"plants"`
	Defuses   int     `json:"defuses"`
	Rounds    int     `json:"rounds"`
	Rating    float64 `json:"rating"`
	Won       bool    `json:"won"`
}

// MatchResult is a completed map. Results are immutable once produced.
type MatchResult struct {
	ID             string              `json:"id"`
	TeamA          string              `json:"teamA"`
	TeamB          string              `json:"teamB"`
	MapID          string              `json:"mapId"`
	Day            int                 `json:"day"`
	MaxRounds      int                 `json:"maxRounds"`
	ScoreA         int                 `json:"scoreA"`
	ScoreB         int                 `json:"scoreB"`
	WinnerID       string              `json:"winnerId"`
	RoundsPlayed   int                 `json:"roundsPlayed"`
	OvertimeBlocks int                 `json:"overtimeBlocks"`
	SuddenDeath    bool                `json:"suddenDeath,omitempty"`
	Rounds         []RoundResult       `json:"rounds,omitempty"`
	Performances   []PlayerPerformance `json:"performances"`
}

// VetoAction is a step in the map veto.
type VetoAction string

const (
	VetoBan     VetoAction = "ban"
	VetoPick    VetoAction = "pick"
	VetoDecider VetoAction = "decider"
)

// Veto is one veto step.
type Veto struct {
	TeamID string     `json:"teamId,omitempty"`
	MapID  string     `json:"mapId"`
	Action VetoAction `json:"action"`
}

// Series is a best-of-N set of maps.
type Series struct {
	ID       string        `json:"id"`
	TeamA    string        `json:"teamA"`
	TeamB    string        `json:"teamB"`
	BestOf   int           `json:"bestOf"`
	Day      int           `json:"day"`
	Veto     []Veto        `json:"veto"`
	Maps     []MatchResult `json:"maps"`
	WinsA    int           `json:"winsA"`
	WinsB    int           `json:"winsB"`
	WinnerID string        `json:"winnerId"`
}
