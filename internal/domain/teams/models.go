package teams

import "github.com/preston-bernstein/esports-sim/internal/domain/players"

// RosterSize is the number of players fielded in a match.
const RosterSize = 5

// Coach supports the roster with tactics and mental preparation.
type Coach struct {
	Name       string `json:"name"`
	Tactical   int    `json:"tactical"`
	Leadership int    `json:"leadership"`
	Mental     int    `json:"mental"`
	Reputation int    `json:"reputation"`
}

// PlayStyle sliders are on a 0-100 scale.
type PlayStyle struct {
	Aggression    float64 `json:"aggression"`
	TacticalDepth float64 `json:"tacticalDepth"`
	AWPDependence float64 `json:"awpDependence"`
	Adaptability  float64 `json:"adaptability"`
	Chemistry     float64 `json:"chemistry"`
}

// MapRecord aggregates a team's history on one map.
type MapRecord struct {
	Played              int `json:"played"`
	Wins                int `json:"wins"`
	AttackRoundsWon     int `json:"attackRoundsWon"`
	AttackRoundsPlayed  int `json:"attackRoundsPlayed"`
	DefenseRoundsWon    int `json:"defenseRoundsWon"`
	DefenseRoundsPlayed int `json:"defenseRoundsPlayed"`
}

// Team is an organization with an active roster, bench, and map history.
type Team struct {
	ID           string                  `json:"id"`
	Name         string                  `json:"name"`
	Tag          string                  `json:"tag"`
	Region       string                  `json:"region"`
	Coach        Coach                   `json:"coach"`
	Roster       []string                `json:"roster"`
	Bench        []string                `json:"bench,omitempty"`
	Roles        map[players.Role]string `json:"roles,omitempty"`
	Style        PlayStyle               `json:"style"`
	MapRecords   map[string]MapRecord    `json:"mapRecords,omitempty"`
	WorldRanking int                     `json:"worldRanking"`
	Elo          float64                 `json:"elo"`
	Reputation   int                     `json:"reputation"`
}
