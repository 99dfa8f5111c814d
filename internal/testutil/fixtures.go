package testutil

import (
	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/esports-sim/internal/domain/contracts"
	"github.com/preston-bernstein/esports-sim/internal/domain/players"
	"github.com/preston-bernstein/esports-sim/internal/domain/teams"
)

// SamplePlayer returns a rifler of age 24 with every skill set to skill.
func SamplePlayer(id string, skill int) players.Player {
	return players.Player{
		ID:          id,
		FirstName:   "Test",
		LastName:    "Player",
		Nickname:    id,
		Nationality: "SE",
		Age:         24,
		Role:        players.RoleRifler,
		Skills: players.Skills{
			Aim:          skill,
			ReactionTime: skill,
			Positioning:  skill,
			Utility:      skill,
			Clutch:       skill,
			Consistency:  skill,
			Mental:       skill,
			GameSense:    skill,
			Movement:     skill,
			AWP:          skill,
			Rifle:        skill,
		},
		Salary:      decimal.NewFromInt(5000),
		MarketValue: decimal.NewFromInt(100000),
	}
}

// SampleTeam returns a team with the provided roster and neutral ratings.
func SampleTeam(id string, roster ...string) teams.Team {
	return teams.Team{
		ID:     id,
		Name:   "Team " + id,
		Tag:    id,
		Region: "EU",
		Roster: roster,
		Elo:    1500,
	}
}

// SampleContract returns an active twelve month contract starting on day 0.
func SampleContract(id, playerID, teamID string, monthly int64) contracts.Contract {
	return contracts.Contract{
		ID:            id,
		PlayerID:      playerID,
		TeamID:        teamID,
		MonthlySalary: decimal.NewFromInt(monthly),
		SigningBonus:  decimal.Zero,
		Months:        12,
		EndDay:        360,
		Status:        contracts.StatusActive,
	}
}
