// Package economy owns budgets, contracts, and the transfer market. Every
// operation validates first and then commits a single store batch, so a
// failed call never leaves partial state behind.
package economy

import (
	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/esports-sim/internal/domain/contracts"
	"github.com/preston-bernstein/esports-sim/internal/domain/players"
	"github.com/preston-bernstein/esports-sim/internal/domain/teams"
	"github.com/preston-bernstein/esports-sim/internal/domain/transfers"
	"github.com/preston-bernstein/esports-sim/internal/random"
	"github.com/preston-bernstein/esports-sim/internal/store"
)

// Store is the persistence surface the economy needs.
type Store interface {
	Player(id string) (players.Player, bool)
	Team(id string) (teams.Team, bool)
	Budget(teamID string) (contracts.Budget, bool)
	ActiveContract(playerID string) (contracts.Contract, bool)
	ActiveContracts(teamID string) []contracts.Contract
	Listing(id string) (transfers.Listing, bool)
	Listings(activeOn int) []transfers.Listing
	Apply(b store.Batch)
}

// Config holds money and market tuning.
type Config struct {
	TerminationMultiplier int
	ListingDeadlineDays   int
	MarketValueScale      decimal.Decimal
	MarketValueFloor      decimal.Decimal
	PrimeAge              float64
	AgeSpread             float64
	RosteredPremium       float64
	SalaryDivisor         int64
}

// DefaultConfig returns the standard market.
func DefaultConfig() Config {
	return Config{
		TerminationMultiplier: 3,
		ListingDeadlineDays:   transfers.DefaultDeadlineDays,
		MarketValueScale:      decimal.NewFromInt(50000),
		MarketValueFloor:      decimal.NewFromInt(10000),
		PrimeAge:              25,
		AgeSpread:             6,
		RosteredPremium:       1.1,
		SalaryDivisor:         40,
	}
}

// Engine runs economy operations against a Store.
type Engine struct {
	cfg   Config
	store Store
	src   random.Source
}

// New constructs an Engine. src only feeds identifiers.
func New(cfg Config, st Store, src random.Source) *Engine {
	if cfg.TerminationMultiplier <= 0 {
		cfg.TerminationMultiplier = 3
	}
	if cfg.ListingDeadlineDays <= 0 {
		cfg.ListingDeadlineDays = transfers.DefaultDeadlineDays
	}
	if cfg.SalaryDivisor <= 0 {
		cfg.SalaryDivisor = 40
	}
	return &Engine{cfg: cfg, store: st, src: src}
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

func (e *Engine) newID() string {
	return random.UUID(e.src)
}

func (e *Engine) tx(day int, typ contracts.TransactionType, description string, amount decimal.Decimal) contracts.Transaction {
	return contracts.Transaction{
		ID:          e.newID(),
		Day:         day,
		Type:        typ,
		Description: description,
		Amount:      amount,
	}
}

// GetTeamBudget returns a snapshot of the team's budget.
func (e *Engine) GetTeamBudget(teamID string) (contracts.Budget, bool) {
	return e.store.Budget(teamID)
}

// GetPlayerContract returns the player's active contract.
func (e *Engine) GetPlayerContract(playerID string) (contracts.Contract, bool) {
	return e.store.ActiveContract(playerID)
}

// GetTeamContracts returns the team's active contracts.
func (e *Engine) GetTeamContracts(teamID string) []contracts.Contract {
	return e.store.ActiveContracts(teamID)
}

// GetActiveListings returns listings open on day.
func (e *Engine) GetActiveListings(day int) []transfers.Listing {
	return e.store.Listings(day)
}
