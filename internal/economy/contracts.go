package economy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/esports-sim/internal/domain"
	"github.com/preston-bernstein/esports-sim/internal/domain/contracts"
	"github.com/preston-bernstein/esports-sim/internal/domain/players"
	"github.com/preston-bernstein/esports-sim/internal/domain/teams"
	"github.com/preston-bernstein/esports-sim/internal/store"
)

// ExpiringSoonDays is the window reported by ProcessExpirations.
const ExpiringSoonDays = 30

// SignRequest describes a new contract.
type SignRequest struct {
	PlayerID      string
	TeamID        string
	MonthlySalary decimal.Decimal
	Months        int
	SigningBonus  decimal.Decimal
	Day           int
	Clauses       []contracts.Clause
}

// Cost is the salary obligation plus the signing bonus.
func (r SignRequest) Cost() decimal.Decimal {
	return r.MonthlySalary.Mul(decimal.NewFromInt(int64(r.Months))).Add(r.SigningBonus)
}

func (r SignRequest) validate() error {
	if r.Months <= 0 {
		return domain.Errorf(domain.ErrInvalidArgument, "contract length must be positive, got %d", r.Months)
	}
	if r.MonthlySalary.IsNegative() || r.SigningBonus.IsNegative() {
		return domain.Errorf(domain.ErrInvalidArgument, "contract amounts cannot be negative")
	}
	return nil
}

// signing holds the entity copies touched by a contract signing.
type signing struct {
	contract contracts.Contract
	player   players.Player
	team     teams.Team
	budget   contracts.Budget
}

// SignContract binds a free player to a team, reserving the full salary
// obligation and the signing bonus from the team's budget.
func (e *Engine) SignContract(req SignRequest) (contracts.Contract, error) {
	if err := req.validate(); err != nil {
		return contracts.Contract{}, err
	}
	player, ok := e.store.Player(req.PlayerID)
	if !ok {
		return contracts.Contract{}, domain.Errorf(domain.ErrPlayerNotFound, "player %s", req.PlayerID)
	}
	team, ok := e.store.Team(req.TeamID)
	if !ok {
		return contracts.Contract{}, domain.Errorf(domain.ErrTeamNotFound, "team %s", req.TeamID)
	}
	budget, ok := e.store.Budget(req.TeamID)
	if !ok {
		return contracts.Contract{}, domain.Errorf(domain.ErrBudgetNotFound, "team %s", req.TeamID)
	}
	if _, ok := e.store.ActiveContract(req.PlayerID); ok {
		return contracts.Contract{}, domain.Errorf(domain.ErrPlayerAlreadyContracted, "player %s", req.PlayerID)
	}

	s, err := e.planSigning(req, player, team, budget)
	if err != nil {
		return contracts.Contract{}, err
	}

	batch := store.Batch{
		Players:   []players.Player{s.player},
		Teams:     []teams.Team{s.team},
		Budgets:   []contracts.Budget{s.budget},
		Contracts: []contracts.Contract{s.contract},
	}
	// A player still attached to an old team (expired deal) leaves it.
	if player.TeamID != "" && player.TeamID != req.TeamID {
		if old, ok := e.store.Team(player.TeamID); ok {
			old.RemovePlayer(player.ID)
			batch.Teams = append(batch.Teams, old)
		}
	}
	e.store.Apply(batch)
	return s.contract, nil
}

// planSigning applies a signing to copies without touching the store.
func (e *Engine) planSigning(req SignRequest, player players.Player, team teams.Team, budget contracts.Budget) (signing, error) {
	if player.IsRetired() {
		return signing{}, domain.Errorf(domain.ErrInvalidArgument, "player %s is retired", player.ID)
	}
	cost := req.Cost()
	if !budget.CanAfford(cost) {
		return signing{}, domain.Errorf(domain.ErrInsufficientBudget,
			"team %s needs %s, has %s available", team.ID, cost.StringFixed(2), budget.Available().StringFixed(2))
	}

	c := contracts.Contract{
		ID:            e.newID(),
		PlayerID:      player.ID,
		TeamID:        team.ID,
		MonthlySalary: req.MonthlySalary,
		SigningBonus:  req.SigningBonus,
		Months:        req.Months,
		StartDay:      req.Day,
		EndDay:        req.Day + req.Months*contracts.DaysPerMonth,
		Status:        contracts.StatusActive,
		Clauses:       append([]contracts.Clause(nil), req.Clauses...),
	}

	obligation := c.Obligation()
	budget.CommittedSalaries = budget.CommittedSalaries.Add(obligation)
	budget.Record(e.tx(req.Day, contracts.TxExpense,
		fmt.Sprintf("Salary reservation for %s (%d months)", player.DisplayName(), c.Months), obligation.Neg()))
	if req.SigningBonus.IsPositive() {
		budget.Expenses = budget.Expenses.Add(req.SigningBonus)
		budget.Record(e.tx(req.Day, contracts.TxBonus, "Signing bonus for "+player.DisplayName(), req.SigningBonus.Neg()))
	}

	team.AddPlayer(player.ID)

	player.TeamID = team.ID
	player.Salary = c.MonthlySalary
	player.ContractMonths = c.Months
	player.MarketValue = MarketValue(player, e.cfg)
	player.AddEvent(req.Day, players.EventSigning, fmt.Sprintf("signed with %s for %d months", team.Name, c.Months))

	return signing{contract: c, player: player, team: team, budget: budget}, nil
}

// AddContractClause attaches a clause to the player's active contract.
func (e *Engine) AddContractClause(playerID string, clause contracts.Clause) (contracts.Contract, error) {
	c, ok := e.store.ActiveContract(playerID)
	if !ok {
		return contracts.Contract{}, domain.Errorf(domain.ErrContractNotFound, "no active contract for player %s", playerID)
	}
	if clause.Value.IsNegative() {
		return contracts.Contract{}, domain.Errorf(domain.ErrInvalidArgument, "clause value cannot be negative")
	}
	if _, exists := c.Clause(clause.Type); exists {
		return contracts.Contract{}, domain.Errorf(domain.ErrInvalidArgument, "contract already has a %s clause", clause.Type)
	}
	c.Clauses = append(c.Clauses, clause)
	e.store.Apply(store.Batch{Contracts: []contracts.Contract{c}})
	return c, nil
}

// TerminateContract ends the player's contract early. The team pays the buyout
// clause or the default salary multiple, and the unpaid reservation is released.
func (e *Engine) TerminateContract(playerID string, day int) (contracts.Contract, error) {
	c, ok := e.store.ActiveContract(playerID)
	if !ok {
		return contracts.Contract{}, domain.Errorf(domain.ErrContractNotFound, "no active contract for player %s", playerID)
	}
	budget, ok := e.store.Budget(c.TeamID)
	if !ok {
		return contracts.Contract{}, domain.Errorf(domain.ErrBudgetNotFound, "team %s", c.TeamID)
	}

	cost := c.TerminationCost(e.cfg.TerminationMultiplier)
	release := c.UnpaidObligation()
	if budget.Available().Add(release).LessThan(cost) {
		return contracts.Contract{}, domain.Errorf(domain.ErrInsufficientBudget,
			"termination of %s costs %s", playerID, cost.StringFixed(2))
	}

	budget.CommittedSalaries = budget.CommittedSalaries.Sub(release)
	budget.Expenses = budget.Expenses.Add(cost)
	budget.Record(e.tx(day, contracts.TxRelease, "Contract termination "+playerID, cost.Neg()))

	c.Status = contracts.StatusTerminated
	c.EndDay = day

	batch := store.Batch{
		Contracts: []contracts.Contract{c},
		Budgets:   []contracts.Budget{budget},
		Listings:  e.withdrawnListings(playerID),
	}
	if p, ok := e.store.Player(playerID); ok {
		releasePlayer(&p, day, "contract terminated")
		batch.Players = []players.Player{p}
	}
	if t, ok := e.store.Team(c.TeamID); ok {
		t.RemovePlayer(playerID)
		t.PromoteFromBench()
		batch.Teams = []teams.Team{t}
	}
	e.store.Apply(batch)
	return c, nil
}

// ProcessExpirations expires every active contract whose end day has passed
// and releases the player. It also returns contracts ending within
// ExpiringSoonDays so the caller can log or renew them.
func (e *Engine) ProcessExpirations(day int) (expired, expiringSoon []contracts.Contract) {
	var batch store.Batch
	budgets := make(map[string]contracts.Budget)
	touched := make(map[string]teams.Team)

	for _, c := range e.store.ActiveContracts("") {
		if c.EndDay > day {
			if c.EndDay-day < ExpiringSoonDays {
				expiringSoon = append(expiringSoon, c)
			}
			continue
		}

		if release := c.UnpaidObligation(); release.IsPositive() {
			b, ok := budgets[c.TeamID]
			if !ok {
				b, ok = e.store.Budget(c.TeamID)
			}
			if ok {
				b.CommittedSalaries = b.CommittedSalaries.Sub(release)
				budgets[c.TeamID] = b
			}
		}
		c.Status = contracts.StatusExpired
		expired = append(expired, c)
		batch.Listings = append(batch.Listings, e.withdrawnListings(c.PlayerID)...)

		if p, ok := e.store.Player(c.PlayerID); ok {
			releasePlayer(&p, day, "contract expired")
			batch.Players = append(batch.Players, p)
		}
		t, ok := touched[c.TeamID]
		if !ok {
			t, ok = e.store.Team(c.TeamID)
		}
		if ok {
			t.RemovePlayer(c.PlayerID)
			t.PromoteFromBench()
			touched[c.TeamID] = t
		}
	}
	if len(expired) == 0 {
		return nil, expiringSoon
	}

	batch.Contracts = expired
	for _, b := range budgets {
		batch.Budgets = append(batch.Budgets, b)
	}
	for _, t := range touched {
		batch.Teams = append(batch.Teams, t)
	}
	e.store.Apply(batch)
	return expired, expiringSoon
}

// RetireContract closes a retiring player's contract without a termination
// charge. The unpaid reservation is released and the player leaves the team.
func (e *Engine) RetireContract(playerID string, day int) (contracts.Contract, error) {
	c, ok := e.store.ActiveContract(playerID)
	if !ok {
		return contracts.Contract{}, domain.Errorf(domain.ErrContractNotFound, "no active contract for player %s", playerID)
	}
	batch := store.Batch{Listings: e.withdrawnListings(playerID)}
	if b, ok := e.store.Budget(c.TeamID); ok {
		b.CommittedSalaries = b.CommittedSalaries.Sub(c.UnpaidObligation())
		batch.Budgets = []contracts.Budget{b}
	}
	c.Status = contracts.StatusExpired
	c.EndDay = day
	batch.Contracts = []contracts.Contract{c}

	if p, ok := e.store.Player(playerID); ok {
		releasePlayer(&p, day, "retired")
		batch.Players = []players.Player{p}
	}
	if t, ok := e.store.Team(c.TeamID); ok {
		t.RemovePlayer(playerID)
		t.PromoteFromBench()
		batch.Teams = []teams.Team{t}
	}
	e.store.Apply(batch)
	return c, nil
}

func releasePlayer(p *players.Player, day int, reason string) {
	p.TeamID = ""
	p.Salary = decimal.Zero
	p.ContractMonths = 0
	p.AddEvent(day, players.EventRelease, reason)
}
