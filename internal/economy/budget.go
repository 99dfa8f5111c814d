package economy

import (
	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/esports-sim/internal/domain"
	"github.com/preston-bernstein/esports-sim/internal/domain/contracts"
	"github.com/preston-bernstein/esports-sim/internal/store"
)

// InitializeBudget opens a ledger for the team with a starting balance.
func (e *Engine) InitializeBudget(teamID string, amount decimal.Decimal, day int) (contracts.Budget, error) {
	if _, ok := e.store.Team(teamID); !ok {
		return contracts.Budget{}, domain.Errorf(domain.ErrTeamNotFound, "team %s", teamID)
	}
	if amount.IsNegative() {
		return contracts.Budget{}, domain.Errorf(domain.ErrInvalidArgument, "starting budget cannot be negative")
	}
	b := contracts.Budget{TeamID: teamID, Total: amount}
	b.Record(e.tx(day, contracts.TxIncome, "Initial budget", amount))
	e.store.Apply(store.Batch{Budgets: []contracts.Budget{b}})
	return b, nil
}

// AddSponsorshipIncome credits sponsorship money.
func (e *Engine) AddSponsorshipIncome(teamID string, amount decimal.Decimal, day int) error {
	return e.credit(teamID, amount, day, contracts.TxIncome, "Sponsorship income", func(b *contracts.Budget) {
		b.Sponsorship = b.Sponsorship.Add(amount)
	})
}

// AddPrizeMoney credits tournament winnings.
func (e *Engine) AddPrizeMoney(teamID string, amount decimal.Decimal, description string, day int) error {
	return e.credit(teamID, amount, day, contracts.TxPrizeMoney, description, func(b *contracts.Budget) {
		b.PrizeMoney = b.PrizeMoney.Add(amount)
	})
}

func (e *Engine) credit(teamID string, amount decimal.Decimal, day int, typ contracts.TransactionType, description string, apply func(*contracts.Budget)) error {
	if !amount.IsPositive() {
		return domain.Errorf(domain.ErrInvalidArgument, "credit must be positive, got %s", amount)
	}
	b, ok := e.store.Budget(teamID)
	if !ok {
		return domain.Errorf(domain.ErrBudgetNotFound, "team %s", teamID)
	}
	apply(&b)
	b.Record(e.tx(day, typ, description, amount))
	e.store.Apply(store.Batch{Budgets: []contracts.Budget{b}})
	return nil
}

// ProcessMonthlySalaries pays one month on every active contract that still
// has unpaid months. The caller invokes it exactly once per simulated month.
func (e *Engine) ProcessMonthlySalaries(day int) (int, decimal.Decimal) {
	active := e.store.ActiveContracts("")
	budgets := make(map[string]contracts.Budget)
	var (
		paid    []contracts.Contract
		total   = decimal.Zero
		payouts int
	)
	for _, c := range active {
		if c.PaidMonths >= c.Months {
			continue
		}
		b, ok := budgets[c.TeamID]
		if !ok {
			if b, ok = e.store.Budget(c.TeamID); !ok {
				continue
			}
		}
		c.PaidMonths++
		b.CommittedSalaries = b.CommittedSalaries.Sub(c.MonthlySalary)
		b.PaidSalaries = b.PaidSalaries.Add(c.MonthlySalary)
		b.Record(e.tx(day, contracts.TxSalary, "Salary "+c.PlayerID, c.MonthlySalary.Neg()))
		budgets[c.TeamID] = b
		paid = append(paid, c)
		total = total.Add(c.MonthlySalary)
		payouts++
	}

	batch := store.Batch{Contracts: paid}
	for _, b := range budgets {
		batch.Budgets = append(batch.Budgets, b)
	}
	e.store.Apply(batch)
	return payouts, total
}
