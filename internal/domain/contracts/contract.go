package contracts

import "github.com/shopspring/decimal"

// Obligation is the full salary reservation made at signing.
func (c Contract) Obligation() decimal.Decimal {
	return c.MonthlySalary.Mul(decimal.NewFromInt(int64(c.Months)))
}

// UnpaidObligation is the part of the reservation not yet paid out.
func (c Contract) UnpaidObligation() decimal.Decimal {
	remaining := c.Months - c.PaidMonths
	if remaining < 0 {
		remaining = 0
	}
	return c.MonthlySalary.Mul(decimal.NewFromInt(int64(remaining)))
}

// MonthsRemaining counts whole months left at day, rounding up.
func (c Contract) MonthsRemaining(day int) int {
	left := c.EndDay - day
	if left <= 0 {
		return 0
	}
	return (left + DaysPerMonth - 1) / DaysPerMonth
}

// IsActive reports whether the contract is in force.
func (c Contract) IsActive() bool {
	return c.Status == StatusActive
}

// Clause returns the first clause of the given type.
func (c Contract) Clause(typ ClauseType) (Clause, bool) {
	for _, cl := range c.Clauses {
		if cl.Type == typ {
			return cl, true
		}
	}
	return Clause{}, false
}

// TerminationCost is the buyout clause value or multiplier times monthly salary.
func (c Contract) TerminationCost(multiplier int) decimal.Decimal {
	if cl, ok := c.Clause(ClauseBuyout); ok {
		return cl.Value
	}
	return c.MonthlySalary.Mul(decimal.NewFromInt(int64(multiplier)))
}

// Clone returns a deep copy.
func (c Contract) Clone() Contract {
	out := c
	if c.Clauses != nil {
		out.Clauses = append([]Clause(nil), c.Clauses...)
	}
	return out
}

// Available is the money the team can still commit.
func (b Budget) Available() decimal.Decimal {
	return b.Total.
		Add(b.Sponsorship).
		Add(b.PrizeMoney).
		Add(b.TransferIncome).
		Sub(b.CommittedSalaries).
		Sub(b.PaidSalaries).
		Sub(b.Expenses)
}

// CanAfford reports whether amount fits the available balance.
func (b Budget) CanAfford(amount decimal.Decimal) bool {
	return b.Available().GreaterThanOrEqual(amount)
}

// Record appends a transaction.
func (b *Budget) Record(tx Transaction) {
	b.Transactions = append(b.Transactions, tx)
}

// Clone returns a deep copy.
func (b Budget) Clone() Budget {
	out := b
	if b.Transactions != nil {
		out.Transactions = append([]Transaction(nil), b.Transactions...)
	}
	return out
}
