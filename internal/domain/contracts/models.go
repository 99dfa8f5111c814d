package contracts

import "github.com/shopspring/decimal"

// DaysPerMonth is the simulated calendar month.
const DaysPerMonth = 30

// Status is a contract lifecycle state.
type Status string

const (
	StatusActive     Status = "active"
	StatusExpired    Status = "expired"
	StatusTerminated Status = "terminated"
)

// ClauseType names a contract clause.
type ClauseType string

const (
	ClauseBuyout            ClauseType = "buyout"
	ClauseRelease           ClauseType = "release"
	ClauseChampionshipBonus ClauseType = "championship_bonus"
	ClausePerformanceBonus  ClauseType = "performance_bonus"
	ClauseLoyaltyBonus      ClauseType = "loyalty_bonus"
)

// Clause is a contract term with a money value and optional trigger threshold.
type Clause struct {
	Type      ClauseType      `json:"type"`
	Value     decimal.Decimal `json:"value"`
	Threshold float64         `json:"threshold,omitempty"`
}

// Contract binds a player to a team for a number of months.
type Contract struct {
	ID            string          `json:"id"`
	PlayerID      string          `json:"playerId"`
	TeamID        string          `json:"teamId"`
	MonthlySalary decimal.Decimal `json:"monthlySalary"`
	SigningBonus  decimal.Decimal `json:"signingBonus"`
	Months        int             `json:"months"`
	PaidMonths    int             `json:"paidMonths"`
	StartDay      int             `json:"startDay"`
	EndDay        int             `json:"endDay"`
	Status        Status          `json:"status"`
	Clauses       []Clause        `json:"clauses,omitempty"`
}

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TxSalary      TransactionType = "salary"
	TxBonus       TransactionType = "bonus"
	TxIncome      TransactionType = "income"
	TxExpense     TransactionType = "expense"
	TxPrizeMoney  TransactionType = "prize_money"
	TxTransferFee TransactionType = "transfer_fee"
	TxRelease     TransactionType = "release"
)

// Transaction is an append-only ledger line. Negative amounts are outflows.
type Transaction struct {
	ID          string          `json:"id"`
	Day         int             `json:"day"`
	Type        TransactionType `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// Budget is a team's ledger. Salary obligations are reserved at signing.
type Budget struct {
	TeamID            string          `json:"teamId"`
	Total             decimal.Decimal `json:"total"`
	Sponsorship       decimal.Decimal `json:"sponsorship"`
	PrizeMoney        decimal.Decimal `json:"prizeMoney"`
	TransferIncome    decimal.Decimal `json:"transferIncome"`
	CommittedSalaries decimal.Decimal `json:"committedSalaries"`
	PaidSalaries      decimal.Decimal `json:"paidSalaries"`
	Expenses          decimal.Decimal `json:"expenses"`
	Transactions      []Transaction   `json:"transactions,omitempty"`
}
