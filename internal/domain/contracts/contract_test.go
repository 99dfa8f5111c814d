package contracts

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestObligations(t *testing.T) {
	c := Contract{MonthlySalary: decimal.NewFromInt(10000), Months: 12, PaidMonths: 4}
	if !c.Obligation().Equal(decimal.NewFromInt(120000)) {
		t.Fatalf("unexpected obligation %s", c.Obligation())
	}
	if !c.UnpaidObligation().Equal(decimal.NewFromInt(80000)) {
		t.Fatalf("unexpected unpaid obligation %s", c.UnpaidObligation())
	}
}

func TestTerminationCostPrefersBuyout(t *testing.T) {
	c := Contract{MonthlySalary: decimal.NewFromInt(10000)}
	if !c.TerminationCost(3).Equal(decimal.NewFromInt(30000)) {
		t.Fatalf("expected 3x salary, got %s", c.TerminationCost(3))
	}
	c.Clauses = []Clause{{Type: ClauseBuyout, Value: decimal.NewFromInt(55000)}}
	if !c.TerminationCost(3).Equal(decimal.NewFromInt(55000)) {
		t.Fatalf("expected buyout value, got %s", c.TerminationCost(3))
	}
}

func TestMonthsRemaining(t *testing.T) {
	c := Contract{EndDay: 100}
	cases := map[int]int{100: 0, 99: 1, 70: 1, 69: 2, 200: 0}
	for day, want := range cases {
		if got := c.MonthsRemaining(day); got != want {
			t.Fatalf("day %d: expected %d got %d", day, want, got)
		}
	}
}

func TestBudgetAvailable(t *testing.T) {
	b := Budget{
		Total:             decimal.NewFromInt(500000),
		Sponsorship:       decimal.NewFromInt(20000),
		PrizeMoney:        decimal.NewFromInt(10000),
		CommittedSalaries: decimal.NewFromInt(100000),
		PaidSalaries:      decimal.NewFromInt(30000),
		Expenses:          decimal.NewFromInt(5000),
	}
	if !b.Available().Equal(decimal.NewFromInt(395000)) {
		t.Fatalf("unexpected available %s", b.Available())
	}
	if b.CanAfford(decimal.NewFromInt(400000)) {
		t.Fatal("expected 400000 to be unaffordable")
	}
}

func TestBudgetCloneIsDeep(t *testing.T) {
	b := Budget{Transactions: []Transaction{{ID: "1"}}}
	c := b.Clone()
	c.Transactions[0].ID = "2"
	if b.Transactions[0].ID != "1" {
		t.Fatal("expected original untouched")
	}
}
