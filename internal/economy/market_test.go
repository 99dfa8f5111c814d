package economy

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/esports-sim/internal/domain/players"
)

func TestMarketValuePeaksAtPrimeAge(t *testing.T) {
	cfg := DefaultConfig()
	value := func(age int) decimal.Decimal {
		return MarketValue(players.Player{Age: age, Skills: uniformSkills(15)}, cfg)
	}

	prime := value(25)
	if !prime.Equal(decimal.NewFromInt(750000)) {
		t.Fatalf("expected 15 x 50000 at prime, got %s", prime)
	}
	for _, age := range []int{18, 22, 28, 33} {
		if !value(age).LessThan(prime) {
			t.Fatalf("expected age %d below prime value", age)
		}
	}
	if !value(22).Equal(value(28)) {
		t.Fatalf("expected symmetric age curve, got %s vs %s", value(22), value(28))
	}
}

func TestMarketValueFloor(t *testing.T) {
	cfg := DefaultConfig()
	got := MarketValue(players.Player{Age: 45, Skills: uniformSkills(1)}, cfg)
	if !got.Equal(cfg.MarketValueFloor) {
		t.Fatalf("expected floor %s, got %s", cfg.MarketValueFloor, got)
	}
}

func TestMarketValueRosteredPremium(t *testing.T) {
	cfg := DefaultConfig()
	free := MarketValue(players.Player{Age: 25, Skills: uniformSkills(10)}, cfg)
	signed := MarketValue(players.Player{Age: 25, Skills: uniformSkills(10), TeamID: "t1"}, cfg)
	if !signed.GreaterThan(free) {
		t.Fatalf("expected rostered premium, got free %s signed %s", free, signed)
	}
}

func TestSuggestedSalary(t *testing.T) {
	got := SuggestedSalary(decimal.NewFromInt(400000), DefaultConfig())
	if !got.Equal(decimal.NewFromInt(10000)) {
		t.Fatalf("expected 10000, got %s", got)
	}
}
