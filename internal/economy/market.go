package economy

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/esports-sim/internal/domain/players"
)

// MarketValue estimates a transfer value from core skills and age. Value
// peaks at cfg.PrimeAge and falls off on a Gaussian curve, never dropping
// below cfg.MarketValueFloor.
func MarketValue(p players.Player, cfg Config) decimal.Decimal {
	spread := cfg.AgeSpread
	if spread <= 0 {
		spread = 6
	}
	dev := float64(p.Age) - cfg.PrimeAge
	ageFactor := math.Exp(-(dev * dev) / (2 * spread * spread))

	factor := p.Skills.Core() * ageFactor
	if p.TeamID != "" && cfg.RosteredPremium > 0 {
		factor *= cfg.RosteredPremium
	}

	value := cfg.MarketValueScale.Mul(decimal.NewFromFloat(factor)).Round(0)
	if value.LessThan(cfg.MarketValueFloor) {
		return cfg.MarketValueFloor
	}
	return value
}

// SuggestedSalary is the monthly wage a player of the given value expects.
func SuggestedSalary(value decimal.Decimal, cfg Config) decimal.Decimal {
	div := cfg.SalaryDivisor
	if div <= 0 {
		div = 40
	}
	return value.Div(decimal.NewFromInt(div)).Round(0)
}
