package tournament

import (
	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/esports-sim/internal/domain/tournaments"
)

// Payout is one team's share of a prize pool.
type Payout struct {
	TeamID string
	Place  int
	Amount decimal.Decimal
}

var two = decimal.NewFromInt(2)

// PrizeSplit halves the share for every place: 50%, 25%, 12.5% and so on.
// The last place receives whatever remains, so the shares always sum to pool.
func PrizeSplit(pool decimal.Decimal, places int) []decimal.Decimal {
	if places <= 0 || !pool.IsPositive() {
		return nil
	}
	out := make([]decimal.Decimal, places)
	remaining := pool
	share := pool
	for i := 0; i < places-1; i++ {
		share = share.Div(two).Round(2)
		out[i] = share
		remaining = remaining.Sub(share)
	}
	out[places-1] = remaining
	return out
}

// Prizes maps a finished tournament's placements onto its prize pool.
func Prizes(t tournaments.Tournament) []Payout {
	if !t.IsComplete() || t.PrizesPaid {
		return nil
	}
	shares := PrizeSplit(t.PrizePool, len(t.Placements))
	out := make([]Payout, 0, len(shares))
	for i, amount := range shares {
		if !amount.IsPositive() {
			continue
		}
		out = append(out, Payout{TeamID: t.Placements[i], Place: i + 1, Amount: amount})
	}
	return out
}
