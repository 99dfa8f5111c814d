package season

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/esports-sim/internal/domain/players"
	"github.com/preston-bernstein/esports-sim/internal/domain/teams"
	"github.com/preston-bernstein/esports-sim/internal/domain/transfers"
	"github.com/preston-bernstein/esports-sim/internal/economy"
	"github.com/preston-bernstein/esports-sim/internal/logging"
	"github.com/preston-bernstein/esports-sim/internal/store"
)

// squadSize is a full roster plus one substitute.
const squadSize = teams.RosterSize + 1

// maxSigningAttempts bounds how many free agents a team approaches per
// open slot per day.
const maxSigningAttempts = 4

func strongestFirst(pool []players.Player) []players.Player {
	out := append([]players.Player(nil), pool...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Skills.Overall() > out[j].Skills.Overall()
	})
	return out
}

func squad(t teams.Team) int {
	return len(t.Roster) + len(t.Bench)
}

// listSurplus puts the weakest bench player of any team carrying more than
// one substitute on the market at their value.
func (o *Orchestrator) listSurplus(ctx context.Context, day int) {
	for _, t := range o.store.Teams() {
		if squad(t) <= squadSize || len(t.Bench) == 0 {
			continue
		}
		var bench []players.Player
		for _, id := range t.Bench {
			if p, ok := o.store.Player(id); ok {
				bench = append(bench, p)
			}
		}
		if len(bench) == 0 {
			continue
		}
		ranked := strongestFirst(bench)
		weakest := ranked[len(ranked)-1]
		l, err := o.economy.ListPlayer(weakest.ID, economy.MarketValue(weakest, o.cfg.Economy), day)
		if err != nil {
			logging.Warn(o.log(ctx), "listing skipped", logging.FieldPlayerID, weakest.ID, "err", err)
			continue
		}
		logging.Info(o.log(ctx), "player listed",
			logging.FieldListingID, l.ID,
			logging.FieldPlayerID, l.PlayerID,
			logging.FieldTeamID, l.SellerID,
			logging.FieldAmount, l.AskingPrice.StringFixed(2),
		)
	}
}

// runMarket lets short-handed teams buy listed players at the asking price.
// Sellers accept the first affordable bid immediately.
func (o *Orchestrator) runMarket(ctx context.Context, day int) int {
	listings := o.economy.GetActiveListings(day)
	if len(listings) == 0 {
		return 0
	}
	done := 0
	for _, buyer := range o.store.Teams() {
		if squad(buyer) >= squadSize {
			continue
		}
		for i, l := range listings {
			if l.Status != transfers.ListingActive || l.SellerID == buyer.ID {
				continue
			}
			if o.buy(ctx, buyer, l, day) {
				listings[i].Status = transfers.ListingAccepted
				done++
				break
			}
		}
	}
	return done
}

func (o *Orchestrator) buy(ctx context.Context, buyer teams.Team, l transfers.Listing, day int) bool {
	p, ok := o.store.Player(l.PlayerID)
	if !ok {
		return false
	}
	salary := economy.SuggestedSalary(economy.MarketValue(p, o.cfg.Economy), o.cfg.Economy)
	offer, err := o.economy.PlaceTransferOffer(l.ID, economy.OfferRequest{
		BuyerID:       buyer.ID,
		Fee:           l.AskingPrice,
		MonthlySalary: salary,
		Months:        o.cfg.ContractMonths,
		Day:           day,
	})
	if err != nil {
		o.budgetRejected(ctx, "transfer_offer", err, logging.FieldListingID, l.ID, logging.FieldTeamID, buyer.ID)
		return false
	}
	if _, err := o.economy.AcceptTransferOffer(l.ID, offer.ID, day); err != nil {
		o.budgetRejected(ctx, "transfer", err, logging.FieldListingID, l.ID, logging.FieldTeamID, buyer.ID)
		if rerr := o.economy.RejectTransferOffer(l.ID, offer.ID, day); rerr != nil {
			logging.Warn(o.log(ctx), "offer cleanup failed", logging.FieldListingID, l.ID, "err", rerr)
		}
		return false
	}
	o.metrics.RecordTransfer()
	o.refreshRoles(buyer.ID)
	o.refreshRoles(l.SellerID)
	logging.Info(o.log(ctx), "transfer completed",
		logging.FieldListingID, l.ID,
		logging.FieldPlayerID, l.PlayerID,
		logging.FieldTeamID, buyer.ID,
		logging.FieldAmount, l.AskingPrice.StringFixed(2),
	)
	return true
}

// fillRosters promotes bench players and signs free agents until every team
// has a full roster and a substitute. Each open slot keeps back enough money
// to fill the slots after it on minimum deals, so a team never spends itself
// below five players.
func (o *Orchestrator) fillRosters(ctx context.Context, day int) {
	for _, t := range o.store.Teams() {
		if t.PromoteFromBench() > 0 {
			o.store.Apply(store.Batch{Teams: []teams.Team{t}})
		}
		need := squadSize - squad(t)
		if need <= 0 {
			continue
		}
		for slot := 0; slot < need; slot++ {
			reserve := o.minimumDealCost().Mul(decimal.NewFromInt(int64(need - slot - 1)))
			if !o.signFreeAgent(ctx, t.ID, day, reserve) && !o.signMinimumDeal(ctx, t.ID, day) {
				logging.Warn(o.log(ctx), "roster left short", logging.FieldTeamID, t.ID, logging.FieldCount, need-slot)
				break
			}
		}
		o.refreshRoles(t.ID)
	}
}

// signFreeAgent approaches the shortlist first, then the strongest free
// agent the team can pay on standard terms without dipping into reserve.
func (o *Orchestrator) signFreeAgent(ctx context.Context, teamID string, day int, reserve decimal.Decimal) bool {
	budget, ok := o.store.Budget(teamID)
	if !ok {
		return false
	}
	spendable := budget.Available().Sub(reserve)
	affordable := func(p players.Player) bool {
		return o.contractCost(p).LessThanOrEqual(spendable)
	}
	for _, p := range o.freeAgents(maxSigningAttempts) {
		if affordable(p) && o.sign(ctx, p, teamID, day) {
			return true
		}
	}
	for _, p := range strongestFirst(o.unsigned()) {
		if affordable(p) {
			return o.sign(ctx, p, teamID, day)
		}
	}
	return false
}

// signMinimumDeal draws a prospect on the floor wage. The term shrinks to
// what the team can still pay, down to a one month trial on whatever is
// left in the budget.
func (o *Orchestrator) signMinimumDeal(ctx context.Context, teamID string, day int) bool {
	budget, ok := o.store.Budget(teamID)
	if !ok {
		return false
	}
	available := budget.Available()
	if available.IsNegative() {
		return false
	}
	salary := o.minimumSalary()
	months := o.cfg.ContractMonths
	if salary.IsPositive() {
		if affordable := int(available.Div(salary).IntPart()); affordable < months {
			months = affordable
		}
	}
	if months < 1 {
		months = 1
		salary = available.Floor()
	}

	p := o.gen.Prospect()
	p.MarketValue = economy.MarketValue(p, o.cfg.Economy)
	o.store.Apply(store.Batch{Players: []players.Player{p}})
	if !o.signOn(ctx, p, teamID, day, salary, months) {
		return false
	}
	logging.Info(o.log(ctx), "minimum deal signed",
		logging.FieldPlayerID, p.ID,
		logging.FieldTeamID, teamID,
		logging.FieldAmount, salary.StringFixed(2),
		"months", months,
	)
	return true
}

// contractCost is the full obligation of signing p on standard terms.
func (o *Orchestrator) contractCost(p players.Player) decimal.Decimal {
	salary := economy.SuggestedSalary(economy.MarketValue(p, o.cfg.Economy), o.cfg.Economy)
	return salary.Mul(decimal.NewFromInt(int64(o.cfg.ContractMonths)))
}

func (o *Orchestrator) minimumSalary() decimal.Decimal {
	return economy.SuggestedSalary(o.cfg.Economy.MarketValueFloor, o.cfg.Economy)
}

func (o *Orchestrator) minimumDealCost() decimal.Decimal {
	return o.minimumSalary().Mul(decimal.NewFromInt(int64(o.cfg.ContractMonths)))
}

// unsigned lists every active player without a team or contract.
func (o *Orchestrator) unsigned() []players.Player {
	var pool []players.Player
	for _, p := range o.store.Players() {
		if p.IsFreeAgent() && !p.IsRetired() {
			if _, contracted := o.store.ActiveContract(p.ID); !contracted {
				pool = append(pool, p)
			}
		}
	}
	return pool
}

// freeAgents shortlists up to n unsigned players: the strongest n-1 and the
// cheapest to sign, topping the pool up with prospects when it is short.
func (o *Orchestrator) freeAgents(n int) []players.Player {
	pool := o.unsigned()
	if short := n - len(pool); short > 0 {
		fresh := make([]players.Player, 0, short)
		for i := 0; i < short; i++ {
			p := o.gen.Prospect()
			p.MarketValue = economy.MarketValue(p, o.cfg.Economy)
			fresh = append(fresh, p)
		}
		o.store.Apply(store.Batch{Players: fresh})
		pool = append(pool, fresh...)
	}
	pool = strongestFirst(pool)
	if len(pool) <= n {
		return pool
	}

	cheapest := n - 1
	for i := n; i < len(pool); i++ {
		if o.contractCost(pool[i]).LessThan(o.contractCost(pool[cheapest])) {
			cheapest = i
		}
	}
	out := append([]players.Player(nil), pool[:n-1]...)
	return append(out, pool[cheapest])
}
