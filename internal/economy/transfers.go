package economy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/esports-sim/internal/domain"
	"github.com/preston-bernstein/esports-sim/internal/domain/contracts"
	"github.com/preston-bernstein/esports-sim/internal/domain/players"
	"github.com/preston-bernstein/esports-sim/internal/domain/transfers"
	"github.com/preston-bernstein/esports-sim/internal/store"
)

// OfferRequest is a buyer's bid on a listing.
type OfferRequest struct {
	BuyerID       string
	Fee           decimal.Decimal
	MonthlySalary decimal.Decimal
	SigningBonus  decimal.Decimal
	Months        int
	Day           int
}

// ListPlayer puts a contracted player on the transfer market.
func (e *Engine) ListPlayer(playerID string, askingPrice decimal.Decimal, day int) (transfers.Listing, error) {
	if _, ok := e.store.Player(playerID); !ok {
		return transfers.Listing{}, domain.Errorf(domain.ErrPlayerNotFound, "player %s", playerID)
	}
	c, ok := e.store.ActiveContract(playerID)
	if !ok {
		return transfers.Listing{}, domain.Errorf(domain.ErrInvalidArgument, "player %s is a free agent", playerID)
	}
	if askingPrice.IsNegative() {
		return transfers.Listing{}, domain.Errorf(domain.ErrInvalidArgument, "asking price cannot be negative")
	}
	for _, l := range e.store.Listings(day) {
		if l.PlayerID == playerID {
			return transfers.Listing{}, domain.Errorf(domain.ErrListingExists, "player %s already listed as %s", playerID, l.ID)
		}
	}

	l := transfers.Listing{
		ID:          e.newID(),
		PlayerID:    playerID,
		SellerID:    c.TeamID,
		AskingPrice: askingPrice,
		ListedDay:   day,
		DeadlineDay: day + e.cfg.ListingDeadlineDays,
		Status:      transfers.ListingActive,
	}
	e.store.Apply(store.Batch{Listings: []transfers.Listing{l}})
	return l, nil
}

// RemoveListing withdraws an active listing; pending offers lapse.
func (e *Engine) RemoveListing(listingID string, day int) error {
	l, err := e.activeListing(listingID, day)
	if err != nil {
		return err
	}
	l.Status = transfers.ListingWithdrawn
	lapsePending(&l, "")
	e.store.Apply(store.Batch{Listings: []transfers.Listing{l}})
	return nil
}

// PlaceTransferOffer records a bid. The buyer must be able to fund the fee and
// the full contract at the time of the offer.
func (e *Engine) PlaceTransferOffer(listingID string, req OfferRequest) (transfers.Offer, error) {
	l, err := e.activeListing(listingID, req.Day)
	if err != nil {
		return transfers.Offer{}, err
	}
	if req.Months <= 0 {
		return transfers.Offer{}, domain.Errorf(domain.ErrInvalidArgument, "contract length must be positive, got %d", req.Months)
	}
	if req.Fee.IsNegative() || req.MonthlySalary.IsNegative() || req.SigningBonus.IsNegative() {
		return transfers.Offer{}, domain.Errorf(domain.ErrInvalidArgument, "offer amounts cannot be negative")
	}
	if req.BuyerID == l.SellerID {
		return transfers.Offer{}, domain.Errorf(domain.ErrInvalidArgument, "team %s cannot bid on its own player", req.BuyerID)
	}
	if _, ok := e.store.Team(req.BuyerID); !ok {
		return transfers.Offer{}, domain.Errorf(domain.ErrTeamNotFound, "team %s", req.BuyerID)
	}
	budget, ok := e.store.Budget(req.BuyerID)
	if !ok {
		return transfers.Offer{}, domain.Errorf(domain.ErrBudgetNotFound, "team %s", req.BuyerID)
	}

	o := transfers.Offer{
		ID:            e.newID(),
		BuyerID:       req.BuyerID,
		Fee:           req.Fee,
		MonthlySalary: req.MonthlySalary,
		SigningBonus:  req.SigningBonus,
		Months:        req.Months,
		Day:           req.Day,
		Status:        transfers.OfferPending,
	}
	if !budget.CanAfford(o.Cost()) {
		return transfers.Offer{}, domain.Errorf(domain.ErrInsufficientBudget,
			"team %s cannot fund offer of %s", req.BuyerID, o.Cost().StringFixed(2))
	}

	l.Offers = append(l.Offers, o)
	e.store.Apply(store.Batch{Listings: []transfers.Listing{l}})
	return o, nil
}

// RejectTransferOffer declines a pending offer.
func (e *Engine) RejectTransferOffer(listingID, offerID string, day int) error {
	l, err := e.activeListing(listingID, day)
	if err != nil {
		return err
	}
	o, idx, ok := l.Offer(offerID)
	if !ok {
		return domain.Errorf(domain.ErrOfferNotFound, "offer %s on listing %s", offerID, listingID)
	}
	if o.Status != transfers.OfferPending {
		return domain.Errorf(domain.ErrOfferNotPending, "offer %s is %s", offerID, o.Status)
	}
	l.Offers[idx].Status = transfers.OfferRejected
	e.store.Apply(store.Batch{Listings: []transfers.Listing{l}})
	return nil
}

// AcceptTransferOffer moves the player to the buyer. Every check runs against
// copies first; the seller contract termination, the new contract, both
// rosters, both budgets, and the listing are then committed in one batch.
// On any error nothing is written.
func (e *Engine) AcceptTransferOffer(listingID, offerID string, day int) (contracts.Contract, error) {
	l, err := e.activeListing(listingID, day)
	if err != nil {
		return contracts.Contract{}, err
	}
	o, idx, ok := l.Offer(offerID)
	if !ok {
		return contracts.Contract{}, domain.Errorf(domain.ErrOfferNotFound, "offer %s on listing %s", offerID, listingID)
	}
	if o.Status != transfers.OfferPending {
		return contracts.Contract{}, domain.Errorf(domain.ErrOfferNotPending, "offer %s is %s", offerID, o.Status)
	}

	player, ok := e.store.Player(l.PlayerID)
	if !ok {
		return contracts.Contract{}, domain.Errorf(domain.ErrPlayerNotFound, "player %s", l.PlayerID)
	}
	buyer, ok := e.store.Team(o.BuyerID)
	if !ok {
		return contracts.Contract{}, domain.Errorf(domain.ErrTeamNotFound, "team %s", o.BuyerID)
	}
	buyerBudget, ok := e.store.Budget(o.BuyerID)
	if !ok {
		return contracts.Contract{}, domain.Errorf(domain.ErrBudgetNotFound, "team %s", o.BuyerID)
	}
	if !buyerBudget.CanAfford(o.Cost()) {
		return contracts.Contract{}, domain.Errorf(domain.ErrInsufficientBudget,
			"team %s cannot fund transfer of %s", o.BuyerID, o.Cost().StringFixed(2))
	}

	batch := store.Batch{}
	desc := fmt.Sprintf("Transfer of %s", player.DisplayName())

	// Seller side: the fee replaces the buyout, so the old deal ends without a
	// termination charge and its unpaid reservation is released.
	seller, hasSeller := e.store.Team(l.SellerID)
	if old, ok := e.store.ActiveContract(l.PlayerID); ok {
		sellerBudget, ok := e.store.Budget(old.TeamID)
		if !ok {
			return contracts.Contract{}, domain.Errorf(domain.ErrBudgetNotFound, "team %s", old.TeamID)
		}
		sellerBudget.CommittedSalaries = sellerBudget.CommittedSalaries.Sub(old.UnpaidObligation())
		sellerBudget.TransferIncome = sellerBudget.TransferIncome.Add(o.Fee)
		sellerBudget.Record(e.tx(day, contracts.TxTransferFee, desc, o.Fee))
		batch.Budgets = append(batch.Budgets, sellerBudget)

		old.Status = contracts.StatusTerminated
		old.EndDay = day
		batch.Contracts = append(batch.Contracts, old)
	}
	if hasSeller {
		seller.RemovePlayer(player.ID)
		seller.PromoteFromBench()
		batch.Teams = append(batch.Teams, seller)
	}

	// Buyer side.
	if o.Fee.IsPositive() {
		buyerBudget.Expenses = buyerBudget.Expenses.Add(o.Fee)
		buyerBudget.Record(e.tx(day, contracts.TxTransferFee, desc, o.Fee.Neg()))
	}
	player.TeamID = ""
	player.AddEvent(day, players.EventTransfer, fmt.Sprintf("transferred to %s for %s", buyer.Name, o.Fee.StringFixed(0)))
	s, err := e.planSigning(SignRequest{
		PlayerID:      player.ID,
		TeamID:        buyer.ID,
		MonthlySalary: o.MonthlySalary,
		Months:        o.Months,
		SigningBonus:  o.SigningBonus,
		Day:           day,
	}, player, buyer, buyerBudget)
	if err != nil {
		return contracts.Contract{}, err
	}
	batch.Budgets = append(batch.Budgets, s.budget)
	batch.Contracts = append(batch.Contracts, s.contract)
	batch.Teams = append(batch.Teams, s.team)
	batch.Players = []players.Player{s.player}

	l.Offers[idx].Status = transfers.OfferAccepted
	l.Status = transfers.ListingAccepted
	lapsePending(&l, offerID)
	batch.Listings = []transfers.Listing{l}

	e.store.Apply(batch)
	return s.contract, nil
}

// CheckExpiredListings closes listings whose deadline has passed and returns them.
func (e *Engine) CheckExpiredListings(day int) []transfers.Listing {
	var expired []transfers.Listing
	for _, l := range e.store.Listings(-1) {
		if l.Status != transfers.ListingActive || l.IsActive(day) {
			continue
		}
		l.Status = transfers.ListingExpired
		lapsePending(&l, "")
		expired = append(expired, l)
	}
	if len(expired) > 0 {
		e.store.Apply(store.Batch{Listings: expired})
	}
	return expired
}

// withdrawnListings returns closed copies of the player's open listings, for
// batches where the player leaves a team outside the market.
func (e *Engine) withdrawnListings(playerID string) []transfers.Listing {
	var closed []transfers.Listing
	for _, l := range e.store.Listings(-1) {
		if l.PlayerID != playerID || l.Status != transfers.ListingActive {
			continue
		}
		l.Status = transfers.ListingWithdrawn
		lapsePending(&l, "")
		closed = append(closed, l)
	}
	return closed
}

func (e *Engine) activeListing(listingID string, day int) (transfers.Listing, error) {
	l, ok := e.store.Listing(listingID)
	if !ok {
		return transfers.Listing{}, domain.Errorf(domain.ErrListingNotFound, "listing %s", listingID)
	}
	if !l.IsActive(day) {
		return transfers.Listing{}, domain.Errorf(domain.ErrListingInactive, "listing %s is %s", listingID, l.Status)
	}
	return l, nil
}

func lapsePending(l *transfers.Listing, keep string) {
	for i := range l.Offers {
		if l.Offers[i].ID != keep && l.Offers[i].Status == transfers.OfferPending {
			l.Offers[i].Status = transfers.OfferLapsed
		}
	}
}
