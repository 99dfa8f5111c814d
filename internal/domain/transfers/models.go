package transfers

import "github.com/shopspring/decimal"

// DefaultDeadlineDays is how long a listing stays open.
const DefaultDeadlineDays = 30

// ListingStatus is a listing lifecycle state.
type ListingStatus string

const (
	ListingActive    ListingStatus = "active"
	ListingAccepted  ListingStatus = "accepted"
	ListingExpired   ListingStatus = "expired"
	ListingWithdrawn ListingStatus = "withdrawn"
)

// OfferStatus is an offer lifecycle state.
type OfferStatus string

const (
	OfferPending  OfferStatus = "pending"
	OfferAccepted OfferStatus = "accepted"
	OfferRejected OfferStatus = "rejected"
	OfferLapsed   OfferStatus = "lapsed"
)

// Offer is a bid on a listed player. Fee goes to the seller; the salary terms
// become the player's new contract.
type Offer struct {
	ID            string          `json:"id"`
	BuyerID       string          `json:"buyerId"`
	Fee           decimal.Decimal `json:"fee"`
	MonthlySalary decimal.Decimal `json:"monthlySalary"`
	SigningBonus  decimal.Decimal `json:"signingBonus"`
	Months        int             `json:"months"`
	Day           int             `json:"day"`
	Status        OfferStatus     `json:"status"`
}

// Listing advertises a player for transfer.
type Listing struct {
	ID          string          `json:"id"`
	PlayerID    string          `json:"playerId"`
	SellerID    string          `json:"sellerId"`
	AskingPrice decimal.Decimal `json:"askingPrice"`
	ListedDay   int             `json:"listedDay"`
	DeadlineDay int             `json:"deadlineDay"`
	Status      ListingStatus   `json:"status"`
	Offers      []Offer         `json:"offers,omitempty"`
}

// Cost is the total the buyer must be able to fund.
func (o Offer) Cost() decimal.Decimal {
	return o.Fee.Add(o.MonthlySalary.Mul(decimal.NewFromInt(int64(o.Months)))).Add(o.SigningBonus)
}

// IsActive reports whether the listing accepts offers on day.
func (l Listing) IsActive(day int) bool {
	return l.Status == ListingActive && day < l.DeadlineDay
}

// Offer returns the offer with the given ID and its index.
func (l Listing) Offer(offerID string) (Offer, int, bool) {
	for i, o := range l.Offers {
		if o.ID == offerID {
			return o, i, true
		}
	}
	return Offer{}, -1, false
}

// Clone returns a deep copy.
func (l Listing) Clone() Listing {
	out := l
	if l.Offers != nil {
		out.Offers = append([]Offer(nil), l.Offers...)
	}
	return out
}
