package snapshots

import (
	"time"

	"github.com/preston-bernstein/esports-sim/internal/domain/contracts"
	"github.com/preston-bernstein/esports-sim/internal/domain/transfers"
	"github.com/preston-bernstein/esports-sim/internal/store"
)

// FormatVersion is bumped when the document layout changes incompatibly.
const FormatVersion = 1

// ClockMeta records how the wall clock was driving the world when saved.
type ClockMeta struct {
	Seed          int64  `json:"seed"`
	DaysSimulated int    `json:"daysSimulated"`
	TickInterval  string `json:"tickInterval,omitempty"`
}

// Document is one save file.
type Document struct {
	Version int         `json:"version"`
	SavedAt time.Time   `json:"savedAt"`
	Clock   ClockMeta   `json:"clock"`
	State   store.State `json:"state"`
}

// NewDocument trims history that a resumed world does not need: only active
// contracts and active listings are kept.
func NewDocument(state store.State, clock ClockMeta, now time.Time) Document {
	active := state.Contracts[:0:0]
	for _, c := range state.Contracts {
		if c.Status == contracts.StatusActive {
			active = append(active, c)
		}
	}
	state.Contracts = active

	listings := state.Listings[:0:0]
	for _, l := range state.Listings {
		if l.Status == transfers.ListingActive {
			listings = append(listings, l)
		}
	}
	state.Listings = listings

	return Document{
		Version: FormatVersion,
		SavedAt: now.UTC(),
		Clock:   clock,
		State:   state,
	}
}

// Season and Day identify the document for autosave naming.
func (d Document) Season() int { return d.State.Season.Number }
func (d Document) Day() int    { return d.State.Season.DaysPassed }
