package listing

import "time"

// Created is emitted when an owner posts a new listing.
type Created struct {
	ListingID ID      `json:"listing_id"`
	Owner     OwnerID `json:"owner"`
	Title     string  `json:"title"`
	DailyRate float64 `json:"daily_rate"`
	At        time.Time
}

func (e Created) EventName() string { return "listing.created" }

func (e Created) AggregateID() string { return string(e.ListingID) }

func (e Created) OccurredAt() time.Time { return e.At }
