package booking

import "time"

// Completed is emitted after the history record commits. Counter
// failures do not suppress it.
type Completed struct {
	RenterID   string  `json:"renter_id"`
	ListingID  string  `json:"listing_id"`
	OwnerID    string  `json:"owner_id"`
	ItemTitle  string  `json:"item_title"`
	Days       int     `json:"days"`
	Total      float64 `json:"total"`
	HistoryKey string  `json:"history_key"`
	At         time.Time
}

func (e Completed) EventName() string { return "booking.completed" }

func (e Completed) AggregateID() string { return e.ListingID }

func (e Completed) OccurredAt() time.Time { return e.At }
