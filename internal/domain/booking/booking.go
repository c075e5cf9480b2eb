package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/krushna001m/RentEasy-sub000/internal/domain/pricing"
)

var (
	ErrAgreementRequired   = errors.New("booking: rental agreement must be accepted")
	ErrNotAuthenticated    = errors.New("booking: renter is not authenticated")
	ErrPersistenceFailure  = errors.New("booking: history record could not be persisted")
	ErrCounterUpdateFailed = errors.New("booking: purchase counter update failed")
)

// StatusCompleted is the terminal status written on every persisted
// history record. The workflow never writes any other status.
const StatusCompleted = "Completed"

// Request carries everything one booking attempt needs. It is built
// fresh per attempt and passed by value; the workflow keeps no shared
// mutable session state.
type Request struct {
	ListingID     string
	OwnerID       string
	ItemTitle     string
	PaymentMethod string
	Days          int
	Rates         pricing.RateTable
}

// HasListing reports whether the listing's counter path can be derived.
func (r Request) HasListing() bool {
	return strings.TrimSpace(r.ListingID) != "" && strings.TrimSpace(r.OwnerID) != ""
}

// Outcome is the structured result of a confirmation attempt. Success
// turns true once the history record is committed; a counter failure
// afterwards only populates Warning.
type Outcome struct {
	Success    bool
	RenterID   string
	HistoryKey string
	Total      float64
	Days       int
	Warning    error
}

// HistoryRecord is the persisted receipt of a completed booking,
// owned by the renter's identity. Created once, never mutated.
type HistoryRecord struct {
	ItemTitle     string  `json:"itemTitle"`
	Owner         string  `json:"owner"`
	Price         float64 `json:"price"`
	Date          string  `json:"date"`
	Days          int     `json:"days"`
	TotalAmount   float64 `json:"totalAmount"`
	PaymentMethod string  `json:"paymentMethod"`
	Status        string  `json:"status"`
}

// NewHistoryRecord snapshots a request and its quote into a receipt.
func NewHistoryRecord(req Request, quote pricing.Quote, now time.Time) HistoryRecord {
	return HistoryRecord{
		ItemTitle:     req.ItemTitle,
		Owner:         req.OwnerID,
		Price:         req.Rates.Daily,
		Date:          now.UTC().Format(time.RFC3339),
		Days:          quote.Days,
		TotalAmount:   quote.Total,
		PaymentMethod: req.PaymentMethod,
		Status:        StatusCompleted,
	}
}
