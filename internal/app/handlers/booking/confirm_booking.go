package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/krushna001m/RentEasy-sub000/internal/app/commands"
	"github.com/krushna001m/RentEasy-sub000/internal/app/middleware"
	"github.com/krushna001m/RentEasy-sub000/internal/app/outbox"
	"github.com/krushna001m/RentEasy-sub000/internal/app/policies"
	domainbooking "github.com/krushna001m/RentEasy-sub000/internal/domain/booking"
	"github.com/krushna001m/RentEasy-sub000/internal/domain/pricing"
	domainevents "github.com/krushna001m/RentEasy-sub000/internal/domain/shared/events"
)

const confirmBookingKey = "booking.confirm"

// ConfirmBookingCommand carries one booking attempt. Built fresh per
// attempt; the handler keeps no state between invocations.
type ConfirmBookingCommand struct {
	CommandID         string
	ListingID         string
	OwnerID           string
	ItemTitle         string
	PaymentMethod     string
	Days              int
	Rates             pricing.RateTable
	AgreementAccepted bool
	IdempotencyKeyV   string
}

func (c ConfirmBookingCommand) Key() string { return confirmBookingKey }

func (c ConfirmBookingCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c ConfirmBookingCommand) ResultPrototype() any { return &ConfirmBookingResult{} }

type ConfirmBookingResult struct {
	Success    bool    `json:"success"`
	Total      float64 `json:"total"`
	Days       int     `json:"days"`
	HistoryKey string  `json:"history_key"`
	Warning    string  `json:"warning,omitempty"`
}

// ConfirmBookingHandler orchestrates a confirmed payment into durable
// state. Step order is fixed: agreement gate, identity, pricing,
// history record, popularity counter. Completed steps are never rolled
// back; the counter update is the only non-fatal step.
type ConfirmBookingHandler struct {
	Identity policies.Identity
	Store    policies.DataStore
	Outbox   outbox.Outbox
	Encoder  outbox.EventEncoder
	Logger   *slog.Logger
	Now      func() time.Time
}

func (h *ConfirmBookingHandler) Handle(ctx context.Context, cmd ConfirmBookingCommand) (*ConfirmBookingResult, error) {
	if !cmd.AgreementAccepted {
		return nil, domainbooking.ErrAgreementRequired
	}
	if h.Store == nil {
		return nil, errors.New("booking: data store unavailable")
	}

	renter, err := h.currentRenter(ctx)
	if err != nil {
		return nil, err
	}

	req := domainbooking.Request{
		ListingID:     cmd.ListingID,
		OwnerID:       cmd.OwnerID,
		ItemTitle:     cmd.ItemTitle,
		PaymentMethod: cmd.PaymentMethod,
		Days:          cmd.Days,
		Rates:         cmd.Rates,
	}
	outcome, err := h.confirm(ctx, renter, req)
	if err != nil {
		return nil, err
	}

	result := &ConfirmBookingResult{
		Success:    outcome.Success,
		Total:      outcome.Total,
		Days:       outcome.Days,
		HistoryKey: outcome.HistoryKey,
	}
	if outcome.Warning != nil {
		result.Warning = outcome.Warning.Error()
	}
	return result, nil
}

// confirm runs steps 2-5 of the workflow for an already authenticated
// renter and returns the structured outcome.
func (h *ConfirmBookingHandler) confirm(ctx context.Context, renter string, req domainbooking.Request) (domainbooking.Outcome, error) {
	now := h.now()
	quote := pricing.ComputeTotal(req.Rates, req.Days)

	record := domainbooking.NewHistoryRecord(req, quote, now)
	key, err := h.Store.Post(ctx, historyPath(renter), record)
	if err != nil {
		return domainbooking.Outcome{}, fmt.Errorf("%w: %v", domainbooking.ErrPersistenceFailure, err)
	}

	outcome := domainbooking.Outcome{
		Success:    true,
		RenterID:   renter,
		HistoryKey: key,
		Total:      quote.Total,
		Days:       quote.Days,
	}

	// Read-then-write: concurrent bookings of the same listing may both
	// observe the same count and one increment is lost. Accepted; the
	// booking itself already committed above.
	if req.HasListing() {
		if err := h.bumpPurchaseCounter(ctx, req); err != nil {
			outcome.Warning = domainbooking.ErrCounterUpdateFailed
			if h.Logger != nil {
				h.Logger.Warn("purchase counter update failed",
					"listing_id", req.ListingID, "owner_id", req.OwnerID, "error", err)
			}
		}
	}

	ev := domainbooking.Completed{
		RenterID:   renter,
		ListingID:  req.ListingID,
		OwnerID:    req.OwnerID,
		ItemTitle:  req.ItemTitle,
		Days:       quote.Days,
		Total:      quote.Total,
		HistoryKey: key,
		At:         now,
	}
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.encoder(), []domainevents.DomainEvent{ev}); err != nil {
		// The booking is committed; a stuck event must not fail it.
		if h.Logger != nil {
			h.Logger.Warn("booking event not recorded", "history_key", key, "error", err)
		}
	}

	return outcome, nil
}

func (h *ConfirmBookingHandler) bumpPurchaseCounter(ctx context.Context, req domainbooking.Request) error {
	path := listingPath(req.OwnerID, req.ListingID)
	raw, ok, err := h.Store.Get(ctx, path)
	if err != nil {
		return err
	}
	count := 0
	if ok {
		count = purchasedCount(raw)
	}
	return h.Store.Patch(ctx, path, map[string]any{"purchased": count + 1})
}

func (h *ConfirmBookingHandler) currentRenter(ctx context.Context) (string, error) {
	if h.Identity == nil {
		return "", domainbooking.ErrNotAuthenticated
	}
	renter, err := h.Identity.CurrentUserID(ctx)
	if err != nil || renter == "" {
		return "", domainbooking.ErrNotAuthenticated
	}
	return renter, nil
}

func (h *ConfirmBookingHandler) encoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

func (h *ConfirmBookingHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now().UTC()
}

// purchasedCount extracts the popularity counter from a listing
// document, treating absent or non-numeric values as zero.
func purchasedCount(raw json.RawMessage) int {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return 0
	}
	switch v := doc["purchased"].(type) {
	case float64:
		if v < 0 {
			return 0
		}
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil && n > 0 {
			return int(n)
		}
	}
	return 0
}

func historyPath(renter string) string {
	return "history/" + renter
}

func listingPath(owner, id string) string {
	return "items/" + owner + "/" + id
}

var _ commands.Handler[ConfirmBookingCommand, *ConfirmBookingResult] = (*ConfirmBookingHandler)(nil)
var _ middleware.IdempotentCommand = (*ConfirmBookingCommand)(nil)
