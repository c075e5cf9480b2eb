package listings

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/krushna001m/RentEasy-sub000/internal/app/commands"
	"github.com/krushna001m/RentEasy-sub000/internal/app/outbox"
	domainlisting "github.com/krushna001m/RentEasy-sub000/internal/domain/listing"
)

const createListingKey = "listings.create"

var ErrListingNotOwned = errors.New("listings: listing does not belong to caller")

type CreateListingCommand struct {
	CommandID     string
	OwnerID       string
	Title         string
	Description   string
	Category      string
	Location      string
	DailyPrice    string
	ThreeDayPrice string
	WeeklyPrice   string
	Deposit       string
	ThumbnailURL  string
}

func (c CreateListingCommand) Key() string { return createListingKey }

type CreateListingResult struct {
	ListingID string `json:"listing_id"`
}

type CreateListingHandler struct {
	Listings domainlisting.Repository
	Outbox   outbox.Outbox
	Encoder  outbox.EventEncoder
	Logger   *slog.Logger
	Now      func() time.Time
}

func (h *CreateListingHandler) Handle(ctx context.Context, cmd CreateListingCommand) (*CreateListingResult, error) {
	now := time.Now().UTC()
	if h.Now != nil {
		now = h.Now()
	}
	l, err := domainlisting.New(domainlisting.CreateParams{
		ID:            domainlisting.ID(cmd.CommandID),
		Owner:         domainlisting.OwnerID(cmd.OwnerID),
		Title:         cmd.Title,
		Description:   cmd.Description,
		Category:      cmd.Category,
		Location:      cmd.Location,
		DailyPrice:    cmd.DailyPrice,
		ThreeDayPrice: cmd.ThreeDayPrice,
		WeeklyPrice:   cmd.WeeklyPrice,
		Deposit:       cmd.Deposit,
		ThumbnailURL:  cmd.ThumbnailURL,
		Now:           now,
	})
	if err != nil {
		return nil, err
	}
	if err := h.Listings.Save(ctx, l); err != nil {
		return nil, err
	}

	pending := l.PendingEvents()
	l.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, pending); err != nil {
		if h.Logger != nil {
			h.Logger.Warn("listing event not recorded", "listing_id", l.ID, "error", err)
		}
	}

	return &CreateListingResult{ListingID: string(l.ID)}, nil
}

var _ commands.Handler[CreateListingCommand, *CreateListingResult] = (*CreateListingHandler)(nil)
