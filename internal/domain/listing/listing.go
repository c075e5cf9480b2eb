package listing

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/krushna001m/RentEasy-sub000/internal/domain/pricing"
	"github.com/krushna001m/RentEasy-sub000/internal/domain/shared/events"
)

var (
	ErrTitleRequired = errors.New("listing: title is required")
	ErrOwnerRequired = errors.New("listing: owner is required")
	ErrDailyRate     = errors.New("listing: a positive daily rate is required")
	ErrNotFound      = errors.New("listing: not found")
	ErrNotOwned      = errors.New("listing: not owned by caller")
)

type ID string

type OwnerID string

// Listing is one rentable item in the catalog. Purchased counts
// successful bookings and drives the trending sort; it is incremented
// by the booking workflow, not through this aggregate.
type Listing struct {
	ID           ID
	Owner        OwnerID
	Title        string
	Description  string
	Category     string
	Location     string
	Rates        pricing.RateTable
	DisplayPrice string
	Purchased    int
	ThumbnailURL string
	Photos       []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, owner OwnerID, id ID) (*Listing, error)
	Save(ctx context.Context, l *Listing) error
	Catalog(ctx context.Context) ([]*Listing, error)
}

// CreateParams carries raw form values; prices arrive as display
// strings exactly as the owner typed them.
type CreateParams struct {
	ID            ID
	Owner         OwnerID
	Title         string
	Description   string
	Category      string
	Location      string
	DailyPrice    string
	ThreeDayPrice string
	WeeklyPrice   string
	Deposit       string
	ThumbnailURL  string
	Now           time.Time
}

func New(params CreateParams) (*Listing, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(string(params.Owner)) == "" {
		return nil, ErrOwnerRequired
	}
	rates := pricing.NormalizeTable(params.DailyPrice, params.ThreeDayPrice, params.WeeklyPrice, params.Deposit)
	if rates.Daily <= 0 {
		return nil, ErrDailyRate
	}
	now := params.Now.UTC()
	l := &Listing{
		ID:           params.ID,
		Owner:        params.Owner,
		Title:        title,
		Description:  strings.TrimSpace(params.Description),
		Category:     strings.TrimSpace(params.Category),
		Location:     strings.TrimSpace(params.Location),
		Rates:        rates,
		DisplayPrice: strings.TrimSpace(params.DailyPrice),
		ThumbnailURL: strings.TrimSpace(params.ThumbnailURL),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	l.Record(Created{ListingID: l.ID, Owner: l.Owner, Title: l.Title, DailyRate: rates.Daily, At: now})
	return l, nil
}

// AddPhoto appends an uploaded photo URL; the first photo becomes the
// thumbnail.
func (l *Listing) AddPhoto(url string, now time.Time) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return errors.New("listing: photo url required")
	}
	l.Photos = append(l.Photos, url)
	if l.ThumbnailURL == "" {
		l.ThumbnailURL = url
	}
	l.UpdatedAt = now.UTC()
	return nil
}
