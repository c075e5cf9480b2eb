package docstore

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/krushna001m/RentEasy-sub000/internal/app/policies"
	"github.com/krushna001m/RentEasy-sub000/internal/domain/listing"
	"github.com/krushna001m/RentEasy-sub000/internal/domain/pricing"
)

const listingsRoot = "items"

// listingDocument is the wire shape of one listing at
// items/{owner}/{id}. The purchased field is also patched directly by
// the booking workflow, so its JSON name is part of the store contract.
type listingDocument struct {
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Category     string   `json:"category,omitempty"`
	Location     string   `json:"location,omitempty"`
	Price        string   `json:"price,omitempty"`
	DailyRate    float64  `json:"dailyRate"`
	ThreeDayRate float64  `json:"threeDayRate,omitempty"`
	WeeklyRate   float64  `json:"weeklyRate,omitempty"`
	Deposit      float64  `json:"deposit,omitempty"`
	Purchased    int      `json:"purchased"`
	ThumbnailURL string   `json:"thumbnailUrl,omitempty"`
	Photos       []string `json:"photos,omitempty"`
	CreatedAt    string   `json:"createdAt,omitempty"`
	UpdatedAt    string   `json:"updatedAt,omitempty"`
}

// ListingRepository persists listings through the path-addressed
// document store, so catalog reads and the booking workflow's counter
// patches address the very same documents.
type ListingRepository struct {
	Store policies.DataStore
}

func NewListingRepository(store policies.DataStore) *ListingRepository {
	return &ListingRepository{Store: store}
}

func (r *ListingRepository) ByID(ctx context.Context, owner listing.OwnerID, id listing.ID) (*listing.Listing, error) {
	raw, found, err := r.Store.Get(ctx, listingPath(owner, id))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, listing.ErrNotFound
	}
	var doc listingDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc.toListing(owner, id), nil
}

func (r *ListingRepository) Save(ctx context.Context, l *listing.Listing) error {
	return r.Store.Put(ctx, listingPath(l.Owner, l.ID), fromListing(l))
}

func (r *ListingRepository) Catalog(ctx context.Context) ([]*listing.Listing, error) {
	raw, found, err := r.Store.Get(ctx, listingsRoot)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	var byOwner map[string]map[string]listingDocument
	if err := json.Unmarshal(raw, &byOwner); err != nil {
		return nil, err
	}
	out := make([]*listing.Listing, 0, len(byOwner))
	for owner, docs := range byOwner {
		for id, doc := range docs {
			out = append(out, doc.toListing(listing.OwnerID(owner), listing.ID(id)))
		}
	}
	// Map iteration order is random; give callers a stable baseline.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Owner != out[j].Owner {
			return out[i].Owner < out[j].Owner
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func listingPath(owner listing.OwnerID, id listing.ID) string {
	return listingsRoot + "/" + string(owner) + "/" + string(id)
}

func fromListing(l *listing.Listing) listingDocument {
	return listingDocument{
		Title:        l.Title,
		Description:  l.Description,
		Category:     l.Category,
		Location:     l.Location,
		Price:        l.DisplayPrice,
		DailyRate:    l.Rates.Daily,
		ThreeDayRate: l.Rates.ThreeDay,
		WeeklyRate:   l.Rates.Weekly,
		Deposit:      l.Rates.Deposit,
		Purchased:    l.Purchased,
		ThumbnailURL: l.ThumbnailURL,
		Photos:       l.Photos,
		CreatedAt:    formatTime(l.CreatedAt),
		UpdatedAt:    formatTime(l.UpdatedAt),
	}
}

func (d listingDocument) toListing(owner listing.OwnerID, id listing.ID) *listing.Listing {
	return &listing.Listing{
		ID:          id,
		Owner:       owner,
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		Location:    d.Location,
		Rates: pricing.RateTable{
			Daily:    d.DailyRate,
			ThreeDay: d.ThreeDayRate,
			Weekly:   d.WeeklyRate,
			Deposit:  d.Deposit,
		},
		DisplayPrice: d.Price,
		Purchased:    d.Purchased,
		ThumbnailURL: d.ThumbnailURL,
		Photos:       d.Photos,
		CreatedAt:    parseTime(d.CreatedAt),
		UpdatedAt:    parseTime(d.UpdatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

var _ listing.Repository = (*ListingRepository)(nil)
