package docstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainlisting "github.com/krushna001m/RentEasy-sub000/internal/domain/listing"
	"github.com/krushna001m/RentEasy-sub000/internal/domain/pricing"
	"github.com/krushna001m/RentEasy-sub000/internal/infra/storage/memory"
)

func sampleListing() *domainlisting.Listing {
	return &domainlisting.Listing{
		ID:           "l1",
		Owner:        "o1",
		Title:        "Canon EOS R6",
		Description:  "Full-frame mirrorless",
		Category:     "cameras",
		Location:     "Dhaka",
		Rates:        pricing.RateTable{Daily: 500, ThreeDay: 1300, Weekly: 2800, Deposit: 5000},
		DisplayPrice: "500",
		Purchased:    2,
		Photos:       []string{"https://cdn.example/l1/a.jpg"},
		ThumbnailURL: "https://cdn.example/l1/a.jpg",
		CreatedAt:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestListingRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewListingRepository(memory.NewDocumentStore())

	require.NoError(t, repo.Save(ctx, sampleListing()))

	got, err := repo.ByID(ctx, "o1", "l1")
	require.NoError(t, err)
	want := sampleListing()
	assert.Equal(t, want.Title, got.Title)
	assert.Equal(t, want.Rates, got.Rates)
	assert.Equal(t, want.Purchased, got.Purchased)
	assert.Equal(t, want.Photos, got.Photos)
	assert.Equal(t, want.CreatedAt, got.CreatedAt)
}

func TestListingRepositoryNotFound(t *testing.T) {
	repo := NewListingRepository(memory.NewDocumentStore())
	_, err := repo.ByID(context.Background(), "o1", "missing")
	assert.ErrorIs(t, err, domainlisting.ErrNotFound)
}

func TestListingRepositoryCatalog(t *testing.T) {
	ctx := context.Background()
	repo := NewListingRepository(memory.NewDocumentStore())

	first := sampleListing()
	second := sampleListing()
	second.ID = "l2"
	second.Owner = "o2"
	second.Title = "Camping Tent"
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	all, err := repo.Catalog(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, domainlisting.OwnerID("o1"), all[0].Owner)
	assert.Equal(t, domainlisting.OwnerID("o2"), all[1].Owner)
}

func TestListingRepositoryEmptyCatalog(t *testing.T) {
	repo := NewListingRepository(memory.NewDocumentStore())
	all, err := repo.Catalog(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

// The booking workflow patches the purchased field on the raw document;
// the repository must observe the new value on the next read.
func TestListingRepositorySeesCounterPatches(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	repo := NewListingRepository(store)
	require.NoError(t, repo.Save(ctx, sampleListing()))

	require.NoError(t, store.Patch(ctx, "items/o1/l1", map[string]any{"purchased": 3}))

	got, err := repo.ByID(ctx, "o1", "l1")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Purchased)
	assert.Equal(t, "Canon EOS R6", got.Title, "patch must not clobber the document")
}
