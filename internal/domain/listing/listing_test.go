package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krushna001m/RentEasy-sub000/internal/domain/pricing"
)

func validParams() CreateParams {
	return CreateParams{
		ID:            "l1",
		Owner:         "o1",
		Title:         "  Canon EOS R6  ",
		Description:   "Full-frame mirrorless",
		Category:      "cameras",
		Location:      "Dhaka",
		DailyPrice:    "500",
		ThreeDayPrice: "1,300",
		WeeklyPrice:   "2,800৳",
		Deposit:       "5000",
		Now:           time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestNewListingNormalizesPrices(t *testing.T) {
	l, err := New(validParams())
	require.NoError(t, err)

	assert.Equal(t, "Canon EOS R6", l.Title)
	assert.Equal(t, pricing.RateTable{Daily: 500, ThreeDay: 1300, Weekly: 2800, Deposit: 5000}, l.Rates)
	assert.Equal(t, "500", l.DisplayPrice)
	assert.Zero(t, l.Purchased)
}

func TestNewListingRecordsCreatedEvent(t *testing.T) {
	l, err := New(validParams())
	require.NoError(t, err)

	events := l.PendingEvents()
	require.Len(t, events, 1)
	created, ok := events[0].(Created)
	require.True(t, ok)
	assert.Equal(t, "listing.created", created.EventName())
	assert.Equal(t, "l1", created.AggregateID())
}

func TestNewListingValidation(t *testing.T) {
	params := validParams()
	params.Title = "   "
	_, err := New(params)
	assert.ErrorIs(t, err, ErrTitleRequired)

	params = validParams()
	params.Owner = ""
	_, err = New(params)
	assert.ErrorIs(t, err, ErrOwnerRequired)

	params = validParams()
	params.DailyPrice = "free"
	_, err = New(params)
	assert.ErrorIs(t, err, ErrDailyRate)
}

func TestAddPhotoSetsThumbnail(t *testing.T) {
	params := validParams()
	l, err := New(params)
	require.NoError(t, err)
	require.Empty(t, l.ThumbnailURL)

	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	require.NoError(t, l.AddPhoto("https://cdn.example/l1/a.jpg", now))
	require.NoError(t, l.AddPhoto("https://cdn.example/l1/b.jpg", now))

	assert.Equal(t, "https://cdn.example/l1/a.jpg", l.ThumbnailURL)
	assert.Len(t, l.Photos, 2)
	assert.Equal(t, now, l.UpdatedAt)

	assert.Error(t, l.AddPhoto("   ", now))
}
