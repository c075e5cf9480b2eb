package history

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainbooking "github.com/krushna001m/RentEasy-sub000/internal/domain/booking"
	"github.com/krushna001m/RentEasy-sub000/internal/infra/storage/memory"
)

func seedHistory(t *testing.T, store *memory.DocumentStore) {
	t.Helper()
	ctx := context.Background()
	records := map[string]domainbooking.HistoryRecord{
		"r-old": {ItemTitle: "Tent", Date: "2025-05-01T09:00:00Z", TotalAmount: 1500, Status: domainbooking.StatusCompleted},
		"r-new": {ItemTitle: "Drill", Date: "2025-06-15T10:30:00Z", TotalAmount: 7300, Status: domainbooking.StatusCompleted},
		"r-mid": {ItemTitle: "Ladder", Date: "2025-06-01T08:00:00Z", TotalAmount: 900, Status: domainbooking.StatusCompleted},
	}
	for key, rec := range records {
		require.NoError(t, store.Put(ctx, "history/u1/"+key, rec))
	}
}

func TestListHistoryNewestFirst(t *testing.T) {
	store := memory.NewDocumentStore()
	seedHistory(t, store)
	h := &ListHistoryHandler{Store: store}

	result, err := h.Handle(context.Background(), ListHistoryQuery{RenterID: "u1"})
	require.NoError(t, err)

	require.Len(t, result.Items, 3)
	assert.Equal(t, "r-new", result.Items[0].Key)
	assert.Equal(t, "r-mid", result.Items[1].Key)
	assert.Equal(t, "r-old", result.Items[2].Key)
	assert.Equal(t, 7300.0, result.Items[0].Record.TotalAmount)
}

func TestListHistoryEmptyForUnknownRenter(t *testing.T) {
	store := memory.NewDocumentStore()
	h := &ListHistoryHandler{Store: store}

	result, err := h.Handle(context.Background(), ListHistoryQuery{RenterID: "ghost"})
	require.NoError(t, err)
	assert.Empty(t, result.Items)
}

func TestListHistoryRequiresRenter(t *testing.T) {
	h := &ListHistoryHandler{Store: memory.NewDocumentStore()}
	_, err := h.Handle(context.Background(), ListHistoryQuery{})
	assert.ErrorIs(t, err, ErrRenterRequired)
}

func TestDeleteHistoryRemovesSingleRecord(t *testing.T) {
	store := memory.NewDocumentStore()
	seedHistory(t, store)
	del := &DeleteHistoryHandler{Store: store}

	result, err := del.Handle(context.Background(), DeleteHistoryCommand{RenterID: "u1", RecordKey: "r-mid"})
	require.NoError(t, err)
	assert.True(t, result.Deleted)

	list := &ListHistoryHandler{Store: store}
	remaining, err := list.Handle(context.Background(), ListHistoryQuery{RenterID: "u1"})
	require.NoError(t, err)
	require.Len(t, remaining.Items, 2)
	for _, item := range remaining.Items {
		assert.NotEqual(t, "r-mid", item.Key)
	}
}

func TestDeleteHistoryValidation(t *testing.T) {
	del := &DeleteHistoryHandler{Store: memory.NewDocumentStore()}

	_, err := del.Handle(context.Background(), DeleteHistoryCommand{RecordKey: "r1"})
	assert.ErrorIs(t, err, ErrRenterRequired)

	_, err = del.Handle(context.Background(), DeleteHistoryCommand{RenterID: "u1"})
	assert.ErrorIs(t, err, ErrRecordKeyRequired)
}
