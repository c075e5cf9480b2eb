package history

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/krushna001m/RentEasy-sub000/internal/app/queries"
	domainbooking "github.com/krushna001m/RentEasy-sub000/internal/domain/booking"
	"github.com/krushna001m/RentEasy-sub000/internal/app/policies"
)

const listHistoryKey = "history.list"

var ErrRenterRequired = errors.New("history: renter id required")

type ListHistoryQuery struct {
	RenterID string
}

func (q ListHistoryQuery) Key() string { return listHistoryKey }

// Entry pairs a stored receipt with the key it was posted under, so
// callers can address it for deletion.
type Entry struct {
	Key    string                      `json:"key"`
	Record domainbooking.HistoryRecord `json:"record"`
}

type Collection struct {
	Items []Entry `json:"items"`
}

type ListHistoryHandler struct {
	Store policies.DataStore
}

func (h *ListHistoryHandler) Handle(ctx context.Context, query ListHistoryQuery) (Collection, error) {
	if query.RenterID == "" {
		return Collection{}, ErrRenterRequired
	}
	raw, ok, err := h.Store.Get(ctx, "history/"+query.RenterID)
	if err != nil {
		return Collection{}, err
	}
	if !ok {
		return Collection{Items: []Entry{}}, nil
	}
	var tree map[string]domainbooking.HistoryRecord
	if err := json.Unmarshal(raw, &tree); err != nil {
		return Collection{}, err
	}
	items := make([]Entry, 0, len(tree))
	for key, record := range tree {
		items = append(items, Entry{Key: key, Record: record})
	}
	// Newest first; RFC3339 strings sort chronologically.
	sort.Slice(items, func(i, j int) bool {
		if items[i].Record.Date == items[j].Record.Date {
			return items[i].Key < items[j].Key
		}
		return items[i].Record.Date > items[j].Record.Date
	})
	return Collection{Items: items}, nil
}

var _ queries.Handler[ListHistoryQuery, Collection] = (*ListHistoryHandler)(nil)
