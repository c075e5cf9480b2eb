package history

import (
	"context"
	"errors"
	"strings"

	"github.com/krushna001m/RentEasy-sub000/internal/app/commands"
	"github.com/krushna001m/RentEasy-sub000/internal/app/policies"
)

const deleteHistoryKey = "history.delete"

var ErrRecordKeyRequired = errors.New("history: record key required")

// DeleteHistoryCommand removes a single receipt owned by the renter.
// Unrelated to the booking workflow; plain CRUD.
type DeleteHistoryCommand struct {
	RenterID  string
	RecordKey string
}

func (c DeleteHistoryCommand) Key() string { return deleteHistoryKey }

func (c DeleteHistoryCommand) Validate() error {
	if strings.TrimSpace(c.RenterID) == "" {
		return ErrRenterRequired
	}
	if strings.TrimSpace(c.RecordKey) == "" {
		return ErrRecordKeyRequired
	}
	return nil
}

type DeleteHistoryResult struct {
	Deleted bool `json:"deleted"`
}

type DeleteHistoryHandler struct {
	Store policies.DataStore
}

func (h *DeleteHistoryHandler) Handle(ctx context.Context, cmd DeleteHistoryCommand) (*DeleteHistoryResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.Store.Delete(ctx, "history/"+cmd.RenterID+"/"+cmd.RecordKey); err != nil {
		return nil, err
	}
	return &DeleteHistoryResult{Deleted: true}, nil
}

var _ commands.Handler[DeleteHistoryCommand, *DeleteHistoryResult] = (*DeleteHistoryHandler)(nil)
