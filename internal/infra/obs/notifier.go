package obs

import (
	"context"
	"log/slog"

	"github.com/krushna001m/RentEasy-sub000/internal/app/policies"
)

// LogNotifier is the server-side stand-in for the mobile client's modal
// surface: every user-facing title/message pair is logged alongside the
// request so support can replay what the renter saw.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Show(ctx context.Context, title, message string) {
	if n.Logger == nil {
		return
	}
	n.Logger.Info("user notification", "title", title, "message", message, "request_id", RequestIDFromContext(ctx))
}

var _ policies.Notifier = LogNotifier{}
