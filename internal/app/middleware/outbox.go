package middleware

import (
	"context"

	"github.com/krushna001m/RentEasy-sub000/internal/app/commands"
	"github.com/krushna001m/RentEasy-sub000/internal/app/outbox"
)

// OutboxFlush drains the outbox after each successful command.
func OutboxFlush(box outbox.Outbox) CommandMiddleware {
	if box == nil {
		panic("middleware: outbox required")
	}
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			res, err := nextFn(ctx, cmd)
			if err != nil {
				return nil, err
			}
			if err := box.Flush(ctx); err != nil {
				return nil, err
			}
			return res, nil
		})
	}
}
