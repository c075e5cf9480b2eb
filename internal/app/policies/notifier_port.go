package policies

import "context"

// Notifier is the user-facing notification surface. Purely
// presentational; the core never consumes its outcome.
type Notifier interface {
	Show(ctx context.Context, title, message string)
}
