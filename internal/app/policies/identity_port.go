package policies

import "context"

// Identity resolves the opaque id of the caller behind ctx. The core
// never inspects the id; it only keys persisted records with it.
type Identity interface {
	CurrentUserID(ctx context.Context) (string, error)
}
