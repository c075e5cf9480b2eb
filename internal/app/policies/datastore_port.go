package policies

import (
	"context"
	"encoding/json"
)

// DataStore is the remote document store the marketplace persists into,
// addressed by slash-separated hierarchical paths ("history/u1",
// "items/owner1/listing9"). Operations carry no transaction semantics
// across paths; every call either succeeds or fails on its own.
type DataStore interface {
	// Get returns the JSON document at path, or the assembled subtree
	// when path names a branch. ok is false when nothing exists there.
	Get(ctx context.Context, path string) (raw json.RawMessage, ok bool, err error)
	// Put overwrites the document at path.
	Put(ctx context.Context, path string, value any) error
	// Patch merges the top-level fields of partial into the document at
	// path, creating it when absent.
	Patch(ctx context.Context, path string, partial map[string]any) error
	// Post appends value under an auto-generated key and returns the key.
	Post(ctx context.Context, path string, value any) (key string, err error)
	// Delete removes the document (or subtree) at path.
	Delete(ctx context.Context, path string) error
}
