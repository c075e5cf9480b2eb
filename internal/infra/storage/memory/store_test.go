package memory

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentStorePutGet(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore()

	require.NoError(t, store.Put(ctx, "items/o1/l1", map[string]any{"title": "Drill", "purchased": 0}))

	raw, found, err := store.Get(ctx, "items/o1/l1")
	require.NoError(t, err)
	require.True(t, found)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "Drill", doc["title"])
}

func TestDocumentStoreGetAssemblesSubtree(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore()
	require.NoError(t, store.Put(ctx, "items/o1/l1", map[string]any{"title": "Drill"}))
	require.NoError(t, store.Put(ctx, "items/o1/l2", map[string]any{"title": "Ladder"}))
	require.NoError(t, store.Put(ctx, "items/o2/l3", map[string]any{"title": "Tent"}))

	raw, found, err := store.Get(ctx, "items")
	require.NoError(t, err)
	require.True(t, found)

	var tree map[string]map[string]map[string]any
	require.NoError(t, json.Unmarshal(raw, &tree))
	assert.Len(t, tree, 2)
	assert.Equal(t, "Ladder", tree["o1"]["l2"]["title"])
	assert.Equal(t, "Tent", tree["o2"]["l3"]["title"])

	raw, found, err = store.Get(ctx, "items/o1")
	require.NoError(t, err)
	require.True(t, found)
	var branch map[string]map[string]any
	require.NoError(t, json.Unmarshal(raw, &branch))
	assert.Len(t, branch, 2)
}

func TestDocumentStoreGetMissing(t *testing.T) {
	store := NewDocumentStore()
	_, found, err := store.Get(context.Background(), "history/nobody")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDocumentStorePatchMergesTopLevel(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore()
	require.NoError(t, store.Put(ctx, "items/o1/l1", map[string]any{"title": "Drill", "purchased": 2}))

	require.NoError(t, store.Patch(ctx, "items/o1/l1", map[string]any{"purchased": 3}))

	raw, _, err := store.Get(ctx, "items/o1/l1")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, float64(3), doc["purchased"])
	assert.Equal(t, "Drill", doc["title"], "untouched fields survive a patch")
}

func TestDocumentStorePatchCreatesDocument(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore()

	require.NoError(t, store.Patch(ctx, "items/o1/l9", map[string]any{"purchased": 1}))

	raw, found, err := store.Get(ctx, "items/o1/l9")
	require.NoError(t, err)
	require.True(t, found)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, float64(1), doc["purchased"])
}

func TestDocumentStorePostGeneratesKeys(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore()

	first, err := store.Post(ctx, "history/u1", map[string]any{"totalAmount": 7300})
	require.NoError(t, err)
	second, err := store.Post(ctx, "history/u1", map[string]any{"totalAmount": 1000})
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	raw, found, err := store.Get(ctx, "history/u1")
	require.NoError(t, err)
	require.True(t, found)
	var tree map[string]map[string]any
	require.NoError(t, json.Unmarshal(raw, &tree))
	assert.Len(t, tree, 2)
	assert.Equal(t, float64(7300), tree[first]["totalAmount"])
}

func TestDocumentStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore()
	require.NoError(t, store.Put(ctx, "history/u1/r1", map[string]any{"totalAmount": 7300}))
	require.NoError(t, store.Put(ctx, "history/u1/r2", map[string]any{"totalAmount": 500}))

	require.NoError(t, store.Delete(ctx, "history/u1/r1"))
	_, found, err := store.Get(ctx, "history/u1/r1")
	require.NoError(t, err)
	assert.False(t, found)

	// Branch delete removes everything below the path.
	require.NoError(t, store.Delete(ctx, "history/u1"))
	_, found, err = store.Get(ctx, "history/u1")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, store.Len())
}

func TestDocumentStoreRejectsEmptyPath(t *testing.T) {
	store := NewDocumentStore()
	_, _, err := store.Get(context.Background(), "  /  ")
	assert.ErrorIs(t, err, ErrInvalidPath)
	assert.ErrorIs(t, store.Put(context.Background(), "", nil), ErrInvalidPath)
}
