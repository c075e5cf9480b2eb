package middleware

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krushna001m/RentEasy-sub000/internal/app/commands"
)

type fakeIdempotencyStore struct {
	mu      sync.Mutex
	records map[string]IdempotencyRecord
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{records: map[string]IdempotencyRecord{}}
}

func (s *fakeIdempotencyStore) Get(_ context.Context, key string) (IdempotencyRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[key]
	return rec, ok, nil
}

func (s *fakeIdempotencyStore) Save(_ context.Context, rec IdempotencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.Key] = rec
	return nil
}

type testCommand struct {
	key   string
	idKey string
}

type testResult struct {
	Value string `json:"value"`
}

func (c testCommand) Key() string            { return c.key }
func (c testCommand) IdempotencyKey() string { return c.idKey }
func (c testCommand) ResultPrototype() any   { return &testResult{} }

func TestIdempotencyReplaysStoredResult(t *testing.T) {
	store := newFakeIdempotencyStore()
	calls := 0

	bus := commands.NewInMemoryBus()
	bus.RegisterRaw("test.cmd", func(ctx context.Context, cmd commands.Command) (any, error) {
		calls++
		return &testResult{Value: "fresh"}, nil
	})
	wrapped := ChainCommands(bus, Idempotency(store, nil))

	cmd := testCommand{key: "test.cmd", idKey: "book-123"}
	first, err := wrapped.Dispatch(context.Background(), cmd)
	require.NoError(t, err)
	second, err := wrapped.Dispatch(context.Background(), cmd)
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "second dispatch must be served from the store")
	assert.Equal(t, first.(*testResult).Value, second.(*testResult).Value)
}

func TestIdempotencyReplaysStoredError(t *testing.T) {
	store := newFakeIdempotencyStore()
	calls := 0

	bus := commands.NewInMemoryBus()
	bus.RegisterRaw("test.cmd", func(ctx context.Context, cmd commands.Command) (any, error) {
		calls++
		return nil, errors.New("boom")
	})
	wrapped := ChainCommands(bus, Idempotency(store, nil))

	cmd := testCommand{key: "test.cmd", idKey: "book-456"}
	_, err := wrapped.Dispatch(context.Background(), cmd)
	require.EqualError(t, err, "boom")
	_, err = wrapped.Dispatch(context.Background(), cmd)
	require.EqualError(t, err, "boom")

	assert.Equal(t, 1, calls)
}

func TestIdempotencyPassesThroughWithoutKey(t *testing.T) {
	store := newFakeIdempotencyStore()
	calls := 0

	bus := commands.NewInMemoryBus()
	bus.RegisterRaw("test.cmd", func(ctx context.Context, cmd commands.Command) (any, error) {
		calls++
		return &testResult{Value: "fresh"}, nil
	})
	wrapped := ChainCommands(bus, Idempotency(store, nil))

	cmd := testCommand{key: "test.cmd"}
	_, err := wrapped.Dispatch(context.Background(), cmd)
	require.NoError(t, err)
	_, err = wrapped.Dispatch(context.Background(), cmd)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Empty(t, store.records)
}

type plainCommand struct{}

func (plainCommand) Key() string { return "plain.cmd" }

func TestIdempotencyIgnoresNonIdempotentCommands(t *testing.T) {
	store := newFakeIdempotencyStore()
	calls := 0

	bus := commands.NewInMemoryBus()
	bus.RegisterRaw("plain.cmd", func(ctx context.Context, cmd commands.Command) (any, error) {
		calls++
		return nil, nil
	})
	wrapped := ChainCommands(bus, Idempotency(store, nil))

	for i := 0; i < 3; i++ {
		_, err := wrapped.Dispatch(context.Background(), plainCommand{})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)
}

type validatedCommand struct {
	valid bool
}

func (validatedCommand) Key() string { return "validated.cmd" }

func (c validatedCommand) Validate() error {
	if !c.valid {
		return errors.New("invalid payload")
	}
	return nil
}

func TestValidationShortCircuits(t *testing.T) {
	calls := 0
	bus := commands.NewInMemoryBus()
	bus.RegisterRaw("validated.cmd", func(ctx context.Context, cmd commands.Command) (any, error) {
		calls++
		return nil, nil
	})
	wrapped := ChainCommands(bus, Validation())

	_, err := wrapped.Dispatch(context.Background(), validatedCommand{valid: false})
	require.EqualError(t, err, "invalid payload")
	assert.Zero(t, calls)

	_, err = wrapped.Dispatch(context.Background(), validatedCommand{valid: true})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
