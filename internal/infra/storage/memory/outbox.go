package memory

import (
	"context"
	"sync"

	"github.com/krushna001m/RentEasy-sub000/internal/app/outbox"
)

// Outbox buffers event records in memory and hands them to the publish
// callback on Flush. With a nil callback records are simply dropped on
// flush, which is the single-process default when no broker is
// configured.
type Outbox struct {
	mu      sync.Mutex
	pending []outbox.EventRecord
	publish func(ctx context.Context, rec outbox.EventRecord) error
}

func NewOutbox(publish func(ctx context.Context, rec outbox.EventRecord) error) *Outbox {
	return &Outbox{publish: publish}
}

func (o *Outbox) Add(ctx context.Context, record outbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending = append(o.pending, record)
	return nil
}

func (o *Outbox) Flush(ctx context.Context) error {
	o.mu.Lock()
	batch := o.pending
	o.pending = nil
	o.mu.Unlock()

	if o.publish == nil {
		return nil
	}
	for i, rec := range batch {
		if err := o.publish(ctx, rec); err != nil {
			o.mu.Lock()
			o.pending = append(batch[i:], o.pending...)
			o.mu.Unlock()
			return err
		}
	}
	return nil
}

// Pending returns a snapshot of unflushed records.
func (o *Outbox) Pending() []outbox.EventRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]outbox.EventRecord, len(o.pending))
	copy(out, o.pending)
	return out
}

var _ outbox.Outbox = (*Outbox)(nil)
