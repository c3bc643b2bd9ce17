// Package dedupe keeps bounded in-memory records of work already done:
// observation ids that were accepted and expensive lookups that already
// succeeded.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

// Deduper records seen observation IDs to ensure at-most-once processing.
type Deduper interface {
	// SeenAndRecord atomically checks if id was seen and records it if not.
	// Returns true if id was already seen.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord forgets id so it can be retried, e.g. after the queue
	// rejected the observation.
	Unrecord(ctx context.Context, id string)

	Size() int64
}

type inMemoryDeduper struct {
	mu   sync.Mutex
	keys *order
	size atomic.Int64
}

// NewInMemoryDeduper creates a deduper that evicts the oldest id once full.
func NewInMemoryDeduper(opts ...Option) Deduper {
	s := newSettings(opts)
	return &inMemoryDeduper{keys: newOrder(s.maxSize)}
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.keys.has(id) {
		return true
	}
	d.keys.push(id)
	d.size.Store(int64(d.keys.len()))
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.keys.remove(id) {
		d.size.Store(int64(d.keys.len()))
	}
}

// Size returns the current number of recorded ids.
func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
