package dedupe

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Memo caches successful results by key. Concurrent callers of the same
// key share one in-flight call; failures are never cached, so the next
// caller tries again.
type Memo[V any] struct {
	mu     sync.RWMutex
	values map[string]V
	keys   *order
	group  singleflight.Group
}

// NewMemo creates a memo bounded like the deduper.
func NewMemo[V any](opts ...Option) *Memo[V] {
	s := newSettings(opts)
	return &Memo[V]{
		values: make(map[string]V),
		keys:   newOrder(s.maxSize),
	}
}

// Lookup returns the cached value for key.
func (m *Memo[V]) Lookup(key string) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Store caches v under key, replacing any earlier value.
func (m *Memo[V]) Store(key string, v V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if evicted, ok := m.keys.push(key); ok {
		delete(m.values, evicted)
	}
	m.values[key] = v
}

// Do returns the cached value for key, or runs fn once across all
// concurrent callers and caches its result on success. cached reports
// whether the value came from the cache without running fn.
//
// fn runs detached from the cancellation of whichever caller started it;
// each caller stops waiting when its own ctx is done.
func (m *Memo[V]) Do(ctx context.Context, key string, fn func(context.Context) (V, error)) (v V, cached bool, err error) {
	if v, ok := m.Lookup(key); ok {
		return v, true, nil
	}
	shared := context.WithoutCancel(ctx)
	ch := m.group.DoChan(key, func() (any, error) {
		// A call that finished between Lookup and DoChan already stored it.
		if v, ok := m.Lookup(key); ok {
			return v, nil
		}
		v, err := fn(shared)
		if err != nil {
			return nil, err
		}
		m.Store(key, v)
		return v, nil
	})
	var zero V
	select {
	case <-ctx.Done():
		return zero, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, false, res.Err
		}
		return res.Val.(V), false, nil
	}
}

// Size returns the number of cached values.
func (m *Memo[V]) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}
