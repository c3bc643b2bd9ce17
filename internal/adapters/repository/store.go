// Package repository keeps names rendered ahead of time, grouped by event.
package repository

import (
	"container/list"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/okian/marketnames/internal/domain/types"
	"github.com/okian/marketnames/pkg/metrics"
)

const defaultMetricsUpdateInterval = 5 * time.Second

// Store provides read/write access to rendered names.
type Store interface {
	// Put stores names, replacing earlier renderings with the same key.
	Put(ctx context.Context, names ...types.RenderedName) error

	// ByEvent returns every name stored for eventID, ordered by market,
	// specifiers, outcome and language. Returns ErrNotFound for an unknown event.
	ByEvent(ctx context.Context, eventID string) ([]types.RenderedName, error)

	// Count returns the number of stored names.
	Count(ctx context.Context) int
}

type eventNames struct {
	byKey map[string]types.RenderedName
	elem  *list.Element
}

// MemoryStore is an in-memory Store.
type MemoryStore struct {
	mu     sync.RWMutex
	events map[string]*eventNames
	recent *list.List // event ids, most recently written at the back
	count  int

	maxEvents             int
	metricsUpdateInterval time.Duration

	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewMemoryStore constructs a store and starts its metrics updater, which
// runs until ctx is done or Close is called.
func NewMemoryStore(ctx context.Context, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		events:                make(map[string]*eventNames),
		recent:                list.New(),
		metricsUpdateInterval: defaultMetricsUpdateInterval,
		stopChan:              make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.startMetricsUpdater(ctx)
	return s
}

// Put implements Store.Put.
func (s *MemoryStore) Put(ctx context.Context, names ...types.RenderedName) error {
	for i := range names {
		if names[i].EventID == "" || names[i].Language == "" {
			return fmt.Errorf("%w: %q", ErrInvalidEntry, names[i].Key())
		}
	}

	s.mu.Lock()
	for i := range names {
		n := names[i]
		ev := s.touch(n.EventID)
		if _, exists := ev.byKey[n.Key()]; !exists {
			s.count++
		}
		ev.byKey[n.Key()] = n
	}
	s.evict()
	count := s.count
	s.mu.Unlock()

	metrics.UpdateStoredNames(count)
	return nil
}

// touch returns the names of eventID, creating them if needed, and marks
// the event as the most recently written. Callers hold mu.
func (s *MemoryStore) touch(eventID string) *eventNames {
	ev, ok := s.events[eventID]
	if ok {
		s.recent.MoveToBack(ev.elem)
		return ev
	}
	ev = &eventNames{byKey: make(map[string]types.RenderedName)}
	ev.elem = s.recent.PushBack(eventID)
	s.events[eventID] = ev
	return ev
}

func (s *MemoryStore) evict() {
	if s.maxEvents <= 0 {
		return
	}
	for len(s.events) > s.maxEvents {
		oldest := s.recent.Front()
		id, _ := oldest.Value.(string)
		s.count -= len(s.events[id].byKey)
		delete(s.events, id)
		s.recent.Remove(oldest)
	}
}

// ByEvent implements Store.ByEvent.
func (s *MemoryStore) ByEvent(ctx context.Context, eventID string) ([]types.RenderedName, error) {
	s.mu.RLock()
	ev, ok := s.events[eventID]
	if !ok {
		s.mu.RUnlock()
		return nil, fmt.Errorf("%w: %s", ErrNotFound, eventID)
	}
	out := make([]types.RenderedName, 0, len(ev.byKey))
	for _, n := range ev.byKey {
		out = append(out, n)
	}
	s.mu.RUnlock()

	sortNames(out)
	return out, nil
}

// Count implements Store.Count.
func (s *MemoryStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

// Events returns the number of events with stored names.
func (s *MemoryStore) Events() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// Close stops the metrics updater.
func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
	return nil
}

func (s *MemoryStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				metrics.UpdateStoredNames(s.Count(ctx))
			}
		}
	}()
}

func sortNames(names []types.RenderedName) {
	sort.Slice(names, func(i, j int) bool {
		a, b := names[i], names[j]
		if a.MarketID != b.MarketID {
			return a.MarketID < b.MarketID
		}
		if a.Specifiers != b.Specifiers {
			return a.Specifiers < b.Specifiers
		}
		if a.OutcomeID != b.OutcomeID {
			return a.OutcomeID < b.OutcomeID
		}
		return a.Language < b.Language
	})
}
