// Package queue buffers market observations between the HTTP intake and
// the rendering workers.
package queue

import (
	"context"
	"sync"

	"github.com/okian/marketnames/internal/domain/model"
	"github.com/okian/marketnames/pkg/metrics"
)

const defaultQueueCapacity = 10000

// Observation is the payload type flowing through the queue.
type Observation = model.MarketObservation

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds an observation. It never blocks: a full or closed queue
	// returns ErrFull or ErrClosed.
	Enqueue(ctx context.Context, o Observation) error

	// Dequeue returns a channel that receives observations until the queue
	// is closed and drained or ctx is done.
	Dequeue(ctx context.Context) <-chan Observation

	// Len returns the current number of queued observations.
	Len(ctx context.Context) int

	// Close stops intake. Buffered observations can still be dequeued.
	Close() error

	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	items    chan Observation
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.items = make(chan Observation, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	q.updateSize()
	return q
}

// Enqueue adds an observation to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, o Observation) error { //nolint:gocritic // hugeParam: passed by value for channel semantics
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError()
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		metrics.RecordQueueEnqueueError()
		return err
	}
	select {
	case q.items <- o:
		metrics.RecordQueueEnqueue()
		q.updateSize()
		return nil
	default:
		metrics.RecordQueueEnqueueError()
		return ErrFull
	}
}

// Dequeue returns a channel that will receive observations as they become
// available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Observation {
	out := make(chan Observation)
	go func() {
		defer close(out)
		for {
			select {
			case o, ok := <-q.items:
				if !ok {
					return
				}
				select {
				case out <- o:
					metrics.RecordQueueDequeue()
					q.updateSize()
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of queued observations.
func (q *InMemoryQueue) Len(_ context.Context) int {
	return q.updateSize()
}

// Capacity returns the configured bound.
func (q *InMemoryQueue) Capacity() int {
	return q.capacity
}

// Close gracefully shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	close(q.items)
	q.closed = true
	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

func (q *InMemoryQueue) updateSize() int {
	size := len(q.items)
	metrics.UpdateQueueSize(size)
	metrics.UpdateQueueUtilization(float64(size) / float64(q.capacity))
	return size
}
