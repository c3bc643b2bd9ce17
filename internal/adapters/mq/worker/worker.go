// Package worker renders observed markets ahead of time: every market and
// outcome name in every configured language.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/okian/marketnames/internal/domain/model"
	"github.com/okian/marketnames/internal/domain/types"
	"github.com/okian/marketnames/pkg/logger"
	"github.com/okian/marketnames/pkg/metrics"
)

const (
	defaultWorkerMultiplier = 2
	poolShutdownTimeout     = 30 * time.Second
)

// Observation is what workers read off the queue.
type Observation = model.MarketObservation

// Renderer produces market and outcome names.
type Renderer interface {
	MarketName(ctx context.Context, event model.SportEvent, marketID int, specifiers model.Specifiers, lang language.Tag) (string, error)
	OutcomeName(ctx context.Context, event model.SportEvent, marketID int, outcomeID string, specifiers model.Specifiers, lang language.Tag) (string, error)
}

// Store keeps rendered names.
type Store interface {
	Put(ctx context.Context, names ...types.RenderedName) error
}

// Queue defines how workers receive observations.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Observation
}

// Worker processes observations until stopped.
type Worker interface {
	// Run starts the worker loop until ctx is canceled or the queue closes.
	Run(ctx context.Context)

	// Shutdown stops the worker after the observation in hand.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue     Queue
	renderer  Renderer
	store     Store
	languages []language.Tag
	name      string

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	active *atomic.Int64
	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, renderer Renderer, store Store, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     queue,
		renderer:  renderer,
		store:     store,
		languages: []language.Tag{language.English},
		name:      "worker",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		active:    new(atomic.Int64),
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.Named(w.name)
	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	items := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case o, ok := <-items:
			if !ok {
				return
			}
			if err := w.Process(ctx, o); err != nil {
				w.logger.Error(ctx, "observation rendered with failures",
					logger.String("observationID", o.ObservationID), logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.shutdownOnce.Do(func() { close(w.shutdown) })
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Process renders one observation in every language and stores the names
// that succeeded. A failed name does not stop the others; the returned
// error counts the failures.
func (w *InMemoryWorker) Process(ctx context.Context, o Observation) error { //nolint:gocritic // hugeParam: passed by value for channel semantics
	metrics.UpdateWorkerActiveCount(int(w.active.Add(1)))
	start := time.Now()
	defer func() {
		metrics.UpdateWorkerActiveCount(int(w.active.Add(-1)))
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	perLang := make([][]types.RenderedName, len(w.languages))
	failed := make([]int, len(w.languages))
	var g errgroup.Group
	for i, lang := range w.languages {
		g.Go(func() error {
			perLang[i], failed[i] = w.renderLanguage(ctx, o, lang)
			if failed[i] > 0 {
				return fmt.Errorf("%s: %d failed", lang, failed[i])
			}
			return nil
		})
	}
	renderErr := g.Wait()

	var names []types.RenderedName
	n := 0
	for i, batch := range perLang {
		names = append(names, batch...)
		n += failed[i]
	}
	if len(names) > 0 {
		if err := w.store.Put(ctx, names...); err != nil {
			metrics.RecordWorkerError()
			return fmt.Errorf("store names of %s: %w", o.ObservationID, err)
		}
	}
	if renderErr != nil {
		metrics.RecordWorkerError()
		return fmt.Errorf("%d of %d names failed for market %d (first: %w)", n, n+len(names), o.MarketID, renderErr)
	}
	w.logger.Debug(ctx, "observation rendered",
		logger.String("observationID", o.ObservationID), logger.Int("names", len(names)))
	return nil
}

// renderLanguage renders the market and its outcomes in lang, returning the
// names that succeeded and how many failed.
func (w *InMemoryWorker) renderLanguage(ctx context.Context, o Observation, lang language.Tag) (out []types.RenderedName, failed int) { //nolint:gocritic // hugeParam: observation passed by value like Process
	base := types.RenderedName{
		EventID:    o.Event.ID.String(),
		MarketID:   o.MarketID,
		Specifiers: o.Specifiers.String(),
		Language:   lang.String(),
	}
	out = make([]types.RenderedName, 0, len(o.OutcomeIDs)+1)

	if name, err := w.renderer.MarketName(ctx, o.Event, o.MarketID, o.Specifiers, lang); err != nil {
		failed++
		w.logger.Error(ctx, "market name failed",
			logger.Int("marketID", o.MarketID), logger.Lang(lang), logger.Error(err))
	} else {
		n := base
		n.Name = name
		out = append(out, n)
	}

	for _, outcomeID := range o.OutcomeIDs {
		name, err := w.renderer.OutcomeName(ctx, o.Event, o.MarketID, outcomeID, o.Specifiers, lang)
		if err != nil {
			failed++
			w.logger.Error(ctx, "outcome name failed",
				logger.Int("marketID", o.MarketID), logger.String("outcomeID", outcomeID), logger.Lang(lang), logger.Error(err))
			continue
		}
		n := base
		n.OutcomeID = outcomeID
		n.Name = name
		out = append(out, n)
	}
	return out, failed
}

// Pool manages multiple workers.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	logger  logger.Logger
}

// NewPool creates workerCount workers sharing queue, renderer and store.
// opts apply to every worker; each gets its own name.
func NewPool(workerCount int, queue Queue, renderer Renderer, store Store, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}
	p := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   queue,
		logger:  logger.Nop(),
	}
	active := new(atomic.Int64)
	for i := 0; i < workerCount; i++ {
		wopts := append(append([]Option{}, opts...), WithName("worker-"+strconv.Itoa(i)))
		p.workers[i] = NewInMemoryWorker(queue, renderer, store, wopts...)
		p.workers[i].active = active
	}
	if workerCount > 0 {
		p.logger = p.workers[0].logger
	}
	metrics.UpdateWorkerCount(workerCount)
	metrics.UpdateWorkerActiveCount(0)
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Shutdown closes the queue and waits for the workers to finish what they
// hold, bounded by ctx and poolShutdownTimeout.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	var firstErr error
	for i, w := range p.workers {
		if err := w.Shutdown(shutdownCtx); err != nil {
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
