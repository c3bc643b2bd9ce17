// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"golang.org/x/text/language"

	"github.com/okian/marketnames/internal/adapters/catalogue"
	"github.com/okian/marketnames/internal/adapters/mq/queue"
	"github.com/okian/marketnames/internal/adapters/mq/worker"
	"github.com/okian/marketnames/internal/adapters/profile"
	"github.com/okian/marketnames/internal/adapters/repository"
	"github.com/okian/marketnames/internal/domain/dedupe"
	"github.com/okian/marketnames/internal/domain/model"
	"github.com/okian/marketnames/internal/domain/nameerr"
	"github.com/okian/marketnames/internal/domain/naming"
	"github.com/okian/marketnames/internal/domain/types"
	"github.com/okian/marketnames/pkg/logger"
	"github.com/okian/marketnames/pkg/metrics"
)

// Service renders names on demand and in the background for observed
// markets. It implements the API dependencies.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalogue *catalogue.Catalogue
	profiles  *profile.Resolver
	provider  *naming.Provider
	names     *repository.MemoryStore
	deduper   dedupe.Deduper
	queue     *queue.InMemoryQueue
	pool      *worker.Pool

	// Configuration
	workerCount      int
	queueSize        int
	dedupeSize       int
	profileCacheSize int
	languages        []language.Tag
	cataloguePath    string
	fetcher          profile.Fetcher

	started bool
	logger  logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:      runtime.NumCPU() * 2,
		queueSize:        10000,
		dedupeSize:       500000,
		profileCacheSize: 100000,
		languages:        []language.Tag{language.English},
		logger:           logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fetcher == nil {
		s.fetcher = profile.DemoFetcher()
	}
	return s
}

// Start builds the components and starts the worker pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	s.logger.Info(ctx, "starting naming service...")

	cat, err := catalogue.New(
		catalogue.WithPath(s.cataloguePath),
		catalogue.WithLogger(s.logger.Named("catalogue")),
	)
	if err != nil {
		return fmt.Errorf("load catalogue: %w", err)
	}
	s.catalogue = cat
	s.profiles = profile.NewResolver(s.fetcher,
		profile.WithCacheSize(s.profileCacheSize),
		profile.WithSummaryLanguage(s.languages[0]),
		profile.WithLogger(s.logger.Named("profile")),
	)
	s.provider = naming.NewProvider(s.catalogue, s.profiles, naming.WithLogger(s.logger.Named("naming")))
	s.names = repository.NewMemoryStore(ctx)
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))

	s.pool = worker.NewPool(s.workerCount, s.queue, s, s.names,
		worker.WithLanguages(s.languages...),
		worker.WithLogger(s.logger),
	)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "naming service started",
		logger.Int("workers", s.pool.Size()),
		logger.Int("queueSize", s.queueSize),
		logger.Int("markets", s.catalogue.Len()),
		logger.Any("languages", s.languages),
	)
	return nil
}

// Stop drains the queue and shuts the workers down.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}
	s.logger.Info(ctx, "stopping naming service...")

	err := s.pool.Shutdown(ctx)
	_ = s.names.Close()
	s.started = false

	if err != nil {
		return fmt.Errorf("stop workers: %w", err)
	}
	s.logger.Info(ctx, "naming service stopped")
	return nil
}

func (s *Service) isStarted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// DefaultLanguage is the first configured language.
func (s *Service) DefaultLanguage() language.Tag {
	return s.languages[0]
}

// MarketName renders a market name and records the outcome in metrics.
func (s *Service) MarketName(ctx context.Context, event model.SportEvent, marketID int, specifiers model.Specifiers, lang language.Tag) (string, error) {
	if !s.isStarted() {
		return "", ErrNotStarted
	}
	start := time.Now()
	name, err := s.provider.MarketName(ctx, event, marketID, specifiers, lang)
	record(metrics.TargetMarket, start, err)
	return name, err
}

// OutcomeName renders an outcome name and records the outcome in metrics.
func (s *Service) OutcomeName(ctx context.Context, event model.SportEvent, marketID int, outcomeID string, specifiers model.Specifiers, lang language.Tag) (string, error) {
	if !s.isStarted() {
		return "", ErrNotStarted
	}
	start := time.Now()
	name, err := s.provider.OutcomeName(ctx, event, marketID, outcomeID, specifiers, lang)
	record(metrics.TargetOutcome, start, err)
	return name, err
}

func record(target string, start time.Time, err error) {
	ms := float64(time.Since(start).Microseconds()) / 1000
	if err == nil {
		metrics.RecordNameRendered(target, ms)
		return
	}
	kind := string(nameerr.KindOf(err))
	if kind == "" {
		kind = "internal"
	}
	metrics.RecordRenderError(target, kind, ms)
}

// ByEvent returns the names rendered in the background for eventID.
func (s *Service) ByEvent(ctx context.Context, eventID string) ([]types.RenderedName, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}
	return s.names.ByEvent(ctx, eventID)
}

// SeenAndRecord atomically checks if an observation id was seen and records
// it if not.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	if !s.isStarted() {
		return false
	}
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordObservationDuplicate()
	}
	return seen
}

// Unrecord removes an observation id from the seen list, allowing it to be retried.
func (s *Service) Unrecord(ctx context.Context, id string) {
	if !s.isStarted() {
		return
	}
	s.deduper.Unrecord(ctx, id)
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}

// Enqueue submits an observation for background rendering.
func (s *Service) Enqueue(ctx context.Context, o model.MarketObservation) error { //nolint:gocritic // hugeParam: passed by value for channel semantics
	if !s.isStarted() {
		return queue.ErrClosed
	}
	if err := s.queue.Enqueue(ctx, o); err != nil {
		metrics.RecordObservationDropped()
		return err
	}
	metrics.RecordObservationAccepted()
	s.logger.Debug(ctx, "observation queued",
		logger.String("observationID", o.ObservationID),
		logger.URN("eventID", o.Event.ID),
		logger.Int("marketID", o.MarketID),
	)
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	langs := make([]string, len(s.languages))
	for i, l := range s.languages {
		langs[i] = l.String()
	}
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
		"languages":   langs,
	}
	if s.started {
		stats["queueLength"] = s.queue.Len(ctx)
		stats["storedNames"] = s.names.Count(ctx)
		stats["storedEvents"] = s.names.Events()
		stats["markets"] = s.catalogue.Len()
		stats["cachedProfileNames"] = s.profiles.CachedNames()
		stats["seenObservations"] = s.deduper.Size()
	}
	return stats
}
