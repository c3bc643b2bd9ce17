// Package profile resolves localized names of players, competitors and
// events, fetching each (entity, language) from upstream at most once.
package profile

import (
	"context"
	"fmt"

	"golang.org/x/text/language"

	"github.com/okian/marketnames/internal/domain/dedupe"
	"github.com/okian/marketnames/internal/domain/urn"
	"github.com/okian/marketnames/pkg/logger"
	"github.com/okian/marketnames/pkg/metrics"
)

const defaultCacheSize = 100000

// competitors are the home and away ids of a match.
type competitors struct {
	home, away urn.URN
}

// Resolver caches names learned from a Fetcher. Any fetch stores every
// name it carries: a competitor profile names its players, an event
// summary names the event and both competitors.
type Resolver struct {
	fetcher     Fetcher
	logger      logger.Logger
	cacheSize   int
	summaryLang language.Tag

	names   *dedupe.Memo[string]
	matches *dedupe.Memo[competitors]
}

// NewResolver creates a Resolver over fetcher.
func NewResolver(fetcher Fetcher, opts ...Option) *Resolver {
	r := &Resolver{
		fetcher:     fetcher,
		logger:      logger.Nop(),
		cacheSize:   defaultCacheSize,
		summaryLang: language.English,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.names = dedupe.NewMemo[string](dedupe.WithMaxSize(r.cacheSize))
	r.matches = dedupe.NewMemo[competitors](dedupe.WithMaxSize(r.cacheSize))
	return r
}

func nameKey(id urn.URN, lang language.Tag) string {
	return id.String() + "|" + lang.String()
}

// PlayerName returns the player's name in lang.
func (r *Resolver) PlayerName(ctx context.Context, id urn.URN, lang language.Tag) (string, error) {
	return r.name(ctx, id, lang, func(ctx context.Context) (string, error) {
		p, err := r.fetcher.FetchPlayer(ctx, id, lang)
		r.recordFetch(ctx, urn.TypePlayer, id, lang, err)
		if err != nil {
			return "", fmt.Errorf("%w: player %s (%s): %w", ErrFetch, id, lang, err)
		}
		return p.Name, nil
	})
}

// CompetitorName returns the competitor's name in lang. The fetch also
// caches the names of the competitor's players.
func (r *Resolver) CompetitorName(ctx context.Context, id urn.URN, lang language.Tag) (string, error) {
	return r.name(ctx, id, lang, func(ctx context.Context) (string, error) {
		c, err := r.fetcher.FetchCompetitor(ctx, id, lang)
		r.recordFetch(ctx, urn.TypeCompetitor, id, lang, err)
		if err != nil {
			return "", fmt.Errorf("%w: competitor %s (%s): %w", ErrFetch, id, lang, err)
		}
		for _, p := range c.Players {
			if p.Name != "" {
				r.names.Store(nameKey(p.ID, lang), p.Name)
			}
		}
		return c.Name, nil
	})
}

// EventName returns the event's name in lang from its summary.
func (r *Resolver) EventName(ctx context.Context, id urn.URN, lang language.Tag) (string, error) {
	return r.name(ctx, id, lang, func(ctx context.Context) (string, error) {
		s, err := r.summary(ctx, id, lang)
		if err != nil {
			return "", err
		}
		return s.Name, nil
	})
}

// HomeCompetitor returns the id of the match's home competitor.
func (r *Resolver) HomeCompetitor(ctx context.Context, eventID urn.URN) (urn.URN, error) {
	c, err := r.competitors(ctx, eventID)
	return c.home, err
}

// AwayCompetitor returns the id of the match's away competitor.
func (r *Resolver) AwayCompetitor(ctx context.Context, eventID urn.URN) (urn.URN, error) {
	c, err := r.competitors(ctx, eventID)
	return c.away, err
}

// CachedNames returns the number of cached names.
func (r *Resolver) CachedNames() int {
	return r.names.Size()
}

func (r *Resolver) competitors(ctx context.Context, eventID urn.URN) (competitors, error) {
	c, cached, err := r.matches.Do(ctx, eventID.String(), func(ctx context.Context) (competitors, error) {
		s, err := r.summary(ctx, eventID, r.summaryLang)
		if err != nil {
			return competitors{}, err
		}
		// summary stored the ids as a side effect
		c, ok := r.matches.Lookup(eventID.String())
		if !ok {
			return competitors{}, fmt.Errorf("%w: event %s has no competitors", ErrUnknown, s.ID)
		}
		return c, nil
	})
	metrics.RecordProfileCache(cached)
	return c, err
}

// summary fetches the event summary and caches every name it carries.
func (r *Resolver) summary(ctx context.Context, id urn.URN, lang language.Tag) (*EventSummary, error) {
	s, err := r.fetcher.FetchEventSummary(ctx, id, lang)
	r.recordFetch(ctx, "event", id, lang, err)
	if err != nil {
		return nil, fmt.Errorf("%w: event %s (%s): %w", ErrFetch, id, lang, err)
	}
	if s.Name != "" {
		r.names.Store(nameKey(id, lang), s.Name)
	}
	if s.Home.ID.IsZero() || s.Away.ID.IsZero() {
		return s, nil
	}
	r.matches.Store(id.String(), competitors{home: s.Home.ID, away: s.Away.ID})
	for _, c := range []Entity{s.Home, s.Away} {
		if c.Name != "" {
			r.names.Store(nameKey(c.ID, lang), c.Name)
		}
	}
	return s, nil
}

// name serves (id, lang) from the cache or runs fetch once for it.
func (r *Resolver) name(ctx context.Context, id urn.URN, lang language.Tag, fetch func(context.Context) (string, error)) (string, error) {
	n, cached, err := r.names.Do(ctx, nameKey(id, lang), func(ctx context.Context) (string, error) {
		n, err := fetch(ctx)
		if err != nil {
			return "", err
		}
		if n == "" {
			return "", fmt.Errorf("%w: %s has no name in %s", ErrUnknown, id, lang)
		}
		return n, nil
	})
	metrics.RecordProfileCache(cached)
	return n, err
}

func (r *Resolver) recordFetch(ctx context.Context, entity string, id urn.URN, lang language.Tag, err error) {
	metrics.RecordProfileFetch(entity, err)
	if err != nil {
		r.logger.Warn(ctx, "profile fetch failed",
			logger.String("entity", entity), logger.URN("id", id), logger.Lang(lang), logger.Error(err))
		return
	}
	r.logger.Debug(ctx, "profile fetched", logger.String("entity", entity), logger.URN("id", id), logger.Lang(lang))
}
