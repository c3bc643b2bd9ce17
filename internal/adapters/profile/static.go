package profile

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/text/language"

	"github.com/okian/marketnames/internal/domain/urn"
)

// StaticFetcher serves profiles from memory. It backs the service when no
// sports API is configured, and tests.
type StaticFetcher struct {
	mu          sync.RWMutex
	names       map[string]string
	rosters     map[urn.URN][]urn.URN
	competitors map[urn.URN]competitors
}

// NewStaticFetcher returns an empty StaticFetcher.
func NewStaticFetcher() *StaticFetcher {
	return &StaticFetcher{
		names:       make(map[string]string),
		rosters:     make(map[urn.URN][]urn.URN),
		competitors: make(map[urn.URN]competitors),
	}
}

// SetName records the name of id in lang.
func (f *StaticFetcher) SetName(id urn.URN, lang language.Tag, name string) *StaticFetcher {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.names[nameKey(id, lang)] = name
	return f
}

// SetRoster records the players of a competitor.
func (f *StaticFetcher) SetRoster(competitor urn.URN, players ...urn.URN) *StaticFetcher {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rosters[competitor] = players
	return f
}

// SetMatch records the home and away competitors of a match.
func (f *StaticFetcher) SetMatch(event, home, away urn.URN) *StaticFetcher {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.competitors[event] = competitors{home: home, away: away}
	return f
}

func (f *StaticFetcher) entity(id urn.URN, lang language.Tag) (Entity, error) {
	n, ok := f.names[nameKey(id, lang)]
	if !ok {
		return Entity{}, fmt.Errorf("%w: %s in %s", ErrUnknown, id, lang)
	}
	return Entity{ID: id, Name: n}, nil
}

// FetchPlayer implements Fetcher.
func (f *StaticFetcher) FetchPlayer(_ context.Context, id urn.URN, lang language.Tag) (*Entity, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	e, err := f.entity(id, lang)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// FetchCompetitor implements Fetcher. Roster players without a name in lang
// are left out.
func (f *StaticFetcher) FetchCompetitor(_ context.Context, id urn.URN, lang language.Tag) (*CompetitorProfile, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	e, err := f.entity(id, lang)
	if err != nil {
		return nil, err
	}
	out := &CompetitorProfile{Entity: e}
	for _, p := range f.rosters[id] {
		if pe, err := f.entity(p, lang); err == nil {
			out.Players = append(out.Players, pe)
		}
	}
	return out, nil
}

// FetchEventSummary implements Fetcher.
func (f *StaticFetcher) FetchEventSummary(_ context.Context, id urn.URN, lang language.Tag) (*EventSummary, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := &EventSummary{Entity: Entity{ID: id}}
	c, isMatch := f.competitors[id]
	if e, err := f.entity(id, lang); err == nil {
		out.Name = e.Name
	} else if !isMatch {
		return nil, err
	}
	if isMatch {
		out.Home = Entity{ID: c.home, Name: f.names[nameKey(c.home, lang)]}
		out.Away = Entity{ID: c.away, Name: f.names[nameKey(c.away, lang)]}
	}
	return out, nil
}

// DemoFetcher returns a StaticFetcher seeded with one match, its teams and
// a few players in English and German.
func DemoFetcher() *StaticFetcher {
	var (
		match = urn.MustParse("sr:match:1")
		stage = urn.MustParse("sr:stage:1")
		home  = urn.MustParse("sr:competitor:1")
		away  = urn.MustParse("sr:competitor:2")
		p1    = urn.MustParse("sr:player:1")
		p2    = urn.MustParse("sr:player:2")
		p3    = urn.MustParse("sr:player:3")
	)
	f := NewStaticFetcher().
		SetMatch(match, home, away).
		SetRoster(home, p1, p2).
		SetRoster(away, p3)
	for _, lang := range []language.Tag{language.English, language.German} {
		f.SetName(p1, lang, "Jane Roe").
			SetName(p2, lang, "John Doe").
			SetName(p3, lang, "Max Mustermann")
	}
	f.SetName(home, language.English, "Team A").SetName(home, language.German, "Mannschaft A").
		SetName(away, language.English, "Team B").SetName(away, language.German, "Mannschaft B").
		SetName(stage, language.English, "Grand Prix").SetName(stage, language.German, "Großer Preis")
	return f
}
