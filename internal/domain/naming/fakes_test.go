package naming_test

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/text/language"

	"github.com/okian/marketnames/internal/domain/model"
	"github.com/okian/marketnames/internal/domain/urn"
)

var errNotFound = errors.New("not found")

type nameKey struct {
	id   string
	lang language.Tag
}

// fakeProfiles answers from static maps and counts every call.
type fakeProfiles struct {
	mu    sync.Mutex
	names map[nameKey]string
	home  map[string]urn.URN
	away  map[string]urn.URN
	calls map[string]int
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{
		names: map[nameKey]string{},
		home:  map[string]urn.URN{},
		away:  map[string]urn.URN{},
		calls: map[string]int{},
	}
}

func (f *fakeProfiles) set(id string, lang language.Tag, name string) {
	f.names[nameKey{id, lang}] = name
}

func (f *fakeProfiles) lookup(kind string, id urn.URN, lang language.Tag) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[kind]++
	n, ok := f.names[nameKey{id.String(), lang}]
	if !ok {
		return "", errNotFound
	}
	return n, nil
}

func (f *fakeProfiles) count(kind string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[kind]
}

func (f *fakeProfiles) PlayerName(_ context.Context, id urn.URN, lang language.Tag) (string, error) {
	return f.lookup("player", id, lang)
}

func (f *fakeProfiles) CompetitorName(_ context.Context, id urn.URN, lang language.Tag) (string, error) {
	return f.lookup("competitor", id, lang)
}

func (f *fakeProfiles) EventName(_ context.Context, id urn.URN, lang language.Tag) (string, error) {
	return f.lookup("event", id, lang)
}

func (f *fakeProfiles) HomeCompetitor(_ context.Context, eventID urn.URN) (urn.URN, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["home"]++
	id, ok := f.home[eventID.String()]
	if !ok {
		return urn.URN{}, errNotFound
	}
	return id, nil
}

func (f *fakeProfiles) AwayCompetitor(_ context.Context, eventID urn.URN) (urn.URN, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["away"]++
	id, ok := f.away[eventID.String()]
	if !ok {
		return urn.URN{}, errNotFound
	}
	return id, nil
}

// fakeCatalogue serves fixed descriptions keyed by market id.
type fakeCatalogue struct {
	mu      sync.Mutex
	markets map[int]*model.MarketDescription
	calls   int
}

func (c *fakeCatalogue) MarketDescription(_ context.Context, marketID int, _ model.Specifiers, _ []language.Tag) (*model.MarketDescription, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	d, ok := c.markets[marketID]
	if !ok {
		return nil, errNotFound
	}
	return d, nil
}

func (c *fakeCatalogue) lookups() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func matchEvent() model.SportEvent {
	return model.SportEvent{ID: urn.MustParse("sr:match:100")}
}

// seededProfiles knows a match between Team A and Team B with one player.
func seededProfiles() *fakeProfiles {
	f := newFakeProfiles()
	f.home["sr:match:100"] = urn.MustParse("sr:competitor:1")
	f.away["sr:match:100"] = urn.MustParse("sr:competitor:2")
	f.set("sr:competitor:1", language.English, "Team A")
	f.set("sr:competitor:2", language.English, "Team B")
	f.set("sr:competitor:1", language.German, "Mannschaft A")
	f.set("sr:competitor:2", language.German, "Mannschaft B")
	f.set("sr:player:2", language.English, "John Doe")
	f.set("sr:stage:7", language.English, "Grand Prix")
	return f
}
