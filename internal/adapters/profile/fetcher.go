package profile

import (
	"context"

	"golang.org/x/text/language"

	"github.com/okian/marketnames/internal/domain/urn"
)

// Entity is a named sport entity as returned by the sports API.
type Entity struct {
	ID   urn.URN
	Name string
}

// CompetitorProfile is a competitor with its roster.
type CompetitorProfile struct {
	Entity
	Players []Entity
}

// EventSummary is a sport event with its competitors. Home and Away are
// zero for events that are not matches.
type EventSummary struct {
	Entity
	Home Entity
	Away Entity
}

// Fetcher retrieves localized profiles from an upstream source. Every call
// is one round trip; the Resolver decides when to make it.
type Fetcher interface {
	FetchCompetitor(ctx context.Context, id urn.URN, lang language.Tag) (*CompetitorProfile, error)
	FetchPlayer(ctx context.Context, id urn.URN, lang language.Tag) (*Entity, error)
	FetchEventSummary(ctx context.Context, id urn.URN, lang language.Tag) (*EventSummary, error)
}
