package sportsapi

import (
	"fmt"

	"github.com/okian/marketnames/internal/adapters/profile"
	"github.com/okian/marketnames/internal/domain/urn"
)

const (
	qualifierHome = "home"
	qualifierAway = "away"
)

func mapEntity(e xmlEntity) (profile.Entity, error) {
	id, err := urn.Parse(e.ID)
	if err != nil {
		return profile.Entity{}, fmt.Errorf("%w: %q", ErrInvalidEntity, e.ID)
	}
	return profile.Entity{ID: id, Name: e.Name}, nil
}

func mapCompetitor(p xmlCompetitorProfile) (*profile.CompetitorProfile, error) {
	c, err := mapEntity(p.Competitor)
	if err != nil {
		return nil, err
	}
	out := &profile.CompetitorProfile{Entity: c}
	for _, raw := range p.Players {
		player, err := mapEntity(raw)
		if err != nil {
			return nil, err
		}
		out.Players = append(out.Players, player)
	}
	return out, nil
}

// mapPlayer prefers the full name when the API sends one.
func mapPlayer(p xmlPlayerProfile) (*profile.Entity, error) {
	e, err := mapEntity(p.Player.xmlEntity)
	if err != nil {
		return nil, err
	}
	if p.Player.FullName != "" {
		e.Name = p.Player.FullName
	}
	return &e, nil
}

func mapSummary(s xmlSummary) (*profile.EventSummary, error) {
	e, err := mapEntity(s.SportEvent.xmlEntity)
	if err != nil {
		return nil, err
	}
	out := &profile.EventSummary{Entity: e}
	for _, raw := range s.SportEvent.Competitors {
		c, err := mapEntity(raw.xmlEntity)
		if err != nil {
			return nil, err
		}
		switch raw.Qualifier {
		case qualifierHome:
			out.Home = c
		case qualifierAway:
			out.Away = c
		}
	}
	return out, nil
}
