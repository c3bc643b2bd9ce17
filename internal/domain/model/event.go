package model

import (
	"golang.org/x/text/language"

	"github.com/okian/marketnames/internal/domain/urn"
)

// SportEvent is the event a market belongs to.
type SportEvent struct {
	ID urn.URN
}

// IsMatch reports whether the event is a head-to-head match with a home and
// an away competitor.
func (e SportEvent) IsMatch() bool {
	return e.ID.IsMatch()
}

// MarketDescription is a catalogue entry: localized templates for a market
// and its outcomes.
type MarketDescription struct {
	ID       int
	Variant  string
	Names    map[language.Tag]string
	Outcomes []OutcomeDescription
}

// OutcomeDescription holds the localized templates of one outcome.
type OutcomeDescription struct {
	ID    string
	Names map[language.Tag]string
}

// Name returns the market template for lang.
func (d *MarketDescription) Name(lang language.Tag) (string, bool) {
	if d == nil {
		return "", false
	}
	n, ok := d.Names[lang]
	return n, ok
}

// OutcomeName returns the template of outcomeID for lang.
func (d *MarketDescription) OutcomeName(outcomeID string, lang language.Tag) (string, bool) {
	if d == nil {
		return "", false
	}
	for _, o := range d.Outcomes {
		if o.ID == outcomeID {
			n, ok := o.Names[lang]
			return n, ok
		}
	}
	return "", false
}

// MarketObservation is a market seen on the feed whose names should be
// rendered ahead of time.
type MarketObservation struct {
	ObservationID string     // unique id for idempotency
	Event         SportEvent // owning event
	MarketID      int
	Specifiers    Specifiers
	OutcomeIDs    []string
}
