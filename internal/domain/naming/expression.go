package naming

import (
	"context"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/okian/marketnames/internal/domain/model"
	"github.com/okian/marketnames/internal/domain/nameerr"
	"github.com/okian/marketnames/internal/domain/urn"
)

// Entity keywords accepted by the '$' operator.
const (
	keywordEvent       = "event"
	keywordCompetitor1 = "competitor1"
	keywordCompetitor2 = "competitor2"
)

// ProfileResolver looks up localized names of sport entities. It owns all
// caching and must fetch each (entity, language) at most once.
type ProfileResolver interface {
	PlayerName(ctx context.Context, id urn.URN, lang language.Tag) (string, error)
	CompetitorName(ctx context.Context, id urn.URN, lang language.Tag) (string, error)
	EventName(ctx context.Context, id urn.URN, lang language.Tag) (string, error)
	HomeCompetitor(ctx context.Context, eventID urn.URN) (urn.URN, error)
	AwayCompetitor(ctx context.Context, eventID urn.URN) (urn.URN, error)
}

// Kind enumerates the expression variants.
type Kind int

const (
	KindCardinal Kind = iota
	KindOrdinal
	KindPlus
	KindMinus
	KindEntity
	KindPlayerProfile
)

func (k Kind) String() string {
	switch k {
	case KindCardinal:
		return "cardinal"
	case KindOrdinal:
		return "ordinal"
	case KindPlus:
		return "plus"
	case KindMinus:
		return "minus"
	case KindEntity:
		return "entity"
	case KindPlayerProfile:
		return "player_profile"
	}
	return "unknown"
}

// Expression renders one placeholder. The kind is fixed at construction;
// only the fields that kind needs are set.
type Expression struct {
	kind     Kind
	operand  Operand // numeric kinds and KindPlayerProfile
	keyword  string  // KindEntity
	event    model.SportEvent
	profiles ProfileResolver
}

// Kind reports the variant.
func (e Expression) Kind() Kind { return e.kind }

// Evaluate renders the fragment for lang.
func (e Expression) Evaluate(ctx context.Context, lang language.Tag) (string, error) {
	switch e.kind {
	case KindCardinal:
		return e.cardinal()
	case KindOrdinal:
		return e.ordinal(lang)
	case KindPlus:
		return e.signed(false)
	case KindMinus:
		return e.signed(true)
	case KindEntity:
		return e.entity(ctx, lang)
	case KindPlayerProfile:
		return e.playerProfile(ctx, lang)
	}
	return "", nameerr.Resolution("evaluate", e.kind.String(), nil, "unsupported expression kind")
}

func (e Expression) cardinal() (string, error) {
	_, text, err := e.operand.Number()
	return text, err
}

func (e Expression) ordinal(lang language.Tag) (string, error) {
	n, err := e.operand.Integer()
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n, 10) + ordinalSuffix(n, lang), nil
}

// ordinalSuffix applies the English rule for every language.
func ordinalSuffix(n int64, _ language.Tag) string {
	if n < 0 {
		n = -n
	}
	switch n % 100 {
	case 11, 12, 13:
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

// signed renders the value's text with an explicit sign; invert flips it.
// Zero in any literal form renders "0".
func (e Expression) signed(invert bool) (string, error) {
	d, text, err := e.operand.Number()
	if err != nil {
		return "", err
	}
	if d.IsZero() {
		return "0", nil
	}
	magnitude := strings.TrimPrefix(strings.TrimPrefix(text, "+"), "-")
	if d.IsNegative() != invert {
		return "-" + magnitude, nil
	}
	return "+" + magnitude, nil
}

func (e Expression) entity(ctx context.Context, lang language.Tag) (string, error) {
	const op = "entity expression"
	switch e.keyword {
	case keywordEvent:
		if !e.event.IsMatch() {
			name, err := e.profiles.EventName(ctx, e.event.ID, lang)
			return name, asResolution(op, e.event.ID.String(), err)
		}
		var home, away string
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			home, err = e.competitorName(gctx, 1, lang)
			return err
		})
		g.Go(func() (err error) {
			away, err = e.competitorName(gctx, 2, lang)
			return err
		})
		if err := g.Wait(); err != nil {
			return "", err
		}
		return home + " vs " + away, nil
	case keywordCompetitor1, keywordCompetitor2:
		if !e.event.IsMatch() {
			return "", nameerr.Resolution(op, e.keyword, nil, "event %s is not a match", e.event.ID)
		}
		index := 1
		if e.keyword == keywordCompetitor2 {
			index = 2
		}
		return e.competitorName(ctx, index, lang)
	}
	return "", nameerr.Resolution(op, e.keyword, nil, "unsupported entity keyword")
}

// competitorName resolves the home (1) or away (2) competitor's name.
func (e Expression) competitorName(ctx context.Context, index int, lang language.Tag) (string, error) {
	const op = "entity expression"
	var (
		id  urn.URN
		err error
	)
	if index == 1 {
		id, err = e.profiles.HomeCompetitor(ctx, e.event.ID)
	} else {
		id, err = e.profiles.AwayCompetitor(ctx, e.event.ID)
	}
	if err != nil {
		return "", asResolution(op, e.event.ID.String(), err)
	}
	name, err := e.profiles.CompetitorName(ctx, id, lang)
	return name, asResolution(op, id.String(), err)
}

func (e Expression) playerProfile(ctx context.Context, lang language.Tag) (string, error) {
	const op = "player profile expression"
	raw, err := e.operand.Text()
	if err != nil {
		return "", err
	}
	id, err := urn.Parse(raw)
	if err != nil {
		return "", nameerr.Resolution(op, raw, err, "specifier is not an entity identifier")
	}
	return resolveProfileName(ctx, e.profiles, id, lang)
}

// resolveProfileName names a player or competitor URN.
func resolveProfileName(ctx context.Context, profiles ProfileResolver, id urn.URN, lang language.Tag) (string, error) {
	const op = "profile name"
	var (
		name string
		err  error
	)
	switch {
	case id.IsPlayer():
		name, err = profiles.PlayerName(ctx, id, lang)
	case id.IsCompetitor():
		name, err = profiles.CompetitorName(ctx, id, lang)
	default:
		return "", nameerr.Resolution(op, id.String(), nil, "only player and competitor profiles are named")
	}
	return name, asResolution(op, id.String(), err)
}

// asResolution passes classified errors through untouched and marks
// collaborator failures as resolution errors, keeping the cause.
func asResolution(op, input string, err error) error {
	if err == nil || nameerr.KindOf(err) != "" {
		return err
	}
	return nameerr.Resolution(op, input, err, "profile lookup failed")
}
