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
	"github.com/okian/marketnames/pkg/logger"
)

const (
	playerOutcomePrefix     = "sr:player:"
	competitorOutcomePrefix = "sr:competitor:"
	entityOutcomeSeparator  = ","
	maxEntityOutcomeParts   = 2
)

// DescriptionProvider is the market-description catalogue. It decides
// between invariant, variant and variant-list descriptions from the
// specifiers.
type DescriptionProvider interface {
	MarketDescription(ctx context.Context, marketID int, specifiers model.Specifiers, langs []language.Tag) (*model.MarketDescription, error)
}

// Provider renders market and outcome names.
type Provider struct {
	descriptions DescriptionProvider
	profiles     ProfileResolver
	logger       logger.Logger
}

// Option applies a configuration option to the Provider.
type Option func(*Provider)

// WithLogger sets the logger used for debug tracing.
func WithLogger(l logger.Logger) Option {
	return func(p *Provider) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewProvider creates a Provider over the two collaborators.
func NewProvider(descriptions DescriptionProvider, profiles ProfileResolver, opts ...Option) *Provider {
	p := &Provider{
		descriptions: descriptions,
		profiles:     profiles,
		logger:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// MarketName renders the name of marketID for lang.
func (p *Provider) MarketName(ctx context.Context, event model.SportEvent, marketID int, specifiers model.Specifiers, lang language.Tag) (string, error) {
	const op = "market name"
	desc, err := p.description(ctx, op, marketID, specifiers, lang)
	if err != nil {
		return "", err
	}
	template, ok := desc.Name(lang)
	if !ok {
		return "", nameerr.Generation(op, strconv.Itoa(marketID), nil, "missing market descriptor for %s", lang)
	}
	p.logger.Debug(ctx, "market template resolved",
		logger.Int("marketID", marketID), logger.Lang(lang), logger.String("template", template))
	return p.render(ctx, event, specifiers, template, lang)
}

// OutcomeName renders the name of outcomeID in marketID for lang. Outcome
// ids that reference players or competitors are named directly from their
// profiles without consulting the catalogue.
func (p *Provider) OutcomeName(ctx context.Context, event model.SportEvent, marketID int, outcomeID string, specifiers model.Specifiers, lang language.Tag) (string, error) {
	const op = "outcome name"
	if isEntityOutcome(outcomeID) {
		p.logger.Debug(ctx, "naming outcome from profiles", logger.String("outcomeID", outcomeID), logger.Lang(lang))
		return p.entityOutcomeName(ctx, outcomeID, lang)
	}
	desc, err := p.description(ctx, op, marketID, specifiers, lang)
	if err != nil {
		return "", err
	}
	template, ok := desc.OutcomeName(outcomeID, lang)
	if !ok {
		return "", nameerr.Generation(op, outcomeID, nil, "missing outcome descriptor in market %d for %s", marketID, lang)
	}
	return p.render(ctx, event, specifiers, template, lang)
}

func (p *Provider) description(ctx context.Context, op string, marketID int, specifiers model.Specifiers, lang language.Tag) (*model.MarketDescription, error) {
	desc, err := p.descriptions.MarketDescription(ctx, marketID, specifiers, []language.Tag{lang})
	if err != nil {
		return nil, nameerr.Generation(op, strconv.Itoa(marketID), err, "missing market descriptor")
	}
	if desc == nil {
		return nil, nameerr.Generation(op, strconv.Itoa(marketID), nil, "missing market descriptor")
	}
	return desc, nil
}

// render evaluates the placeholders of template concurrently and splices the
// fragments back in appearance order. All syntax is checked before any
// expression is evaluated.
func (p *Provider) render(ctx context.Context, event model.SportEvent, specifiers model.Specifiers, template string, lang language.Tag) (string, error) {
	if !strings.ContainsAny(template, "{}") {
		return template, nil
	}
	desc, err := ParseDescriptor(template)
	if err != nil {
		return "", err
	}
	placeholders := desc.Placeholders()
	exprs := make([]Expression, len(placeholders))
	for i, text := range placeholders {
		ph, err := ParsePlaceholder(text)
		if err != nil {
			return "", err
		}
		exprs[i], err = BuildExpression(event, specifiers, p.profiles, ph.Operator, ph.Operand)
		if err != nil {
			return "", err
		}
	}

	fragments := make([]string, len(exprs))
	g, gctx := errgroup.WithContext(ctx)
	for i, expr := range exprs {
		g.Go(func() error {
			s, err := expr.Evaluate(gctx, lang)
			fragments[i] = s
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	return desc.Format(fragments)
}

func isEntityOutcome(outcomeID string) bool {
	return strings.HasPrefix(outcomeID, playerOutcomePrefix) || strings.HasPrefix(outcomeID, competitorOutcomePrefix)
}

// entityOutcomeName names "sr:player:1" or "sr:player:1,sr:competitor:2".
// Only a bare ',' separates the two ids.
func (p *Provider) entityOutcomeName(ctx context.Context, outcomeID string, lang language.Tag) (string, error) {
	const op = "outcome name"
	parts := strings.Split(outcomeID, entityOutcomeSeparator)
	if len(parts) > maxEntityOutcomeParts {
		return "", nameerr.Generation(op, outcomeID, nil, "at most %d entity ids are supported", maxEntityOutcomeParts)
	}
	ids := make([]urn.URN, len(parts))
	for i, part := range parts {
		id, err := urn.Parse(part)
		if err != nil {
			return "", nameerr.Generation(op, outcomeID, err, "unsupported entity outcome id")
		}
		if !id.IsPlayer() && !id.IsCompetitor() {
			return "", nameerr.Generation(op, outcomeID, nil, "%s is neither a player nor a competitor", id)
		}
		ids[i] = id
	}

	names := make([]string, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			name, err := resolveProfileName(gctx, p.profiles, id, lang)
			names[i] = name
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	return strings.Join(names, entityOutcomeSeparator), nil
}
