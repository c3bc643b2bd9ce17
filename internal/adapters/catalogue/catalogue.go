// Package catalogue serves market descriptions from a YAML document.
//
// A description is found by one of three routes. Without a "variant"
// specifier the invariant entry of the market is used. With a variant that
// names a variant list, the invariant names are combined with the list's
// outcomes. Any other variant selects the market's single-variant entry.
package catalogue

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"sync"

	"golang.org/x/text/language"

	"github.com/okian/marketnames/internal/domain/model"
	"github.com/okian/marketnames/pkg/logger"
	"github.com/okian/marketnames/pkg/metrics"
)

// Lookup routes.
const (
	RouteInvariant   = "invariant"
	RouteVariant     = "variant"
	RouteVariantList = "variant_list"
)

//go:embed markets.yaml
var defaultCatalogue []byte

// Catalogue is safe for concurrent use.
type Catalogue struct {
	path   string
	logger logger.Logger

	mu  sync.RWMutex
	idx *index
}

// New loads the embedded catalogue, or the file set with WithPath.
func New(opts ...Option) (*Catalogue, error) {
	c := &Catalogue{logger: logger.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	data := defaultCatalogue
	if c.path != "" {
		b, err := os.ReadFile(c.path)
		if err != nil {
			return nil, fmt.Errorf("catalogue: read %s: %w", c.path, err)
		}
		data = b
	}
	if err := c.Load(data); err != nil {
		return nil, err
	}
	return c, nil
}

// Load replaces the catalogue with the YAML document in data.
func (c *Catalogue) Load(data []byte) error {
	idx, err := parse(data)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.idx = idx
	c.mu.Unlock()
	count := len(idx.invariant) + len(idx.variants)
	metrics.UpdateCatalogueMarkets(count)
	c.logger.Info(context.Background(), "catalogue loaded",
		logger.Int("markets", count), logger.Int("variantLists", len(idx.lists)))
	return nil
}

// Len returns the number of market entries, variants included.
func (c *Catalogue) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.idx.invariant) + len(c.idx.variants)
}

// MarketDescription returns the description of marketID for specifiers,
// holding only the templates of langs. Nil or empty langs keeps them all.
func (c *Catalogue) MarketDescription(_ context.Context, marketID int, specifiers model.Specifiers, langs []language.Tag) (*model.MarketDescription, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	desc, route, ok := c.resolve(marketID, specifiers)
	metrics.RecordCatalogueLookup(route)
	if !ok {
		metrics.RecordCatalogueMiss()
		variant, _ := specifiers.Variant()
		return nil, fmt.Errorf("%w: market %d variant %q", ErrNotFound, marketID, variant)
	}
	return desc.project(langs), nil
}

// resolve is called with the read lock held.
func (c *Catalogue) resolve(marketID int, specifiers model.Specifiers) (entry, string, bool) {
	variant, hasVariant := specifiers.Variant()
	if !hasVariant {
		d, ok := c.idx.invariant[marketID]
		return entry{desc: d}, RouteInvariant, ok
	}
	if outcomes, ok := c.idx.lists[variant]; ok {
		d, ok := c.idx.invariant[marketID]
		return entry{desc: d, outcomes: outcomes, variant: variant}, RouteVariantList, ok
	}
	d, ok := c.idx.variants[variantKey{marketID: marketID, variant: variant}]
	return entry{desc: d}, RouteVariant, ok
}

// entry is a resolved description, with outcomes overridden for variant lists.
type entry struct {
	desc     *model.MarketDescription
	outcomes []model.OutcomeDescription
	variant  string
}

// project copies the entry restricted to langs so callers never share the
// catalogue's maps.
func (e entry) project(langs []language.Tag) *model.MarketDescription {
	outcomes := e.desc.Outcomes
	variant := e.desc.Variant
	if e.outcomes != nil {
		outcomes = e.outcomes
		variant = e.variant
	}
	out := &model.MarketDescription{
		ID:       e.desc.ID,
		Variant:  variant,
		Names:    pick(e.desc.Names, langs),
		Outcomes: make([]model.OutcomeDescription, 0, len(outcomes)),
	}
	for _, o := range outcomes {
		out.Outcomes = append(out.Outcomes, model.OutcomeDescription{ID: o.ID, Names: pick(o.Names, langs)})
	}
	return out
}

func pick(names map[language.Tag]string, langs []language.Tag) map[language.Tag]string {
	out := make(map[language.Tag]string, len(names))
	if len(langs) == 0 {
		for k, v := range names {
			out[k] = v
		}
		return out
	}
	for _, l := range langs {
		if v, ok := names[l]; ok {
			out[l] = v
		}
	}
	return out
}
