package catalogue

import (
	"fmt"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/okian/marketnames/internal/domain/model"
)

type yamlCatalogue struct {
	Markets      []yamlMarket      `yaml:"markets"`
	VariantLists []yamlVariantList `yaml:"variant_lists"`
}

type yamlMarket struct {
	ID       int               `yaml:"id"`
	Variant  string            `yaml:"variant"`
	Names    map[string]string `yaml:"names"`
	Outcomes []yamlOutcome     `yaml:"outcomes"`
}

type yamlVariantList struct {
	ID       string        `yaml:"id"`
	Outcomes []yamlOutcome `yaml:"outcomes"`
}

type yamlOutcome struct {
	ID    string            `yaml:"id"`
	Names map[string]string `yaml:"names"`
}

// index is the parsed, lookup-ready form of a catalogue document.
type index struct {
	invariant map[int]*model.MarketDescription
	variants  map[variantKey]*model.MarketDescription
	lists     map[string][]model.OutcomeDescription
}

type variantKey struct {
	marketID int
	variant  string
}

func parse(data []byte) (*index, error) {
	var doc yamlCatalogue
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	idx := &index{
		invariant: make(map[int]*model.MarketDescription),
		variants:  make(map[variantKey]*model.MarketDescription),
		lists:     make(map[string][]model.OutcomeDescription),
	}
	for _, m := range doc.Markets {
		desc, err := m.toModel()
		if err != nil {
			return nil, err
		}
		if m.Variant == "" {
			if _, dup := idx.invariant[m.ID]; dup {
				return nil, fmt.Errorf("%w: duplicate market %d", ErrInvalid, m.ID)
			}
			idx.invariant[m.ID] = desc
			continue
		}
		key := variantKey{marketID: m.ID, variant: m.Variant}
		if _, dup := idx.variants[key]; dup {
			return nil, fmt.Errorf("%w: duplicate market %d variant %q", ErrInvalid, m.ID, m.Variant)
		}
		idx.variants[key] = desc
	}
	for _, l := range doc.VariantLists {
		if l.ID == "" {
			return nil, fmt.Errorf("%w: variant list without id", ErrInvalid)
		}
		outcomes, err := outcomesToModel(l.Outcomes)
		if err != nil {
			return nil, err
		}
		idx.lists[l.ID] = outcomes
	}
	return idx, nil
}

func (m yamlMarket) toModel() (*model.MarketDescription, error) {
	if m.ID <= 0 {
		return nil, fmt.Errorf("%w: market id must be positive, got %d", ErrInvalid, m.ID)
	}
	names, err := toNames(m.Names)
	if err != nil {
		return nil, fmt.Errorf("market %d: %w", m.ID, err)
	}
	outcomes, err := outcomesToModel(m.Outcomes)
	if err != nil {
		return nil, fmt.Errorf("market %d: %w", m.ID, err)
	}
	return &model.MarketDescription{ID: m.ID, Variant: m.Variant, Names: names, Outcomes: outcomes}, nil
}

func outcomesToModel(in []yamlOutcome) ([]model.OutcomeDescription, error) {
	out := make([]model.OutcomeDescription, 0, len(in))
	for _, o := range in {
		if o.ID == "" {
			return nil, fmt.Errorf("%w: outcome without id", ErrInvalid)
		}
		names, err := toNames(o.Names)
		if err != nil {
			return nil, fmt.Errorf("outcome %s: %w", o.ID, err)
		}
		out = append(out, model.OutcomeDescription{ID: o.ID, Names: names})
	}
	return out, nil
}

func toNames(in map[string]string) (map[language.Tag]string, error) {
	out := make(map[language.Tag]string, len(in))
	for code, name := range in {
		tag, err := language.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("%w: language %q: %v", ErrInvalid, code, err)
		}
		out[tag] = name
	}
	return out, nil
}
