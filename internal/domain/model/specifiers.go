// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okian/marketnames/internal/domain/score"
)

const (
	// VariantKey is the reserved specifier that routes catalogue lookups
	// through variant resolution.
	VariantKey = "variant"
	// ScoreKey carries the current "home:away" score of live markets.
	ScoreKey = "score"
)

const (
	pairSeparator  = "|"
	valueSeparator = "="
)

// Specifiers are the per-occurrence parameters of a market, e.g. runnr=2.
// Keys are case-sensitive.
type Specifiers map[string]string

// ParseSpecifiers reads the feed form "k1=v1|k2=v2". Empty input yields an
// empty map.
func ParseSpecifiers(text string) (Specifiers, error) {
	out := Specifiers{}
	if text == "" {
		return out, nil
	}
	for _, pair := range strings.Split(text, pairSeparator) {
		k, v, ok := strings.Cut(pair, valueSeparator)
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSpecifiers, pair)
		}
		if _, dup := out[k]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrInvalidSpecifiers, k)
		}
		out[k] = v
	}
	if _, _, err := out.Score(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSpecifiers, err)
	}
	return out, nil
}

// Get returns the value for key and whether it is present.
func (s Specifiers) Get(key string) (string, bool) {
	v, ok := s[key]
	return v, ok
}

// Variant returns the variant specifier, if any.
func (s Specifiers) Variant() (string, bool) {
	return s.Get(VariantKey)
}

// Score parses the score specifier, if any.
func (s Specifiers) Score() (score.Score, bool, error) {
	v, ok := s.Get(ScoreKey)
	if !ok {
		return score.Score{}, false, nil
	}
	sc, err := score.Parse(v)
	return sc, true, err
}

// Clone returns an independent copy.
func (s Specifiers) Clone() Specifiers {
	out := make(Specifiers, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// String renders the canonical form with keys sorted, usable as a key.
func (s Specifiers) String() string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString(pairSeparator)
		}
		b.WriteString(k)
		b.WriteString(valueSeparator)
		b.WriteString(s[k])
	}
	return b.String()
}
