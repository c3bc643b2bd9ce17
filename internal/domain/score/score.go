// Package score holds the home:away score value type.
package score

import (
	"strings"

	"github.com/okian/marketnames/internal/domain/nameerr"
	"github.com/shopspring/decimal"
)

const separator = ":"

// Score is an ordered (home, away) pair. Either side may be fractional.
type Score struct {
	Home decimal.Decimal
	Away decimal.Decimal
}

// New builds a score from decimal sides.
func New(home, away decimal.Decimal) Score {
	return Score{Home: home, Away: away}
}

// FromInts builds a score from integer sides.
func FromInts(home, away int64) Score {
	return Score{Home: decimal.NewFromInt(home), Away: decimal.NewFromInt(away)}
}

// Parse reads "home:away". Exactly one separator, both sides numeric.
func Parse(text string) (Score, error) {
	parts := strings.Split(text, separator)
	if len(parts) != 2 {
		return Score{}, nameerr.Syntax("score parse", text, "expected exactly one %q", separator)
	}
	home, err := parseSide(parts[0])
	if err != nil {
		return Score{}, nameerr.Syntax("score parse", text, "invalid home value")
	}
	away, err := parseSide(parts[1])
	if err != nil {
		return Score{}, nameerr.Syntax("score parse", text, "invalid away value")
	}
	return Score{Home: home, Away: away}, nil
}

func parseSide(s string) (decimal.Decimal, error) {
	if s == "" || strings.TrimSpace(s) != s {
		return decimal.Decimal{}, nameerr.ErrSyntax
	}
	return decimal.NewFromString(s)
}

// String renders the canonical "home:away" form.
func (s Score) String() string {
	return s.Home.String() + separator + s.Away.String()
}

// Equal compares both sides numerically, so 2 equals 2.0.
func (s Score) Equal(other Score) bool {
	return s.Home.Equal(other.Home) && s.Away.Equal(other.Away)
}
