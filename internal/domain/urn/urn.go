// Package urn models the prefix:type:id identifiers used for sport entities.
package urn

import (
	"regexp"
	"strconv"

	"github.com/okian/marketnames/internal/domain/nameerr"
)

// Known entity types.
const (
	TypePlayer     = "player"
	TypeCompetitor = "competitor"
	TypeMatch      = "match"
	TypeStage      = "stage"
	TypeTournament = "tournament"
)

var pattern = regexp.MustCompile(`^([a-zA-Z]+):([a-zA-Z_2]+):(-?\d+)$`)

// URN identifies a sport entity, e.g. sr:player:1234.
type URN struct {
	Prefix string
	Type   string
	ID     int64
}

// New builds a URN from its parts.
func New(prefix, typ string, id int64) URN {
	return URN{Prefix: prefix, Type: typ, ID: id}
}

// Parse reads the textual form. Surrounding whitespace is not tolerated.
func Parse(text string) (URN, error) {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return URN{}, nameerr.Syntax("urn parse", text, "not a prefix:type:id identifier")
	}
	id, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return URN{}, nameerr.Syntax("urn parse", text, "id out of range")
	}
	return URN{Prefix: m[1], Type: m[2], ID: id}, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(text string) URN {
	u, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return u
}

func (u URN) String() string {
	return u.Prefix + ":" + u.Type + ":" + strconv.FormatInt(u.ID, 10)
}

// IsZero reports whether u is the zero value.
func (u URN) IsZero() bool { return u == URN{} }

func (u URN) IsPlayer() bool     { return u.Type == TypePlayer }
func (u URN) IsCompetitor() bool { return u.Type == TypeCompetitor }
func (u URN) IsMatch() bool      { return u.Type == TypeMatch }
