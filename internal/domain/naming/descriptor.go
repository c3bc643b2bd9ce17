// Package naming renders market and outcome names from templated descriptors.
//
// A descriptor is literal text interleaved with placeholders of the form
// {[operator]operand}. Rendering splits the descriptor into a skeleton and an
// ordered list of placeholders, evaluates one Expression per placeholder and
// splices the fragments back in appearance order.
package naming

import (
	"strconv"
	"strings"

	"github.com/okian/marketnames/internal/domain/nameerr"
)

const (
	openBrace  = '{'
	closeBrace = '}'
)

// Operator selects the expression kind of a placeholder.
type Operator byte

// Supported operators. OpNone marks a placeholder without an operator.
const (
	OpNone    Operator = 0
	OpOrdinal Operator = '!'
	OpPlus    Operator = '+'
	OpMinus   Operator = '-'
	OpEntity  Operator = '$'
	OpProfile Operator = '%'
)

func (o Operator) String() string {
	if o == OpNone {
		return ""
	}
	return string(rune(o))
}

func isOperator(c byte) bool {
	switch Operator(c) {
	case OpOrdinal, OpPlus, OpMinus, OpEntity, OpProfile:
		return true
	}
	return false
}

// Placeholder is a parsed {operator operand} directive.
type Placeholder struct {
	Operator Operator
	Operand  string
}

// ParsePlaceholder splits "{!runnr}" into operator '!' and operand "runnr".
// The text must start with '{', end with '}' and contain no other brace.
func ParsePlaceholder(text string) (Placeholder, error) {
	const op = "parse placeholder"
	if len(text) < 2 || text[0] != openBrace || text[len(text)-1] != closeBrace {
		return Placeholder{}, nameerr.Syntax(op, text, "placeholder must be enclosed in braces")
	}
	content := text[1 : len(text)-1]
	if strings.ContainsAny(content, "{}") {
		return Placeholder{}, nameerr.Syntax(op, text, "nested or stray brace")
	}
	if content == "" {
		return Placeholder{}, nameerr.Syntax(op, text, "empty placeholder")
	}
	if !isOperator(content[0]) {
		return Placeholder{Operator: OpNone, Operand: content}, nil
	}
	if len(content) == 1 {
		return Placeholder{}, nameerr.Syntax(op, text, "operator without operand")
	}
	return Placeholder{Operator: Operator(content[0]), Operand: content[1:]}, nil
}

// Descriptor is a template split into literal segments around placeholders.
// There is always one more literal than there are placeholders.
type Descriptor struct {
	literals     []string
	placeholders []string
}

// ParseDescriptor scans text left to right, extracting every top-level
// {...} region. Unbalanced or nested braces fail before anything is returned.
func ParseDescriptor(text string) (Descriptor, error) {
	const op = "parse descriptor"
	var (
		d      Descriptor
		inside bool
		start  int // start of the current literal or placeholder
	)
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case openBrace:
			if inside {
				return Descriptor{}, nameerr.Syntax(op, text, "nested '{' at offset %d", i)
			}
			d.literals = append(d.literals, text[start:i])
			start, inside = i, true
		case closeBrace:
			if !inside {
				return Descriptor{}, nameerr.Syntax(op, text, "unmatched '}' at offset %d", i)
			}
			d.placeholders = append(d.placeholders, text[start:i+1])
			start, inside = i+1, false
		}
	}
	if inside {
		return Descriptor{}, nameerr.Syntax(op, text, "unterminated '{' at offset %d", start)
	}
	d.literals = append(d.literals, text[start:])
	return d, nil
}

// Placeholders returns the extracted placeholder substrings in order.
func (d Descriptor) Placeholders() []string {
	out := make([]string, len(d.placeholders))
	copy(out, d.placeholders)
	return out
}

// HasPlaceholders reports whether any placeholder was found.
func (d Descriptor) HasPlaceholders() bool { return len(d.placeholders) > 0 }

// Pattern is the original text with each placeholder replaced by {0}, {1}, ...
func (d Descriptor) Pattern() string {
	var b strings.Builder
	for i, lit := range d.literals {
		b.WriteString(lit)
		if i < len(d.placeholders) {
			b.WriteByte(openBrace)
			b.WriteString(strconv.Itoa(i))
			b.WriteByte(closeBrace)
		}
	}
	return b.String()
}

// Format substitutes fragments for the positional markers, in order.
func (d Descriptor) Format(fragments []string) (string, error) {
	if len(fragments) != len(d.placeholders) {
		return "", nameerr.Generation("format descriptor", d.Pattern(), nil,
			"got %d fragments for %d placeholders", len(fragments), len(d.placeholders))
	}
	var b strings.Builder
	for i, lit := range d.literals {
		b.WriteString(lit)
		if i < len(fragments) {
			b.WriteString(fragments[i])
		}
	}
	return b.String(), nil
}
