package naming

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/okian/marketnames/internal/domain/model"
	"github.com/okian/marketnames/internal/domain/nameerr"
)

var (
	// boundedForm matches (name+N) and (name-N).
	boundedForm = regexp.MustCompile(`^\((\w+)([+-])(\d+)\)$`)
	// numberLiteral is the only numeric text a specifier may carry; no
	// exponents, no bare dots.
	numberLiteral = regexp.MustCompile(`^[+-]?\d+(\.\d+)?$`)
)

// Operand resolves a placeholder's value from the specifiers on demand.
// Implementations hold no mutable state.
type Operand interface {
	Integer() (int64, error)
	Decimal() (decimal.Decimal, error)
	Text() (string, error)
	// Number returns the value together with the text it renders as: the
	// stored literal for a lookup, the computed value for a shift.
	Number() (decimal.Decimal, string, error)
}

// BuildOperand returns a direct lookup of text, or for (name+N)/(name-N) a
// lookup of name shifted by N. Any other parenthesized form is a syntax error.
func BuildOperand(specifiers model.Specifiers, text string) (Operand, error) {
	if !strings.ContainsAny(text, "()") {
		return lookupOperand{specifiers: specifiers, name: text}, nil
	}
	m := boundedForm.FindStringSubmatch(text)
	if m == nil {
		return nil, nameerr.Syntax("build operand", text, "expected (name+N) or (name-N)")
	}
	delta, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return nil, nameerr.Syntax("build operand", text, "delta out of range")
	}
	if m[2] == "-" {
		delta = -delta
	}
	return shiftedOperand{
		inner: lookupOperand{specifiers: specifiers, name: m[1]},
		delta: delta,
	}, nil
}

type lookupOperand struct {
	specifiers model.Specifiers
	name       string
}

func (o lookupOperand) Text() (string, error) {
	v, ok := o.specifiers.Get(o.name)
	if !ok {
		return "", nameerr.Resolution("operand", o.name, nil, "specifier not present")
	}
	return v, nil
}

func (o lookupOperand) Integer() (int64, error) {
	v, err := o.Text()
	if err != nil {
		return 0, err
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, nameerr.Resolution("operand", o.name, err, "value %q is not an integer", v)
	}
	return i, nil
}

func (o lookupOperand) Decimal() (decimal.Decimal, error) {
	d, _, err := o.Number()
	return d, err
}

func (o lookupOperand) Number() (decimal.Decimal, string, error) {
	v, err := o.Text()
	if err != nil {
		return decimal.Decimal{}, "", err
	}
	if !numberLiteral.MatchString(v) {
		return decimal.Decimal{}, "", nameerr.Resolution("operand", o.name, nil, "value %q is not a number", v)
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, "", nameerr.Resolution("operand", o.name, err, "value %q is not a number", v)
	}
	return d, v, nil
}

type shiftedOperand struct {
	inner lookupOperand
	delta int64
}

func (o shiftedOperand) Integer() (int64, error) {
	i, err := o.inner.Integer()
	if err != nil {
		return 0, err
	}
	return i + o.delta, nil
}

func (o shiftedOperand) Decimal() (decimal.Decimal, error) {
	d, err := o.inner.Decimal()
	if err != nil {
		return decimal.Decimal{}, err
	}
	return d.Add(decimal.NewFromInt(o.delta)), nil
}

func (o shiftedOperand) Number() (decimal.Decimal, string, error) {
	d, err := o.Decimal()
	if err != nil {
		return decimal.Decimal{}, "", err
	}
	return d, d.String(), nil
}

// Text fails: a shifted value has no raw form.
func (o shiftedOperand) Text() (string, error) {
	return "", nameerr.Resolution("operand", o.inner.name, nil, "shifted operand has no text form")
}
