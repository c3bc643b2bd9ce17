package naming

import (
	"github.com/okian/marketnames/internal/domain/model"
	"github.com/okian/marketnames/internal/domain/nameerr"
)

// BuildExpression selects the expression kind from the operator. Operand
// syntax is checked here; entity keywords are checked on evaluation.
func BuildExpression(
	event model.SportEvent,
	specifiers model.Specifiers,
	profiles ProfileResolver,
	operator Operator,
	operand string,
) (Expression, error) {
	var kind Kind
	switch operator {
	case OpNone:
		kind = KindCardinal
	case OpOrdinal:
		kind = KindOrdinal
	case OpPlus:
		kind = KindPlus
	case OpMinus:
		kind = KindMinus
	case OpEntity:
		return Expression{kind: KindEntity, keyword: operand, event: event, profiles: profiles}, nil
	case OpProfile:
		kind = KindPlayerProfile
	default:
		return Expression{}, nameerr.Syntax("build expression", operator.String(), "unknown operator")
	}

	op, err := BuildOperand(specifiers, operand)
	if err != nil {
		return Expression{}, err
	}
	return Expression{kind: kind, operand: op, event: event, profiles: profiles}, nil
}
