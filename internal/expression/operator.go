package expression

import (
	"fmt"

	"github.com/samber/lo"
)

type Operator int

const (
	Add Operator = iota + 1
	Sub
	Mul
	Div
)

var operatorSymbolMap = map[Operator]string{
	Add: "+",
	Sub: "-",
	Mul: "*",
	Div: "/",
}

var symbolOperatorMap = lo.Invert(operatorSymbolMap)

var operatorPrecedenceMap = map[Operator]uint8{
	Add: 1,
	Sub: 1,
	Mul: 2,
	Div: 2,
}

// LookupOperator returns the operator spelled by symbol.
func LookupOperator(symbol string) (Operator, bool) {
	op, ok := symbolOperatorMap[symbol]
	return op, ok
}

func (op Operator) Symbol() string {
	return operatorSymbolMap[op]
}

// Precedence returns the binding rank of op; higher binds tighter.
// It is 0 for an unknown operator.
func (op Operator) Precedence() uint8 {
	return operatorPrecedenceMap[op]
}

func (op Operator) String() string {
	switch op {
	case Add:
		return "Add"
	case Sub:
		return "Sub"
	case Mul:
		return "Mul"
	case Div:
		return "Div"
	default:
		return fmt.Sprintf("Operator(%d)", int(op))
	}
}
