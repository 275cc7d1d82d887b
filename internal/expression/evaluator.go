package expression

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/karupanerura/expression-tree-calculator/internal/types"
)

// Evaluate computes the value of the tree rooted at node.
func Evaluate(node *Node) (Number, error) {
	if node == nil {
		return Number{}, &types.Error{
			Tag: types.MalformedExpressionErrorTag,
			Err: errors.New("missing node"),
		}
	}

	if node.IsLeaf() {
		if node.Kind != NumericLiteralToken {
			return Number{}, &types.Error{
				Tag: types.MalformedExpressionErrorTag,
				Err: fmt.Errorf("operator %s has no operands", node.Text),
			}
		}

		v, err := strconv.ParseInt(node.Text, 10, 64)
		if err != nil {
			return Number{}, &types.Error{
				Tag: types.ValueErrorTag,
				Err: fmt.Errorf("invalid integer %s: %w", node.Text, err),
			}
		}
		return Int(v), nil
	}

	if node.Kind != OperatorToken {
		return Number{}, &types.Error{
			Tag: types.MalformedExpressionErrorTag,
			Err: fmt.Errorf("%s %s cannot have operands", node.Kind, node.Text),
		}
	}

	left, err := Evaluate(node.Left)
	if err != nil {
		return Number{}, fmt.Errorf("left of operator %q: %w", node.Text, err)
	}

	right, err := Evaluate(node.Right)
	if err != nil {
		return Number{}, fmt.Errorf("right of operator %q: %w", node.Text, err)
	}

	var (
		ret Number
		ok  = true
	)
	switch node.Operator {
	case Add:
		ret, ok = left.add(right)
	case Sub:
		ret, ok = left.sub(right)
	case Mul:
		ret, ok = left.mul(right)
	case Div:
		if right.IsZero() {
			return Number{}, &types.Error{
				Tag: types.ZeroDivisionErrorTag,
				Err: fmt.Errorf("division by zero: %s / %s", left, right),
			}
		}
		ret = left.div(right)
	default:
		return Number{}, &types.Error{
			Tag: types.TypeErrorTag,
			Err: fmt.Errorf("unknown operator: %s", node.Operator),
		}
	}
	if !ok {
		return Number{}, &types.Error{
			Tag: types.ValueErrorTag,
			Err: fmt.Errorf("integer overflow: %s %s %s", left, node.Text, right),
		}
	}
	return ret, nil
}
