package expression

import (
	"errors"
	"fmt"
	"strings"

	"github.com/karupanerura/expression-tree-calculator/internal/stack"
	"github.com/karupanerura/expression-tree-calculator/internal/types"
)

// Node is a sub-expression. A leaf holds a numeric literal and has no
// children; any other node holds an operator and has both children.
type Node struct {
	Token
	Left  *Node
	Right *Node
}

func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// String renders the tree as a fully parenthesized infix expression.
func (n *Node) String() string {
	var b strings.Builder
	n.render(&b)
	return b.String()
}

func (n *Node) render(b *strings.Builder) {
	if n == nil {
		b.WriteString("nil")
		return
	}
	if n.IsLeaf() {
		b.WriteString(n.Text)
		return
	}

	b.WriteByte('(')
	n.Left.render(b)
	b.WriteByte(' ')
	b.WriteString(n.Text)
	b.WriteByte(' ')
	n.Right.render(b)
	b.WriteByte(')')
}

// BuildTree builds an expression tree from tokens in postfix order.
func BuildTree(postfix []Token) (*Node, error) {
	nodes := stack.New[*Node](len(postfix))

	for i, tok := range postfix {
		switch tok.Kind {
		case NumericLiteralToken:
			nodes.Push(&Node{Token: tok})

		case OperatorToken:
			right, ok := nodes.Pop()
			if !ok {
				return nil, newOperandUnderflowError(tok, i)
			}
			left, ok := nodes.Pop()
			if !ok {
				return nil, newOperandUnderflowError(tok, i)
			}
			nodes.Push(&Node{Token: tok, Left: left, Right: right})

		default:
			return nil, &types.Error{
				Tag: types.MalformedExpressionErrorTag,
				Err: fmt.Errorf("unexpected token %s at token %d", tok.Text, i+1),
			}
		}
	}

	root, ok := nodes.Pop()
	if !ok {
		return nil, &types.Error{
			Tag: types.MalformedExpressionErrorTag,
			Err: errors.New("empty expression is not allowed"),
		}
	}
	if !nodes.IsEmpty() {
		return nil, &types.Error{
			Tag: types.MalformedExpressionErrorTag,
			Err: fmt.Errorf("%d operands are left without an operator", nodes.Len()+1),
		}
	}
	return root, nil
}

func newOperandUnderflowError(tok Token, i int) error {
	return &types.Error{
		Tag: types.MalformedExpressionErrorTag,
		Err: fmt.Errorf("missing operand for operator %s at token %d", tok.Text, i+1),
	}
}
