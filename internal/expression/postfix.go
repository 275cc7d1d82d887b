package expression

import (
	"fmt"

	"github.com/karupanerura/expression-tree-calculator/internal/stack"
	"github.com/karupanerura/expression-tree-calculator/internal/types"
)

// InfixToPostfix tokenizes source and reorders the tokens into postfix order.
func InfixToPostfix(source string) []Token {
	return ConvertToPostfix(Tokenize(source))
}

// ConvertToPostfix applies the shunting-yard algorithm to tokens.
// Unbalanced parentheses are tolerated: a stray ")" is dropped and
// an unclosed "(" is flushed to the output with the remaining operators.
func ConvertToPostfix(tokens []Token) []Token {
	postfix, _ := convertToPostfix(tokens, false)
	return postfix
}

// ConvertToPostfixStrict is like ConvertToPostfix but reports
// unbalanced parentheses as a MalformedExpressionError.
func ConvertToPostfixStrict(tokens []Token) ([]Token, error) {
	return convertToPostfix(tokens, true)
}

func convertToPostfix(tokens []Token, strict bool) ([]Token, error) {
	output := make([]Token, 0, len(tokens))
	operators := stack.New[Token](len(tokens))

	for i, tok := range tokens {
		switch tok.Kind {
		case NumericLiteralToken:
			output = append(output, tok)

		case LeftParenToken:
			operators.Push(tok)

		case RightParenToken:
			for {
				top, ok := operators.Peek()
				if !ok || top.Kind == LeftParenToken {
					break
				}
				operators.Pop()
				output = append(output, top)
			}
			if _, ok := operators.Pop(); !ok && strict {
				return output, &types.Error{
					Tag: types.MalformedExpressionErrorTag,
					Err: fmt.Errorf("unmatched %q at token %d", tok.Text, i+1),
				}
			}

		case OperatorToken:
			for {
				top, ok := operators.Peek()
				if !ok || top.Kind == LeftParenToken || top.Operator.Precedence() < tok.Operator.Precedence() {
					break
				}
				operators.Pop()
				output = append(output, top)
			}
			operators.Push(tok)

		default:
			if !strict {
				continue
			}
			return output, &types.Error{
				Tag: types.TypeErrorTag,
				Err: fmt.Errorf("unknown token kind %s at token %d", tok.Kind, i+1),
			}
		}
	}

	for {
		top, ok := operators.Pop()
		if !ok {
			break
		}
		if strict && top.Kind == LeftParenToken {
			return output, &types.Error{
				Tag: types.MalformedExpressionErrorTag,
				Err: fmt.Errorf("unmatched %q", top.Text),
			}
		}
		output = append(output, top)
	}

	return output, nil
}
