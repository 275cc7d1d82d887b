package expression

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

type TokenKind int

const (
	NumericLiteralToken TokenKind = iota
	OperatorToken
	LeftParenToken
	RightParenToken
)

func (k TokenKind) String() string {
	switch k {
	case NumericLiteralToken:
		return "NumericLiteral"
	case OperatorToken:
		return "Operator"
	case LeftParenToken:
		return "LeftParen"
	case RightParenToken:
		return "RightParen"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Token is a lexical unit of an infix expression.
// Operator is meaningful only when Kind is OperatorToken.
type Token struct {
	Kind     TokenKind
	Text     string
	Operator Operator
}

func NumericLiteral(text string) Token {
	return Token{Kind: NumericLiteralToken, Text: text}
}

func OperatorOf(op Operator) Token {
	return Token{Kind: OperatorToken, Text: op.Symbol(), Operator: op}
}

var (
	leftParen  = Token{Kind: LeftParenToken, Text: "("}
	rightParen = Token{Kind: RightParenToken, Text: ")"}
)

func (t Token) String() string {
	return t.Text
}

// TokenStrings returns the text of each token.
func TokenStrings(tokens []Token) []string {
	return lo.Map(tokens, func(t Token, _ int) string {
		return t.Text
	})
}

// JoinTokens concatenates the text of tokens with sep.
func JoinTokens(tokens []Token, sep string) string {
	return strings.Join(TokenStrings(tokens), sep)
}
