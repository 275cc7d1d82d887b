package expression

type lexer struct {
	source string
	index  int
}

func newLexer(source string) *lexer {
	return &lexer{
		source: source,
		index:  0,
	}
}

func (l *lexer) isCompleted() bool {
	return l.index == len(l.source)
}

// next returns the next token and true, or false when the source is exhausted.
// Bytes that cannot start a token are skipped without an error.
func (l *lexer) next() (Token, bool) {
	for !l.isCompleted() {
		switch c := l.source[l.index]; c {
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			begins := l.index
			for l.index < len(l.source) && isDigit(l.source[l.index]) {
				l.index++
			}
			return NumericLiteral(l.source[begins:l.index]), true
		case '+', '-', '*', '/':
			l.index++
			op, _ := LookupOperator(string(c))
			return OperatorOf(op), true
		case '(':
			l.index++
			return leftParen, true
		case ')':
			l.index++
			return rightParen, true
		default:
			l.index++ // just skip whitespace, letters and unknown symbols
		}
	}
	return Token{}, false
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// Tokenize splits source into tokens from left to right.
// An empty or token-free source yields an empty slice.
func Tokenize(source string) []Token {
	lex := newLexer(source)
	tokens := []Token{}
	for {
		tok, ok := lex.next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}
