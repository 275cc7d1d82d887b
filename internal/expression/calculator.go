package expression

import (
	"log"
	"os"
	"strconv"

	"github.com/k0kubun/pp"
)

var calculatorDebugLog = false

func init() {
	if v, err := strconv.ParseBool(os.Getenv("EXPRESSION_TREE_DEBUG")); v && err == nil {
		calculatorDebugLog = true
	}
}

// Calculator runs the whole pipeline: tokenize, convert to postfix,
// build the tree and evaluate it.
type Calculator struct {
	// Strict reports unbalanced parentheses instead of tolerating them.
	Strict bool
	Debug  bool
}

type Result struct {
	Source  string
	Tokens  []Token
	Postfix []Token
	Tree    *Node
	Value   Number
}

// PostfixString returns the postfix tokens concatenated without a separator.
func (r *Result) PostfixString() string {
	return JoinTokens(r.Postfix, "")
}

// Calculate evaluates source. On failure the returned result still holds
// the stages that completed.
func (c *Calculator) Calculate(source string) (*Result, error) {
	debug := c.Debug || calculatorDebugLog
	ret := &Result{Source: source}

	ret.Tokens = Tokenize(source)
	if debug {
		log.Printf("tokens: %q", TokenStrings(ret.Tokens))
	}

	if c.Strict {
		postfix, err := ConvertToPostfixStrict(ret.Tokens)
		if err != nil {
			return ret, err
		}
		ret.Postfix = postfix
	} else {
		ret.Postfix = ConvertToPostfix(ret.Tokens)
	}
	if debug {
		log.Printf("postfix: %q", TokenStrings(ret.Postfix))
	}

	tree, err := BuildTree(ret.Postfix)
	if err != nil {
		return ret, err
	}
	ret.Tree = tree
	if debug {
		pp.Println(tree)
		log.Println(tree.String())
	}

	value, err := Evaluate(tree)
	if err != nil {
		return ret, err
	}
	ret.Value = value
	return ret, nil
}
