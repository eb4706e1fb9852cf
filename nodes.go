package powercalc

import (
	"math"
	"strings"
)

// Node is the value attached to one symbol of a reduction. Terminals carry
// their token text; nonterminals carry the Result of their own reduction.
type Node struct {
	Text   string
	Result *Result
}

// TextNode is a shortcut for a terminal node.
func TextNode(s string) Node {
	return Node{Text: s}
}

// ResultNode is a shortcut for a nonterminal node.
func ResultNode(r Result) Node {
	return Node{Result: &r}
}

// Reduction is one matched production together with its evaluated children,
// in source order.
type Reduction struct {
	Rule Rule
	Args []Node
}

// Reduce is a shortcut to build a Reduction.
func Reduce(rule Rule, args ...Node) Reduction {
	return Reduction{Rule: rule, Args: args}
}

// check reports whether the children match the shape of the rule: one per
// symbol, with results exactly where the production has nonterminals.
func (r Reduction) check() bool {
	if !r.Rule.Valid() {
		return false
	}
	rhs := productions[r.Rule].rhs
	if len(rhs) != len(r.Args) {
		return false
	}
	for i, s := range rhs {
		if s.Terminal() != (r.Args[i].Result == nil) {
			return false
		}
	}
	return true
}

// num returns the value of child i, which must be a nonterminal.
func (r Reduction) num(i int) float64 {
	return r.Args[i].Result.Value()
}

// expr returns the rendered expression of child i, which must be a
// nonterminal.
func (r Reduction) expr(i int) string {
	return r.Args[i].Result.Expr()
}

// str returns the token text of child i.
func (r Reduction) str(i int) string {
	return r.Args[i].Text
}

func (r Reduction) String() string {
	var b strings.Builder
	b.WriteString(r.Rule.String())
	b.WriteString(" [")
	for i, a := range r.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		if a.Result != nil {
			b.WriteString(a.Result.Expr())
		} else {
			b.WriteString(a.Text)
		}
	}
	b.WriteByte(']')
	return b.String()
}

// nan is the placeholder result of a failed step, carrying the text that
// caused it.
func nan(text string) Result {
	return NewExprResult(math.NaN(), text)
}
