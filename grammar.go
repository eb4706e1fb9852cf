package powercalc

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Symbol is a terminal or nonterminal of the calculator grammar. Terminals
// come first; every symbol from SymAssign on is a nonterminal.
type Symbol int

const (
	SymEOF Symbol = iota
	SymError
	SymWhitespace
	SymMinus
	SymLParen
	SymRParen
	SymTimes
	SymDiv
	SymSemi
	SymCaret
	SymPlus
	SymEq
	SymAbs
	SymAcos
	SymAsin
	SymAtan
	SymBin
	SymBinary
	SymCos
	SymCosh
	SymExp
	SymFloat
	SymFloatNo0
	SymHex
	SymHexadecimal
	SymIdentifier
	SymInteger
	SymLog
	SymLog10
	SymOct
	SymOctal
	SymPi
	SymSet
	SymSin
	SymSinh
	SymSqrt
	SymTan
	SymTanh
	SymVariable

	SymAssign
	SymExpon
	SymExpression
	SymExpressionList
	SymMultExpr
	SymNegateExpr
	SymNumber
	SymValue
	SymVariableList

	numSymbols
)

// symStart is the augmented start symbol used only while compiling the table.
const symStart = numSymbols

const numTerminals = int(SymAssign)

var symNames = [numSymbols + 1]string{
	SymEOF:            "(EOF)",
	SymError:          "(Error)",
	SymWhitespace:     "Whitespace",
	SymMinus:          "'-'",
	SymLParen:         "'('",
	SymRParen:         "')'",
	SymTimes:          "'*'",
	SymDiv:            "'/'",
	SymSemi:           "';'",
	SymCaret:          "'^'",
	SymPlus:           "'+'",
	SymEq:             "'='",
	SymAbs:            "abs",
	SymAcos:           "acos",
	SymAsin:           "asin",
	SymAtan:           "atan",
	SymBin:            "bin",
	SymBinary:         "Binary",
	SymCos:            "cos",
	SymCosh:           "cosh",
	SymExp:            "Exp",
	SymFloat:          "Float",
	SymFloatNo0:       "FloatNo0",
	SymHex:            "hex",
	SymHexadecimal:    "Hexadecimal",
	SymIdentifier:     "Identifier",
	SymInteger:        "Integer",
	SymLog:            "log",
	SymLog10:          "log10",
	SymOct:            "oct",
	SymOctal:          "Octal",
	SymPi:             "Pi",
	SymSet:            "set",
	SymSin:            "sin",
	SymSinh:           "sinh",
	SymSqrt:           "sqrt",
	SymTan:            "tan",
	SymTanh:           "tanh",
	SymVariable:       "Variable",
	SymAssign:         "<Assign>",
	SymExpon:          "<Expon>",
	SymExpression:     "<Expression>",
	SymExpressionList: "<Expression List>",
	SymMultExpr:       "<Mult Expr>",
	SymNegateExpr:     "<Negate Expr>",
	SymNumber:         "<Number>",
	SymValue:          "<Value>",
	SymVariableList:   "<Variable List>",
	symStart:          "<S'>",
}

func (s Symbol) String() string {
	if s < 0 || int(s) >= len(symNames) {
		return "Symbol(" + strconv.Itoa(int(s)) + ")"
	}
	return symNames[s]
}

// Terminal returns whether s is a terminal symbol.
func (s Symbol) Terminal() bool {
	return s < SymAssign
}

// Rule identifies a production of the calculator grammar. Rule values are the
// reduction identifiers reported by the parser and consumed by Eval.
type Rule int

const (
	RuleAssignSet     Rule = iota // <Assign> ::= set Identifier '=' <Expression>
	RuleAssignSetFunc             // <Assign> ::= set Identifier '(' <Variable List> ')' '=' <Expression>
	RuleAssign                    // <Assign> ::= <Expression>
	RuleVarListSemi               // <Variable List> ::= <Variable List> ';' Identifier
	RuleVarList                   // <Variable List> ::= Identifier
	RuleExprPlus                  // <Expression> ::= <Expression> '+' <Mult Expr>
	RuleExprMinus                 // <Expression> ::= <Expression> '-' <Mult Expr>
	RuleExpr                      // <Expression> ::= <Mult Expr>
	RuleMultTimes                 // <Mult Expr> ::= <Mult Expr> '*' <Negate Expr>
	RuleMultDiv                   // <Mult Expr> ::= <Mult Expr> '/' <Negate Expr>
	RuleMult                      // <Mult Expr> ::= <Negate Expr>
	RuleNegateMinus               // <Negate Expr> ::= '-' <Expon>
	RuleNegate                    // <Negate Expr> ::= <Expon>
	RuleExponCaret                // <Expon> ::= <Value> '^' <Value>
	RuleExpon                     // <Expon> ::= <Value>
	RuleValue                     // <Value> ::= <Number>
	RuleValueParen                // <Value> ::= '(' <Expression> ')'
	RuleAbs
	RuleAcos
	RuleAsin
	RuleAtan
	RuleCos
	RuleCosh
	RuleLog
	RuleLog10
	RuleSin
	RuleSinh
	RuleSqrt
	RuleTan
	RuleTanh
	RuleBin
	RuleHex
	RuleOct
	RuleCall         // <Value> ::= Identifier '(' <Expression List> ')'
	RuleExprListSemi // <Expression List> ::= <Expression List> ';' <Expression>
	RuleExprList     // <Expression List> ::= <Expression>
	RuleInteger
	RuleFloat
	RuleFloatNo0
	RulePi
	RuleExp
	RuleVariable
	RuleBinary
	RuleHexadecimal
	RuleOctal
	RuleIdentifier

	numRules
)

type production struct {
	lhs Symbol
	rhs []Symbol
}

// call builds the production <Value> ::= kw '(' <Expression> ')'.
func call(kw Symbol) production {
	return production{SymValue, []Symbol{kw, SymLParen, SymExpression, SymRParen}}
}

func number(tok Symbol) production {
	return production{SymNumber, []Symbol{tok}}
}

var productions = [numRules]production{
	RuleAssignSet:     {SymAssign, []Symbol{SymSet, SymIdentifier, SymEq, SymExpression}},
	RuleAssignSetFunc: {SymAssign, []Symbol{SymSet, SymIdentifier, SymLParen, SymVariableList, SymRParen, SymEq, SymExpression}},
	RuleAssign:        {SymAssign, []Symbol{SymExpression}},
	RuleVarListSemi:   {SymVariableList, []Symbol{SymVariableList, SymSemi, SymIdentifier}},
	RuleVarList:       {SymVariableList, []Symbol{SymIdentifier}},
	RuleExprPlus:      {SymExpression, []Symbol{SymExpression, SymPlus, SymMultExpr}},
	RuleExprMinus:     {SymExpression, []Symbol{SymExpression, SymMinus, SymMultExpr}},
	RuleExpr:          {SymExpression, []Symbol{SymMultExpr}},
	RuleMultTimes:     {SymMultExpr, []Symbol{SymMultExpr, SymTimes, SymNegateExpr}},
	RuleMultDiv:       {SymMultExpr, []Symbol{SymMultExpr, SymDiv, SymNegateExpr}},
	RuleMult:          {SymMultExpr, []Symbol{SymNegateExpr}},
	RuleNegateMinus:   {SymNegateExpr, []Symbol{SymMinus, SymExpon}},
	RuleNegate:        {SymNegateExpr, []Symbol{SymExpon}},
	RuleExponCaret:    {SymExpon, []Symbol{SymValue, SymCaret, SymValue}},
	RuleExpon:         {SymExpon, []Symbol{SymValue}},
	RuleValue:         {SymValue, []Symbol{SymNumber}},
	RuleValueParen:    {SymValue, []Symbol{SymLParen, SymExpression, SymRParen}},
	RuleAbs:           call(SymAbs),
	RuleAcos:          call(SymAcos),
	RuleAsin:          call(SymAsin),
	RuleAtan:          call(SymAtan),
	RuleCos:           call(SymCos),
	RuleCosh:          call(SymCosh),
	RuleLog:           call(SymLog),
	RuleLog10:         call(SymLog10),
	RuleSin:           call(SymSin),
	RuleSinh:          call(SymSinh),
	RuleSqrt:          call(SymSqrt),
	RuleTan:           call(SymTan),
	RuleTanh:          call(SymTanh),
	RuleBin:           call(SymBin),
	RuleHex:           call(SymHex),
	RuleOct:           call(SymOct),
	RuleCall:          {SymValue, []Symbol{SymIdentifier, SymLParen, SymExpressionList, SymRParen}},
	RuleExprListSemi:  {SymExpressionList, []Symbol{SymExpressionList, SymSemi, SymExpression}},
	RuleExprList:      {SymExpressionList, []Symbol{SymExpression}},
	RuleInteger:       number(SymInteger),
	RuleFloat:         number(SymFloat),
	RuleFloatNo0:      number(SymFloatNo0),
	RulePi:            number(SymPi),
	RuleExp:           number(SymExp),
	RuleVariable:      number(SymVariable),
	RuleBinary:        number(SymBinary),
	RuleHexadecimal:   number(SymHexadecimal),
	RuleOctal:         number(SymOctal),
	RuleIdentifier:    number(SymIdentifier),
}

// Valid returns whether r names a production of the grammar.
func (r Rule) Valid() bool {
	return r >= 0 && r < numRules
}

// Len returns the number of symbols on the right-hand side of r.
func (r Rule) Len() int {
	if !r.Valid() {
		return 0
	}
	return len(productions[r].rhs)
}

// Head returns the nonterminal that r produces.
func (r Rule) Head() Symbol {
	if !r.Valid() {
		return SymError
	}
	return productions[r].lhs
}

func (r Rule) String() string {
	if !r.Valid() {
		return "Rule(" + strconv.Itoa(int(r)) + ")"
	}
	p := productions[r]
	var b strings.Builder
	b.WriteString(p.lhs.String())
	b.WriteString(" ::=")
	for _, s := range p.rhs {
		b.WriteByte(' ')
		b.WriteString(s.String())
	}
	return b.String()
}

type actionKind uint8

const (
	actError actionKind = iota
	actShift
	actReduce
	actAccept
)

type action struct {
	kind actionKind
	// arg is the target state of a shift or the rule of a reduce.
	arg int
}

// Grammar is a compiled action/goto table for the calculator language. A
// Grammar is read-only once compiled and may be shared between sessions.
type Grammar struct {
	actions [][numTerminals]action
	gotos   [][numSymbols - SymAssign]int
}

// States returns the number of parser states in the table.
func (g *Grammar) States() int {
	return len(g.actions)
}

func (g *Grammar) action(state int, tok Symbol) action {
	if state < 0 || state >= len(g.actions) || !tok.Terminal() || tok < 0 {
		return action{}
	}
	return g.actions[state][tok]
}

// gotoState returns the state entered after reducing to nt in state.
func (g *Grammar) gotoState(state int, nt Symbol) (int, bool) {
	if state < 0 || state >= len(g.gotos) || nt.Terminal() || nt >= numSymbols {
		return 0, false
	}
	to := g.gotos[state][nt-SymAssign]
	return to, to >= 0
}

// expected lists the terminals with a non-error action in state.
func (g *Grammar) expected(state int) []Symbol {
	if state < 0 || state >= len(g.actions) {
		return nil
	}
	var r []Symbol
	for t, a := range g.actions[state] {
		if a.kind != actError {
			r = append(r, Symbol(t))
		}
	}
	return r
}

// calc is the table shared by every session that doesn't bring its own.
var calc = Compile()

// DefaultGrammar returns the compiled calculator grammar.
func DefaultGrammar() *Grammar {
	return calc
}

// item is an LR(0) item. rule numRules is the augmented start production.
type item struct {
	rule int
	dot  int
}

type symset [numSymbols + 1]bool

// Compile builds the SLR(1) table for the calculator grammar. It panics if the
// grammar has a conflict, which would be a bug in the production list.
func Compile() *Grammar {
	prods := make([]production, numRules+1)
	copy(prods, productions[:])
	prods[numRules] = production{symStart, []Symbol{SymAssign}}
	for _, p := range prods {
		if len(p.rhs) == 0 {
			panic("powercalc: grammar has an empty production for " + p.lhs.String())
		}
	}

	first := firstSets(prods)
	follow := followSets(prods, first)

	closure := func(kernel []item) []item {
		set := append([]item(nil), kernel...)
		seen := make(map[item]bool, len(kernel))
		for _, it := range kernel {
			seen[it] = true
		}
		for i := 0; i < len(set); i++ {
			it := set[i]
			rhs := prods[it.rule].rhs
			if it.dot >= len(rhs) || rhs[it.dot].Terminal() {
				continue
			}
			for r, p := range prods {
				n := item{rule: r}
				if p.lhs == rhs[it.dot] && !seen[n] {
					seen[n] = true
					set = append(set, n)
				}
			}
		}
		sort.Slice(set, func(i, j int) bool {
			if set[i].rule != set[j].rule {
				return set[i].rule < set[j].rule
			}
			return set[i].dot < set[j].dot
		})
		return set
	}
	key := func(set []item) string {
		var b strings.Builder
		for _, it := range set {
			fmt.Fprintf(&b, "%d.%d,", it.rule, it.dot)
		}
		return b.String()
	}

	states := [][]item{closure([]item{{rule: int(numRules)}})}
	index := map[string]int{key(states[0]): 0}
	g := &Grammar{}
	for s := 0; s < len(states); s++ {
		var acts [numTerminals]action
		var gotos [numSymbols - SymAssign]int
		for i := range gotos {
			gotos[i] = -1
		}
		set := states[s]
		for x := Symbol(0); x < numSymbols; x++ {
			var kernel []item
			for _, it := range set {
				rhs := prods[it.rule].rhs
				if it.dot < len(rhs) && rhs[it.dot] == x {
					kernel = append(kernel, item{it.rule, it.dot + 1})
				}
			}
			if kernel == nil {
				continue
			}
			next := closure(kernel)
			k := key(next)
			to, ok := index[k]
			if !ok {
				to = len(states)
				states = append(states, next)
				index[k] = to
			}
			if x.Terminal() {
				acts[x] = action{kind: actShift, arg: to}
			} else {
				gotos[x-SymAssign] = to
			}
		}
		for _, it := range set {
			if it.dot < len(prods[it.rule].rhs) {
				continue
			}
			if it.rule == int(numRules) {
				acts[SymEOF] = action{kind: actAccept}
				continue
			}
			for t := Symbol(0); t < SymAssign; t++ {
				if !follow[prods[it.rule].lhs][t] {
					continue
				}
				if acts[t].kind != actError {
					panic(fmt.Sprintf("powercalc: grammar conflict in state %d on %v: %v", s, t, Rule(it.rule)))
				}
				acts[t] = action{kind: actReduce, arg: it.rule}
			}
		}
		g.actions = append(g.actions, acts)
		g.gotos = append(g.gotos, gotos)
	}
	return g
}

// firstSets computes FIRST for each nonterminal. The grammar has no empty
// productions, so FIRST of a sentence is FIRST of its leading symbol.
func firstSets(prods []production) map[Symbol]*symset {
	first := make(map[Symbol]*symset)
	for _, p := range prods {
		if first[p.lhs] == nil {
			first[p.lhs] = new(symset)
		}
	}
	for changed := true; changed; {
		changed = false
		for _, p := range prods {
			dst := first[p.lhs]
			lead := p.rhs[0]
			if lead.Terminal() {
				if !dst[lead] {
					dst[lead] = true
					changed = true
				}
				continue
			}
			for t, ok := range first[lead] {
				if ok && !dst[t] {
					dst[t] = true
					changed = true
				}
			}
		}
	}
	return first
}

func followSets(prods []production, first map[Symbol]*symset) map[Symbol]*symset {
	follow := make(map[Symbol]*symset)
	for nt := range first {
		follow[nt] = new(symset)
	}
	follow[symStart][SymEOF] = true
	union := func(dst, src *symset) bool {
		changed := false
		for t, ok := range src {
			if ok && !dst[t] {
				dst[t] = true
				changed = true
			}
		}
		return changed
	}
	for changed := true; changed; {
		changed = false
		for _, p := range prods {
			for i, b := range p.rhs {
				if b.Terminal() {
					continue
				}
				if i+1 == len(p.rhs) {
					if union(follow[b], follow[p.lhs]) {
						changed = true
					}
					continue
				}
				next := p.rhs[i+1]
				if next.Terminal() {
					if !follow[b][next] {
						follow[b][next] = true
						changed = true
					}
					continue
				}
				if union(follow[b], first[next]) {
					changed = true
				}
			}
		}
	}
	return follow
}
