package powercalc

// ParseOption is an option for a Parser.
type ParseOption interface {
	parseOption(*Parser)
}

type trimopt bool

// TrimReductions sets whether the parser skips reductions of productions
// whose only symbol is a nonterminal. The child's node then stands for the
// parent and no MsgReduction is reported for it.
func TrimReductions(trim bool) ParseOption {
	return trimopt(trim)
}

func (o trimopt) parseOption(p *Parser) {
	p.trim = bool(o)
}

// SessionOption is an option used when creating a Session.
type SessionOption interface {
	sessionOption(*Session)
}

type (
	grammaropt struct{ g *Grammar }
	historyopt struct{ h History }
	varsopt    struct{ v *Vars }
	traceopt   func(Reduction, Result)
)

// WithGrammar sets the parse table. A nil table makes every parse fail with
// the grammar-not-loaded error.
func WithGrammar(g *Grammar) SessionOption {
	return grammaropt{g}
}

func (o grammaropt) sessionOption(s *Session) {
	s.grammar = o.g
}

// WithHistory sets the transcript used for ans and $k.
func WithHistory(h History) SessionOption {
	return historyopt{h}
}

func (o historyopt) sessionOption(s *Session) {
	s.hist = o.h
}

// WithVars makes the session use an existing variable store.
func WithVars(v *Vars) SessionOption {
	return varsopt{v}
}

func (o varsopt) sessionOption(s *Session) {
	s.vars = o.v
}

// Trace sets a function called with each successful evaluation step.
func Trace(f func(Reduction, Result)) SessionOption {
	return traceopt(f)
}

func (o traceopt) sessionOption(s *Session) {
	s.trace = o
}

// Trim sets whether the session's parsers use TrimReductions.
func Trim(trim bool) SessionOption {
	return trimopt(trim)
}

func (o trimopt) sessionOption(s *Session) {
	s.trim = bool(o)
}
