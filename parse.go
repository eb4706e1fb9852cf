package powercalc

import (
	"errors"
	"strconv"
)

// Message is what the parser reports from each call to Parse.
type Message int8

const (
	// MsgTokenRead means a token was read. Attach its text with SetNode.
	MsgTokenRead Message = iota
	// MsgReduction means a production was matched. Attach its value with
	// SetNode.
	MsgReduction
	// MsgAccept means the input is complete; Value holds the final node.
	MsgAccept
	// MsgLexicalError means the input has a character no token can start with.
	MsgLexicalError
	// MsgSyntaxError means a token is not valid where it appears.
	MsgSyntaxError
	// MsgInternalError means the parse table is inconsistent.
	MsgInternalError
	// MsgNotLoaded means the parser has no table.
	MsgNotLoaded
	// MsgCommentError means a block comment runs off the end of the input.
	MsgCommentError
)

var msgNames = [...]string{
	MsgTokenRead:     "TokenRead",
	MsgReduction:     "Reduction",
	MsgAccept:        "Accept",
	MsgLexicalError:  "LexicalError",
	MsgSyntaxError:   "SyntaxError",
	MsgInternalError: "InternalError",
	MsgNotLoaded:     "NotLoaded",
	MsgCommentError:  "CommentError",
}

func (m Message) String() string {
	if m < 0 || int(m) >= len(msgNames) {
		return "Message(" + strconv.Itoa(int(m)) + ")"
	}
	return msgNames[m]
}

// Done returns whether m ends the parse.
func (m Message) Done() bool {
	return m >= MsgAccept
}

type entry struct {
	state int
	sym   Symbol
	node  interface{}
}

// Parser is a shift/reduce parser for one line of input. Each call to Parse
// advances until there is something for the caller to do. The parse stack is
// a slice, so nesting depth is limited only by memory.
type Parser struct {
	g     *Grammar
	lex   *lexer
	trim  bool
	stack []entry

	// tok is the lookahead token. have is whether it is pending a shift.
	tok  Token
	have bool
	slot interface{}

	rule Rule
	kids []interface{}
	last Message
}

// NewParser creates a parser for src using the table g. A nil table is
// allowed; the first call to Parse then reports MsgNotLoaded.
func NewParser(src string, g *Grammar, opts ...ParseOption) *Parser {
	p := &Parser{
		g:     g,
		lex:   lex(src),
		stack: []entry{{}},
		last:  -1,
	}
	for _, opt := range opts {
		opt.parseOption(p)
	}
	return p
}

// Parse runs the parser to the next message. After a message for which Done
// is true, Parse keeps returning that message.
func (p *Parser) Parse() Message {
	if p.last.Done() {
		return p.last
	}
	p.last = p.step()
	return p.last
}

func (p *Parser) step() Message {
	if p.g == nil || len(p.g.actions) == 0 {
		return MsgNotLoaded
	}
	for {
		if !p.have {
			tok, err := p.lex.next()
			p.tok = tok
			if err != nil {
				if errors.Is(err, errComment) {
					return MsgCommentError
				}
				return MsgLexicalError
			}
			p.have, p.slot = true, nil
			if tok.Sym != SymEOF {
				return MsgTokenRead
			}
		}
		top := p.stack[len(p.stack)-1].state
		act := p.g.action(top, p.tok.Sym)
		switch act.kind {
		case actShift:
			p.stack = append(p.stack, entry{state: act.arg, sym: p.tok.Sym, node: p.slot})
			p.have, p.slot = false, nil
		case actReduce:
			rule := Rule(act.arg)
			if !rule.Valid() {
				return MsgInternalError
			}
			n := rule.Len()
			if n >= len(p.stack) {
				return MsgInternalError
			}
			base := len(p.stack) - n
			to, ok := p.g.gotoState(p.stack[base-1].state, rule.Head())
			if !ok {
				return MsgInternalError
			}
			if p.trim && n == 1 && !p.stack[base].sym.Terminal() {
				// Pass the child's node up without reporting the reduction.
				p.stack[base].state = to
				p.stack[base].sym = rule.Head()
				continue
			}
			p.rule = rule
			p.kids = make([]interface{}, n)
			for i, e := range p.stack[base:] {
				p.kids[i] = e.node
			}
			p.stack = append(p.stack[:base], entry{state: to, sym: rule.Head()})
			return MsgReduction
		case actAccept:
			return MsgAccept
		default:
			return MsgSyntaxError
		}
	}
}

// Token returns the most recently read token. After MsgLexicalError, it holds
// the unexpected text.
func (p *Parser) Token() Token {
	return p.tok
}

// Rule returns the rule of the current reduction.
func (p *Parser) Rule() Rule {
	return p.rule
}

// Children returns the nodes of the current reduction's symbols in source
// order. Terminals hold whatever was attached when they were read.
func (p *Parser) Children() []interface{} {
	return p.kids
}

// SetNode attaches a value to the token just read or the reduction just
// reported. It panics at any other time.
func (p *Parser) SetNode(v interface{}) {
	switch p.last {
	case MsgTokenRead:
		p.slot = v
	case MsgReduction:
		p.stack[len(p.stack)-1].node = v
	default:
		panic("powercalc: SetNode after " + p.last.String())
	}
}

// Value returns the node of the accepted start symbol, or nil if the parser
// has not accepted.
func (p *Parser) Value() interface{} {
	if p.last != MsgAccept {
		return nil
	}
	return p.stack[len(p.stack)-1].node
}

// Expected returns the terminals acceptable in the current state.
func (p *Parser) Expected() []Symbol {
	if p.g == nil {
		return nil
	}
	return p.g.expected(p.stack[len(p.stack)-1].state)
}

// Depth returns the number of symbols on the parse stack.
func (p *Parser) Depth() int {
	return len(p.stack) - 1
}
