package powercalc

import (
	"errors"
	"strings"

	"github.com/tevino/abool/v2"
)

// Session evaluates input lines one at a time. Variables assigned by one line
// are visible to later lines of the same session. A Session is not safe for
// concurrent use.
type Session struct {
	grammar *Grammar
	vars    *Vars
	hist    History
	trim    bool
	trace   func(Reduction, Result)

	// broken is set once an internal error occurs; fatal is that error.
	broken *abool.AtomicBool
	fatal  error
}

// NewSession creates a session. By default it uses the built-in grammar, a
// fresh variable store, and no history.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		grammar: DefaultGrammar(),
		broken:  abool.New(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt.sessionOption(s)
		}
	}
	if s.vars == nil {
		s.vars = NewVars()
	}
	return s
}

// Vars returns the session's variable store.
func (s *Session) Vars() *Vars {
	return s.vars
}

// Broken returns whether the session has had an internal error. A broken
// session fails every parse with that error.
func (s *Session) Broken() bool {
	return s.broken.IsSet()
}

// Normalize rewrites a line containing = that does not start with "set " as
// an assignment.
func Normalize(line string) string {
	if strings.Contains(line, "=") && !strings.HasPrefix(line, "set ") {
		return "set " + line
	}
	return line
}

// Parse parses and evaluates one line. The line is used as given; see
// Normalize for the implicit assignment form. On failure the error message is
// the text to show the user, and variables assigned before the failure keep
// their new values.
func (s *Session) Parse(line string) (Result, error) {
	if s.broken.IsSet() {
		return Result{}, s.fatal
	}
	p := NewParser(line, s.grammar, TrimReductions(s.trim))
	for {
		switch p.Parse() {
		case MsgTokenRead:
			tok := p.Token()
			text, err := TokenText(tok.Sym, tok.Text, s.hist)
			if err != nil {
				return Result{}, err
			}
			p.SetNode(text)
		case MsgReduction:
			red := reduction(p.Rule(), p.Children())
			r, err := Eval(red, s.vars, s.hist)
			if err != nil {
				return Result{}, s.fail(err)
			}
			if s.trace != nil {
				s.trace(red, r)
			}
			p.SetNode(r)
		case MsgAccept:
			r, ok := p.Value().(Result)
			if !ok {
				return Result{}, s.fail(&InternalError{Msg: msgInternal, Err: errors.New("accepted without a result")})
			}
			return r, nil
		case MsgLexicalError:
			tok := p.Token()
			return Result{}, &LexicalError{Text: tok.Text, Col: tok.Pos}
		case MsgSyntaxError:
			return Result{}, &SyntaxError{Token: p.Token(), Expected: p.Expected()}
		case MsgCommentError:
			return Result{}, &InternalError{Msg: msgComment}
		case MsgNotLoaded:
			return Result{}, s.fail(&InternalError{Msg: msgNotLoaded})
		default:
			return Result{}, s.fail(&InternalError{Msg: msgInternal, Err: errors.New("inconsistent parse table")})
		}
	}
}

// fail records err as fatal if it is an internal error and returns it.
func (s *Session) fail(err error) error {
	var ie *InternalError
	if errors.As(err, &ie) && s.broken.SetToIf(false, true) {
		s.fatal = err
	}
	return err
}

// reduction converts the parser's nodes for a matched rule into evaluator
// input. Token nodes are strings and reduction nodes are Results.
func reduction(rule Rule, kids []interface{}) Reduction {
	args := make([]Node, len(kids))
	for i, k := range kids {
		switch k := k.(type) {
		case string:
			args[i] = TextNode(k)
		case Result:
			args[i] = ResultNode(k)
		}
	}
	return Reduction{Rule: rule, Args: args}
}
