package powercalc

import (
	"strconv"
	"strings"
)

// Fixed messages reported to the user. Transcript lines are matched against
// these, so they must not change.
const (
	msgInvalidSyntax  = "ERROR: Invalid syntax."
	msgCustomFunction = "ERROR: Custom functions aren't supported."
	msgIndexRange     = "ERROR: Result index out of range."
	msgInvalidResult  = "ERROR: Invalid Result."
	msgInternal       = "INTERNAL ERROR: Something is horribly wrong."
	msgNotLoaded      = "INTERNAL ERROR: Grammar Table is not loaded."
	msgComment        = "INTERNAL ERROR: Comment Error. Unexpected end of input."
)

// LexicalError indicates a character that cannot start any token. It
// implements InputError.
type LexicalError struct {
	// Text is the unexpected symbol.
	Text string
	// Col is the 1-based rune column of the symbol.
	Col int
}

func (err *LexicalError) Error() string {
	return "ERROR: Unexpected symbol: " + err.Text
}

func (err *LexicalError) Pos() int {
	return err.Col
}

// SyntaxError indicates a token that is not valid in the current parser
// state. It implements InputError.
type SyntaxError struct {
	// Token is the offending token.
	Token Token
	// Expected lists the terminals the parser would have accepted.
	Expected []Symbol
}

func (err *SyntaxError) Error() string {
	return msgInvalidSyntax
}

func (err *SyntaxError) Pos() int {
	return err.Token.Pos
}

// Detail describes the token and the expected terminals, for diagnostics.
// It is not part of the user-facing message.
func (err *SyntaxError) Detail() string {
	var b strings.Builder
	b.WriteString(errpos(err.Token.Pos, "unexpected "+err.Token.Sym.String()))
	if err.Token.Text != "" {
		b.WriteString(" " + strconv.Quote(err.Token.Text))
	}
	if len(err.Expected) > 0 {
		b.WriteString("; expected")
		for _, s := range err.Expected {
			b.WriteByte(' ')
			b.WriteString(s.String())
		}
	}
	return b.String()
}

// SemanticKind classifies a SemanticError.
type SemanticKind int8

const (
	// NotSet is a lookup of a variable that has never been assigned.
	NotSet SemanticKind = iota
	// StringValue is a literal that does not parse as a number.
	StringValue
	// CustomFunction is a use of the disabled user-defined function syntax.
	CustomFunction
	// IndexRange is a history reference past the end of the transcript.
	IndexRange
	// InvalidResult is a history reference to a line that failed.
	InvalidResult
)

// SemanticError is an error from a valid parse that cannot be evaluated.
type SemanticError struct {
	Kind SemanticKind
	// Text is the variable name or literal the error concerns, if any.
	Text string
}

func (err *SemanticError) Error() string {
	switch err.Kind {
	case NotSet:
		return `ERROR: "` + err.Text + `" has not been set.`
	case StringValue:
		return `ERROR: "` + strings.TrimSpace(err.Text) + `" is a string value.`
	case CustomFunction:
		return msgCustomFunction
	case IndexRange:
		return msgIndexRange
	case InvalidResult:
		return msgInvalidResult
	default:
		return msgInternal
	}
}

// InternalError is a failure of the parser or evaluator itself rather than
// of the input. A session that reports one is no longer usable.
type InternalError struct {
	// Msg is the fixed user-facing message.
	Msg string
	// Err is the underlying cause, if known.
	Err error
}

func (err *InternalError) Error() string {
	return err.Msg
}

func (err *InternalError) Unwrap() error {
	return err.Err
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Errors caused by
// characters or tokens of the input implement InputError.
type InputError interface {
	error
	// Pos returns the 1-based rune column of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*LexicalError)(nil)
	_ InputError = (*SyntaxError)(nil)
)
