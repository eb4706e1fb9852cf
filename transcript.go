package powercalc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/edwingeng/deque"
)

// Entry is one evaluated line of a transcript.
type Entry struct {
	// N is the 1-based number of the entry, the k in $k.
	N int
	// Input is the echo line: the rendered expression on success, or the
	// normalized input on failure.
	Input string
	// Output is the result line as shown in the transcript.
	Output string
	Result Result
	Err    error
}

// Transcript is a running list of inputs and results bound to one session.
// It is the History its session reads ans and $k from.
type Transcript struct {
	lines   deque.Deque
	session *Session
}

// NewTranscript creates an empty transcript with its own session. The
// session's history is always the transcript itself.
func NewTranscript(opts ...SessionOption) *Transcript {
	t := &Transcript{lines: deque.NewDeque()}
	t.session = NewSession(append(opts, WithHistory(t))...)
	return t
}

// Session returns the transcript's session.
func (t *Transcript) Session() *Session {
	return t.session
}

// LineCount returns the number of lines, two per entry.
func (t *Transcript) LineCount() int {
	return t.lines.Len()
}

// LineText returns line i, counting from 1.
func (t *Transcript) LineText(i int) string {
	return t.lines.Peek(i - 1).(string)
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	return t.lines.Len() / 2
}

// Lines returns a copy of every line.
func (t *Transcript) Lines() []string {
	r := make([]string, 0, t.lines.Len())
	t.lines.Range(func(i int, v deque.Elem) bool {
		r = append(r, v.(string))
		return true
	})
	return r
}

// Expand prefixes a line beginning with +, *, or / with ans, so that an
// operator typed first continues from the last result. Lines are left alone
// while the transcript is empty. Unlike the keypad shortcut of the desktop
// calculator, a leading - is not expanded: on a typed line it starts a
// negative number.
func (t *Transcript) Expand(line string) string {
	if t.lines.Empty() {
		return line
	}
	s := strings.TrimLeft(line, " \t")
	if s != "" && strings.ContainsRune("+*/", rune(s[0])) {
		return "ans" + s
	}
	return line
}

// Enter normalizes and evaluates a line, appends its echo and output lines,
// and returns the new entry.
func (t *Transcript) Enter(line string) Entry {
	line = Normalize(line)
	e := Entry{N: t.Len() + 1}
	r, err := t.session.Parse(line)
	if err != nil {
		e.Input = line
		e.Output = FormatError(err)
		e.Err = err
	} else {
		e.Input = r.Expr()
		e.Output = FormatResult(e.N, r)
		e.Result = r
	}
	t.lines.PushBack(e.Input)
	t.lines.PushBack(e.Output)
	return e
}

// FormatResult renders the output line for the n-th result.
func FormatResult(n int, r Result) string {
	return fmt.Sprintf("%6s = %s", "$"+strconv.Itoa(n), r)
}

// FormatError renders the output line for a failed entry.
func FormatError(err error) string {
	return "    " + err.Error()
}
