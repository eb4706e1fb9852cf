package powercalc

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Token is a terminal read from the input.
type Token struct {
	// Sym is the grammar category of the token.
	Sym Symbol
	// Text is the source text that matched.
	Text string
	// Pos is the 1-based rune column where the token starts.
	Pos int
}

func (t Token) String() string {
	return t.Sym.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// keywords maps reserved words to their terminals. Keywords are
// case-sensitive; everything else shaped like a name is an Identifier.
var keywords = map[string]Symbol{
	"abs":   SymAbs,
	"acos":  SymAcos,
	"asin":  SymAsin,
	"atan":  SymAtan,
	"bin":   SymBin,
	"cos":   SymCos,
	"cosh":  SymCosh,
	"e":     SymExp,
	"hex":   SymHex,
	"log":   SymLog,
	"log10": SymLog10,
	"oct":   SymOct,
	"pi":    SymPi,
	"set":   SymSet,
	"sin":   SymSin,
	"sinh":  SymSinh,
	"sqrt":  SymSqrt,
	"tan":   SymTan,
	"tanh":  SymTanh,
}

var punct = map[rune]Symbol{
	'-': SymMinus,
	'(': SymLParen,
	')': SymRParen,
	'*': SymTimes,
	'/': SymDiv,
	';': SymSemi,
	'^': SymCaret,
	'+': SymPlus,
	'=': SymEq,
}

// errComment is returned by the lexer for a block comment that runs off the
// end of the input.
var errComment = errors.New("unterminated comment")

type lexer struct {
	src []rune
	// off is the index of the next rune to read.
	off int
	buf strings.Builder
	eof bool
}

func lex(src string) *lexer {
	return &lexer{src: []rune(src)}
}

func (l *lexer) readRune() (rune, error) {
	if l.off >= len(l.src) {
		return 0, io.EOF
	}
	r := l.src[l.off]
	l.off++
	return r, nil
}

func (l *lexer) unreadRune() {
	if l.off == 0 {
		panic("powercalc: unread at start of input")
	}
	l.off--
}

// peek returns the rune k places past the next one without consuming it.
func (l *lexer) peek(k int) rune {
	if l.off+k >= len(l.src) {
		return -1
	}
	return l.src[l.off+k]
}

// next scans the next token. The first time the end of input is reached, the
// result is an EOF token with a nil error; after that it is io.EOF.
func (l *lexer) next() (Token, error) {
	if l.eof {
		return Token{}, io.EOF
	}
	defer l.buf.Reset()
	for {
		tok := Token{Pos: l.off + 1}
		r, err := l.readRune()
		if err != nil {
			tok.Sym = SymEOF
			l.eof = true
			return tok, nil
		}
		switch {
		case unicode.IsSpace(r):
			continue
		case r == '/' && l.peek(0) == '*':
			l.off++
			if err := l.skipComment(); err != nil {
				l.eof = true
				tok.Text = "/*"
				return tok, err
			}
			continue
		case '0' <= r && r <= '9':
			l.unreadRune()
			tok.Sym = l.scanNum()
		case r == '.' && isDigit(l.peek(0)):
			l.buf.WriteRune(r)
			l.scanDigits(isDigit)
			tok.Sym = SymFloatNo0
		case r == '$' && isDigit(l.peek(0)):
			l.buf.WriteRune(r)
			l.scanDigits(isDigit)
			tok.Sym = SymVariable
		case r == '_', isLetter(r):
			l.unreadRune()
			l.scanDigits(isNameRune)
			tok.Sym = SymIdentifier
			if kw, ok := keywords[l.buf.String()]; ok {
				tok.Sym = kw
			}
		default:
			l.buf.WriteRune(r)
			sym, ok := punct[r]
			if !ok {
				tok.Text = l.buf.String()
				return tok, l.error()
			}
			tok.Sym = sym
		}
		tok.Text = l.buf.String()
		return tok, nil
	}
}

// scanNum scans an Integer, Float, or prefixed Binary, Hexadecimal, or Octal
// literal. A prefix with no digits after it leaves just the Integer 0.
func (l *lexer) scanNum() Symbol {
	if l.peek(0) == '0' {
		var ok func(rune) bool
		var sym Symbol
		switch l.peek(1) {
		case 'b':
			ok, sym = isBinDigit, SymBinary
		case 'x':
			ok, sym = isHexDigit, SymHexadecimal
		case 'o':
			ok, sym = isOctDigit, SymOctal
		}
		if ok != nil && ok(l.peek(2)) {
			l.buf.WriteRune(l.src[l.off])
			l.buf.WriteRune(l.src[l.off+1])
			l.off += 2
			l.scanDigits(ok)
			return sym
		}
	}
	l.scanDigits(isDigit)
	if l.peek(0) != '.' {
		return SymInteger
	}
	l.buf.WriteRune('.')
	l.off++
	l.scanDigits(isDigit)
	return SymFloat
}

// scanDigits appends runes to the buffer while ok accepts them.
func (l *lexer) scanDigits(ok func(rune) bool) {
	for {
		r, err := l.readRune()
		if err != nil {
			return
		}
		if !ok(r) {
			l.unreadRune()
			return
		}
		l.buf.WriteRune(r)
	}
}

// skipComment consumes a block comment whose opening /* is already read.
func (l *lexer) skipComment() error {
	for {
		r, err := l.readRune()
		if err != nil {
			return errComment
		}
		if r == '*' && l.peek(0) == '/' {
			l.off++
			return nil
		}
	}
}

func (l *lexer) error() error {
	return &LexicalError{
		Text: l.buf.String(),
		Col:  l.off,
	}
}

func isDigit(r rune) bool    { return '0' <= r && r <= '9' }
func isBinDigit(r rune) bool { return r == '0' || r == '1' }
func isOctDigit(r rune) bool { return '0' <= r && r <= '7' }
func isHexDigit(r rune) bool {
	return isDigit(r) || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F'
}
func isLetter(r rune) bool   { return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' }
func isNameRune(r rune) bool { return r == '_' || isLetter(r) || isDigit(r) }
