package powercalc

import (
	"strconv"
	"strings"
)

// History is read-only access to the transcript of earlier lines. Lines are
// numbered from 1 and alternate between an input echo and its output, so the
// output of the k-th entry is line 2k.
type History interface {
	LineCount() int
	LineText(i int) string
}

// TokenText returns the text to attach to a token of category sym whose source
// text is raw. Numeric and identifier tokens keep their text, a float written
// without a leading zero gets one, and a history reference $k is replaced by
// the number shown for the k-th result in h. Other tokens have no text.
func TokenText(sym Symbol, raw string, h History) (string, error) {
	switch sym {
	case SymInteger, SymFloat, SymBinary, SymHexadecimal, SymOctal, SymIdentifier:
		return raw, nil
	case SymFloatNo0:
		return "0" + raw, nil
	case SymVariable:
		k, err := strconv.Atoi(raw[strings.IndexByte(raw, '$')+1:])
		if err != nil {
			return "NaN", &SemanticError{Kind: IndexRange, Text: raw}
		}
		return resultText(h, k*2-1)
	default:
		return "", nil
	}
}

// resultText returns the numeric part of the output line at 0-based offset i
// of h.
func resultText(h History, i int) (string, error) {
	if h == nil || i < 0 || i > h.LineCount()-1 {
		return "NaN", &SemanticError{Kind: IndexRange}
	}
	s := h.LineText(i + 1)
	if strings.Contains(s, "ERROR") {
		return "NaN", &SemanticError{Kind: InvalidResult}
	}
	if k := strings.Index(s, "= "); k >= 0 {
		s = s[k+2:]
	}
	return strings.TrimSpace(s), nil
}
