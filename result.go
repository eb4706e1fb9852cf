package powercalc

import (
	"math"
	"strconv"
)

// Base is the numeral system a Result is displayed in.
type Base int8

const (
	Decimal Base = iota
	Binary
	Hexadecimal
	Octal
)

func (b Base) String() string {
	switch b {
	case Decimal:
		return "decimal"
	case Binary:
		return "binary"
	case Hexadecimal:
		return "hexadecimal"
	case Octal:
		return "octal"
	default:
		return "Base(" + strconv.Itoa(int(b)) + ")"
	}
}

// Result is a computed value together with the rendered expression that
// produced it and the base to display it in.
type Result struct {
	value float64
	expr  string
	base  Base
}

// NewResult creates a decimal result whose expression is the value itself.
func NewResult(v float64) Result {
	return Result{value: v, expr: formatDecimal(v)}
}

// NewExprResult creates a decimal result with the given rendered expression.
func NewExprResult(v float64, expr string) Result {
	return Result{value: v, expr: expr}
}

// NewBaseResult creates a result displayed in base b.
func NewBaseResult(v float64, expr string, b Base) Result {
	return Result{value: v, expr: expr, base: b}
}

// Value returns the numeric value.
func (r Result) Value() float64 {
	return r.value
}

// Expr returns the canonical rendering of the expression.
func (r Result) Expr() string {
	return r.expr
}

// Base returns the display base.
func (r Result) Base() Base {
	return r.base
}

// String formats the value in its display base. Binary, hexadecimal, and
// octal truncate the value to a 32-bit integer first and show negative
// numbers in two's complement.
func (r Result) String() string {
	switch r.base {
	case Binary:
		return "0b" + formatInt32(r.value, 2)
	case Hexadecimal:
		return "0x" + formatInt32(r.value, 16)
	case Octal:
		return "0o" + formatInt32(r.value, 8)
	default:
		return formatDecimal(r.value)
	}
}

// formatDecimal renders v in plain notation for ordinary magnitudes and in
// exponent notation for very large or very small ones.
func formatDecimal(v float64) string {
	if a := math.Abs(v); a == 0 || a >= 1e-5 && a < 1e15 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatInt32(v float64, base int) string {
	return strconv.FormatUint(uint64(uint32(truncInt32(v))), base)
}

// truncInt32 truncates v toward zero. Values that do not fit, including NaN,
// become math.MinInt32, the same as a hardware conversion would give.
func truncInt32(v float64) int32 {
	if math.IsNaN(v) || v >= math.MaxInt32+1 || v <= math.MinInt32-1 {
		return math.MinInt32
	}
	return int32(v)
}
