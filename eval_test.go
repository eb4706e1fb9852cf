package powercalc_test

import (
	"errors"
	"math"
	"testing"

	"github.com/zephyrtronium/powercalc"
)

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		src  string
		// vars are assigned before evaluating.
		vars map[string]float64
		val  float64
		expr string
		disp string
	}{
		{"integer", "1", nil, 1, "1", "1"},
		{"sum", "1+2*3", nil, 7, "1 + 2 * 3", "7"},
		{"paren", "(1+2)*3", nil, 9, "(1 + 2) * 3", "9"},
		{"sub-left", "10-4-3", nil, 3, "10 - 4 - 3", "3"},
		{"div-left", "8/2/2", nil, 2, "8 / 2 / 2", "2"},
		{"pow", "2^10", nil, 1024, "2^10", "1024"},
		{"negate-pow", "-2^2", nil, -4, "-2^2", "-4"},
		{"negate-paren", "(-2)^2", nil, 4, "(-2)^2", "4"},
		{"minus-negative", "1 - -2", nil, 3, "1 - -2", "3"},
		{"mixed", "2*(3+4)^2", nil, 98, "2 * (3 + 4)^2", "98"},
		{"div-zero", "1/0", nil, math.Inf(1), "1 / 0", "+Inf"},
		{"neg-div-zero", "-1/0", nil, math.Inf(-1), "-1 / 0", "-Inf"},
		{"float", "1.50", nil, 1.5, "1.5", "1.5"},
		{"float-no-zero", ".5", nil, 0.5, "0.5", "0.5"},
		{"float-dot", "3.", nil, 3, "3", "3"},
		{"big", "10^20", nil, 1e20, "10^20", "1e+20"},
		{"small", "1/1000000", nil, 1e-6, "1 / 1000000", "1e-06"},
		{"pi", "pi", nil, math.Pi, "3.141592653589793", "3.141592653589793"},
		{"e", "e", nil, math.E, "2.718281828459045", "2.718281828459045"},
		{"hex-literal", "0x1F + 1", nil, 32, "0x1F + 1", "32"},
		{"bin-literal", "0b101", nil, 5, "0b101", "5"},
		{"oct-literal", "0o17", nil, 15, "0o17", "15"},
		{"hex-all-ones", "0xffffffff", nil, -1, "0xffffffff", "-1"},
		{"bin", "bin(10)", nil, 10, "bin(10)", "0b1010"},
		{"hex", "hex(255)", nil, 255, "hex(255)", "0xff"},
		{"oct", "oct(8)", nil, 8, "oct(8)", "0o10"},
		{"hex-negative", "hex(-1)", nil, -1, "hex(-1)", "0xffffffff"},
		{"bin-truncate", "bin(2.9)", nil, 2.9, "bin(2.9)", "0b10"},
		{"hex-of-hex", "hex(0x10)", nil, 16, "hex(0x10)", "0x10"},
		{"based-in-sum", "hex(255) + 1", nil, 256, "hex(255) + 1", "256"},
		{"sqrt", "sqrt(16)", nil, 4, "sqrt(16)", "4"},
		{"abs", "abs(-3)", nil, 3, "abs(-3)", "3"},
		{"log10", "log10(1)", nil, 0, "log10(1)", "0"},
		{"log", "log(1)", nil, 0, "log(1)", "0"},
		{"cos", "cos(0)", nil, 1, "cos(0)", "1"},
		{"nested", "sqrt(abs(-16))", nil, 4, "sqrt(abs(-16))", "4"},
		{"var", "x*2", map[string]float64{"x": 21}, 42, "x * 2", "42"},
		{"assign", "set y = 2+3", nil, 5, "y = 2 + 3", "5"},
		{"assign-self", "set x = x + 1", map[string]float64{"x": 1}, 2, "x = x + 1", "2"},
		{"comment", "/* c */ 1", nil, 1, "1", "1"},
		{"keyword-case", "PI", map[string]float64{"PI": 3}, 3, "PI", "3"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := powercalc.NewSession()
			for k, v := range c.vars {
				s.Vars().Set(k, v)
			}
			r, err := s.Parse(c.src)
			if err != nil {
				t.Fatalf("%q: %v", c.src, err)
			}
			if r.Value() != c.val {
				t.Errorf("%q: want value %v, got %v", c.src, c.val, r.Value())
			}
			if r.Expr() != c.expr {
				t.Errorf("%q: want expression %q, got %q", c.src, c.expr, r.Expr())
			}
			if r.String() != c.disp {
				t.Errorf("%q: want display %q, got %q", c.src, c.disp, r.String())
			}
		})
	}
}

func TestEvalNaN(t *testing.T) {
	cases := []string{"acos(2)", "sqrt(-1)", "log(-1)", "0/0", "(0-1)^0.5"}
	for _, src := range cases {
		r, err := powercalc.NewSession().Parse(src)
		if err != nil {
			t.Errorf("%q: %v", src, err)
			continue
		}
		if !math.IsNaN(r.Value()) {
			t.Errorf("%q: want NaN, got %v", src, r.Value())
		}
		if r.String() != "NaN" {
			t.Errorf("%q: want display NaN, got %q", src, r.String())
		}
	}
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  string
	}{
		{"pow-chain", "2^3^2", "ERROR: Invalid syntax."},
		{"double-negate", "--2", "ERROR: Invalid syntax."},
		{"empty", "", "ERROR: Invalid syntax."},
		{"lexical", "1 # 2", "ERROR: Unexpected symbol: #"},
		{"not-set", "foo", `ERROR: "foo" has not been set.`},
		{"not-set-in-sum", "1 + foo", `ERROR: "foo" has not been set.`},
		{"call", "f(1)", "ERROR: Custom functions aren't supported."},
		{"call-list", "f(1;2)", "ERROR: Custom functions aren't supported."},
		{"define", "set f(x) = x+1", "ERROR: Custom functions aren't supported."},
		{"define-list", "set f(x;y) = 1", "ERROR: Custom functions aren't supported."},
		{"history", "$1", "ERROR: Result index out of range."},
		{"history-zero", "$0", "ERROR: Result index out of range."},
		{"history-huge", "$99999999999999999999", "ERROR: Result index out of range."},
		{"ans", "ans", "ERROR: Result index out of range."},
		{"comment", "1 /* x", "INTERNAL ERROR: Comment Error. Unexpected end of input."},
		{"binary-overflow", "0b111111111111111111111111111111111", `ERROR: "0b111111111111111111111111111111111" is a string value.`},
		{"hex-overflow", "0x100000000", `ERROR: "0x100000000" is a string value.`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := powercalc.NewSession()
			_, err := s.Parse(c.src)
			if err == nil {
				t.Fatalf("%q: no error", c.src)
			}
			if err.Error() != c.err {
				t.Errorf("%q: want %q, got %q", c.src, c.err, err.Error())
			}
			if s.Broken() {
				t.Errorf("%q: session broken by an input error", c.src)
			}
		})
	}
}

func res(v float64, expr string) powercalc.Node {
	return powercalc.ResultNode(powercalc.NewExprResult(v, expr))
}

func tok(s string) powercalc.Node {
	return powercalc.TextNode(s)
}

func TestEvalRules(t *testing.T) {
	cases := []struct {
		name string
		red  powercalc.Reduction
		val  float64
		expr string
		base powercalc.Base
	}{
		{"plus", powercalc.Reduce(powercalc.RuleExprPlus, res(1, "1"), tok(""), res(2, "2")), 3, "1 + 2", powercalc.Decimal},
		{"minus", powercalc.Reduce(powercalc.RuleExprMinus, res(1, "a"), tok(""), res(2, "b")), -1, "a - b", powercalc.Decimal},
		{"times", powercalc.Reduce(powercalc.RuleMultTimes, res(3, "3"), tok(""), res(4, "4")), 12, "3 * 4", powercalc.Decimal},
		{"div", powercalc.Reduce(powercalc.RuleMultDiv, res(3, "3"), tok(""), res(4, "4")), 0.75, "3 / 4", powercalc.Decimal},
		{"pow", powercalc.Reduce(powercalc.RuleExponCaret, res(3, "3"), tok(""), res(2, "2")), 9, "3^2", powercalc.Decimal},
		{"paren", powercalc.Reduce(powercalc.RuleValueParen, tok(""), res(3, "1 + 2"), tok("")), 3, "(1 + 2)", powercalc.Decimal},
		{"negate", powercalc.Reduce(powercalc.RuleNegateMinus, tok(""), res(3, "3")), -3, "-3", powercalc.Decimal},
		{"pass", powercalc.Reduce(powercalc.RuleExpr, res(7, "3 + 4")), 7, "3 + 4", powercalc.Decimal},
		{"pass-based", powercalc.Reduce(powercalc.RuleValue, powercalc.ResultNode(powercalc.NewBaseResult(5, "bin(5)", powercalc.Binary))), 5, "bin(5)", powercalc.Binary},
		{"integer", powercalc.Reduce(powercalc.RuleInteger, tok("42")), 42, "42", powercalc.Decimal},
		{"float", powercalc.Reduce(powercalc.RuleFloat, tok("2.50")), 2.5, "2.5", powercalc.Decimal},
		{"history", powercalc.Reduce(powercalc.RuleVariable, tok(" 7 ")), 7, "7", powercalc.Decimal},
		{"binary", powercalc.Reduce(powercalc.RuleBinary, tok("0b1010")), 10, "0b1010", powercalc.Decimal},
		{"octal", powercalc.Reduce(powercalc.RuleOctal, tok("0o777")), 511, "0o777", powercalc.Decimal},
		{"hexadecimal", powercalc.Reduce(powercalc.RuleHexadecimal, tok("0x80000000")), math.MinInt32, "0x80000000", powercalc.Decimal},
		{"pi", powercalc.Reduce(powercalc.RulePi, tok("pi")), math.Pi, "3.141592653589793", powercalc.Decimal},
		{"hex", powercalc.Reduce(powercalc.RuleHex, tok(""), tok(""), res(255, "255"), tok("")), 255, "hex(255)", powercalc.Hexadecimal},
		{"sqrt", powercalc.Reduce(powercalc.RuleSqrt, tok(""), tok(""), res(16, "16"), tok("")), 4, "sqrt(16)", powercalc.Decimal},
		{"tanh", powercalc.Reduce(powercalc.RuleTanh, tok(""), tok(""), res(0, "0"), tok("")), 0, "tanh(0)", powercalc.Decimal},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := powercalc.Eval(c.red, powercalc.NewVars(), nil)
			if err != nil {
				t.Fatalf("%v: %v", c.red, err)
			}
			if r.Value() != c.val || r.Expr() != c.expr || r.Base() != c.base {
				t.Errorf("%v: want %v %q %v, got %v %q %v", c.red, c.val, c.expr, c.base, r.Value(), r.Expr(), r.Base())
			}
		})
	}
}

func TestEvalAssign(t *testing.T) {
	vars := powercalc.NewVars()
	red := powercalc.Reduce(powercalc.RuleAssignSet, tok("set"), tok("x"), tok("="), res(5, "2 + 3"))
	r, err := powercalc.Eval(red, vars, nil)
	if err != nil {
		t.Fatal(err)
	}
	if r.Value() != 5 || r.Expr() != "x = 2 + 3" {
		t.Errorf("want 5 %q, got %v %q", "x = 2 + 3", r.Value(), r.Expr())
	}
	if v, ok := vars.Lookup("x"); !ok || v != 5 {
		t.Errorf("x is %v, %v after assignment", v, ok)
	}
	r, err = powercalc.Eval(powercalc.Reduce(powercalc.RuleIdentifier, tok("x")), vars, nil)
	if err != nil || r.Value() != 5 || r.Expr() != "x" {
		t.Errorf("lookup gave %v %q, %v", r.Value(), r.Expr(), err)
	}
}

func TestEvalVarList(t *testing.T) {
	vars := powercalc.NewVars()
	r, err := powercalc.Eval(powercalc.Reduce(powercalc.RuleVarList, tok("a")), vars, nil)
	if err != nil {
		t.Fatal(err)
	}
	r, err = powercalc.Eval(powercalc.Reduce(powercalc.RuleVarListSemi, powercalc.ResultNode(r), tok(";"), tok("b")), vars, nil)
	if err != nil {
		t.Fatal(err)
	}
	if r.Expr() != "a; b" {
		t.Errorf("want expression %q, got %q", "a; b", r.Expr())
	}
	if v, ok := vars.Lookup("a"); !ok || v != 0 {
		t.Errorf("a is %v, %v after declaration", v, ok)
	}
	if v, ok := vars.Lookup("b"); ok {
		t.Errorf("b is declared with %v after a list", v)
	}
}

func TestEvalFailures(t *testing.T) {
	cases := []struct {
		name string
		red  powercalc.Reduction
		kind powercalc.SemanticKind
		msg  string
	}{
		{"not-set", powercalc.Reduce(powercalc.RuleIdentifier, tok("q")), powercalc.NotSet, `ERROR: "q" has not been set.`},
		{"string", powercalc.Reduce(powercalc.RuleVariable, tok("0xff")), powercalc.StringValue, `ERROR: "0xff" is a string value.`},
		{"string-trim", powercalc.Reduce(powercalc.RuleInteger, tok(" abc ")), powercalc.StringValue, `ERROR: "abc" is a string value.`},
		{"call", powercalc.Reduce(powercalc.RuleCall, tok("f"), tok("("), res(1, "1"), tok(")")), powercalc.CustomFunction, "ERROR: Custom functions aren't supported."},
		{"define", powercalc.Reduce(powercalc.RuleAssignSetFunc, tok("set"), tok("f"), tok("("), res(0, "x"), tok(")"), tok("="), res(1, "1")), powercalc.CustomFunction, "ERROR: Custom functions aren't supported."},
		{"ans-empty", powercalc.Reduce(powercalc.RuleIdentifier, tok("ans")), powercalc.IndexRange, "ERROR: Result index out of range."},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := powercalc.Eval(c.red, powercalc.NewVars(), nil)
			var se *powercalc.SemanticError
			if !errors.As(err, &se) {
				t.Fatalf("want SemanticError, got %v", err)
			}
			if se.Kind != c.kind {
				t.Errorf("want kind %v, got %v", c.kind, se.Kind)
			}
			if err.Error() != c.msg {
				t.Errorf("want message %q, got %q", c.msg, err.Error())
			}
			if !math.IsNaN(r.Value()) {
				t.Errorf("want NaN placeholder, got %v", r.Value())
			}
		})
	}
}

func TestEvalInternal(t *testing.T) {
	cases := []struct {
		name string
		red  powercalc.Reduction
	}{
		{"unknown", powercalc.Reduce(powercalc.Rule(100), res(1, "1"))},
		{"negative", powercalc.Reduce(powercalc.Rule(-1))},
		{"arity", powercalc.Reduce(powercalc.RuleExprPlus, res(1, "1"))},
		{"shape", powercalc.Reduce(powercalc.RuleExprPlus, tok("1"), tok("+"), tok("2"))},
		{"missing-result", powercalc.Reduce(powercalc.RuleSqrt, tok(""), tok(""), tok("4"), tok(""))},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := powercalc.Eval(c.red, powercalc.NewVars(), nil)
			var ie *powercalc.InternalError
			if !errors.As(err, &ie) {
				t.Fatalf("want InternalError, got %v", err)
			}
			if want := "INTERNAL ERROR: Something is horribly wrong."; err.Error() != want {
				t.Errorf("want message %q, got %q", want, err.Error())
			}
			if errors.Unwrap(err) == nil {
				t.Error("no cause")
			}
		})
	}
}
