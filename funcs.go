package powercalc

import "math"

// Func is a named function of one real. Out-of-domain arguments produce NaN
// or an infinity rather than an error.
type Func struct {
	Name string
	F    func(float64) float64
}

// Call applies the function to the result of its argument, rendering the
// call as name(arg).
func (f Func) Call(arg Result) Result {
	return NewExprResult(f.F(arg.Value()), f.Name+"("+arg.Expr()+")")
}

var globalfuncs = map[Rule]Func{
	RuleAbs:   {"abs", math.Abs},
	RuleAcos:  {"acos", math.Acos},
	RuleAsin:  {"asin", math.Asin},
	RuleAtan:  {"atan", math.Atan},
	RuleCos:   {"cos", math.Cos},
	RuleCosh:  {"cosh", math.Cosh},
	RuleLog:   {"log", math.Log},
	RuleLog10: {"log10", math.Log10},
	RuleSin:   {"sin", math.Sin},
	RuleSinh:  {"sinh", math.Sinh},
	RuleSqrt:  {"sqrt", math.Sqrt},
	RuleTan:   {"tan", math.Tan},
	RuleTanh:  {"tanh", math.Tanh},
}

// Funcs returns the names of the built-in functions.
func Funcs() []string {
	r := make([]string, 0, len(globalfuncs))
	for rule := RuleAbs; rule <= RuleTanh; rule++ {
		r = append(r, globalfuncs[rule].Name)
	}
	return r
}

// baseFuncs are the wrappers that change only the display base.
var baseFuncs = map[Rule]struct {
	name string
	base Base
}{
	RuleBin: {"bin", Binary},
	RuleHex: {"hex", Hexadecimal},
	RuleOct: {"oct", Octal},
}
