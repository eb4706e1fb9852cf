package powercalc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Eval evaluates one reduction whose children have already been evaluated.
// Assignments and variable lists change vars; ans is looked up in h, which
// may be nil.
//
// If the step fails, the result is a NaN placeholder and the error is a
// *SemanticError. A reduction that does not match the grammar, including an
// unknown rule, gives an *InternalError.
func Eval(r Reduction, vars *Vars, h History) (Result, error) {
	if !r.Rule.Valid() {
		return Result{}, &InternalError{
			Msg: msgInternal,
			Err: fmt.Errorf("unknown rule %d: grammar table and evaluator are out of sync", int(r.Rule)),
		}
	}
	if !r.check() {
		return Result{}, &InternalError{
			Msg: msgInternal,
			Err: fmt.Errorf("reduction does not match %v", r.Rule),
		}
	}
	switch r.Rule {
	case RuleAssignSet:
		id := r.str(1)
		vars.Set(id, r.num(3))
		return NewExprResult(r.num(3), id+" = "+r.expr(3)), nil
	case RuleAssignSetFunc:
		return nan(r.str(1)), &SemanticError{Kind: CustomFunction, Text: r.str(1)}
	case RuleInteger, RuleFloat, RuleFloatNo0, RuleVariable:
		return parseDecimal(r.str(0))
	case RuleBinary:
		return parseBased(r.str(0), 'b', 2)
	case RuleHexadecimal:
		return parseBased(r.str(0), 'x', 16)
	case RuleOctal:
		return parseBased(r.str(0), 'o', 8)
	case RuleBin, RuleHex, RuleOct:
		f := baseFuncs[r.Rule]
		return NewBaseResult(r.num(2), f.name+"("+r.expr(2)+")", f.base), nil
	case RulePi:
		return NewResult(math.Pi), nil
	case RuleExp:
		return NewResult(math.E), nil
	case RuleIdentifier:
		return lookup(r.str(0), vars, h)
	case RuleVarList:
		vars.Declare(r.str(0))
		return NewExprResult(0, r.str(0)), nil
	case RuleVarListSemi:
		// Only the first name of a list is declared.
		return NewExprResult(0, r.expr(0)+"; "+r.str(2)), nil
	case RuleCall:
		return nan(r.str(0)), &SemanticError{Kind: CustomFunction, Text: r.str(0)}
	case RuleExprListSemi:
		return NewExprResult(math.NaN(), r.expr(0)+"; "+r.expr(2)), nil
	case RuleAssign, RuleExpr, RuleMult, RuleNegate, RuleExpon, RuleValue, RuleExprList:
		return *r.Args[0].Result, nil
	case RuleExprPlus:
		return NewExprResult(r.num(0)+r.num(2), r.expr(0)+" + "+r.expr(2)), nil
	case RuleExprMinus:
		return NewExprResult(r.num(0)-r.num(2), r.expr(0)+" - "+r.expr(2)), nil
	case RuleMultTimes:
		return NewExprResult(r.num(0)*r.num(2), r.expr(0)+" * "+r.expr(2)), nil
	case RuleMultDiv:
		return NewExprResult(r.num(0)/r.num(2), r.expr(0)+" / "+r.expr(2)), nil
	case RuleExponCaret:
		return NewExprResult(math.Pow(r.num(0), r.num(2)), r.expr(0)+"^"+r.expr(2)), nil
	case RuleValueParen:
		return NewExprResult(r.num(1), "("+r.expr(1)+")"), nil
	case RuleNegateMinus:
		return NewExprResult(-r.num(1), "-"+r.expr(1)), nil
	}
	if f, ok := globalfuncs[r.Rule]; ok {
		return f.Call(*r.Args[2].Result), nil
	}
	return Result{}, &InternalError{
		Msg: msgInternal,
		Err: fmt.Errorf("no evaluation for %v", r.Rule),
	}
}

// lookup resolves a bare identifier: ans is the latest result in h, anything
// else is a variable.
func lookup(id string, vars *Vars, h History) (Result, error) {
	if id != "ans" {
		v, ok := vars.Lookup(id)
		if !ok {
			return nan(id), &SemanticError{Kind: NotSet, Text: id}
		}
		return NewExprResult(v, id), nil
	}
	n := 0
	if h != nil {
		n = h.LineCount()
	}
	s, err := resultText(h, n-1)
	if err != nil {
		return nan(id), err
	}
	v, err := parseFloat(s)
	if err != nil {
		return nan(id), &SemanticError{Kind: StringValue, Text: s}
	}
	return NewExprResult(v, id), nil
}

// parseDecimal evaluates a decimal literal or resolved history reference.
func parseDecimal(s string) (Result, error) {
	v, err := parseFloat(s)
	if err != nil {
		return nan(s), &SemanticError{Kind: StringValue, Text: s}
	}
	return NewResult(v), nil
}

// parseFloat parses base-10 text. Values too large for a float64 become
// infinities instead of failing.
func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return v, nil
}

// parseBased evaluates a prefixed integer literal. The digits after the first
// marker are read as a 32-bit two's complement integer.
func parseBased(s string, marker byte, base int) (Result, error) {
	u, err := strconv.ParseUint(s[strings.IndexByte(s, marker)+1:], base, 32)
	if err != nil {
		return nan(s), &SemanticError{Kind: StringValue, Text: s}
	}
	return NewExprResult(float64(int32(uint32(u))), s), nil
}
