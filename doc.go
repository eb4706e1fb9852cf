// Package powercalc implements the expression language of a line-at-a-time
// desktop calculator.
//
// A line is tokenized, parsed by a table-driven shift/reduce parser, and
// evaluated one reduction at a time into a float64 together with a canonical
// rendering of the expression. Results can be shown in decimal or, through
// bin(), hex(), and oct(), in binary, hexadecimal, or octal.
//
// "set x = 2" assigns a variable for the rest of the session; "x = 2" means
// the same thing once passed through Normalize. "$3" is the third result of
// the transcript and "ans" is the latest one. Functions of one argument are
// abs, acos, asin, atan, cos, cosh, log, log10, sin, sinh, sqrt, tan, and
// tanh; pi and e are constants. "-2^2" is "-(2^2)", and "2^3^2" is rejected.
// User-defined functions parse but always fail to evaluate.
//
package powercalc
