// Package lang parses, evaluates, renders, and simplifies a small arithmetic
// expression language.
//
// # Grammar
//
// Informal EBNF:
//
//	Expr   → Term { ('+' | '-') Term }
//	Term   → Factor { ('*' | '/') Factor }
//	Factor → Identifier
//	       | Number [ '.' Number ]
//	       | '(' Expr ')'
//	       | '-' Factor
//
// Binary operators are left-associative, so "a - b - c" parses as
// "((a - b) - c)". Unary minus binds tighter than every binary operator and
// may be chained: "- - x" parses as "(-(-x))".
//
// Identifiers start with an ASCII letter followed by any number of letters,
// digits, or underscores. Numbers are runs of decimal digits; a number
// followed by '.' and another run of digits is a floating-point literal.
// Whitespace separates tokens and is otherwise ignored.
//
// The parser reads one token of lookahead and never backtracks. It stops at
// the first error, returning [ErrParse] with the source position of the
// offending token. Trailing input after a complete expression is an error.
//
// # Values
//
// Evaluation produces a [Number], which is either an int64 or a float64.
// Addition, subtraction, and multiplication of two integers produce an
// integer; any float operand promotes the result to float. Division is
// always true division and produces a float. Dividing by zero fails with
// [ErrDivisionByZero]; identifiers missing from the [Env] fail with
// [ErrUndefinedVariable].
//
// # Trees
//
// Trees are immutable once built. [Simplify] folds constant subtrees into
// fresh literal nodes and returns a new tree, leaving its input untouched, so
// a single tree may be evaluated concurrently against different
// environments.
//
// Every [Node] renders to a fully parenthesized form through [String]:
//
//	6 + (-4 + (3*x+7) * y * 9 / (4 + 3))
//
// renders as
//
//	(6 + ((-4) + (((((3 * x) + 7) * y) * 9) / (4 + 3))))
//
// # Usage
//
//	n, err := lang.Parse("x / 7 + 42 * 8 / (8 - 6)")
//	if err != nil {
//		return err
//	}
//
//	v, err := lang.Eval(n, lang.Vars{"x": lang.Int(28)})
//	// v == 172.0
package lang
