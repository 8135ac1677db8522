package lang

import (
	"math"
	"testing"
	"unicode/utf8"
)

// FuzzParse checks that parsing never panics and that every accepted input
// renders to a fixed point, simplifies idempotently, and evaluates to the
// same value before and after simplification.
func FuzzParse(f *testing.F) {
	f.Add("x + 5 * 2")
	f.Add("x / 7 + 42 * 8 / (8 - 6)")
	f.Add("6 + (-4 + (3*x+7) * y * 9 / (4 + 3))")
	f.Add("3.14159.01928347")
	f.Add("897asdfasdf987")
	f.Add("- - -(1.5)")
	f.Add("((((a))))")
	f.Add("1 / 0")
	f.Add("9223372036854775807 * 2")
	f.Add("(-9223372036854775807 - 1) / -1")
	f.Add("a / 4 * b - 6 / 3 * (c + 1.5)")
	f.Add("")

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			t.Skip("invalid UTF-8")
		}

		n, err := ParseString(t.Context(), input, WithCache(false))
		if err != nil {
			return
		}

		rendered := n.String()

		// Rendering adds parentheses, so the reparse must not hit the depth limit.
		again, err := ParseString(t.Context(), rendered,
			WithCache(false), WithMaxDepth(0))
		if err != nil {
			t.Fatalf("rendered form %q of %q does not parse: %v", rendered, input, err)
		}

		if got := again.String(); got != rendered {
			t.Fatalf("render not a fixed point: %q -> %q", rendered, got)
		}

		once, err := Simplify(n)
		if err != nil {
			return
		}

		twice, err := Simplify(once)
		if err != nil {
			t.Fatalf("simplified tree %q failed to simplify: %v", once, err)
		}

		if once.String() != twice.String() {
			t.Fatalf("simplify not idempotent: %q -> %q", once, twice)
		}

		env := Vars{}
		for i, name := range Identifiers(n) {
			env[name] = Int(int64(i%7 + 1))
		}

		// Integer wraparound is only consistent when no subexpression
		// leaves the range float64 represents exactly.
		if _, ok := evalExact(n, env); !ok {
			return
		}

		before, err := Eval(n, env)
		if err != nil {
			t.Fatalf("eval %q: %v", input, err)
		}

		after, err := Eval(once, env)
		if err != nil {
			t.Fatalf("eval simplified %q: %v", once, err)
		}

		a, b := before.Float64(), after.Float64()
		if math.Abs(a-b) > 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b))) {
			t.Fatalf("simplify changed value of %q: %v -> %v (%q)", input, before, after, once)
		}
	})
}

// evalExact evaluates n in float64 arithmetic and reports whether every
// subexpression is finite, has a nonzero divisor, and is at most 2^53 in
// magnitude.
func evalExact(n Node, env Vars) (float64, bool) {
	const limit = 1 << 53

	var v float64

	switch n := n.(type) {
	case *IntegerLiteral:
		v = float64(n.Value)

	case *FloatLiteral:
		v = n.Value

	case *Identifier:
		x, ok := env.Lookup(n.Name)
		if !ok {
			return 0, false
		}

		v = x.Float64()

	case *UnaryOp:
		x, ok := evalExact(n.Operand, env)
		if !ok {
			return 0, false
		}

		v = -x

	case *BinaryOp:
		l, ok := evalExact(n.Left, env)
		if !ok {
			return 0, false
		}

		r, ok := evalExact(n.Right, env)
		if !ok {
			return 0, false
		}

		switch n.Op {
		case Add:
			v = l + r

		case Subtract:
			v = l - r

		case Multiply:
			v = l * r

		case Divide:
			if r == 0 {
				return 0, false
			}

			v = l / r
		}

	default:
		return 0, false
	}

	return v, math.Abs(v) <= limit
}
