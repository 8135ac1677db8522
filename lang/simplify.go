package lang

import (
	"context"
	"fmt"
	"log/slog"
	"math"
)

// Simplify returns a constant-folded copy of n. The input tree is never
// modified and shares no nodes with the result.
//
// Subtrees whose operands are all literals are replaced by a single literal.
// Integer operands yield an integer literal for + - *, and for / when the
// quotient is exact; every other combination yields a float literal.
// Subtrees that reference identifiers are rebuilt over their simplified
// children. A binary subtree whose value is not finite (an overflowing float
// product, or Inf - Inf) is left unfolded, since no literal can spell it.
//
// Simplify fails only with [ErrDivisionByZero], when a literal divisor folds
// to zero.
func Simplify(n Node) (Node, error) {
	return simplify(n)
}

// SimplifyContext is like [Simplify] and additionally traces the rewrite
// using the logger configured by opts.
func SimplifyContext(ctx context.Context, n Node, opts ...Option) (Node, error) {
	o := makeOptions(opts...)

	s, err := simplify(n)
	if err != nil {
		o.logger.TraceContext(ctx, "simplify failed",
			slog.String("expr", String(n)),
			slog.Any("error", err))

		return nil, err
	}

	o.logger.TraceContext(ctx, "simplify complete",
		slog.String("expr", String(n)),
		slog.String("result", String(s)))

	return s, nil
}

func simplify(n Node) (Node, error) {
	switch n := n.(type) {
	case *IntegerLiteral, *FloatLiteral, *Identifier:
		return Clone(n), nil

	case *BinaryOp:
		l, err := simplify(n.Left)
		if err != nil {
			return nil, err
		}

		r, err := simplify(n.Right)
		if err != nil {
			return nil, err
		}

		lv, lok := literalValue(l)
		rv, rok := literalValue(r)

		if !lok || !rok {
			return NewBinary(n.Op, l, r), nil
		}

		v, err := foldBinary(n.Op, lv, rv)
		if err != nil {
			return nil, err
		}

		if !v.isFinite() {
			return NewBinary(n.Op, l, r), nil
		}

		return literalOf(v), nil

	case *UnaryOp:
		x, err := simplify(n.Operand)
		if err != nil {
			return nil, err
		}

		v, ok := literalValue(x)
		if !ok {
			return NewUnary(n.Op, x), nil
		}

		folded, err := n.Op.apply(v)
		if err != nil {
			return nil, err
		}

		return literalOf(folded), nil

	default:
		return nil, ErrInvalidNode.
			With(slog.String("type", fmt.Sprintf("%T", n)))
	}
}

// foldBinary evaluates l op r. An exact integer quotient stays an integer
// unless it overflows (math.MinInt64 / -1).
func foldBinary(op BinaryKind, l, r Number) (Number, error) {
	if op == Divide && l.IsInt() && r.IsInt() && !r.IsZero() &&
		!(l.i == math.MinInt64 && r.i == -1) && l.i%r.i == 0 {
		return Int(l.i / r.i), nil
	}

	return op.apply(l, r)
}
