package lang

import (
	"context"
	"fmt"
	"log/slog"
)

// Env resolves identifiers to values during evaluation. Evaluation only
// reads from an Env and never retains it.
type Env interface {
	Lookup(name string) (Number, bool)
}

// Vars is a map-backed [Env]. A nil Vars defines no names.
type Vars map[string]Number

// Lookup implements [Env].
func (v Vars) Lookup(name string) (Number, bool) {
	n, ok := v[name]

	return n, ok
}

// Eval computes the value of n. Identifiers are resolved in env, which may
// be nil when n has none.
//
// Eval fails with [ErrUndefinedVariable] for an identifier missing from env
// and with [ErrDivisionByZero] when a divisor evaluates to zero.
func Eval(n Node, env Env) (Number, error) {
	return eval(n, env)
}

// EvalContext is like [Eval] and additionally traces the result using the
// logger configured by opts.
func EvalContext(
	ctx context.Context,
	n Node,
	env Env,
	opts ...Option,
) (Number, error) {
	o := makeOptions(opts...)

	v, err := eval(n, env)
	if err != nil {
		o.logger.TraceContext(ctx, "eval failed",
			slog.String("expr", String(n)),
			slog.Any("error", err))

		return Number{}, err
	}

	o.logger.TraceContext(ctx, "eval complete",
		slog.String("expr", String(n)),
		slog.Any("result", v))

	return v, nil
}

func eval(n Node, env Env) (Number, error) {
	switch n := n.(type) {
	case *IntegerLiteral:
		return Int(n.Value), nil

	case *FloatLiteral:
		return Float(n.Value), nil

	case *Identifier:
		if env != nil {
			if v, ok := env.Lookup(n.Name); ok {
				return v, nil
			}
		}

		return Number{}, ErrUndefinedVariable.
			With(slog.String("name", n.Name))

	case *BinaryOp:
		l, err := eval(n.Left, env)
		if err != nil {
			return Number{}, err
		}

		r, err := eval(n.Right, env)
		if err != nil {
			return Number{}, err
		}

		return n.Op.apply(l, r)

	case *UnaryOp:
		x, err := eval(n.Operand, env)
		if err != nil {
			return Number{}, err
		}

		return n.Op.apply(x)

	default:
		return Number{}, ErrInvalidNode.
			With(slog.String("type", fmt.Sprintf("%T", n)))
	}
}
