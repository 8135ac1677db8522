package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ardnew/arith/lang"
	"github.com/ardnew/arith/log"
)

// Eval evaluates an expression with the given variable bindings.
type Eval struct {
	Expr     string   `arg:"" default:"-" help:"Expression to evaluate or '-' for stdin" name:"expr"`
	Bindings []string `arg:""             help:"Variable bindings"                      name:"binding" optional:"" placeholder:"NAME=VALUE"`
	Simplify bool     `                   help:"Fold constant subexpressions before evaluating"                              short:"s"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	vars, err := bind(ctx, e.Bindings)
	if err != nil {
		return ErrEvaluate.Wrap(err)
	}

	src, err := readSource(ctx, e.Expr)
	if err != nil {
		return ErrEvaluate.Wrap(err)
	}

	streams := streamsFrom(ctx)
	opts := optionsFrom(ctx)

	node, err := lang.ParseString(ctx, src, opts...)
	if err != nil {
		return report(streams.Err, src, ErrEvaluate, err)
	}

	if e.Simplify {
		node, err = lang.SimplifyContext(ctx, node, opts...)
		if err != nil {
			return ErrEvaluate.Wrap(err)
		}
	}

	if names := lang.Unbound(node, vars); len(names) > 0 {
		return ErrEvaluate.Wrap(
			lang.ErrUndefinedVariable.With(
				slog.String("names", strings.Join(names, ",")),
			),
		)
	}

	result, err := lang.EvalContext(ctx, node, vars, opts...)
	if err != nil {
		return ErrEvaluate.Wrap(err).
			With(slog.String("expr", lang.String(node)))
	}

	log.DebugContext(ctx, "evaluated",
		slog.String("expr", lang.String(node)),
		slog.Any("result", result))

	_, err = fmt.Fprintln(streams.Out, result)

	return err
}
