package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/arith/lang"
)

// Fmt parses an expression and prints its tree in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as fully parenthesized expression (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
	AST    AST    `cmd:""                    help:"Format as Go syntax tree."`
}

// input is the expression source shared by every fmt format.
type input struct {
	Expr     string `arg:"" default:"-" help:"Expression to format or '-' for stdin" name:"expr"`
	Simplify bool   `                   help:"Fold constant subexpressions first"            short:"s"`
}

// tree reads, parses, and optionally simplifies the input expression.
func (i input) tree(ctx context.Context, format string) (lang.Node, error) {
	src, err := readSource(ctx, i.Expr)
	if err != nil {
		return nil, ErrFormat.Wrap(err)
	}

	opts := optionsFrom(ctx)

	node, err := lang.ParseString(ctx, src, opts...)
	if err != nil {
		return nil, report(streamsFrom(ctx).Err, src, ErrFormat, err).
			With(slog.String("format", format))
	}

	if i.Simplify {
		node, err = lang.SimplifyContext(ctx, node, opts...)
		if err != nil {
			return nil, ErrFormat.Wrap(err).
				With(slog.String("format", format))
		}
	}

	return node, nil
}

// Native formats input as a fully parenthesized expression.
type Native struct {
	Input input `embed:""`
}

// Run executes the native command.
func (f *Native) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	node, err := f.Input.tree(ctx, "native")
	if err != nil {
		return err
	}

	out := streamsFrom(ctx).Out

	if err := lang.Render(out, node); err != nil {
		return ErrFormat.Wrap(err)
	}

	_, err = fmt.Fprintln(out)

	return err
}

// JSON formats input as a JSON tree.
type JSON struct {
	Input  input `embed:""`
	Indent int   `default:"2" help:"Indent width for JSON output (0 for compact)" short:"i"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	node, err := j.Input.tree(ctx, "json")
	if err != nil {
		return err
	}

	if err := lang.EncodeJSON(streamsFrom(ctx).Out, node, j.Indent); err != nil {
		return ErrJSONMarshal.Wrap(err)
	}

	return nil
}

// YAML formats input as a YAML tree.
type YAML struct {
	Input  input `embed:""`
	Indent int   `default:"2" help:"Indent width for YAML output (0 for flow style)" short:"i"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	node, err := y.Input.tree(ctx, "yaml")
	if err != nil {
		return err
	}

	if err := lang.EncodeYAML(ctx, streamsFrom(ctx).Out, node, y.Indent); err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	return nil
}

// AST formats input as an indented Go-syntax tree.
type AST struct {
	Input input `embed:""`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	node, err := a.Input.tree(ctx, "ast")
	if err != nil {
		return err
	}

	lang.Dump(streamsFrom(ctx).Out, node)

	return nil
}
