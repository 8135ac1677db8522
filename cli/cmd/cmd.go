package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/arith/lang"
	"github.com/ardnew/arith/log"
	"github.com/ardnew/arith/pkg"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// kongVar returns the kong variable with the given identifier.
func kongVar(ctx context.Context, id string) (string, bool) {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return "", false
	}

	v, ok := ktx.Model.Vars()[id]

	return v, ok
}

type (
	varsKey    struct{}
	optionsKey struct{}
	streamsKey struct{}
)

// WithVars returns a new context.Context containing default variable
// bindings. Bindings given to a command take precedence over these.
func WithVars(ctx context.Context, vars lang.Vars) context.Context {
	return context.WithValue(ctx, varsKey{}, maps.Clone(vars))
}

// varsFrom returns a copy of the bindings stored by WithVars.
func varsFrom(ctx context.Context) lang.Vars {
	vars, _ := ctx.Value(varsKey{}).(lang.Vars)
	if vars == nil {
		return lang.Vars{}
	}

	return maps.Clone(vars)
}

// WithOptions returns a new context.Context containing options applied to
// every parse, simplify, and evaluation.
func WithOptions(ctx context.Context, opts ...lang.Option) context.Context {
	return context.WithValue(ctx, optionsKey{}, opts)
}

// optionsFrom returns the options stored by WithOptions, preceded by the
// current default logger.
func optionsFrom(ctx context.Context) []lang.Option {
	opts, _ := ctx.Value(optionsKey{}).([]lang.Option)

	return append([]lang.Option{lang.WithLogger(log.Default())}, opts...)
}

// Streams are the standard streams used by commands.
// Nil fields default to the corresponding [os] file.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// WithStreams returns a new context.Context containing the given streams.
func WithStreams(ctx context.Context, s Streams) context.Context {
	return context.WithValue(ctx, streamsKey{}, s)
}

func streamsFrom(ctx context.Context) Streams {
	s, _ := ctx.Value(streamsKey{}).(Streams)

	if s.In == nil {
		s.In = os.Stdin
	}

	if s.Out == nil {
		s.Out = os.Stdout
	}

	if s.Err == nil {
		s.Err = os.Stderr
	}

	return s
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// readSource returns expr, or all of standard input if expr is "-".
func readSource(ctx context.Context, expr string) (string, error) {
	if expr != stdinSource {
		return expr, nil
	}

	src, err := lang.ReadSource(streamsFrom(ctx).In)
	if err != nil {
		return "", pkg.ErrReadInput.Wrap(err)
	}

	return src, nil
}

// ParseBindings parses each NAME=VALUE binding. NAME must be an identifier
// and VALUE a number; later bindings of the same name win.
func ParseBindings(bindings []string) (lang.Vars, error) {
	vars := make(lang.Vars, len(bindings))

	for _, b := range bindings {
		name, value, ok := strings.Cut(b, "=")
		name = strings.TrimSpace(name)

		if !ok {
			return nil, pkg.ErrInvalidBinding.Wrapf("%q: expected NAME=VALUE", b)
		}

		if !lang.IsIdentifier(name) {
			return nil, pkg.ErrInvalidBinding.Wrapf("%q: invalid name %q", b, name)
		}

		n, err := lang.ParseNumber(value)
		if err != nil {
			return nil, pkg.ErrInvalidBinding.Wrap(err)
		}

		vars[name] = n
	}

	return vars, nil
}

// bind merges bindings over the defaults stored in ctx.
func bind(ctx context.Context, bindings []string) (lang.Vars, error) {
	parsed, err := ParseBindings(bindings)
	if err != nil {
		return nil, err
	}

	vars := varsFrom(ctx)
	maps.Copy(vars, parsed)

	return vars, nil
}

// report writes a source snippet for err to w when err carries a source
// position, and returns err wrapped in kind.
func report(w io.Writer, src string, kind *Error, err error) *Error {
	var le *lang.Error
	if errors.As(err, &le) {
		if _, ok := le.Position(); ok {
			_, _ = fmt.Fprint(w, lang.FormatError(src, err))
		}
	}

	return kind.Wrap(err)
}
