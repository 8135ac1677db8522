package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/ardnew/arith/lang"
	"github.com/ardnew/arith/log"
)

// session holds the variable bindings of a REPL and executes its input.
// It has no terminal dependencies.
type session struct {
	vars   lang.Vars
	logger log.Logger
	opts   []lang.Option
}

func newSession(vars lang.Vars, logger log.Logger, opts ...lang.Option) *session {
	s := &session{
		vars:   maps.Clone(vars),
		logger: logger,
		opts:   append([]lang.Option{lang.WithLogger(logger)}, opts...),
	}

	if s.vars == nil {
		s.vars = lang.Vars{}
	}

	return s
}

// command is a control command. run receives everything after the command
// name with surrounding space removed.
type command struct {
	name    string
	alias   []string
	usage   string
	summary string
	run     func(s *session, ctx context.Context, args string) (string, error)
}

// commands is populated in init since help refers back to it.
var commands []command

func init() {
	commands = []command{
		{
			name:    "help",
			alias:   []string{"h", "?"},
			summary: "Print this cruft",
			run:     (*session).help,
		},
		{
			name:    "vars",
			alias:   []string{"v", "list"},
			summary: "List bound variables",
			run:     (*session).list,
		},
		{
			name:    "set",
			usage:   "NAME EXPR",
			summary: "Bind NAME to the value of EXPR",
			run:     (*session).set,
		},
		{
			name:    "unset",
			usage:   "NAME",
			summary: "Remove the binding of NAME",
			run:     (*session).unset,
		},
		{
			name:    "simplify",
			alias:   []string{"s"},
			usage:   "EXPR",
			summary: "Print EXPR with constant subexpressions folded",
			run:     (*session).simplify,
		},
		{
			name:    "tree",
			alias:   []string{"t"},
			usage:   "EXPR",
			summary: "Print the syntax tree of EXPR",
			run:     (*session).tree,
		},
		{
			name:    "clear",
			alias:   []string{"c"},
			summary: "Clear screen",
			run: func(*session, context.Context, string) (string, error) {
				return "", errClear
			},
		},
		{
			name:    "quit",
			alias:   []string{"q", "exit"},
			summary: "Exit REPL",
			run: func(*session, context.Context, string) (string, error) {
				return "", errQuit
			},
		},
	}
}

// commandNames returns the primary name of every command.
func commandNames() []string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.name
	}

	return names
}

func lookupCommand(name string) (command, bool) {
	i := slices.IndexFunc(commands, func(c command) bool {
		return c.name == name || slices.Contains(c.alias, name)
	})
	if i < 0 {
		return command{}, false
	}

	return commands[i], true
}

// exec runs a control command line. A leading ':' is optional.
func (s *session) exec(ctx context.Context, line string) (string, error) {
	line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), ":"))

	name, args, _ := strings.Cut(line, " ")
	if name == "" {
		return "", nil
	}

	s.logger.TraceContext(ctx, "repl exec command",
		slog.String("command", name),
		slog.String("args", args))

	cmd, ok := lookupCommand(name)
	if !ok {
		return "", fmt.Errorf("%w: %s (try 'help')", ErrUnknown, name)
	}

	return cmd.run(s, ctx, strings.TrimSpace(args))
}

// eval parses and evaluates an expression against the session bindings.
func (s *session) eval(ctx context.Context, src string) (lang.Number, error) {
	n, err := lang.ParseString(ctx, src, s.opts...)
	if err != nil {
		return lang.Number{}, err
	}

	return lang.EvalContext(ctx, n, s.vars, s.opts...)
}

func (s *session) help(context.Context, string) (string, error) {
	var b strings.Builder

	b.WriteString("Commands (prefix with ':' or press Esc to toggle mode):\n\n")

	for _, c := range commands {
		use := c.name
		if c.usage != "" {
			use += " " + c.usage
		}

		fmt.Fprintf(&b, "  %-16s %s\n", use, c.summary)
	}

	b.WriteString(`
Usage:
  Type an expression to evaluate it using the bound variables
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Press Ctrl+C on empty line or Ctrl+D to exit`)

	return b.String(), nil
}

func (s *session) list(context.Context, string) (string, error) {
	if len(s.vars) == 0 {
		return "(no variables)", nil
	}

	var b strings.Builder

	for i, name := range slices.Sorted(maps.Keys(s.vars)) {
		if i > 0 {
			b.WriteByte('\n')
		}

		b.WriteString(name + " = " + s.vars[name].String())
	}

	return b.String(), nil
}

func (s *session) set(ctx context.Context, args string) (string, error) {
	// NAME ends at the first space or "=", so "x 5", "x = 5", and "x=5" agree.
	name, src := args, ""
	if i := strings.IndexAny(args, " \t="); i >= 0 {
		name, src = args[:i], args[i:]
	}

	src = strings.TrimPrefix(strings.TrimSpace(src), "=")

	if !lang.IsIdentifier(name) || strings.TrimSpace(src) == "" {
		return "", fmt.Errorf("%w: set NAME EXPR", ErrUsage)
	}

	v, err := s.eval(ctx, src)
	if err != nil {
		return "", err
	}

	s.vars[name] = v

	return name + " = " + v.String(), nil
}

func (s *session) unset(_ context.Context, args string) (string, error) {
	if !lang.IsIdentifier(args) {
		return "", fmt.Errorf("%w: unset NAME", ErrUsage)
	}

	if _, ok := s.vars[args]; !ok {
		return "", lang.ErrUndefinedVariable.With(slog.String("name", args))
	}

	delete(s.vars, args)

	return "", nil
}

func (s *session) simplify(ctx context.Context, args string) (string, error) {
	if args == "" {
		return "", fmt.Errorf("%w: simplify EXPR", ErrUsage)
	}

	n, err := lang.ParseString(ctx, args, s.opts...)
	if err != nil {
		return "", err
	}

	n, err = lang.SimplifyContext(ctx, n, s.opts...)
	if err != nil {
		return "", err
	}

	return lang.String(n), nil
}

func (s *session) tree(ctx context.Context, args string) (string, error) {
	if args == "" {
		return "", fmt.Errorf("%w: tree EXPR", ErrUsage)
	}

	n, err := lang.ParseString(ctx, args, s.opts...)
	if err != nil {
		return "", err
	}

	var b strings.Builder

	lang.Dump(&b, n)

	return strings.TrimRight(b.String(), "\n"), nil
}

// describe renders err for display, pointing at the offending column of src
// when the error carries a position.
func describe(src string, err error) string {
	var le *lang.Error
	if errors.As(err, &le) {
		if _, ok := le.Position(); ok {
			return strings.TrimRight(lang.FormatError(src, err), "\n")
		}
	}

	return err.Error()
}
