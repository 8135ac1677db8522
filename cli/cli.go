package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/arith/cli/cmd"
	"github.com/ardnew/arith/lang"
	"github.com/ardnew/arith/pkg"
)

// CLI is the top-level command-line interface for arith.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Var      []string `help:"Bind variable for every command (repeatable)" name:"var" placeholder:"NAME=VALUE" short:"D"`
	MaxDepth int      `default:"${maxDepth}" help:"Maximum nesting depth of parentheses and negation (0 for unlimited)"`
	Cache    bool     `default:"true"        help:"Cache parsed expressions"                                             negatable:""`

	Version kong.VersionFlag `help:"Print version and exit" short:"V"`

	Init cmd.Init `cmd:"" help:"Initialize configuration file"`
	Eval cmd.Eval `cmd:"" help:"Evaluate an expression"`
	Fmt  cmd.Fmt  `cmd:"" help:"Format an expression"`

	Repl cmd.Repl `cmd:"" default:"1" help:"Start an interactive session (default)"`
}

// Run executes the arith CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath + ".yaml",
		cmd.CacheIdentifier:  pkg.CacheDir(),
		"maxDepth":           strconv.Itoa(lang.DefaultMaxDepth),
		"version":            pkg.Name + " " + strings.TrimSpace(pkg.Version),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position. TextUnmarshaler on logFormat/logLevel handles those flags
	// during normal parsing, but this early scan also catches boolean flags
	// like --log-pretty.
	cli.Log.scan(args)

	// Parse command line
	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve(ctx), configFilePath+".yaml"),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	bindings, err := cmd.ParseBindings(cli.Var)
	if err != nil {
		return err
	}

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithVars(ctx, bindings)
	ctx = cmd.WithOptions(ctx,
		lang.WithMaxDepth(cli.MaxDepth),
		lang.WithCache(cli.Cache),
	)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	// Execute the selected command
	return ktx.Run(ctx, &cli)
}
