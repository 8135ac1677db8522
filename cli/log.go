package cli

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/arith/log"
)

// logFormat is a custom type that configures the logger format as a side
// effect of parsing via encoding.TextUnmarshaler.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
// As Kong parses the --log-format flag, this method is called, allowing us
// to configure the logger early enough to affect error messages during parsing.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel is a custom type that configures the logger level as a side
// effect of parsing via encoding.TextUnmarshaler.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
// As Kong parses the --log-level flag, this method is called, allowing us
// to configure the logger early enough to affect error messages during parsing.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"${logLevel}"  enum:"${logLevelEnum}"  help:"Set log level."`
	Format     logFormat `default:"${logFormat}" enum:"${logFormatEnum}" help:"Set log format."`
	TimeLayout string    `default:"${logTime}"                           help:"Set timestamp format."`
	Caller     bool      `default:"false"                                help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"                                 help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevel":      log.DefaultLevel.String(),
		"logLevelEnum":  strings.Join(slices.Collect(log.Levels()), ","),
		"logFormat":     log.DefaultFormat.String(),
		"logFormatEnum": strings.Join(slices.Collect(log.Formats()), ","),
		"logTime":       "RFC3339",
	}
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

// start applies the parsed logger configuration to the default logger.
func (f *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// scan performs an early pass over command-line arguments to extract and
// apply logger configuration before kong begins parsing, so that messages
// logged while parsing already use the requested settings.
//
// The level and format flags also configure the logger as kong decodes them
// (see [logLevel.UnmarshalText]); boolean flags such as --log-pretty have no
// such hook, so the pre-scan is what applies them early. Scanning stops at
// "--".
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return
		}

		name, value, assigned := strings.Cut(arg, "=")

		key, negated := strings.CutPrefix(name, "--no-log-")
		if !negated {
			var ok bool
			if key, ok = strings.CutPrefix(name, "--log-"); !ok {
				continue
			}
		}

		// Non-boolean flags consume the next arg as value if not assigned.
		next := func() string {
			if !assigned && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++

				return args[i]
			}

			return value
		}

		switch key {
		case "level":
			if !negated {
				_ = f.Level.UnmarshalText([]byte(next()))
			}

		case "format":
			if !negated {
				_ = f.Format.UnmarshalText([]byte(next()))
			}

		case "pretty":
			if v, ok := scanBool(value, assigned, negated); ok {
				f.Pretty = v
				log.Config(log.WithPretty(v))
			}

		case "caller":
			if v, ok := scanBool(value, assigned, negated); ok {
				f.Caller = v
				log.Config(log.WithCaller(v))
			}
		}
	}
}

// scanBool returns the value of a boolean flag. A bare flag is true, or false
// for its negated "--no-" form; an assigned value must parse with
// [strconv.ParseBool].
func scanBool(value string, assigned, negated bool) (v, ok bool) {
	v = true

	if assigned {
		var err error

		v, err = strconv.ParseBool(value)
		if err != nil {
			return false, false
		}
	}

	return v != negated, true
}
