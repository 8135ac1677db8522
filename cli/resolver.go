package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/arith/cli/cmd"
	"github.com/ardnew/arith/lang"
	"github.com/ardnew/arith/log"
	"github.com/ardnew/arith/pkg"
)

// resolve returns a [kong.ConfigurationLoader] that reads YAML config files
// such as the one written by the init command.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx), "/path/to/config.yaml")
//
// The YAML document is converted as follows:
//   - Nested mappings are flattened, joining keys with "-", so both
//     "log-level: debug" and "log: {level: debug}" set --log-level
//   - Keys may use underscores in place of hyphens (e.g., "max_depth")
//   - Numbers are passed to kong as strings
//   - The "vars" mapping of NAME: VALUE pairs sets the --var flag
//
// Example config file:
//
//	log:
//	  level: debug
//	  pretty: false
//	max-depth: 64
//	vars:
//	  x: 12
//	  rate: 0.5
//
// Command-line flags override config file values. A document that cannot be
// decoded is ignored with a warning.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		var doc map[string]any

		err := yaml.NewDecoder(r).DecodeContext(ctx, &doc)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.WarnContext(ctx, "ignoring configuration",
					slog.Any("error", pkg.ErrInvalidConfig.Wrap(err)))
			}

			return config{}, nil
		}

		cfg := config{}
		cfg.flatten("", doc)

		return cfg, nil
	}
}

// config implements [kong.Resolver] for flattened YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	name := flag.Name

	if value, ok := r[name]; ok {
		return value, nil
	}

	// Try underscore variant
	if value, ok := r[strings.ReplaceAll(name, "-", "_")]; ok {
		return value, nil
	}

	// Not found - return nil to let kong use defaults
	return nil, nil
}

// flatten stores each leaf of doc in r under its hyphen-joined key path.
func (r config) flatten(prefix string, doc map[string]any) {
	for key, val := range doc {
		name := prefix + key

		if name == cmd.VarsKey {
			if vars, ok := val.(map[string]any); ok {
				r[cmd.VarFlag] = bindings(vars)
			}

			continue
		}

		switch v := val.(type) {
		case map[string]any:
			r.flatten(name+"-", v)

		case []any:
			items := make([]any, 0, len(v))
			for _, item := range v {
				items = append(items, scalar(item))
			}

			r[name] = items

		default:
			r[name] = scalar(v)
		}
	}
}

// bindings converts a mapping of variable names to numbers into NAME=VALUE
// strings accepted by [cmd.ParseBindings], sorted by name.
func bindings(vars map[string]any) []any {
	items := make([]any, 0, len(vars))

	for _, name := range slices.Sorted(maps.Keys(vars)) {
		var value string

		switch v := vars[name].(type) {
		case int:
			value = strconv.Itoa(v)

		case int64:
			value = lang.Int(v).String()

		case uint64:
			value = strconv.FormatUint(v, 10)

		case float64:
			value = lang.Float(v).String()

		default:
			value = fmt.Sprint(v)
		}

		items = append(items, name+"="+value)
	}

	return items
}

// scalar returns v in a form kong can map to a flag value.
// Kong requires numbers as strings for parsing.
func scalar(v any) any {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n)

	case int64:
		return strconv.FormatInt(n, 10)

	case uint64:
		return strconv.FormatUint(n, 10)

	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)

	default:
		return v
	}
}
