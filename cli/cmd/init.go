package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/arith/log"
	"github.com/ardnew/arith/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	confPath, ok := kongVar(ctx, ConfigIdentifier)
	if !ok {
		panic("internal error: config path undefined")
	}

	// Check if file exists and force not set
	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	data, err := yaml.MarshalContext(ctx, i.buildConfig(ctx),
		yaml.Indent(defaultConfigIndent),
		yaml.IndentSequence(true),
	)
	if err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	err = os.WriteFile(confPath, data, 0o600)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// buildConfig constructs the config document from current flag values.
func (i *Init) buildConfig(ctx context.Context) yaml.MapSlice {
	ktx := kongContextFrom(ctx)

	var doc yaml.MapSlice

	prefixIgnore := []string{"help", "version", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		val := ktx.FlagValue(flag)

		if flag.Name == VarFlag {
			if vars := i.varsValue(ctx, val); len(vars) > 0 {
				doc = append(doc, yaml.MapItem{Key: VarsKey, Value: vars})
			}

			continue
		}

		if v := flagValue(val); v != nil {
			doc = append(doc, yaml.MapItem{Key: flag.Name, Value: v})
		}
	}

	return doc
}

// varsValue converts NAME=VALUE bindings into a mapping sorted by name.
// Invalid bindings are dropped with a warning.
func (i *Init) varsValue(ctx context.Context, val any) yaml.MapSlice {
	bindings, _ := val.([]string)

	vars, err := ParseBindings(bindings)
	if err != nil {
		log.WarnContext(ctx, "ignoring variable bindings",
			slog.Any("error", err))

		return nil
	}

	doc := make(yaml.MapSlice, 0, len(vars))
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		doc = append(doc, yaml.MapItem{Key: name, Value: vars[name].Native()})
	}

	return doc
}

// flagValue returns the YAML value for a CLI flag, or nil if unset.
// Named types (e.g. enum flags backed by string) are reduced to their kind.
func flagValue(val any) any {
	rv := reflect.ValueOf(val)

	switch rv.Kind() {
	case reflect.Invalid:
		return nil

	case reflect.Bool:
		return rv.Bool()

	case reflect.String:
		if rv.Len() == 0 {
			return nil
		}

		return rv.String()

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint()

	case reflect.Float32, reflect.Float64:
		return rv.Float()

	case reflect.Slice:
		if rv.Len() == 0 {
			return nil
		}

		items := make([]any, 0, rv.Len())

		for i := range rv.Len() {
			if item := flagValue(rv.Index(i).Interface()); item != nil {
				items = append(items, item)
			}
		}

		return items

	default:
		return fmt.Sprint(val)
	}
}
