// Package cli contains the command line interface for arith.
//
// # Usage
//
//	arith [flags] [<command>]
//
// With no command, arith starts an interactive session (see the repl
// command). The other commands are:
//
//   - eval: evaluate an expression with optional NAME=VALUE bindings
//   - fmt: print the expression tree as native text, JSON, YAML, or Go syntax
//   - init: write the current flag values to the YAML configuration file
//
// # Variables
//
// Variables bound with --var (or -D) are visible to every command.
// Bindings given to eval after the expression take precedence:
//
//	arith -D x=3 eval 'x * y' y=4
//
// # Configuration
//
// Flag defaults are read from config.json and config.yaml in the user
// configuration directory (e.g. ~/.config/arith). The YAML file may nest
// keys by flag prefix and binds default variables under "vars":
//
//	log:
//	  level: debug
//	max-depth: 64
//	vars:
//	  x: 12
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o arith .
//
//   - --pprof-mode: Enable profiling (block, cpu, goroutine, mem, mutex,
//     thread, trace, ...)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/arith/pprof)
package cli
