// Package cmd implements the arith subcommands: eval, fmt, init, and repl.
//
// Commands receive their dependencies through [context.Context]: the parsed
// [kong.Context] ([WithContext]), variable bindings from the command line and
// configuration file ([WithVars]), parser options ([WithOptions]), and the
// standard streams ([WithStreams]).
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"

	// VarFlag is the name of the repeatable NAME=VALUE binding flag.
	VarFlag = "var"

	// VarsKey is the configuration file key holding a mapping of default
	// variable bindings, applied to the flag named by VarFlag.
	VarsKey = "vars"
)
