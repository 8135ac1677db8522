package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// Prefix returns the base name used for the configuration and cache
// directories.
//
// By default, Prefix is the base name of the executable file unless it matches
// one of the following substitution rules:
//   - "__debug_bin" (default output of the dlv debugger): replaced with [Name]
//   - "^\.+" (dot-prefixed names): remove the dot prefix
//
// An executable name that is empty after substitution falls back to [Name].
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		exe, err := os.Executable()
		if err == nil {
			id = exe
		}

		id = strings.TrimSuffix(filepath.Base(id), filepath.Ext(id))

		for _, sub := range []struct {
			rex *regexp.Regexp
			rep string
		}{
			{regexp.MustCompile(`^__debug_bin\d+$`), Name}, // default output from dlv
			{regexp.MustCompile(`^\.+`), ""},               // remove leading dot(s)
		} {
			id = sub.rex.ReplaceAllString(id, sub.rep)
		}

		if id == "" {
			return Name
		}

		return id
	},
)

// ConfigDir returns the configuration directory path, e.g. ~/.config/arith.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(
	func() string {
		return userDir(os.UserConfigDir, ".config")
	},
)

// CacheDir returns the directory for transient files such as REPL history
// and profiles, e.g. ~/.cache/arith.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(
	func() string {
		return userDir(os.UserCacheDir, ".cache")
	},
)

// userDir returns the [Prefix] subdirectory of the directory reported by
// base. If base fails, the hidden directory fallback in the user's home is
// used, then the working directory.
func userDir(base func() (string, error), fallback string) string {
	dir, err := base()
	if err != nil {
		dir, err = os.UserHomeDir()
		if err == nil {
			dir = filepath.Join(dir, fallback)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, Prefix())
}
