package cli

import (
	"os"
	"path/filepath"

	"github.com/ardnew/arith/pkg"
)

// baseConfig is the base name of the configuration file.
const baseConfig = "config"

// DefaultDirMode is the default permission mode for created directories.
var defaultDirMode os.FileMode = 0o700

// configPath returns the absolute path to a file or directory formed by joining
// the global configuration directory path with the given path elements.
//
// If no elements are given, it is equivalent to calling [pkg.ConfigDir].
func configPath(elem ...string) string {
	return filepath.Join(append([]string{pkg.ConfigDir()}, elem...)...)
}

// mkdirAllRequired creates all required runtime directories.
func mkdirAllRequired() error {
	for _, dir := range []string{pkg.ConfigDir(), pkg.CacheDir()} {
		err := os.MkdirAll(dir, defaultDirMode)
		if err != nil {
			return pkg.ErrCreateDir.Wrapf("%s: %w", dir, err)
		}
	}

	return nil
}
