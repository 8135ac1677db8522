package cmd

import (
	"context"
	"path/filepath"

	"github.com/ardnew/arith/cli/cmd/repl"
	"github.com/ardnew/arith/log"
)

// Repl starts an interactive session.
type Repl struct {
	History bool `default:"true" help:"Persist input history in the cache directory" negatable:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	var path string

	if dir, ok := kongVar(ctx, CacheIdentifier); ok && r.History {
		path = filepath.Join(dir, repl.HistoryFile)
	}

	return repl.Run(ctx, varsFrom(ctx), path, log.Default(), optionsFrom(ctx)...)
}
