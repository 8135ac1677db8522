package lang

import (
	"bytes"
	"context"
	"encoding/gob"
	"log/slog"
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"
)

// globalCache stores parse results keyed by the hash of source and options.
var globalCache sync.Map

// state holds the result of parsing one source with one set of options.
// The tree it holds is never handed out directly; callers receive clones.
type state struct {
	once   sync.Once
	source string
	node   Node
	err    error
}

// hashOptions encodes the options that affect parsing using gob and hashes
// the result with xxh3.
func hashOptions(o options) uint64 {
	var buf bytes.Buffer

	enc := gob.NewEncoder(&buf)

	_ = enc.Encode(o.maxDepth)

	return xxh3.Hash(buf.Bytes())
}

// cacheKey returns the key identifying source parsed with o.
func cacheKey(source string, o options) string {
	sourceHash := xxh3.HashString(source)

	return strconv.FormatUint(sourceHash^hashOptions(o), 36)
}

// parseCached parses source at most once per distinct (source, options)
// pair and returns a private copy of the result.
func parseCached(ctx context.Context, source string, o options) (Node, error) {
	key := cacheKey(source, o)

	entry := &state{source: source}
	value, hit := globalCache.LoadOrStore(key, entry)

	cached, ok := value.(*state)
	if !ok || cached.source != source {
		// Hash collision with a different source.
		o.logger.TraceContext(ctx, "cache bypass",
			slog.String("key", key))

		return parse(ctx, source, o)
	}

	o.logger.TraceContext(ctx, "cache lookup",
		slog.String("key", key),
		slog.Bool("cache_hit", hit))

	cached.once.Do(func() {
		cached.node, cached.err = parse(ctx, source, o)
	})

	if cached.err != nil {
		return nil, cached.err
	}

	return Clone(cached.node), nil
}

// ClearCache removes all cached parse results.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache.Clear()
}
