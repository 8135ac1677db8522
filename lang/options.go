package lang

import (
	"github.com/ardnew/arith/log"
)

// DefaultMaxDepth is the default maximum nesting depth of parentheses and
// negations accepted by the parser.
// Users may modify this before parsing to change the default.
var DefaultMaxDepth = 1000

// Option configures parsing, evaluation, or simplification.
type Option func(*options)

type options struct {
	logger   log.Logger
	maxDepth int
	cache    bool
}

func makeOptions(opts ...Option) options {
	o := options{
		maxDepth: DefaultMaxDepth,
		cache:    true,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithLogger sets the structured logger used for trace output.
// The zero [log.Logger] discards everything.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMaxDepth sets the maximum nesting depth accepted by the parser.
// Values less than 1 disable the limit.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// WithCache controls whether [ParseString] consults the parse cache.
func WithCache(enable bool) Option {
	return func(o *options) {
		o.cache = enable
	}
}
