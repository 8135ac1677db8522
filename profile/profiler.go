package profile

// Profiler describes a single profiling session.
type Profiler struct {
	// Mode selects what is profiled; see [Modes].
	Mode string
	// Path is the output directory. Empty uses a temporary directory.
	Path string
	// Quiet suppresses the profiler's own start and stop messages.
	Quiet bool
}

// Stopper ends a profiling session.
type Stopper interface{ Stop() }

// Start begins profiling and returns a handle for stopping it.
//
// An empty or unsupported Mode, or a binary built without the pprof tag,
// yields a no-op handle. Both Start and Stop are always safely callable.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
