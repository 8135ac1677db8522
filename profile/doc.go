// Package profile provides optional runtime profiling for arith.
//
// Profiling is backed by [github.com/pkg/profile] and compiled in only when
// the binary is built with the "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag, [Modes] is empty and [Profiler.Start] returns a handle
// whose Stop method does nothing.
//
// # Usage
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/arith", Quiet: true}
//	defer p.Start().Stop()
//
// Supported modes with the tag: allocs, block, clock, cpu, goroutine, heap,
// mem, mutex, thread, trace. Inspect output with "go tool pprof".
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
