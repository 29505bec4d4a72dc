package ferox

import (
	"os"
	"sync"
)

// InterruptGuard is the shared "currently open output path" cell described
// in spec §4.6. A worker registers its output path before writing and
// clears it on success; an externally installed signal handler (the CLI
// collaborator) calls Cancel to unlink whatever path is currently
// registered, from any goroutine, without coordinating with the worker
// beyond this type's own mutex.
//
// The guard holds one path, not a set: the core never splits one file
// across workers, so one worker owns one guard at a time. A batch driver
// running N workers in parallel gives each its own *InterruptGuard.
type InterruptGuard struct {
	mu        sync.Mutex
	path      string
	cancelled bool
}

// NewInterruptGuard returns a guard with no path registered.
func NewInterruptGuard() *InterruptGuard {
	return &InterruptGuard{}
}

// register records path as the in-flight output. Called once a worker has
// opened its destination file for writing.
func (g *InterruptGuard) register(path string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.path = path
}

// clear removes the registration after a successful, fully-flushed write.
func (g *InterruptGuard) clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.path = ""
}

// Cancel is safe to call from a signal handler. It unlinks the currently
// registered output, if any, and marks the guard cancelled so the worker's
// next I/O can observe it and stop early.
func (g *InterruptGuard) Cancel() {
	g.mu.Lock()
	path := g.path
	g.path = ""
	g.cancelled = true
	g.mu.Unlock()

	if path != "" {
		_ = os.Remove(path)
	}
}

// Cancelled reports whether Cancel has been called on this guard. Workers
// poll this between buffer iterations so a cancellation mid-stream stops
// promptly instead of running to EOF.
func (g *InterruptGuard) Cancelled() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cancelled
}

// cleanup removes path unconditionally; used on error paths that discover
// a failure themselves (not via the signal handler) after having already
// registered an output.
func (g *InterruptGuard) cleanup(path string) {
	if path == "" {
		return
	}
	_ = os.Remove(path)
}
