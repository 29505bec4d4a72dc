// Package guard wires the ferox package's InterruptGuard into the process's
// OS signal handling. It is the CLI-side half of spec §4.6: the core only
// specifies the shared cell and its locking discipline; something has to
// call os/signal.Notify and translate SIGINT/SIGTERM into Guard.Cancel().
package guard

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/Freedom18946/ferox-encryptor"
)

// Manager tracks every InterruptGuard currently in flight (one per active
// worker) and cancels all of them when the process receives SIGINT or
// SIGTERM.
type Manager struct {
	mu     sync.Mutex
	active map[*ferox.InterruptGuard]struct{}
}

// Install starts the signal-handling goroutine and returns a Manager that
// callers register their per-operation guards with. There is exactly one
// Manager per process.
func Install() *Manager {
	m := &Manager{active: make(map[*ferox.InterruptGuard]struct{})}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logrus.Warn("interrupt received, cleaning up in-flight output files")
		m.cancelAll()
		os.Exit(130)
	}()

	return m
}

// New returns a fresh *ferox.InterruptGuard registered with the manager, for
// callers about to start one Encrypt/Decrypt/batch worker.
func (m *Manager) New() *ferox.InterruptGuard {
	g := ferox.NewInterruptGuard()
	m.mu.Lock()
	m.active[g] = struct{}{}
	m.mu.Unlock()
	return g
}

// Release removes a guard from tracking once its operation has finished,
// successfully or not.
func (m *Manager) Release(g *ferox.InterruptGuard) {
	m.mu.Lock()
	delete(m.active, g)
	m.mu.Unlock()
}

func (m *Manager) cancelAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for g := range m.active {
		g.Cancel()
	}
}
