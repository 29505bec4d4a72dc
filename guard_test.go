package ferox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterruptGuard_CancelUnlinksRegisteredPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in-flight.feroxcrypt")
	require.NoError(t, os.WriteFile(path, []byte("partial"), 0o644))

	g := NewInterruptGuard()
	g.register(path)
	g.Cancel()

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.True(t, g.Cancelled())
}

func TestInterruptGuard_ClearPreventsUnlink(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "done.feroxcrypt")
	require.NoError(t, os.WriteFile(path, []byte("finished"), 0o644))

	g := NewInterruptGuard()
	g.register(path)
	g.clear()
	g.Cancel()

	_, err := os.Stat(path)
	assert.NoError(t, err, "clear before cancel must leave a successfully-finished file alone")
}

func TestInterruptGuard_CancelWithNoRegisteredPath(t *testing.T) {
	g := NewInterruptGuard()
	assert.NotPanics(t, func() { g.Cancel() })
	assert.True(t, g.Cancelled())
}
