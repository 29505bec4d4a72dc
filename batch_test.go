package ferox

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S5: batch-encrypt a directory with a.txt, b.log, c.txt.feroxcrypt,
// non-recursive, include ["*.txt"]. Only a.txt is selected.
func TestBatchEncrypt_S5(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.log"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.txt.feroxcrypt"), []byte("c"), 0o644))

	report, err := RunBatch(BatchRequest{
		Root:      dir,
		Recursive: false,
		Includes:  []string{"*.txt"},
		Operation: BatchEncrypt,
		Password:  []byte("pw"),
		Level:     LevelInteractive,
		Workers:   2,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, 2, report.Skipped)

	_, err = os.Stat(filepath.Join(dir, "a.txt.feroxcrypt"))
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, report.Duration, time.Duration(0))
}

// Property 10: a batch with one bad file still processes the rest and the
// report lists exactly one failure.
func TestBatchFaultIsolation(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"one.txt", "two.txt", "three.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}
	// Pre-create the output for two.txt so its encryption fails with
	// OutputExists.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "two.txt.feroxcrypt"), []byte("stale"), 0o644))

	report, err := RunBatch(BatchRequest{
		Root:      dir,
		Operation: BatchEncrypt,
		Password:  []byte("pw"),
		Level:     LevelInteractive,
		Workers:   1,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, report.Processed)
	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Failures, 1)
	assert.Contains(t, report.Failures[0].Path, "two.txt")
}

func TestBatchDecrypt_ExcludeWinsOverInclude(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("keep"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.txt"), []byte("skip"), 0o644))

	require.NoError(t, Encrypt(EncryptRequest{SourcePath: filepath.Join(dir, "keep.txt"), Password: []byte("pw"), Level: LevelInteractive}))
	require.NoError(t, Encrypt(EncryptRequest{SourcePath: filepath.Join(dir, "skip.txt"), Password: []byte("pw"), Level: LevelInteractive}))
	require.NoError(t, os.Remove(filepath.Join(dir, "keep.txt")))
	require.NoError(t, os.Remove(filepath.Join(dir, "skip.txt")))

	report, err := RunBatch(BatchRequest{
		Root:      dir,
		Operation: BatchDecrypt,
		Includes:  []string{"*.txt.feroxcrypt"},
		Excludes:  []string{"skip.*"},
		Password:  []byte("pw"),
		Level:     LevelInteractive,
		Workers:   2,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 1, report.Skipped)

	_, err = os.Stat(filepath.Join(dir, "keep.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "skip.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestBatchDryRun_DoesNotWrite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))

	report, err := RunBatch(BatchRequest{
		Root:      dir,
		Operation: BatchEncrypt,
		Password:  []byte("pw"),
		Level:     LevelInteractive,
		Workers:   1,
		DryRun:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Succeeded)

	_, err = os.Stat(filepath.Join(dir, "a.txt.feroxcrypt"))
	assert.True(t, os.IsNotExist(err), "dry-run must not write a container")
}

func TestBatchUsesExternalGuardFactory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("b"), 0o644))

	var mu sync.Mutex
	var built, released int

	report, err := RunBatch(BatchRequest{
		Root:      dir,
		Operation: BatchEncrypt,
		Password:  []byte("pw"),
		Level:     LevelInteractive,
		Workers:   2,
		NewGuard: func() *InterruptGuard {
			mu.Lock()
			built++
			mu.Unlock()
			return NewInterruptGuard()
		},
		ReleaseGuard: func(*InterruptGuard) {
			mu.Lock()
			released++
			mu.Unlock()
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Succeeded)
	assert.Positive(t, built, "RunBatch must obtain guards through the supplied factory")
	assert.Equal(t, built, released, "every constructed guard must be released")
}
