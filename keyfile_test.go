package ferox

import (
	"crypto/hmac"
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeyfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "key.bin")

	require.NoError(t, GenerateKeyfile(path, 64, false))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(64), info.Size())
	assert.Equal(t, os.FileMode(0o400), info.Mode().Perm())

	err = GenerateKeyfile(path, 64, false)
	assert.ErrorIs(t, err, ErrOutputExists)

	require.NoError(t, GenerateKeyfile(path, 64, true))
}

func TestGenerateKeyfile_DefaultLength(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "key.bin")
	require.NoError(t, GenerateKeyfile(path, 0, false))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(defaultKeyfileLength), info.Size())
}

func TestLoadKeyfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "key.bin")
	require.NoError(t, GenerateKeyfile(path, 32, false))

	data, err := LoadKeyfile(path)
	require.NoError(t, err)
	assert.Len(t, data, 32)
}

func TestLoadKeyfile_Empty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, err := LoadKeyfile(path)
	assert.ErrorIs(t, err, ErrKeyfileError)
}

func TestLoadKeyfile_Missing(t *testing.T) {
	_, err := LoadKeyfile(filepath.Join(t.TempDir(), "nope.bin"))
	assert.ErrorIs(t, err, ErrKeyfileError)
}

func TestMixPassword(t *testing.T) {
	keyfileBytes := []byte("a fixed 64 byte keyfile stand-in used only for deterministic testing")
	password := []byte("correct horse battery staple")

	mixed := mixPassword(keyfileBytes, password)
	assert.Len(t, mixed, 32)

	want := hmac.New(sha256.New, keyfileBytes)
	want.Write(password)
	assert.Equal(t, want.Sum(nil), mixed)

	// Deterministic in (keyfile, password).
	again := mixPassword(keyfileBytes, password)
	assert.Equal(t, mixed, again)

	// A different keyfile produces a different mix.
	other := mixPassword([]byte("a different 64 byte keyfile stand-in for the same test password!!"), password)
	assert.NotEqual(t, mixed, other)
}
