package ferox

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"io"
	"os"
)

// defaultKeyfileLength is the recommended keyfile size (spec §3, "Keyfile").
const defaultKeyfileLength = 64

// maxKeyfileBytes caps how much of a keyfile Load will read, guarding
// against a caller accidentally pointing --keyfile at a multi-gigabyte
// file.
const maxKeyfileBytes = 1 << 20 // 1 MiB

// GenerateKeyfile draws length bytes from the system CSPRNG and writes them
// to path with owner-only permissions. length <= 0 uses the recommended
// default of 64 bytes. Fails with ErrOutputExists if path already exists
// and forceOverwrite is false.
func GenerateKeyfile(path string, length int, forceOverwrite bool) error {
	if length <= 0 {
		length = defaultKeyfileLength
	}
	if !forceOverwrite {
		if _, err := os.Stat(path); err == nil {
			return errOutputExists(path)
		} else if !os.IsNotExist(err) {
			return errIO(path, "stat", err)
		}
	} else {
		// A keyfile from a prior run is chmod'd 0400 below; restore write
		// access before reopening it so O_TRUNC doesn't fail with EACCES.
		if err := os.Chmod(path, 0o600); err != nil && !os.IsNotExist(err) {
			return errIO(path, "chmod", err)
		}
	}

	buf := make([]byte, length)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return errInternalCrypto("failed to read from system CSPRNG", err)
	}
	defer secureZero(buf)

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !forceOverwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o600)
	if err != nil {
		if os.IsExist(err) {
			return errOutputExists(path)
		}
		return errIO(path, "open", err)
	}
	defer f.Close()

	if _, err := f.Write(buf); err != nil {
		return errIO(path, "write", err)
	}
	if err := f.Sync(); err != nil {
		return errIO(path, "sync", err)
	}
	// Owner-only read permissions once the content is safely on disk
	// (spec §3, "Keyfile"): the write-then-restrict order matters because
	// some OSes reject further writes to an fd whose mode has already
	// dropped write bits.
	if err := f.Chmod(0o400); err != nil {
		return errIO(path, "chmod", err)
	}
	return nil
}

// LoadKeyfile reads the entire contents of a keyfile as opaque secret
// bytes. The caller owns the returned slice and should zero it once the
// derived password mix has been computed.
func LoadKeyfile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errKeyfileError(path, "no such file", err)
		}
		return nil, errKeyfileError(path, "cannot stat", err)
	}
	if info.Size() == 0 {
		return nil, errKeyfileError(path, "keyfile is empty", nil)
	}
	if info.Size() > maxKeyfileBytes {
		return nil, errKeyfileError(path, "keyfile exceeds 1 MiB sanity limit", nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errKeyfileError(path, "cannot read", err)
	}
	return data, nil
}

// mixPassword implements spec §4.2's MixPassword: HMAC-SHA256(keyfile_bytes
// as key, password_bytes as message). Deterministic in (keyfile, password);
// the 32-byte result is what actually reaches Argon2id when a keyfile is
// present.
func mixPassword(keyfileBytes, passwordBytes []byte) []byte {
	mac := hmac.New(sha256.New, keyfileBytes)
	mac.Write(passwordBytes)
	return mac.Sum(nil)
}
