package ferox

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a Ferox error into the taxonomy of spec §7. Callers
// (the CLI collaborator, tests) switch on Kind rather than on error strings.
type ErrorKind uint8

const (
	// KindInputNotFound: source or container path missing.
	KindInputNotFound ErrorKind = iota
	// KindInputNotRegularFile: path is a directory, symlink to a non-file, etc.
	KindInputNotRegularFile
	// KindAlreadyEncrypted: encrypt target already ends in .feroxcrypt.
	KindAlreadyEncrypted
	// KindOutputExists: destination present and force_overwrite is false.
	KindOutputExists
	// KindFilenameTooLong: basename exceeds 65535 UTF-8 bytes.
	KindFilenameTooLong
	// KindMalformedContainer: truncated header, bad filename_length, non-UTF-8
	// filename, path separator in filename, negative ciphertext length, or
	// absurd KDF parameters.
	KindMalformedContainer
	// KindAuthenticationFailed: HMAC mismatch. Deliberately does not
	// distinguish wrong password from tampering.
	KindAuthenticationFailed
	// KindKeyfileError: keyfile missing, empty, or unreadable.
	KindKeyfileError
	// KindIOError: read/write/flush/remove failure from the OS.
	KindIOError
	// KindInterrupted: operation cancelled via the Interrupt Guard.
	KindInterrupted
	// KindInternalCryptoError: CSPRNG failure, Argon2 parameter rejection, etc.
	KindInternalCryptoError
)

func (k ErrorKind) String() string {
	switch k {
	case KindInputNotFound:
		return "input_not_found"
	case KindInputNotRegularFile:
		return "input_not_regular_file"
	case KindAlreadyEncrypted:
		return "already_encrypted"
	case KindOutputExists:
		return "output_exists"
	case KindFilenameTooLong:
		return "filename_too_long"
	case KindMalformedContainer:
		return "malformed_container"
	case KindAuthenticationFailed:
		return "authentication_failed"
	case KindKeyfileError:
		return "keyfile_error"
	case KindIOError:
		return "io_error"
	case KindInterrupted:
		return "interrupted"
	case KindInternalCryptoError:
		return "internal_crypto_error"
	default:
		return "unknown"
	}
}

// Error is the structured error type returned across the core API. Its
// message is sanitized: it never contains key material, derived keys,
// password bytes, or internal buffer contents (spec §7).
type Error struct {
	Kind ErrorKind
	Path string // file path, if applicable
	msg  string
	err  error // underlying error, if any
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("ferox: %s: %s: %s", e.Kind, e.Path, e.msg)
	}
	return fmt.Sprintf("ferox: %s: %s", e.Kind, e.msg)
}

func (e *Error) Unwrap() error { return e.err }

// newErr builds a structured Error, wrapping the sentinel matching its Kind
// so errors.Is against Err* sentinels below keeps working.
func newErr(kind ErrorKind, path string, msg string, cause error) *Error {
	e := &Error{Kind: kind, Path: path, msg: msg, err: sentinelFor(kind)}
	if cause != nil {
		e.err = fmt.Errorf("%w: %v", e.err, cause)
	}
	return e
}

// sentinelFor lets errors.Is(err, ferox.ErrAuthenticationFailed) succeed
// against a structured *Error without callers needing to compare Kind.
func sentinelFor(kind ErrorKind) error {
	switch kind {
	case KindInputNotFound:
		return ErrInputNotFound
	case KindInputNotRegularFile:
		return ErrInputNotRegularFile
	case KindAlreadyEncrypted:
		return ErrAlreadyEncrypted
	case KindOutputExists:
		return ErrOutputExists
	case KindFilenameTooLong:
		return ErrFilenameTooLong
	case KindMalformedContainer:
		return ErrMalformedContainer
	case KindAuthenticationFailed:
		return ErrAuthenticationFailed
	case KindKeyfileError:
		return ErrKeyfileError
	case KindIOError:
		return ErrIOError
	case KindInterrupted:
		return ErrInterrupted
	case KindInternalCryptoError:
		return ErrInternalCryptoError
	default:
		return nil
	}
}

// Sentinel errors, one per ErrorKind, so callers can use errors.Is.
var (
	ErrInputNotFound        = errors.New("input not found")
	ErrInputNotRegularFile  = errors.New("input is not a regular file")
	ErrAlreadyEncrypted     = errors.New("source already ends in .feroxcrypt")
	ErrOutputExists         = errors.New("output already exists")
	ErrFilenameTooLong      = errors.New("filename exceeds 65535 UTF-8 bytes")
	ErrMalformedContainer   = errors.New("malformed container")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrKeyfileError         = errors.New("keyfile error")
	ErrIOError              = errors.New("io error")
	ErrInterrupted          = errors.New("operation interrupted")
	ErrInternalCryptoError  = errors.New("internal crypto error")

	// ErrInvalidParameter guards constructor arguments (e.g. an unknown
	// SecurityLevel); it is a caller-programming-error class, not part of
	// the spec §7 taxonomy proper, but is wrapped the same way.
	ErrInvalidParameter = errors.New("invalid parameter")
)

func errInputNotFound(path string, cause error) error {
	return newErr(KindInputNotFound, path, "no such file", cause)
}

func errInputNotRegularFile(path string) error {
	return newErr(KindInputNotRegularFile, path, "not a regular file", nil)
}

func errAlreadyEncrypted(path string) error {
	return newErr(KindAlreadyEncrypted, path, "already ends in .feroxcrypt", nil)
}

func errOutputExists(path string) error {
	return newErr(KindOutputExists, path, "refusing to overwrite without force", nil)
}

func errFilenameTooLong(path string, length int) error {
	return newErr(KindFilenameTooLong, path, fmt.Sprintf("basename is %d bytes, limit is 65535", length), nil)
}

func errMalformedContainer(path string, reason string) error {
	return newErr(KindMalformedContainer, path, reason, nil)
}

func errAuthenticationFailed(path string) error {
	return newErr(KindAuthenticationFailed, path, "MAC verification failed", nil)
}

func errKeyfileError(path string, reason string, cause error) error {
	return newErr(KindKeyfileError, path, reason, cause)
}

func errIO(path string, op string, cause error) error {
	e := newErr(KindIOError, path, fmt.Sprintf("%s failed", op), cause)
	e.err = fmt.Errorf("%w: %v", ErrIOError, cause)
	return e
}

func errInterrupted(path string) error {
	return newErr(KindInterrupted, path, "cancelled via interrupt guard", nil)
}

func errInternalCrypto(reason string, cause error) error {
	e := newErr(KindInternalCryptoError, "", reason, cause)
	if cause != nil {
		e.err = fmt.Errorf("%w: %v", ErrInternalCryptoError, cause)
	}
	return e
}
