package ferox

import (
	"bufio"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ioBufferSize bounds peak memory during streaming (spec §5, "Resource
// bounds"): RAM usage is O(BUFFER + argon2_memory) regardless of file size.
const ioBufferSize = 4 << 20 // 4 MiB

// EncryptRequest carries the inputs to Encrypt (spec §4.4).
type EncryptRequest struct {
	SourcePath     string
	ForceOverwrite bool
	Password       []byte
	Level          SecurityLevel
	// Keyfile is a path to an optional keyfile; empty means none.
	Keyfile string
	// Guard receives the in-flight output path so an external signal
	// handler can unlink it on cancellation. A nil Guard gets a private
	// one that nothing else can cancel.
	Guard    *InterruptGuard
	Progress ProgressSink
}

// DecryptRequest carries the inputs to Decrypt (spec §4.5).
type DecryptRequest struct {
	ContainerPath  string
	ForceOverwrite bool
	Password       []byte
	Keyfile        string
	Guard          *InterruptGuard
	Progress       ProgressSink
}

// Encrypt streams SourcePath through AES-256-CTR keyed by a password (and
// optional keyfile), feeds every emitted byte through HMAC-SHA256, and
// writes the result to SourcePath+".feroxcrypt". On any failure after the
// output file is created, the partial output is removed before returning.
func Encrypt(req EncryptRequest) error {
	info, err := os.Stat(req.SourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return errInputNotFound(req.SourcePath, err)
		}
		return errIO(req.SourcePath, "stat", err)
	}
	if !info.Mode().IsRegular() {
		return errInputNotRegularFile(req.SourcePath)
	}
	if strings.HasSuffix(req.SourcePath, containerExt) {
		return errAlreadyEncrypted(req.SourcePath)
	}

	basename := filepath.Base(req.SourcePath)
	if err := validateOriginalFilename(basename); err != nil {
		return err
	}

	outputPath := containerPathFor(req.SourcePath)
	if !req.ForceOverwrite {
		if _, err := os.Stat(outputPath); err == nil {
			return errOutputExists(outputPath)
		} else if !os.IsNotExist(err) {
			return errIO(outputPath, "stat", err)
		}
	}

	params, err := req.Level.Params()
	if err != nil {
		return err
	}

	var salt, iv [16]byte
	if _, err := io.ReadFull(rand.Reader, salt[:]); err != nil {
		return errInternalCrypto("failed to read salt from system CSPRNG", err)
	}
	if _, err := io.ReadFull(rand.Reader, iv[:]); err != nil {
		return errInternalCrypto("failed to read iv from system CSPRNG", err)
	}

	defer secureZero(req.Password)

	passwordBytes := req.Password
	var keyfileBytes []byte
	if req.Keyfile != "" {
		keyfileBytes, err = LoadKeyfile(req.Keyfile)
		if err != nil {
			return err
		}
		defer secureZero(keyfileBytes)
		mixed := mixPassword(keyfileBytes, req.Password)
		defer secureZero(mixed)
		passwordBytes = mixed
	}

	keys, err := deriveKeys(passwordBytes, salt[:], params)
	if err != nil {
		return err
	}
	defer keys.zero()

	in, err := os.Open(req.SourcePath)
	if err != nil {
		return errIO(req.SourcePath, "open", err)
	}
	defer in.Close()

	guard := req.Guard
	if guard == nil {
		guard = NewInterruptGuard()
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !req.ForceOverwrite {
		flags |= os.O_EXCL
	}
	out, err := os.OpenFile(outputPath, flags, 0o600)
	if err != nil {
		if os.IsExist(err) {
			return errOutputExists(outputPath)
		}
		return errIO(outputPath, "open", err)
	}
	guard.register(outputPath)

	fail := func(cause error) error {
		out.Close()
		guard.cleanup(outputPath)
		guard.clear()
		return cause
	}

	hdr := &header{originalFilename: basename, salt: salt, iv: iv, kdf: params}
	mac := hmac.New(sha256.New, keys.macKey)
	bw := bufio.NewWriterSize(out, ioBufferSize)
	mw := io.MultiWriter(bw, mac)
	if _, err := hdr.writeTo(mw); err != nil {
		return fail(errIO(outputPath, "write header", err))
	}

	block, err := aes.NewCipher(keys.encKey)
	if err != nil {
		return fail(errInternalCrypto("failed to initialize AES cipher", err))
	}
	stream := cipher.NewCTR(block, iv[:])

	progress := progressOrNoop(req.Progress)
	buf := make([]byte, ioBufferSize)
	defer secureZero(buf)
	var processed int64

	for {
		if guard.Cancelled() {
			return fail(errInterrupted(outputPath))
		}
		n, readErr := in.Read(buf)
		if n > 0 {
			stream.XORKeyStream(buf[:n], buf[:n])
			if _, err := bw.Write(buf[:n]); err != nil {
				return fail(errIO(outputPath, "write", err))
			}
			mac.Write(buf[:n])
			processed += int64(n)
			progress.OnBytes(n)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return fail(errIO(req.SourcePath, "read", readErr))
		}
	}

	tag := mac.Sum(nil)
	if _, err := bw.Write(tag); err != nil {
		return fail(errIO(outputPath, "write tag", err))
	}
	if err := bw.Flush(); err != nil {
		return fail(errIO(outputPath, "flush", err))
	}
	if err := out.Sync(); err != nil {
		return fail(errIO(outputPath, "sync", err))
	}
	if err := out.Close(); err != nil {
		guard.cleanup(outputPath)
		guard.clear()
		return errIO(outputPath, "close", err)
	}
	guard.clear()

	progress.OnFinish(processed)
	return nil
}

// Decrypt parses a container's header, re-derives keys, and streams
// plaintext to disk while verifying the HMAC-SHA256 tag in one pass
// (streamed-with-rollback, spec §4.5 step 7). A tag mismatch removes the
// partially written output before returning ErrAuthenticationFailed; no
// plaintext byte survives a failed verification.
func Decrypt(req DecryptRequest) error {
	info, err := os.Stat(req.ContainerPath)
	if err != nil {
		if os.IsNotExist(err) {
			return errInputNotFound(req.ContainerPath, err)
		}
		return errIO(req.ContainerPath, "stat", err)
	}
	if !info.Mode().IsRegular() {
		return errInputNotRegularFile(req.ContainerPath)
	}
	if info.Size() < int64(minContainerSize) {
		return errMalformedContainer(req.ContainerPath, "container is smaller than the minimum possible size")
	}

	in, err := os.Open(req.ContainerPath)
	if err != nil {
		return errIO(req.ContainerPath, "open", err)
	}
	defer in.Close()

	br := bufio.NewReaderSize(in, ioBufferSize)
	hdr, headerLen, err := readHeader(br, req.ContainerPath)
	if err != nil {
		return err
	}

	ciphertextLen := info.Size() - headerLen - int64(tagSize)
	if ciphertextLen < 0 {
		return errMalformedContainer(req.ContainerPath, "negative ciphertext length")
	}

	defer secureZero(req.Password)

	passwordBytes := req.Password
	var keyfileBytes []byte
	if req.Keyfile != "" {
		keyfileBytes, err = LoadKeyfile(req.Keyfile)
		if err != nil {
			return err
		}
		defer secureZero(keyfileBytes)
		mixed := mixPassword(keyfileBytes, req.Password)
		defer secureZero(mixed)
		passwordBytes = mixed
	}

	keys, err := deriveKeys(passwordBytes, hdr.salt[:], hdr.kdf)
	if err != nil {
		return err
	}
	defer keys.zero()

	outputPath := plaintextPathFor(req.ContainerPath, hdr.originalFilename)
	if !req.ForceOverwrite {
		if _, err := os.Stat(outputPath); err == nil {
			return errOutputExists(outputPath)
		} else if !os.IsNotExist(err) {
			return errIO(outputPath, "stat", err)
		}
	}

	block, err := aes.NewCipher(keys.encKey)
	if err != nil {
		return errInternalCrypto("failed to initialize AES cipher", err)
	}
	stream := cipher.NewCTR(block, hdr.iv[:])

	mac := hmac.New(sha256.New, keys.macKey)
	if _, err := hdr.writeTo(mac); err != nil {
		return errInternalCrypto("failed to reconstruct header for verification", err)
	}

	guard := req.Guard
	if guard == nil {
		guard = NewInterruptGuard()
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !req.ForceOverwrite {
		flags |= os.O_EXCL
	}
	out, err := os.OpenFile(outputPath, flags, 0o600)
	if err != nil {
		if os.IsExist(err) {
			return errOutputExists(outputPath)
		}
		return errIO(outputPath, "open", err)
	}
	guard.register(outputPath)

	fail := func(cause error) error {
		out.Close()
		guard.cleanup(outputPath)
		guard.clear()
		return cause
	}

	progress := progressOrNoop(req.Progress)
	buf := make([]byte, ioBufferSize)
	defer secureZero(buf)
	bw := bufio.NewWriterSize(out, ioBufferSize)
	var processed, remaining int64 = 0, ciphertextLen

	for remaining > 0 {
		if guard.Cancelled() {
			return fail(errInterrupted(outputPath))
		}
		chunkSize := int64(len(buf))
		if remaining < chunkSize {
			chunkSize = remaining
		}
		n, err := io.ReadFull(br, buf[:chunkSize])
		if err != nil {
			return fail(errMalformedContainer(req.ContainerPath, "truncated ciphertext"))
		}
		mac.Write(buf[:n])
		stream.XORKeyStream(buf[:n], buf[:n])
		if _, err := bw.Write(buf[:n]); err != nil {
			return fail(errIO(outputPath, "write", err))
		}
		processed += int64(n)
		remaining -= int64(n)
		progress.OnBytes(n)
	}

	var tag [tagSize]byte
	if _, err := io.ReadFull(br, tag[:]); err != nil {
		return fail(errMalformedContainer(req.ContainerPath, "truncated tag"))
	}
	computed := mac.Sum(nil)
	if !hmac.Equal(computed, tag[:]) {
		return fail(errAuthenticationFailed(req.ContainerPath))
	}

	if err := bw.Flush(); err != nil {
		return fail(errIO(outputPath, "flush", err))
	}
	if err := out.Sync(); err != nil {
		return fail(errIO(outputPath, "sync", err))
	}
	if err := out.Close(); err != nil {
		guard.cleanup(outputPath)
		guard.clear()
		return errIO(outputPath, "close", err)
	}
	guard.clear()

	progress.OnFinish(processed)
	return nil
}
