package ferox

import (
	"encoding/binary"
	"io"
	"path/filepath"
)

// containerExt is appended to a source path to produce its container path
// (spec §4.4).
const containerExt = ".feroxcrypt"

// tagSize is the HMAC-SHA256 tag length appended to every container.
const tagSize = 32

// minContainerSize is the smallest possible container: a 1-byte filename,
// salt, iv, three KDF fields, zero ciphertext bytes, and a tag
// (2 + 1 + 16 + 16 + 12 + 32 = 79, spec §4.5).
const minContainerSize = 2 + 1 + 16 + 16 + 12 + tagSize

// header is the fixed-layout preamble of a container (spec §3). It carries
// no magic number or version byte: the format is bit-exact as specified,
// and routing relies on the .feroxcrypt extension plus HMAC verification.
type header struct {
	originalFilename string
	salt             [16]byte
	iv               [16]byte
	kdf              KDFParams
}

// writeTo serializes the header fields, little-endian, in the exact order
// of spec §3, and returns the number of bytes written. Callers are
// expected to feed every written byte into the running HMAC as it goes
// (step 6 of the encrypt algorithm) rather than buffering the whole header
// first; writeTo itself is a plain io.Writer call so it composes with an
// io.MultiWriter(output, mac).
func (h *header) writeTo(w io.Writer) (int64, error) {
	name := []byte(h.originalFilename)
	if len(name) == 0 || len(name) > maxFilenameBytes {
		return 0, errFilenameTooLong(h.originalFilename, len(name))
	}
	if err := validateSaltAndIV(h.salt[:], h.iv[:]); err != nil {
		return 0, err
	}

	var lenBuf [2]byte
	binary.LittleEndian.PutUint16(lenBuf[:], uint16(len(name)))

	var n int64
	for _, chunk := range [][]byte{lenBuf[:], name, h.salt[:], h.iv[:]} {
		written, err := w.Write(chunk)
		n += int64(written)
		if err != nil {
			return n, err
		}
	}

	var paramBuf [12]byte
	binary.LittleEndian.PutUint32(paramBuf[0:4], h.kdf.MemoryKiB)
	binary.LittleEndian.PutUint32(paramBuf[4:8], h.kdf.TimeCost)
	binary.LittleEndian.PutUint32(paramBuf[8:12], h.kdf.Parallelism)
	written, err := w.Write(paramBuf[:])
	n += int64(written)
	return n, err
}

// size returns the total serialized length of the header in bytes.
func (h *header) size() int {
	return 2 + len(h.originalFilename) + 16 + 16 + 12
}

// readHeader parses a header from r, validating each field as it goes
// (spec §4.5 steps 2–3). It returns the header and the number of bytes
// consumed, which the caller needs to compute the ciphertext length.
func readHeader(r io.Reader, containerPath string) (*header, int64, error) {
	var lenBuf [2]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, 0, errMalformedContainer(containerPath, "truncated before filename_length")
	}
	nameLen := binary.LittleEndian.Uint16(lenBuf[:])
	if nameLen == 0 {
		return nil, 2, errMalformedContainer(containerPath, "filename_length is zero")
	}

	nameBuf := make([]byte, nameLen)
	if _, err := io.ReadFull(r, nameBuf); err != nil {
		return nil, 2, errMalformedContainer(containerPath, "truncated original_filename")
	}
	name := string(nameBuf)
	if err := validateOriginalFilename(name); err != nil {
		if fe, ok := err.(*Error); ok {
			fe.Path = containerPath
		}
		return nil, 2 + int64(nameLen), err
	}

	h := &header{originalFilename: name}
	if _, err := io.ReadFull(r, h.salt[:]); err != nil {
		return nil, 0, errMalformedContainer(containerPath, "truncated salt")
	}
	if _, err := io.ReadFull(r, h.iv[:]); err != nil {
		return nil, 0, errMalformedContainer(containerPath, "truncated iv")
	}
	if err := validateSaltAndIV(h.salt[:], h.iv[:]); err != nil {
		return nil, 0, err
	}

	var paramBuf [12]byte
	if _, err := io.ReadFull(r, paramBuf[:]); err != nil {
		return nil, 0, errMalformedContainer(containerPath, "truncated KDF parameters")
	}
	h.kdf = KDFParams{
		MemoryKiB:   binary.LittleEndian.Uint32(paramBuf[0:4]),
		TimeCost:    binary.LittleEndian.Uint32(paramBuf[4:8]),
		Parallelism: binary.LittleEndian.Uint32(paramBuf[8:12]),
	}
	if err := h.kdf.Validate(); err != nil {
		return nil, 0, errMalformedContainer(containerPath, "KDF parameters out of range")
	}

	return h, int64(h.size()), nil
}

// containerPathFor returns the output path an encryption produces for a
// given source path.
func containerPathFor(sourcePath string) string {
	return sourcePath + containerExt
}

// plaintextPathFor returns the output path a decryption produces: the
// container's own directory, with the original filename from the header.
func plaintextPathFor(containerPath, originalFilename string) string {
	return filepath.Join(filepath.Dir(containerPath), originalFilename)
}
