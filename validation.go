package ferox

import (
	"strings"
	"unicode/utf8"
)

// maxFilenameBytes is the largest original_filename the container format can
// carry: filename_length is a uint16 field (spec §3).
const maxFilenameBytes = 65535

// validateOriginalFilename enforces the constraints the header's
// original_filename field must satisfy on both the write and the read path:
// valid UTF-8, no path separators (so a decrypted container can never write
// outside its destination directory), non-empty, and within the uint16
// length field.
func validateOriginalFilename(name string) error {
	if name == "" {
		return errMalformedContainer("", "original filename is empty")
	}
	if !utf8.ValidString(name) {
		return errMalformedContainer("", "original filename is not valid UTF-8")
	}
	if len(name) > maxFilenameBytes {
		return errFilenameTooLong(name, len(name))
	}
	if strings.ContainsAny(name, "/\\") {
		return errMalformedContainer("", "original filename contains a path separator")
	}
	if name == "." || name == ".." {
		return errMalformedContainer("", "original filename is a directory reference")
	}
	return nil
}

// validateKeyMaterial guards against programmer error: derived keys and MAC
// keys must always be exactly 32 bytes coming out of the KDF.
func validateKeyMaterial(key []byte, name string) error {
	if len(key) != 32 {
		return errInternalCrypto(name+" must be 32 bytes", nil)
	}
	return nil
}

// validateSaltAndIV guards the two 16-byte random fields written into every
// header.
func validateSaltAndIV(salt, iv []byte) error {
	if len(salt) != 16 {
		return errMalformedContainer("", "salt must be 16 bytes")
	}
	if len(iv) != 16 {
		return errMalformedContainer("", "iv must be 16 bytes")
	}
	return nil
}
