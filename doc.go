// Package ferox implements the cryptographic file-container engine behind
// the ferox command: it turns a plaintext file into a single self-describing
// ".feroxcrypt" ciphertext container and back, authenticated end-to-end
// against tampering and password error.
//
// # Overview
//
// A container is produced by streaming the source file through AES-256-CTR
// and feeding every emitted byte into HMAC-SHA256, so the file never has to
// fit in memory. Encryption keys are never handled directly by callers:
// they are derived from a password (and optionally a keyfile) with
// Argon2id, using cost parameters chosen from a small set of named
// SecurityLevel profiles and stored verbatim in the container header so
// decryption can reproduce them.
//
// # Basic usage
//
//	guard := ferox.NewInterruptGuard()
//	err := ferox.Encrypt(ferox.EncryptRequest{
//	    SourcePath: "report.pdf",
//	    Password:   []byte("correct horse battery staple"),
//	    Level:      ferox.LevelModerate,
//	    Guard:      guard,
//	})
//
// Decryption mirrors this:
//
//	err := ferox.Decrypt(ferox.DecryptRequest{
//	    ContainerPath: "report.pdf.feroxcrypt",
//	    Password:      []byte("correct horse battery staple"),
//	    Guard:         guard,
//	})
//
// # File format
//
// The container has no magic number or version byte: routing relies on the
// ".feroxcrypt" extension and correctness relies on HMAC verification.
// Fields, little-endian, no padding:
//
//	filename_length   2 bytes
//	original_filename filename_length bytes (UTF-8 basename, no separators)
//	salt              16 bytes
//	iv                16 bytes
//	kdf_memory_kib    4 bytes
//	kdf_time_cost     4 bytes
//	kdf_parallelism   4 bytes
//	ciphertext        variable (AES-256-CTR of the plaintext)
//	tag               32 bytes (HMAC-SHA256 over everything above)
//
// # Security considerations
//
// Protected against: tampering or truncation of the container (HMAC
// verification), wrong-password or wrong-keyfile decryption attempts
// (constant-time tag comparison, no plaintext released on failure),
// partial-write corruption from process interruption (the Interrupt
// Guard unlinks in-flight outputs).
//
// Not protected against: memory-dump attacks against a running process,
// weak passwords, key or keyfile loss (there is no recovery mechanism),
// or filename/metadata leakage — the original filename is stored in the
// header in the clear.
package ferox
