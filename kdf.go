package ferox

import "golang.org/x/crypto/argon2"

// derivedKeySize is the total Argon2id output: 32 bytes of AES key followed
// by 32 bytes of HMAC key (spec §3, "Derived keys").
const derivedKeySize = 64

// derivedKeys holds the two secrets split out of one Argon2id call. Both
// halves are scrubbed together by zero().
type derivedKeys struct {
	encKey []byte // AES-256-CTR key, 32 bytes
	macKey []byte // HMAC-SHA256 key, 32 bytes
}

func (k derivedKeys) zero() {
	secureZeroAll(k.encKey, k.macKey)
}

// deriveKeys runs Argon2id (RFC 9106, variant id) over passwordBytes and
// salt with the given cost parameters, then splits the 64-byte output into
// an encryption key and a MAC key. passwordBytes is either the raw UTF-8
// password or, when a keyfile is in play, the HMAC-mixed password produced
// by mixPassword.
func deriveKeys(passwordBytes, salt []byte, params KDFParams) (derivedKeys, error) {
	if err := params.Validate(); err != nil {
		return derivedKeys{}, err
	}
	if len(salt) != 16 {
		return derivedKeys{}, errInternalCrypto("salt must be 16 bytes", nil)
	}
	out := argon2.IDKey(passwordBytes, salt, params.TimeCost, params.MemoryKiB, uint8(params.Parallelism), derivedKeySize)
	keys := derivedKeys{
		encKey: out[:32],
		macKey: out[32:64],
	}
	if err := validateKeyMaterial(keys.encKey, "encryption key"); err != nil {
		return derivedKeys{}, err
	}
	if err := validateKeyMaterial(keys.macKey, "MAC key"); err != nil {
		return derivedKeys{}, err
	}
	return keys, nil
}
