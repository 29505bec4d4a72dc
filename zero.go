package ferox

import "crypto/subtle"

// secureZero overwrites b with zeros in place. crypto/subtle.ConstantTimeCopy
// against a zero source, rather than a plain loop, resists compiler
// dead-store elimination the way a bare `for i := range b { b[i] = 0 }`
// does not reliably.
func secureZero(b []byte) {
	if len(b) == 0 {
		return
	}
	zero := make([]byte, len(b))
	subtle.ConstantTimeCopy(1, b, zero)
}

// secureZeroAll zeroes every buffer given, in order. Used at the end of
// encrypt/decrypt flows to scrub passwords, derived keys, and keyfile bytes
// before their backing arrays become eligible for GC.
func secureZeroAll(bufs ...[]byte) {
	for _, b := range bufs {
		secureZero(b)
	}
}
