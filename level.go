package ferox

import "fmt"

// SecurityLevel selects the Argon2id cost profile used at encryption time.
// Decryption never consults this enum: it reads whatever memory/time/
// parallelism triple is embedded in the container header.
type SecurityLevel uint8

const (
	// LevelInteractive is tuned for frequent, latency-sensitive use.
	LevelInteractive SecurityLevel = iota
	// LevelModerate is the recommended default for most files.
	LevelModerate
	// LevelParanoid trades speed for maximum resistance to offline attacks.
	LevelParanoid
)

// KDFParams is the (memory, time, parallelism) triple written verbatim into
// the container header during encryption, and read back verbatim during
// decryption.
type KDFParams struct {
	MemoryKiB   uint32
	TimeCost    uint32
	Parallelism uint32
}

// String renders the level's canonical CLI name.
func (l SecurityLevel) String() string {
	switch l {
	case LevelInteractive:
		return "interactive"
	case LevelModerate:
		return "moderate"
	case LevelParanoid:
		return "paranoid"
	default:
		return "unknown"
	}
}

// Params returns the fixed KDF cost triple for the level.
func (l SecurityLevel) Params() (KDFParams, error) {
	switch l {
	case LevelInteractive:
		return KDFParams{MemoryKiB: 19456, TimeCost: 2, Parallelism: 1}, nil
	case LevelModerate:
		return KDFParams{MemoryKiB: 65536, TimeCost: 3, Parallelism: 1}, nil
	case LevelParanoid:
		return KDFParams{MemoryKiB: 262144, TimeCost: 4, Parallelism: 1}, nil
	default:
		return KDFParams{}, fmt.Errorf("ferox: %w: security level %d", ErrInvalidParameter, l)
	}
}

// ParseSecurityLevel maps the CLI's --level flag value to a SecurityLevel.
func ParseSecurityLevel(name string) (SecurityLevel, error) {
	switch name {
	case "interactive":
		return LevelInteractive, nil
	case "moderate":
		return LevelModerate, nil
	case "paranoid":
		return LevelParanoid, nil
	default:
		return 0, fmt.Errorf("ferox: %w: unrecognized security level %q", ErrInvalidParameter, name)
	}
}

// minKDFParams and maxKDFParams bound the KDF parameters accepted on the decrypt
// path (spec §4.5 step 3): they exist to stop a crafted container from
// forcing an unbounded Argon2id memory/time allocation.
var (
	minKDFParams = KDFParams{MemoryKiB: 8, TimeCost: 1, Parallelism: 1}
	maxKDFParams = KDFParams{MemoryKiB: 4 << 20, TimeCost: 1 << 16, Parallelism: 255}
)

// Validate rejects KDF parameters outside Argon2's own minimums or Ferox's
// resource-exhaustion ceiling.
func (p KDFParams) Validate() error {
	if p.Parallelism < 1 {
		return fmt.Errorf("ferox: %w: parallelism must be at least 1", ErrMalformedContainer)
	}
	if p.MemoryKiB < 8*p.Parallelism {
		return fmt.Errorf("ferox: %w: memory %d KiB is below Argon2's minimum for parallelism %d", ErrMalformedContainer, p.MemoryKiB, p.Parallelism)
	}
	if p.TimeCost < 1 {
		return fmt.Errorf("ferox: %w: time cost must be at least 1", ErrMalformedContainer)
	}
	if p.MemoryKiB > maxKDFParams.MemoryKiB {
		return fmt.Errorf("ferox: %w: memory %d KiB exceeds the sanity ceiling of %d KiB", ErrMalformedContainer, p.MemoryKiB, maxKDFParams.MemoryKiB)
	}
	if p.TimeCost > maxKDFParams.TimeCost {
		return fmt.Errorf("ferox: %w: time cost %d exceeds the sanity ceiling of %d", ErrMalformedContainer, p.TimeCost, maxKDFParams.TimeCost)
	}
	if p.Parallelism > maxKDFParams.Parallelism {
		return fmt.Errorf("ferox: %w: parallelism %d exceeds the sanity ceiling of %d", ErrMalformedContainer, p.Parallelism, maxKDFParams.Parallelism)
	}
	return nil
}
