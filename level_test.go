package ferox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurityLevel_Params(t *testing.T) {
	tests := []struct {
		level    SecurityLevel
		expected KDFParams
	}{
		{LevelInteractive, KDFParams{MemoryKiB: 19456, TimeCost: 2, Parallelism: 1}},
		{LevelModerate, KDFParams{MemoryKiB: 65536, TimeCost: 3, Parallelism: 1}},
		{LevelParanoid, KDFParams{MemoryKiB: 262144, TimeCost: 4, Parallelism: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			got, err := tt.level.Params()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSecurityLevel_Params_Invalid(t *testing.T) {
	_, err := SecurityLevel(99).Params()
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestParseSecurityLevel(t *testing.T) {
	for _, name := range []string{"interactive", "moderate", "paranoid"} {
		l, err := ParseSecurityLevel(name)
		require.NoError(t, err)
		assert.Equal(t, name, l.String())
	}

	_, err := ParseSecurityLevel("extreme")
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestKDFParams_Validate(t *testing.T) {
	valid := KDFParams{MemoryKiB: 65536, TimeCost: 3, Parallelism: 1}
	assert.NoError(t, valid.Validate())

	tooLittleMemory := KDFParams{MemoryKiB: 4, TimeCost: 1, Parallelism: 1}
	assert.ErrorIs(t, tooLittleMemory.Validate(), ErrMalformedContainer)

	zeroTime := KDFParams{MemoryKiB: 1024, TimeCost: 0, Parallelism: 1}
	assert.ErrorIs(t, zeroTime.Validate(), ErrMalformedContainer)

	hostileMemory := KDFParams{MemoryKiB: 1 << 30, TimeCost: 1, Parallelism: 1}
	assert.ErrorIs(t, hostileMemory.Validate(), ErrMalformedContainer)

	hostileParallelism := KDFParams{MemoryKiB: 65536, TimeCost: 1, Parallelism: 1000}
	assert.ErrorIs(t, hostileParallelism.Validate(), ErrMalformedContainer)
}
