package ferox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeader_WriteReadRoundTrip(t *testing.T) {
	h := &header{
		originalFilename: "report.pdf",
		salt:             [16]byte{1, 2, 3},
		iv:               [16]byte{4, 5, 6},
		kdf:              KDFParams{MemoryKiB: 65536, TimeCost: 3, Parallelism: 1},
	}

	var buf bytes.Buffer
	n, err := h.writeTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(h.size()), n)

	got, headerLen, err := readHeader(&buf, "container.feroxcrypt")
	require.NoError(t, err)
	assert.Equal(t, h.originalFilename, got.originalFilename)
	assert.Equal(t, h.salt, got.salt)
	assert.Equal(t, h.iv, got.iv)
	assert.Equal(t, h.kdf, got.kdf)
	assert.Equal(t, int64(h.size()), headerLen)
}

func TestReadHeader_RejectsPathSeparator(t *testing.T) {
	h := &header{
		originalFilename: "../escape.txt",
		salt:             [16]byte{1},
		iv:               [16]byte{2},
		kdf:              KDFParams{MemoryKiB: 65536, TimeCost: 3, Parallelism: 1},
	}
	// Bypass writeTo's own validation by hand-assembling the bytes, since a
	// crafted container is exactly what readHeader must defend against.
	var buf bytes.Buffer
	nameBytes := []byte(h.originalFilename)
	lenBuf := []byte{byte(len(nameBytes)), 0}
	buf.Write(lenBuf)
	buf.Write(nameBytes)
	buf.Write(h.salt[:])
	buf.Write(h.iv[:])
	buf.Write(make([]byte, 12))

	_, _, err := readHeader(&buf, "container.feroxcrypt")
	assert.ErrorIs(t, err, ErrMalformedContainer)
}

func TestReadHeader_RejectsTruncated(t *testing.T) {
	_, _, err := readHeader(bytes.NewReader([]byte{1}), "container.feroxcrypt")
	assert.ErrorIs(t, err, ErrMalformedContainer)
}

func TestReadHeader_RejectsHostileKDFParams(t *testing.T) {
	var buf bytes.Buffer
	name := []byte("a.txt")
	buf.WriteByte(byte(len(name)))
	buf.WriteByte(0)
	buf.Write(name)
	buf.Write(make([]byte, 32)) // salt + iv
	// memory_kib absurdly large, little-endian uint32
	buf.Write([]byte{0xFF, 0xFF, 0xFF, 0x7F})
	buf.Write([]byte{1, 0, 0, 0})
	buf.Write([]byte{1, 0, 0, 0})

	_, _, err := readHeader(&buf, "container.feroxcrypt")
	assert.ErrorIs(t, err, ErrMalformedContainer)
}
