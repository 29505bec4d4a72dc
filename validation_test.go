package ferox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateOriginalFilename(t *testing.T) {
	assert.NoError(t, validateOriginalFilename("report.pdf"))
	assert.NoError(t, validateOriginalFilename("файл.txt"))

	assert.Error(t, validateOriginalFilename(""))
	assert.Error(t, validateOriginalFilename("."))
	assert.Error(t, validateOriginalFilename(".."))
	assert.Error(t, validateOriginalFilename("dir/file.txt"))
	assert.Error(t, validateOriginalFilename("dir\\file.txt"))
	assert.Error(t, validateOriginalFilename(string([]byte{0xff, 0xfe})))

	tooLong := strings.Repeat("a", maxFilenameBytes+1)
	err := validateOriginalFilename(tooLong)
	assert.ErrorIs(t, err, ErrFilenameTooLong)
}
