// internal/utils/crypto_test.go
package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReferenceNumberFormat(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	ref, err := GenerateReferenceNumber("TKT", now)
	require.NoError(t, err)
	assert.Regexp(t, `^TKT-20260828-[0-9A-F]{6}$`, ref)
}

func TestGenerateClaimCodeFormat(t *testing.T) {
	code, err := GenerateClaimCode()
	require.NoError(t, err)

	// Charset excludes ambiguous characters (0/O, 1/I).
	assert.Regexp(t, `^RWD-[A-HJ-NP-Z2-9]{8}$`, code)
}

func TestHashStringAndValidateFileHash(t *testing.T) {
	content := []byte("dokumen pendukung")
	sum := HashString(string(content))

	assert.Len(t, sum, 64)
	assert.True(t, ValidateFileHash(content, sum))
	assert.False(t, ValidateFileHash([]byte("dokumen lain"), sum))
}
