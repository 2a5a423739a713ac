package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	for _, length := range []int{4, 6, 8} {
		code := GenerateOTP(length)
		assert.Len(t, code, length)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9', "OTP must be digits only, got %q", code)
		}
	}

	// Non-positive lengths fall back to six digits
	assert.Len(t, GenerateOTP(0), 6)
	assert.Len(t, GenerateOTP(-3), 6)
}

func TestOTPHashRoundTrip(t *testing.T) {
	hash, err := HashOTP("482913")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "482913", hash)

	assert.True(t, CheckOTPHash("482913", hash))
	assert.False(t, CheckOTPHash("482914", hash))
	assert.False(t, CheckOTPHash("482913", "not-a-hash"))
}
