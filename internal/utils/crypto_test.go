// internal/utils/crypto_test.go
package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReferralCode(t *testing.T) {
	pattern := regexp.MustCompile(`^CHRONOS-[A-Z0-9]{5}$`)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateReferralCode()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
		seen[code] = true
	}

	// 50 draws over a 36^5 space should never collide.
	assert.Greater(t, len(seen), 45)
}

func TestGenerateRandomString(t *testing.T) {
	s, err := GenerateRandomString(16)
	require.NoError(t, err)
	assert.Len(t, s, 16)
	assert.Regexp(t, regexp.MustCompile(`^[a-zA-Z0-9]+$`), s)
}
