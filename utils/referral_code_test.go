package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateReferralCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := GenerateReferralCode()
		assert.Len(t, code, referralCodeLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(referralCodeAlphabet, r), "unexpected character %q in code %s", r, code)
		}
		seen[code] = true
	}
	// 100 draws from a 32^8 space should never collide
	assert.Len(t, seen, 100)
}
