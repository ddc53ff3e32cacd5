package utils

import (
	"crypto/rand"
)

const referralCodeLength = 8

const referralCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateReferralCode returns a short uppercase code for referral
// links. The alphabet skips 0/O and 1/I so codes survive being read
// aloud or handwritten.
func GenerateReferralCode() string {
	buf := make([]byte, referralCodeLength)
	if _, err := rand.Read(buf); err != nil {
		// rand.Read failing means the platform's entropy source is
		// broken; nothing sensible to recover to
		panic("failed to read random bytes: " + err.Error())
	}
	for i, b := range buf {
		buf[i] = referralCodeAlphabet[int(b)%len(referralCodeAlphabet)]
	}
	return string(buf)
}
