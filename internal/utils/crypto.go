// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"math/big"
)

const referralCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ReferralCodePrefix is the fixed prefix of every shareable referral code.
const ReferralCodePrefix = "CHRONOS-"

// GenerateReferralCode produces a code like "CHRONOS-4K2PX": the fixed
// prefix plus five random uppercase-alphanumeric characters.
func GenerateReferralCode() (string, error) {
	suffix := make([]byte, 5)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(referralCharset))))
		if err != nil {
			return "", err
		}
		suffix[i] = referralCharset[n.Int64()]
	}
	return ReferralCodePrefix + string(suffix), nil
}

// GenerateRandomString returns a random alphanumeric string, used for
// storage object keys.
func GenerateRandomString(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)

	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		b[i] = charset[n.Int64()]
	}

	return string(b), nil
}
