package util

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

const referralCodeLen = 10

// GenerateReferralCode returns a random upper-case code suitable for
// sharing in invite links. Uniqueness is enforced by the usr table.
func GenerateReferralCode() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	code := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(buf)
	return strings.ToUpper(code[:referralCodeLen]), nil
}
