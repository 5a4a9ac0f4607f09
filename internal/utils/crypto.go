// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"math/big"
)

const codeCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// AffiliateCodeLength matches the short codes embedded in shared URLs.
const AffiliateCodeLength = 10

func GenerateRandomString(length int) (string, error) {
	b := make([]byte, length)

	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeCharset))))
		if err != nil {
			return "", err
		}
		b[i] = codeCharset[n.Int64()]
	}

	return string(b), nil
}

// GenerateAffiliateCode mints a URL-safe short code for an affiliate
// link. Uniqueness is enforced by the database index; callers retry on
// collision.
func GenerateAffiliateCode() (string, error) {
	return GenerateRandomString(AffiliateCodeLength)
}
