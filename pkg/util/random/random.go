package random

import (
	"crypto/rand"
	"math/big"
	"time"
)

// GetRandomInt generates a cryptographically random number with the given
// digit count (used for confirmation codes).
func GetRandomInt(length int) int {
	min := int64(1)
	for i := 1; i < length; i++ {
		min *= 10
	}
	max := min * 10

	rangeSize := big.NewInt(max - min)
	n, err := rand.Int(rand.Reader, rangeSize)
	if err != nil {
		return int(min) // fallback
	}
	return int(n.Int64() + min)
}

// GetNowAndLenRandomString generates a timestamp-prefixed random string,
// used for entity uuids (callers prepend the type tag: U, G, F).
// Format: YYMMDD + alphanumeric mix, e.g. 260828AbCdE1234567.
func GetNowAndLenRandomString(length int) string {
	result := make([]byte, length)
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	charsetLen := big.NewInt(int64(len(charset)))
	for i := range result {
		n, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			result[i] = 'x'
			continue
		}
		result[i] = charset[n.Int64()]
	}
	return time.Now().Format("060102") + string(result)
}
