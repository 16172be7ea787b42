package utils

import (
	"crypto/rand"
	"math/big"
)

const numberBytes = "0123456789"

// GenerateOTP returns a uniform random numeric code of the given length,
// zero-padded. Uniqueness across passengers is intentionally not
// enforced; validation is keyed by (user, otp) pairs.
func GenerateOTP(length int) string {
	return generateRandom(length, numberBytes)
}

func generateRandom(length int, charset string) string {
	result := make([]byte, length)
	charsetLength := big.NewInt(int64(len(charset)))

	for i := range result {
		num, _ := rand.Int(rand.Reader, charsetLength)
		result[i] = charset[num.Int64()]
	}

	return string(result)
}
