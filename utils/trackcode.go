package utils

import (
	"crypto/rand"
	"math/big"
)

const trackCodeCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateTrackCode generates a cryptographically random URL-safe track code
// with a random length in [minLength, maxLength].
func GenerateTrackCode(minLength, maxLength int) (string, error) {
	length := minLength
	if maxLength > minLength {
		offset, err := rand.Int(rand.Reader, big.NewInt(int64(maxLength-minLength+1)))
		if err != nil {
			return "", err
		}
		length = minLength + int(offset.Int64())
	}

	result := make([]byte, length)
	for i := range result {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(trackCodeCharset))))
		if err != nil {
			return "", err
		}
		result[i] = trackCodeCharset[num.Int64()]
	}
	return string(result), nil
}
