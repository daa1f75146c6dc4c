// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

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

// GenerateOrderNumber builds a human-readable order reference like
// KL-240831-X7K2QF. Uniqueness is enforced by the orders table index.
func GenerateOrderNumber() (string, error) {
	suffix, err := GenerateRandomString(6)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("KL-%s-%s", time.Now().Format("060102"), suffix), nil
}

// GenerateSlug derives a URL-safe store slug candidate with a random suffix.
func GenerateSlug(base string) (string, error) {
	suffix, err := GenerateRandomString(4)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s", base, suffix), nil
}
