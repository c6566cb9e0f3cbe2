package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// SecureRandomInt returns a cryptographically secure uniform integer in [0, upper).
func SecureRandomInt(upper int64) (int64, error) {
	if upper <= 0 {
		return 0, fmt.Errorf("upper bound must be positive")
	}
	n, err := rand.Int(rand.Reader, big.NewInt(upper))
	if err != nil {
		return 0, fmt.Errorf("failed to read random number: %w", err)
	}
	return n.Int64(), nil
}
