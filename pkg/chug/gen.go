package chug

import (
	"crypto/rand"
	"fmt"
	"io"
)

// GenKey returns length bytes read from crypto/rand, suitable as a key for Forward and Reverse.
func GenKey(length int) ([]byte, error) {
	return genKey(rand.Reader, length)
}

func genKey(src io.Reader, length int) ([]byte, error) {
	if length <= 0 {
		return nil, fmt.Errorf("%w: key length %d", ErrInvalidArgument, length)
	}
	key := make([]byte, length)
	if _, err := io.ReadFull(src, key); err != nil {
		return nil, fmt.Errorf("reading %d random key bytes: %w", length, err)
	}
	return key, nil
}
