package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashBytes computes the SHA256 hash of data and returns it as hex.
func HashBytes(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// ShortHash returns the first n hex digits of HashBytes(data).
func ShortHash(data []byte, n int) string {
	h := HashBytes(data)
	if n <= 0 || n > len(h) {
		return h
	}
	return h[:n]
}
