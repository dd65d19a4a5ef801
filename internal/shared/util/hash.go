package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashKey returns a stable hex digest of s, safe to use in file names and tokens.
func HashKey(s string) string {
	return HashBytes([]byte(s))
}

// HashBytes returns the hex sha256 of b.
func HashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
