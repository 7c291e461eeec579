package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashAPIKey returns the hex sha256 digest under which an API key is stored
func HashAPIKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
