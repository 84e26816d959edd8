// Package cache stores recent verification results so repeating a claim
// does not pay for a second verification call.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Store defines the interface for verdict caching.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from normalized claim text.
func Key(normalizedClaim string) string {
	hash := sha256.Sum256([]byte(normalizedClaim))
	return "hearsay:v1:" + hex.EncodeToString(hash[:])
}
