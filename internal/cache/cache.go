package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Cache defines the interface for query-result caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Delete(key string) error
	Clear() error
}

// QueryKey generates a cache key from the literal query string. Identical
// queries map to identical keys; no normalization is applied.
func QueryKey(query string) string {
	hash := sha256.Sum256([]byte(query))
	return "claimguard:v1:" + hex.EncodeToString(hash[:])
}
