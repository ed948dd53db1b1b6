package memory

import (
	"sync"
	"time"

	"line-webhook-gateway/internal/ports/output"
)

// Compile-time check to ensure MemorySignatureCache implements SignatureCache interface
var _ output.SignatureCache = (*MemorySignatureCache)(nil)

// MemorySignatureCache struct - Output adapter for in-memory result caching
// Uses sync.Map for thread-safe concurrent access. Expired entries are
// deleted lazily on read. Used for deployments without Redis and in tests.
type MemorySignatureCache struct {
	entries sync.Map
}

type cacheEntry struct {
	value     string
	expiresAt time.Time
}

// NewMemorySignatureCache creates a new in-memory signature cache.
func NewMemorySignatureCache() *MemorySignatureCache {
	return &MemorySignatureCache{}
}

// Get retrieves a cached value by key.
// Returns found=false if the key does not exist or has expired.
// Expired entries are deleted (lazy cleanup).
func (m *MemorySignatureCache) Get(key string) (string, bool, error) {
	value, exists := m.entries.Load(key)
	if !exists {
		return "", false, nil
	}

	entry, ok := value.(cacheEntry)
	if !ok {
		// If data is malformed, delete and report a miss
		m.entries.Delete(key)
		return "", false, nil
	}

	if time.Now().After(entry.expiresAt) {
		// Lazy cleanup: delete expired entry
		m.entries.Delete(key)
		return "", false, nil
	}

	return entry.value, true, nil
}

// Set stores a value under key until ttl elapses.
func (m *MemorySignatureCache) Set(key, value string, ttl time.Duration) error {
	m.entries.Store(key, cacheEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	})
	return nil
}
