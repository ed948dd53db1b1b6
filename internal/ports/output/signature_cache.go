package output

import "time"

// SignatureCache interface - Output port
// A short-lived cache for signature validation results. It is a pure
// optimization: the validator treats any error or miss as "compute it".
type SignatureCache interface {
	// Get returns the cached value and whether the key was present
	Get(key string) (string, bool, error)

	// Set stores value under key for ttl
	Set(key, value string, ttl time.Duration) error
}
