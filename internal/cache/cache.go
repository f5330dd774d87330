// Package cache provides the TTL value cache the orchestrator injects for
// the global prior. The cache is passed in explicitly, never held as
// ambient global state.
package cache

import "time"

// Cache defines the interface for TTL value caching
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
	Delete(key string)
	Flush()
}

// GlobalPriorKey caches the system-wide truth-score mean/variance
const GlobalPriorKey = "veridex:v1:global-prior"
