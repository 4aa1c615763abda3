package repository

// CacheRepository caches serialized computation results keyed by a hash of
// the input configuration. Identical inputs always produce identical
// outputs, so cached entries never go stale; the TTL only bounds memory.
type CacheRepository interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}
