package interfaces

// CacheStore is the storage backend for cache entries: an opaque key to byte
// slice mapping with atomic write semantics. Keys handed to a store are
// already sanitised to a filesystem-safe charset. Read returns an error
// satisfying errors.Is(err, fs.ErrNotExist) when the key has never been
// written, so callers can treat absence and I/O failure differently.
type CacheStore interface {
	Read(key string) ([]byte, error)
	// Write must be atomic: concurrent readers never observe a partially
	// written value for key.
	Write(key string, data []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
	Keys() ([]string, error)
}

// CacheStats summarises the state of a cache for operational tooling.
type CacheStats struct {
	Total   int   `json:"total"`
	Size    int64 `json:"size"`
	Expired int   `json:"expired"`
	Valid   int   `json:"valid"`
}
