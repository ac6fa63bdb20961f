package cache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/goliatone/go-wiki/internal/logging"
	"github.com/goliatone/go-wiki/pkg/interfaces"
)

// envelope is the persisted shape of every cache entry.
type envelope struct {
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Cache layers TTL semantics over a CacheStore. Every operation on a nil
// *Cache is a safe no-op that reports a miss, so callers can treat a
// disabled cache and a configured cache identically.
type Cache struct {
	store      interfaces.CacheStore
	defaultTTL time.Duration
	logger     interfaces.Logger
	now        func() time.Time
}

// Config wires a Cache.
type Config struct {
	Store      interfaces.CacheStore
	DefaultTTL time.Duration
	Logger     interfaces.Logger
}

// New builds a Cache over cfg.Store. A nil store yields a nil Cache, which
// disables caching without requiring call sites to branch.
func New(cfg Config) *Cache {
	if cfg.Store == nil {
		return nil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	ttl := cfg.DefaultTTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &Cache{
		store:      cfg.Store,
		defaultTTL: ttl,
		logger:     logger,
		now:        time.Now,
	}
}

// Get loads the entry for key into out and reports whether a valid entry
// was found. Expired entries are deleted on sight and report a miss, as do
// entries whose payload no longer unmarshals into out.
func (c *Cache) Get(key string, out any) bool {
	if c == nil {
		return false
	}

	data, err := c.store.Read(key)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.logger.Warn("cache read failed", "key", key, "error", err)
		}
		return false
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		c.logger.Warn("cache entry corrupt, dropping", "key", key, "error", err)
		c.store.Delete(key)
		return false
	}

	if c.now().After(env.ExpiresAt) {
		c.store.Delete(key)
		return false
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		c.logger.Warn("cache payload mismatch, dropping", "key", key, "error", err)
		c.store.Delete(key)
		return false
	}
	return true
}

// Set stores value under key for ttl. A non-positive ttl uses the cache
// default.
func (c *Cache) Set(key string, value any, ttl time.Duration) error {
	if c == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}

	now := c.now()
	data, err := json.Marshal(envelope{
		Data:      payload,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	})
	if err != nil {
		return err
	}

	return c.store.Write(key, data)
}

// Delete removes the entry for key.
func (c *Cache) Delete(key string) error {
	if c == nil {
		return nil
	}
	return c.store.Delete(key)
}

// Clear removes every entry and returns how many were deleted.
func (c *Cache) Clear() int {
	if c == nil {
		return 0
	}

	keys, err := c.store.Keys()
	if err != nil {
		c.logger.Warn("cache clear failed to list entries", "error", err)
		return 0
	}

	cleared := 0
	for _, key := range keys {
		if err := c.store.Delete(key); err == nil {
			cleared++
		}
	}
	return cleared
}

// Cleanup removes expired and unreadable entries and returns how many were
// deleted. Valid entries are untouched.
func (c *Cache) Cleanup() int {
	if c == nil {
		return 0
	}

	keys, err := c.store.Keys()
	if err != nil {
		c.logger.Warn("cache cleanup failed to list entries", "error", err)
		return 0
	}

	cleaned := 0
	for _, key := range keys {
		data, err := c.store.Read(key)
		if err != nil {
			continue
		}

		var env envelope
		if err := json.Unmarshal(data, &env); err != nil || c.now().After(env.ExpiresAt) {
			if err := c.store.Delete(key); err == nil {
				cleaned++
			}
		}
	}
	return cleaned
}

// MaybeCleanup runs Cleanup with the given probability in [0, 1]. It lets
// request paths amortise expiry sweeps without a background goroutine.
func (c *Cache) MaybeCleanup(probability float64) int {
	if c == nil || probability <= 0 {
		return 0
	}
	if probability < 1 && rand.Float64() >= probability {
		return 0
	}
	return c.Cleanup()
}

// Stats summarises the store contents.
func (c *Cache) Stats() interfaces.CacheStats {
	stats := interfaces.CacheStats{}
	if c == nil {
		return stats
	}

	keys, err := c.store.Keys()
	if err != nil {
		c.logger.Warn("cache stats failed to list entries", "error", err)
		return stats
	}

	for _, key := range keys {
		data, err := c.store.Read(key)
		if err != nil {
			continue
		}
		stats.Total++
		stats.Size += int64(len(data))

		var env envelope
		if err := json.Unmarshal(data, &env); err != nil || c.now().After(env.ExpiresAt) {
			stats.Expired++
		}
	}
	stats.Valid = stats.Total - stats.Expired
	return stats
}

// Remember returns the cached value for key, or computes it with fn and
// caches the result for ttl. Compute errors propagate without caching; a
// failed write is logged and the freshly computed value still returned.
func Remember[T any](c *Cache, key string, ttl time.Duration, fn func() (T, error)) (T, error) {
	var value T
	if c == nil {
		return fn()
	}

	if c.Get(key, &value) {
		return value, nil
	}

	value, err := fn()
	if err != nil {
		return value, err
	}

	if err := c.Set(key, value, ttl); err != nil {
		c.logger.Warn("cache write failed", "key", key, "error", err)
	}
	return value, nil
}

// RememberFile is Remember keyed additionally on the source file's
// modification time, so edits invalidate the entry without explicit
// deletes. A missing source file bypasses the cache entirely.
func RememberFile[T any](c *Cache, key, sourceFile string, ttl time.Duration, fn func() (T, error)) (T, error) {
	info, err := os.Stat(sourceFile)
	if err != nil {
		return fn()
	}

	cacheKey := key + "_" + strconv.FormatInt(info.ModTime().UnixNano(), 10)
	return Remember(c, cacheKey, ttl, fn)
}

// RememberDir is Remember keyed additionally on the newest modification
// time found anywhere under sourceDir, so any content change invalidates
// entries that depend on the directory tree.
func RememberDir[T any](c *Cache, key, sourceDir string, ttl time.Duration, fn func() (T, error)) (T, error) {
	cacheKey := key + "_" + strconv.FormatInt(DirectoryMtime(sourceDir), 10)
	return Remember(c, cacheKey, ttl, fn)
}

// DirectoryMtime returns the newest modification time, in nanoseconds, of
// dir and everything beneath it. Missing directories report 0.
func DirectoryMtime(dir string) int64 {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return 0
	}

	newest := info.ModTime().UnixNano()
	filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		fi, err := entry.Info()
		if err != nil {
			return nil
		}
		if mtime := fi.ModTime().UnixNano(); mtime > newest {
			newest = mtime
		}
		return nil
	})
	return newest
}

// FormatBytes renders a byte count for humans.
func FormatBytes(size int64) string {
	units := []string{"B", "KB", "MB", "GB"}
	value := float64(size)
	idx := 0
	for value >= 1024 && idx < len(units)-1 {
		value /= 1024
		idx++
	}
	rounded := math.Round(value*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + units[idx]
}
