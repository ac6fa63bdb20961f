package cache

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const cacheFileExt = ".cache"

var unsafeKeyCharsRe = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// sanitizeKey maps an arbitrary cache key onto the filesystem-safe
// alphabet. Distinct keys can collide after sanitisation; callers that need
// collision-free keys derive them through the identity package first.
func sanitizeKey(key string) string {
	return unsafeKeyCharsRe.ReplaceAllString(key, "_")
}

// FileStore persists cache entries as individual files in a single
// directory, one file per key. Writes are atomic: the payload lands in a
// uniquely named temp file that is renamed over the final path, so readers
// never observe a partial entry.
type FileStore struct {
	dir string
}

// NewFileStore creates the backing directory if needed and returns a store
// rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("cache: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory backing the store.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) entryPath(key string) string {
	return filepath.Join(s.dir, sanitizeKey(key)+cacheFileExt)
}

// Read returns the payload for key. Missing entries surface as
// fs.ErrNotExist.
func (s *FileStore) Read(key string) ([]byte, error) {
	data, err := os.ReadFile(s.entryPath(key))
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Write stores the payload for key atomically.
func (s *FileStore) Write(key string, data []byte) error {
	final := s.entryPath(key)
	temp := final + "." + uuid.NewString() + ".tmp"

	if err := os.WriteFile(temp, data, 0o644); err != nil {
		return fmt.Errorf("cache: write temp file: %w", err)
	}
	if err := os.Rename(temp, final); err != nil {
		os.Remove(temp)
		return fmt.Errorf("cache: replace entry: %w", err)
	}
	return nil
}

// Delete removes the entry for key. Deleting an absent entry is not an
// error.
func (s *FileStore) Delete(key string) error {
	err := os.Remove(s.entryPath(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Keys lists the sanitised keys of every stored entry.
func (s *FileStore) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var keys []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, cacheFileExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, cacheFileExt))
	}
	return keys, nil
}

// MemoryStore keeps entries in process memory. It exists for tests and for
// callers that want caching semantics without touching disk.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string][]byte{}}
}

func (s *MemoryStore) Read(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.entries[sanitizeKey(key)]
	if !ok {
		return nil, fs.ErrNotExist
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *MemoryStore) Write(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	s.entries[sanitizeKey(key)] = stored
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, sanitizeKey(key))
	return nil
}

func (s *MemoryStore) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	return keys, nil
}
