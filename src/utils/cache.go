package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Clock returns the current time. Tests replace it to control expiry.
type Clock func() time.Time

type cacheEntry[T any] struct {
	Value     T         `json:"value"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source,omitempty"`
}

// FileCache is a keyed cache persisted as one JSON document. Entries older
// than the validity window are treated as missing but kept on disk until
// overwritten. There is no cross-process locking: two processes writing the
// same file can lose each other's updates.
type FileCache[T any] struct {
	path     string
	validity time.Duration
	now      Clock
	entries  map[string]cacheEntry[T]
	mutex    sync.RWMutex
}

// NewFileCache creates an empty cache bound to path. Call Load to read
// existing entries.
func NewFileCache[T any](path string, validity time.Duration, now Clock) *FileCache[T] {
	if now == nil {
		now = time.Now
	}
	return &FileCache[T]{
		path:     path,
		validity: validity,
		now:      now,
		entries:  map[string]cacheEntry[T]{},
	}
}

// Load reads the cache file. A missing file is an empty cache; a corrupt one
// is reported and leaves the cache empty.
func (c *FileCache[T]) Load() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = map[string]cacheEntry[T]{}
	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read cache file %s: %w", c.path, err)
	}
	entries := map[string]cacheEntry[T]{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to decode cache file %s: %w", c.path, err)
	}
	c.entries = entries
	return nil
}

// Save writes every entry back to the cache file.
func (c *FileCache[T]) Save() error {
	c.mutex.RLock()
	data, err := json.MarshalIndent(c.entries, "", "  ")
	c.mutex.RUnlock()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(c.path, data, 0o644)
}

// Get returns the value for key while it is within the validity window.
func (c *FileCache[T]) Get(key string) (T, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, ok := c.entries[key]
	if !ok || c.now().Sub(entry.Timestamp) >= c.validity {
		var zero T
		return zero, false
	}
	return entry.Value, true
}

// Set stores value under key, stamped with the cache clock.
func (c *FileCache[T]) Set(key string, value T, source string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = cacheEntry[T]{Value: value, Timestamp: c.now(), Source: source}
}

// Clear removes every entry from memory; the file is untouched until Save.
func (c *FileCache[T]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = map[string]cacheEntry[T]{}
}
