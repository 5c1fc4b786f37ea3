package handlers

import (
	"sync"
	"time"
)

// cacheEntry holds one parsed artifact keyed to the file version it came from.
type cacheEntry struct {
	modTime time.Time
	size    int64
	value   any
}

// artifactCache memoizes parsed artifacts so hot GETs do not re-read and
// re-parse the files on every request. Entries are validated against the
// file's (modtime, size); a republished artifact invalidates naturally.
type artifactCache struct {
	mu    sync.RWMutex
	store map[string]cacheEntry
}

func newArtifactCache() *artifactCache {
	return &artifactCache{store: map[string]cacheEntry{}}
}

func (c *artifactCache) get(path string, modTime time.Time, size int64) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.store[path]
	if !ok || !e.modTime.Equal(modTime) || e.size != size {
		return nil, false
	}
	return e.value, true
}

func (c *artifactCache) put(path string, modTime time.Time, size int64, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[path] = cacheEntry{modTime: modTime, size: size, value: v}
}
