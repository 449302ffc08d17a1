package units

import (
	"os"
	"sync"
)

// cacheEntry pairs a cached Unit with the modification time its source
// file had when it was parsed, so a stale entry (the file changed on
// disk since) can be detected without re-parsing on every lookup.
type cacheEntry struct {
	unit    *Unit
	modTime int64
}

// UnitCache memoizes parsed units by their normalized name, keyed
// additionally to the file's mtime so editing a source file while the
// cache is still in use invalidates the stale entry instead of serving
// it forever.
type UnitCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

// NewUnitCache returns an empty cache.
func NewUnitCache() *UnitCache {
	return &UnitCache{entries: map[string]*cacheEntry{}}
}

// Size returns the number of cached units.
func (c *UnitCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Put stores unit under key, recording filePath's current mtime.
func (c *UnitCache) Put(key string, unit *Unit, filePath string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = &cacheEntry{unit: unit, modTime: statModTime(filePath)}
}

// Get returns the cached unit for key if present and not stale —
// i.e. its source file's mtime still matches what was recorded at
// Put time. A stale entry is evicted and reported as a miss.
func (c *UnitCache) Get(key string) (*Unit, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if statModTime(entry.unit.FilePath) != entry.modTime {
		delete(c.entries, key)
		return nil, false
	}
	return entry.unit, true
}

// Invalidate evicts key regardless of staleness.
func (c *UnitCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear empties the cache.
func (c *UnitCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]*cacheEntry{}
}

func statModTime(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.ModTime().UnixNano()
}
