package units

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewUnitCache(t *testing.T) {
	cache := NewUnitCache()
	if cache.Size() != 0 {
		t.Errorf("expected an empty cache, got size %d", cache.Size())
	}
}

func TestCachePutAndGet(t *testing.T) {
	cache := NewUnitCache()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.acorn")
	if err := os.WriteFile(path, []byte("let x = 1"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	unit := NewUnit("TestUnit", path)
	cache.Put("testunit", unit, path)

	if cache.Size() != 1 {
		t.Errorf("expected cache size 1, got %d", cache.Size())
	}
	retrieved, ok := cache.Get("testunit")
	if !ok {
		t.Fatal("expected to find the unit in cache")
	}
	if retrieved != unit {
		t.Error("expected to retrieve the same unit instance")
	}
}

// TestCacheInvalidation confirms a stale entry (the backing file
// changed mtime since Put) is treated as a miss rather than served.
func TestCacheInvalidation(t *testing.T) {
	cache := NewUnitCache()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.acorn")
	if err := os.WriteFile(path, []byte("let x = 1"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	unit := NewUnit("TestUnit", path)
	cache.Put("testunit", unit, path)

	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("failed to touch file mtime: %v", err)
	}

	if _, ok := cache.Get("testunit"); ok {
		t.Fatal("expected a stale entry to be invalidated")
	}
	if cache.Size() != 0 {
		t.Errorf("expected the stale entry to be evicted, cache size=%d", cache.Size())
	}
}

func TestCacheExplicitInvalidate(t *testing.T) {
	cache := NewUnitCache()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.acorn")
	os.WriteFile(path, []byte("let x = 1"), 0644)

	cache.Put("testunit", NewUnit("TestUnit", path), path)
	cache.Invalidate("testunit")

	if _, ok := cache.Get("testunit"); ok {
		t.Fatal("expected Invalidate to evict the entry")
	}
}
