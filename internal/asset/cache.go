package asset

import (
	"sync"

	"gltf-toolkit/internal/model"
)

// Cache is a concurrency-safe payload cache in front of a Loader.
// Each URI is loaded at most once; failures are cached too.
type Cache struct {
	mu     sync.RWMutex
	items  map[string]*cacheEntry
	loader model.Loader
}

type cacheEntry struct {
	data []byte
	err  error
}

// NewCache creates a cache backed by loader.
func NewCache(loader model.Loader) *Cache {
	return &Cache{
		items:  make(map[string]*cacheEntry),
		loader: loader,
	}
}

// Load returns the payload for uri.
func (c *Cache) Load(uri string) ([]byte, error) {
	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[uri]; exists {
		c.mu.RUnlock()
		return entry.data, entry.err
	}
	c.mu.RUnlock()

	data, err := c.loader.Load(uri)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[uri]; exists {
		return entry.data, entry.err
	}
	c.items[uri] = &cacheEntry{data: data, err: err}
	return data, err
}

// Len returns the number of cached URIs.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
