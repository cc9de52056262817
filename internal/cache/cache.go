// Package cache provides thread-safe generic caching and the rendered
// preview cache.
package cache

import "sync"

type Cache[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		items: make(map[K]V),
	}
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.items[key]
	return val, ok
}

func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
}

func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]V)
}

func (c *Cache[K, V]) SetTo(items map[K]V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
}

// Preview caching: rendered editor previews are keyed by the document
// fingerprint plus the syntax theme so a re-render of unchanged content is
// served from memory.

var previewCache = NewCache[string, []byte]()

func GetPreview(fingerprint, syntaxTheme string) ([]byte, bool) {
	return previewCache.Get(fingerprint + ":" + syntaxTheme)
}

func SetPreview(fingerprint, syntaxTheme string, html []byte) {
	previewCache.Set(fingerprint+":"+syntaxTheme, html)
}

func ClearPreviewCache() {
	previewCache.Clear()
}
