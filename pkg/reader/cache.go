package reader

import "sync"

// DefaultCacheSize is how many fetched payloads the reader keeps
// around while paging between chapters.
const DefaultCacheSize = 5

// Cache is a bounded map with strict FIFO eviction: once full, every
// insert of a new key evicts the key that was inserted earliest,
// regardless of how often anything was read. Storing an existing key
// again replaces its payload and resets its recency.
//
// It holds both chapter content (keyed by chapter slug) and chapter
// lists (keyed via ListKey). Memory-only; the durable detail cache in
// pkg/data is a separate store.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]any
	order    []string // insertion order, oldest first
}

func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[string]any),
	}
}

// ListKey is the distinguished cache key for a comic's chapter list.
func ListKey(comicSlug string) string {
	return "chapters:" + comicSlug
}

func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	payload, ok := c.entries[key]
	return payload, ok
}

func (c *Cache) Put(key string, payload any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		c.removeFromOrder(key)
	}
	c.entries[key] = payload
	c.order = append(c.order, key)

	if len(c.order) > c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
