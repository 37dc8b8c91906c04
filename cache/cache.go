package cache

import (
	"encoding/json"
	"log"
	"os"
	"sync"
)

// FetchFunc produces the body for a key on a cache miss.
type FetchFunc func() (string, error)

// Cache is a URL-keyed response store persisted as one flat JSON document.
// Entries are never updated or evicted; the whole file is rewritten on every
// miss, which is fine while the store stays small.
type Cache struct {
	mu      sync.Mutex
	path    string
	entries map[string]string
}

// Load reads the backing file. A missing or unparsable file yields an empty
// cache rather than an error.
func Load(path string) *Cache {
	c := &Cache{path: path, entries: make(map[string]string)}

	data, err := os.ReadFile(path)
	if err != nil {
		return c
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		log.Printf("Cache: ignoring unparsable %s: %v", path, err)
		c.entries = make(map[string]string)
	}
	return c
}

// GetOrFetch returns the stored body for key, or invokes fetch, persists the
// result and returns it. At most one fetch ever happens per key.
func (c *Cache) GetOrFetch(key string, fetch FetchFunc) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if body, ok := c.entries[key]; ok {
		log.Printf("Cache: using cache for %s", key)
		return body, nil
	}

	log.Printf("Cache: fetching %s", key)
	body, err := fetch()
	if err != nil {
		return "", err
	}

	c.entries[key] = body
	if err := c.save(); err != nil {
		log.Printf("Cache: failed to persist %s: %v", c.path, err)
	}
	return body, nil
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) save() error {
	data, err := json.Marshal(c.entries)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0644)
}
