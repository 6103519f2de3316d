package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"livemenu-backend/pkg/cache"

	gocache "github.com/patrickmn/go-cache"
)

type memoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates a new in-memory cache service
// defaultExpiration: default TTL for items
// cleanupInterval: how often to scan for expired items
func NewMemoryCache(defaultExpiration, cleanupInterval time.Duration) cache.CacheService {
	return &memoryCache{
		store: gocache.New(defaultExpiration, cleanupInterval),
	}
}

func (c *memoryCache) Get(key string) (interface{}, bool) {
	return c.store.Get(key)
}

func (c *memoryCache) Set(key string, value interface{}, duration time.Duration) {
	c.store.Set(key, value, duration)
}

func (c *memoryCache) Delete(key string) {
	c.store.Delete(key)
}

func (c *memoryCache) Flush() {
	c.store.Flush()
}

type fileCache struct {
	memoryCache
	path string
}

// NewFileCache creates a never-expiring cache persisted to path.
func NewFileCache(path string) cache.PersistentCache {
	return &fileCache{
		memoryCache: memoryCache{store: gocache.New(gocache.NoExpiration, 0)},
		path:        path,
	}
}

func (c *fileCache) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	tmp := c.path + ".tmp"
	if err := c.store.SaveFile(tmp); err != nil {
		return fmt.Errorf("save cache: %w", err)
	}
	return os.Rename(tmp, c.path)
}

// Load restores a saved cache. A missing file is not an error.
func (c *fileCache) Load() error {
	err := c.store.LoadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load cache: %w", err)
	}
	return nil
}
