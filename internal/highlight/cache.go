package highlight

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/rexview/internal/log"
)

// Defaults for NewCache when configuration leaves them unset.
const (
	DefaultCacheExpiration      = 10 * time.Minute
	DefaultCacheCleanupInterval = 30 * time.Minute
)

// Cache holds compiled patterns keyed by options and source so live
// highlighting does not recompile on every keystroke. Compile failures are
// never cached.
type Cache struct {
	cache *gocache.Cache
}

// NewCache creates a cache whose entries expire after expiration of disuse.
func NewCache(expiration, cleanupInterval time.Duration) *Cache {
	return &Cache{cache: gocache.New(expiration, cleanupInterval)}
}

// Compile returns the cached Pattern for (pattern, opts), compiling and
// storing it on a miss. Each hit extends the entry's lifetime.
func (c *Cache) Compile(pattern string, opts Options) (*Pattern, error) {
	key := cacheKey(pattern, opts)
	if v, found := c.cache.Get(key); found {
		if p, ok := v.(*Pattern); ok {
			log.Debug(log.CatCache, "cache hit", "key", key)
			c.cache.SetDefault(key, p)
			return p, nil
		}
		log.Error(log.CatCache, "wrong type assertion when getting value", "key", key)
		c.cache.Delete(key)
	}

	p, err := Compile(pattern, opts)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, p)
	return p, nil
}

// Len returns the number of cached patterns, including expired entries not
// yet cleaned up.
func (c *Cache) Len() int {
	return c.cache.ItemCount()
}

// Flush drops every cached pattern.
func (c *Cache) Flush() {
	c.cache.Flush()
}

func cacheKey(pattern string, opts Options) string {
	return opts.Flags() + "/" + opts.Timeout.String() + "/" + pattern
}
