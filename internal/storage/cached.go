package storage

import (
	"context"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

var _ Medium = (*CachedMedium)(nil)

const megabyte = 1024 * 1024

// CachedMedium is a write-through read cache in front of another medium.
// Writes reach the backing medium first, the cache is only touched once they
// succeed, so the cache never holds a value the medium does not.
type CachedMedium struct {
	backing Medium
	cache   *freecache.Cache
}

func NewCachedMedium(backing Medium, cacheSizeMB int) *CachedMedium {
	if cacheSizeMB <= 0 {
		cacheSizeMB = 1
	}
	return &CachedMedium{
		backing: backing,
		cache:   freecache.NewCache(cacheSizeMB * megabyte),
	}
}

func (c *CachedMedium) Get(ctx context.Context, key string) ([]byte, error) {
	if val, err := c.cache.Get([]byte(key)); err == nil {
		log.Tracef("cache hit: %s", key)
		return val, nil
	}

	val, err := c.backing.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set([]byte(key), val, 0); err != nil {
		// too large for the cache, serve from the backing medium next time too
		log.Debugf("cache set %s: %s", key, err)
	}
	return val, nil
}

func (c *CachedMedium) Set(ctx context.Context, key string, value []byte) error {
	if err := c.backing.Set(ctx, key, value); err != nil {
		return err
	}
	if err := c.cache.Set([]byte(key), value, 0); err != nil {
		log.Debugf("cache set %s: %s", key, err)
		c.cache.Del([]byte(key))
	}
	return nil
}

func (c *CachedMedium) Delete(ctx context.Context, key string) error {
	if err := c.backing.Delete(ctx, key); err != nil {
		return err
	}
	c.cache.Del([]byte(key))
	return nil
}

func (c *CachedMedium) Keys(ctx context.Context, prefix string) ([]string, error) {
	return c.backing.Keys(ctx, prefix)
}

func (c *CachedMedium) Close() error {
	c.cache.Clear()
	return c.backing.Close()
}
