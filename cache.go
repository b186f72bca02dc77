package stacktobasics

import (
	"sync"
	"time"
)

// SiteCache holds the Site the preview server renders from, rebuilt from
// the store once the TTL lapses or after Invalidate.
type SiteCache struct {
	mu      sync.RWMutex
	site    *Site
	fetched time.Time
	ttl     time.Duration
	build   func() (*Site, error)
}

// NewSiteCache creates a SiteCache that calls build on a miss.
func NewSiteCache(ttl time.Duration, build func() (*Site, error)) *SiteCache {
	return &SiteCache{ttl: ttl, build: build}
}

func (c *SiteCache) valid() bool {
	return c.site != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a rebuild.
func (c *SiteCache) Invalidate() {
	c.mu.Lock()
	c.site = nil
	c.mu.Unlock()
}

// Site returns the cached Site, rebuilding it when stale. It tries a read
// lock first and only takes the write lock to rebuild.
func (c *SiteCache) Site() (*Site, error) {
	c.mu.RLock()
	if c.valid() {
		site := c.site
		c.mu.RUnlock()
		return site, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.site, nil
	}
	site, err := c.build()
	if err != nil {
		return nil, err
	}
	c.site = site
	c.fetched = time.Now()
	return site, nil
}
