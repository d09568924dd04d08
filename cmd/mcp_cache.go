package cmd

import (
	"context"
	"sync"
	"time"

	"github.com/mj1618/computer-use/internal/platform"
)

// screenCache provides a TTL-based cache for display geometry, which the
// MCP server is asked for far more often than it changes.
type screenCache struct {
	mu        sync.Mutex
	info      *platform.ScreenInfo
	timestamp time.Time
	ttl       time.Duration
}

// newScreenCache creates a new cache. A ttl of 0 disables caching.
func newScreenCache(ttl time.Duration) *screenCache {
	return &screenCache{ttl: ttl}
}

// screenSize returns the cached geometry if within TTL, otherwise reads
// fresh.
func (c *screenCache) screenSize(ctx context.Context, reader platform.ScreenReader) (*platform.ScreenInfo, error) {
	if c == nil || c.ttl == 0 {
		return reader.ScreenSize(ctx)
	}

	c.mu.Lock()
	if c.info != nil && time.Since(c.timestamp) < c.ttl {
		info := c.info
		c.mu.Unlock()
		return info, nil
	}
	c.mu.Unlock()

	info, err := reader.ScreenSize(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.info = info
	c.timestamp = time.Now()
	c.mu.Unlock()

	return info, nil
}

// invalidate drops the cached geometry.
func (c *screenCache) invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.info = nil
}
