package cmd

import (
	"context"
	"sync"
	"time"

	"github.com/mj1618/desktop-raise/internal/model"
	"github.com/mj1618/desktop-raise/internal/platform"
)

// mcpWindowCache provides a TTL-based cache for the managed window list.
type mcpWindowCache struct {
	mu        sync.Mutex
	windows   []model.Window
	timestamp time.Time
	valid     bool
	ttl       time.Duration
}

// newMCPWindowCache creates a new cache. A ttl of 0 disables caching.
func newMCPWindowCache(ttl time.Duration) *mcpWindowCache {
	return &mcpWindowCache{ttl: ttl}
}

// listWindows returns the cached list if within TTL, otherwise lists fresh.
func (c *mcpWindowCache) listWindows(ctx context.Context, wm platform.WindowManager) ([]model.Window, error) {
	if c.ttl == 0 {
		return wm.ListWindows(ctx)
	}

	c.mu.Lock()
	if c.valid && time.Since(c.timestamp) < c.ttl {
		windows := c.windows
		c.mu.Unlock()
		return windows, nil
	}
	c.mu.Unlock()

	windows, err := wm.ListWindows(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.windows, c.timestamp, c.valid = windows, time.Now(), true
	c.mu.Unlock()

	return windows, nil
}

// invalidate drops the cached list.
func (c *mcpWindowCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.windows, c.valid = nil, false
}
