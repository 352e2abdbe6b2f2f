package server

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// renderCache holds encoded images that do not change between requests:
// thumbnails and the contact sheet. Concurrent misses for the same key
// share one render.
type renderCache struct {
	mu    sync.RWMutex
	items map[string][]byte
	group singleflight.Group
}

func newRenderCache() *renderCache {
	return &renderCache{items: make(map[string][]byte)}
}

func (c *renderCache) get(key string, render func() ([]byte, error)) ([]byte, error) {
	c.mu.RLock()
	data, ok := c.items[key]
	c.mu.RUnlock()
	if ok {
		return data, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		data, err := render()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.items[key] = data
		c.mu.Unlock()
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}
