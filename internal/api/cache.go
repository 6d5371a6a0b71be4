package api

import (
	"time"
)

func NewClientCache(ttl time.Duration) *ClientCache {
	return &ClientCache{
		ttl: ttl,
	}
}

func (c *ClientCache) Get() ([]Client, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.valid {
		return nil, false
	}

	if time.Since(c.fetchedAt) > c.ttl {
		return nil, false
	}

	clients := make([]Client, len(c.clients))
	copy(clients, c.clients)
	return clients, true
}

func (c *ClientCache) Set(clients []Client) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clients = make([]Client, len(clients))
	copy(c.clients, clients)
	c.fetchedAt = time.Now()
	c.valid = true
}

func (c *ClientCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clients = nil
	c.valid = false
}

func (c *ClientCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.valid {
		return 0
	}
	return len(c.clients)
}

func (c *ClientCache) IsExpired() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.valid {
		return true
	}
	return time.Since(c.fetchedAt) > c.ttl
}
