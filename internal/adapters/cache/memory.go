package cache

import (
	"context"
	"sync"
	"time"

	"devevent/internal/domain"
)

type memoryEventListCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	events  []*domain.Event
	expires time.Time
}

// NewMemoryEventListCache returns a process-local EventListCache, used when
// Redis is not configured or does not answer at startup.
func NewMemoryEventListCache(ttl time.Duration) domain.EventListCache {
	return &memoryEventListCache{ttl: ttl, now: time.Now}
}

func (c *memoryEventListCache) Get(_ context.Context) ([]*domain.Event, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.events == nil || !c.now().Before(c.expires) {
		return nil, false, nil
	}
	out := make([]*domain.Event, len(c.events))
	copy(out, c.events)
	return out, true, nil
}

func (c *memoryEventListCache) Set(_ context.Context, events []*domain.Event) error {
	stored := make([]*domain.Event, len(events))
	copy(stored, events)
	c.mu.Lock()
	c.events = stored
	c.expires = c.now().Add(c.ttl)
	c.mu.Unlock()
	return nil
}

func (c *memoryEventListCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	c.events = nil
	c.mu.Unlock()
	return nil
}
