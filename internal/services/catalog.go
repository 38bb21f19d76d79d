package services

import (
	"context"
	"log/slog"

	"devevent/internal/domain"
)

type cachedCatalog struct {
	source domain.EventCatalog
	cache  domain.EventListCache
	logger *slog.Logger
}

// NewCachedCatalog reads the event listing through cache. Cache failures are
// logged and fall back to source; single-event lookups are not cached.
func NewCachedCatalog(source domain.EventCatalog, cache domain.EventListCache, logger *slog.Logger) domain.EventCatalog {
	return &cachedCatalog{source: source, cache: cache, logger: logger}
}

func (c *cachedCatalog) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	events, ok, err := c.cache.Get(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "read event cache", "error", err)
	}
	if ok {
		return events, nil
	}

	events, err = c.source.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, events); err != nil {
		c.logger.WarnContext(ctx, "write event cache", "error", err)
	}
	return events, nil
}

func (c *cachedCatalog) GetEvent(ctx context.Context, slug string) (*domain.Event, error) {
	return c.source.GetEvent(ctx, slug)
}
