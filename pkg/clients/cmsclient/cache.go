package cmsclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/core/model"
)

// ContentStore is the read/patch surface the rest of the application uses.
// *Client implements it directly; CachedStore layers a redis cache on top.
type ContentStore interface {
	EventsBetween(ctx context.Context, start, end time.Time) ([]model.EventRecord, error)
	EventByID(ctx context.Context, id string) (*model.EventRecord, error)
	Posts(ctx context.Context, limit int) ([]model.Post, error)
	LatestPostTime(ctx context.Context) (time.Time, error)
	Documents(ctx context.Context) ([]model.Document, error)
	Winners(ctx context.Context) ([]model.Winner, error)
	IncrementRSVP(ctx context.Context, eventID string, response model.RSVPResponse) (int, error)
}

// CachedStore caches content reads in redis with a TTL. Cache failures
// degrade to a direct fetch, they never fail the request. Writes (the RSVP
// patch) pass through and drop the affected event's cache entry.
type CachedStore struct {
	store  ContentStore
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedStore wraps a content store with a redis cache
func NewCachedStore(store ContentStore, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedStore {
	return &CachedStore{store: store, rdb: rdb, ttl: ttl, logger: logger}
}

func cached[T any](ctx context.Context, c *CachedStore, key string, fetch func() (T, error)) (T, error) {
	raw, err := c.rdb.Get(ctx, key).Result()
	if err == nil {
		var value T
		if err := json.Unmarshal([]byte(raw), &value); err == nil {
			return value, nil
		}
		c.logger.Warn("dropping undecodable cache entry", zap.String("key", key))
	} else if err != redis.Nil {
		c.logger.Warn("cache read failed, fetching directly", zap.String("key", key), zap.Error(err))
	}

	value, err := fetch()
	if err != nil {
		return value, err
	}

	if encoded, err := json.Marshal(value); err == nil {
		if err := c.rdb.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
			c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return value, nil
}

func (c *CachedStore) EventsBetween(ctx context.Context, start, end time.Time) ([]model.EventRecord, error) {
	key := fmt.Sprintf("cms:events:%d:%d", start.Unix(), end.Unix())
	return cached(ctx, c, key, func() ([]model.EventRecord, error) {
		return c.store.EventsBetween(ctx, start, end)
	})
}

func (c *CachedStore) EventByID(ctx context.Context, id string) (*model.EventRecord, error) {
	return cached(ctx, c, "cms:event:"+id, func() (*model.EventRecord, error) {
		return c.store.EventByID(ctx, id)
	})
}

func (c *CachedStore) Posts(ctx context.Context, limit int) ([]model.Post, error) {
	return cached(ctx, c, fmt.Sprintf("cms:posts:%d", limit), func() ([]model.Post, error) {
		return c.store.Posts(ctx, limit)
	})
}

// LatestPostTime is deliberately uncached: newsletter gating needs the
// store's current view, not a stale one.
func (c *CachedStore) LatestPostTime(ctx context.Context) (time.Time, error) {
	return c.store.LatestPostTime(ctx)
}

func (c *CachedStore) Documents(ctx context.Context) ([]model.Document, error) {
	return cached(ctx, c, "cms:documents", func() ([]model.Document, error) {
		return c.store.Documents(ctx)
	})
}

func (c *CachedStore) Winners(ctx context.Context) ([]model.Winner, error) {
	return cached(ctx, c, "cms:winners", func() ([]model.Winner, error) {
		return c.store.Winners(ctx)
	})
}

func (c *CachedStore) IncrementRSVP(ctx context.Context, eventID string, response model.RSVPResponse) (int, error) {
	count, err := c.store.IncrementRSVP(ctx, eventID, response)
	if err != nil {
		return 0, err
	}
	if err := c.rdb.Del(ctx, "cms:event:"+eventID).Err(); err != nil && err != redis.Nil {
		c.logger.Warn("failed to invalidate event cache entry",
			zap.String("event_id", eventID), zap.Error(err))
	}
	return count, nil
}
