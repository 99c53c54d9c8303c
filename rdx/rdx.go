package rdx

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a read-through cache for single-event fetches. Entries are dropped on
// every write so a stale attendee list is never served. Cache failures degrade
// to the store, they never fail a request.
type Cache struct {
	conn *redis.Client
	ttl  time.Duration
}

func New(addr string) *Cache {
	return &Cache{
		conn: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:  5 * time.Minute,
	}
}

func eventKey(id string) string { return "event:" + id }

func (c *Cache) GetEvent(ctx context.Context, id string, out any) bool {
	raw, err := c.conn.Get(ctx, eventKey(id)).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func (c *Cache) SetEvent(ctx context.Context, id string, event any) {
	raw, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := c.conn.Set(ctx, eventKey(id), raw, c.ttl).Err(); err != nil {
		slog.Warn("event cache set failed", "eventid", id, "err", err)
	}
}

func (c *Cache) DelEvent(ctx context.Context, id string) {
	if err := c.conn.Del(ctx, eventKey(id)).Err(); err != nil {
		slog.Warn("event cache invalidation failed", "eventid", id, "err", err)
	}
}
