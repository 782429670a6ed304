package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DanyaArt/itbot/internal/quiz"
)

// CacheTTL bounds how long an idle session sits in redis. The primary store
// remains authoritative; the TTL is the hook for an eviction policy.
const CacheTTL = 24 * time.Hour

// Cache layers a redis read-through cache over a primary SessionStore.
// Cache failures are invisible to callers: the primary always wins.
type Cache struct {
	client  *redis.Client
	primary quiz.SessionStore
}

func NewCache(client *redis.Client, primary quiz.SessionStore) *Cache {
	return &Cache{client: client, primary: primary}
}

func key(userID int64) string { return fmt.Sprintf("session:%d", userID) }

func (c *Cache) Put(ctx context.Context, s *quiz.Session) error {
	if err := c.primary.Put(ctx, s); err != nil {
		return err
	}
	if data, err := json.Marshal(s); err == nil {
		c.client.Set(ctx, key(s.UserID), data, CacheTTL)
	}
	return nil
}

func (c *Cache) Get(ctx context.Context, userID int64) (*quiz.Session, error) {
	// a miss, a cache outage and a corrupt entry all fall through to the primary
	if data, err := c.client.Get(ctx, key(userID)).Result(); err == nil {
		var s quiz.Session
		if jerr := json.Unmarshal([]byte(data), &s); jerr == nil {
			return &s, nil
		}
	}
	s, err := c.primary.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if data, jerr := json.Marshal(s); jerr == nil {
		c.client.Set(ctx, key(userID), data, CacheTTL)
	}
	return s, nil
}

func (c *Cache) Delete(ctx context.Context, userID int64) error {
	c.client.Del(ctx, key(userID))
	return c.primary.Delete(ctx, userID)
}
