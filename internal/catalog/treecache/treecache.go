// Package treecache caches serialized catalog trees in Redis and provides the
// per-scope lock used by reorder writes. A nil *Cache is valid and does nothing,
// which is how the service runs without Redis.
package treecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/catalog/tree"
	"github.com/fekuna/omnipos-catalog-service/pkg/cache"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrLockBusy is returned when a scope lock could not be taken after retrying.
var ErrLockBusy = errors.New("catalog scope is being modified, try again")

type Cache struct {
	redis  *cache.RedisClient
	ttl    time.Duration
	logger logger.ZapLogger
}

func New(redis *cache.RedisClient, ttl time.Duration, log logger.ZapLogger) *Cache {
	if redis == nil {
		return nil
	}
	return &Cache{redis: redis, ttl: ttl, logger: log}
}

// Generation identifies the catalog state a tree was loaded from. Every
// Invalidate bumps it, so a tree built from rows read before a write is stored
// under a key nobody reads anymore.
type Generation int64

// NoGeneration makes Set a no-op; Get returns it when the counter is unreadable.
const NoGeneration Generation = -1

func generationKey(merchantID string) string {
	return fmt.Sprintf("catalog:gen:%s", merchantID)
}

func treeKey(merchantID string, gen Generation, includeUnavailable bool) string {
	variant := "available"
	if includeUnavailable {
		variant = "all"
	}
	return fmt.Sprintf("catalog:tree:%s:%d:%s", merchantID, gen, variant)
}

func (c *Cache) generation(ctx context.Context, merchantID string) (Generation, error) {
	gen, err := c.redis.Client.Get(ctx, generationKey(merchantID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return NoGeneration, err
	}
	return Generation(gen), nil
}

// Get returns the cached tree and the generation it belongs to. On a miss the
// generation is still returned: callers load the tree and hand it back to Set
// with that generation. ok is false on a miss or any Redis error.
func (c *Cache) Get(ctx context.Context, merchantID string, includeUnavailable bool) (tree.Tree, Generation, bool) {
	if c == nil {
		return tree.Tree{}, NoGeneration, false
	}
	gen, err := c.generation(ctx, merchantID)
	if err != nil {
		c.logger.Warn("tree cache read failed", zap.String("merchant_id", merchantID), zap.Error(err))
		return tree.Tree{}, NoGeneration, false
	}
	val, err := c.redis.Client.Get(ctx, treeKey(merchantID, gen, includeUnavailable)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("tree cache read failed", zap.String("merchant_id", merchantID), zap.Error(err))
			return tree.Tree{}, NoGeneration, false
		}
		return tree.Tree{}, gen, false
	}
	var t tree.Tree
	if err := json.Unmarshal(val, &t); err != nil {
		c.logger.Warn("tree cache entry unreadable", zap.String("merchant_id", merchantID), zap.Error(err))
		return tree.Tree{}, gen, false
	}
	return t, gen, true
}

// Set stores t for gen. A tree whose generation was bumped in the meantime
// lands under a dead key and expires with the TTL.
func (c *Cache) Set(ctx context.Context, merchantID string, includeUnavailable bool, gen Generation, t tree.Tree) {
	if c == nil || gen == NoGeneration {
		return
	}
	data, err := json.Marshal(t)
	if err != nil {
		return
	}
	if err := c.redis.Client.Set(ctx, treeKey(merchantID, gen, includeUnavailable), data, c.ttl).Err(); err != nil {
		c.logger.Warn("tree cache write failed", zap.String("merchant_id", merchantID), zap.Error(err))
	}
}

// Invalidate moves the merchant to a new generation, orphaning both cached variants.
func (c *Cache) Invalidate(ctx context.Context, merchantID string) {
	if c == nil {
		return
	}
	if err := c.redis.Client.Incr(ctx, generationKey(merchantID)).Err(); err != nil {
		c.logger.Error("tree cache invalidation failed", zap.String("merchant_id", merchantID), zap.Error(err))
	}
}

// WithScopeLock runs fn while holding the lock for one sibling scope of a merchant.
// When Redis itself fails fn runs unlocked; the repositories serialize scope
// writes in Postgres as well.
func (c *Cache) WithScopeLock(ctx context.Context, merchantID, scope string, fn func() error) error {
	if c == nil {
		return fn()
	}
	key := fmt.Sprintf("lock:catalog:%s:%s", merchantID, scope)
	value := uuid.New().String()

	acquired := false
	for i := 0; i < 3; i++ {
		ok, err := c.redis.AcquireLock(ctx, key, value, 5*time.Second)
		if err != nil {
			c.logger.Warn("scope lock unavailable, continuing without it", zap.String("key", key), zap.Error(err))
			return fn()
		}
		if ok {
			acquired = true
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
	if !acquired {
		return ErrLockBusy
	}
	defer func() {
		if err := c.redis.ReleaseLock(context.Background(), key, value); err != nil {
			c.logger.Warn("failed to release lock", zap.String("key", key), zap.Error(err))
		}
	}()
	return fn()
}
