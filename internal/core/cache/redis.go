package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Cache is a read-through Redis cache. A nil *Cache is valid and always
// goes to the loader, which is how the service runs without Redis.
type Cache struct {
	RDB    *redis.Client
	Prefix string
	TTL    time.Duration
	sf     singleflight.Group
}

func New(rdb *redis.Client, prefix string, ttl time.Duration) *Cache {
	return &Cache{RDB: rdb, Prefix: prefix, TTL: ttl}
}

func NewClient(addr, pass string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})
}

func (c *Cache) key(k string) string { return c.Prefix + k }

func (c *Cache) GetOrLoad(ctx context.Context, key string, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if c == nil || c.RDB == nil {
		return load(ctx)
	}
	if b, err := c.RDB.Get(ctx, c.key(key)).Bytes(); err == nil {
		return b, nil
	}
	// concurrent misses for one key share a single load, detached from the
	// cancellation of whichever caller started it
	v, err, _ := c.sf.Do(key, func() (any, error) {
		lctx := context.WithoutCancel(ctx)
		b, e := load(lctx)
		if e != nil {
			return nil, e
		}
		_ = c.RDB.Set(lctx, c.key(key), b, c.TTL).Err()
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Delete evicts keys; Redis failures are ignored since the entry expires anyway.
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if c == nil || c.RDB == nil || len(keys) == 0 {
		return
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	_ = c.RDB.Del(ctx, full...).Err()
}

// DeletePrefix evicts every key under prefix, e.g. "client:".
func (c *Cache) DeletePrefix(ctx context.Context, prefix string) error {
	if c == nil || c.RDB == nil {
		return nil
	}
	iter := c.RDB.Scan(ctx, 0, c.key(prefix)+"*", 100).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 100 {
			if err := c.RDB.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return c.RDB.Del(ctx, batch...).Err()
	}
	return nil
}
