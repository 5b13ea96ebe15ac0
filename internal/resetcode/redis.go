package resetcode

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each entry as a hash with a key expiry, so codes are shared
// by every API instance and vanish on their own.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(ctx context.Context, addr, pass string, db int) (*RedisStore, error) {
	const op = "resetcode.NewRedisStore"

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     pass,
		DB:           db,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &RedisStore{client: client}, nil
}

func (r *RedisStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	const op = "resetcode.RedisStore.Get"

	vals, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("%s: %w", op, err)
	}
	if len(vals) == 0 {
		return Entry{}, false, nil
	}

	expires, err := strconv.ParseInt(vals["expires_at"], 10, 64)
	if err != nil {
		return Entry{}, false, fmt.Errorf("%s: bad expires_at: %w", op, err)
	}

	return Entry{Code: vals["code"], ExpiresAt: time.Unix(expires, 0)}, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, e Entry, ttl time.Duration) error {
	const op = "resetcode.RedisStore.Set"

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, map[string]interface{}{
		"code":       e.Code,
		"expires_at": e.ExpiresAt.Unix(),
	})
	pipe.Expire(ctx, key, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	const op = "resetcode.RedisStore.Delete"

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
