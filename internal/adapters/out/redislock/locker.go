// Package redislock is a ports.Locker shared by every process pointed at the
// same Redis. Each key is a SET NX entry holding a random token with a TTL, so
// a crashed holder cannot block an entity forever.
package redislock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"restaurant/internal/pkg/keylock"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix       = "restaurant:lock:"
	defaultTTL      = 30 * time.Second
	defaultRetry    = 25 * time.Millisecond
	releaseDeadline = 2 * time.Second
)

// Deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

type Locker struct {
	client *redis.Client
	ttl    time.Duration
	retry  time.Duration
}

// NewLocker builds a Locker. A non-positive ttl falls back to 30s.
func NewLocker(client *redis.Client, ttl time.Duration) *Locker {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Locker{client: client, ttl: ttl, retry: defaultRetry}
}

// Lock takes keys in sorted order, polling while a key is held elsewhere.
// On failure everything taken so far is released.
func (l *Locker) Lock(ctx context.Context, keys ...string) (func(), error) {
	keys = keylock.Normalize(keys)
	token := uuid.NewString()

	held := make([]string, 0, len(keys))
	for _, k := range keys {
		if err := l.acquire(ctx, keyPrefix+k, token); err != nil {
			l.release(held, token)
			return nil, fmt.Errorf("lock %s: %w", k, err)
		}
		held = append(held, keyPrefix+k)
	}

	var once sync.Once
	return func() {
		once.Do(func() { l.release(held, token) })
	}, nil
}

func (l *Locker) acquire(ctx context.Context, key, token string) error {
	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// release runs on a fresh context; the caller's one may already be done.
func (l *Locker) release(keys []string, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), releaseDeadline)
	defer cancel()

	for i := len(keys) - 1; i >= 0; i-- {
		_ = releaseScript.Run(ctx, l.client, []string{keys[i]}, token).Err()
	}
}

// Holder reports the token currently stored for key, empty when free.
func (l *Locker) Holder(ctx context.Context, key string) (string, error) {
	token, err := l.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return token, err
}
