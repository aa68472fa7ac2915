// Package lock provides a Redis-backed mutual exclusion lock with a TTL so
// a crashed holder cannot block later runs forever.
package lock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotHeld is returned by Release when this lock does not hold the key
var ErrNotHeld = errors.New("lock not held")

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLock is a single-key lock identified by a random token
type RedisLock struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration
	token  string
}

// NewRedis creates a lock on key. The lock expires after ttl if never released.
func NewRedis(client redis.Cmdable, key string, ttl time.Duration) *RedisLock {
	return &RedisLock{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

// Acquire takes the lock. It reports false without error when another
// holder owns it.
func (l *RedisLock) Acquire(ctx context.Context) (bool, error) {
	token, err := newToken()
	if err != nil {
		return false, err
	}

	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to set lock %s: %w", l.key, err)
	}
	if ok {
		l.token = token
	}
	return ok, nil
}

// Release deletes the key only if it still carries this holder's token
func (l *RedisLock) Release(ctx context.Context) error {
	if l.token == "" {
		return ErrNotHeld
	}

	deleted, err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Int()
	if err != nil {
		return fmt.Errorf("failed to release lock %s: %w", l.key, err)
	}
	l.token = ""
	if deleted == 0 {
		return ErrNotHeld
	}
	return nil
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate lock token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
