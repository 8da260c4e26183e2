package lock

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ErrLockHeld indicates another terminal holds the lock and retries ran out.
var ErrLockHeld = errors.New("lock held by another terminal")

// unlockScript deletes the key only if this holder still owns it, so a
// holder whose lock expired cannot delete a lock since acquired by another
// terminal. The check and delete must be one atomic step.
const unlockScript = `
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
`

// RedisLocker implements Locker with SET NX EX. The TTL bounds how long a
// crashed terminal can hold a lock.
type RedisLocker struct {
	client        *redis.Client
	retryInterval time.Duration
	maxRetries    int
}

// NewRedisLocker creates a locker over the given client.
func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{
		client:        client,
		retryInterval: 50 * time.Millisecond,
		maxRetries:    20,
	}
}

var _ Locker = (*RedisLocker)(nil)

// Acquire takes the lock, retrying briefly if another terminal holds it.
func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(ctx context.Context) error, error) {
	holder := uuid.NewString()

	for i := 0; i < l.maxRetries; i++ {
		ok, err := l.client.SetNX(ctx, key, holder, ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			release := func(ctx context.Context) error {
				return l.client.Eval(ctx, unlockScript, []string{key}, holder).Err()
			}
			return release, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retryInterval):
		}
	}
	return nil, ErrLockHeld
}
