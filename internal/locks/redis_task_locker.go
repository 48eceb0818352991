package locks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/rueidis"
)

const retryInterval = 25 * time.Millisecond

var releaseScript = rueidis.NewLuaScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisTaskLocker struct {
	client rueidis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisTaskLocker(client rueidis.Client, prefix string, ttl time.Duration) *RedisTaskLocker {
	return &RedisTaskLocker{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Acquire retries until the lock is free, ctx is done or one ttl has passed.
func (r *RedisTaskLocker) Acquire(ctx context.Context, taskID string) (string, error) {
	token := uuid.NewString()
	deadline := time.Now().Add(r.ttl)

	for {
		cmd := r.client.B().Set().
			Key(r.key(taskID)).
			Value(token).
			Nx().
			PxMilliseconds(r.ttl.Milliseconds()).
			Build()

		err := r.client.Do(ctx, cmd).Error()
		if err == nil {
			return token, nil
		}
		if !rueidis.IsRedisNil(err) {
			return "", err
		}

		if time.Now().After(deadline) {
			return "", ErrLockNotAcquired
		}

		select {
		case <-ctx.Done():
			return "", ErrLockNotAcquired
		case <-time.After(retryInterval):
		}
	}
}

func (r *RedisTaskLocker) Release(ctx context.Context, taskID, token string) error {
	deleted, err := releaseScript.Exec(ctx, r.client, []string{r.key(taskID)}, []string{token}).AsInt64()
	if err != nil {
		return err
	}

	if deleted == 0 {
		return ErrLockNotHeld
	}

	return nil
}

func (r *RedisTaskLocker) key(taskID string) string {
	return r.prefix + taskID
}
