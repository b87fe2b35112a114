package adapters

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pocketledger/backend/internal/application/adapter"
)

// releaseScript deletes the key only while it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// redisJobLocker implements adapter.JobLocker with SET NX PX.
type redisJobLocker struct {
	client *redis.Client
	prefix string
}

// NewRedisJobLocker creates a JobLocker shared by every process using the same redis.
func NewRedisJobLocker(client *redis.Client) adapter.JobLocker {
	return &redisJobLocker{
		client: client,
		prefix: "pocketledger:lock:",
	}
}

// Acquire takes the lock if nobody holds it.
func (l *redisJobLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.prefix+key, token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Release frees the lock if token still owns it.
func (l *redisJobLocker) Release(ctx context.Context, key, token string) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.prefix + key}, token).Err(); err != nil {
		return fmt.Errorf("failed to release lock %s: %w", key, err)
	}
	return nil
}

// memoryJobLocker implements adapter.JobLocker within a single process.
type memoryJobLocker struct {
	mu    sync.Mutex
	locks map[string]memoryLock
	now   func() time.Time
}

type memoryLock struct {
	token     string
	expiresAt time.Time
}

// NewMemoryJobLocker creates an in-process JobLocker, used when redis is not configured.
func NewMemoryJobLocker() adapter.JobLocker {
	return &memoryJobLocker{
		locks: make(map[string]memoryLock),
		now:   time.Now,
	}
}

// Acquire takes the lock if nobody holds it or the holder's ttl elapsed.
func (l *memoryJobLocker) Acquire(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if held, ok := l.locks[key]; ok && now.Before(held.expiresAt) {
		return "", false, nil
	}

	token := uuid.NewString()
	l.locks[key] = memoryLock{token: token, expiresAt: now.Add(ttl)}
	return token, true, nil
}

// Release frees the lock if token still owns it.
func (l *memoryJobLocker) Release(_ context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if held, ok := l.locks[key]; ok && held.token == token {
		delete(l.locks, key)
	}
	return nil
}
