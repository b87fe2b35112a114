package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/pocketledger/backend/internal/application/adapter"
)

func newMiniredisLocker(t *testing.T) (adapter.JobLocker, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisJobLocker(client), mr
}

func TestRedisJobLocker(t *testing.T) {
	ctx := context.Background()

	t.Run("second acquire fails while held", func(t *testing.T) {
		locker, _ := newMiniredisLocker(t)

		token, ok, err := locker.Acquire(ctx, "recurring", time.Minute)
		if err != nil || !ok || token == "" {
			t.Fatalf("first acquire: token=%q ok=%v err=%v", token, ok, err)
		}

		_, ok, err = locker.Acquire(ctx, "recurring", time.Minute)
		if err != nil {
			t.Fatalf("second acquire: %v", err)
		}
		if ok {
			t.Error("expected second acquire to fail")
		}
	})

	t.Run("release frees the lock", func(t *testing.T) {
		locker, _ := newMiniredisLocker(t)

		token, _, _ := locker.Acquire(ctx, "recurring", time.Minute)
		if err := locker.Release(ctx, "recurring", token); err != nil {
			t.Fatalf("release: %v", err)
		}

		_, ok, err := locker.Acquire(ctx, "recurring", time.Minute)
		if err != nil || !ok {
			t.Errorf("expected acquire after release, ok=%v err=%v", ok, err)
		}
	})

	t.Run("release with a stale token keeps the lock", func(t *testing.T) {
		locker, _ := newMiniredisLocker(t)

		if _, ok, _ := locker.Acquire(ctx, "recurring", time.Minute); !ok {
			t.Fatal("expected acquire")
		}
		if err := locker.Release(ctx, "recurring", "someone-else"); err != nil {
			t.Fatalf("release: %v", err)
		}

		if _, ok, _ := locker.Acquire(ctx, "recurring", time.Minute); ok {
			t.Error("lock should still be held")
		}
	})

	t.Run("lock expires after ttl", func(t *testing.T) {
		locker, mr := newMiniredisLocker(t)

		if _, ok, _ := locker.Acquire(ctx, "recurring", time.Second); !ok {
			t.Fatal("expected acquire")
		}
		mr.FastForward(2 * time.Second)

		if _, ok, _ := locker.Acquire(ctx, "recurring", time.Second); !ok {
			t.Error("expected acquire after expiry")
		}
	})
}

func TestMemoryJobLocker(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	locker := NewMemoryJobLocker().(*memoryJobLocker)
	locker.now = func() time.Time { return now }

	token, ok, _ := locker.Acquire(ctx, "recurring", time.Minute)
	if !ok {
		t.Fatal("expected first acquire")
	}
	if _, ok, _ := locker.Acquire(ctx, "recurring", time.Minute); ok {
		t.Fatal("expected second acquire to fail")
	}

	now = now.Add(2 * time.Minute)
	if _, ok, _ := locker.Acquire(ctx, "recurring", time.Minute); !ok {
		t.Fatal("expected acquire after expiry")
	}

	// The first holder's token no longer owns the lock.
	_ = locker.Release(ctx, "recurring", token)
	if _, ok, _ := locker.Acquire(ctx, "recurring", time.Minute); ok {
		t.Error("stale release must not free the lock")
	}
}
