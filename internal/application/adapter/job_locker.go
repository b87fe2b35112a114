// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// JobLocker provides mutually exclusive named locks for background jobs.
type JobLocker interface {
	// Acquire tries to take the lock for ttl. It returns the owner token and false
	// when the lock is held elsewhere.
	Acquire(ctx context.Context, key string, ttl time.Duration) (token string, acquired bool, err error)

	// Release frees the lock if token still owns it.
	Release(ctx context.Context, key, token string) error
}
