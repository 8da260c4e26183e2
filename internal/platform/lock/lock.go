// Package lock serializes resource assignment and duplicate-contact checks
// across front-desk terminals. The database unique constraints remain the
// authoritative guard; the lock narrows the read-then-write race window so
// the second terminal sees a clean business error instead of a constraint
// violation.
package lock

import (
	"context"
	"time"
)

// Locker acquires a named lock. Release must be called exactly once.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(ctx context.Context) error, err error)
}

// Noop is a Locker that never blocks, for tests and single-terminal
// deployments without redis.
type Noop struct{}

func (Noop) Acquire(ctx context.Context, key string, ttl time.Duration) (func(ctx context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}
