package service

import (
	"context"
	"errors"
	"time"
)

// ErrLockHeld is returned when another process holds the lock.
var ErrLockHeld = errors.New("lock is held by another process")

// JobLocker serialises a named job across processes.
type JobLocker interface {
	// Acquire takes the lock for ttl and returns a release func.
	// ErrLockHeld when another holder has it.
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, err error)
}
