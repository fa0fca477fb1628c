// Package lock serialises scheduled jobs across replicas.
package lock

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"cargomatch/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cargomatch:lock:"

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisLocker struct {
	client redis.UniversalClient
	logger *slog.Logger
}

// NewRedisLocker returns a JobLocker backed by SET NX.
func NewRedisLocker(client redis.UniversalClient, logger *slog.Logger) service.JobLocker {
	return &redisLocker{client: client, logger: logger}
}

// Acquire takes key for ttl.
func (l *redisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	token := uuid.NewString()
	fullKey := keyPrefix + key

	ok, err := l.client.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to acquire lock %s", key)
	}
	if !ok {
		return nil, service.ErrLockHeld
	}

	l.logger.DebugContext(ctx, "Lock acquired", slog.String("key", key), slog.Duration("ttl", ttl))

	release := func(ctx context.Context) error {
		n, err := releaseScript.Run(ctx, l.client, []string{fullKey}, token).Int()
		if err != nil {
			return errors.Wrapf(err, "failed to release lock %s", key)
		}
		if n == 0 {
			l.logger.WarnContext(ctx, "Lock expired before release", slog.String("key", key))
		}

		return nil
	}

	return release, nil
}

type localLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewLocalLocker returns an in-process JobLocker for single-replica deployments.
func NewLocalLocker() service.JobLocker {
	return &localLocker{held: map[string]struct{}{}}
}

func (l *localLocker) Acquire(_ context.Context, key string, _ time.Duration) (func(context.Context) error, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[key]; ok {
		return nil, service.ErrLockHeld
	}
	l.held[key] = struct{}{}

	return func(context.Context) error {
		l.mu.Lock()
		delete(l.held, key)
		l.mu.Unlock()

		return nil
	}, nil
}
