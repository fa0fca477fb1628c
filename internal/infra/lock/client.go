package lock

import (
	"context"
	"log/slog"

	"cargomatch/config"
	"cargomatch/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// LockerParams holds the dependencies of NewJobLocker.
type LockerParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewJobLocker picks the redis locker when redis is enabled and the in-process one otherwise.
func NewJobLocker(params LockerParams) (service.JobLocker, error) {
	cfg := params.Config.Redis
	if cfg == nil || !cfg.Enabled {
		params.Logger.Info("Redis disabled, using in-process job lock")

		return NewLocalLocker(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(params.Ctx).Err(); err != nil {
		_ = client.Close()

		return nil, errors.Wrapf(err, "failed to ping redis at %s", cfg.Addr)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return errors.WithStack(client.Close())
		},
	})

	params.Logger.Info("Redis job lock initialized", slog.String("addr", cfg.Addr))

	return NewRedisLocker(client, params.Logger), nil
}
