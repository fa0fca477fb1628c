// Package scheduler runs the booking closure job on its cron schedule.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"cargomatch/config"
	"cargomatch/internal/delivery"
	deliverycontext "cargomatch/internal/delivery/context"
	"cargomatch/internal/domain/lifecycle"
	"cargomatch/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

// SchedulerParams holds dependencies for the closure scheduler, injected by Fx.
type SchedulerParams struct {
	fx.In

	Lc        fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
	ClosureUC usecase.BookingClosureUsecase
}

type closureScheduler struct {
	cron      *cron.Cron
	spec      string
	enabled   bool
	closureUC usecase.BookingClosureUsecase
	logger    *slog.Logger
	stopped   chan struct{}
}

// NewScheduler registers the closure job. The job runs one batch at a time in
// this process; the job locker keeps other replicas from running the same day.
func NewScheduler(params SchedulerParams) (delivery.Delivery, error) {
	cfg := params.Config.Booking

	location := time.UTC
	if cfg.TimeZone != "" {
		loc, err := time.LoadLocation(cfg.TimeZone)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid booking time zone %q", cfg.TimeZone)
		}
		location = loc
	}

	logger := params.Logger.With(slog.String("component", "scheduler"))
	cronLogger := slogCronLogger{logger: logger}

	s := &closureScheduler{
		cron: cron.New(
			cron.WithLocation(location),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		spec:      cfg.ClosureCron,
		enabled:   cfg.ClosureEnabled,
		closureUC: params.ClosureUC,
		logger:    logger,
		stopped:   make(chan struct{}),
	}

	if s.enabled {
		if _, err := s.cron.AddFunc(s.spec, s.runClosure); err != nil {
			return nil, errors.Wrapf(err, "invalid closure cron %q", s.spec)
		}
	}

	params.Lc.Append(fx.Hook{
		OnStop: s.stop,
	})

	return s, nil
}

// Serve starts the cron loop and blocks until the scheduler is stopped.
func (s *closureScheduler) Serve(ctx context.Context) error {
	if !s.enabled {
		s.logger.Info("Booking closure scheduler disabled")

		return nil
	}

	s.logger.Info("Starting booking closure scheduler", slog.String("cron", s.spec))
	s.cron.Start()
	<-s.stopped

	return nil
}

func (s *closureScheduler) runClosure() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
	defer cancel()

	logger := s.logger.With(slog.String("run_id", uuid.NewString()))
	ctx = deliverycontext.WithLogger(ctx, logger)

	// The use case logs the run summary through the logger carried by ctx.
	if _, err := s.closureUC.CloseBookingsBeforeDeparture(ctx, time.Now()); err != nil {
		logger.Error("Booking closure run failed", slog.Any("error", err))
	}
}

func (s *closureScheduler) stop(ctx context.Context) error {
	defer close(s.stopped)

	if !s.enabled {
		return nil
	}

	s.logger.Info("Stopping booking closure scheduler")

	stopCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-stopCtx.Done():
		return errors.Wrap(stopCtx.Err(), "closure run did not finish before shutdown")
	}
}

// slogCronLogger adapts slog to cron.Logger.
type slogCronLogger struct {
	logger *slog.Logger
}

func (l slogCronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l slogCronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append([]any{slog.Any("error", err)}, keysAndValues...)...)
}
