package impl

import (
	"context"
	"log/slog"
	"time"

	"cargomatch/config"
	deliverycontext "cargomatch/internal/delivery/context"
	"cargomatch/internal/domain/entity"
	"cargomatch/internal/domain/repository"
	"cargomatch/internal/domain/service"
	"cargomatch/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	closedByScheduler = "scheduler"
	closureDateLayout = "2006-01-02"

	closureResultSuccess = "success"
	closureResultPartial = "partial"
	closureResultSkipped = "skipped"
	closureResultError   = "error"
)

type closureService struct {
	txManager   repository.TransactionManager
	bookingRepo repository.BookingRepository
	locker      service.JobLocker
	notifier    *notifier
	metrics     service.MetricsRecorder
	location    *time.Location
	leadDays    int
	lockTTL     time.Duration
	logger      *slog.Logger
	now         func() time.Time
}

// ClosureServiceParams holds dependencies for the closure job, injected by Fx.
type ClosureServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	BookingRepo repository.BookingRepository
	Locker      service.JobLocker
	Publisher   service.EventPublisher
	Metrics     service.MetricsRecorder
	Config      *config.Config
	Logger      *slog.Logger
}

// NewClosureService creates the pre-departure booking closure job.
func NewClosureService(params ClosureServiceParams) (usecase.BookingClosureUsecase, error) {
	cfg := params.Config.Booking

	location := time.UTC
	if cfg.TimeZone != "" {
		loc, err := time.LoadLocation(cfg.TimeZone)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid booking time zone %q", cfg.TimeZone)
		}
		location = loc
	}

	leadDays := cfg.ClosureLeadDays
	if leadDays <= 0 {
		leadDays = 1
	}

	lockTTL := cfg.ClosureLockTTL
	if lockTTL <= 0 {
		lockTTL = 10 * time.Minute
	}

	return &closureService{
		txManager:   params.TxManager,
		bookingRepo: params.BookingRepo,
		locker:      params.Locker,
		notifier:    newNotifier(params.Publisher, params.Logger),
		metrics:     params.Metrics,
		location:    location,
		leadDays:    leadDays,
		lockTTL:     lockTTL,
		logger:      params.Logger,
		now:         utcNow,
	}, nil
}

// CloseBookingsBeforeDeparture closes the bookings departing leadDays after now.
// A booking closed concurrently fails the close guard and is counted as skipped.
func (srv *closureService) CloseBookingsBeforeDeparture(ctx context.Context, now time.Time) (*usecase.ClosureReport, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)

	local := now.In(srv.location)
	target := time.Date(local.Year(), local.Month(), local.Day()+srv.leadDays, 0, 0, 0, 0, time.UTC)

	report := &usecase.ClosureReport{
		TargetDate: target.Format(closureDateLayout),
		StartedAt:  srv.now(),
	}

	release, err := srv.locker.Acquire(ctx, "booking-closure:"+report.TargetDate, srv.lockTTL)
	if err != nil {
		if errors.Is(err, service.ErrLockHeld) {
			logger.Info("Closure run already in progress elsewhere", slog.String("targetDate", report.TargetDate))
			report.FinishedAt = srv.now()
			srv.metrics.ClosureRun(closureResultSkipped, 0)

			return report, nil
		}
		srv.metrics.ClosureRun(closureResultError, 0)

		return nil, errors.Wrap(err, "failed to acquire closure lock")
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("Failed to release closure lock", slog.Any("error", err))
		}
	}()

	bookings, err := srv.bookingRepo.FindDueForClosure(ctx, target)
	if err != nil {
		srv.metrics.ClosureRun(closureResultError, 0)

		return nil, errors.Wrap(err, "failed to find bookings due for closure")
	}
	report.Selected = len(bookings)

	for _, booking := range bookings {
		if ctx.Err() != nil {
			report.Failed += report.Selected - report.Closed - report.Skipped - report.Failed
			break
		}

		switch err := srv.closeOne(ctx, booking); {
		case err == nil:
			report.Closed++
		case errors.Is(err, repository.ErrStatusConflict):
			report.Skipped++
			logger.Info("Booking already closed, skipping", slog.String("bookingID", booking.ID.String()))
		default:
			report.Failed++
			logger.Error("Failed to close booking",
				slog.String("bookingID", booking.ID.String()),
				slog.Any("error", err),
			)
		}
	}

	report.FinishedAt = srv.now()

	result := closureResultSuccess
	if report.Failed > 0 {
		result = closureResultPartial
	}
	srv.metrics.ClosureRun(result, report.Closed)

	logger.Info("Closure run finished",
		slog.String("targetDate", report.TargetDate),
		slog.Int("selected", report.Selected),
		slog.Int("closed", report.Closed),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed),
		slog.Duration("elapsed", report.FinishedAt.Sub(report.StartedAt)),
	)

	return report, nil
}

// closeOne closes a single booking in its own transaction.
func (srv *closureService) closeOne(ctx context.Context, booking *entity.Booking) error {
	at := srv.now()
	out := &outbox{}

	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		return closeBooking(ctx, repos, out, booking, closedByScheduler, at)
	})
	if err != nil {
		return err
	}

	srv.notifier.publish(ctx, out)
	srv.metrics.BookingTransitioned(string(entity.BookingStatusClosed))

	return nil
}
