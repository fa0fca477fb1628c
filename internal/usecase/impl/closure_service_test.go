package impl

import (
	"context"
	"testing"
	"time"

	"cargomatch/internal/domain/entity"
	"cargomatch/internal/domain/repository"
	"cargomatch/internal/domain/service"
	mockRepo "cargomatch/internal/mocks/repository"
	mockService "cargomatch/internal/mocks/service"
	"cargomatch/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type closureServiceFixtures struct {
	service   usecase.BookingClosureUsecase
	repos     *mockRepo.MockRepositoryFactory
	locker    *mockService.MockJobLocker
	publisher *mockService.MockEventPublisher
	metrics   *mockService.MockMetricsRecorder
	released  *bool
}

func createTestClosureService(t *testing.T) closureServiceFixtures {
	factory, txManager := newTestRepos(t)
	locker := mockService.NewMockJobLocker(t)
	publisher := mockService.NewMockEventPublisher(t)
	metrics := mockService.NewMockMetricsRecorder(t)

	svc, err := NewClosureService(ClosureServiceParams{
		TxManager:   txManager,
		BookingRepo: factory.Bookings,
		Locker:      locker,
		Publisher:   publisher,
		Metrics:     metrics,
		Config:      newTestConfig(),
		Logger:      newDiscardLogger(),
	})
	require.NoError(t, err)
	svc.(*closureService).now = fixedClock

	return closureServiceFixtures{
		service:   svc,
		repos:     factory,
		locker:    locker,
		publisher: publisher,
		metrics:   metrics,
		released:  new(bool),
	}
}

func (fx closureServiceFixtures) expectLock(ctx context.Context, key string) {
	released := fx.released
	fx.locker.EXPECT().Acquire(ctx, key, 10*time.Minute).Return(func(context.Context) error {
		*released = true

		return nil
	}, nil)
}

func approvedBooking() *entity.Booking {
	return &entity.Booking{
		ID:            uuid.New(),
		BookingNumber: "BK-20260313-QWERTY",
		ContainerID:   uuid.New(),
		TraderID:      uuid.New(),
		LSPID:         uuid.New(),
		Status:        entity.BookingStatusApproved,
	}
}

func TestClosureService_ClosesBookingsDepartingTomorrow(t *testing.T) {
	fx := createTestClosureService(t)
	ctx := context.Background()
	target := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	first := approvedBooking()
	second := approvedBooking()

	fx.expectLock(ctx, "booking-closure:2026-03-15")
	fx.repos.Bookings.EXPECT().FindDueForClosure(ctx, target).Return([]*entity.Booking{first, second}, nil)

	for _, b := range []*entity.Booking{first, second} {
		fx.repos.Bookings.EXPECT().Close(ctx, b.ID, entity.BookingStatusApproved, "scheduler", fixedNow).Return(nil).Once()
		fx.repos.Containers.EXPECT().Release(ctx, b.ContainerID).Return(nil).Once()
		fx.repos.Shipments.EXPECT().FindByBookingID(ctx, b.ID).Return(nil, repository.ErrShipmentNotFound).Once()
		fx.repos.LSPProfiles.EXPECT().FindByID(ctx, b.LSPID).Return(&entity.LSPProfile{UserID: uuid.New()}, nil).Once()
	}
	fx.repos.Notifications.EXPECT().Create(ctx, mock.Anything).Return(nil).Times(4)
	fx.publisher.EXPECT().PublishNotificationEvent(ctx, mock.Anything).Return(nil).Times(4)
	fx.metrics.EXPECT().BookingTransitioned("closed").Return().Twice()
	fx.metrics.EXPECT().ClosureRun("success", 2).Return()

	report, err := fx.service.CloseBookingsBeforeDeparture(ctx, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", report.TargetDate)
	assert.Equal(t, 2, report.Selected)
	assert.Equal(t, 2, report.Closed)
	assert.Zero(t, report.Failed)
	assert.True(t, *fx.released)
}

func TestClosureService_SkipsConcurrentlyClosedAndContinuesAfterFailure(t *testing.T) {
	fx := createTestClosureService(t)
	ctx := context.Background()

	raced := approvedBooking()
	broken := approvedBooking()
	fine := approvedBooking()

	fx.expectLock(ctx, mock.Anything)
	fx.repos.Bookings.EXPECT().FindDueForClosure(ctx, mock.Anything).Return([]*entity.Booking{raced, broken, fine}, nil)

	fx.repos.Bookings.EXPECT().Close(ctx, raced.ID, entity.BookingStatusApproved, "scheduler", fixedNow).Return(repository.ErrStatusConflict).Once()
	fx.repos.Bookings.EXPECT().Close(ctx, broken.ID, entity.BookingStatusApproved, "scheduler", fixedNow).Return(nil).Once()
	fx.repos.Containers.EXPECT().Release(ctx, broken.ContainerID).Return(errors.New("connection reset")).Once()

	fx.repos.Bookings.EXPECT().Close(ctx, fine.ID, entity.BookingStatusApproved, "scheduler", fixedNow).Return(nil).Once()
	fx.repos.Containers.EXPECT().Release(ctx, fine.ContainerID).Return(nil).Once()
	fx.repos.Shipments.EXPECT().FindByBookingID(ctx, fine.ID).Return(nil, repository.ErrShipmentNotFound).Once()
	fx.repos.LSPProfiles.EXPECT().FindByID(ctx, fine.LSPID).Return(&entity.LSPProfile{UserID: uuid.New()}, nil).Once()
	fx.repos.Notifications.EXPECT().Create(ctx, mock.Anything).Return(nil).Twice()
	fx.publisher.EXPECT().PublishNotificationEvent(ctx, mock.Anything).Return(nil).Twice()
	fx.metrics.EXPECT().BookingTransitioned("closed").Return().Once()
	fx.metrics.EXPECT().ClosureRun("partial", 1).Return()

	report, err := fx.service.CloseBookingsBeforeDeparture(ctx, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Selected)
	assert.Equal(t, 1, report.Closed)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 1, report.Failed)
}

func TestClosureService_LockHeldSkipsRun(t *testing.T) {
	fx := createTestClosureService(t)
	ctx := context.Background()

	fx.locker.EXPECT().Acquire(ctx, mock.Anything, mock.Anything).Return(nil, service.ErrLockHeld)
	fx.metrics.EXPECT().ClosureRun("skipped", 0).Return()

	report, err := fx.service.CloseBookingsBeforeDeparture(ctx, fixedNow)
	require.NoError(t, err)
	assert.Zero(t, report.Selected)
	fx.repos.Bookings.AssertNotCalled(t, "FindDueForClosure", mock.Anything, mock.Anything)
}

func TestClosureService_TargetDateFollowsTimeZone(t *testing.T) {
	factory, txManager := newTestRepos(t)
	locker := mockService.NewMockJobLocker(t)
	metrics := mockService.NewMockMetricsRecorder(t)

	cfg := newTestConfig()
	cfg.Booking.TimeZone = "Asia/Kolkata"

	svc, err := NewClosureService(ClosureServiceParams{
		TxManager:   txManager,
		BookingRepo: factory.Bookings,
		Locker:      locker,
		Publisher:   mockService.NewMockEventPublisher(t),
		Metrics:     metrics,
		Config:      cfg,
		Logger:      newDiscardLogger(),
	})
	require.NoError(t, err)
	ctx := context.Background()

	// 20:00 UTC on the 14th is already the 15th in India.
	now := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)

	locker.EXPECT().Acquire(ctx, "booking-closure:2026-03-16", mock.Anything).
		Return(func(context.Context) error { return nil }, nil)
	factory.Bookings.EXPECT().FindDueForClosure(ctx, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)).Return(nil, nil)
	metrics.EXPECT().ClosureRun("success", 0).Return()

	report, err := svc.CloseBookingsBeforeDeparture(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-16", report.TargetDate)
}

func TestNewClosureService_InvalidTimeZone(t *testing.T) {
	cfg := newTestConfig()
	cfg.Booking.TimeZone = "Mars/Olympus"

	_, err := NewClosureService(ClosureServiceParams{Config: cfg, Logger: newDiscardLogger()})
	assert.Error(t, err)
}
