package impl

import (
	"context"
	"testing"
	"time"

	"cargomatch/internal/domain/entity"
	domainerrors "cargomatch/internal/domain/errors"
	"cargomatch/internal/domain/repository"
	"cargomatch/internal/domain/service"
	mockRepo "cargomatch/internal/mocks/repository"
	mockService "cargomatch/internal/mocks/service"
	"cargomatch/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type bookingServiceFixtures struct {
	service   usecase.BookingUsecase
	repos     *mockRepo.MockRepositoryFactory
	txManager *mockRepo.MockTransactionManager
	publisher *mockService.MockEventPublisher
	metrics   *mockService.MockMetricsRecorder
}

func createTestBookingService(t *testing.T) bookingServiceFixtures {
	factory, txManager := newTestRepos(t)
	publisher := mockService.NewMockEventPublisher(t)
	metrics := mockService.NewMockMetricsRecorder(t)

	svc := NewBookingService(BookingServiceParams{
		TxManager:     txManager,
		BookingRepo:   factory.Bookings,
		ContainerRepo: factory.Containers,
		LSPRepo:       factory.LSPProfiles,
		Publisher:     publisher,
		Metrics:       metrics,
		Logger:        newDiscardLogger(),
	})
	svc.(*bookingService).now = fixedClock

	return bookingServiceFixtures{
		service:   svc,
		repos:     factory,
		txManager: txManager,
		publisher: publisher,
		metrics:   metrics,
	}
}

func bookableContainer(lspID uuid.UUID) *entity.Container {
	return &entity.Container{
		ID:              uuid.New(),
		LSPID:           lspID,
		ContainerNumber: "MSKU1234567",
		Origin:          "Mumbai",
		Destination:     "Dubai",
		DepartureDate:   fixedNow.Add(72 * time.Hour),
		ArrivalDate:     fixedNow.Add(240 * time.Hour),
		CapacityCBM:     30,
		PricePerCBM:     decimal.RequireFromString("40"),
		Currency:        "USD",
		IsAvailable:     true,
		ApprovalStatus:  entity.ContainerApprovalApproved,
	}
}

func webCargo() entity.CargoDetails {
	return entity.CargoDetails{Source: entity.CargoSourceWeb, Web: &entity.WebCargo{CargoType: "textiles"}}
}

func pendingBooking(lspID uuid.UUID) *entity.Booking {
	return &entity.Booking{
		ID:            uuid.New(),
		BookingNumber: "BK-20260314-ABCDEF",
		ContainerID:   uuid.New(),
		TraderID:      uuid.New(),
		LSPID:         lspID,
		Status:        entity.BookingStatusPending,
	}
}

func TestBookingService_CreateBooking(t *testing.T) {
	fx := createTestBookingService(t)
	ctx := context.Background()
	lspID := uuid.New()
	lspUserID := uuid.New()
	traderID := uuid.New()
	container := bookableContainer(lspID)
	container.AutoApproveBookings = true

	fx.repos.Containers.EXPECT().FindByID(ctx, container.ID).Return(container, nil)
	fx.repos.Bookings.EXPECT().
		Create(ctx, mock.MatchedBy(func(b *entity.Booking) bool {
			return b.TraderID == traderID &&
				b.LSPID == lspID &&
				b.Status == entity.BookingStatusPending &&
				b.IsAutoApproved &&
				b.CargoType == "textiles" &&
				b.TotalPrice.Equal(decimal.RequireFromString("400")) &&
				len(b.BookingNumber) == len("BK-20260314-ABCDEF")
		})).
		Return(nil)
	fx.repos.LSPProfiles.EXPECT().FindByID(ctx, lspID).Return(&entity.LSPProfile{ID: lspID, UserID: lspUserID}, nil)
	fx.repos.Notifications.EXPECT().
		Create(ctx, mock.MatchedBy(func(n *entity.Notification) bool {
			return n.UserID == lspUserID && n.Type == entity.NotificationBookingCreated
		})).
		Return(nil)
	fx.publisher.EXPECT().
		PublishNotificationEvent(ctx, mock.MatchedBy(func(e *service.NotificationEvent) bool {
			return e.UserID == lspUserID.String()
		})).
		Return(nil)
	fx.metrics.EXPECT().BookingTransitioned("pending").Return()

	booking, err := fx.service.CreateBooking(ctx, traderID, &usecase.CreateBookingInput{
		ContainerID:  container.ID,
		CargoDetails: webCargo(),
		VolumeCBM:    10,
		WeightKg:     1200,
		Notes:        "docs at https://example.com/packing.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/packing.pdf"}, booking.NoteLinks)
}

func TestBookingService_CreateBooking_ExceedsCapacity(t *testing.T) {
	fx := createTestBookingService(t)
	ctx := context.Background()
	container := bookableContainer(uuid.New())

	fx.repos.Containers.EXPECT().FindByID(ctx, container.ID).Return(container, nil)

	_, err := fx.service.CreateBooking(ctx, uuid.New(), &usecase.CreateBookingInput{
		ContainerID:  container.ID,
		CargoDetails: webCargo(),
		VolumeCBM:    31,
	})
	assert.ErrorIs(t, err, domainerrors.ErrBookingExceedsCapacity)
	assert.Zero(t, fx.txManager.Calls)
}

func TestBookingService_CreateBooking_ContainerNotBookable(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*entity.Container)
	}{
		{"pending review", func(c *entity.Container) { c.ApprovalStatus = entity.ContainerApprovalPending }},
		{"taken", func(c *entity.Container) { c.IsAvailable = false }},
		{"departed", func(c *entity.Container) { c.DepartureDate = fixedNow.Add(-time.Hour) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestBookingService(t)
			ctx := context.Background()
			container := bookableContainer(uuid.New())
			tt.mutate(container)

			fx.repos.Containers.EXPECT().FindByID(ctx, container.ID).Return(container, nil)

			_, err := fx.service.CreateBooking(ctx, uuid.New(), &usecase.CreateBookingInput{
				ContainerID:  container.ID,
				CargoDetails: webCargo(),
				VolumeCBM:    1,
			})
			assert.ErrorIs(t, err, domainerrors.ErrContainerUnavailable)
		})
	}
}

func TestBookingService_CreateBooking_InvalidCargo(t *testing.T) {
	fx := createTestBookingService(t)

	_, err := fx.service.CreateBooking(context.Background(), uuid.New(), &usecase.CreateBookingInput{
		ContainerID:  uuid.New(),
		CargoDetails: entity.CargoDetails{Source: "fax"},
		VolumeCBM:    1,
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestBookingService_ApproveBooking_Manual(t *testing.T) {
	fx := createTestBookingService(t)
	ctx := context.Background()
	lspID := uuid.New()
	booking := pendingBooking(lspID)

	fx.repos.Bookings.EXPECT().FindByID(ctx, booking.ID).Return(booking, nil)
	fx.repos.Bookings.EXPECT().Approve(ctx, booking.ID, "see you at the port", fixedNow).Return(nil)
	fx.repos.Containers.EXPECT().Reserve(ctx, booking.ContainerID).Return(nil)
	fx.repos.Notifications.EXPECT().
		Create(ctx, mock.MatchedBy(func(n *entity.Notification) bool {
			return n.UserID == booking.TraderID && n.Type == entity.NotificationBookingApproved
		})).
		Return(nil).Once()
	fx.publisher.EXPECT().PublishNotificationEvent(ctx, mock.Anything).Return(nil).Once()
	fx.metrics.EXPECT().BookingTransitioned("approved").Return()

	approved, err := fx.service.ApproveBooking(ctx, lspID, booking.ID, " see you at the port ")
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusApproved, approved.Status)
	assert.Equal(t, fixedNow, *approved.ApprovedAt)
	fx.repos.Shipments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookingService_ApproveBooking_AutoApprovedCreatesShipment(t *testing.T) {
	fx := createTestBookingService(t)
	ctx := context.Background()
	lspID := uuid.New()
	lspUserID := uuid.New()
	booking := pendingBooking(lspID)
	booking.IsAutoApproved = true
	booking.Container = bookableContainer(lspID)

	fx.repos.Bookings.EXPECT().FindByID(ctx, booking.ID).Return(booking, nil)
	fx.repos.Bookings.EXPECT().Approve(ctx, booking.ID, "", fixedNow).Return(nil)
	fx.repos.Containers.EXPECT().Reserve(ctx, booking.ContainerID).Return(nil)
	fx.repos.Shipments.EXPECT().
		Create(ctx, mock.MatchedBy(func(s *entity.Shipment) bool {
			return s.BookingID == booking.ID &&
				s.Status == entity.ShipmentStatusScheduled &&
				s.CurrentLocation == "Mumbai" &&
				s.TrackingNumber[:3] == "CM-"
		})).
		Return(nil).Once()
	fx.repos.Shipments.EXPECT().
		AppendHistory(ctx, mock.MatchedBy(func(h *entity.ShipmentStatusHistory) bool {
			return h.Status == entity.ShipmentStatusScheduled
		})).
		Return(nil).Once()
	fx.repos.LSPProfiles.EXPECT().FindByID(ctx, lspID).Return(&entity.LSPProfile{ID: lspID, UserID: lspUserID}, nil)
	fx.repos.Notifications.EXPECT().
		Create(ctx, mock.MatchedBy(func(n *entity.Notification) bool {
			return n.UserID == lspUserID
		})).
		Return(nil).Once()
	fx.publisher.EXPECT().PublishNotificationEvent(ctx, mock.Anything).Return(nil).Once()
	fx.metrics.EXPECT().BookingTransitioned("approved").Return()

	_, err := fx.service.ApproveBooking(ctx, lspID, booking.ID, "")
	require.NoError(t, err)
}

func TestBookingService_ApproveBooking_Guards(t *testing.T) {
	t.Run("other lsp gets not found", func(t *testing.T) {
		fx := createTestBookingService(t)
		ctx := context.Background()
		booking := pendingBooking(uuid.New())

		fx.repos.Bookings.EXPECT().FindByID(ctx, booking.ID).Return(booking, nil)

		_, err := fx.service.ApproveBooking(ctx, uuid.New(), booking.ID, "")
		assert.ErrorIs(t, err, domainerrors.ErrBookingNotFound)
	})

	t.Run("missing booking gets not found", func(t *testing.T) {
		fx := createTestBookingService(t)
		ctx := context.Background()
		id := uuid.New()

		fx.repos.Bookings.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrBookingNotFound)

		_, err := fx.service.ApproveBooking(ctx, uuid.New(), id, "")
		assert.ErrorIs(t, err, domainerrors.ErrBookingNotFound)
	})

	t.Run("already approved is a conflict", func(t *testing.T) {
		fx := createTestBookingService(t)
		ctx := context.Background()
		lspID := uuid.New()
		booking := pendingBooking(lspID)
		booking.Status = entity.BookingStatusApproved

		fx.repos.Bookings.EXPECT().FindByID(ctx, booking.ID).Return(booking, nil)

		_, err := fx.service.ApproveBooking(ctx, lspID, booking.ID, "")
		require.ErrorIs(t, err, domainerrors.ErrBookingStatusConflict)
		assert.Contains(t, err.Error(), "Cannot update booking with status 'approved'")
	})

	t.Run("lost race is a conflict", func(t *testing.T) {
		fx := createTestBookingService(t)
		ctx := context.Background()
		lspID := uuid.New()
		booking := pendingBooking(lspID)
		rejected := *booking
		rejected.Status = entity.BookingStatusRejected

		fx.repos.Bookings.EXPECT().FindByID(ctx, booking.ID).Return(booking, nil).Once()
		fx.repos.Bookings.EXPECT().Approve(ctx, booking.ID, "", fixedNow).Return(repository.ErrStatusConflict)
		fx.repos.Bookings.EXPECT().FindByID(ctx, booking.ID).Return(&rejected, nil).Once()

		_, err := fx.service.ApproveBooking(ctx, lspID, booking.ID, "")
		require.ErrorIs(t, err, domainerrors.ErrBookingStatusConflict)
		assert.Contains(t, err.Error(), "'rejected'")
	})

	t.Run("container already taken", func(t *testing.T) {
		fx := createTestBookingService(t)
		ctx := context.Background()
		lspID := uuid.New()
		booking := pendingBooking(lspID)

		fx.repos.Bookings.EXPECT().FindByID(ctx, booking.ID).Return(booking, nil)
		fx.repos.Bookings.EXPECT().Approve(ctx, booking.ID, "", fixedNow).Return(nil)
		fx.repos.Containers.EXPECT().Reserve(ctx, booking.ContainerID).Return(repository.ErrStatusConflict)

		_, err := fx.service.ApproveBooking(ctx, lspID, booking.ID, "")
		assert.ErrorIs(t, err, domainerrors.ErrContainerUnavailable)
	})
}

func TestBookingService_RejectBooking(t *testing.T) {
	fx := createTestBookingService(t)
	ctx := context.Background()
	lspID := uuid.New()
	booking := pendingBooking(lspID)

	fx.repos.Bookings.EXPECT().FindByID(ctx, booking.ID).Return(booking, nil)
	fx.repos.Bookings.EXPECT().Reject(ctx, booking.ID, "overweight").Return(nil)
	fx.repos.Notifications.EXPECT().
		Create(ctx, mock.MatchedBy(func(n *entity.Notification) bool {
			return n.UserID == booking.TraderID && n.Type == entity.NotificationBookingRejected
		})).
		Return(nil)
	fx.publisher.EXPECT().PublishNotificationEvent(ctx, mock.Anything).Return(nil)
	fx.metrics.EXPECT().BookingTransitioned("rejected").Return()

	rejected, err := fx.service.RejectBooking(ctx, lspID, booking.ID, "overweight")
	require.NoError(t, err)
	assert.Equal(t, "overweight", rejected.Notes)
}

func TestBookingService_RejectBooking_BlankReason(t *testing.T) {
	fx := createTestBookingService(t)

	_, err := fx.service.RejectBooking(context.Background(), uuid.New(), uuid.New(), "   ")
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestBookingService_CancelBooking(t *testing.T) {
	t.Run("pending booking", func(t *testing.T) {
		fx := createTestBookingService(t)
		ctx := context.Background()
		lspID := uuid.New()
		booking := pendingBooking(lspID)

		fx.repos.Bookings.EXPECT().FindByID(ctx, booking.ID).Return(booking, nil)
		fx.repos.Bookings.EXPECT().Cancel(ctx, booking.ID, fixedNow).Return(nil)
		fx.repos.LSPProfiles.EXPECT().FindByID(ctx, lspID).Return(&entity.LSPProfile{UserID: uuid.New()}, nil)
		fx.repos.Notifications.EXPECT().Create(ctx, mock.Anything).Return(nil)
		fx.publisher.EXPECT().PublishNotificationEvent(ctx, mock.Anything).Return(nil)
		fx.metrics.EXPECT().BookingTransitioned("cancelled").Return()

		cancelled, err := fx.service.CancelBooking(ctx, booking.TraderID, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.BookingStatusCancelled, cancelled.Status)
	})

	t.Run("approved booking", func(t *testing.T) {
		fx := createTestBookingService(t)
		ctx := context.Background()
		booking := pendingBooking(uuid.New())
		booking.Status = entity.BookingStatusApproved

		fx.repos.Bookings.EXPECT().FindByID(ctx, booking.ID).Return(booking, nil)

		_, err := fx.service.CancelBooking(ctx, booking.TraderID, booking.ID)
		assert.ErrorIs(t, err, domainerrors.ErrBookingStatusConflict)
	})
}

func expectClose(fx bookingServiceFixtures, ctx context.Context, booking *entity.Booking, closedBy string, lspUserID uuid.UUID, shipment *entity.Shipment) {
	fx.repos.Bookings.EXPECT().Close(ctx, booking.ID, booking.Status, closedBy, fixedNow).Return(nil).Once()
	if booking.Status == entity.BookingStatusApproved {
		fx.repos.Containers.EXPECT().Release(ctx, booking.ContainerID).Return(nil).Once()
	}
	if shipment == nil {
		fx.repos.Shipments.EXPECT().FindByBookingID(ctx, booking.ID).Return(nil, repository.ErrShipmentNotFound).Once()
	} else {
		fx.repos.Shipments.EXPECT().FindByBookingID(ctx, booking.ID).Return(shipment, nil).Once()
		fx.repos.Shipments.EXPECT().
			UpdateStatus(ctx, shipment.ID, shipment.Status, entity.ShipmentStatusClosed, shipment.CurrentLocation).
			Return(nil).Once()
		fx.repos.Shipments.EXPECT().
			AppendHistory(ctx, mock.MatchedBy(func(h *entity.ShipmentStatusHistory) bool {
				return h.Status == entity.ShipmentStatusClosed && h.ChangedBy == closedBy
			})).
			Return(nil).Once()
	}
	fx.repos.LSPProfiles.EXPECT().FindByID(ctx, booking.LSPID).Return(&entity.LSPProfile{ID: booking.LSPID, UserID: lspUserID}, nil).Once()
	fx.repos.Notifications.EXPECT().
		Create(ctx, mock.MatchedBy(func(n *entity.Notification) bool {
			return n.Type == entity.NotificationBookingClosed && (n.UserID == lspUserID || n.UserID == booking.TraderID)
		})).
		Return(nil).Twice()
}

func TestBookingService_CloseBooking_ByLSP(t *testing.T) {
	fx := createTestBookingService(t)
	ctx := context.Background()
	lspID := uuid.New()
	booking := pendingBooking(lspID)
	booking.Status = entity.BookingStatusApproved
	shipment := &entity.Shipment{ID: uuid.New(), Status: entity.ShipmentStatusInTransit, CurrentLocation: "Jebel Ali"}

	fx.repos.Bookings.EXPECT().FindByID(ctx, booking.ID).Return(booking, nil)
	expectClose(fx, ctx, booking, "lsp", uuid.New(), shipment)
	fx.publisher.EXPECT().PublishNotificationEvent(ctx, mock.Anything).Return(nil).Twice()
	fx.metrics.EXPECT().BookingTransitioned("closed").Return()

	closed, err := fx.service.CloseBooking(ctx, usecase.Actor{Role: entity.RoleLSP, LSPID: &lspID}, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusClosed, closed.Status)
	assert.Equal(t, "lsp", closed.ClosedBy)
	assert.Equal(t, fixedNow, *closed.ClosedAt)
}

func TestBookingService_CloseBooking_ByAdmin(t *testing.T) {
	fx := createTestBookingService(t)
	ctx := context.Background()
	booking := pendingBooking(uuid.New())
	booking.Status = entity.BookingStatusApproved

	fx.repos.Bookings.EXPECT().FindByID(ctx, booking.ID).Return(booking, nil)
	expectClose(fx, ctx, booking, "admin", uuid.New(), nil)
	fx.publisher.EXPECT().PublishNotificationEvent(ctx, mock.Anything).Return(errors.New("broker down")).Twice()
	fx.metrics.EXPECT().BookingTransitioned("closed").Return()

	_, err := fx.service.CloseBooking(ctx, usecase.Actor{Role: entity.RoleAdmin}, booking.ID)
	require.NoError(t, err, "publish failures must not fail the close")
}

func TestBookingService_CloseBooking_AnyOpenStatus(t *testing.T) {
	for _, status := range []entity.BookingStatus{
		entity.BookingStatusPending,
		entity.BookingStatusPendingApproval,
		entity.BookingStatusRejected,
		entity.BookingStatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			fx := createTestBookingService(t)
			ctx := context.Background()
			booking := pendingBooking(uuid.New())
			booking.Status = status

			fx.repos.Bookings.EXPECT().FindByID(ctx, booking.ID).Return(booking, nil)
			expectClose(fx, ctx, booking, "admin", uuid.New(), nil)
			fx.publisher.EXPECT().PublishNotificationEvent(ctx, mock.Anything).Return(nil).Twice()
			fx.metrics.EXPECT().BookingTransitioned("closed").Return()

			closed, err := fx.service.CloseBooking(ctx, usecase.Actor{Role: entity.RoleAdmin}, booking.ID)
			require.NoError(t, err)
			assert.Equal(t, entity.BookingStatusClosed, closed.Status)
			require.NotNil(t, closed.ClosedAt)
			// Only an approved booking reserved its container.
			fx.repos.Containers.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
		})
	}
}

func TestBookingService_CloseBooking_AlreadyClosed(t *testing.T) {
	closedAt := fixedNow.Add(-time.Hour)

	for name, booking := range map[string]*entity.Booking{
		"closed status":    {ID: uuid.New(), Status: entity.BookingStatusClosed},
		"closed_at is set": {ID: uuid.New(), Status: entity.BookingStatusApproved, ClosedAt: &closedAt},
	} {
		t.Run(name, func(t *testing.T) {
			fx := createTestBookingService(t)
			ctx := context.Background()

			fx.repos.Bookings.EXPECT().FindByID(ctx, booking.ID).Return(booking, nil)

			_, err := fx.service.CloseBooking(ctx, usecase.Actor{Role: entity.RoleAdmin}, booking.ID)
			assert.ErrorIs(t, err, domainerrors.ErrBookingStatusConflict)
		})
	}
}

func TestBookingService_CloseBooking_LostRaceWithScheduler(t *testing.T) {
	fx := createTestBookingService(t)
	ctx := context.Background()
	booking := pendingBooking(uuid.New())
	booking.Status = entity.BookingStatusApproved

	fx.repos.Bookings.EXPECT().FindByID(ctx, booking.ID).Return(booking, nil)
	fx.repos.Bookings.EXPECT().Close(ctx, booking.ID, entity.BookingStatusApproved, "admin", fixedNow).Return(repository.ErrStatusConflict)

	_, err := fx.service.CloseBooking(ctx, usecase.Actor{Role: entity.RoleAdmin}, booking.ID)
	assert.ErrorIs(t, err, domainerrors.ErrBookingStatusConflict)
	fx.repos.Notifications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	fx.publisher.AssertNotCalled(t, "PublishNotificationEvent", mock.Anything, mock.Anything)
}

func TestBookingService_ListLSPBookings_ExpandsPending(t *testing.T) {
	fx := createTestBookingService(t)
	ctx := context.Background()
	lspID := uuid.New()

	fx.repos.Bookings.EXPECT().
		List(ctx, mock.MatchedBy(func(f repository.BookingFilter) bool {
			return *f.LSPID == lspID &&
				assert.ObjectsAreEqual([]entity.BookingStatus{entity.BookingStatusPending, entity.BookingStatusPendingApproval}, f.Statuses)
		})).
		Return([]*entity.Booking{}, int64(0), nil)

	_, _, err := fx.service.ListLSPBookings(ctx, lspID, []entity.BookingStatus{entity.BookingStatusPending}, repository.Page{})
	require.NoError(t, err)
}
