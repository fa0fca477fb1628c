package impl

import (
	"context"
	"testing"

	"cargomatch/internal/domain/entity"
	domainerrors "cargomatch/internal/domain/errors"
	"cargomatch/internal/domain/repository"
	mockRepo "cargomatch/internal/mocks/repository"
	mockService "cargomatch/internal/mocks/service"
	"cargomatch/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type shipmentServiceFixtures struct {
	service   usecase.ShipmentUsecase
	repos     *mockRepo.MockRepositoryFactory
	qr        *mockService.MockQRCodeService
	publisher *mockService.MockEventPublisher
}

func createTestShipmentService(t *testing.T) shipmentServiceFixtures {
	factory, txManager := newTestRepos(t)
	qr := mockService.NewMockQRCodeService(t)
	publisher := mockService.NewMockEventPublisher(t)

	svc := NewShipmentService(ShipmentServiceParams{
		TxManager:    txManager,
		ShipmentRepo: factory.Shipments,
		BookingRepo:  factory.Bookings,
		QRService:    qr,
		Publisher:    publisher,
		Logger:       newDiscardLogger(),
	})
	svc.(*shipmentService).now = fixedClock

	return shipmentServiceFixtures{service: svc, repos: factory, qr: qr, publisher: publisher}
}

func shipmentFor(booking *entity.Booking, status entity.ShipmentStatus) *entity.Shipment {
	return &entity.Shipment{
		ID:              uuid.New(),
		BookingID:       booking.ID,
		TrackingNumber:  "CM-20260314-ABC123",
		Status:          status,
		CurrentLocation: "Mumbai",
		Booking:         booking,
	}
}

func TestShipmentService_CreateShipment(t *testing.T) {
	fx := createTestShipmentService(t)
	ctx := context.Background()
	lspID := uuid.New()
	booking := pendingBooking(lspID)
	booking.Status = entity.BookingStatusApproved

	fx.repos.Bookings.EXPECT().FindByID(ctx, booking.ID).Return(booking, nil)
	fx.repos.Shipments.EXPECT().
		Create(ctx, mock.MatchedBy(func(s *entity.Shipment) bool {
			return s.BookingID == booking.ID && s.CurrentLocation == "Nhava Sheva"
		})).
		Return(nil)
	fx.repos.Shipments.EXPECT().
		AppendHistory(ctx, mock.MatchedBy(func(h *entity.ShipmentStatusHistory) bool {
			return h.Status == entity.ShipmentStatusScheduled && h.ChangedBy == "lsp"
		})).
		Return(nil)
	fx.repos.Notifications.EXPECT().Create(ctx, mock.Anything).Return(nil)
	fx.publisher.EXPECT().PublishNotificationEvent(ctx, mock.Anything).Return(nil)

	shipment, err := fx.service.CreateShipment(ctx, lspID, &usecase.CreateShipmentInput{
		BookingID:       booking.ID,
		CurrentLocation: " Nhava Sheva ",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentStatusScheduled, shipment.Status)
}

func TestShipmentService_CreateShipment_Duplicate(t *testing.T) {
	fx := createTestShipmentService(t)
	ctx := context.Background()
	lspID := uuid.New()
	booking := pendingBooking(lspID)
	booking.Status = entity.BookingStatusApproved

	fx.repos.Bookings.EXPECT().FindByID(ctx, booking.ID).Return(booking, nil)
	fx.repos.Shipments.EXPECT().Create(ctx, mock.Anything).Return(repository.ErrShipmentExists)

	_, err := fx.service.CreateShipment(ctx, lspID, &usecase.CreateShipmentInput{BookingID: booking.ID})
	assert.ErrorIs(t, err, domainerrors.ErrShipmentExists)
}

func TestShipmentService_CreateShipment_PendingBooking(t *testing.T) {
	fx := createTestShipmentService(t)
	ctx := context.Background()
	lspID := uuid.New()
	booking := pendingBooking(lspID)

	fx.repos.Bookings.EXPECT().FindByID(ctx, booking.ID).Return(booking, nil)

	_, err := fx.service.CreateShipment(ctx, lspID, &usecase.CreateShipmentInput{BookingID: booking.ID})
	assert.ErrorIs(t, err, domainerrors.ErrBookingStatusConflict)
}

func TestShipmentService_UpdateShipmentStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    entity.ShipmentStatus
		to      entity.ShipmentStatus
		wantErr error
	}{
		{"scheduled to in transit", entity.ShipmentStatusScheduled, entity.ShipmentStatusInTransit, nil},
		{"skip ahead to delivered", entity.ShipmentStatusScheduled, entity.ShipmentStatusDelivered, nil},
		{"backwards", entity.ShipmentStatusDelivered, entity.ShipmentStatusInTransit, domainerrors.ErrShipmentStatusConflict},
		{"same status", entity.ShipmentStatusInTransit, entity.ShipmentStatusInTransit, domainerrors.ErrShipmentStatusConflict},
		{"unknown status", entity.ShipmentStatusScheduled, "lost", domainerrors.ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestShipmentService(t)
			ctx := context.Background()
			lspID := uuid.New()
			shipment := shipmentFor(pendingBooking(lspID), tt.from)

			if tt.to.IsValid() {
				fx.repos.Shipments.EXPECT().FindByID(ctx, shipment.ID).Return(shipment, nil)
			}
			if tt.wantErr == nil {
				fx.repos.Shipments.EXPECT().UpdateStatus(ctx, shipment.ID, tt.from, tt.to, "Colombo").Return(nil)
				fx.repos.Shipments.EXPECT().
					AppendHistory(ctx, mock.MatchedBy(func(h *entity.ShipmentStatusHistory) bool {
						return h.Status == tt.to && h.Location == "Colombo" && h.CreatedAt.Equal(fixedNow)
					})).
					Return(nil)
				fx.repos.Notifications.EXPECT().Create(ctx, mock.Anything).Return(nil)
				fx.publisher.EXPECT().PublishNotificationEvent(ctx, mock.Anything).Return(nil)
			}

			updated, err := fx.service.UpdateShipmentStatus(ctx, lspID, shipment.ID, &usecase.UpdateShipmentStatusInput{
				Status:   tt.to,
				Location: "Colombo",
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, updated.Status)
		})
	}
}

func TestShipmentService_UpdateShipmentStatus_ConcurrentUpdate(t *testing.T) {
	fx := createTestShipmentService(t)
	ctx := context.Background()
	lspID := uuid.New()
	shipment := shipmentFor(pendingBooking(lspID), entity.ShipmentStatusScheduled)

	fx.repos.Shipments.EXPECT().FindByID(ctx, shipment.ID).Return(shipment, nil)
	fx.repos.Shipments.EXPECT().UpdateStatus(ctx, shipment.ID, mock.Anything, mock.Anything, mock.Anything).Return(repository.ErrStatusConflict)

	_, err := fx.service.UpdateShipmentStatus(ctx, lspID, shipment.ID, &usecase.UpdateShipmentStatusInput{Status: entity.ShipmentStatusInTransit})
	assert.ErrorIs(t, err, domainerrors.ErrShipmentStatusConflict)
	fx.repos.Shipments.AssertNotCalled(t, "AppendHistory", mock.Anything, mock.Anything)
}

func TestShipmentService_TrackShipment_OwnBookingsOnly(t *testing.T) {
	fx := createTestShipmentService(t)
	ctx := context.Background()
	booking := pendingBooking(uuid.New())
	shipment := shipmentFor(booking, entity.ShipmentStatusInTransit)

	fx.repos.Shipments.EXPECT().FindByTrackingNumber(ctx, shipment.TrackingNumber).Return(shipment, nil)
	fx.repos.Shipments.EXPECT().ListHistory(ctx, shipment.ID).Return([]*entity.ShipmentStatusHistory{{Status: entity.ShipmentStatusScheduled}}, nil)

	found, history, err := fx.service.TrackShipment(ctx, booking.TraderID, " cm-20260314-abc123 ")
	require.NoError(t, err)
	assert.Equal(t, shipment.ID, found.ID)
	assert.Len(t, history, 1)

	_, _, err = fx.service.TrackShipment(ctx, uuid.New(), shipment.TrackingNumber)
	assert.ErrorIs(t, err, domainerrors.ErrShipmentNotFound)
}

func TestShipmentService_TrackingQRCode(t *testing.T) {
	fx := createTestShipmentService(t)
	ctx := context.Background()
	booking := pendingBooking(uuid.New())
	shipment := shipmentFor(booking, entity.ShipmentStatusScheduled)

	fx.repos.Shipments.EXPECT().FindByTrackingNumber(ctx, shipment.TrackingNumber).Return(shipment, nil)
	fx.qr.EXPECT().GenerateTrackingQR(shipment.TrackingNumber).Return([]byte{0x89, 'P', 'N', 'G'}, nil)

	png, err := fx.service.TrackingQRCode(ctx, booking.TraderID, shipment.TrackingNumber)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}
