package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	deliverycontext "cargomatch/internal/delivery/context"
	"cargomatch/internal/domain/entity"
	domainerrors "cargomatch/internal/domain/errors"
	"cargomatch/internal/domain/repository"
	"cargomatch/internal/domain/service"
	"cargomatch/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const changedByLSP = "lsp"

type shipmentService struct {
	txManager    repository.TransactionManager
	shipmentRepo repository.ShipmentRepository
	bookingRepo  repository.BookingRepository
	qrService    service.QRCodeService
	notifier     *notifier
	logger       *slog.Logger
	now          func() time.Time
}

// ShipmentServiceParams holds dependencies for ShipmentService, injected by Fx.
type ShipmentServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	ShipmentRepo repository.ShipmentRepository
	BookingRepo  repository.BookingRepository
	QRService    service.QRCodeService
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewShipmentService creates a new shipment service instance
func NewShipmentService(params ShipmentServiceParams) usecase.ShipmentUsecase {
	return &shipmentService{
		txManager:    params.TxManager,
		shipmentRepo: params.ShipmentRepo,
		bookingRepo:  params.BookingRepo,
		qrService:    params.QRService,
		notifier:     newNotifier(params.Publisher, params.Logger),
		logger:       params.Logger,
		now:          utcNow,
	}
}

func (srv *shipmentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateShipment starts tracking an approved booking of the LSP.
func (srv *shipmentService) CreateShipment(ctx context.Context, lspID uuid.UUID, input *usecase.CreateShipmentInput) (*entity.Shipment, error) {
	booking, err := srv.bookingRepo.FindByID(ctx, input.BookingID)
	if err != nil {
		return nil, mapRepoError(err, bookingErrors, "failed to find booking")
	}
	if booking.LSPID != lspID {
		return nil, domainerrors.ErrBookingNotFound
	}
	if booking.Status != entity.BookingStatusApproved {
		return nil, domainerrors.ErrBookingStatusConflict.WithDetails(
			fmt.Sprintf("shipments need an approved booking, booking is '%s'", booking.Status))
	}

	now := srv.now()
	out := &outbox{}
	var shipment *entity.Shipment

	err = srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		created, err := createScheduledShipment(ctx, repos, booking, strings.TrimSpace(input.CurrentLocation), input.EstimatedArrival, changedByLSP, now)
		if err != nil {
			return err
		}
		shipment = created

		return out.add(ctx, repos.NotificationRepo(), notificationDraft{
			UserID:    booking.TraderID,
			Type:      entity.NotificationShipmentCreated,
			Title:     "Shipment scheduled",
			Message:   fmt.Sprintf("Booking %s is now tracked as %s", booking.BookingNumber, shipment.TrackingNumber),
			RelatedID: &shipment.ID,
		}, now)
	})
	if err != nil {
		return nil, err
	}

	srv.notifier.publish(ctx, out)

	srv.log(ctx).Info("Shipment created",
		slog.String("shipmentID", shipment.ID.String()),
		slog.String("trackingNumber", shipment.TrackingNumber),
	)

	return shipment, nil
}

// UpdateShipmentStatus moves a shipment forward and logs the change.
func (srv *shipmentService) UpdateShipmentStatus(ctx context.Context, lspID, shipmentID uuid.UUID, input *usecase.UpdateShipmentStatusInput) (*entity.Shipment, error) {
	if !input.Status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("unknown shipment status '%s'", input.Status))
	}

	shipment, err := srv.findLSPShipment(ctx, lspID, shipmentID)
	if err != nil {
		return nil, err
	}
	if !shipment.Status.CanTransitionTo(input.Status) {
		return nil, domainerrors.ErrShipmentStatusConflict.WithDetails(
			fmt.Sprintf("cannot move shipment from '%s' to '%s'", shipment.Status, input.Status))
	}

	location := strings.TrimSpace(input.Location)
	if location == "" {
		location = shipment.CurrentLocation
	}

	now := srv.now()
	out := &outbox{}
	err = srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := repos.ShipmentRepo().UpdateStatus(ctx, shipment.ID, shipment.Status, input.Status, location); err != nil {
			return mapRepoError(err, shipmentErrors, "failed to update shipment status")
		}

		if err := repos.ShipmentRepo().AppendHistory(ctx, &entity.ShipmentStatusHistory{
			ShipmentID: shipment.ID,
			Status:     input.Status,
			Location:   location,
			Notes:      strings.TrimSpace(input.Notes),
			ChangedBy:  changedByLSP,
			CreatedAt:  now,
		}); err != nil {
			return errors.Wrap(err, "failed to record shipment history")
		}

		if shipment.Booking == nil {
			return nil
		}

		return out.add(ctx, repos.NotificationRepo(), notificationDraft{
			UserID:    shipment.Booking.TraderID,
			Type:      entity.NotificationShipmentUpdated,
			Title:     "Shipment update",
			Message:   fmt.Sprintf("Shipment %s is now %s", shipment.TrackingNumber, strings.ReplaceAll(string(input.Status), "_", " ")),
			RelatedID: &shipment.ID,
		}, now)
	})
	if err != nil {
		return nil, err
	}

	srv.notifier.publish(ctx, out)

	shipment.Status = input.Status
	shipment.CurrentLocation = location
	shipment.UpdatedAt = now

	return shipment, nil
}

func (srv *shipmentService) ListLSPShipments(ctx context.Context, lspID uuid.UUID, status *entity.ShipmentStatus, page repository.Page) ([]*entity.Shipment, int64, error) {
	shipments, total, err := srv.shipmentRepo.List(ctx, repository.ShipmentFilter{LSPID: &lspID, Status: status, Page: page})
	if err != nil {
		return nil, 0, mapRepoError(err, shipmentErrors, "failed to list shipments")
	}

	return shipments, total, nil
}

func (srv *shipmentService) GetShipmentHistory(ctx context.Context, lspID, shipmentID uuid.UUID) ([]*entity.ShipmentStatusHistory, error) {
	if _, err := srv.findLSPShipment(ctx, lspID, shipmentID); err != nil {
		return nil, err
	}

	history, err := srv.shipmentRepo.ListHistory(ctx, shipmentID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list shipment history")
	}

	return history, nil
}

// TrackShipment looks up a trader's own shipment. Others' shipments are not found.
func (srv *shipmentService) TrackShipment(ctx context.Context, traderID uuid.UUID, trackingNumber string) (*entity.Shipment, []*entity.ShipmentStatusHistory, error) {
	shipment, err := srv.findTraderShipment(ctx, traderID, trackingNumber)
	if err != nil {
		return nil, nil, err
	}

	history, err := srv.shipmentRepo.ListHistory(ctx, shipment.ID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to list shipment history")
	}

	return shipment, history, nil
}

func (srv *shipmentService) TrackingQRCode(ctx context.Context, traderID uuid.UUID, trackingNumber string) ([]byte, error) {
	shipment, err := srv.findTraderShipment(ctx, traderID, trackingNumber)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrService.GenerateTrackingQR(shipment.TrackingNumber)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tracking QR code")
	}

	return png, nil
}

func (srv *shipmentService) findLSPShipment(ctx context.Context, lspID, shipmentID uuid.UUID) (*entity.Shipment, error) {
	shipment, err := srv.shipmentRepo.FindByID(ctx, shipmentID)
	if err != nil {
		return nil, mapRepoError(err, shipmentErrors, "failed to find shipment")
	}
	if shipment.Booking == nil || shipment.Booking.LSPID != lspID {
		return nil, domainerrors.ErrShipmentNotFound
	}

	return shipment, nil
}

func (srv *shipmentService) findTraderShipment(ctx context.Context, traderID uuid.UUID, trackingNumber string) (*entity.Shipment, error) {
	trackingNumber = strings.ToUpper(strings.TrimSpace(trackingNumber))
	if trackingNumber == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("tracking number is required")
	}

	shipment, err := srv.shipmentRepo.FindByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return nil, mapRepoError(err, shipmentErrors, "failed to find shipment")
	}
	if shipment.Booking == nil || shipment.Booking.TraderID != traderID {
		return nil, domainerrors.ErrShipmentNotFound
	}

	return shipment, nil
}
