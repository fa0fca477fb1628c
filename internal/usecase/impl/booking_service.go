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
	"cargomatch/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	bookingNumberPrefix  = "BK"
	trackingNumberPrefix = "CM"
	changedBySystem      = "system"
)

type bookingService struct {
	txManager     repository.TransactionManager
	bookingRepo   repository.BookingRepository
	containerRepo repository.ContainerRepository
	lspRepo       repository.LSPProfileRepository
	notifier      *notifier
	metrics       service.MetricsRecorder
	logger        *slog.Logger
	now           func() time.Time
}

// BookingServiceParams holds dependencies for BookingService, injected by Fx.
type BookingServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	BookingRepo   repository.BookingRepository
	ContainerRepo repository.ContainerRepository
	LSPRepo       repository.LSPProfileRepository
	Publisher     service.EventPublisher
	Metrics       service.MetricsRecorder
	Logger        *slog.Logger
}

// NewBookingService creates a new booking service instance
func NewBookingService(params BookingServiceParams) usecase.BookingUsecase {
	return &bookingService{
		txManager:     params.TxManager,
		bookingRepo:   params.BookingRepo,
		containerRepo: params.ContainerRepo,
		lspRepo:       params.LSPRepo,
		notifier:      newNotifier(params.Publisher, params.Logger),
		metrics:       params.Metrics,
		logger:        params.Logger,
		now:           utcNow,
	}
}

func (srv *bookingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateBooking books space in an approved, available container and notifies the LSP.
func (srv *bookingService) CreateBooking(ctx context.Context, traderID uuid.UUID, input *usecase.CreateBookingInput) (*entity.Booking, error) {
	if input.VolumeCBM <= 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("volume must be positive")
	}
	if input.WeightKg < 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("weight must not be negative")
	}
	if err := input.CargoDetails.Validate(); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	now := srv.now()

	container, err := srv.containerRepo.FindByID(ctx, input.ContainerID)
	if err != nil {
		return nil, mapRepoError(err, containerErrors, "failed to find container")
	}
	if !container.IsBookable(now) {
		return nil, domainerrors.ErrContainerUnavailable
	}
	if input.VolumeCBM > container.CapacityCBM {
		return nil, domainerrors.ErrBookingExceedsCapacity.WithDetails(
			fmt.Sprintf("requested %.2f cbm, container holds %.2f cbm", input.VolumeCBM, container.CapacityCBM))
	}

	number, err := util.ReferenceNumber(bookingNumberPrefix, now)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate booking number")
	}

	notes := strings.TrimSpace(input.Notes)
	booking := &entity.Booking{
		BookingNumber:  number,
		ContainerID:    container.ID,
		TraderID:       traderID,
		LSPID:          container.LSPID,
		CargoDetails:   input.CargoDetails,
		CargoType:      input.CargoDetails.CargoType(),
		VolumeCBM:      input.VolumeCBM,
		WeightKg:       input.WeightKg,
		TotalPrice:     container.PriceFor(input.VolumeCBM),
		Currency:       container.Currency,
		Status:         entity.BookingStatusPending,
		IsAutoApproved: container.AutoApproveBookings,
		Notes:          notes,
		NoteLinks:      entity.ExtractNoteLinks(notes),
		Documents:      input.Documents,
		Container:      container,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	out := &outbox{}
	err = srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := repos.BookingRepo().Create(ctx, booking); err != nil {
			return mapRepoError(err, bookingErrors, "failed to create booking")
		}

		lsp, err := repos.LSPProfileRepo().FindByID(ctx, booking.LSPID)
		if err != nil {
			return mapRepoError(err, lspErrors, "failed to find lsp profile")
		}

		return out.add(ctx, repos.NotificationRepo(), notificationDraft{
			UserID:    lsp.UserID,
			Type:      entity.NotificationBookingCreated,
			Title:     "New booking request",
			Message:   fmt.Sprintf("Booking %s requests %.2f cbm on %s", booking.BookingNumber, booking.VolumeCBM, container.ContainerNumber),
			RelatedID: &booking.ID,
		}, now)
	})
	if err != nil {
		return nil, err
	}

	srv.notifier.publish(ctx, out)
	srv.metrics.BookingTransitioned(string(entity.BookingStatusPending))

	srv.log(ctx).Info("Booking created",
		slog.String("bookingID", booking.ID.String()),
		slog.String("bookingNumber", booking.BookingNumber),
		slog.String("containerID", container.ID.String()),
	)

	return booking, nil
}

func (srv *bookingService) GetTraderBooking(ctx context.Context, traderID, bookingID uuid.UUID) (*entity.Booking, error) {
	booking, err := srv.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, mapRepoError(err, bookingErrors, "failed to find booking")
	}
	if booking.TraderID != traderID {
		return nil, domainerrors.ErrBookingNotFound
	}

	return booking, nil
}

func (srv *bookingService) ListTraderBookings(ctx context.Context, traderID uuid.UUID, page repository.Page) ([]*entity.Booking, int64, error) {
	bookings, total, err := srv.bookingRepo.List(ctx, repository.BookingFilter{TraderID: &traderID, Page: page})
	if err != nil {
		return nil, 0, mapRepoError(err, bookingErrors, "failed to list bookings")
	}

	return bookings, total, nil
}

// CancelBooking lets a trader withdraw a booking the LSP has not acted on.
func (srv *bookingService) CancelBooking(ctx context.Context, traderID, bookingID uuid.UUID) (*entity.Booking, error) {
	booking, err := srv.GetTraderBooking(ctx, traderID, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.Status.IsPending() {
		return nil, statusConflict(booking.Status)
	}

	now := srv.now()
	out := &outbox{}
	err = srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := repos.BookingRepo().Cancel(ctx, bookingID, now); err != nil {
			return mapRepoError(err, bookingErrors, "failed to cancel booking")
		}

		lsp, err := repos.LSPProfileRepo().FindByID(ctx, booking.LSPID)
		if err != nil {
			return mapRepoError(err, lspErrors, "failed to find lsp profile")
		}

		return out.add(ctx, repos.NotificationRepo(), notificationDraft{
			UserID:    lsp.UserID,
			Type:      entity.NotificationBookingCancelled,
			Title:     "Booking cancelled",
			Message:   fmt.Sprintf("Booking %s was cancelled by the trader", booking.BookingNumber),
			RelatedID: &booking.ID,
		}, now)
	})
	if err != nil {
		return nil, err
	}

	srv.notifier.publish(ctx, out)
	srv.metrics.BookingTransitioned(string(entity.BookingStatusCancelled))

	booking.Status = entity.BookingStatusCancelled
	booking.CancelledAt = &now
	booking.UpdatedAt = now

	return booking, nil
}

func (srv *bookingService) GetLSPBooking(ctx context.Context, lspID, bookingID uuid.UUID) (*entity.Booking, error) {
	booking, err := srv.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, mapRepoError(err, bookingErrors, "failed to find booking")
	}
	if booking.LSPID != lspID {
		return nil, domainerrors.ErrBookingNotFound
	}

	return booking, nil
}

// ListLSPBookings filters by status. Asking for pending also returns the legacy
// pending_approval spelling.
func (srv *bookingService) ListLSPBookings(ctx context.Context, lspID uuid.UUID, statuses []entity.BookingStatus, page repository.Page) ([]*entity.Booking, int64, error) {
	bookings, total, err := srv.bookingRepo.List(ctx, repository.BookingFilter{
		LSPID:    &lspID,
		Statuses: expandPendingStatuses(statuses),
		Page:     page,
	})
	if err != nil {
		return nil, 0, mapRepoError(err, bookingErrors, "failed to list bookings")
	}

	return bookings, total, nil
}

// ApproveBooking approves a pending booking and takes its container off the
// market. Auto-approved bookings get their shipment in the same transaction.
func (srv *bookingService) ApproveBooking(ctx context.Context, lspID, bookingID uuid.UUID, notes string) (*entity.Booking, error) {
	booking, err := srv.GetLSPBooking(ctx, lspID, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.Status.IsPending() {
		return nil, statusConflict(booking.Status)
	}

	now := srv.now()
	notes = strings.TrimSpace(notes)
	out := &outbox{}
	var shipment *entity.Shipment

	err = srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := repos.BookingRepo().Approve(ctx, bookingID, notes, now); err != nil {
			return guardError(ctx, repos.BookingRepo(), err, bookingID, "failed to approve booking")
		}

		if err := repos.ContainerRepo().Reserve(ctx, booking.ContainerID); err != nil {
			if errors.Is(err, repository.ErrStatusConflict) {
				return domainerrors.ErrContainerUnavailable.WithDetails("container is already taken by another booking")
			}

			return mapRepoError(err, containerErrors, "failed to reserve container")
		}

		if !booking.IsAutoApproved {
			return out.add(ctx, repos.NotificationRepo(), notificationDraft{
				UserID:    booking.TraderID,
				Type:      entity.NotificationBookingApproved,
				Title:     "Booking approved",
				Message:   fmt.Sprintf("Your booking %s has been approved", booking.BookingNumber),
				RelatedID: &booking.ID,
			}, now)
		}

		created, err := createScheduledShipment(ctx, repos, booking, "", nil, changedBySystem, now)
		if err != nil {
			return err
		}
		shipment = created

		lsp, err := repos.LSPProfileRepo().FindByID(ctx, lspID)
		if err != nil {
			return mapRepoError(err, lspErrors, "failed to find lsp profile")
		}

		return out.add(ctx, repos.NotificationRepo(), notificationDraft{
			UserID:    lsp.UserID,
			Type:      entity.NotificationShipmentCreated,
			Title:     "Booking auto-approved",
			Message:   fmt.Sprintf("Booking %s was auto-approved, shipment %s is scheduled", booking.BookingNumber, shipment.TrackingNumber),
			RelatedID: &booking.ID,
		}, now)
	})
	if err != nil {
		return nil, err
	}

	srv.notifier.publish(ctx, out)
	srv.metrics.BookingTransitioned(string(entity.BookingStatusApproved))

	booking.Status = entity.BookingStatusApproved
	booking.ApprovedAt = &now
	booking.UpdatedAt = now
	if notes != "" {
		booking.Notes = notes
		booking.NoteLinks = entity.ExtractNoteLinks(notes)
	}

	logAttrs := []any{slog.String("bookingID", bookingID.String())}
	if shipment != nil {
		logAttrs = append(logAttrs, slog.String("trackingNumber", shipment.TrackingNumber))
	}
	srv.log(ctx).Info("Booking approved", logAttrs...)

	return booking, nil
}

// RejectBooking rejects a pending booking, keeping the reason in its notes.
func (srv *bookingService) RejectBooking(ctx context.Context, lspID, bookingID uuid.UUID, reason string) (*entity.Booking, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("rejection reason is required")
	}

	booking, err := srv.GetLSPBooking(ctx, lspID, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.Status.IsPending() {
		return nil, statusConflict(booking.Status)
	}

	now := srv.now()
	out := &outbox{}
	err = srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := repos.BookingRepo().Reject(ctx, bookingID, reason); err != nil {
			return guardError(ctx, repos.BookingRepo(), err, bookingID, "failed to reject booking")
		}

		return out.add(ctx, repos.NotificationRepo(), notificationDraft{
			UserID:    booking.TraderID,
			Type:      entity.NotificationBookingRejected,
			Title:     "Booking rejected",
			Message:   fmt.Sprintf("Your booking %s was rejected: %s", booking.BookingNumber, reason),
			RelatedID: &booking.ID,
		}, now)
	})
	if err != nil {
		return nil, err
	}

	srv.notifier.publish(ctx, out)
	srv.metrics.BookingTransitioned(string(entity.BookingStatusRejected))

	booking.Status = entity.BookingStatusRejected
	booking.Notes = reason
	booking.NoteLinks = entity.ExtractNoteLinks(reason)
	booking.UpdatedAt = now

	return booking, nil
}

// CloseBooking closes an approved booking. LSPs may only close their own.
func (srv *bookingService) CloseBooking(ctx context.Context, actor usecase.Actor, bookingID uuid.UUID) (*entity.Booking, error) {
	booking, err := srv.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, mapRepoError(err, bookingErrors, "failed to find booking")
	}

	switch actor.Role {
	case entity.RoleAdmin:
	case entity.RoleLSP:
		if actor.LSPID == nil || booking.LSPID != *actor.LSPID {
			return nil, domainerrors.ErrBookingNotFound
		}
	default:
		return nil, domainerrors.ErrForbidden
	}

	if !booking.Status.CanClose() || booking.ClosedAt != nil {
		return nil, statusConflict(booking.Status)
	}

	now := srv.now()
	out := &outbox{}
	err = srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		return closeBooking(ctx, repos, out, booking, actor.ClosedBy(), now)
	})
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, domainerrors.ErrBookingStatusConflict.WithDetails("booking was closed or changed concurrently")
		}

		return nil, mapRepoError(err, bookingErrors, "failed to close booking")
	}

	srv.notifier.publish(ctx, out)
	srv.metrics.BookingTransitioned(string(entity.BookingStatusClosed))

	srv.log(ctx).Info("Booking closed",
		slog.String("bookingID", bookingID.String()),
		slog.String("closedBy", actor.ClosedBy()),
	)

	return booking, nil
}

// guardError maps a failed status guard. The row is re-read so the conflict
// reports the status that won.
func guardError(ctx context.Context, repo repository.BookingRepository, err error, bookingID uuid.UUID, msg string) error {
	if !errors.Is(err, repository.ErrStatusConflict) {
		return mapRepoError(err, bookingErrors, msg)
	}

	current, findErr := repo.FindByID(ctx, bookingID)
	if findErr != nil {
		return mapRepoError(findErr, bookingErrors, "failed to find booking")
	}

	return statusConflict(current.Status)
}

func statusConflict(status entity.BookingStatus) error {
	return domainerrors.ErrBookingStatusConflict.WithDetails(fmt.Sprintf("Cannot update booking with status '%s'", status))
}

func expandPendingStatuses(statuses []entity.BookingStatus) []entity.BookingStatus {
	out := make([]entity.BookingStatus, 0, len(statuses)+1)
	for _, s := range statuses {
		out = append(out, s)
		if s == entity.BookingStatusPending {
			out = append(out, entity.BookingStatusPendingApproval)
		}
	}

	return out
}

// closeBooking is the single close path shared by manual closes and the
// closure job. On success booking reflects the closed state. A booking whose
// status moved since it was read fails with repository.ErrStatusConflict.
func closeBooking(ctx context.Context, repos repository.RepositoryFactory, out *outbox, booking *entity.Booking, closedBy string, now time.Time) error {
	if err := repos.BookingRepo().Close(ctx, booking.ID, booking.Status, closedBy, now); err != nil {
		return err
	}

	if booking.Status.HoldsContainer() {
		if err := repos.ContainerRepo().Release(ctx, booking.ContainerID); err != nil {
			return errors.Wrap(err, "failed to release container")
		}
	}

	shipment, err := repos.ShipmentRepo().FindByBookingID(ctx, booking.ID)
	switch {
	case errors.Is(err, repository.ErrShipmentNotFound):
	case err != nil:
		return errors.Wrap(err, "failed to find shipment")
	case shipment.Status != entity.ShipmentStatusClosed:
		if err := repos.ShipmentRepo().UpdateStatus(ctx, shipment.ID, shipment.Status, entity.ShipmentStatusClosed, shipment.CurrentLocation); err != nil {
			return errors.Wrap(err, "failed to close shipment")
		}
		if err := repos.ShipmentRepo().AppendHistory(ctx, &entity.ShipmentStatusHistory{
			ShipmentID: shipment.ID,
			Status:     entity.ShipmentStatusClosed,
			Location:   shipment.CurrentLocation,
			Notes:      "Booking closed",
			ChangedBy:  closedBy,
			CreatedAt:  now,
		}); err != nil {
			return errors.Wrap(err, "failed to record shipment history")
		}
	}

	lsp, err := repos.LSPProfileRepo().FindByID(ctx, booking.LSPID)
	if err != nil {
		return errors.Wrap(err, "failed to find lsp profile")
	}

	message := fmt.Sprintf("Booking %s has been closed", booking.BookingNumber)
	for _, userID := range []uuid.UUID{lsp.UserID, booking.TraderID} {
		if err := out.add(ctx, repos.NotificationRepo(), notificationDraft{
			UserID:    userID,
			Type:      entity.NotificationBookingClosed,
			Title:     "Booking closed",
			Message:   message,
			RelatedID: &booking.ID,
		}, now); err != nil {
			return err
		}
	}

	booking.Status = entity.BookingStatusClosed
	booking.ClosedAt = &now
	booking.ClosedBy = closedBy
	booking.UpdatedAt = now

	return nil
}

// createScheduledShipment opens tracking for an approved booking with its
// first history entry.
func createScheduledShipment(ctx context.Context, repos repository.RepositoryFactory, booking *entity.Booking, location string, eta *time.Time, changedBy string, now time.Time) (*entity.Shipment, error) {
	trackingNumber, err := util.ReferenceNumber(trackingNumberPrefix, now)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tracking number")
	}

	if eta == nil && booking.Container != nil && !booking.Container.ArrivalDate.IsZero() {
		arrival := booking.Container.ArrivalDate
		eta = &arrival
	}

	shipment := &entity.Shipment{
		BookingID:        booking.ID,
		TrackingNumber:   trackingNumber,
		Status:           entity.ShipmentStatusScheduled,
		CurrentLocation:  location,
		EstimatedArrival: eta,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if shipment.CurrentLocation == "" && booking.Container != nil {
		shipment.CurrentLocation = booking.Container.Origin
	}

	if err := repos.ShipmentRepo().Create(ctx, shipment); err != nil {
		return nil, mapRepoError(err, shipmentErrors, "failed to create shipment")
	}

	if err := repos.ShipmentRepo().AppendHistory(ctx, &entity.ShipmentStatusHistory{
		ShipmentID: shipment.ID,
		Status:     entity.ShipmentStatusScheduled,
		Location:   shipment.CurrentLocation,
		Notes:      "Shipment scheduled",
		ChangedBy:  changedBy,
		CreatedAt:  now,
	}); err != nil {
		return nil, errors.Wrap(err, "failed to record shipment history")
	}

	return shipment, nil
}
