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

const complaintNumberPrefix = "CMP"

type complaintService struct {
	txManager     repository.TransactionManager
	complaintRepo repository.ComplaintRepository
	bookingRepo   repository.BookingRepository
	notifier      *notifier
	logger        *slog.Logger
	now           func() time.Time
}

// ComplaintServiceParams holds dependencies for ComplaintService, injected by Fx.
type ComplaintServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	ComplaintRepo repository.ComplaintRepository
	BookingRepo   repository.BookingRepository
	Publisher     service.EventPublisher
	Logger        *slog.Logger
}

// NewComplaintService creates a new complaint service instance
func NewComplaintService(params ComplaintServiceParams) usecase.ComplaintUsecase {
	return &complaintService{
		txManager:     params.TxManager,
		complaintRepo: params.ComplaintRepo,
		bookingRepo:   params.BookingRepo,
		notifier:      newNotifier(params.Publisher, params.Logger),
		logger:        params.Logger,
		now:           utcNow,
	}
}

// FileComplaint opens a ticket. When it names a booking, the booking must be
// the trader's and its container and LSP are attached.
func (srv *complaintService) FileComplaint(ctx context.Context, traderID uuid.UUID, input *usecase.FileComplaintInput) (*entity.Complaint, error) {
	subject := strings.TrimSpace(input.Subject)
	description := strings.TrimSpace(input.Description)
	if subject == "" || description == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("subject and description are required")
	}

	priority := input.Priority
	if priority == "" {
		priority = entity.ComplaintPriorityMedium
	}
	if !priority.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("unknown priority '%s'", priority))
	}

	now := srv.now()
	number, err := util.ReferenceNumber(complaintNumberPrefix, now)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate complaint number")
	}

	complaint := &entity.Complaint{
		ComplaintNumber: number,
		TraderID:        traderID,
		Subject:         subject,
		Description:     description,
		Status:          entity.ComplaintStatusOpen,
		Priority:        priority,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if input.BookingID != nil {
		booking, err := srv.bookingRepo.FindByID(ctx, *input.BookingID)
		if err != nil {
			return nil, mapRepoError(err, bookingErrors, "failed to find booking")
		}
		if booking.TraderID != traderID {
			return nil, domainerrors.ErrBookingNotFound
		}

		complaint.BookingID = &booking.ID
		complaint.ContainerID = &booking.ContainerID
		complaint.LSPID = &booking.LSPID
	}

	if err := srv.complaintRepo.Create(ctx, complaint); err != nil {
		return nil, mapRepoError(err, complaintErrors, "failed to create complaint")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Complaint filed",
		slog.String("complaintID", complaint.ID.String()),
		slog.String("complaintNumber", complaint.ComplaintNumber),
	)

	return complaint, nil
}

func (srv *complaintService) ListTraderComplaints(ctx context.Context, traderID uuid.UUID, page repository.Page) ([]*entity.Complaint, int64, error) {
	return srv.list(ctx, repository.ComplaintFilter{TraderID: &traderID, Page: page})
}

func (srv *complaintService) ListLSPComplaints(ctx context.Context, lspID uuid.UUID, filter repository.ComplaintFilter) ([]*entity.Complaint, int64, error) {
	filter.LSPID = &lspID
	filter.TraderID = nil

	return srv.list(ctx, filter)
}

func (srv *complaintService) ListComplaints(ctx context.Context, filter repository.ComplaintFilter) ([]*entity.Complaint, int64, error) {
	return srv.list(ctx, filter)
}

func (srv *complaintService) list(ctx context.Context, filter repository.ComplaintFilter) ([]*entity.Complaint, int64, error) {
	complaints, total, err := srv.complaintRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, mapRepoError(err, complaintErrors, "failed to list complaints")
	}

	return complaints, total, nil
}

// UpdateComplaintByLSP works a complaint against the LSP forward. Priority
// stays with admins.
func (srv *complaintService) UpdateComplaintByLSP(ctx context.Context, lspID, complaintID uuid.UUID, input *usecase.UpdateComplaintInput) (*entity.Complaint, error) {
	if input.Priority != nil {
		return nil, domainerrors.ErrForbidden.WithDetails("only admins can change complaint priority")
	}

	complaint, err := srv.complaintRepo.FindByID(ctx, complaintID)
	if err != nil {
		return nil, mapRepoError(err, complaintErrors, "failed to find complaint")
	}
	if complaint.LSPID == nil || *complaint.LSPID != lspID {
		return nil, domainerrors.ErrComplaintNotFound
	}

	if input.Status != nil && !complaint.Status.LSPCanMoveTo(*input.Status) {
		return nil, domainerrors.ErrComplaintStatusConflict.WithDetails(
			fmt.Sprintf("cannot move complaint from '%s' to '%s'", complaint.Status, *input.Status))
	}

	return srv.update(ctx, complaint, input)
}

// UpdateComplaintByAdmin may set any status and priority until the complaint is closed.
func (srv *complaintService) UpdateComplaintByAdmin(ctx context.Context, complaintID uuid.UUID, input *usecase.UpdateComplaintInput) (*entity.Complaint, error) {
	if input.Status != nil && !input.Status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("unknown complaint status '%s'", *input.Status))
	}
	if input.Priority != nil && !input.Priority.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("unknown priority '%s'", *input.Priority))
	}

	complaint, err := srv.complaintRepo.FindByID(ctx, complaintID)
	if err != nil {
		return nil, mapRepoError(err, complaintErrors, "failed to find complaint")
	}
	if complaint.Status == entity.ComplaintStatusClosed {
		return nil, domainerrors.ErrComplaintStatusConflict.WithDetails("complaint is closed")
	}

	return srv.update(ctx, complaint, input)
}

// update applies input and writes it guarded by the status that was read.
func (srv *complaintService) update(ctx context.Context, complaint *entity.Complaint, input *usecase.UpdateComplaintInput) (*entity.Complaint, error) {
	expected := complaint.Status
	now := srv.now()

	if input.Status != nil {
		complaint.Status = *input.Status
		if complaint.Status == entity.ComplaintStatusResolved && expected != entity.ComplaintStatusResolved {
			complaint.ResolvedAt = &now
		}
	}
	if input.Priority != nil {
		complaint.Priority = *input.Priority
	}
	if input.Resolution != nil {
		complaint.Resolution = strings.TrimSpace(*input.Resolution)
	}
	complaint.UpdatedAt = now

	out := &outbox{}
	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := repos.ComplaintRepo().Update(ctx, complaint, expected); err != nil {
			return mapRepoError(err, complaintErrors, "failed to update complaint")
		}

		if complaint.Status == expected {
			return nil
		}

		return out.add(ctx, repos.NotificationRepo(), notificationDraft{
			UserID:    complaint.TraderID,
			Type:      entity.NotificationComplaintUpdated,
			Title:     "Complaint updated",
			Message:   fmt.Sprintf("Complaint %s is now %s", complaint.ComplaintNumber, strings.ReplaceAll(string(complaint.Status), "_", " ")),
			RelatedID: &complaint.ID,
		}, now)
	})
	if err != nil {
		return nil, err
	}

	srv.notifier.publish(ctx, out)

	return complaint, nil
}
