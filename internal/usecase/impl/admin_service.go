package impl

import (
	"context"
	"fmt"
	"io"
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

// exportRowLimit caps one spreadsheet export.
const exportRowLimit = 10000

type adminService struct {
	txManager     repository.TransactionManager
	userRepo      repository.UserRepository
	lspRepo       repository.LSPProfileRepository
	containerRepo repository.ContainerRepository
	bookingRepo   repository.BookingRepository
	shipmentRepo  repository.ShipmentRepository
	complaintRepo repository.ComplaintRepository
	exporter      service.BookingExporter
	notifier      *notifier
	metrics       service.MetricsRecorder
	logger        *slog.Logger
	now           func() time.Time
}

// AdminServiceParams holds dependencies for AdminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	UserRepo      repository.UserRepository
	LSPRepo       repository.LSPProfileRepository
	ContainerRepo repository.ContainerRepository
	BookingRepo   repository.BookingRepository
	ShipmentRepo  repository.ShipmentRepository
	ComplaintRepo repository.ComplaintRepository
	Exporter      service.BookingExporter
	Publisher     service.EventPublisher
	Metrics       service.MetricsRecorder
	Logger        *slog.Logger
}

// NewAdminService creates a new admin console service instance
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		txManager:     params.TxManager,
		userRepo:      params.UserRepo,
		lspRepo:       params.LSPRepo,
		containerRepo: params.ContainerRepo,
		bookingRepo:   params.BookingRepo,
		shipmentRepo:  params.ShipmentRepo,
		complaintRepo: params.ComplaintRepo,
		exporter:      params.Exporter,
		notifier:      newNotifier(params.Publisher, params.Logger),
		metrics:       params.Metrics,
		logger:        params.Logger,
		now:           utcNow,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Dashboard gathers the marketplace counters.
func (srv *adminService) Dashboard(ctx context.Context) (*entity.DashboardStats, error) {
	stats := &entity.DashboardStats{}
	var err error

	if stats.UsersByRole, err = srv.userRepo.CountByRole(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to count users")
	}
	if stats.PendingLSPs, err = srv.lspRepo.CountByStatus(ctx, entity.VerificationStatusPending); err != nil {
		return nil, errors.Wrap(err, "failed to count pending lsps")
	}
	if stats.PendingContainers, err = srv.containerRepo.CountByApprovalStatus(ctx, entity.ContainerApprovalPending); err != nil {
		return nil, errors.Wrap(err, "failed to count pending containers")
	}
	if stats.BookingsByStatus, err = srv.bookingRepo.CountByStatus(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to count bookings")
	}
	if stats.OpenComplaints, err = srv.complaintRepo.CountByStatus(ctx, entity.ComplaintStatusOpen); err != nil {
		return nil, errors.Wrap(err, "failed to count open complaints")
	}
	if stats.ActiveShipments, err = srv.shipmentRepo.CountActive(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to count active shipments")
	}

	return stats, nil
}

func (srv *adminService) ListUsers(ctx context.Context, filter repository.UserFilter) ([]*entity.User, int64, error) {
	users, total, err := srv.userRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, mapRepoError(err, userErrors, "failed to list users")
	}

	return users, total, nil
}

// SetUserActive activates or deactivates an account. Deactivated accounts are
// refused on their next request.
func (srv *adminService) SetUserActive(ctx context.Context, userID uuid.UUID, active bool) (*entity.User, error) {
	if err := srv.userRepo.SetActive(ctx, userID, active); err != nil {
		return nil, mapRepoError(err, userErrors, "failed to update user status")
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err, userErrors, "failed to find user")
	}

	srv.log(ctx).Info("User status changed",
		slog.String("userID", userID.String()),
		slog.Bool("active", active),
	)

	return user, nil
}

func (srv *adminService) ListLSPs(ctx context.Context, filter repository.LSPFilter) ([]*entity.LSPProfile, int64, error) {
	profiles, total, err := srv.lspRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, mapRepoError(err, lspErrors, "failed to list lsps")
	}

	return profiles, total, nil
}

func (srv *adminService) GetLSP(ctx context.Context, lspID uuid.UUID) (*entity.LSPProfile, error) {
	profile, err := srv.lspRepo.FindByID(ctx, lspID)
	if err != nil {
		return nil, mapRepoError(err, lspErrors, "failed to find lsp")
	}

	return profile, nil
}

// DecideLSP records the verification decision on the profile and the user's
// approval gate in one transaction.
func (srv *adminService) DecideLSP(ctx context.Context, adminID, lspID uuid.UUID, input *usecase.LSPDecisionInput) (*entity.LSPProfile, error) {
	notes := strings.TrimSpace(input.Notes)
	if !input.Approve && notes == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("rejection reason is required")
	}

	profile, err := srv.lspRepo.FindByID(ctx, lspID)
	if err != nil {
		return nil, mapRepoError(err, lspErrors, "failed to find lsp")
	}
	if profile.IsDecided() {
		return nil, domainerrors.ErrLSPAlreadyDecided.WithDetails(fmt.Sprintf("profile is already %s", profile.VerificationStatus))
	}

	now := srv.now()
	decision := repository.VerificationDecision{
		Status:    entity.VerificationStatusApproved,
		Notes:     notes,
		DecidedBy: adminID,
		DecidedAt: now,
	}
	approval := entity.ApprovalStatusApproved
	draft := notificationDraft{
		UserID:    profile.UserID,
		Type:      entity.NotificationLSPVerified,
		Title:     "Account verified",
		Message:   "Your company has been verified. You can now list containers.",
		RelatedID: &profile.ID,
	}
	if !input.Approve {
		decision.Status = entity.VerificationStatusRejected
		approval = entity.ApprovalStatusRejected
		draft.Type = entity.NotificationLSPRejected
		draft.Title = "Verification rejected"
		draft.Message = "Your verification was rejected: " + notes
	}

	out := &outbox{}
	err = srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := repos.LSPProfileRepo().Decide(ctx, lspID, decision); err != nil {
			return mapRepoError(err, lspErrors, "failed to record lsp decision")
		}
		if err := repos.UserRepo().UpdateApprovalStatus(ctx, profile.UserID, approval); err != nil {
			return mapRepoError(err, userErrors, "failed to update user approval")
		}

		return out.add(ctx, repos.NotificationRepo(), draft, now)
	})
	if err != nil {
		return nil, err
	}

	srv.notifier.publish(ctx, out)

	profile.VerificationStatus = decision.Status
	profile.VerificationNotes = notes
	profile.IsVerified = input.Approve
	profile.VerifiedAt = &now
	profile.VerifiedBy = &adminID
	if profile.User != nil {
		profile.User.ApprovalStatus = approval
	}

	srv.log(ctx).Info("LSP verification decided",
		slog.String("lspID", lspID.String()),
		slog.String("status", string(decision.Status)),
	)

	return profile, nil
}

func (srv *adminService) ListContainers(ctx context.Context, filter repository.ContainerFilter) ([]*entity.Container, int64, error) {
	containers, total, err := srv.containerRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, mapRepoError(err, containerErrors, "failed to list containers")
	}

	return containers, total, nil
}

// ReviewContainer approves or rejects a pending container and notifies its LSP.
func (srv *adminService) ReviewContainer(ctx context.Context, adminID, containerID uuid.UUID, input *usecase.ContainerReviewInput) (*entity.Container, error) {
	reason := strings.TrimSpace(input.Reason)
	if !input.Approve && reason == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("rejection reason is required")
	}

	container, err := srv.containerRepo.FindByID(ctx, containerID)
	if err != nil {
		return nil, mapRepoError(err, containerErrors, "failed to find container")
	}
	if container.ApprovalStatus != entity.ContainerApprovalPending {
		return nil, domainerrors.ErrContainerStatusConflict.WithDetails(fmt.Sprintf("container is already %s", container.ApprovalStatus))
	}

	now := srv.now()
	review := repository.ContainerReview{
		Status:     entity.ContainerApprovalApproved,
		Notes:      strings.TrimSpace(input.Notes),
		ReviewedBy: adminID,
		ReviewedAt: now,
	}
	draft := notificationDraft{
		Type:      entity.NotificationContainerApproved,
		Title:     "Container approved",
		Message:   fmt.Sprintf("Container %s is approved and visible to traders", container.ContainerNumber),
		RelatedID: &container.ID,
	}
	if !input.Approve {
		review.Status = entity.ContainerApprovalRejected
		review.Reason = reason
		draft.Type = entity.NotificationContainerRejected
		draft.Title = "Container rejected"
		draft.Message = fmt.Sprintf("Container %s was rejected: %s", container.ContainerNumber, reason)
	}

	out := &outbox{}
	err = srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := repos.ContainerRepo().Review(ctx, containerID, review); err != nil {
			return mapRepoError(err, containerErrors, "failed to review container")
		}

		lsp, err := repos.LSPProfileRepo().FindByID(ctx, container.LSPID)
		if err != nil {
			return mapRepoError(err, lspErrors, "failed to find lsp profile")
		}
		draft.UserID = lsp.UserID

		return out.add(ctx, repos.NotificationRepo(), draft, now)
	})
	if err != nil {
		return nil, err
	}

	srv.notifier.publish(ctx, out)
	srv.metrics.ContainerReviewed(string(review.Status))

	container.ApprovalStatus = review.Status
	container.ApprovalNotes = review.Notes
	container.RejectionReason = review.Reason
	container.ReviewedBy = &adminID
	container.ReviewedAt = &now

	return container, nil
}

func (srv *adminService) ListBookings(ctx context.Context, filter repository.BookingFilter) ([]*entity.Booking, int64, error) {
	filter.Statuses = expandPendingStatuses(filter.Statuses)

	bookings, total, err := srv.bookingRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, mapRepoError(err, bookingErrors, "failed to list bookings")
	}

	return bookings, total, nil
}

// ExportBookings pages through the filtered bookings and renders them in one sheet.
func (srv *adminService) ExportBookings(ctx context.Context, filter repository.BookingFilter, w io.Writer) (string, error) {
	filter.Statuses = expandPendingStatuses(filter.Statuses)
	filter.Page = repository.Page{Limit: repository.MaxPageLimit}

	var all []*entity.Booking
	for len(all) < exportRowLimit {
		bookings, total, err := srv.bookingRepo.List(ctx, filter)
		if err != nil {
			return "", mapRepoError(err, bookingErrors, "failed to list bookings for export")
		}
		all = append(all, bookings...)

		if len(bookings) < filter.Limit || int64(len(all)) >= total {
			break
		}
		filter.Offset += len(bookings)
	}

	if err := srv.exporter.Export(w, all); err != nil {
		return "", errors.Wrap(err, "failed to render booking export")
	}

	srv.log(ctx).Info("Bookings exported", slog.Int("rows", len(all)))

	return srv.exporter.ContentType(), nil
}

func (srv *adminService) ListShipments(ctx context.Context, filter repository.ShipmentFilter) ([]*entity.Shipment, int64, error) {
	shipments, total, err := srv.shipmentRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, mapRepoError(err, shipmentErrors, "failed to list shipments")
	}

	return shipments, total, nil
}
