package usecase

import (
	"context"
	"io"

	"cargomatch/internal/domain/entity"
	"cargomatch/internal/domain/repository"

	"github.com/google/uuid"
)

// LSPDecisionInput is an admin's verification decision.
type LSPDecisionInput struct {
	Approve bool
	Notes   string // Rejection reason when Approve is false.
}

// ContainerReviewInput is an admin's container review.
type ContainerReviewInput struct {
	Approve bool
	Notes   string
	Reason  string // Required when Approve is false.
}

// AdminUsecase covers the admin console.
type AdminUsecase interface {
	Dashboard(ctx context.Context) (*entity.DashboardStats, error)

	ListUsers(ctx context.Context, filter repository.UserFilter) ([]*entity.User, int64, error)
	SetUserActive(ctx context.Context, userID uuid.UUID, active bool) (*entity.User, error)

	ListLSPs(ctx context.Context, filter repository.LSPFilter) ([]*entity.LSPProfile, int64, error)
	GetLSP(ctx context.Context, lspID uuid.UUID) (*entity.LSPProfile, error)

	// DecideLSP approves or rejects a pending LSP. A second decision is a conflict.
	DecideLSP(ctx context.Context, adminID, lspID uuid.UUID, input *LSPDecisionInput) (*entity.LSPProfile, error)

	ListContainers(ctx context.Context, filter repository.ContainerFilter) ([]*entity.Container, int64, error)

	// ReviewContainer approves or rejects a pending container. A second review is a conflict.
	ReviewContainer(ctx context.Context, adminID, containerID uuid.UUID, input *ContainerReviewInput) (*entity.Container, error)

	ListBookings(ctx context.Context, filter repository.BookingFilter) ([]*entity.Booking, int64, error)

	// ExportBookings writes the filtered bookings as a spreadsheet and returns its MIME type.
	ExportBookings(ctx context.Context, filter repository.BookingFilter, w io.Writer) (string, error)

	ListShipments(ctx context.Context, filter repository.ShipmentFilter) ([]*entity.Shipment, int64, error)
}
