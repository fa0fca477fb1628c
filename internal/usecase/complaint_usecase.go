package usecase

import (
	"context"

	"cargomatch/internal/domain/entity"
	"cargomatch/internal/domain/repository"

	"github.com/google/uuid"
)

// FileComplaintInput is a trader's complaint.
type FileComplaintInput struct {
	BookingID   *uuid.UUID
	Subject     string
	Description string
	Priority    entity.ComplaintPriority
}

// UpdateComplaintInput changes a complaint. Nil fields keep the stored value.
type UpdateComplaintInput struct {
	Status     *entity.ComplaintStatus
	Priority   *entity.ComplaintPriority
	Resolution *string
}

// ComplaintUsecase covers the complaint ticket workflow.
type ComplaintUsecase interface {
	FileComplaint(ctx context.Context, traderID uuid.UUID, input *FileComplaintInput) (*entity.Complaint, error)
	ListTraderComplaints(ctx context.Context, traderID uuid.UUID, page repository.Page) ([]*entity.Complaint, int64, error)

	ListLSPComplaints(ctx context.Context, lspID uuid.UUID, filter repository.ComplaintFilter) ([]*entity.Complaint, int64, error)

	// UpdateComplaintByLSP lets an LSP work a complaint forward to resolved.
	UpdateComplaintByLSP(ctx context.Context, lspID, complaintID uuid.UUID, input *UpdateComplaintInput) (*entity.Complaint, error)

	ListComplaints(ctx context.Context, filter repository.ComplaintFilter) ([]*entity.Complaint, int64, error)

	// UpdateComplaintByAdmin may set any status and priority; closed is terminal.
	UpdateComplaintByAdmin(ctx context.Context, complaintID uuid.UUID, input *UpdateComplaintInput) (*entity.Complaint, error)
}
