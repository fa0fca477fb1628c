package repository

import (
	"context"
	"errors"

	"cargomatch/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrComplaintNotFound is returned when a complaint is not found.
var ErrComplaintNotFound = errors.New("complaint not found")

// ComplaintFilter narrows complaint listings.
type ComplaintFilter struct {
	TraderID *uuid.UUID
	LSPID    *uuid.UUID
	Status   *entity.ComplaintStatus
	Priority *entity.ComplaintPriority
	Page
}

// ComplaintRepository defines persistence operations for complaints.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *entity.Complaint) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Complaint, error)
	List(ctx context.Context, filter ComplaintFilter) ([]*entity.Complaint, int64, error)

	// Update writes status, priority, resolution and resolved_at when the stored
	// status still equals expected. ErrStatusConflict otherwise.
	Update(ctx context.Context, complaint *entity.Complaint, expected entity.ComplaintStatus) error

	// CountByStatus counts complaints in a status.
	CountByStatus(ctx context.Context, status entity.ComplaintStatus) (int64, error)
}
