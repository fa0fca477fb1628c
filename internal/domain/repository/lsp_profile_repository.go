package repository

import (
	"context"
	"errors"
	"time"

	"cargomatch/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrLSPProfileNotFound is returned when an LSP profile is not found.
var ErrLSPProfileNotFound = errors.New("lsp profile not found")

// LSPFilter narrows LSP listings.
type LSPFilter struct {
	VerificationStatus *entity.VerificationStatus
	Page
}

// VerificationDecision is an admin's decision on a pending LSP profile.
type VerificationDecision struct {
	Status    entity.VerificationStatus
	Notes     string
	DecidedBy uuid.UUID
	DecidedAt time.Time
}

// LSPProfileRepository defines persistence operations for LSP profiles.
type LSPProfileRepository interface {
	// Create persists a new profile.
	Create(ctx context.Context, profile *entity.LSPProfile) error

	// FindByID retrieves a profile together with its user.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.LSPProfile, error)

	// FindByUserID retrieves the profile owned by a user.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.LSPProfile, error)

	// UpdateDetails updates company details and documents.
	UpdateDetails(ctx context.Context, profile *entity.LSPProfile) error

	// Decide moves a pending profile to the decision's status.
	// Returns ErrStatusConflict when the profile was already decided.
	Decide(ctx context.Context, id uuid.UUID, decision VerificationDecision) error

	// List returns a page of profiles with their users and the total count.
	List(ctx context.Context, filter LSPFilter) ([]*entity.LSPProfile, int64, error)

	// CountByStatus counts profiles in a verification status.
	CountByStatus(ctx context.Context, status entity.VerificationStatus) (int64, error)
}
