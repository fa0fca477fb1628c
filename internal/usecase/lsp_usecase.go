package usecase

import (
	"context"

	"cargomatch/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateLSPProfileInput carries the editable company details. Empty strings keep
// the stored value.
type UpdateLSPProfileInput struct {
	CompanyName        string
	RegistrationNumber string
	GSTNumber          string
	Address            string
	ContactPhone       string
	Documents          entity.ComplianceDocuments
}

// LSPUsecase manages an LSP's own company profile.
type LSPUsecase interface {
	GetProfile(ctx context.Context, lspID uuid.UUID) (*entity.LSPProfile, error)
	UpdateProfile(ctx context.Context, lspID uuid.UUID, input *UpdateLSPProfileInput) (*entity.LSPProfile, error)
}
