package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "cargomatch/internal/delivery/context"
	"cargomatch/internal/domain/entity"
	"cargomatch/internal/domain/repository"
	"cargomatch/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type lspService struct {
	lspRepo repository.LSPProfileRepository
	logger  *slog.Logger
	now     func() time.Time
}

// LSPServiceParams holds dependencies for LSPService, injected by Fx.
type LSPServiceParams struct {
	fx.In

	LSPRepo repository.LSPProfileRepository
	Logger  *slog.Logger
}

// NewLSPService creates a new LSP profile service instance
func NewLSPService(params LSPServiceParams) usecase.LSPUsecase {
	return &lspService{
		lspRepo: params.LSPRepo,
		logger:  params.Logger,
		now:     utcNow,
	}
}

func (srv *lspService) GetProfile(ctx context.Context, lspID uuid.UUID) (*entity.LSPProfile, error) {
	profile, err := srv.lspRepo.FindByID(ctx, lspID)
	if err != nil {
		return nil, mapRepoError(err, lspErrors, "failed to find lsp profile")
	}

	return profile, nil
}

// UpdateProfile merges the non-empty fields of input into the profile.
func (srv *lspService) UpdateProfile(ctx context.Context, lspID uuid.UUID, input *usecase.UpdateLSPProfileInput) (*entity.LSPProfile, error) {
	profile, err := srv.GetProfile(ctx, lspID)
	if err != nil {
		return nil, err
	}

	mergeString(&profile.CompanyName, input.CompanyName)
	mergeString(&profile.RegistrationNumber, input.RegistrationNumber)
	mergeString(&profile.GSTNumber, input.GSTNumber)
	mergeString(&profile.Address, input.Address)
	mergeString(&profile.ContactPhone, input.ContactPhone)
	mergeString(&profile.Documents.GSTCertificateURL, input.Documents.GSTCertificateURL)
	mergeString(&profile.Documents.CompanyRegistrationURL, input.Documents.CompanyRegistrationURL)
	mergeString(&profile.Documents.BusinessLicenseURL, input.Documents.BusinessLicenseURL)
	mergeString(&profile.Documents.InsuranceCertificateURL, input.Documents.InsuranceCertificateURL)
	profile.UpdatedAt = srv.now()

	if err := srv.lspRepo.UpdateDetails(ctx, profile); err != nil {
		return nil, mapRepoError(err, lspErrors, "failed to update lsp profile")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("LSP profile updated", slog.String("lspID", lspID.String()))

	return profile, nil
}

func mergeString(dst *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dst = v
	}
}
