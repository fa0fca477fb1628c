package impl

import (
	"context"
	"testing"

	"cargomatch/internal/domain/entity"
	domainerrors "cargomatch/internal/domain/errors"
	"cargomatch/internal/domain/repository"
	"cargomatch/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLSPService_UpdateProfile_MergesNonEmptyFields(t *testing.T) {
	factory, _ := newTestRepos(t)
	svc := NewLSPService(LSPServiceParams{LSPRepo: factory.LSPProfiles, Logger: newDiscardLogger()})
	ctx := context.Background()
	lspID := uuid.New()

	stored := &entity.LSPProfile{
		ID:          lspID,
		CompanyName: "Old Co",
		Address:     "Dock 1",
		Documents:   entity.ComplianceDocuments{GSTCertificateURL: "https://files.example/gst.pdf"},
	}

	factory.LSPProfiles.EXPECT().FindByID(ctx, lspID).Return(stored, nil)
	factory.LSPProfiles.EXPECT().
		UpdateDetails(ctx, mock.MatchedBy(func(p *entity.LSPProfile) bool {
			return p.CompanyName == "New Co" &&
				p.Address == "Dock 1" &&
				p.Documents.GSTCertificateURL == "https://files.example/gst.pdf" &&
				p.Documents.InsuranceCertificateURL == "https://files.example/ins.pdf"
		})).
		Return(nil)

	profile, err := svc.UpdateProfile(ctx, lspID, &usecase.UpdateLSPProfileInput{
		CompanyName: "New Co",
		Address:     "  ",
		Documents:   entity.ComplianceDocuments{InsuranceCertificateURL: "https://files.example/ins.pdf"},
	})
	require.NoError(t, err)
	assert.Equal(t, "New Co", profile.CompanyName)
}

func TestLSPService_GetProfile_NotFound(t *testing.T) {
	factory, _ := newTestRepos(t)
	svc := NewLSPService(LSPServiceParams{LSPRepo: factory.LSPProfiles, Logger: newDiscardLogger()})
	ctx := context.Background()
	lspID := uuid.New()

	factory.LSPProfiles.EXPECT().FindByID(ctx, lspID).Return(nil, repository.ErrLSPProfileNotFound)

	_, err := svc.GetProfile(ctx, lspID)
	assert.ErrorIs(t, err, domainerrors.ErrLSPNotFound)
}
