package postgres

import (
	"context"

	"cargomatch/internal/domain/entity"
	domainerrors "cargomatch/internal/domain/errors"
	"cargomatch/internal/domain/repository"
	"cargomatch/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// lspProfileRepository implements the repository.LSPProfileRepository interface.
type lspProfileRepository struct {
	db *gorm.DB
}

// NewLSPProfileRepository is the constructor for lspProfileRepository.
func NewLSPProfileRepository(db *gorm.DB) repository.LSPProfileRepository {
	return &lspProfileRepository{
		db: db,
	}
}

// Create persists a new LSP profile.
func (repo *lspProfileRepository) Create(ctx context.Context, profile *entity.LSPProfile) error {
	profileM := fromLSPProfileDomain(profile)

	if err := repo.db.WithContext(ctx).Omit("User").Create(profileM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("lsp profile already exists for user")
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create lsp profile")
	}

	profile.ID = profileM.ID
	profile.CreatedAt = profileM.CreatedAt
	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

// FindByID retrieves a profile together with its user.
func (repo *lspProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.LSPProfile, error) {
	return repo.findOne(ctx, "id = ?", id)
}

// FindByUserID retrieves the profile owned by a user.
func (repo *lspProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.LSPProfile, error) {
	return repo.findOne(ctx, "user_id = ?", userID)
}

func (repo *lspProfileRepository) findOne(ctx context.Context, cond string, arg any) (*entity.LSPProfile, error) {
	var profileM model.LSPProfileModel

	if err := repo.db.WithContext(ctx).
		Preload("User").
		Where(cond, arg).
		First(&profileM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrLSPProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find lsp profile")
	}

	return toLSPProfileDomain(&profileM), nil
}

// UpdateDetails updates company details and compliance documents.
func (repo *lspProfileRepository) UpdateDetails(ctx context.Context, profile *entity.LSPProfile) error {
	result := repo.db.WithContext(ctx).
		Model(&model.LSPProfileModel{}).
		Where("id = ?", profile.ID).
		Updates(map[string]any{
			"company_name":              profile.CompanyName,
			"registration_number":       profile.RegistrationNumber,
			"gst_number":                profile.GSTNumber,
			"address":                   profile.Address,
			"contact_phone":             profile.ContactPhone,
			"gst_certificate_url":       profile.Documents.GSTCertificateURL,
			"company_registration_url":  profile.Documents.CompanyRegistrationURL,
			"business_license_url":      profile.Documents.BusinessLicenseURL,
			"insurance_certificate_url": profile.Documents.InsuranceCertificateURL,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update lsp profile")
	}
	if result.RowsAffected == 0 {
		return repository.ErrLSPProfileNotFound
	}

	return nil
}

// Decide moves a pending profile to the decided status in one guarded statement.
func (repo *lspProfileRepository) Decide(ctx context.Context, id uuid.UUID, decision repository.VerificationDecision) error {
	updates := map[string]any{
		"verification_status": string(decision.Status),
		"verification_notes":  decision.Notes,
		"is_verified":         decision.Status == entity.VerificationStatusApproved,
		"verified_by":         decision.DecidedBy,
		"verified_at":         decision.DecidedAt,
	}

	result := repo.db.WithContext(ctx).
		Model(&model.LSPProfileModel{}).
		Where("id = ? AND verification_status = ?", id, string(entity.VerificationStatusPending)).
		Updates(updates)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to record lsp verification")
	}
	if result.RowsAffected == 0 {
		return repo.missingOrConflict(ctx, id)
	}

	return nil
}

// missingOrConflict tells a vanished row apart from one that failed the guard.
func (repo *lspProfileRepository) missingOrConflict(ctx context.Context, id uuid.UUID) error {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.LSPProfileModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to check lsp profile existence")
	}
	if count == 0 {
		return repository.ErrLSPProfileNotFound
	}

	return repository.ErrStatusConflict
}

// List returns a page of profiles with their users, newest first.
func (repo *lspProfileRepository) List(ctx context.Context, filter repository.LSPFilter) ([]*entity.LSPProfile, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.LSPProfileModel{})
	if filter.VerificationStatus != nil {
		query = query.Where("verification_status = ?", string(*filter.VerificationStatus))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count lsp profiles")
	}

	page := filter.Page.Normalize()
	var profileModels []*model.LSPProfileModel
	if err := query.
		Preload("User").
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&profileModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list lsp profiles")
	}

	profiles := make([]*entity.LSPProfile, 0, len(profileModels))
	for _, profileM := range profileModels {
		profiles = append(profiles, toLSPProfileDomain(profileM))
	}

	return profiles, total, nil
}

// CountByStatus counts profiles in a verification status.
func (repo *lspProfileRepository) CountByStatus(ctx context.Context, status entity.VerificationStatus) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.LSPProfileModel{}).
		Where("verification_status = ?", string(status)).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count lsp profiles")
	}

	return count, nil
}

// --- Mapper Functions ---

// toLSPProfileDomain converts a GORM LSPProfileModel to a domain LSPProfile entity.
func toLSPProfileDomain(data *model.LSPProfileModel) *entity.LSPProfile {
	if data == nil {
		return nil
	}

	profile := &entity.LSPProfile{
		ID:                 data.ID,
		UserID:             data.UserID,
		CompanyName:        data.CompanyName,
		RegistrationNumber: data.RegistrationNumber,
		GSTNumber:          data.GSTNumber,
		Address:            data.Address,
		ContactPhone:       data.ContactPhone,
		Documents: entity.ComplianceDocuments{
			GSTCertificateURL:       data.GSTCertificateURL,
			CompanyRegistrationURL:  data.CompanyRegistrationURL,
			BusinessLicenseURL:      data.BusinessLicenseURL,
			InsuranceCertificateURL: data.InsuranceCertificateURL,
		},
		IsVerified:         data.IsVerified,
		VerificationStatus: entity.VerificationStatus(data.VerificationStatus),
		VerificationNotes:  data.VerificationNotes,
		VerifiedAt:         data.VerifiedAt,
		VerifiedBy:         data.VerifiedBy,
		CreatedAt:          data.CreatedAt,
		UpdatedAt:          data.UpdatedAt,
	}
	if data.User != nil {
		userM := *data.User
		userM.LSPProfile = nil
		profile.User = toUserDomain(&userM)
	}

	return profile
}

// fromLSPProfileDomain converts a domain LSPProfile entity to a GORM LSPProfileModel.
func fromLSPProfileDomain(data *entity.LSPProfile) *model.LSPProfileModel {
	if data == nil {
		return nil
	}

	return &model.LSPProfileModel{
		ID:                      data.ID,
		UserID:                  data.UserID,
		CompanyName:             data.CompanyName,
		RegistrationNumber:      data.RegistrationNumber,
		GSTNumber:               data.GSTNumber,
		Address:                 data.Address,
		ContactPhone:            data.ContactPhone,
		GSTCertificateURL:       data.Documents.GSTCertificateURL,
		CompanyRegistrationURL:  data.Documents.CompanyRegistrationURL,
		BusinessLicenseURL:      data.Documents.BusinessLicenseURL,
		InsuranceCertificateURL: data.Documents.InsuranceCertificateURL,
		IsVerified:              data.IsVerified,
		VerificationStatus:      string(data.VerificationStatus),
		VerificationNotes:       data.VerificationNotes,
		VerifiedAt:              data.VerifiedAt,
		VerifiedBy:              data.VerifiedBy,
	}
}
