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

// complaintRepository implements the repository.ComplaintRepository interface.
type complaintRepository struct {
	db *gorm.DB
}

// NewComplaintRepository is the constructor for complaintRepository.
func NewComplaintRepository(db *gorm.DB) repository.ComplaintRepository {
	return &complaintRepository{
		db: db,
	}
}

// Create persists a new complaint.
func (repo *complaintRepository) Create(ctx context.Context, complaint *entity.Complaint) error {
	complaintM := fromComplaintDomain(complaint)

	if err := repo.db.WithContext(ctx).Create(complaintM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrBookingNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create complaint")
	}

	complaint.ID = complaintM.ID
	complaint.CreatedAt = complaintM.CreatedAt
	complaint.UpdatedAt = complaintM.UpdatedAt

	return nil
}

// FindByID retrieves a complaint.
func (repo *complaintRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Complaint, error) {
	var complaintM model.ComplaintModel

	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&complaintM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrComplaintNotFound
		}

		return nil, errors.Wrap(err, "failed to find complaint")
	}

	return toComplaintDomain(&complaintM), nil
}

// List returns a page of complaints, newest first.
func (repo *complaintRepository) List(ctx context.Context, filter repository.ComplaintFilter) ([]*entity.Complaint, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.ComplaintModel{})
	if filter.TraderID != nil {
		query = query.Where("trader_id = ?", *filter.TraderID)
	}
	if filter.LSPID != nil {
		query = query.Where("lsp_id = ?", *filter.LSPID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", string(*filter.Priority))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count complaints")
	}

	page := filter.Page.Normalize()
	var complaintModels []*model.ComplaintModel
	if err := query.
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&complaintModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list complaints")
	}

	complaints := make([]*entity.Complaint, 0, len(complaintModels))
	for _, complaintM := range complaintModels {
		complaints = append(complaints, toComplaintDomain(complaintM))
	}

	return complaints, total, nil
}

// Update writes the mutable ticket fields when the stored status still equals expected.
func (repo *complaintRepository) Update(ctx context.Context, complaint *entity.Complaint, expected entity.ComplaintStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ComplaintModel{}).
		Where("id = ? AND status = ?", complaint.ID, string(expected)).
		Updates(map[string]any{
			"status":      string(complaint.Status),
			"priority":    string(complaint.Priority),
			"resolution":  complaint.Resolution,
			"resolved_at": complaint.ResolvedAt,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update complaint")
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := repo.db.WithContext(ctx).Model(&model.ComplaintModel{}).Where("id = ?", complaint.ID).Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to check complaint existence")
		}
		if count == 0 {
			return repository.ErrComplaintNotFound
		}

		return repository.ErrStatusConflict
	}

	return nil
}

// CountByStatus counts complaints in a status.
func (repo *complaintRepository) CountByStatus(ctx context.Context, status entity.ComplaintStatus) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.ComplaintModel{}).
		Where("status = ?", string(status)).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count complaints")
	}

	return count, nil
}

// --- Mapper Functions ---

func toComplaintDomain(data *model.ComplaintModel) *entity.Complaint {
	if data == nil {
		return nil
	}

	return &entity.Complaint{
		ID:              data.ID,
		ComplaintNumber: data.ComplaintNumber,
		TraderID:        data.TraderID,
		BookingID:       data.BookingID,
		ContainerID:     data.ContainerID,
		LSPID:           data.LSPID,
		Subject:         data.Subject,
		Description:     data.Description,
		Status:          entity.ComplaintStatus(data.Status),
		Priority:        entity.ComplaintPriority(data.Priority),
		Resolution:      data.Resolution,
		ResolvedAt:      data.ResolvedAt,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func fromComplaintDomain(data *entity.Complaint) *model.ComplaintModel {
	if data == nil {
		return nil
	}

	return &model.ComplaintModel{
		ID:              data.ID,
		ComplaintNumber: data.ComplaintNumber,
		TraderID:        data.TraderID,
		BookingID:       data.BookingID,
		ContainerID:     data.ContainerID,
		LSPID:           data.LSPID,
		Subject:         data.Subject,
		Description:     data.Description,
		Status:          string(data.Status),
		Priority:        string(data.Priority),
		Resolution:      data.Resolution,
		ResolvedAt:      data.ResolvedAt,
	}
}
