package postgres

import (
	"context"
	"strings"

	"cargomatch/internal/domain/entity"
	domainerrors "cargomatch/internal/domain/errors"
	"cargomatch/internal/domain/repository"
	"cargomatch/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// containerRepository implements the repository.ContainerRepository interface.
type containerRepository struct {
	db *gorm.DB
}

// NewContainerRepository is the constructor for containerRepository.
func NewContainerRepository(db *gorm.DB) repository.ContainerRepository {
	return &containerRepository{
		db: db,
	}
}

// Create persists a new container.
func (repo *containerRepository) Create(ctx context.Context, container *entity.Container) error {
	containerM := fromContainerDomain(container)

	if err := repo.db.WithContext(ctx).Omit("ContainerType").Create(containerM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrContainerNumberTaken
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrContainerTypeNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create container")
	}

	container.ID = containerM.ID
	container.CreatedAt = containerM.CreatedAt
	container.UpdatedAt = containerM.UpdatedAt

	return nil
}

// FindByID retrieves a container with its type.
func (repo *containerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Container, error) {
	var containerM model.ContainerModel

	if err := repo.db.WithContext(ctx).
		Preload("ContainerType").
		Where("id = ?", id).
		First(&containerM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrContainerNotFound
		}

		return nil, errors.Wrap(err, "failed to find container")
	}

	return toContainerDomain(&containerM), nil
}

// List returns a page of containers matching the filter, newest first.
func (repo *containerRepository) List(ctx context.Context, filter repository.ContainerFilter) ([]*entity.Container, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.ContainerModel{})
	if filter.LSPID != nil {
		query = query.Where("lsp_id = ?", *filter.LSPID)
	}
	if filter.ApprovalStatus != nil {
		query = query.Where("container_approval_status = ?", string(*filter.ApprovalStatus))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count containers")
	}

	page := filter.Page.Normalize()
	var containerModels []*model.ContainerModel
	if err := query.
		Preload("ContainerType").
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&containerModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list containers")
	}

	return toContainerDomains(containerModels), total, nil
}

// Search returns bookable containers ordered by departure date.
func (repo *containerRepository) Search(ctx context.Context, criteria repository.ContainerSearch) ([]*entity.Container, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.ContainerModel{}).
		Where("container_approval_status = ?", string(entity.ContainerApprovalApproved)).
		Where("is_available = ?", true).
		Where("departure_date > ?", criteria.Now)

	if origin := strings.TrimSpace(criteria.Origin); origin != "" {
		query = query.Where("origin ILIKE ?", "%"+escapeLike(origin)+"%")
	}
	if destination := strings.TrimSpace(criteria.Destination); destination != "" {
		query = query.Where("destination ILIKE ?", "%"+escapeLike(destination)+"%")
	}
	if criteria.DepartureFrom != nil {
		query = query.Where("departure_date >= ?", *criteria.DepartureFrom)
	}
	if criteria.DepartureTo != nil {
		query = query.Where("departure_date <= ?", *criteria.DepartureTo)
	}
	if criteria.ContainerTypeID != nil {
		query = query.Where("container_type_id = ?", *criteria.ContainerTypeID)
	}
	if criteria.MinCapacityCBM > 0 {
		query = query.Where("capacity_cbm >= ?", criteria.MinCapacityCBM)
	}

	page := criteria.Page.Normalize()
	var containerModels []*model.ContainerModel
	if err := query.
		Preload("ContainerType").
		Order("departure_date ASC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&containerModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to search containers")
	}

	return toContainerDomains(containerModels), nil
}

// UpdateUnapproved updates an LSP's own container unless it is approved.
// A rejected container goes back to pending for another review.
func (repo *containerRepository) UpdateUnapproved(ctx context.Context, container *entity.Container) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ContainerModel{}).
		Where("id = ? AND lsp_id = ?", container.ID, container.LSPID).
		Where("container_approval_status <> ?", string(entity.ContainerApprovalApproved)).
		Updates(map[string]any{
			"container_type_id":         container.ContainerTypeID,
			"container_number":          container.ContainerNumber,
			"origin":                    container.Origin,
			"destination":               container.Destination,
			"departure_date":            container.DepartureDate,
			"arrival_date":              container.ArrivalDate,
			"capacity_cbm":              container.CapacityCBM,
			"price_per_cbm":             container.PricePerCBM,
			"currency":                  container.Currency,
			"auto_approve_bookings":     container.AutoApproveBookings,
			"container_approval_status": string(entity.ContainerApprovalPending),
			"rejection_reason":          "",
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrContainerNumberTaken
		}
		if isForeignKeyConstraintViolation(result.Error) {
			return repository.ErrContainerTypeNotFound
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update container")
	}
	if result.RowsAffected == 0 {
		return repo.missingOrImmutable(ctx, container.ID, container.LSPID)
	}

	return nil
}

// DeleteUnapproved deletes an LSP's own container unless it is approved.
func (repo *containerRepository) DeleteUnapproved(ctx context.Context, id, lspID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND lsp_id = ?", id, lspID).
		Where("container_approval_status <> ?", string(entity.ContainerApprovalApproved)).
		Delete(&model.ContainerModel{})
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return repository.ErrContainerHasBookings
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete container")
	}
	if result.RowsAffected == 0 {
		return repo.missingOrImmutable(ctx, id, lspID)
	}

	return nil
}

func (repo *containerRepository) missingOrImmutable(ctx context.Context, id, lspID uuid.UUID) error {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.ContainerModel{}).
		Where("id = ? AND lsp_id = ?", id, lspID).
		Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to check container existence")
	}
	if count == 0 {
		return repository.ErrContainerNotFound
	}

	return repository.ErrContainerImmutable
}

// Review records an admin decision on a pending container.
func (repo *containerRepository) Review(ctx context.Context, id uuid.UUID, review repository.ContainerReview) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ContainerModel{}).
		Where("id = ? AND container_approval_status = ?", id, string(entity.ContainerApprovalPending)).
		Updates(map[string]any{
			"container_approval_status": string(review.Status),
			"approval_notes":            review.Notes,
			"rejection_reason":          review.Reason,
			"reviewed_by":               review.ReviewedBy,
			"reviewed_at":               review.ReviewedAt,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to review container")
	}
	if result.RowsAffected == 0 {
		return repo.missingOrConflict(ctx, id)
	}

	return nil
}

// Reserve takes an available container.
func (repo *containerRepository) Reserve(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ContainerModel{}).
		Where("id = ? AND is_available = ?", id, true).
		Update("is_available", false)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to reserve container")
	}
	if result.RowsAffected == 0 {
		return repo.missingOrConflict(ctx, id)
	}

	return nil
}

// Release makes a container available again. Releasing an available container is a no-op.
func (repo *containerRepository) Release(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ContainerModel{}).
		Where("id = ?", id).
		Update("is_available", true)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to release container")
	}
	if result.RowsAffected == 0 {
		return repository.ErrContainerNotFound
	}

	return nil
}

func (repo *containerRepository) missingOrConflict(ctx context.Context, id uuid.UUID) error {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.ContainerModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to check container existence")
	}
	if count == 0 {
		return repository.ErrContainerNotFound
	}

	return repository.ErrStatusConflict
}

// CountByApprovalStatus counts containers in an approval status.
func (repo *containerRepository) CountByApprovalStatus(ctx context.Context, status entity.ContainerApprovalStatus) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.ContainerModel{}).
		Where("container_approval_status = ?", string(status)).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count containers")
	}

	return count, nil
}

// escapeLike escapes LIKE wildcards in user input.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// --- Mapper Functions ---

func toContainerDomains(containerModels []*model.ContainerModel) []*entity.Container {
	containers := make([]*entity.Container, 0, len(containerModels))
	for _, containerM := range containerModels {
		containers = append(containers, toContainerDomain(containerM))
	}

	return containers
}

func toContainerDomain(data *model.ContainerModel) *entity.Container {
	if data == nil {
		return nil
	}

	return &entity.Container{
		ID:                  data.ID,
		LSPID:               data.LSPID,
		ContainerTypeID:     data.ContainerTypeID,
		ContainerType:       toContainerTypeDomain(data.ContainerType),
		ContainerNumber:     data.ContainerNumber,
		Origin:              data.Origin,
		Destination:         data.Destination,
		DepartureDate:       data.DepartureDate,
		ArrivalDate:         data.ArrivalDate,
		CapacityCBM:         data.CapacityCBM,
		PricePerCBM:         data.PricePerCBM,
		Currency:            data.Currency,
		IsAvailable:         data.IsAvailable,
		AutoApproveBookings: data.AutoApproveBookings,
		ApprovalStatus:      entity.ContainerApprovalStatus(data.ContainerApprovalStatus),
		ApprovalNotes:       data.ApprovalNotes,
		RejectionReason:     data.RejectionReason,
		ReviewedBy:          data.ReviewedBy,
		ReviewedAt:          data.ReviewedAt,
		CreatedAt:           data.CreatedAt,
		UpdatedAt:           data.UpdatedAt,
	}
}

func fromContainerDomain(data *entity.Container) *model.ContainerModel {
	if data == nil {
		return nil
	}

	return &model.ContainerModel{
		ID:                      data.ID,
		LSPID:                   data.LSPID,
		ContainerTypeID:         data.ContainerTypeID,
		ContainerNumber:         data.ContainerNumber,
		Origin:                  data.Origin,
		Destination:             data.Destination,
		DepartureDate:           data.DepartureDate,
		ArrivalDate:             data.ArrivalDate,
		CapacityCBM:             data.CapacityCBM,
		PricePerCBM:             data.PricePerCBM,
		Currency:                data.Currency,
		IsAvailable:             data.IsAvailable,
		AutoApproveBookings:     data.AutoApproveBookings,
		ContainerApprovalStatus: string(data.ApprovalStatus),
		ApprovalNotes:           data.ApprovalNotes,
		RejectionReason:         data.RejectionReason,
		ReviewedBy:              data.ReviewedBy,
		ReviewedAt:              data.ReviewedAt,
	}
}
