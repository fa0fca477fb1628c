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

// containerTypeRepository implements the repository.ContainerTypeRepository interface.
type containerTypeRepository struct {
	db *gorm.DB
}

// NewContainerTypeRepository is the constructor for containerTypeRepository.
func NewContainerTypeRepository(db *gorm.DB) repository.ContainerTypeRepository {
	return &containerTypeRepository{
		db: db,
	}
}

// Create persists a catalog entry.
func (repo *containerTypeRepository) Create(ctx context.Context, containerType *entity.ContainerType) error {
	typeM := fromContainerTypeDomain(containerType)

	if err := repo.db.WithContext(ctx).Create(typeM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrContainerTypeNameTaken
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create container type")
	}

	containerType.ID = typeM.ID
	containerType.CreatedAt = typeM.CreatedAt
	containerType.UpdatedAt = typeM.UpdatedAt

	return nil
}

// FindByID retrieves a catalog entry.
func (repo *containerTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ContainerType, error) {
	var typeM model.ContainerTypeModel

	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&typeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrContainerTypeNotFound
		}

		return nil, errors.Wrap(err, "failed to find container type")
	}

	return toContainerTypeDomain(&typeM), nil
}

// List returns the whole catalog ordered by size.
func (repo *containerTypeRepository) List(ctx context.Context) ([]*entity.ContainerType, error) {
	var typeModels []*model.ContainerTypeModel

	if err := repo.db.WithContext(ctx).Order("size_feet ASC, name ASC").Find(&typeModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list container types")
	}

	types := make([]*entity.ContainerType, 0, len(typeModels))
	for _, typeM := range typeModels {
		types = append(types, toContainerTypeDomain(typeM))
	}

	return types, nil
}

// Update rewrites a catalog entry.
func (repo *containerTypeRepository) Update(ctx context.Context, containerType *entity.ContainerType) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ContainerTypeModel{}).
		Where("id = ?", containerType.ID).
		Updates(map[string]any{
			"name":          containerType.Name,
			"size_feet":     containerType.SizeFeet,
			"capacity_cbm":  containerType.CapacityCBM,
			"max_weight_kg": containerType.MaxWeightKg,
			"description":   containerType.Description,
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrContainerTypeNameTaken
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update container type")
	}
	if result.RowsAffected == 0 {
		return repository.ErrContainerTypeNotFound
	}

	return nil
}

// Delete removes a catalog entry unless containers reference it.
func (repo *containerTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	var inUse int64
	if err := repo.db.WithContext(ctx).
		Model(&model.ContainerModel{}).
		Where("container_type_id = ?", id).
		Count(&inUse).Error; err != nil {
		return errors.Wrap(err, "failed to count containers of type")
	}
	if inUse > 0 {
		return repository.ErrContainerTypeInUse
	}

	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ContainerTypeModel{})
	if result.Error != nil {
		// A container inserted after the count still trips the foreign key.
		if isForeignKeyConstraintViolation(result.Error) {
			return repository.ErrContainerTypeInUse
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete container type")
	}
	if result.RowsAffected == 0 {
		return repository.ErrContainerTypeNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toContainerTypeDomain(data *model.ContainerTypeModel) *entity.ContainerType {
	if data == nil {
		return nil
	}

	return &entity.ContainerType{
		ID:          data.ID,
		Name:        data.Name,
		SizeFeet:    data.SizeFeet,
		CapacityCBM: data.CapacityCBM,
		MaxWeightKg: data.MaxWeightKg,
		Description: data.Description,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromContainerTypeDomain(data *entity.ContainerType) *model.ContainerTypeModel {
	if data == nil {
		return nil
	}

	return &model.ContainerTypeModel{
		ID:          data.ID,
		Name:        data.Name,
		SizeFeet:    data.SizeFeet,
		CapacityCBM: data.CapacityCBM,
		MaxWeightKg: data.MaxWeightKg,
		Description: data.Description,
	}
}
