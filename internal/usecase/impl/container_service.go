package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "cargomatch/internal/delivery/context"
	"cargomatch/internal/domain/entity"
	domainerrors "cargomatch/internal/domain/errors"
	"cargomatch/internal/domain/repository"
	"cargomatch/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const defaultCurrency = "USD"

type containerService struct {
	containerRepo     repository.ContainerRepository
	containerTypeRepo repository.ContainerTypeRepository
	logger            *slog.Logger
	now               func() time.Time
}

// ContainerServiceParams holds dependencies for ContainerService, injected by Fx.
type ContainerServiceParams struct {
	fx.In

	ContainerRepo     repository.ContainerRepository
	ContainerTypeRepo repository.ContainerTypeRepository
	Logger            *slog.Logger
}

// NewContainerService creates a new container service instance
func NewContainerService(params ContainerServiceParams) usecase.ContainerUsecase {
	return &containerService{
		containerRepo:     params.ContainerRepo,
		containerTypeRepo: params.ContainerTypeRepo,
		logger:            params.Logger,
		now:               utcNow,
	}
}

func (srv *containerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateContainer lists a new container for admin review.
func (srv *containerService) CreateContainer(ctx context.Context, lspID uuid.UUID, input *usecase.ContainerInput) (*entity.Container, error) {
	if err := validateContainerInput(input); err != nil {
		return nil, err
	}

	if _, err := srv.containerTypeRepo.FindByID(ctx, input.ContainerTypeID); err != nil {
		return nil, mapRepoError(err, containerErrors, "failed to find container type")
	}

	now := srv.now()
	container := buildContainer(input)
	container.LSPID = lspID
	container.IsAvailable = true
	container.ApprovalStatus = entity.ContainerApprovalPending
	container.CreatedAt = now
	container.UpdatedAt = now

	if err := srv.containerRepo.Create(ctx, container); err != nil {
		return nil, mapRepoError(err, containerErrors, "failed to create container")
	}

	srv.log(ctx).Info("Container listed for review",
		slog.String("containerID", container.ID.String()),
		slog.String("lspID", lspID.String()),
	)

	return container, nil
}

// GetContainer returns a container owned by lspID. Other LSPs' containers are not found.
func (srv *containerService) GetContainer(ctx context.Context, lspID, containerID uuid.UUID) (*entity.Container, error) {
	container, err := srv.containerRepo.FindByID(ctx, containerID)
	if err != nil {
		return nil, mapRepoError(err, containerErrors, "failed to find container")
	}
	if container.LSPID != lspID {
		return nil, domainerrors.ErrContainerNotFound
	}

	return container, nil
}

func (srv *containerService) ListContainers(ctx context.Context, lspID uuid.UUID, page repository.Page) ([]*entity.Container, int64, error) {
	containers, total, err := srv.containerRepo.List(ctx, repository.ContainerFilter{LSPID: &lspID, Page: page})
	if err != nil {
		return nil, 0, mapRepoError(err, containerErrors, "failed to list containers")
	}

	return containers, total, nil
}

// UpdateContainer edits an unapproved container. Editing a rejected container
// sends it back to review.
func (srv *containerService) UpdateContainer(ctx context.Context, lspID, containerID uuid.UUID, input *usecase.ContainerInput) (*entity.Container, error) {
	if err := validateContainerInput(input); err != nil {
		return nil, err
	}

	current, err := srv.GetContainer(ctx, lspID, containerID)
	if err != nil {
		return nil, err
	}
	if current.IsImmutable() {
		return nil, domainerrors.ErrContainerImmutable
	}

	if input.ContainerTypeID != current.ContainerTypeID {
		if _, err := srv.containerTypeRepo.FindByID(ctx, input.ContainerTypeID); err != nil {
			return nil, mapRepoError(err, containerErrors, "failed to find container type")
		}
	}

	updated := buildContainer(input)
	updated.ID = containerID
	updated.LSPID = lspID
	updated.IsAvailable = current.IsAvailable
	updated.UpdatedAt = srv.now()

	// The repository re-checks approval in the UPDATE itself.
	if err := srv.containerRepo.UpdateUnapproved(ctx, updated); err != nil {
		return nil, mapRepoError(err, containerErrors, "failed to update container")
	}

	return srv.GetContainer(ctx, lspID, containerID)
}

// DeleteContainer removes an unapproved container.
func (srv *containerService) DeleteContainer(ctx context.Context, lspID, containerID uuid.UUID) error {
	if err := srv.containerRepo.DeleteUnapproved(ctx, containerID, lspID); err != nil {
		return mapRepoError(err, containerErrors, "failed to delete container")
	}

	srv.log(ctx).Info("Container deleted", slog.String("containerID", containerID.String()))

	return nil
}

// SearchContainers returns bookable containers only.
func (srv *containerService) SearchContainers(ctx context.Context, input *usecase.ContainerSearchInput) ([]*entity.Container, error) {
	if input.DepartureFrom != nil && input.DepartureTo != nil && input.DepartureTo.Before(*input.DepartureFrom) {
		return nil, domainerrors.ErrValidationFailed.WithDetails("departure window ends before it starts")
	}

	containers, err := srv.containerRepo.Search(ctx, repository.ContainerSearch{
		Origin:          strings.TrimSpace(input.Origin),
		Destination:     strings.TrimSpace(input.Destination),
		DepartureFrom:   input.DepartureFrom,
		DepartureTo:     input.DepartureTo,
		ContainerTypeID: input.ContainerTypeID,
		MinCapacityCBM:  input.MinCapacityCBM,
		Now:             srv.now(),
		Page:            input.Page,
	})
	if err != nil {
		return nil, mapRepoError(err, containerErrors, "failed to search containers")
	}

	return containers, nil
}

func (srv *containerService) ListContainerTypes(ctx context.Context) ([]*entity.ContainerType, error) {
	types, err := srv.containerTypeRepo.List(ctx)
	if err != nil {
		return nil, mapRepoError(err, containerTypeErrors, "failed to list container types")
	}

	return types, nil
}

func buildContainer(input *usecase.ContainerInput) *entity.Container {
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = defaultCurrency
	}

	return &entity.Container{
		ContainerTypeID:     input.ContainerTypeID,
		ContainerNumber:     strings.ToUpper(strings.TrimSpace(input.ContainerNumber)),
		Origin:              strings.TrimSpace(input.Origin),
		Destination:         strings.TrimSpace(input.Destination),
		DepartureDate:       input.DepartureDate.UTC(),
		ArrivalDate:         input.ArrivalDate.UTC(),
		CapacityCBM:         input.CapacityCBM,
		PricePerCBM:         input.PricePerCBM,
		Currency:            currency,
		AutoApproveBookings: input.AutoApproveBookings,
	}
}

func validateContainerInput(input *usecase.ContainerInput) error {
	switch {
	case strings.TrimSpace(input.ContainerNumber) == "":
		return domainerrors.ErrValidationFailed.WithDetails("container number is required")
	case strings.TrimSpace(input.Origin) == "" || strings.TrimSpace(input.Destination) == "":
		return domainerrors.ErrValidationFailed.WithDetails("origin and destination are required")
	case input.DepartureDate.IsZero():
		return domainerrors.ErrValidationFailed.WithDetails("departure date is required")
	case !input.ArrivalDate.IsZero() && input.ArrivalDate.Before(input.DepartureDate):
		return domainerrors.ErrValidationFailed.WithDetails("arrival date is before departure date")
	case input.CapacityCBM <= 0:
		return domainerrors.ErrValidationFailed.WithDetails("capacity must be positive")
	case input.PricePerCBM.IsNegative():
		return domainerrors.ErrValidationFailed.WithDetails("price must not be negative")
	}

	return nil
}

type containerTypeService struct {
	containerTypeRepo repository.ContainerTypeRepository
	logger            *slog.Logger
	now               func() time.Time
}

// ContainerTypeServiceParams holds dependencies for ContainerTypeService, injected by Fx.
type ContainerTypeServiceParams struct {
	fx.In

	ContainerTypeRepo repository.ContainerTypeRepository
	Logger            *slog.Logger
}

// NewContainerTypeService creates the container type catalog service
func NewContainerTypeService(params ContainerTypeServiceParams) usecase.ContainerTypeUsecase {
	return &containerTypeService{
		containerTypeRepo: params.ContainerTypeRepo,
		logger:            params.Logger,
		now:               utcNow,
	}
}

func (srv *containerTypeService) CreateContainerType(ctx context.Context, input *usecase.ContainerTypeInput) (*entity.ContainerType, error) {
	if err := validateContainerTypeInput(input); err != nil {
		return nil, err
	}

	now := srv.now()
	containerType := &entity.ContainerType{
		Name:        strings.TrimSpace(input.Name),
		SizeFeet:    input.SizeFeet,
		CapacityCBM: input.CapacityCBM,
		MaxWeightKg: input.MaxWeightKg,
		Description: strings.TrimSpace(input.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := srv.containerTypeRepo.Create(ctx, containerType); err != nil {
		return nil, mapRepoError(err, containerTypeErrors, "failed to create container type")
	}

	return containerType, nil
}

func (srv *containerTypeService) UpdateContainerType(ctx context.Context, id uuid.UUID, input *usecase.ContainerTypeInput) (*entity.ContainerType, error) {
	if err := validateContainerTypeInput(input); err != nil {
		return nil, err
	}

	containerType, err := srv.containerTypeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, containerTypeErrors, "failed to find container type")
	}

	containerType.Name = strings.TrimSpace(input.Name)
	containerType.SizeFeet = input.SizeFeet
	containerType.CapacityCBM = input.CapacityCBM
	containerType.MaxWeightKg = input.MaxWeightKg
	containerType.Description = strings.TrimSpace(input.Description)
	containerType.UpdatedAt = srv.now()

	if err := srv.containerTypeRepo.Update(ctx, containerType); err != nil {
		return nil, mapRepoError(err, containerTypeErrors, "failed to update container type")
	}

	return containerType, nil
}

func (srv *containerTypeService) DeleteContainerType(ctx context.Context, id uuid.UUID) error {
	if err := srv.containerTypeRepo.Delete(ctx, id); err != nil {
		return mapRepoError(err, containerTypeErrors, "failed to delete container type")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Container type deleted", slog.String("containerTypeID", id.String()))

	return nil
}

func validateContainerTypeInput(input *usecase.ContainerTypeInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return domainerrors.ErrValidationFailed.WithDetails("name is required")
	}
	if input.SizeFeet <= 0 || input.CapacityCBM <= 0 || input.MaxWeightKg <= 0 {
		return domainerrors.ErrValidationFailed.WithDetails("size, capacity and max weight must be positive")
	}

	return nil
}
