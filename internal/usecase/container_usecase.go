package usecase

import (
	"context"
	"time"

	"cargomatch/internal/domain/entity"
	"cargomatch/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContainerInput carries the LSP-editable fields of a container.
type ContainerInput struct {
	ContainerTypeID     uuid.UUID
	ContainerNumber     string
	Origin              string
	Destination         string
	DepartureDate       time.Time
	ArrivalDate         time.Time
	CapacityCBM         float64
	PricePerCBM         decimal.Decimal
	Currency            string
	AutoApproveBookings bool
}

// ContainerSearchInput narrows the trader's container search.
type ContainerSearchInput struct {
	Origin          string
	Destination     string
	DepartureFrom   *time.Time
	DepartureTo     *time.Time
	ContainerTypeID *uuid.UUID
	MinCapacityCBM  float64
	Page            repository.Page
}

// ContainerTypeInput carries catalog fields.
type ContainerTypeInput struct {
	Name        string
	SizeFeet    int
	CapacityCBM float64
	MaxWeightKg float64
	Description string
}

// ContainerUsecase covers LSP container listings and trader search.
type ContainerUsecase interface {
	CreateContainer(ctx context.Context, lspID uuid.UUID, input *ContainerInput) (*entity.Container, error)
	GetContainer(ctx context.Context, lspID, containerID uuid.UUID) (*entity.Container, error)
	ListContainers(ctx context.Context, lspID uuid.UUID, page repository.Page) ([]*entity.Container, int64, error)

	// UpdateContainer fails with ErrContainerImmutable once the container is approved.
	UpdateContainer(ctx context.Context, lspID, containerID uuid.UUID, input *ContainerInput) (*entity.Container, error)

	// DeleteContainer fails with ErrContainerImmutable once the container is approved.
	DeleteContainer(ctx context.Context, lspID, containerID uuid.UUID) error

	// SearchContainers returns only approved, available containers departing in the future.
	SearchContainers(ctx context.Context, input *ContainerSearchInput) ([]*entity.Container, error)

	ListContainerTypes(ctx context.Context) ([]*entity.ContainerType, error)
}

// ContainerTypeUsecase is the admin's container type catalog.
type ContainerTypeUsecase interface {
	CreateContainerType(ctx context.Context, input *ContainerTypeInput) (*entity.ContainerType, error)
	UpdateContainerType(ctx context.Context, id uuid.UUID, input *ContainerTypeInput) (*entity.ContainerType, error)

	// DeleteContainerType fails with ErrContainerTypeInUse while containers reference it.
	DeleteContainerType(ctx context.Context, id uuid.UUID) error
}
