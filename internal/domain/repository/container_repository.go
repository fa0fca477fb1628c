package repository

import (
	"context"
	"errors"
	"time"

	"cargomatch/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for container persistence.
var (
	// ErrContainerNotFound is returned when a container is not found.
	ErrContainerNotFound = errors.New("container not found")
	// ErrContainerNumberTaken is returned on a duplicate container number.
	ErrContainerNumberTaken = errors.New("container number already exists")
	// ErrContainerImmutable is returned when a mutation targets an approved container.
	ErrContainerImmutable = errors.New("container is approved and immutable")
	// ErrContainerHasBookings is returned when deleting a container that bookings reference.
	ErrContainerHasBookings = errors.New("container has bookings")
	// ErrContainerTypeNotFound is returned when a container type is not found.
	ErrContainerTypeNotFound = errors.New("container type not found")
	// ErrContainerTypeNameTaken is returned on a duplicate container type name.
	ErrContainerTypeNameTaken = errors.New("container type name already exists")
	// ErrContainerTypeInUse is returned when deleting a type that containers reference.
	ErrContainerTypeInUse = errors.New("container type is in use")
)

// ContainerFilter narrows container listings.
type ContainerFilter struct {
	LSPID          *uuid.UUID
	ApprovalStatus *entity.ContainerApprovalStatus
	Page
}

// ContainerSearch is a trader's search over bookable containers.
type ContainerSearch struct {
	Origin          string
	Destination     string
	DepartureFrom   *time.Time
	DepartureTo     *time.Time
	ContainerTypeID *uuid.UUID
	MinCapacityCBM  float64
	Now             time.Time
	Page
}

// ContainerReview is an admin's decision on a pending container.
type ContainerReview struct {
	Status     entity.ContainerApprovalStatus
	Notes      string
	Reason     string
	ReviewedBy uuid.UUID
	ReviewedAt time.Time
}

// ContainerTypeRepository defines persistence operations for the container type catalog.
type ContainerTypeRepository interface {
	Create(ctx context.Context, containerType *entity.ContainerType) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ContainerType, error)
	List(ctx context.Context) ([]*entity.ContainerType, error)
	Update(ctx context.Context, containerType *entity.ContainerType) error

	// Delete removes a type. ErrContainerTypeInUse when containers reference it.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContainerRepository defines persistence operations for containers.
type ContainerRepository interface {
	// Create persists a new container. ErrContainerNumberTaken on duplicates.
	Create(ctx context.Context, container *entity.Container) error

	// FindByID retrieves a container with its type.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Container, error)

	// List returns a page of containers and the total count.
	List(ctx context.Context, filter ContainerFilter) ([]*entity.Container, int64, error)

	// Search returns approved, available containers departing after criteria.Now.
	Search(ctx context.Context, criteria ContainerSearch) ([]*entity.Container, error)

	// UpdateUnapproved updates the LSP-editable fields of a container owned by
	// container.LSPID, resetting a rejected container to pending.
	// ErrContainerImmutable when the stored container is approved.
	UpdateUnapproved(ctx context.Context, container *entity.Container) error

	// DeleteUnapproved deletes a container owned by lspID.
	// ErrContainerImmutable when the stored container is approved.
	DeleteUnapproved(ctx context.Context, id, lspID uuid.UUID) error

	// Review moves a pending container to the review's status.
	// ErrStatusConflict when the container is no longer pending.
	Review(ctx context.Context, id uuid.UUID, review ContainerReview) error

	// Reserve marks an available container as taken.
	// ErrStatusConflict when it is already taken.
	Reserve(ctx context.Context, id uuid.UUID) error

	// Release marks a container as available again.
	Release(ctx context.Context, id uuid.UUID) error

	// CountByApprovalStatus counts containers in an approval status.
	CountByApprovalStatus(ctx context.Context, status entity.ContainerApprovalStatus) (int64, error)
}
