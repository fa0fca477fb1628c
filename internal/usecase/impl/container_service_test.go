package impl

import (
	"context"
	"testing"
	"time"

	"cargomatch/internal/domain/entity"
	domainerrors "cargomatch/internal/domain/errors"
	"cargomatch/internal/domain/repository"
	mockRepo "cargomatch/internal/mocks/repository"
	"cargomatch/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestContainerService(t *testing.T) (usecase.ContainerUsecase, *mockRepo.MockRepositoryFactory) {
	factory, _ := newTestRepos(t)

	svc := NewContainerService(ContainerServiceParams{
		ContainerRepo:     factory.Containers,
		ContainerTypeRepo: factory.ContainerTypes,
		Logger:            newDiscardLogger(),
	})
	svc.(*containerService).now = fixedClock

	return svc, factory
}

func validContainerInput(typeID uuid.UUID) *usecase.ContainerInput {
	return &usecase.ContainerInput{
		ContainerTypeID: typeID,
		ContainerNumber: " msku1234567 ",
		Origin:          "Mumbai",
		Destination:     "Dubai",
		DepartureDate:   fixedNow.Add(72 * time.Hour),
		ArrivalDate:     fixedNow.Add(240 * time.Hour),
		CapacityCBM:     33,
		PricePerCBM:     decimal.RequireFromString("45.50"),
	}
}

func TestContainerService_CreateContainer(t *testing.T) {
	svc, repos := createTestContainerService(t)
	ctx := context.Background()
	lspID := uuid.New()
	typeID := uuid.New()

	repos.ContainerTypes.EXPECT().FindByID(ctx, typeID).Return(&entity.ContainerType{ID: typeID}, nil)
	repos.Containers.EXPECT().
		Create(ctx, mock.MatchedBy(func(c *entity.Container) bool {
			return c.LSPID == lspID &&
				c.ContainerNumber == "MSKU1234567" &&
				c.Currency == defaultCurrency &&
				c.IsAvailable &&
				c.ApprovalStatus == entity.ContainerApprovalPending
		})).
		Return(nil)

	container, err := svc.CreateContainer(ctx, lspID, validContainerInput(typeID))
	require.NoError(t, err)
	assert.Equal(t, fixedNow, container.CreatedAt)
}

func TestContainerService_CreateContainer_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*usecase.ContainerInput)
	}{
		{"zero capacity", func(in *usecase.ContainerInput) { in.CapacityCBM = 0 }},
		{"negative price", func(in *usecase.ContainerInput) { in.PricePerCBM = decimal.NewFromInt(-1) }},
		{"arrival before departure", func(in *usecase.ContainerInput) { in.ArrivalDate = in.DepartureDate.Add(-time.Hour) }},
		{"missing origin", func(in *usecase.ContainerInput) { in.Origin = " " }},
		{"missing number", func(in *usecase.ContainerInput) { in.ContainerNumber = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := createTestContainerService(t)
			input := validContainerInput(uuid.New())
			tt.mutate(input)

			_, err := svc.CreateContainer(context.Background(), uuid.New(), input)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
		})
	}
}

func TestContainerService_CreateContainer_UnknownType(t *testing.T) {
	svc, repos := createTestContainerService(t)
	ctx := context.Background()
	typeID := uuid.New()

	repos.ContainerTypes.EXPECT().FindByID(ctx, typeID).Return(nil, repository.ErrContainerTypeNotFound)

	_, err := svc.CreateContainer(ctx, uuid.New(), validContainerInput(typeID))
	assert.ErrorIs(t, err, domainerrors.ErrContainerTypeNotFound)
}

func TestContainerService_GetContainer_OtherLSP(t *testing.T) {
	svc, repos := createTestContainerService(t)
	ctx := context.Background()
	id := uuid.New()

	repos.Containers.EXPECT().FindByID(ctx, id).Return(&entity.Container{ID: id, LSPID: uuid.New()}, nil)

	_, err := svc.GetContainer(ctx, uuid.New(), id)
	assert.ErrorIs(t, err, domainerrors.ErrContainerNotFound)
}

func TestContainerService_UpdateContainer_ApprovedIsImmutable(t *testing.T) {
	svc, repos := createTestContainerService(t)
	ctx := context.Background()
	lspID := uuid.New()
	id := uuid.New()
	typeID := uuid.New()

	repos.Containers.EXPECT().FindByID(ctx, id).Return(&entity.Container{
		ID:              id,
		LSPID:           lspID,
		ContainerTypeID: typeID,
		ApprovalStatus:  entity.ContainerApprovalApproved,
	}, nil)

	_, err := svc.UpdateContainer(ctx, lspID, id, validContainerInput(typeID))
	require.ErrorIs(t, err, domainerrors.ErrContainerImmutable)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.HTTPCode())
}

func TestContainerService_UpdateContainer_RaceWithApproval(t *testing.T) {
	svc, repos := createTestContainerService(t)
	ctx := context.Background()
	lspID := uuid.New()
	id := uuid.New()
	typeID := uuid.New()

	repos.Containers.EXPECT().FindByID(ctx, id).Return(&entity.Container{
		ID:              id,
		LSPID:           lspID,
		ContainerTypeID: typeID,
		ApprovalStatus:  entity.ContainerApprovalPending,
	}, nil).Once()
	repos.Containers.EXPECT().UpdateUnapproved(ctx, mock.Anything).Return(repository.ErrContainerImmutable)

	_, err := svc.UpdateContainer(ctx, lspID, id, validContainerInput(typeID))
	assert.ErrorIs(t, err, domainerrors.ErrContainerImmutable)
}

func TestContainerService_UpdateContainer(t *testing.T) {
	svc, repos := createTestContainerService(t)
	ctx := context.Background()
	lspID := uuid.New()
	id := uuid.New()
	typeID := uuid.New()

	stored := &entity.Container{
		ID:              id,
		LSPID:           lspID,
		ContainerTypeID: typeID,
		ApprovalStatus:  entity.ContainerApprovalRejected,
		IsAvailable:     true,
	}
	repos.Containers.EXPECT().FindByID(ctx, id).Return(stored, nil)
	repos.Containers.EXPECT().
		UpdateUnapproved(ctx, mock.MatchedBy(func(c *entity.Container) bool {
			return c.ID == id && c.LSPID == lspID && c.Origin == "Mumbai" && c.UpdatedAt.Equal(fixedNow)
		})).
		Return(nil)

	_, err := svc.UpdateContainer(ctx, lspID, id, validContainerInput(typeID))
	require.NoError(t, err)
}

func TestContainerService_DeleteContainer(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{"deleted", nil, nil},
		{"approved", repository.ErrContainerImmutable, domainerrors.ErrContainerImmutable},
		{"has bookings", repository.ErrContainerHasBookings, domainerrors.ErrContainerHasBookings},
		{"missing", repository.ErrContainerNotFound, domainerrors.ErrContainerNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repos := createTestContainerService(t)
			ctx := context.Background()
			lspID := uuid.New()
			id := uuid.New()

			repos.Containers.EXPECT().DeleteUnapproved(ctx, id, lspID).Return(tt.repoErr)

			err := svc.DeleteContainer(ctx, lspID, id)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestContainerService_SearchContainers_UsesClock(t *testing.T) {
	svc, repos := createTestContainerService(t)
	ctx := context.Background()

	repos.Containers.EXPECT().
		Search(ctx, mock.MatchedBy(func(s repository.ContainerSearch) bool {
			return s.Now.Equal(fixedNow) && s.Origin == "Mumbai"
		})).
		Return([]*entity.Container{{ID: uuid.New()}}, nil)

	containers, err := svc.SearchContainers(ctx, &usecase.ContainerSearchInput{Origin: " Mumbai "})
	require.NoError(t, err)
	assert.Len(t, containers, 1)
}

func TestContainerService_SearchContainers_InvertedWindow(t *testing.T) {
	svc, _ := createTestContainerService(t)
	from := fixedNow.Add(48 * time.Hour)
	to := fixedNow

	_, err := svc.SearchContainers(context.Background(), &usecase.ContainerSearchInput{DepartureFrom: &from, DepartureTo: &to})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestContainerTypeService_Lifecycle(t *testing.T) {
	factory, _ := newTestRepos(t)
	svc := NewContainerTypeService(ContainerTypeServiceParams{
		ContainerTypeRepo: factory.ContainerTypes,
		Logger:            newDiscardLogger(),
	})
	svc.(*containerTypeService).now = fixedClock
	ctx := context.Background()

	input := &usecase.ContainerTypeInput{Name: "20ft Standard", SizeFeet: 20, CapacityCBM: 33, MaxWeightKg: 28000}

	factory.ContainerTypes.EXPECT().Create(ctx, mock.Anything).Return(nil)
	created, err := svc.CreateContainerType(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "20ft Standard", created.Name)

	_, err = svc.CreateContainerType(ctx, &usecase.ContainerTypeInput{Name: "Bad"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	id := uuid.New()
	factory.ContainerTypes.EXPECT().Delete(ctx, id).Return(repository.ErrContainerTypeInUse)
	err = svc.DeleteContainerType(ctx, id)
	assert.ErrorIs(t, err, domainerrors.ErrContainerTypeInUse)
}
