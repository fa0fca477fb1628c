package repository

import (
	"context"

	"cargomatch/internal/domain/entity"
	domainrepository "cargomatch/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

var _ domainrepository.ContainerTypeRepository = (*MockContainerTypeRepository)(nil)

// MockContainerTypeRepository is a testify mock of domainrepository.ContainerTypeRepository.
type MockContainerTypeRepository struct {
	mock.Mock
}

type MockContainerTypeRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockContainerTypeRepository) EXPECT() *MockContainerTypeRepository_Expecter {
	return &MockContainerTypeRepository_Expecter{mock: &_m.Mock}
}

// Create provides a mock function for ContainerTypeRepository.Create.
func (_m *MockContainerTypeRepository) Create(ctx context.Context, containerType *entity.ContainerType) error {
	ret := _m.Called(ctx, containerType)

	return ret.Error(0)
}

// Create sets an expectation on Create.
func (_e *MockContainerTypeRepository_Expecter) Create(ctx any, containerType any) *mock.Call {
	return _e.mock.On("Create", ctx, containerType)
}

// FindByID provides a mock function for ContainerTypeRepository.FindByID.
func (_m *MockContainerTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ContainerType, error) {
	ret := _m.Called(ctx, id)

	var r0 *entity.ContainerType
	if v, ok := ret.Get(0).(*entity.ContainerType); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// FindByID sets an expectation on FindByID.
func (_e *MockContainerTypeRepository_Expecter) FindByID(ctx any, id any) *mock.Call {
	return _e.mock.On("FindByID", ctx, id)
}

// List provides a mock function for ContainerTypeRepository.List.
func (_m *MockContainerTypeRepository) List(ctx context.Context) ([]*entity.ContainerType, error) {
	ret := _m.Called(ctx)

	var r0 []*entity.ContainerType
	if v, ok := ret.Get(0).([]*entity.ContainerType); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// List sets an expectation on List.
func (_e *MockContainerTypeRepository_Expecter) List(ctx any) *mock.Call {
	return _e.mock.On("List", ctx)
}

// Update provides a mock function for ContainerTypeRepository.Update.
func (_m *MockContainerTypeRepository) Update(ctx context.Context, containerType *entity.ContainerType) error {
	ret := _m.Called(ctx, containerType)

	return ret.Error(0)
}

// Update sets an expectation on Update.
func (_e *MockContainerTypeRepository_Expecter) Update(ctx any, containerType any) *mock.Call {
	return _e.mock.On("Update", ctx, containerType)
}

// Delete provides a mock function for ContainerTypeRepository.Delete.
func (_m *MockContainerTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)

	return ret.Error(0)
}

// Delete sets an expectation on Delete.
func (_e *MockContainerTypeRepository_Expecter) Delete(ctx any, id any) *mock.Call {
	return _e.mock.On("Delete", ctx, id)
}

// NewMockContainerTypeRepository creates a MockContainerTypeRepository that asserts its expectations on cleanup.
func NewMockContainerTypeRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockContainerTypeRepository {
	m := &MockContainerTypeRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
