package repository

import (
	"context"

	"cargomatch/internal/domain/entity"
	domainrepository "cargomatch/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

var _ domainrepository.ContainerRepository = (*MockContainerRepository)(nil)

// MockContainerRepository is a testify mock of domainrepository.ContainerRepository.
type MockContainerRepository struct {
	mock.Mock
}

type MockContainerRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockContainerRepository) EXPECT() *MockContainerRepository_Expecter {
	return &MockContainerRepository_Expecter{mock: &_m.Mock}
}

// Create provides a mock function for ContainerRepository.Create.
func (_m *MockContainerRepository) Create(ctx context.Context, container *entity.Container) error {
	ret := _m.Called(ctx, container)

	return ret.Error(0)
}

// Create sets an expectation on Create.
func (_e *MockContainerRepository_Expecter) Create(ctx any, container any) *mock.Call {
	return _e.mock.On("Create", ctx, container)
}

// FindByID provides a mock function for ContainerRepository.FindByID.
func (_m *MockContainerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Container, error) {
	ret := _m.Called(ctx, id)

	var r0 *entity.Container
	if v, ok := ret.Get(0).(*entity.Container); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// FindByID sets an expectation on FindByID.
func (_e *MockContainerRepository_Expecter) FindByID(ctx any, id any) *mock.Call {
	return _e.mock.On("FindByID", ctx, id)
}

// List provides a mock function for ContainerRepository.List.
func (_m *MockContainerRepository) List(ctx context.Context, filter domainrepository.ContainerFilter) ([]*entity.Container, int64, error) {
	ret := _m.Called(ctx, filter)

	var r0 []*entity.Container
	if v, ok := ret.Get(0).([]*entity.Container); ok {
		r0 = v
	}

	var r1 int64
	if v, ok := ret.Get(1).(int64); ok {
		r1 = v
	}

	return r0, r1, ret.Error(2)
}

// List sets an expectation on List.
func (_e *MockContainerRepository_Expecter) List(ctx any, filter any) *mock.Call {
	return _e.mock.On("List", ctx, filter)
}

// Search provides a mock function for ContainerRepository.Search.
func (_m *MockContainerRepository) Search(ctx context.Context, criteria domainrepository.ContainerSearch) ([]*entity.Container, error) {
	ret := _m.Called(ctx, criteria)

	var r0 []*entity.Container
	if v, ok := ret.Get(0).([]*entity.Container); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// Search sets an expectation on Search.
func (_e *MockContainerRepository_Expecter) Search(ctx any, criteria any) *mock.Call {
	return _e.mock.On("Search", ctx, criteria)
}

// UpdateUnapproved provides a mock function for ContainerRepository.UpdateUnapproved.
func (_m *MockContainerRepository) UpdateUnapproved(ctx context.Context, container *entity.Container) error {
	ret := _m.Called(ctx, container)

	return ret.Error(0)
}

// UpdateUnapproved sets an expectation on UpdateUnapproved.
func (_e *MockContainerRepository_Expecter) UpdateUnapproved(ctx any, container any) *mock.Call {
	return _e.mock.On("UpdateUnapproved", ctx, container)
}

// DeleteUnapproved provides a mock function for ContainerRepository.DeleteUnapproved.
func (_m *MockContainerRepository) DeleteUnapproved(ctx context.Context, id uuid.UUID, lspID uuid.UUID) error {
	ret := _m.Called(ctx, id, lspID)

	return ret.Error(0)
}

// DeleteUnapproved sets an expectation on DeleteUnapproved.
func (_e *MockContainerRepository_Expecter) DeleteUnapproved(ctx any, id any, lspID any) *mock.Call {
	return _e.mock.On("DeleteUnapproved", ctx, id, lspID)
}

// Review provides a mock function for ContainerRepository.Review.
func (_m *MockContainerRepository) Review(ctx context.Context, id uuid.UUID, review domainrepository.ContainerReview) error {
	ret := _m.Called(ctx, id, review)

	return ret.Error(0)
}

// Review sets an expectation on Review.
func (_e *MockContainerRepository_Expecter) Review(ctx any, id any, review any) *mock.Call {
	return _e.mock.On("Review", ctx, id, review)
}

// Reserve provides a mock function for ContainerRepository.Reserve.
func (_m *MockContainerRepository) Reserve(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)

	return ret.Error(0)
}

// Reserve sets an expectation on Reserve.
func (_e *MockContainerRepository_Expecter) Reserve(ctx any, id any) *mock.Call {
	return _e.mock.On("Reserve", ctx, id)
}

// Release provides a mock function for ContainerRepository.Release.
func (_m *MockContainerRepository) Release(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)

	return ret.Error(0)
}

// Release sets an expectation on Release.
func (_e *MockContainerRepository_Expecter) Release(ctx any, id any) *mock.Call {
	return _e.mock.On("Release", ctx, id)
}

// CountByApprovalStatus provides a mock function for ContainerRepository.CountByApprovalStatus.
func (_m *MockContainerRepository) CountByApprovalStatus(ctx context.Context, status entity.ContainerApprovalStatus) (int64, error) {
	ret := _m.Called(ctx, status)

	var r0 int64
	if v, ok := ret.Get(0).(int64); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// CountByApprovalStatus sets an expectation on CountByApprovalStatus.
func (_e *MockContainerRepository_Expecter) CountByApprovalStatus(ctx any, status any) *mock.Call {
	return _e.mock.On("CountByApprovalStatus", ctx, status)
}

// NewMockContainerRepository creates a MockContainerRepository that asserts its expectations on cleanup.
func NewMockContainerRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockContainerRepository {
	m := &MockContainerRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
