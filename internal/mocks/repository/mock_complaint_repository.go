package repository

import (
	"context"

	"cargomatch/internal/domain/entity"
	domainrepository "cargomatch/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

var _ domainrepository.ComplaintRepository = (*MockComplaintRepository)(nil)

// MockComplaintRepository is a testify mock of domainrepository.ComplaintRepository.
type MockComplaintRepository struct {
	mock.Mock
}

type MockComplaintRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockComplaintRepository) EXPECT() *MockComplaintRepository_Expecter {
	return &MockComplaintRepository_Expecter{mock: &_m.Mock}
}

// Create provides a mock function for ComplaintRepository.Create.
func (_m *MockComplaintRepository) Create(ctx context.Context, complaint *entity.Complaint) error {
	ret := _m.Called(ctx, complaint)

	return ret.Error(0)
}

// Create sets an expectation on Create.
func (_e *MockComplaintRepository_Expecter) Create(ctx any, complaint any) *mock.Call {
	return _e.mock.On("Create", ctx, complaint)
}

// FindByID provides a mock function for ComplaintRepository.FindByID.
func (_m *MockComplaintRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Complaint, error) {
	ret := _m.Called(ctx, id)

	var r0 *entity.Complaint
	if v, ok := ret.Get(0).(*entity.Complaint); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// FindByID sets an expectation on FindByID.
func (_e *MockComplaintRepository_Expecter) FindByID(ctx any, id any) *mock.Call {
	return _e.mock.On("FindByID", ctx, id)
}

// List provides a mock function for ComplaintRepository.List.
func (_m *MockComplaintRepository) List(ctx context.Context, filter domainrepository.ComplaintFilter) ([]*entity.Complaint, int64, error) {
	ret := _m.Called(ctx, filter)

	var r0 []*entity.Complaint
	if v, ok := ret.Get(0).([]*entity.Complaint); ok {
		r0 = v
	}

	var r1 int64
	if v, ok := ret.Get(1).(int64); ok {
		r1 = v
	}

	return r0, r1, ret.Error(2)
}

// List sets an expectation on List.
func (_e *MockComplaintRepository_Expecter) List(ctx any, filter any) *mock.Call {
	return _e.mock.On("List", ctx, filter)
}

// Update provides a mock function for ComplaintRepository.Update.
func (_m *MockComplaintRepository) Update(ctx context.Context, complaint *entity.Complaint, expected entity.ComplaintStatus) error {
	ret := _m.Called(ctx, complaint, expected)

	return ret.Error(0)
}

// Update sets an expectation on Update.
func (_e *MockComplaintRepository_Expecter) Update(ctx any, complaint any, expected any) *mock.Call {
	return _e.mock.On("Update", ctx, complaint, expected)
}

// CountByStatus provides a mock function for ComplaintRepository.CountByStatus.
func (_m *MockComplaintRepository) CountByStatus(ctx context.Context, status entity.ComplaintStatus) (int64, error) {
	ret := _m.Called(ctx, status)

	var r0 int64
	if v, ok := ret.Get(0).(int64); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// CountByStatus sets an expectation on CountByStatus.
func (_e *MockComplaintRepository_Expecter) CountByStatus(ctx any, status any) *mock.Call {
	return _e.mock.On("CountByStatus", ctx, status)
}

// NewMockComplaintRepository creates a MockComplaintRepository that asserts its expectations on cleanup.
func NewMockComplaintRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockComplaintRepository {
	m := &MockComplaintRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
