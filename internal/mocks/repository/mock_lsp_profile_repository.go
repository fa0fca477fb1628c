package repository

import (
	"context"

	"cargomatch/internal/domain/entity"
	domainrepository "cargomatch/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

var _ domainrepository.LSPProfileRepository = (*MockLSPProfileRepository)(nil)

// MockLSPProfileRepository is a testify mock of domainrepository.LSPProfileRepository.
type MockLSPProfileRepository struct {
	mock.Mock
}

type MockLSPProfileRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockLSPProfileRepository) EXPECT() *MockLSPProfileRepository_Expecter {
	return &MockLSPProfileRepository_Expecter{mock: &_m.Mock}
}

// Create provides a mock function for LSPProfileRepository.Create.
func (_m *MockLSPProfileRepository) Create(ctx context.Context, profile *entity.LSPProfile) error {
	ret := _m.Called(ctx, profile)

	return ret.Error(0)
}

// Create sets an expectation on Create.
func (_e *MockLSPProfileRepository_Expecter) Create(ctx any, profile any) *mock.Call {
	return _e.mock.On("Create", ctx, profile)
}

// FindByID provides a mock function for LSPProfileRepository.FindByID.
func (_m *MockLSPProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.LSPProfile, error) {
	ret := _m.Called(ctx, id)

	var r0 *entity.LSPProfile
	if v, ok := ret.Get(0).(*entity.LSPProfile); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// FindByID sets an expectation on FindByID.
func (_e *MockLSPProfileRepository_Expecter) FindByID(ctx any, id any) *mock.Call {
	return _e.mock.On("FindByID", ctx, id)
}

// FindByUserID provides a mock function for LSPProfileRepository.FindByUserID.
func (_m *MockLSPProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.LSPProfile, error) {
	ret := _m.Called(ctx, userID)

	var r0 *entity.LSPProfile
	if v, ok := ret.Get(0).(*entity.LSPProfile); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// FindByUserID sets an expectation on FindByUserID.
func (_e *MockLSPProfileRepository_Expecter) FindByUserID(ctx any, userID any) *mock.Call {
	return _e.mock.On("FindByUserID", ctx, userID)
}

// UpdateDetails provides a mock function for LSPProfileRepository.UpdateDetails.
func (_m *MockLSPProfileRepository) UpdateDetails(ctx context.Context, profile *entity.LSPProfile) error {
	ret := _m.Called(ctx, profile)

	return ret.Error(0)
}

// UpdateDetails sets an expectation on UpdateDetails.
func (_e *MockLSPProfileRepository_Expecter) UpdateDetails(ctx any, profile any) *mock.Call {
	return _e.mock.On("UpdateDetails", ctx, profile)
}

// Decide provides a mock function for LSPProfileRepository.Decide.
func (_m *MockLSPProfileRepository) Decide(ctx context.Context, id uuid.UUID, decision domainrepository.VerificationDecision) error {
	ret := _m.Called(ctx, id, decision)

	return ret.Error(0)
}

// Decide sets an expectation on Decide.
func (_e *MockLSPProfileRepository_Expecter) Decide(ctx any, id any, decision any) *mock.Call {
	return _e.mock.On("Decide", ctx, id, decision)
}

// List provides a mock function for LSPProfileRepository.List.
func (_m *MockLSPProfileRepository) List(ctx context.Context, filter domainrepository.LSPFilter) ([]*entity.LSPProfile, int64, error) {
	ret := _m.Called(ctx, filter)

	var r0 []*entity.LSPProfile
	if v, ok := ret.Get(0).([]*entity.LSPProfile); ok {
		r0 = v
	}

	var r1 int64
	if v, ok := ret.Get(1).(int64); ok {
		r1 = v
	}

	return r0, r1, ret.Error(2)
}

// List sets an expectation on List.
func (_e *MockLSPProfileRepository_Expecter) List(ctx any, filter any) *mock.Call {
	return _e.mock.On("List", ctx, filter)
}

// CountByStatus provides a mock function for LSPProfileRepository.CountByStatus.
func (_m *MockLSPProfileRepository) CountByStatus(ctx context.Context, status entity.VerificationStatus) (int64, error) {
	ret := _m.Called(ctx, status)

	var r0 int64
	if v, ok := ret.Get(0).(int64); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// CountByStatus sets an expectation on CountByStatus.
func (_e *MockLSPProfileRepository_Expecter) CountByStatus(ctx any, status any) *mock.Call {
	return _e.mock.On("CountByStatus", ctx, status)
}

// NewMockLSPProfileRepository creates a MockLSPProfileRepository that asserts its expectations on cleanup.
func NewMockLSPProfileRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLSPProfileRepository {
	m := &MockLSPProfileRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
