package repository

import (
	"context"

	"cargomatch/internal/domain/entity"
	domainrepository "cargomatch/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

var _ domainrepository.UserRepository = (*MockUserRepository)(nil)

// MockUserRepository is a testify mock of domainrepository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

type MockUserRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockUserRepository) EXPECT() *MockUserRepository_Expecter {
	return &MockUserRepository_Expecter{mock: &_m.Mock}
}

// FindByID provides a mock function for UserRepository.FindByID.
func (_m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	ret := _m.Called(ctx, id)

	var r0 *entity.User
	if v, ok := ret.Get(0).(*entity.User); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// FindByID sets an expectation on FindByID.
func (_e *MockUserRepository_Expecter) FindByID(ctx any, id any) *mock.Call {
	return _e.mock.On("FindByID", ctx, id)
}

// FindByEmail provides a mock function for UserRepository.FindByEmail.
func (_m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	ret := _m.Called(ctx, email)

	var r0 *entity.User
	if v, ok := ret.Get(0).(*entity.User); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// FindByEmail sets an expectation on FindByEmail.
func (_e *MockUserRepository_Expecter) FindByEmail(ctx any, email any) *mock.Call {
	return _e.mock.On("FindByEmail", ctx, email)
}

// Create provides a mock function for UserRepository.Create.
func (_m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	ret := _m.Called(ctx, user)

	return ret.Error(0)
}

// Create sets an expectation on Create.
func (_e *MockUserRepository_Expecter) Create(ctx any, user any) *mock.Call {
	return _e.mock.On("Create", ctx, user)
}

// UpdateContact provides a mock function for UserRepository.UpdateContact.
func (_m *MockUserRepository) UpdateContact(ctx context.Context, user *entity.User) error {
	ret := _m.Called(ctx, user)

	return ret.Error(0)
}

// UpdateContact sets an expectation on UpdateContact.
func (_e *MockUserRepository_Expecter) UpdateContact(ctx any, user any) *mock.Call {
	return _e.mock.On("UpdateContact", ctx, user)
}

// UpdateApprovalStatus provides a mock function for UserRepository.UpdateApprovalStatus.
func (_m *MockUserRepository) UpdateApprovalStatus(ctx context.Context, id uuid.UUID, status entity.ApprovalStatus) error {
	ret := _m.Called(ctx, id, status)

	return ret.Error(0)
}

// UpdateApprovalStatus sets an expectation on UpdateApprovalStatus.
func (_e *MockUserRepository_Expecter) UpdateApprovalStatus(ctx any, id any, status any) *mock.Call {
	return _e.mock.On("UpdateApprovalStatus", ctx, id, status)
}

// SetActive provides a mock function for UserRepository.SetActive.
func (_m *MockUserRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	ret := _m.Called(ctx, id, active)

	return ret.Error(0)
}

// SetActive sets an expectation on SetActive.
func (_e *MockUserRepository_Expecter) SetActive(ctx any, id any, active any) *mock.Call {
	return _e.mock.On("SetActive", ctx, id, active)
}

// List provides a mock function for UserRepository.List.
func (_m *MockUserRepository) List(ctx context.Context, filter domainrepository.UserFilter) ([]*entity.User, int64, error) {
	ret := _m.Called(ctx, filter)

	var r0 []*entity.User
	if v, ok := ret.Get(0).([]*entity.User); ok {
		r0 = v
	}

	var r1 int64
	if v, ok := ret.Get(1).(int64); ok {
		r1 = v
	}

	return r0, r1, ret.Error(2)
}

// List sets an expectation on List.
func (_e *MockUserRepository_Expecter) List(ctx any, filter any) *mock.Call {
	return _e.mock.On("List", ctx, filter)
}

// CountByRole provides a mock function for UserRepository.CountByRole.
func (_m *MockUserRepository) CountByRole(ctx context.Context) (map[entity.Role]int64, error) {
	ret := _m.Called(ctx)

	var r0 map[entity.Role]int64
	if v, ok := ret.Get(0).(map[entity.Role]int64); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}

// CountByRole sets an expectation on CountByRole.
func (_e *MockUserRepository_Expecter) CountByRole(ctx any) *mock.Call {
	return _e.mock.On("CountByRole", ctx)
}

// NewMockUserRepository creates a MockUserRepository that asserts its expectations on cleanup.
func NewMockUserRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
